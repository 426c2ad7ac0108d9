// Package utf8x implements the single-codepoint UTF-8 encode/decode steps
// the Hjson escape machinery needs: turning a \uXXXX escape into bytes on
// decode, and turning an arbitrary byte sequence back into a code point
// when the encoder emits \uXXXX for a format-control character.
package utf8x

import "fmt"

// InvalidCodepointError is returned by EncodeCodepoint when asked to
// encode a value outside the Unicode range representable in UTF-8.
type InvalidCodepointError struct {
	Codepoint rune
}

func (e *InvalidCodepointError) Error() string {
	return fmt.Sprintf("utf8x: invalid unicode code point %#x", e.Codepoint)
}

// EncodeCodepoint appends the UTF-8 encoding of u to dst and returns the
// extended slice.
func EncodeCodepoint(dst []byte, u rune) ([]byte, error) {
	switch {
	case u < 0x80:
		return append(dst, byte(u)), nil
	case u < 0x800:
		return append(dst,
			byte(0xc0|((u>>6)&0x1f)),
			byte(0x80|(u&0x3f)),
		), nil
	case u < 0x10000:
		return append(dst,
			byte(0xe0|((u>>12)&0xf)),
			byte(0x80|((u>>6)&0x3f)),
			byte(0x80|(u&0x3f)),
		), nil
	case u < 0x110000:
		return append(dst,
			byte(0xf0|((u>>18)&0x7)),
			byte(0x80|((u>>12)&0x3f)),
			byte(0x80|((u>>6)&0x3f)),
			byte(0x80|(u&0x3f)),
		), nil
	default:
		return dst, &InvalidCodepointError{Codepoint: u}
	}
}

// DecodeCodepoint reads one UTF-8 code point from the start of b and
// reports how many bytes it consumed. ok is false if b starts with an
// invalid lead byte, a truncated sequence, or a bad continuation byte.
func DecodeCodepoint(b []byte) (r rune, size int, ok bool) {
	if len(b) == 0 {
		return 0, 0, false
	}

	c0 := b[0]
	var n int
	var val int32
	switch {
	case c0 < 0x80:
		return rune(c0), 1, true
	case c0 < 0xc0:
		return 0, 0, false
	case c0 < 0xe0:
		n, val = 2, int32(c0&0x1f)
	case c0 < 0xf0:
		n, val = 3, int32(c0&0xf)
	case c0 < 0xf8:
		n, val = 4, int32(c0&0x7)
	default:
		return 0, 0, false
	}
	if len(b) < n {
		return 0, 0, false
	}
	for i := 1; i < n; i++ {
		cb := b[i]
		if cb < 0x80 {
			return 0, 0, false
		}
		val = (val << 6) | int32(cb&0x3f)
	}
	return rune(val), n, true
}
