package utf8x

import "testing"

func TestEncodeCodepointRanges(t *testing.T) {
	cases := []struct {
		u    rune
		want []byte
	}{
		{'A', []byte{0x41}},
		{0xe9, []byte{0xc3, 0xa9}},     // é
		{0x2028, []byte{0xe2, 0x80, 0xa8}},
		{0x1f600, []byte{0xf0, 0x9f, 0x98, 0x80}},
	}
	for _, c := range cases {
		got, err := EncodeCodepoint(nil, c.u)
		if err != nil {
			t.Fatalf("EncodeCodepoint(%#x): %v", c.u, err)
		}
		if string(got) != string(c.want) {
			t.Errorf("EncodeCodepoint(%#x) = %x, want %x", c.u, got, c.want)
		}
	}
}

func TestEncodeCodepointRejectsOutOfRange(t *testing.T) {
	if _, err := EncodeCodepoint(nil, 0x110000); err == nil {
		t.Fatal("expected error for code point above 0x10FFFF")
	}
}

func TestDecodeCodepointRoundTrip(t *testing.T) {
	for _, u := range []rune{'A', 0xe9, 0x2028, 0x1f600} {
		enc, err := EncodeCodepoint(nil, u)
		if err != nil {
			t.Fatalf("EncodeCodepoint(%#x): %v", u, err)
		}
		r, n, ok := DecodeCodepoint(enc)
		if !ok {
			t.Fatalf("DecodeCodepoint(%x) not ok", enc)
		}
		if r != u {
			t.Errorf("DecodeCodepoint(%x) = %#x, want %#x", enc, r, u)
		}
		if n != len(enc) {
			t.Errorf("DecodeCodepoint(%x) consumed %d bytes, want %d", enc, n, len(enc))
		}
	}
}

func TestDecodeCodepointRejectsBadInput(t *testing.T) {
	cases := [][]byte{
		{},
		{0x80},             // lone continuation byte
		{0xc2},             // truncated 2-byte sequence
		{0xc2, 0x20},       // bad continuation byte
		{0xff},             // invalid lead byte
	}
	for _, c := range cases {
		if _, _, ok := DecodeCodepoint(c); ok {
			t.Errorf("DecodeCodepoint(%x) unexpectedly ok", c)
		}
	}
}
