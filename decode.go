package hjson

import (
	"fmt"
	"os"
	"strings"

	"github.com/hjson-lang/go-hjson/internal/cursor"
	"github.com/hjson-lang/go-hjson/internal/numlit"
	"github.com/hjson-lang/go-hjson/internal/utf8x"
)

// DecoderOptions controls Unmarshal / UnmarshalFromFile.
type DecoderOptions struct {
	// Comments, when true, makes the decoder capture surrounding
	// whitespace and comment text on each Value. When false (the
	// default), comments are skipped like any other whitespace and every
	// Value's comment accessors return "".
	Comments bool
}

// DecoderOption configures a DecoderOptions value.
type DecoderOption func(*DecoderOptions)

// WithDecoderComments enables or disables comment capture during decode.
func WithDecoderComments(enabled bool) DecoderOption {
	return func(o *DecoderOptions) { o.Comments = enabled }
}

func resolveDecoderOptions(opts []DecoderOption) DecoderOptions {
	var o DecoderOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Unmarshal parses data as an Hjson document and returns its root Value.
func Unmarshal(data []byte, opts ...DecoderOption) (*Value, error) {
	p := &parser{cur: cursor.New(data), opts: resolveDecoderOptions(opts)}
	return p.rootValue()
}

// UnmarshalFromFile reads path and parses its contents as an Hjson
// document.
func UnmarshalFromFile(path string, opts ...DecoderOption) (*Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Op: "read", Path: path, Err: err}
	}
	return Unmarshal(data, opts...)
}

type parser struct {
	cur  *cursor.Cursor
	opts DecoderOptions
}

// commentSpan is a half-open byte range into the cursor's Data, captured
// while scanning whitespace, that becomes one of a Value's four comment
// strings once attached.
type commentSpan struct {
	start, end int
	hasComment bool
}

type commentSlot int

const (
	slotBefore commentSlot = iota
	slotAfter
	slotKey
	slotInside
)

func setSlot(v *Value, slot commentSlot, s string) {
	switch slot {
	case slotBefore:
		v.before = s
	case slotAfter:
		v.after = s
	case slotKey:
		v.key = s
	case slotInside:
		v.inside = s
	}
}

// setComment assigns the text covered by ci to v's comment slot, if ci
// actually captured anything.
func setComment(v *Value, slot commentSlot, data []byte, ci commentSpan) {
	if ci.hasComment {
		setSlot(v, slot, string(data[ci.start:ci.end]))
	}
}

// setComment2 is the two-span form: when both spans captured a comment
// they are concatenated into a single assignment; otherwise whichever one
// did (if any) is used alone.
func setComment2(v *Value, slot commentSlot, data []byte, a, b commentSpan) {
	if a.hasComment && b.hasComment {
		setSlot(v, slot, string(data[a.start:a.end])+string(data[b.start:b.end]))
		return
	}
	setComment(v, slot, data, a)
	setComment(v, slot, data, b)
}

func isSpaceByte(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isPunctuator(c byte) bool {
	switch c {
	case '{', '}', '[', ']', ',', ':':
		return true
	}
	return false
}

func escapee(c byte) (byte, bool) {
	switch c {
	case '"', '\'', '\\', '/':
		return c, true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	}
	return 0, false
}

// white skips whitespace and comments (when enabled), returning the
// comment span it crossed.
func (p *parser) white() commentSpan {
	ci := commentSpan{start: p.cur.At - 1}
	for p.cur.Ch > 0 {
		for p.cur.Ch > 0 && p.cur.Ch <= ' ' {
			p.cur.Next()
		}
		if p.cur.Ch == '#' || (p.cur.Ch == '/' && p.cur.Peek(0) == '/') {
			if p.opts.Comments {
				ci.hasComment = true
			}
			for p.cur.Ch > 0 && p.cur.Ch != '\n' {
				p.cur.Next()
			}
		} else if p.cur.Ch == '/' && p.cur.Peek(0) == '*' {
			if p.opts.Comments {
				ci.hasComment = true
			}
			p.cur.Next()
			p.cur.Next()
			for p.cur.Ch > 0 && !(p.cur.Ch == '*' && p.cur.Peek(0) == '/') {
				p.cur.Next()
			}
			if p.cur.Ch > 0 {
				p.cur.Next()
				p.cur.Next()
			}
		} else {
			break
		}
	}
	ci.end = p.cur.At - 1
	return ci
}

// commentAfter is white's same-line variant: it stops at the first '\n'
// rather than crossing it, for the trailing comment a value on its own
// line may carry.
func (p *parser) commentAfter() commentSpan {
	ci := commentSpan{start: p.cur.At - 1}
	for p.cur.Ch > 0 {
		for p.cur.Ch > 0 && p.cur.Ch <= ' ' && p.cur.Ch != '\n' {
			p.cur.Next()
		}
		if p.cur.Ch == '#' || (p.cur.Ch == '/' && p.cur.Peek(0) == '/') {
			if p.opts.Comments {
				ci.hasComment = true
			}
			for p.cur.Ch > 0 && p.cur.Ch != '\n' {
				p.cur.Next()
			}
		} else if p.cur.Ch == '/' && p.cur.Peek(0) == '*' {
			if p.opts.Comments {
				ci.hasComment = true
			}
			p.cur.Next()
			p.cur.Next()
			for p.cur.Ch > 0 && !(p.cur.Ch == '*' && p.cur.Peek(0) == '/') {
				p.cur.Next()
			}
			if p.cur.Ch > 0 {
				p.cur.Next()
				p.cur.Next()
			}
		} else {
			break
		}
	}
	ci.end = p.cur.At - 1
	return ci
}

func (p *parser) hasTrailing() (bool, commentSpan) {
	ci := p.white()
	return p.cur.Ch > 0, ci
}

// rootValue implements the root-level fallback chain: a braced object or
// array is parsed directly and must consume the whole document; failing
// that, a braceless object is attempted and, uniquely, a SyntaxError from
// that attempt is swallowed so a single bare value can be tried instead.
func (p *parser) rootValue() (*Value, error) {
	var ret *Value
	var objErr error
	var ciExtra commentSpan

	ciBefore := p.white()

	switch p.cur.Ch {
	case 0:
		return nil, p.cur.ErrorAt("Found end of file, expected a value")
	case '{':
		v, err := p.readObject(false)
		if err != nil {
			return nil, err
		}
		if trailing, _ := p.hasTrailing(); trailing {
			return nil, p.cur.ErrorAt("Syntax error, found trailing characters")
		}
		ret = v
	case '[':
		v, err := p.readArray()
		if err != nil {
			return nil, err
		}
		if trailing, _ := p.hasTrailing(); trailing {
			return nil, p.cur.ErrorAt("Syntax error, found trailing characters")
		}
		ret = v
	}

	if ret == nil {
		v, err := p.readObject(true)
		if err == nil {
			if trailing, ci := p.hasTrailing(); trailing {
				ret = nil
			} else {
				ret = v
				ciExtra = ci
			}
		} else {
			objErr = err
		}
	}

	if ret == nil {
		p.cur.Reset()
		v, err := p.readValue()
		if err != nil {
			return nil, err
		}
		if trailing, ci := p.hasTrailing(); trailing {
			ret = nil
		} else {
			ret = v
			ciExtra = ci
		}
	}

	if ret != nil {
		setComment(ret, slotBefore, p.cur.Data, ciBefore)
		existingAfter := ret.after
		setComment(ret, slotAfter, p.cur.Data, ciExtra)
		if existingAfter != "" {
			ret.after = existingAfter + ret.after
		}
		return ret, nil
	}

	if objErr != nil {
		return nil, objErr
	}
	return nil, p.cur.ErrorAt("Syntax error, found trailing characters")
}

func (p *parser) readValue() (*Value, error) {
	ciBefore := p.white()

	var ret *Value
	var err error
	switch p.cur.Ch {
	case '{':
		ret, err = p.readObject(false)
	case '[':
		ret, err = p.readArray()
	case '"', '\'':
		var s string
		s, err = p.readString(true)
		if err == nil {
			ret = NewString(s)
		}
	default:
		ret, err = p.readTfnns()
		if err == nil && (p.cur.Ch == '#' || p.cur.Ch == '/') {
			for p.cur.Prev() && isSpaceByte(p.cur.Ch) {
			}
			p.cur.Next()
		}
	}
	if err != nil {
		return nil, err
	}

	ciAfter := p.commentAfter()
	setComment(ret, slotBefore, p.cur.Data, ciBefore)
	setComment(ret, slotAfter, p.cur.Data, ciAfter)
	return ret, nil
}

// readTfnns reads a quoteless token: false/null/true/a number, or
// otherwise a plain string running to end of line. It absorbs punctuation
// that doesn't terminate a recognized keyword or number as literal string
// content, per the quoteless-string grammar.
func (p *parser) readTfnns() (*Value, error) {
	if isPunctuator(p.cur.Ch) {
		return nil, p.cur.ErrorAt(fmt.Sprintf(
			"Found a punctuator character '%c' when expecting a quoteless string (check your syntax)", p.cur.Ch))
	}

	chf := p.cur.Ch
	var buf []byte
	buf = append(buf, p.cur.Ch)

	for {
		p.cur.Next()
		ch := p.cur.Ch
		isEOL := ch == '\r' || ch == '\n' || ch == 0
		if isEOL || ch == ',' || ch == '}' || ch == ']' || ch == '#' ||
			(ch == '/' && (p.cur.Peek(0) == '/' || p.cur.Peek(0) == '*')) {
			trimmed := strings.TrimSpace(string(buf))
			switch chf {
			case 'f':
				if trimmed == "false" {
					return NewBool(false), nil
				}
			case 'n':
				if trimmed == "null" {
					return NewNull(), nil
				}
			case 't':
				if trimmed == "true" {
					return NewBool(true), nil
				}
			default:
				if chf == '-' || (chf >= '0' && chf <= '9') {
					if num, ok := numlit.Parse([]byte(trimmed)); ok {
						if num.IsInt {
							return NewInt(num.Int), nil
						}
						return NewDouble(num.Float), nil
					}
				}
			}
			if isEOL {
				return NewString(trimmed), nil
			}
		}
		buf = append(buf, ch)
	}
}

func (p *parser) readKeyName() (string, error) {
	if p.cur.Ch == '"' || p.cur.Ch == '\'' {
		return p.readString(false)
	}

	var name []byte
	start := p.cur.At
	space := -1
	for {
		switch {
		case p.cur.Ch == ':':
			if len(name) == 0 {
				return "", p.cur.ErrorAt("Found ':' but no key name (for an empty key name use quotes)")
			}
			if space >= 0 && space != len(name) {
				p.cur.At = start + space
				return "", p.cur.ErrorAt("Found whitespace in your key name (use quotes to include)")
			}
			return string(name), nil
		case p.cur.Ch <= ' ':
			if p.cur.Ch == 0 {
				return "", p.cur.ErrorAt("Found EOF while looking for a key name (check your syntax)")
			}
			if space < 0 {
				space = len(name)
			}
		default:
			if isPunctuator(p.cur.Ch) {
				return "", p.cur.ErrorAt(fmt.Sprintf(
					"Found '%c' where a key name was expected (check your syntax or use quotes if the key name includes {}[],: or whitespace)", p.cur.Ch))
			}
			name = append(name, p.cur.Ch)
		}
		p.cur.Next()
	}
}

// readString reads a "..." or '...' quoted string. When allowML is true
// and the opening quote is a single quote immediately followed by two
// more single quotes with nothing read yet, control passes to
// readMLString instead.
func (p *parser) readString(allowML bool) (string, error) {
	var res []byte
	exitCh := p.cur.Ch

	for p.cur.Next() {
		if p.cur.Ch == exitCh {
			p.cur.Next()
			if allowML && exitCh == '\'' && p.cur.Ch == '\'' && len(res) == 0 {
				p.cur.Next()
				return p.readMLString()
			}
			return string(res), nil
		}
		if p.cur.Ch == '\\' {
			p.cur.Next()
			if p.cur.Ch == 'u' {
				var uVal uint32
				for i := 0; i < 4; i++ {
					if !p.cur.Next() {
						return "", p.cur.ErrorAt("Bad \\u char")
					}
					var hex byte
					switch {
					case p.cur.Ch >= '0' && p.cur.Ch <= '9':
						hex = p.cur.Ch - '0'
					case p.cur.Ch >= 'a' && p.cur.Ch <= 'f':
						hex = p.cur.Ch - 'a' + 0xa
					case p.cur.Ch >= 'A' && p.cur.Ch <= 'F':
						hex = p.cur.Ch - 'A' + 0xa
					default:
						return "", p.cur.ErrorAt(fmt.Sprintf("Bad \\u char %c", p.cur.Ch))
					}
					uVal = uVal*16 + uint32(hex)
				}
				enc, err := utf8x.EncodeCodepoint(nil, rune(uVal))
				if err != nil {
					return "", err
				}
				res = append(res, enc...)
			} else if ech, ok := escapee(p.cur.Ch); ok {
				res = append(res, ech)
			} else {
				return "", p.cur.ErrorAt(fmt.Sprintf("Bad escape \\%c", p.cur.Ch))
			}
		} else if p.cur.Ch == '\n' || p.cur.Ch == '\r' {
			return "", p.cur.ErrorAt("Bad string containing newline")
		} else {
			res = append(res, p.cur.Ch)
		}
	}
	return "", p.cur.ErrorAt("Bad string")
}

// readMLString reads the body of a '''...''' multiline string. It strips
// up to as many leading whitespace bytes from every subsequent line as
// there are bytes before the opening ''' on its own line, and drops the
// final line break before the closing '''.
func (p *parser) readMLString() (string, error) {
	var res []byte

	indent := 0
	for {
		c := p.cur.Peek(-indent - 5)
		if c == 0 || c == '\n' {
			break
		}
		indent++
	}

	skipIndent := func() {
		skip := indent
		for p.cur.Ch > 0 && p.cur.Ch <= ' ' && p.cur.Ch != '\n' && skip > 0 {
			skip--
			p.cur.Next()
		}
	}

	for p.cur.Ch > 0 && p.cur.Ch <= ' ' && p.cur.Ch != '\n' {
		p.cur.Next()
	}
	if p.cur.Ch == '\n' {
		p.cur.Next()
		skipIndent()
	}

	triple := 0
	lastLF := false
	for {
		if p.cur.Ch == 0 {
			return "", p.cur.ErrorAt("Bad multiline string")
		} else if p.cur.Ch == '\'' {
			triple++
			p.cur.Next()
			if triple == 3 {
				if lastLF && len(res) > 0 {
					res = res[:len(res)-1]
				}
				return string(res), nil
			}
			continue
		} else {
			for triple > 0 {
				res = append(res, '\'')
				triple--
				lastLF = false
			}
		}

		if p.cur.Ch == '\n' {
			res = append(res, '\n')
			lastLF = true
			p.cur.Next()
			skipIndent()
		} else {
			if p.cur.Ch != '\r' {
				res = append(res, p.cur.Ch)
				lastLF = false
			}
			p.cur.Next()
		}
	}
}

func (p *parser) readArray() (*Value, error) {
	array := NewVector()
	p.cur.Next() // skip '['
	ciBefore := p.white()

	if p.cur.Ch == ']' {
		setComment(array, slotInside, p.cur.Data, ciBefore)
		p.cur.Next()
		return array, nil
	}

	var ciExtra commentSpan
	for p.cur.Ch > 0 {
		elem, err := p.readValue()
		if err != nil {
			return nil, err
		}
		setComment2(elem, slotBefore, p.cur.Data, ciBefore, ciExtra)

		ciAfter := p.white()
		if p.cur.Ch == ',' {
			p.cur.Next()
			ciExtra = p.white()
		} else {
			ciExtra = commentSpan{}
		}

		if p.cur.Ch == ']' {
			existingAfter := elem.after
			setComment2(elem, slotAfter, p.cur.Data, ciAfter, ciExtra)
			if existingAfter != "" {
				elem.after = existingAfter + elem.after
			}
			array.vec = append(array.vec, elem)
			p.cur.Next()
			return array, nil
		}

		array.vec = append(array.vec, elem)
		ciBefore = ciAfter
	}

	return nil, p.cur.ErrorAt("End of input while parsing an array (did you forget a closing ']'?)")
}

// readObject reads a '{'...'}' object, or - when withoutBraces is true -
// a sequence of key: value pairs running to end of input (the root-level
// braceless form).
func (p *parser) readObject(withoutBraces bool) (*Value, error) {
	object := NewMap()

	if !withoutBraces {
		p.cur.Next() // skip '{'
	}

	ciBefore := p.white()

	if p.cur.Ch == '}' && !withoutBraces {
		setComment(object, slotInside, p.cur.Data, ciBefore)
		p.cur.Next()
		return object, nil
	}

	var ciExtra commentSpan
	for p.cur.Ch > 0 {
		key, err := p.readKeyName()
		if err != nil {
			return nil, err
		}
		ciKey := p.white()
		if p.cur.Ch != ':' {
			return nil, p.cur.ErrorAt(fmt.Sprintf("Expected ':' instead of '%c'", p.cur.Ch))
		}
		p.cur.Next()

		elem, err := p.readValue()
		if err != nil {
			return nil, err
		}
		setComment(elem, slotKey, p.cur.Data, ciKey)
		if elem.before != "" {
			elem.key = elem.key + elem.before
			elem.before = ""
		}
		setComment2(elem, slotBefore, p.cur.Data, ciBefore, ciExtra)

		ciAfter := p.white()
		if p.cur.Ch == ',' {
			p.cur.Next()
			ciExtra = p.white()
		} else {
			ciExtra = commentSpan{}
		}

		if p.cur.Ch == '}' && !withoutBraces {
			existingAfter := elem.after
			setComment2(elem, slotAfter, p.cur.Data, ciAfter, ciExtra)
			if existingAfter != "" {
				elem.after = existingAfter + elem.after
			}
			object.Set(key, elem)
			p.cur.Next()
			return object, nil
		}
		object.Set(key, elem)
		ciBefore = ciAfter
	}

	if withoutBraces {
		if object.Len() == 0 {
			setComment(object, slotInside, p.cur.Data, ciBefore)
		} else {
			lastKey, _ := object.KeyAt(object.Len() - 1)
			lastElem, _ := object.Get(lastKey)
			existingAfter := lastElem.after
			setComment2(lastElem, slotAfter, p.cur.Data, ciBefore, ciExtra)
			if existingAfter != "" {
				lastElem.after = existingAfter + lastElem.after
			}
		}
		return object, nil
	}

	return nil, p.cur.ErrorAt("End of input while parsing an object (did you forget a closing '}'?)")
}
