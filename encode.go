package hjson

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/hjson-lang/go-hjson/internal/numlit"
	"github.com/hjson-lang/go-hjson/internal/utf8x"
)

// EncoderOptions controls Marshal / MarshalToFile.
type EncoderOptions struct {
	EOL                    string
	BracesSameLine         bool
	QuoteAlways            bool
	QuoteKeys              bool
	IndentBy               string
	AllowMinusZero         bool
	UnknownAsNull          bool
	Separator              bool
	PreserveInsertionOrder bool
	OmitRootBraces         bool
	Comments               bool
}

// DefaultEncoderOptions returns the options Marshal uses when called with
// no EncoderOption: "\n" line endings, two-space indent, braces on the
// same line as the key that opens them, insertion order preserved,
// comments on, everything else off.
func DefaultEncoderOptions() EncoderOptions {
	return EncoderOptions{
		EOL:                    "\n",
		BracesSameLine:         true,
		IndentBy:               "  ",
		PreserveInsertionOrder: true,
		Comments:               true,
	}
}

// EncoderOption configures an EncoderOptions value.
type EncoderOption func(*EncoderOptions)

func WithEOL(eol string) EncoderOption { return func(o *EncoderOptions) { o.EOL = eol } }

func WithBracesSameLine(v bool) EncoderOption {
	return func(o *EncoderOptions) { o.BracesSameLine = v }
}

func WithQuoteAlways(v bool) EncoderOption { return func(o *EncoderOptions) { o.QuoteAlways = v } }

func WithQuoteKeys(v bool) EncoderOption { return func(o *EncoderOptions) { o.QuoteKeys = v } }

func WithIndentBy(s string) EncoderOption { return func(o *EncoderOptions) { o.IndentBy = s } }

func WithAllowMinusZero(v bool) EncoderOption {
	return func(o *EncoderOptions) { o.AllowMinusZero = v }
}

func WithUnknownAsNull(v bool) EncoderOption {
	return func(o *EncoderOptions) { o.UnknownAsNull = v }
}

func WithSeparator(v bool) EncoderOption { return func(o *EncoderOptions) { o.Separator = v } }

func WithPreserveInsertionOrder(v bool) EncoderOption {
	return func(o *EncoderOptions) { o.PreserveInsertionOrder = v }
}

func WithOmitRootBraces(v bool) EncoderOption {
	return func(o *EncoderOptions) { o.OmitRootBraces = v }
}

func WithComments(v bool) EncoderOption { return func(o *EncoderOptions) { o.Comments = v } }

func resolveEncoderOptions(opts []EncoderOption) EncoderOptions {
	o := DefaultEncoderOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Separator {
		o.QuoteAlways = true
	}
	return o
}

// Marshal renders v as Hjson text.
func Marshal(v *Value, opts ...EncoderOption) (string, error) {
	return marshal(v, resolveEncoderOptions(opts))
}

// MarshalJSON renders v as strict JSON: braces on the same line, every
// string and key quoted, comments dropped.
func MarshalJSON(v *Value) (string, error) {
	return Marshal(v,
		WithBracesSameLine(true),
		WithQuoteAlways(true),
		WithQuoteKeys(true),
		WithSeparator(true),
		WithComments(false),
	)
}

// MarshalToFile renders v and writes it to path, followed by the
// configured end-of-line sequence.
func MarshalToFile(v *Value, path string, opts ...EncoderOption) error {
	o := resolveEncoderOptions(opts)
	s, err := marshal(v, o)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(s+o.EOL), 0o644); err != nil {
		return &FileError{Op: "write", Path: path, Err: err}
	}
	return nil
}

var statePool = sync.Pool{New: func() any { return &encoderState{} }}

func newState(o EncoderOptions) *encoderState {
	e := statePool.Get().(*encoderState)
	e.buf.Reset()
	e.opts = o
	e.indent = 0
	e.err = nil
	return e
}

func putState(e *encoderState) { statePool.Put(e) }

func marshal(v *Value, o EncoderOptions) (string, error) {
	if v == nil {
		v = NewNull()
	}
	e := newState(o)
	defer putState(e)
	e.str(v, true, "", true, false)
	if e.err != nil {
		return "", e.err
	}
	return e.buf.String(), nil
}

type encoderState struct {
	buf    strings.Builder
	opts   EncoderOptions
	indent int
	err    error
}

func (e *encoderState) write(s string) {
	if e.err != nil {
		return
	}
	e.buf.WriteString(s)
}

func (e *encoderState) writeIndent(indent int) {
	e.write(e.opts.EOL)
	for i := 0; i < indent; i++ {
		e.write(e.opts.IndentBy)
	}
}

// str is the main recursive emitter: write the before/key comment, the
// value itself, then the after comment.
func (e *encoderState) str(v *Value, noIndent bool, separator string, isRootObject, isObjElement bool) {
	if e.err != nil || v == nil {
		return
	}

	if e.opts.Comments {
		if isObjElement {
			e.write(v.key)
		} else {
			e.write(v.before)
		}
	}

	switch v.typ {
	case TypeDouble:
		e.write(separator)
		switch {
		case math.IsNaN(v.f) || math.IsInf(v.f, 0):
			e.write("null")
		case !e.opts.AllowMinusZero && v.f == 0 && math.Signbit(v.f):
			e.write("0")
		default:
			e.write(formatDouble(v.f))
		}
	case TypeInt:
		e.write(separator)
		e.write(strconv.FormatInt(v.i, 10))
	case TypeBool:
		e.write(separator)
		if v.b {
			e.write("true")
		} else {
			e.write("false")
		}
	case TypeNull, TypeUndefined:
		e.write(separator)
		e.write("null")
	case TypeString:
		e.quote(v.s, separator, isRootObject, e.opts.Comments && v.after != "")
	case TypeVector:
		e.vector(v, noIndent, separator)
	case TypeMap:
		e.object(v, noIndent, separator, isRootObject)
	}

	if e.opts.Comments {
		e.write(v.after)
	}
}

func formatDouble(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func (e *encoderState) vector(v *Value, noIndent bool, separator string) {
	if len(v.vec) == 0 {
		e.write(separator)
		e.write("[")
		if e.opts.Comments {
			e.write(v.inside)
		}
		e.write("]")
		return
	}

	indent1 := e.indent
	e.indent++

	if !noIndent && !e.opts.BracesSameLine && (!e.opts.Comments || v.before == "") {
		e.writeIndent(indent1)
	} else {
		e.write(separator)
	}
	e.write("[")

	isFirst := true
	for _, elem := range v.vec {
		if !elem.Defined() {
			continue
		}
		if isFirst {
			isFirst = false
		} else if e.opts.Separator {
			e.write(",")
		}
		if !e.opts.Comments || elem.before == "" {
			e.writeIndent(e.indent)
		}
		e.str(elem, true, "", false, false)
	}

	last := v.vec[len(v.vec)-1]
	if !e.opts.Comments || last.after == "" {
		e.writeIndent(indent1)
	}
	e.write("]")

	e.indent = indent1
}

func (e *encoderState) object(v *Value, noIndent bool, separator string, isRootObject bool) {
	if v.Len() == 0 {
		e.write(separator)
		e.write("{}")
		return
	}

	indent1 := e.indent
	omitBraces := e.opts.OmitRootBraces && isRootObject

	if !omitBraces {
		e.indent++
		if !noIndent && !e.opts.BracesSameLine {
			e.writeIndent(indent1)
		} else {
			e.write(separator)
		}
		e.write("{")
	}

	isFirst := true
	for _, k := range v.Keys() {
		elem, _ := v.Get(k)
		if !elem.Defined() {
			continue
		}
		e.objElem(k, elem, &isFirst, isRootObject)
	}

	if !omitBraces {
		e.writeIndent(indent1)
		e.write("}")
	}

	e.indent = indent1
}

func (e *encoderState) objElem(key string, v *Value, isFirst *bool, isRootObject bool) {
	hasComment := e.opts.Comments && v.before != ""
	omitBraces := e.opts.OmitRootBraces && isRootObject

	if *isFirst {
		*isFirst = false
		if !omitBraces && !hasComment {
			e.writeIndent(e.indent)
		}
	} else if !hasComment {
		if e.opts.Separator {
			e.write(",")
		}
		e.writeIndent(e.indent)
	}

	if hasComment {
		e.write(v.before)
	}

	e.quoteName(key)
	e.write(":")

	sep := " "
	if e.opts.Comments && v.key != "" {
		sep = ""
	}
	e.str(v, false, sep, false, true)
}

// quote implements the quoting decision tree: bare, plain-quoted,
// multiline, or escaped-quoted, in that order of preference.
func (e *encoderState) quote(value, separator string, isRootObject, hasCommentAfter bool) {
	if len(value) == 0 {
		e.write(separator)
		e.write(`""`)
		return
	}

	mustQuote := e.opts.QuoteAlways || needsQuotes(value) || numlit.LooksLikeNumber(value) ||
		startsWithKeyword(value) || hasCommentAfter

	if !mustQuote {
		e.write(separator)
		e.write(value)
		return
	}

	switch {
	case !needsEscape(value):
		e.write(separator)
		e.write(`"`)
		e.write(value)
		e.write(`"`)
	case !e.opts.QuoteAlways && !needsEscapeML(value) && !isRootObject:
		e.mlString(value, separator)
	default:
		e.write(separator)
		e.write(`"`)
		e.quoteReplace(value)
		e.write(`"`)
	}
}

func (e *encoderState) quoteName(name string) {
	if name == "" {
		e.write(`""`)
		return
	}
	if !e.opts.QuoteKeys && !needsEscapeName(name) {
		e.write(name)
		return
	}
	e.write(`"`)
	if needsEscape(name) {
		e.quoteReplace(name)
	} else {
		e.write(name)
	}
	e.write(`"`)
}

func (e *encoderState) quoteReplace(s string) {
	data := []byte(s)
	pos := 0
	for {
		start, end, found := nextEscapeMatch(data, pos)
		if !found {
			e.buf.Write(data[pos:])
			return
		}
		if start > pos {
			e.buf.Write(data[pos:start])
		}
		match := data[start:end]
		if len(match) == 1 {
			if m := metaEscape(match[0]); m != "" {
				e.write(m)
			} else {
				e.write(fmt.Sprintf("\\u%04x", match[0]))
			}
			pos = end
			continue
		}
		if r, _, ok := utf8x.DecodeCodepoint(match); ok {
			e.write(fmt.Sprintf("\\u%04x", r))
		} else {
			e.buf.Write(match)
		}
		pos = end
	}
}

type lineBreak struct{ start, end int }

func findLineBreaks(s string) []lineBreak {
	var out []lineBreak
	for i := 0; i < len(s); {
		switch {
		case s[i] == '\r' && i+1 < len(s) && s[i+1] == '\n':
			out = append(out, lineBreak{i, i + 2})
			i += 2
		case s[i] == '\r' || s[i] == '\n':
			out = append(out, lineBreak{i, i + 1})
			i++
		default:
			i++
		}
	}
	return out
}

// mlString wraps value in '''...''', re-indenting each line one level
// deeper than the current indent. Blank lines are written without
// trailing indentation whitespace.
func (e *encoderState) mlString(value, separator string) {
	breaks := findLineBreaks(value)
	if len(breaks) == 0 {
		e.write(separator)
		e.write("'''")
		e.write(value)
		e.write("'''")
		return
	}

	e.writeIndent(e.indent + 1)
	e.write("'''")

	pos := 0
	for _, br := range breaks {
		indent := e.indent + 1
		if br.start == pos {
			indent = 0
		}
		e.writeIndent(indent)
		if br.start > pos {
			e.write(value[pos:br.start])
		}
		pos = br.end
	}

	if pos < len(value) {
		e.writeIndent(e.indent + 1)
		e.write(value[pos:])
	} else {
		e.writeIndent(0)
	}
	e.writeIndent(e.indent + 1)
	e.write("'''")
}

// The five classifier scanners below are hand-written byte walks, not
// regexps: each one only ever needs a single linear pass with no
// backtracking, and the patterns are fixed byte ranges known at compile
// time, so a regexp engine would add indirection without buying anything
// back.

func metaEscape(c byte) string {
	switch c {
	case '\b':
		return `\b`
	case '\t':
		return `\t`
	case '\n':
		return `\n`
	case '\f':
		return `\f`
	case '\r':
		return `\r`
	case '"':
		return `\"`
	case '\\':
		return `\\`
	}
	return ""
}

// formatControlLen reports the byte length of a format-control UTF-8
// sequence starting at b[0] (the ranges in spec.md §6.4), or 0 if b
// doesn't start with one.
func formatControlLen(b []byte) int {
	switch {
	case len(b) >= 2 && b[0] == 0xc2 && b[1] == 0xad:
		return 2
	case len(b) >= 2 && b[0] == 0xd8 && b[1] >= 0x80 && b[1] <= 0x84:
		return 2
	case len(b) >= 2 && b[0] == 0xdc && b[1] == 0x8f:
		return 2
	case len(b) >= 3 && b[0] == 0xe1 && b[1] == 0x9e && (b[2] == 0xb4 || b[2] == 0xb5):
		return 3
	case len(b) >= 3 && b[0] == 0xe2 && b[1] == 0x80 && b[2] >= 0x8c && b[2] <= 0x8f:
		return 3
	case len(b) >= 3 && b[0] == 0xe2 && b[1] == 0x80 && b[2] >= 0xa8 && b[2] <= 0xaf:
		return 3
	case len(b) >= 3 && b[0] == 0xe2 && b[1] == 0x81 && b[2] >= 0xa0 && b[2] <= 0xaf:
		return 3
	case len(b) >= 3 && b[0] == 0xef && b[1] == 0xbb && b[2] == 0xbf:
		return 3
	case len(b) >= 3 && b[0] == 0xef && b[1] == 0xbf && b[2] >= 0xb0 && b[2] <= 0xbf:
		return 3
	}
	return 0
}

// nextEscapeMatch finds the next byte (backslash, quote, control byte) or
// format-control sequence that needsEscape/needsQuotes/quoteReplace care
// about, starting at or after from.
func nextEscapeMatch(data []byte, from int) (start, end int, found bool) {
	for i := from; i < len(data); {
		c := data[i]
		if c == '\\' || c == '"' || c < 0x20 {
			return i, i + 1, true
		}
		if n := formatControlLen(data[i:]); n > 0 {
			return i, i + n, true
		}
		i++
	}
	return 0, 0, false
}

func needsEscape(s string) bool {
	_, _, found := nextEscapeMatch([]byte(s), 0)
	return found
}

func needsQuotes(s string) bool {
	if s == "" {
		return false
	}
	b := []byte(s)

	if isSpaceByte(b[0]) {
		return true
	}
	switch b[0] {
	case '"', '\'', '#', '{', '}', '[', ']', ':', ',':
		return true
	}
	if len(b) >= 2 && b[0] == '/' && (b[1] == '*' || b[1] == '/') {
		return true
	}
	if isSpaceByte(b[len(b)-1]) {
		return true
	}
	for i := 0; i < len(b); {
		c := b[i]
		if c <= 0x1f {
			return true
		}
		if n := formatControlLen(b[i:]); n > 0 {
			return true
		}
		i++
	}
	return false
}

func needsEscapeML(s string) bool {
	if strings.Contains(s, "'''") {
		return true
	}
	b := []byte(s)
	if len(b) > 0 && isAllWhitespace(b) {
		return true
	}
	for i := 0; i < len(b); {
		c := b[i]
		if c <= 0x08 || c == 0x0b || c == 0x0c || (c >= 0x0e && c <= 0x1f) {
			return true
		}
		if n := formatControlLen(b[i:]); n > 0 {
			return true
		}
		i++
	}
	return false
}

func isAllWhitespace(b []byte) bool {
	for _, c := range b {
		if !isSpaceByte(c) {
			return false
		}
	}
	return true
}

// startsWithKeyword reports whether s would be misread back as the
// keyword true/false/null followed by a terminator, rather than as the
// literal string s, if written unquoted.
func startsWithKeyword(s string) bool {
	for _, kw := range [...]string{"true", "false", "null"} {
		if !strings.HasPrefix(s, kw) {
			continue
		}
		rest := s[len(kw):]
		i := 0
		for i < len(rest) && isSpaceByte(rest[i]) {
			i++
		}
		if i == len(rest) {
			return true
		}
		rem := rest[i:]
		if strings.HasPrefix(rem, ",") || strings.HasPrefix(rem, "]") ||
			strings.HasPrefix(rem, "}") || strings.HasPrefix(rem, "#") ||
			strings.HasPrefix(rem, "//") || strings.HasPrefix(rem, "/*") {
			return true
		}
	}
	return false
}

func needsEscapeName(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ',', '{', '[', '}', ']', ':', '#', '"', '\'':
			return true
		}
		if isSpaceByte(s[i]) {
			return true
		}
	}
	return strings.Contains(s, "//") || strings.Contains(s, "/*")
}
