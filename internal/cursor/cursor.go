// Package cursor implements a one-character-lookahead byte cursor over an
// in-memory document, plus the line/column/context error formatting every
// parser built on top of it needs.
package cursor

import "fmt"

// Cursor walks Data one byte at a time, keeping the byte under the cursor
// in Ch so callers never have to re-index Data themselves.
type Cursor struct {
	Data []byte
	At   int
	Ch   byte
}

// New returns a Cursor positioned on the first byte of data (Ch is 0 if
// data is empty).
func New(data []byte) *Cursor {
	c := &Cursor{Data: data}
	c.Reset()
	return c
}

// Reset rewinds the cursor to the start of Data.
func (c *Cursor) Reset() {
	c.At = 0
	c.Next()
}

// Next advances the cursor by one byte and reports whether a byte was
// available. Past the end of Data, Ch reads as 0 and At keeps climbing,
// matching how the quoteless-token and whitespace scanners probe for EOF.
func (c *Cursor) Next() bool {
	if c.At < len(c.Data) {
		c.Ch = c.Data[c.At]
		c.At++
		return true
	}
	c.Ch = 0
	c.At++
	return false
}

// Prev steps the cursor back by one byte. It refuses to back up past the
// first byte (At > 1 is required), so repeated backing-up at the start of
// the document is a no-op rather than a panic.
func (c *Cursor) Prev() bool {
	if c.At > 1 {
		c.At--
		c.Ch = c.Data[c.At-1]
		return true
	}
	return false
}

// Peek returns the byte offset bytes ahead of the cursor without moving
// it, or 0 if that position falls outside Data.
func (c *Cursor) Peek(offset int) byte {
	pos := c.At + offset
	if pos >= 0 && pos < len(c.Data) {
		return c.Data[pos]
	}
	return 0
}

// Error reports a syntax problem at a specific line and column, with up to
// 20 bytes of surrounding context starting at the beginning of the
// offending line.
type Error struct {
	Message string
	Line    int
	Column  int
	Context string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at line %d,%d >>> %s", e.Message, e.Line, e.Column, e.Context)
}

// ErrorAt builds an Error positioned at the cursor's current location,
// walking backward through Data to compute the 1-based line and column and
// a short context sample from the start of that line.
func (c *Cursor) ErrorAt(message string) error {
	pos := c.At - 1
	if pos > len(c.Data) {
		pos = len(c.Data)
	}
	if pos < 0 {
		pos = 0
	}
	lineStart := pos
	for lineStart > 0 && c.Data[lineStart-1] != '\n' {
		lineStart--
	}
	line := 1
	for i := 0; i < lineStart; i++ {
		if c.Data[i] == '\n' {
			line++
		}
	}

	sampleEnd := lineStart + 20
	if sampleEnd > len(c.Data) {
		sampleEnd = len(c.Data)
	}

	return &Error{
		Message: message,
		Line:    line,
		Column:  pos - lineStart + 1,
		Context: string(c.Data[lineStart:sampleEnd]),
	}
}
