package hjson

import (
	"fmt"

	"github.com/hjson-lang/go-hjson/internal/cursor"
	"github.com/hjson-lang/go-hjson/internal/utf8x"
)

// SyntaxError reports a malformed Hjson document: a message together with
// the 1-based line and column it occurred at, and up to 20 bytes of
// context starting at the beginning of the offending line.
type SyntaxError = cursor.Error

// LogicError indicates a caller bug rather than a malformed document: an
// attempt to encode a Unicode code point outside the range UTF-8 can
// represent.
type LogicError = utf8x.InvalidCodepointError

// FileError reports an I/O failure at one of the file-based entry points
// (UnmarshalFromFile, MarshalToFile).
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("hjson: could not %s file %q: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }
