// Package jsonfmt provides JSON syntax checking with positioned errors
// and whole-document formatting. Formatting operates on the raw text,
// so key order and number representations are preserved exactly.
package jsonfmt

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// DefaultIndent is the indent width used when a caller passes a
// non-positive indent.
const DefaultIndent = 2

// SyntaxError describes a JSON syntax failure and where it occurred.
type SyntaxError struct {
	// Line is the 1-based line of the failure.
	Line int

	// Column is the 1-based column of the failure.
	Column int

	// Offset is the byte offset reported by the parser.
	Offset int64

	// Message is the parser's description of the failure.
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// Check reports whether text is valid JSON. It returns nil for valid
// input and a *SyntaxError with line and column information otherwise.
func Check(text string) error {
	if gjson.Valid(text) {
		return nil
	}

	var v any
	err := json.Unmarshal([]byte(text), &v)
	if err == nil {
		return &SyntaxError{Line: 1, Column: 1, Message: "invalid JSON"}
	}

	var serr *json.SyntaxError
	if errors.As(err, &serr) {
		line, col := Position(text, serr.Offset)
		return &SyntaxError{Line: line, Column: col, Offset: serr.Offset, Message: serr.Error()}
	}
	return &SyntaxError{Line: 1, Column: 1, Message: err.Error()}
}

// Position converts a parser byte offset into 1-based line and column
// numbers. Offsets follow the encoding/json convention of pointing just
// past the offending byte; out-of-range offsets are clamped.
func Position(text string, offset int64) (line, column int) {
	end := int(offset)
	if end > len(text) {
		end = len(text)
	}
	if end < 1 {
		return 1, 1
	}

	line = 1
	lineStart := 0
	for i := 0; i < end; i++ {
		if text[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}

	column = end - lineStart
	if column < 1 {
		column = 1
	}
	return line, column
}

// Format re-serializes text with the given indent width in spaces.
// Key order is preserved. Invalid input returns a *SyntaxError.
func Format(text string, indent int) (string, error) {
	if err := Check(text); err != nil {
		return "", err
	}
	if indent <= 0 {
		indent = DefaultIndent
	}

	opts := &pretty.Options{Indent: strings.Repeat(" ", indent), Width: 80}
	out := pretty.PrettyOptions([]byte(text), opts)
	return strings.TrimRight(string(out), "\n"), nil
}

// Compact removes all insignificant whitespace from text.
// Invalid input returns a *SyntaxError.
func Compact(text string) (string, error) {
	if err := Check(text); err != nil {
		return "", err
	}
	return strings.TrimRight(string(pretty.Ugly([]byte(text))), "\n"), nil
}
