// Package validate provides the validation strategies for JSON
// document content and the structured verdict recorded on a document
// after each run.
//
// The closed set of strategies is Simple (well-formedness plus
// structural health warnings), Schema (a JSON Schema subset), and
// Composite (aggregation of other strategies). All three implement
// Strategy.
package validate

import (
	"fmt"
	"time"
)

// Error kinds. Kind classifies why a validation error was produced.
const (
	KindSyntax      = "syntax"
	KindSchema      = "schema"
	KindNoSchema    = "no_schema"
	KindSchemaError = "schema_error"
	KindStructure   = "structure"
)

// Error is a single structured validation failure.
type Error struct {
	// Message describes the failure.
	Message string

	// Line is the 1-based line of the failure, 0 when unknown.
	Line int

	// Column is the 1-based column of the failure, 0 when unknown.
	Column int

	// Path locates the failing value (dot notation), "" when not
	// applicable.
	Path string

	// Kind classifies the error (see the Kind constants).
	Kind string
}

func (e Error) String() string {
	switch {
	case e.Path != "":
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
	default:
		return e.Message
	}
}

// Result is the verdict of a single validation run. A document stores
// only the most recent Result; there is no history of verdicts.
type Result struct {
	// Valid reports whether the content passed validation.
	Valid bool

	// Validator names the strategy that produced the result.
	Validator string

	// Message is a human-readable summary.
	Message string

	// Errors holds the structured failures, empty when Valid.
	Errors []Error

	// Warnings holds non-fatal findings.
	Warnings []string

	// Timestamp is when the run started.
	Timestamp time.Time

	// Duration is how long the run took.
	Duration time.Duration
}

// NewResult creates a valid Result for the named validator.
func NewResult(validator string) *Result {
	return &Result{
		Valid:     true,
		Validator: validator,
		Timestamp: time.Now(),
	}
}

// AddError records a failure and marks the result invalid.
func (r *Result) AddError(e Error) {
	r.Valid = false
	r.Errors = append(r.Errors, e)
}

// AddWarning records a non-fatal finding.
func (r *Result) AddWarning(w string) {
	r.Warnings = append(r.Warnings, w)
}

// Summary returns a one-line description of the result. It is safe to
// call on a nil Result.
func (r *Result) Summary() string {
	if r == nil {
		return "not validated"
	}
	if r.Valid {
		if len(r.Warnings) > 0 {
			return fmt.Sprintf("valid (%d warnings)", len(r.Warnings))
		}
		return "valid"
	}
	return fmt.Sprintf("invalid (%d errors)", len(r.Errors))
}
