package validate

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/dshills/jsonforge/jsonfmt"
)

// Structural health limits applied by Simple when structure checks are
// enabled. Exceeding a limit produces a warning, never an error.
const (
	DefaultMaxDepth    = 10
	DefaultMaxTopKeys  = 100
	DefaultMaxArrayLen = 1000
)

// Simple checks that content is well-formed JSON and optionally warns
// about structural extremes (deep nesting, very wide objects, very
// long arrays). Empty content is valid by default.
type Simple struct {
	toggle

	allowEmpty     bool
	checkStructure bool
	maxDepth       int
	maxTopKeys     int
	maxArrayLen    int
}

// SimpleOption configures a Simple strategy.
type SimpleOption func(*Simple)

// WithAllowEmpty controls whether empty content is considered valid.
func WithAllowEmpty(allow bool) SimpleOption {
	return func(s *Simple) { s.allowEmpty = allow }
}

// WithStructureChecks controls whether structural health warnings are
// produced.
func WithStructureChecks(check bool) SimpleOption {
	return func(s *Simple) { s.checkStructure = check }
}

// NewSimple creates a Simple strategy. Without options it allows empty
// content and performs structure checks with the default limits.
func NewSimple(opts ...SimpleOption) *Simple {
	s := &Simple{
		allowEmpty:     true,
		checkStructure: true,
		maxDepth:       DefaultMaxDepth,
		maxTopKeys:     DefaultMaxTopKeys,
		maxArrayLen:    DefaultMaxArrayLen,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name identifies the strategy.
func (s *Simple) Name() string { return "simple" }

// Validate checks text for well-formedness and structural health.
func (s *Simple) Validate(text string) *Result {
	start := time.Now()
	res := NewResult(s.Name())
	defer func() { res.Duration = time.Since(start) }()

	if strings.TrimSpace(text) == "" {
		res.Message = "document is empty"
		if !s.allowEmpty {
			res.AddError(Error{Message: "document is empty", Kind: KindSyntax})
		}
		return res
	}

	if err := jsonfmt.Check(text); err != nil {
		res.Message = "JSON syntax error"
		var serr *jsonfmt.SyntaxError
		if errors.As(err, &serr) {
			res.AddError(Error{
				Message: serr.Message,
				Line:    serr.Line,
				Column:  serr.Column,
				Kind:    KindSyntax,
			})
		} else {
			res.AddError(Error{Message: err.Error(), Kind: KindSyntax})
		}
		return res
	}

	res.Message = "JSON is valid"
	if s.checkStructure {
		s.checkHealth(gjson.Parse(text), res)
		if n := len(res.Warnings); n > 0 {
			res.Message = fmt.Sprintf("JSON is valid (%d structure warnings)", n)
		}
	}
	return res
}

func (s *Simple) checkHealth(root gjson.Result, res *Result) {
	switch {
	case root.IsObject():
		if d := depthOf(root); d > s.maxDepth {
			res.AddWarning(fmt.Sprintf("deep nesting: %d levels (limit %d)", d, s.maxDepth))
		}
		if n := len(root.Map()); n > s.maxTopKeys {
			res.AddWarning(fmt.Sprintf("large object: %d top-level keys (limit %d)", n, s.maxTopKeys))
		}
	case root.IsArray():
		if n := len(root.Array()); n > s.maxArrayLen {
			res.AddWarning(fmt.Sprintf("large array: %d elements (limit %d)", n, s.maxArrayLen))
		}
	}
}

// depthOf returns the container nesting depth. Scalars have depth 0,
// an empty container depth 1.
func depthOf(r gjson.Result) int {
	if !r.IsObject() && !r.IsArray() {
		return 0
	}
	deepest := 0
	r.ForEach(func(_, v gjson.Result) bool {
		if d := depthOf(v); d > deepest {
			deepest = d
		}
		return true
	})
	return 1 + deepest
}
