// Package analyze runs read-only structural analysis over a JSON
// document. A Run parses the text once and hands the parsed root to
// each analyzer, timing every step along the way.
package analyze

import (
	"fmt"
	"time"

	"github.com/tidwall/gjson"

	"github.com/dshills/jsonforge/jsonfmt"
)

// Analyzer inspects a parsed document and produces a report. Analyzers
// must not retain the root beyond the call; it views the text passed
// to Run.
type Analyzer interface {
	// Name identifies the analyzer and keys its report in the Result.
	Name() string

	// Analyze produces a report for the document rooted at root.
	Analyze(root gjson.Result) (any, error)
}

// Step records one stage of a run.
type Step struct {
	// Name is "syntax", "parse", or an analyzer name.
	Name string

	// Duration is how long the step took.
	Duration time.Duration

	// Err is the step's failure, nil on success.
	Err error
}

// Result is the outcome of a run.
type Result struct {
	// Steps lists every stage in execution order.
	Steps []Step

	// Reports holds each successful analyzer's report, keyed by name.
	Reports map[string]any

	// Duration is the total run time.
	Duration time.Duration
}

// Report returns the named analyzer's report.
func (r *Result) Report(name string) (any, bool) {
	rep, ok := r.Reports[name]
	return rep, ok
}

// Run checks content for syntax errors, parses it, and applies each
// analyzer in order. Invalid JSON stops the run; the returned Result
// still carries the failed syntax step. An analyzer failure is
// recorded in its Step and run continues with the rest.
func Run(content string, analyzers ...Analyzer) (*Result, error) {
	start := time.Now()
	res := &Result{Reports: make(map[string]any)}

	stepStart := time.Now()
	err := jsonfmt.Check(content)
	res.Steps = append(res.Steps, Step{Name: "syntax", Duration: time.Since(stepStart), Err: err})
	if err != nil {
		res.Duration = time.Since(start)
		return res, fmt.Errorf("analyze: %w", err)
	}

	stepStart = time.Now()
	root := gjson.Parse(content)
	res.Steps = append(res.Steps, Step{Name: "parse", Duration: time.Since(stepStart)})

	for _, a := range analyzers {
		if a == nil {
			continue
		}
		stepStart = time.Now()
		report, aerr := a.Analyze(root)
		res.Steps = append(res.Steps, Step{Name: a.Name(), Duration: time.Since(stepStart), Err: aerr})
		if aerr == nil {
			res.Reports[a.Name()] = report
		}
	}

	res.Duration = time.Since(start)
	return res, nil
}

// typeName maps a parsed value to its JSON type name.
func typeName(r gjson.Result) string {
	switch {
	case r.IsObject():
		return "object"
	case r.IsArray():
		return "array"
	case r.Type == gjson.String:
		return "string"
	case r.Type == gjson.Number:
		return "number"
	case r.Type == gjson.True, r.Type == gjson.False:
		return "boolean"
	default:
		return "null"
	}
}
