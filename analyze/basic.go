package analyze

import "github.com/tidwall/gjson"

// BasicReport summarizes the shape of a document.
type BasicReport struct {
	// TotalKeys counts every object key in the document.
	TotalKeys int

	// TotalValues counts every object value and array element.
	TotalValues int

	// MaxDepth is the deepest nesting level; the root sits at 0.
	MaxDepth int

	// Types counts values by JSON type name ("string", "number",
	// "boolean", "null", "object", "array").
	Types map[string]int

	// RootType is the JSON type name of the root value.
	RootType string

	// RootKeys lists the root's keys in document order. Nil unless
	// the root is an object.
	RootKeys []string

	// RootLength is the root's child count, 0 for scalar roots.
	RootLength int
}

// Basic reports key/value totals, nesting depth, and per-type counts.
type Basic struct{}

// NewBasic creates a basic structure analyzer.
func NewBasic() *Basic { return &Basic{} }

// Name implements Analyzer.
func (b *Basic) Name() string { return "basic" }

// Analyze implements Analyzer. It never fails.
func (b *Basic) Analyze(root gjson.Result) (any, error) {
	rep := &BasicReport{
		Types:    make(map[string]int),
		RootType: typeName(root),
	}
	b.walk(root, 0, rep)

	if root.IsObject() {
		root.ForEach(func(key, _ gjson.Result) bool {
			rep.RootKeys = append(rep.RootKeys, key.String())
			return true
		})
		rep.RootLength = len(rep.RootKeys)
	} else if root.IsArray() {
		root.ForEach(func(_, _ gjson.Result) bool {
			rep.RootLength++
			return true
		})
	}
	return rep, nil
}

func (b *Basic) walk(node gjson.Result, depth int, rep *BasicReport) {
	if depth > rep.MaxDepth {
		rep.MaxDepth = depth
	}

	switch {
	case node.IsObject():
		node.ForEach(func(_, value gjson.Result) bool {
			rep.TotalKeys++
			rep.TotalValues++
			rep.Types[typeName(value)]++
			b.walk(value, depth+1, rep)
			return true
		})
	case node.IsArray():
		node.ForEach(func(_, value gjson.Result) bool {
			rep.TotalValues++
			rep.Types[typeName(value)]++
			b.walk(value, depth+1, rep)
			return true
		})
	}
}
