// Package jsonpath reads and edits values inside a JSON document
// addressed by dot-separated paths ("user.name", "items.2.id").
//
// Lookups are zero-copy views into the source text. Edits return a new
// document string and never modify the input; callers that keep history
// record the before/after pair themselves.
package jsonpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrPathNotFound is returned when an operation addresses a path that
// does not exist in the document.
var ErrPathNotFound = errors.New("path not found")

// Lookup returns the value at path. The boolean reports whether the
// path exists; the Result is only meaningful when it does.
func Lookup(content, path string) (gjson.Result, bool) {
	res := gjson.Get(content, path)
	return res, res.Exists()
}

// Set writes value at path and returns the new document. Missing
// intermediate objects are created; numeric path segments address or
// extend arrays.
func Set(content, path string, value any) (string, error) {
	out, err := sjson.Set(content, path, value)
	if err != nil {
		return "", fmt.Errorf("set %s: %w", path, err)
	}
	return out, nil
}

// SetRaw writes a pre-encoded JSON fragment at path and returns the
// new document. The fragment is inserted verbatim, so callers must
// pass valid JSON.
func SetRaw(content, path, rawJSON string) (string, error) {
	out, err := sjson.SetRaw(content, path, rawJSON)
	if err != nil {
		return "", fmt.Errorf("set raw %s: %w", path, err)
	}
	return out, nil
}

// Remove deletes the value at path and returns the new document.
// Returns ErrPathNotFound when the path does not exist.
func Remove(content, path string) (string, error) {
	if !gjson.Get(content, path).Exists() {
		return "", fmt.Errorf("remove %s: %w", path, ErrPathNotFound)
	}
	out, err := sjson.Delete(content, path)
	if err != nil {
		return "", fmt.Errorf("remove %s: %w", path, err)
	}
	return out, nil
}

// Paths returns every leaf path in document order. Scalars, empty
// objects and empty arrays are leaves. A scalar root has no
// addressable path and yields nil.
func Paths(content string) []string {
	root := gjson.Parse(content)
	if !root.IsObject() && !root.IsArray() {
		return nil
	}
	var out []string
	walk(root, "", &out)
	return out
}

func walk(node gjson.Result, prefix string, out *[]string) {
	if node.IsObject() {
		leaf := true
		node.ForEach(func(key, value gjson.Result) bool {
			leaf = false
			walk(value, join(prefix, escapeKey(key.String())), out)
			return true
		})
		if leaf && prefix != "" {
			*out = append(*out, prefix)
		}
		return
	}
	if node.IsArray() {
		i := 0
		leaf := true
		node.ForEach(func(_, value gjson.Result) bool {
			leaf = false
			walk(value, join(prefix, strconv.Itoa(i)), out)
			i++
			return true
		})
		if leaf && prefix != "" {
			*out = append(*out, prefix)
		}
		return
	}
	if prefix != "" {
		*out = append(*out, prefix)
	}
}

func join(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return prefix + "." + segment
}

// escapeKey protects path metacharacters inside an object key so that
// keys like "a.b" round-trip through Lookup.
func escapeKey(key string) string {
	if !strings.ContainsAny(key, `\.*?`) {
		return key
	}
	var b strings.Builder
	b.Grow(len(key) + 2)
	for _, r := range key {
		switch r {
		case '\\', '.', '*', '?':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
