package validate

import (
	"strings"
	"testing"
)

func mustSchema(t *testing.T, text string) *SchemaStrategy {
	t.Helper()
	s, err := NewSchemaFromJSON(text)
	if err != nil {
		t.Fatalf("NewSchemaFromJSON error = %v", err)
	}
	return s
}

// firstError fails the test when the result has no errors.
func firstError(t *testing.T, res *Result) Error {
	t.Helper()
	if len(res.Errors) == 0 {
		t.Fatalf("result has no errors, want at least one")
	}
	return res.Errors[0]
}

func TestSchemaNoSchema(t *testing.T) {
	res := NewSchema(nil).Validate(`{"a": 1}`)
	if res.Valid {
		t.Fatal("Valid = true, want false without a schema")
	}
	if e := firstError(t, res); e.Kind != KindNoSchema {
		t.Errorf("Kind = %q, want %q", e.Kind, KindNoSchema)
	}
}

func TestSchemaSyntaxFirst(t *testing.T) {
	s := mustSchema(t, `{"type": "object"}`)

	t.Run("empty document", func(t *testing.T) {
		res := s.Validate("  ")
		if res.Valid {
			t.Fatal("Valid = true, want false for empty content")
		}
		if e := firstError(t, res); e.Kind != KindSyntax {
			t.Errorf("Kind = %q, want %q", e.Kind, KindSyntax)
		}
	})

	t.Run("malformed document", func(t *testing.T) {
		res := s.Validate("{\n  \"a\": ,\n}")
		if res.Valid {
			t.Fatal("Valid = true, want false for malformed content")
		}
		e := firstError(t, res)
		if e.Kind != KindSyntax {
			t.Errorf("Kind = %q, want %q", e.Kind, KindSyntax)
		}
		if e.Line != 2 {
			t.Errorf("Line = %d, want 2", e.Line)
		}
	})
}

func TestSchemaConstraints(t *testing.T) {
	tests := []struct {
		name      string
		schema    string
		content   string
		wantValid bool
		wantPath  string
		wantMsg   string
	}{
		{
			name:      "matching object",
			schema:    `{"type": "object", "properties": {"name": {"type": "string"}}, "required": ["name"]}`,
			content:   `{"name": "forge"}`,
			wantValid: true,
		},
		{
			name:     "type mismatch at root",
			schema:   `{"type": "string"}`,
			content:  `42`,
			wantPath: "root",
			wantMsg:  "expected string, got number",
		},
		{
			name:     "required property missing",
			schema:   `{"type": "object", "required": ["name"]}`,
			content:  `{}`,
			wantPath: "name",
			wantMsg:  "required property is missing",
		},
		{
			name:     "nested property type",
			schema:   `{"type": "object", "properties": {"a": {"type": "object", "properties": {"b": {"type": "number"}}}}}`,
			content:  `{"a": {"b": "nope"}}`,
			wantPath: "a.b",
			wantMsg:  "expected number, got string",
		},
		{
			name:     "unknown property",
			schema:   `{"type": "object", "properties": {"a": {}}, "additionalProperties": false}`,
			content:  `{"a": 1, "b": 2}`,
			wantPath: "b",
			wantMsg:  "unknown property",
		},
		{
			name:     "enum violation",
			schema:   `{"type": "string", "enum": ["red", "green"]}`,
			content:  `"blue"`,
			wantPath: "root",
			wantMsg:  "not in the allowed set",
		},
		{
			name:      "enum match",
			schema:    `{"type": "string", "enum": ["red", "green"]}`,
			content:   `"green"`,
			wantValid: true,
		},
		{
			name:     "string too short",
			schema:   `{"type": "string", "minLength": 3}`,
			content:  `"ab"`,
			wantPath: "root",
			wantMsg:  "below minimum",
		},
		{
			name:     "string too long",
			schema:   `{"type": "string", "maxLength": 2}`,
			content:  `"abc"`,
			wantPath: "root",
			wantMsg:  "exceeds maximum",
		},
		{
			name:     "pattern mismatch",
			schema:   `{"type": "string", "pattern": "^v[0-9]+$"}`,
			content:  `"release-1"`,
			wantPath: "root",
			wantMsg:  "does not match pattern",
		},
		{
			name:      "pattern match",
			schema:    `{"type": "string", "pattern": "^v[0-9]+$"}`,
			content:   `"v12"`,
			wantValid: true,
		},
		{
			name:     "number below minimum",
			schema:   `{"type": "number", "minimum": 10}`,
			content:  `5`,
			wantPath: "root",
			wantMsg:  "below minimum",
		},
		{
			name:     "number above maximum",
			schema:   `{"type": "number", "maximum": 10}`,
			content:  `11`,
			wantPath: "root",
			wantMsg:  "exceeds maximum",
		},
		{
			name:     "integer with fraction",
			schema:   `{"type": "integer"}`,
			content:  `3.5`,
			wantPath: "root",
			wantMsg:  "expected integer",
		},
		{
			name:      "integer accepts whole number",
			schema:    `{"type": "integer"}`,
			content:   `3`,
			wantValid: true,
		},
		{
			name:     "array too short",
			schema:   `{"type": "array", "minItems": 2}`,
			content:  `[1]`,
			wantPath: "root",
			wantMsg:  "minimum is 2",
		},
		{
			name:     "array item type",
			schema:   `{"type": "array", "items": {"type": "string"}}`,
			content:  `["a", 2]`,
			wantPath: "[1]",
			wantMsg:  "expected string, got number",
		},
		{
			name:     "duplicate items",
			schema:   `{"type": "array", "uniqueItems": true}`,
			content:  `[1, 2, 1]`,
			wantPath: "[2]",
			wantMsg:  "duplicate item",
		},
		{
			name:      "union type",
			schema:    `{"type": ["string", "null"]}`,
			content:   `null`,
			wantValid: true,
		},
		{
			name:     "union type mismatch",
			schema:   `{"type": ["string", "null"]}`,
			content:  `7`,
			wantPath: "root",
			wantMsg:  "expected string or null",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustSchema(t, tt.schema)
			res := s.Validate(tt.content)
			if res.Valid != tt.wantValid {
				t.Fatalf("Valid = %v, want %v (errors: %v)", res.Valid, tt.wantValid, res.Errors)
			}
			if tt.wantValid {
				if res.Message != "document matches schema" {
					t.Errorf("Message = %q, want %q", res.Message, "document matches schema")
				}
				return
			}
			e := firstError(t, res)
			if e.Kind != KindSchema {
				t.Errorf("Kind = %q, want %q", e.Kind, KindSchema)
			}
			if !strings.Contains(e.Path, tt.wantPath) {
				t.Errorf("Path = %q, want substring %q", e.Path, tt.wantPath)
			}
			if !strings.Contains(e.Message, tt.wantMsg) {
				t.Errorf("Message = %q, want substring %q", e.Message, tt.wantMsg)
			}
		})
	}
}

func TestSchemaInvalidPattern(t *testing.T) {
	s := mustSchema(t, `{"type": "string", "pattern": "[unclosed"}`)
	res := s.Validate(`"anything"`)
	if res.Valid {
		t.Fatal("Valid = true, want false for a broken pattern")
	}
	if e := firstError(t, res); e.Kind != KindSchemaError {
		t.Errorf("Kind = %q, want %q", e.Kind, KindSchemaError)
	}
}

func TestSchemaMaxErrors(t *testing.T) {
	// Every element violates the item schema; collection must stop at
	// the configured cap.
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < DefaultMaxErrors+50; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('1')
	}
	b.WriteByte(']')

	s := mustSchema(t, `{"type": "array", "items": {"type": "string"}}`)
	res := s.Validate(b.String())
	if res.Valid {
		t.Fatal("Valid = true, want false")
	}
	if len(res.Errors) > DefaultMaxErrors {
		t.Errorf("len(Errors) = %d, want at most %d", len(res.Errors), DefaultMaxErrors)
	}
}

func TestParseSchema(t *testing.T) {
	t.Run("invalid schema text", func(t *testing.T) {
		if _, err := ParseSchema(`{"type": `); err == nil {
			t.Fatal("ParseSchema error = nil, want parse failure")
		}
	})

	t.Run("type forms", func(t *testing.T) {
		s, err := ParseSchema(`{"type": ["object", "null"]}`)
		if err != nil {
			t.Fatalf("ParseSchema error = %v", err)
		}
		if got := s.Type.String(); got != "object or null" {
			t.Errorf("Type = %q, want %q", got, "object or null")
		}
	})

	t.Run("type must be string or list", func(t *testing.T) {
		if _, err := ParseSchema(`{"type": 7}`); err == nil {
			t.Fatal("ParseSchema error = nil, want type-form failure")
		}
	})
}

func TestSchemaSetSchema(t *testing.T) {
	s := NewSchema(nil)
	if res := s.Validate(`1`); res.Valid {
		t.Fatal("Valid = true, want false without a schema")
	}

	parsed, err := ParseSchema(`{"type": "number"}`)
	if err != nil {
		t.Fatalf("ParseSchema error = %v", err)
	}
	s.SetSchema(parsed)
	if res := s.Validate(`1`); !res.Valid {
		t.Fatalf("Valid = false after SetSchema, errors: %v", res.Errors)
	}
	if s.Schema() != parsed {
		t.Error("Schema() did not return the configured schema")
	}
}
