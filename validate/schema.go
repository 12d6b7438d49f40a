package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dshills/jsonforge/jsonfmt"
)

// DefaultMaxErrors caps how many schema violations a single run
// collects before stopping.
const DefaultMaxErrors = 100

// Schema describes the JSON Schema subset the SchemaStrategy
// understands: type, object shape (properties, required,
// additionalProperties), items, enum, numeric bounds, string bounds
// and pattern, and array bounds.
type Schema struct {
	Type                 SchemaType         `json:"type,omitempty"`
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties *bool              `json:"additionalProperties,omitempty"`
	Items                *Schema            `json:"items,omitempty"`
	Enum                 []any              `json:"enum,omitempty"`
	Minimum              *float64           `json:"minimum,omitempty"`
	Maximum              *float64           `json:"maximum,omitempty"`
	MinLength            *int               `json:"minLength,omitempty"`
	MaxLength            *int               `json:"maxLength,omitempty"`
	Pattern              string             `json:"pattern,omitempty"`
	MinItems             *int               `json:"minItems,omitempty"`
	MaxItems             *int               `json:"maxItems,omitempty"`
	UniqueItems          bool               `json:"uniqueItems,omitempty"`
}

// SchemaType holds the allowed JSON types. It unmarshals from either a
// single type name or a list of names.
type SchemaType struct {
	Types []string
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *SchemaType) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		t.Types = []string{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("type must be a string or an array of strings")
	}
	t.Types = many
	return nil
}

// IsEmpty reports whether no type constraint is set.
func (t SchemaType) IsEmpty() bool { return len(t.Types) == 0 }

func (t SchemaType) String() string { return strings.Join(t.Types, " or ") }

// ParseSchema parses a JSON Schema document into a Schema.
func ParseSchema(text string) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal([]byte(text), &s); err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}
	return &s, nil
}

// SchemaStrategy validates parsed content against a Schema.
type SchemaStrategy struct {
	toggle

	schema    *Schema
	maxErrors int

	// patternCache holds compiled regexps keyed by pattern source.
	patternCache sync.Map
}

// NewSchema creates a strategy for the given schema. A nil schema is
// allowed; every run then fails with a no_schema error.
func NewSchema(schema *Schema) *SchemaStrategy {
	return &SchemaStrategy{
		schema:    schema,
		maxErrors: DefaultMaxErrors,
	}
}

// NewSchemaFromJSON parses schema text and creates a strategy for it.
func NewSchemaFromJSON(text string) (*SchemaStrategy, error) {
	schema, err := ParseSchema(text)
	if err != nil {
		return nil, err
	}
	return NewSchema(schema), nil
}

// Name identifies the strategy.
func (s *SchemaStrategy) Name() string { return "schema" }

// Schema returns the configured schema, nil when none is set.
func (s *SchemaStrategy) Schema() *Schema { return s.schema }

// SetSchema replaces the schema used by subsequent runs.
func (s *SchemaStrategy) SetSchema(schema *Schema) { s.schema = schema }

// SetMaxErrors bounds how many violations a run reports. Values below
// one restore DefaultMaxErrors.
func (s *SchemaStrategy) SetMaxErrors(n int) {
	if n < 1 {
		n = DefaultMaxErrors
	}
	s.maxErrors = n
}

// Validate checks text against the schema. Syntax errors are reported
// before any schema constraints; empty content never matches a schema.
func (s *SchemaStrategy) Validate(text string) *Result {
	start := time.Now()
	res := NewResult(s.Name())
	defer func() { res.Duration = time.Since(start) }()

	if s.schema == nil {
		res.Message = "no schema configured"
		res.AddError(Error{Message: "no schema configured", Kind: KindNoSchema})
		return res
	}

	if strings.TrimSpace(text) == "" {
		res.Message = "document is empty"
		res.AddError(Error{Message: "document is empty", Kind: KindSyntax})
		return res
	}

	var value any
	if err := json.Unmarshal([]byte(text), &value); err != nil {
		res.Message = "JSON syntax error"
		var serr *jsonfmt.SyntaxError
		if cerr := jsonfmt.Check(text); errors.As(cerr, &serr) {
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

	s.validateValue("", value, s.schema, res)
	if res.Valid {
		res.Message = "document matches schema"
	} else {
		res.Message = fmt.Sprintf("%d schema violations", len(res.Errors))
	}
	return res
}

func (s *SchemaStrategy) addError(res *Result, path, message string) {
	if path == "" {
		path = "root"
	}
	res.AddError(Error{Message: message, Path: path, Kind: KindSchema})
}

func (s *SchemaStrategy) validateValue(path string, value any, schema *Schema, res *Result) {
	if schema == nil || len(res.Errors) >= s.maxErrors {
		return
	}

	if len(schema.Enum) > 0 {
		s.validateEnum(path, value, schema, res)
	}

	if schema.Type.IsEmpty() {
		// No type constraint. Shape constraints still apply when the
		// value happens to be a container.
		s.validateShape(path, value, schema, res)
		return
	}

	if value == nil {
		if !schema.Type.allows("null") {
			s.addError(res, path, fmt.Sprintf("expected %s, got null", schema.Type))
		}
		return
	}

	matched := ""
	for _, typ := range schema.Type.Types {
		if matchesType(value, typ) {
			matched = typ
			break
		}
	}
	if matched == "" {
		s.addError(res, path, fmt.Sprintf("expected %s, got %s", schema.Type, describeType(value)))
		return
	}

	switch matched {
	case "string":
		s.validateString(path, value.(string), schema, res)
	case "number", "integer":
		s.validateNumber(path, value.(float64), schema, res)
	case "array":
		s.validateArray(path, value.([]any), schema, res)
	case "object":
		s.validateObject(path, value.(map[string]any), schema, res)
	}
}

// validateShape applies container constraints when no type was
// declared on the schema node.
func (s *SchemaStrategy) validateShape(path string, value any, schema *Schema, res *Result) {
	switch v := value.(type) {
	case map[string]any:
		s.validateObject(path, v, schema, res)
	case []any:
		s.validateArray(path, v, schema, res)
	case string:
		s.validateString(path, v, schema, res)
	case float64:
		s.validateNumber(path, v, schema, res)
	}
}

func (s *SchemaStrategy) validateEnum(path string, value any, schema *Schema, res *Result) {
	for _, allowed := range schema.Enum {
		if reflect.DeepEqual(value, allowed) {
			return
		}
	}
	s.addError(res, path, fmt.Sprintf("value %v is not in the allowed set", formatValue(value)))
}

func (s *SchemaStrategy) validateString(path, value string, schema *Schema, res *Result) {
	length := utf8.RuneCountInString(value)
	if schema.MinLength != nil && length < *schema.MinLength {
		s.addError(res, path, fmt.Sprintf("string length %d is below minimum %d", length, *schema.MinLength))
	}
	if schema.MaxLength != nil && length > *schema.MaxLength {
		s.addError(res, path, fmt.Sprintf("string length %d exceeds maximum %d", length, *schema.MaxLength))
	}
	if schema.Pattern != "" {
		ok, err := s.matchPattern(schema.Pattern, value)
		if err != nil {
			res.AddError(Error{
				Message: fmt.Sprintf("invalid pattern %q: %v", schema.Pattern, err),
				Path:    orRoot(path),
				Kind:    KindSchemaError,
			})
		} else if !ok {
			s.addError(res, path, fmt.Sprintf("string does not match pattern %q", schema.Pattern))
		}
	}
}

func (s *SchemaStrategy) validateNumber(path string, value float64, schema *Schema, res *Result) {
	if schema.Type.allows("integer") && !schema.Type.allows("number") {
		if value != math.Trunc(value) {
			s.addError(res, path, fmt.Sprintf("expected integer, got %v", value))
			return
		}
	}
	if schema.Minimum != nil && value < *schema.Minimum {
		s.addError(res, path, fmt.Sprintf("value %v is below minimum %v", value, *schema.Minimum))
	}
	if schema.Maximum != nil && value > *schema.Maximum {
		s.addError(res, path, fmt.Sprintf("value %v exceeds maximum %v", value, *schema.Maximum))
	}
}

func (s *SchemaStrategy) validateArray(path string, value []any, schema *Schema, res *Result) {
	if schema.MinItems != nil && len(value) < *schema.MinItems {
		s.addError(res, path, fmt.Sprintf("array has %d items, minimum is %d", len(value), *schema.MinItems))
	}
	if schema.MaxItems != nil && len(value) > *schema.MaxItems {
		s.addError(res, path, fmt.Sprintf("array has %d items, maximum is %d", len(value), *schema.MaxItems))
	}
	if schema.UniqueItems {
		seen := make(map[string]bool, len(value))
		for i, item := range value {
			key, err := json.Marshal(item)
			if err != nil {
				continue
			}
			if seen[string(key)] {
				s.addError(res, fmt.Sprintf("%s[%d]", path, i), "duplicate item in unique array")
			}
			seen[string(key)] = true
		}
	}
	if schema.Items != nil {
		for i, item := range value {
			s.validateValue(fmt.Sprintf("%s[%d]", path, i), item, schema.Items, res)
		}
	}
}

func (s *SchemaStrategy) validateObject(path string, value map[string]any, schema *Schema, res *Result) {
	for _, name := range schema.Required {
		if _, ok := value[name]; !ok {
			s.addError(res, joinPath(path, name), "required property is missing")
		}
	}

	for name, propSchema := range schema.Properties {
		if propValue, ok := value[name]; ok {
			s.validateValue(joinPath(path, name), propValue, propSchema, res)
		}
	}

	if schema.AdditionalProperties != nil && !*schema.AdditionalProperties {
		for name := range value {
			if _, known := schema.Properties[name]; !known {
				s.addError(res, joinPath(path, name), "unknown property")
			}
		}
	}
}

func (s *SchemaStrategy) matchPattern(pattern, value string) (bool, error) {
	if cached, ok := s.patternCache.Load(pattern); ok {
		return cached.(*regexp.Regexp).MatchString(value), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, err
	}
	s.patternCache.Store(pattern, re)
	return re.MatchString(value), nil
}

// allows reports whether typ is one of the declared types.
func (t SchemaType) allows(typ string) bool {
	for _, candidate := range t.Types {
		if candidate == typ {
			return true
		}
	}
	return false
}

func matchesType(value any, typ string) bool {
	switch typ {
	case "string":
		_, ok := value.(string)
		return ok
	case "number":
		_, ok := value.(float64)
		return ok
	case "integer":
		f, ok := value.(float64)
		return ok && f == math.Trunc(f)
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "array":
		_, ok := value.([]any)
		return ok
	case "object":
		_, ok := value.(map[string]any)
		return ok
	case "null":
		return value == nil
	default:
		return false
	}
}

func describeType(value any) string {
	switch value.(type) {
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", value)
	}
}

func formatValue(value any) string {
	if s, ok := value.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", value)
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func orRoot(path string) string {
	if path == "" {
		return "root"
	}
	return path
}
