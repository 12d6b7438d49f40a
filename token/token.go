// Package token provides shared, immutable lexical tokens for JSON
// text along with the colors used to render them. Equal (value, kind)
// pairs resolve to a single Token instance through a Cache, which
// keeps large documents cheap to re-scan.
package token

import "github.com/lucasb-eyer/go-colorful"

// Kind classifies a token.
type Kind uint8

const (
	// KindSymbol is structural punctuation: { } [ ] : , and quotes.
	KindSymbol Kind = iota

	// KindString is a quoted string value.
	KindString

	// KindNumber is a numeric literal.
	KindNumber

	// KindBoolean is the literal true or false.
	KindBoolean

	// KindNull is the literal null.
	KindNull

	// KindKey is a quoted string in key position, before a colon.
	KindKey
)

var kindNames = [...]string{
	KindSymbol:  "symbol",
	KindString:  "string",
	KindNumber:  "number",
	KindBoolean: "boolean",
	KindNull:    "null",
	KindKey:     "key",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Token is an immutable lexeme. Instances returned by a Cache are
// shared, so callers must never mutate them.
type Token struct {
	// Value is the lexeme exactly as it appears in the text, quotes
	// included for strings and keys.
	Value string

	// Kind classifies the lexeme.
	Kind Kind
}

func (t *Token) String() string {
	return t.Kind.String() + " " + t.Value
}

// Palette assigns a render color to each token kind.
type Palette map[Kind]colorful.Color

// DefaultPalette returns the standard light-theme colors.
func DefaultPalette() Palette {
	return Palette{
		KindSymbol:  hexColor("#383A42"),
		KindString:  hexColor("#E45649"),
		KindNumber:  hexColor("#50A14F"),
		KindBoolean: hexColor("#986801"),
		KindNull:    hexColor("#A626A4"),
		KindKey:     hexColor("#A626A4"),
	}
}

// Color returns the color for a kind. Kinds missing from the palette
// render black.
func (p Palette) Color(k Kind) colorful.Color {
	if c, ok := p[k]; ok {
		return c
	}
	return colorful.Color{}
}

// Hex returns the color for a kind as a "#rrggbb" string.
func (p Palette) Hex(k Kind) string {
	return p.Color(k).Hex()
}

// hexColor converts a known-good literal; invalid literals fall back
// to black.
func hexColor(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}
	}
	return c
}
