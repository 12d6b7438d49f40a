package token

import "testing"

func kindsOf(tokens []*Token) []Kind {
	kinds := make([]Kind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	return kinds
}

func TestScanDocument(t *testing.T) {
	text := `{"name": "go", "count": 1.5, "ok": true, "meta": null}`
	tokens := Scan(text, New())

	want := []struct {
		value string
		kind  Kind
	}{
		{"{", KindSymbol},
		{`"name"`, KindKey},
		{":", KindSymbol},
		{`"go"`, KindString},
		{",", KindSymbol},
		{`"count"`, KindKey},
		{":", KindSymbol},
		{"1.5", KindNumber},
		{",", KindSymbol},
		{`"ok"`, KindKey},
		{":", KindSymbol},
		{"true", KindBoolean},
		{",", KindSymbol},
		{`"meta"`, KindKey},
		{":", KindSymbol},
		{"null", KindNull},
		{"}", KindSymbol},
	}

	if len(tokens) != len(want) {
		t.Fatalf("Scan() produced %d tokens, want %d: %v", len(tokens), len(want), tokens)
	}
	for i, w := range want {
		if tokens[i].Value != w.value || tokens[i].Kind != w.kind {
			t.Errorf("token %d = {%q %s}, want {%q %s}",
				i, tokens[i].Value, tokens[i].Kind, w.value, w.kind)
		}
	}
}

func TestScanKeyDetection(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Kind
	}{
		{
			"space before colon",
			`{"a" : 1}`,
			[]Kind{KindSymbol, KindKey, KindSymbol, KindNumber, KindSymbol},
		},
		{
			"newline before colon",
			"{\"a\"\n: 1}",
			[]Kind{KindSymbol, KindKey, KindSymbol, KindNumber, KindSymbol},
		},
		{
			"array element is a string",
			`["x"]`,
			[]Kind{KindSymbol, KindString, KindSymbol},
		},
		{
			"trailing string is a string",
			`"last"`,
			[]Kind{KindString},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Scan(tt.text, nil)
			got := kindsOf(tokens)
			if len(got) != len(tt.want) {
				t.Fatalf("kinds = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("kind %d = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestScanNumbers(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{`[0]`, "0"},
		{`[-3]`, "-3"},
		{`[2.75]`, "2.75"},
		{`[1e10]`, "1e10"},
		{`[2.5e-3]`, "2.5e-3"},
		{`[6E+2]`, "6E+2"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			tokens := Scan(tt.text, nil)
			if len(tokens) != 3 {
				t.Fatalf("Scan(%q) produced %d tokens", tt.text, len(tokens))
			}
			num := tokens[1]
			if num.Kind != KindNumber || num.Value != tt.want {
				t.Errorf("number token = {%q %s}, want {%q number}", num.Value, num.Kind, tt.want)
			}
		})
	}
}

func TestScanEscapedQuotes(t *testing.T) {
	text := `{"s": "he said \"hi\""}`
	tokens := Scan(text, nil)

	if len(tokens) != 5 {
		t.Fatalf("Scan() produced %d tokens: %v", len(tokens), tokens)
	}
	if tokens[3].Value != `"he said \"hi\""` || tokens[3].Kind != KindString {
		t.Errorf("string token = {%q %s}", tokens[3].Value, tokens[3].Kind)
	}
}

func TestScanSkipsForeignInput(t *testing.T) {
	// Bare words and stray characters are not JSON lexemes.
	tokens := Scan(`{"a": undefined @ trueish}`, nil)

	want := []Kind{KindSymbol, KindKey, KindSymbol, KindSymbol}
	got := kindsOf(tokens)
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
}

func TestScanUnterminatedString(t *testing.T) {
	tokens := Scan(`{"open`, nil)
	if len(tokens) != 2 {
		t.Fatalf("Scan() produced %d tokens: %v", len(tokens), tokens)
	}
	if tokens[1].Value != `"open` || tokens[1].Kind != KindString {
		t.Errorf("token = {%q %s}", tokens[1].Value, tokens[1].Kind)
	}
}

func TestScanEmpty(t *testing.T) {
	if tokens := Scan("", New()); len(tokens) != 0 {
		t.Errorf("Scan(\"\") = %v", tokens)
	}
	if tokens := Scan("  \n\t ", New()); len(tokens) != 0 {
		t.Errorf("whitespace-only input produced tokens: %v", tokens)
	}
}

func TestScanSharesAcrossCalls(t *testing.T) {
	c := New()
	first := Scan(`{"id": 1}`, c)
	second := Scan(`{"id": 2}`, c)

	if first[1] != second[1] {
		t.Error("repeated key scanned into distinct tokens")
	}
	if first[0] != second[0] {
		t.Error("repeated brace scanned into distinct tokens")
	}

	if rate := c.Stats().ReuseRate(); rate <= 0 {
		t.Errorf("ReuseRate() = %v after repeated scans", rate)
	}
}
