package token

import "testing"

// seedCount is the number of tokens New pre-creates: seven punctuation
// marks plus true, false, and null.
const seedCount = 10

func TestNewSeedsCommonTokens(t *testing.T) {
	c := New()
	if got := c.Len(); got != seedCount {
		t.Errorf("Len() = %d, want %d", got, seedCount)
	}
	stats := c.Stats()
	if stats.Created != seedCount || stats.Reused != 0 {
		t.Errorf("Stats() = %+v", stats)
	}
}

func TestGetSharesInstances(t *testing.T) {
	c := New()

	a := c.Get("{", KindSymbol)
	b := c.Get("{", KindSymbol)
	if a != b {
		t.Error("equal lexemes produced distinct tokens")
	}
	if a.Value != "{" || a.Kind != KindSymbol {
		t.Errorf("token = %+v", a)
	}

	stats := c.Stats()
	if stats.Reused != 2 {
		t.Errorf("Reused = %d, want 2", stats.Reused)
	}
	if stats.Created != seedCount {
		t.Errorf("Created = %d, seeded tokens must be reused not recreated", stats.Created)
	}
}

func TestGetCreatesNewTokens(t *testing.T) {
	c := New()

	tok := c.Get(`"name"`, KindKey)
	if tok.Value != `"name"` || tok.Kind != KindKey {
		t.Errorf("token = %+v", tok)
	}
	if got := c.Len(); got != seedCount+1 {
		t.Errorf("Len() = %d, want %d", got, seedCount+1)
	}
	if got := c.Stats().Created; got != seedCount+1 {
		t.Errorf("Created = %d, want %d", got, seedCount+1)
	}
}

func TestGetDistinguishesKinds(t *testing.T) {
	c := New()
	asKey := c.Get(`"x"`, KindKey)
	asString := c.Get(`"x"`, KindString)
	if asKey == asString {
		t.Error("same value with different kinds shared one token")
	}
}

func TestClearReseeds(t *testing.T) {
	c := New()
	c.Get(`"extra"`, KindString)
	c.Get("{", KindSymbol)

	c.Clear()

	if got := c.Len(); got != seedCount {
		t.Errorf("Len() = %d after Clear, want %d", got, seedCount)
	}
	stats := c.Stats()
	if stats.Created != seedCount || stats.Reused != 0 {
		t.Errorf("Stats() = %+v after Clear", stats)
	}
}

func TestReuseRate(t *testing.T) {
	tests := []struct {
		name  string
		stats Stats
		want  float64
	}{
		{"no traffic", Stats{}, 0},
		{"all misses", Stats{Created: 10}, 0},
		{"half hits", Stats{Created: 10, Reused: 10}, 50},
		{"mostly hits", Stats{Created: 1, Reused: 3}, 75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stats.ReuseRate(); got != tt.want {
				t.Errorf("ReuseRate() = %v, want %v", got, tt.want)
			}
		})
	}
}
