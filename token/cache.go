package token

import "sync"

type cacheKey struct {
	value string
	kind  Kind
}

// Cache interns tokens so that equal lexemes share one instance. It is
// safe for concurrent use. Create one per editor; there is no global
// cache.
type Cache struct {
	mu      sync.Mutex
	tokens  map[cacheKey]*Token
	created uint64
	reused  uint64
}

// New creates a cache pre-seeded with JSON punctuation and the
// literals true, false, and null.
func New() *Cache {
	c := &Cache{tokens: make(map[cacheKey]*Token)}
	c.seed()
	return c
}

func (c *Cache) seed() {
	for _, s := range []string{"{", "}", "[", "]", ":", ",", `"`} {
		c.get(s, KindSymbol)
	}
	c.get("true", KindBoolean)
	c.get("false", KindBoolean)
	c.get("null", KindNull)
}

// Get returns the shared token for (value, kind), creating it on first
// request.
func (c *Cache) Get(value string, kind Kind) *Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.get(value, kind)
}

func (c *Cache) get(value string, kind Kind) *Token {
	k := cacheKey{value: value, kind: kind}
	if t, ok := c.tokens[k]; ok {
		c.reused++
		return t
	}
	t := &Token{Value: value, Kind: kind}
	c.tokens[k] = t
	c.created++
	return t
}

// Len returns the number of unique tokens held.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tokens)
}

// Clear drops every token, resets the counters, and re-seeds the
// common set.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = make(map[cacheKey]*Token)
	c.created = 0
	c.reused = 0
	c.seed()
}

// Stats is a snapshot of cache traffic. Seeding counts toward Created.
type Stats struct {
	Created uint64
	Reused  uint64
}

// ReuseRate returns the percentage of requests served from the cache.
func (s Stats) ReuseRate() float64 {
	total := s.Created + s.Reused
	if total == 0 {
		return 0
	}
	return float64(s.Reused) / float64(total) * 100
}

// Stats returns a snapshot of cache traffic.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Created: c.created, Reused: c.reused}
}
