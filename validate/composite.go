package validate

import (
	"fmt"
	"time"
)

// Composite runs a sequence of child strategies against the same
// content and merges their verdicts. The combined result is valid only
// when every enabled child reports valid. Disabled children are
// skipped, not failed.
type Composite struct {
	toggle

	children []Strategy
}

// NewComposite creates a Composite over the given children. Children
// run in the order supplied.
func NewComposite(children ...Strategy) *Composite {
	return &Composite{children: children}
}

// Name implements Strategy.
func (c *Composite) Name() string { return "composite" }

// Add appends a child strategy.
func (c *Composite) Add(s Strategy) {
	if s == nil {
		return
	}
	c.children = append(c.children, s)
}

// Remove drops the first child whose Name matches name and reports
// whether a child was removed.
func (c *Composite) Remove(name string) bool {
	for i, s := range c.children {
		if s.Name() == name {
			c.children = append(c.children[:i], c.children[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of children, including disabled ones.
func (c *Composite) Len() int { return len(c.children) }

// Children returns a copy of the child list.
func (c *Composite) Children() []Strategy {
	out := make([]Strategy, len(c.children))
	copy(out, c.children)
	return out
}

// Validate implements Strategy. Each enabled child validates the full
// content; errors and warnings accumulate across children and the
// summary message counts how many children ran and how many passed.
func (c *Composite) Validate(text string) *Result {
	res := NewResult(c.Name())
	start := time.Now()
	defer func() { res.Duration = time.Since(start) }()

	ran, passed := 0, 0
	for _, child := range c.children {
		if !child.Enabled() {
			continue
		}
		ran++
		cr := child.Validate(text)
		if cr.Valid {
			passed++
		} else {
			res.Valid = false
		}
		res.Errors = append(res.Errors, cr.Errors...)
		for _, w := range cr.Warnings {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s: %s", child.Name(), w))
		}
	}

	switch {
	case ran == 0:
		res.Message = "no validators ran"
	case res.Valid:
		res.Message = fmt.Sprintf("valid (%d validators)", ran)
	default:
		res.Message = fmt.Sprintf("%d of %d validators failed", ran-passed, ran)
	}
	return res
}
