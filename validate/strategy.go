package validate

// Strategy validates document text and produces a Result. Strategies
// are stateless with respect to the document; callers pass the full
// content on every run.
type Strategy interface {
	// Name identifies the strategy ("simple", "schema", "composite").
	Name() string

	// Enabled reports whether the strategy should run. A Composite
	// skips disabled children.
	Enabled() bool

	// Validate checks text and returns the verdict. It never returns
	// nil.
	Validate(text string) *Result
}

// toggle is the embeddable enabled flag shared by the strategies. The
// zero value is enabled.
type toggle struct {
	disabled bool
}

// Enable turns the strategy on.
func (t *toggle) Enable() { t.disabled = false }

// Disable turns the strategy off.
func (t *toggle) Disable() { t.disabled = true }

// Enabled reports whether the strategy is on.
func (t *toggle) Enabled() bool { return !t.disabled }
