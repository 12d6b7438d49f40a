package document

import "github.com/dshills/jsonforge/event"

// Option configures a Document at creation.
type Option func(*Document)

// WithPath associates the document with a file path. The document is
// considered file-backed; Reset will refuse it.
func WithPath(path string) Option {
	return func(d *Document) {
		d.path = path
	}
}

// WithContent sets the initial content. A document created with
// content is not considered modified.
func WithContent(text string) Option {
	return func(d *Document) {
		d.content = []rune(text)
	}
}

// WithReadOnly creates the document in read-only mode.
func WithReadOnly() Option {
	return func(d *Document) {
		d.readOnly = true
	}
}

// WithChannelOptions configures the document's event channel, e.g. to
// install an error handler for listener failures.
func WithChannelOptions(opts ...event.Option) Option {
	return func(d *Document) {
		d.channel = event.New(opts...)
	}
}
