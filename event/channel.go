package event

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

// ErrorHandler is invoked when a listener fails or panics during
// delivery. Handlers must not panic.
type ErrorHandler func(listener string, evt Event, err error)

// Option configures a Channel.
type Option func(*Channel)

// WithErrorHandler sets the handler invoked for listener failures.
func WithErrorHandler(h ErrorHandler) Option {
	return func(c *Channel) {
		if h != nil {
			c.onError = h
		}
	}
}

// Channel broadcasts events to an ordered set of listeners.
//
// Delivery is synchronous: Notify invokes every enabled listener, in
// attachment order, before returning. A listener that returns an error
// or panics is reported to the error handler and skipped; subsequent
// listeners still receive the event.
type Channel struct {
	mu        sync.RWMutex
	listeners []Listener
	onError   ErrorHandler

	notified  atomic.Uint64
	delivered atomic.Uint64
	failures  atomic.Uint64
	panics    atomic.Uint64
}

// New creates a Channel with the given options.
func New(opts ...Option) *Channel {
	c := &Channel{onError: defaultErrorHandler}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func defaultErrorHandler(listener string, evt Event, err error) {
	fmt.Fprintf(os.Stderr, "event: listener %q failed on %s: %v\n", listener, evt.Type, err)
}

// Attach registers a listener. Listeners are compared by identity;
// attaching an already-attached listener is a no-op. Delivery order is
// attachment order.
func (c *Channel) Attach(l Listener) {
	if l == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, existing := range c.listeners {
		if existing == l {
			return
		}
	}
	c.listeners = append(c.listeners, l)
}

// Detach removes a listener. Detaching a listener that is not attached
// is a no-op.
func (c *Channel) Detach(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, existing := range c.listeners {
		if existing == l {
			c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
			return
		}
	}
}

// Len returns the number of attached listeners.
func (c *Channel) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.listeners)
}

// Notify delivers an event to every enabled listener in attachment
// order. It never panics; listener failures are isolated per listener.
func (c *Channel) Notify(t Type, data any) {
	evt := Event{Type: t, Data: data, Time: time.Now()}

	c.mu.RLock()
	listeners := make([]Listener, len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.RUnlock()

	c.notified.Add(1)
	for _, l := range listeners {
		if !l.Enabled() {
			continue
		}
		if err := c.deliver(l, evt); err != nil {
			c.failures.Add(1)
			c.onError(l.Name(), evt, err)
			continue
		}
		c.delivered.Add(1)
	}
}

// deliver invokes a single listener, converting panics into errors.
func (c *Channel) deliver(l Listener, evt Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			c.panics.Add(1)
			err = &ListenerError{
				Listener: l.Name(),
				Event:    evt.Type,
				Err:      &PanicError{Value: r, Stack: debug.Stack()},
			}
		}
	}()

	if uerr := l.Update(evt); uerr != nil {
		return &ListenerError{Listener: l.Name(), Event: evt.Type, Err: uerr}
	}
	return nil
}

// Stats is a snapshot of channel delivery counters.
type Stats struct {
	// Notified is the number of Notify calls.
	Notified uint64

	// Delivered is the number of successful listener deliveries.
	Delivered uint64

	// Failures is the number of listener errors, including panics.
	Failures uint64

	// Panics is the number of recovered listener panics.
	Panics uint64
}

// Stats returns a snapshot of the channel's delivery counters.
func (c *Channel) Stats() Stats {
	return Stats{
		Notified:  c.notified.Load(),
		Delivered: c.delivered.Load(),
		Failures:  c.failures.Load(),
		Panics:    c.panics.Load(),
	}
}
