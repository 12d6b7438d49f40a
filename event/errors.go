package event

import (
	"errors"
	"fmt"
)

// ErrListenerPanic indicates a listener panicked during delivery.
// Use errors.Is to test for it.
var ErrListenerPanic = errors.New("listener panicked")

// ListenerError wraps a failure from a single listener during delivery.
// The channel reports it to the error handler and continues with the
// remaining listeners; it never aborts the notification.
type ListenerError struct {
	// Listener is the name of the failing listener.
	Listener string

	// Event is the type of the event being delivered.
	Event Type

	// Err is the underlying failure.
	Err error
}

func (e *ListenerError) Error() string {
	return fmt.Sprintf("listener %q failed on %s: %v", e.Listener, e.Event, e.Err)
}

func (e *ListenerError) Unwrap() error {
	return e.Err
}

// PanicError captures a recovered panic from a listener.
type PanicError struct {
	// Value is the recovered panic value.
	Value any

	// Stack is the stack trace captured at recovery.
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Is reports true for ErrListenerPanic targets.
func (e *PanicError) Is(target error) bool {
	return target == ErrListenerPanic
}
