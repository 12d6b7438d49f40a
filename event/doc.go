// Package event provides the change-notification channel used by
// documents to broadcast structured events to interested listeners.
//
// A Channel holds listeners in attachment order and delivers every
// event synchronously on the caller's goroutine. Listeners are isolated
// from each other: an error or panic in one listener is recovered,
// reported to the channel's error handler, and delivery continues with
// the next listener. The triggering operation always completes.
//
// There is deliberately no cancellation, timeout, or asynchronous
// dispatch here. The editing core is synchronous end to end; a slow
// listener blocks the edit that triggered it, and the mitigation is the
// per-listener failure isolation, not concurrency.
//
// Basic usage:
//
//	ch := event.New()
//	ch.Attach(myListener)
//	ch.Notify("document.changed", payload)
//
// Listeners embed Toggle to get an enabled flag:
//
//	type printer struct {
//	    event.Toggle
//	}
//
//	func (p *printer) Name() string { return "printer" }
//
//	func (p *printer) Update(evt event.Event) error {
//	    fmt.Println(evt.Type)
//	    return nil
//	}
package event
