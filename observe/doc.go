// Package observe provides the standard document listeners: Validator
// re-validates content after every change, Autosave writes periodic
// snapshots, and Status keeps a human-readable activity feed.
//
// All three implement event.Listener and embed event.Toggle, so each
// can be disabled without detaching it. They are attached by the
// editor facade but work against any document.
package observe
