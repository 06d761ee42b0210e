// Package oneshot provides a notification that can be sent exactly once.
package oneshot

import "sync"

// Signal is a one-shot notification. Once fired it stays fired.
// The zero value is not usable, use New.
type Signal struct {
	once sync.Once
	ch   chan struct{}
}

// New creates an unfired Signal.
func New() *Signal {
	return &Signal{ch: make(chan struct{})}
}

// Fire sends the notification. Subsequent calls are no-ops.
// It reports whether this call was the one that fired the signal.
func (s *Signal) Fire() bool {
	fired := false
	s.once.Do(func() {
		close(s.ch)
		fired = true
	})
	return fired
}

// Done returns a channel that is closed when the signal fires.
func (s *Signal) Done() <-chan struct{} {
	return s.ch
}

// Fired reports whether the signal has fired without blocking.
func (s *Signal) Fired() bool {
	select {
	case <-s.ch:
		return true
	default:
		return false
	}
}
