// Package cancel provides the one-shot cooperative cancellation token
// shared across a single run.
package cancel

import "sync"

// Token is a monotonic cancellation signal: once cancelled it never resets,
// and a new run requires a new token. It is observable both as a level
// (Cancelled) and as a broadcast event (Done), so long-running waits can
// select on the channel instead of polling the flag at loop boundaries.
type Token struct {
	once sync.Once
	done chan struct{}
}

// NewToken creates a fresh, uncancelled token.
func NewToken() *Token {
	return &Token{done: make(chan struct{})}
}

// Cancel flips the token. Idempotent; every Done channel observer is
// released exactly once.
func (t *Token) Cancel() {
	t.once.Do(func() { close(t.done) })
}

// Cancelled reports the current level of the signal.
func (t *Token) Cancelled() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Done returns the broadcast channel, closed when the token is cancelled.
func (t *Token) Done() <-chan struct{} {
	return t.done
}
