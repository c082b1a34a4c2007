// Package progress turns opaque waits into a bounded stream of ticks so a
// host UI can show apparent progress during wait-for and sleep.
package progress

import (
	"time"

	"github.com/uipilot-dev/uipilot/pkg/cancel"
	"github.com/uipilot-dev/uipilot/pkg/core"
)

// Tick sizing: at least 5 and at most 50 ticks per wait, targeting one
// tick per 100ms. The bounds avoid excessive update frequency on long
// waits and overly coarse feedback on short ones.
const (
	MinTicks     = 5
	MaxTicks     = 50
	TickInterval = 100 * time.Millisecond
)

// Value is a transient snapshot of an in-flight wait. It is overwritten
// continuously and never persisted.
type Value struct {
	Current int  // Ticks elapsed
	Total   int  // Ticks the wait was split into
	InError bool // True when the wait serves an error-field assertion
}

// Sink receives progress snapshots. Clear marks the wait as finished;
// after Clear no Value is current until the next Publish.
type Sink interface {
	Publish(v Value)
	Clear()
}

// Ticks computes how many ticks a wait of the given duration is split into.
func Ticks(d time.Duration) int {
	n := int(d / TickInterval)
	if n < MinTicks {
		return MinTicks
	}
	if n > MaxTicks {
		return MaxTicks
	}
	return n
}

// Reporter drives a Sink through the tick protocol.
type Reporter struct {
	sink Sink
}

// NewReporter creates a Reporter. A nil sink is replaced by a no-op one.
func NewReporter(sink Sink) *Reporter {
	if sink == nil {
		sink = NopSink{}
	}
	return &Reporter{sink: sink}
}

// Sleep suspends for the duration, publishing a snapshot after every tick
// and clearing the sink on completion. Cancellation is observed within one
// tick: the wait aborts with Cancelled instead of running to term.
func (r *Reporter) Sleep(d time.Duration, token *cancel.Token) error {
	return r.sleep(d, token, false)
}

// SleepInError is Sleep with the error-context flag set on every snapshot.
func (r *Reporter) SleepInError(d time.Duration, token *cancel.Token) error {
	return r.sleep(d, token, true)
}

func (r *Reporter) sleep(d time.Duration, token *cancel.Token, inError bool) error {
	total := Ticks(d)
	interval := d / time.Duration(total)
	defer r.sink.Clear()

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for i := 1; i <= total; i++ {
		select {
		case <-token.Done():
			return core.ErrCancelled.WithMessage("sleep cancelled after %d/%d ticks", i-1, total)
		case <-timer.C:
		}
		r.sink.Publish(Value{Current: i, Total: total, InError: inError})
		if i < total {
			timer.Reset(interval)
		}
	}
	return nil
}

// Publish forwards a snapshot for loops that track their own elapsed time
// (wait-for polling, scroll search).
func (r *Reporter) Publish(v Value) {
	r.sink.Publish(v)
}

// Clear forwards the completion mark.
func (r *Reporter) Clear() {
	r.sink.Clear()
}

// NopSink discards all progress.
type NopSink struct{}

// Publish implements Sink.
func (NopSink) Publish(Value) {}

// Clear implements Sink.
func (NopSink) Clear() {}
