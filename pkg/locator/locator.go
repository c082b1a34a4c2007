// Package locator implements the bounded-polling search for a uniquely
// identified target element ("wait-for").
package locator

import (
	"time"

	"github.com/uipilot-dev/uipilot/pkg/cancel"
	"github.com/uipilot-dev/uipilot/pkg/core"
	"github.com/uipilot-dev/uipilot/pkg/progress"
)

// PollInterval is the fixed gap between searches. It also bounds the
// worst-case cancellation latency of a wait.
const PollInterval = 100 * time.Millisecond

// Locator repeatedly searches the host's element index through the Driver.
type Locator struct {
	driver   core.Driver
	reporter *progress.Reporter
	interval time.Duration
}

// New creates a Locator polling at the standard interval.
func New(driver core.Driver, reporter *progress.Reporter) *Locator {
	return &Locator{
		driver:   driver,
		reporter: reporter,
		interval: PollInterval,
	}
}

// WaitFor polls for an element uniquely keyed by id until it appears, the
// timeout elapses, or the token fires. Each iteration re-runs the full
// search: the element index may change shape between polls, so negative
// results are never cached. On success the element receives a cosmetic
// flash before being returned.
//
// Zero matches for the whole window fail with TimeoutExceeded; more than
// one simultaneous match is a caller error and fails immediately with
// AmbiguousTarget. This policy is uniform across all steps.
func (l *Locator) WaitFor(id string, timeout time.Duration, token *cancel.Token) (core.Element, error) {
	return l.waitFor(id, timeout, token, false)
}

// WaitForInError is WaitFor with the error-context flag on its progress
// snapshots, for waits performed on behalf of an error-field assertion.
func (l *Locator) WaitForInError(id string, timeout time.Duration, token *cancel.Token) (core.Element, error) {
	return l.waitFor(id, timeout, token, true)
}

func (l *Locator) waitFor(id string, timeout time.Duration, token *cancel.Token, inError bool) (core.Element, error) {
	total := progress.Ticks(timeout)
	start := time.Now()
	defer l.reporter.Clear()

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		el, found, err := l.probe(id)
		if err != nil {
			return core.Element{}, err
		}
		if found {
			// Cosmetic pulse on the located element; failures here must
			// not fail the wait.
			_ = l.driver.Flash(el)
			return el, nil
		}

		select {
		case <-token.Done():
			return core.Element{}, core.ErrCancelled.
				WithMessage("wait for %q cancelled", id)
		case <-deadline.C:
			return core.Element{}, core.ErrTimeoutExceeded.
				WithMessage("target %q did not appear within %s", id, timeout).
				WithDetails(map[string]interface{}{"testableId": id, "timeout": timeout.String()})
		case <-ticker.C:
			l.reporter.Publish(progress.Value{
				Current: scaleTicks(time.Since(start), timeout, total),
				Total:   total,
				InError: inError,
			})
		}
	}
}

// WaitForAbsent polls until no element matches id, the inverse wait.
// A target still present when the timeout elapses fails with
// TimeoutExceeded.
func (l *Locator) WaitForAbsent(id string, timeout time.Duration, token *cancel.Token) error {
	total := progress.Ticks(timeout)
	start := time.Now()
	defer l.reporter.Clear()

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		matches, err := l.driver.Locate(id)
		if err != nil {
			return core.ErrDriverFault.WithCause(err)
		}
		if len(matches) == 0 {
			return nil
		}

		select {
		case <-token.Done():
			return core.ErrCancelled.WithMessage("wait for absence of %q cancelled", id)
		case <-deadline.C:
			return core.ErrTimeoutExceeded.
				WithMessage("target %q still present after %s", id, timeout).
				WithDetails(map[string]interface{}{"testableId": id, "timeout": timeout.String()})
		case <-ticker.C:
			l.reporter.Publish(progress.Value{
				Current: scaleTicks(time.Since(start), timeout, total),
				Total:   total,
			})
		}
	}
}

// probe runs one full search. found is false only for the zero-match case;
// every other condition is terminal.
func (l *Locator) probe(id string) (core.Element, bool, error) {
	matches, err := l.driver.Locate(id)
	if err != nil {
		return core.Element{}, false, core.ErrDriverFault.WithCause(err)
	}
	switch len(matches) {
	case 0:
		return core.Element{}, false, nil
	case 1:
		return matches[0], true, nil
	default:
		return core.Element{}, false, core.ErrAmbiguousTarget.
			WithMessage("identifier %q matched %d elements, want exactly one", id, len(matches)).
			WithDetails(map[string]interface{}{"testableId": id, "matches": len(matches)})
	}
}

func scaleTicks(elapsed, timeout time.Duration, total int) int {
	if timeout <= 0 {
		return total
	}
	n := int(float64(elapsed) / float64(timeout) * float64(total))
	if n < 1 {
		n = 1
	}
	if n > total {
		n = total
	}
	return n
}
