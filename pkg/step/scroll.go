package step

import (
	"fmt"
	"time"

	"github.com/uipilot-dev/uipilot/pkg/cancel"
	"github.com/uipilot-dev/uipilot/pkg/core"
	"github.com/uipilot-dev/uipilot/pkg/progress"
	"github.com/uipilot-dev/uipilot/pkg/report"
)

// IDScrollUntilVisible identifies the scroll-until-visible step.
const IDScrollUntilVisible = "scroll_until_visible"

// DefaultScrollIncrement is the drag distance per attempt, in pixels.
// Increments under ~100px may be absorbed entirely by platform scroll
// friction; choosing a workable value is the author's responsibility.
const DefaultScrollIncrement = 200.0

// scrollStep drags a container along its scroll axis until the target
// becomes visible, bounded by a timeout.
type scrollStep struct {
	base
	testableID   string
	scrollableID *string
	increment    float64
	timeout      *time.Duration
}

func newScrollUntilVisible(rec Record) (Definition, error) {
	f := newFields(rec.ID, rec.Values)

	testableID, err := f.requireString("testableId")
	if err != nil {
		return nil, err
	}
	scrollableID, err := f.optString("scrollableId")
	if err != nil {
		return nil, err
	}
	increment, err := f.optFloat("increment", DefaultScrollIncrement)
	if err != nil {
		return nil, err
	}
	timeout, err := f.optSeconds("timeout")
	if err != nil {
		return nil, err
	}

	return &scrollStep{
		base:         base{id: rec.ID, image: rec.Image},
		testableID:   testableID,
		scrollableID: scrollableID,
		increment:    increment,
		timeout:      timeout,
	}, nil
}

func (s *scrollStep) ToData() Record {
	values := map[string]interface{}{
		"testableId": s.testableID,
		"increment":  s.increment,
	}
	if s.scrollableID != nil {
		values["scrollableId"] = *s.scrollableID
	}
	if s.timeout != nil {
		values["timeout"] = int(s.timeout.Seconds())
	}
	return s.record(values)
}

func (s *scrollStep) Execute(rt Runtime, token *cancel.Token, rep *report.Run) error {
	id, err := rt.Resolve(s.testableID)
	if err != nil {
		return err
	}

	container, err := s.resolveContainer(rt)
	if err != nil {
		return err
	}
	offset := container.Axis.DragOffset(s.increment)

	timeout := rt.DefaultTimeout()
	if s.timeout != nil {
		timeout = *s.timeout
	}

	drv := rt.Driver()
	start := time.Now()
	deadline := start.Add(timeout)
	totalTicks := progress.Ticks(timeout)
	defer rt.ClearProgress()

	for {
		el, found, err := s.probeTarget(drv, id)
		if err != nil {
			return err
		}
		if found {
			// Precise final placement. Not counted against the timeout.
			if err := drv.ScrollIntoView(el); err != nil {
				return core.ErrDriverFault.WithCause(err).
					WithDetails(map[string]interface{}{"testableId": id})
			}
			return nil
		}

		if token.Cancelled() {
			return core.ErrCancelled.WithMessage("cancelled while scrolling toward %q", id)
		}
		if time.Now().After(deadline) {
			return core.ErrScrollTimeout.
				WithMessage("target %q not revealed within %s", id, timeout).
				WithDetails(map[string]interface{}{
					"testableId": id,
					"timeout":    timeout.String(),
					"increment":  s.increment,
				})
		}

		if err := drv.Drag(container, offset); err != nil {
			return core.ErrDriverFault.WithCause(err).
				WithDetails(map[string]interface{}{"scrollableId": container.ID})
		}
		if err := settle(token); err != nil {
			return err
		}

		elapsed := time.Since(start)
		current := int(elapsed * time.Duration(totalTicks) / timeout)
		if current > totalTicks {
			current = totalTicks
		}
		rt.PublishProgress(progress.Value{Current: current, Total: totalTicks})
	}
}

// resolveContainer picks the container to scroll: the explicitly named
// scrollable when given, otherwise the host's outermost scroll root.
func (s *scrollStep) resolveContainer(rt Runtime) (core.Element, error) {
	drv := rt.Driver()

	if s.scrollableID != nil {
		id, err := rt.Resolve(*s.scrollableID)
		if err != nil {
			return core.Element{}, err
		}
		matches, err := drv.Locate(id)
		if err != nil {
			return core.Element{}, core.ErrDriverFault.WithCause(err).
				WithDetails(map[string]interface{}{"scrollableId": id})
		}
		if len(matches) != 1 || !matches[0].Scrollable {
			return core.Element{}, core.ErrScrollableNotFound.
				WithMessage("no scrollable container matches %q", id).
				WithDetails(map[string]interface{}{"scrollableId": id})
		}
		return matches[0], nil
	}

	root, ok := drv.ScrollRoot()
	if !ok {
		return core.Element{}, core.ErrScrollableNotFound.
			WithMessage("host exposes no scrollable container")
	}
	return root, nil
}

// probeTarget checks whether the target is currently visible. More than
// one match is a caller error, same policy as the locator.
func (s *scrollStep) probeTarget(drv core.Driver, id string) (core.Element, bool, error) {
	matches, err := drv.Locate(id)
	if err != nil {
		return core.Element{}, false, core.ErrDriverFault.WithCause(err).
			WithDetails(map[string]interface{}{"testableId": id})
	}
	switch len(matches) {
	case 0:
		return core.Element{}, false, nil
	case 1:
		return matches[0], true, nil
	default:
		return core.Element{}, false, core.ErrAmbiguousTarget.
			WithMessage("%d elements match %q, expected exactly one", len(matches), id).
			WithDetails(map[string]interface{}{"testableId": id, "matches": len(matches)})
	}
}

func (s *scrollStep) Describe(rt Runtime) string {
	id := describeResolve(rt, s.testableID)
	if s.scrollableID != nil {
		return fmt.Sprintf("Scroll %q until %q is visible", describeResolve(rt, *s.scrollableID), id)
	}
	return fmt.Sprintf("Scroll until %q is visible", id)
}
