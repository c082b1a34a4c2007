package step

import (
	"fmt"
	"time"

	"github.com/uipilot-dev/uipilot/pkg/cancel"
	"github.com/uipilot-dev/uipilot/pkg/core"
	"github.com/uipilot-dev/uipilot/pkg/report"
)

// Step type identifiers for the gesture steps.
const (
	IDTap       = "tap"
	IDDoubleTap = "double_tap"
	IDLongPress = "long_press"
)

// gestureStep locates exactly one element and performs a pointer gesture
// at its center.
type gestureStep struct {
	base
	testableID string
	timeout    *time.Duration

	verb    string
	gesture func(core.Driver, core.Element) error
}

func newTap(rec Record) (Definition, error) {
	return parseGesture(rec, "Tap", core.Driver.Tap)
}

func newDoubleTap(rec Record) (Definition, error) {
	return parseGesture(rec, "Double-tap", core.Driver.DoubleTap)
}

func newLongPress(rec Record) (Definition, error) {
	return parseGesture(rec, "Long-press", core.Driver.LongPress)
}

func parseGesture(rec Record, verb string, gesture func(core.Driver, core.Element) error) (Definition, error) {
	f := newFields(rec.ID, rec.Values)

	testableID, err := f.requireString("testableId")
	if err != nil {
		return nil, err
	}
	timeout, err := f.optSeconds("timeout")
	if err != nil {
		return nil, err
	}

	return &gestureStep{
		base:       base{id: rec.ID, image: rec.Image},
		testableID: testableID,
		timeout:    timeout,
		verb:       verb,
		gesture:    gesture,
	}, nil
}

func (s *gestureStep) ToData() Record {
	values := map[string]interface{}{
		"testableId": s.testableID,
	}
	if s.timeout != nil {
		values["timeout"] = int(s.timeout.Seconds())
	}
	return s.record(values)
}

func (s *gestureStep) Execute(rt Runtime, token *cancel.Token, rep *report.Run) error {
	id, err := rt.Resolve(s.testableID)
	if err != nil {
		return err
	}

	timeout := s.timeout
	if timeout == nil {
		d := rt.DefaultTimeout()
		timeout = &d
	}

	el, err := rt.WaitFor(id, *timeout, token)
	if err != nil {
		return err
	}

	if err := s.gesture(rt.Driver(), el); err != nil {
		return core.ErrDriverFault.WithCause(err).
			WithDetails(map[string]interface{}{"testableId": id})
	}

	// Let the host's animations run before the next step probes the tree.
	return settle(token)
}

func (s *gestureStep) Describe(rt Runtime) string {
	id := describeResolve(rt, s.testableID)
	if s.timeout != nil {
		return fmt.Sprintf("%s %q within %s", s.verb, id, *s.timeout)
	}
	return fmt.Sprintf("%s %q", s.verb, id)
}
