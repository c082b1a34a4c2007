package step

import (
	"fmt"
	"time"

	"github.com/uipilot-dev/uipilot/pkg/cancel"
	"github.com/uipilot-dev/uipilot/pkg/core"
	"github.com/uipilot-dev/uipilot/pkg/report"
)

// Step type identifiers for the remaining built-in steps.
const (
	IDSleep         = "sleep"
	IDComment       = "comment"
	IDScreenshot    = "screenshot"
	IDWaitForAbsent = "wait_for_absent"
)

// sleepStep pauses the run for a fixed duration with progress ticks.
type sleepStep struct {
	base
	duration time.Duration
}

func newSleep(rec Record) (Definition, error) {
	f := newFields(rec.ID, rec.Values)
	duration, err := f.optSeconds("duration")
	if err != nil {
		return nil, err
	}
	if duration == nil {
		return nil, f.malformed("missing required field %q", "duration")
	}
	return &sleepStep{
		base:     base{id: rec.ID, image: rec.Image},
		duration: *duration,
	}, nil
}

func (s *sleepStep) ToData() Record {
	return s.record(map[string]interface{}{
		"duration": int(s.duration.Seconds()),
	})
}

func (s *sleepStep) Execute(rt Runtime, token *cancel.Token, rep *report.Run) error {
	return rt.Sleep(s.duration, token)
}

func (s *sleepStep) Describe(rt Runtime) string {
	return fmt.Sprintf("Sleep for %s", s.duration)
}

// commentStep emits resolved text to the run log and does nothing else.
type commentStep struct {
	base
	text string
}

func newComment(rec Record) (Definition, error) {
	f := newFields(rec.ID, rec.Values)
	text, err := f.requireString("text")
	if err != nil {
		return nil, err
	}
	return &commentStep{
		base: base{id: rec.ID, image: rec.Image},
		text: text,
	}, nil
}

func (s *commentStep) ToData() Record {
	return s.record(map[string]interface{}{"text": s.text})
}

func (s *commentStep) Execute(rt Runtime, token *cancel.Token, rep *report.Run) error {
	text, err := rt.Resolve(s.text)
	if err != nil {
		return err
	}
	rep.Logf("%s", text)
	return nil
}

func (s *commentStep) Describe(rt Runtime) string {
	return fmt.Sprintf("Note: %s", describeResolve(rt, s.text))
}

// screenshotStep captures a snapshot and attaches it to the report entry.
type screenshotStep struct {
	base
}

func newScreenshot(rec Record) (Definition, error) {
	return &screenshotStep{base: base{id: rec.ID, image: rec.Image}}, nil
}

func (s *screenshotStep) ToData() Record {
	return s.record(map[string]interface{}{})
}

func (s *screenshotStep) Execute(rt Runtime, token *cancel.Token, rep *report.Run) error {
	img, err := rt.Driver().Screenshot()
	if err != nil {
		return core.ErrCapabilityMissing.WithCause(err).
			WithMessage("driver cannot capture a screenshot")
	}
	rep.AttachImage(img)
	return nil
}

func (s *screenshotStep) Describe(rt Runtime) string {
	return "Capture a screenshot"
}

// waitForAbsentStep waits until no element matches the identifier.
type waitForAbsentStep struct {
	base
	testableID string
	timeout    *time.Duration
}

func newWaitForAbsent(rec Record) (Definition, error) {
	f := newFields(rec.ID, rec.Values)
	testableID, err := f.requireString("testableId")
	if err != nil {
		return nil, err
	}
	timeout, err := f.optSeconds("timeout")
	if err != nil {
		return nil, err
	}
	return &waitForAbsentStep{
		base:       base{id: rec.ID, image: rec.Image},
		testableID: testableID,
		timeout:    timeout,
	}, nil
}

func (s *waitForAbsentStep) ToData() Record {
	values := map[string]interface{}{
		"testableId": s.testableID,
	}
	if s.timeout != nil {
		values["timeout"] = int(s.timeout.Seconds())
	}
	return s.record(values)
}

func (s *waitForAbsentStep) Execute(rt Runtime, token *cancel.Token, rep *report.Run) error {
	id, err := rt.Resolve(s.testableID)
	if err != nil {
		return err
	}
	timeout := rt.DefaultTimeout()
	if s.timeout != nil {
		timeout = *s.timeout
	}
	return rt.WaitForAbsent(id, timeout, token)
}

func (s *waitForAbsentStep) Describe(rt Runtime) string {
	id := describeResolve(rt, s.testableID)
	if s.timeout != nil {
		return fmt.Sprintf("Wait until %q disappears within %s", id, *s.timeout)
	}
	return fmt.Sprintf("Wait until %q disappears", id)
}
