package step

import (
	"fmt"
	"strings"
	"time"

	"github.com/uipilot-dev/uipilot/pkg/cancel"
	"github.com/uipilot-dev/uipilot/pkg/core"
	"github.com/uipilot-dev/uipilot/pkg/report"
)

// Step type identifiers for the assertion steps.
const (
	IDAssertValue = "assert_value"
	IDAssertError = "assert_error"
)

// assertStep compares the value or error field of a located element
// against an expected literal. A nil expected value asserts emptiness.
type assertStep struct {
	base
	testableID    string
	value         *string
	equals        bool
	caseSensitive bool
	timeout       *time.Duration

	// readError selects the element's error field instead of its value.
	readError bool
}

func newAssertValue(rec Record) (Definition, error) {
	return parseAssert(rec, false)
}

func newAssertError(rec Record) (Definition, error) {
	return parseAssert(rec, true)
}

func parseAssert(rec Record, readError bool) (Definition, error) {
	f := newFields(rec.ID, rec.Values)

	testableID, err := f.requireString("testableId")
	if err != nil {
		return nil, err
	}
	timeout, err := f.optSeconds("timeout")
	if err != nil {
		return nil, err
	}

	return &assertStep{
		base:          base{id: rec.ID, image: rec.Image},
		testableID:    testableID,
		value:         f.optStringValue("value"),
		equals:        f.optBool("equals", true),
		caseSensitive: f.optBool("caseSensitive", true),
		timeout:       timeout,
		readError:     readError,
	}, nil
}

func (s *assertStep) ToData() Record {
	values := map[string]interface{}{
		"testableId":    s.testableID,
		"equals":        s.equals,
		"caseSensitive": s.caseSensitive,
	}
	if s.value != nil {
		values["value"] = *s.value
	}
	if s.timeout != nil {
		values["timeout"] = int(s.timeout.Seconds())
	}
	return s.record(values)
}

func (s *assertStep) Execute(rt Runtime, token *cancel.Token, rep *report.Run) error {
	id, err := rt.Resolve(s.testableID)
	if err != nil {
		return err
	}
	expected, err := resolveOptional(rt, s.value)
	if err != nil {
		return err
	}

	timeout := s.timeout
	if timeout == nil {
		d := rt.DefaultTimeout()
		timeout = &d
	}

	var el core.Element
	if s.readError {
		el, err = rt.WaitForInError(id, *timeout, token)
	} else {
		el, err = rt.WaitFor(id, *timeout, token)
	}
	if err != nil {
		return err
	}

	var actual string
	if s.readError {
		actual, err = rt.Driver().ReadError(el)
	} else {
		actual, err = rt.Driver().ReadValue(el)
	}
	if err != nil {
		return core.ErrCapabilityMissing.WithCause(err).
			WithDetails(map[string]interface{}{"testableId": id})
	}

	return s.compare(id, actual, expected)
}

// compare decides pass/fail before raising: a mismatch under equals=true
// and a match under equals=false both raise AssertionFailed.
func (s *assertStep) compare(id, actual string, expected *string) error {
	want := ""
	if expected != nil {
		want = *expected
	}

	got := actual
	if !s.caseSensitive {
		got = strings.ToLower(got)
		want = strings.ToLower(want)
	}

	match := got == want
	if match == s.equals {
		return nil
	}

	field := "value"
	if s.readError {
		field = "error"
	}
	verb := "equal"
	if !s.equals {
		verb = "differ from"
	}
	return core.ErrAssertionFailed.
		WithMessage("expected %s of %q to %s %q, got %q", field, id, verb, want, actual).
		WithDetails(map[string]interface{}{
			"testableId": id,
			"expected":   want,
			"actual":     actual,
			"equals":     s.equals,
		})
}

func (s *assertStep) Describe(rt Runtime) string {
	field := "value"
	if s.readError {
		field = "error"
	}
	id := describeResolve(rt, s.testableID)

	var b strings.Builder
	switch {
	case s.value == nil:
		fmt.Fprintf(&b, "Assert %s of %q is empty", field, id)
	case s.equals:
		fmt.Fprintf(&b, "Assert %s of %q equals %q", field, id, describeResolve(rt, *s.value))
	default:
		fmt.Fprintf(&b, "Assert %s of %q differs from %q", field, id, describeResolve(rt, *s.value))
	}
	if !s.caseSensitive {
		b.WriteString(" ignoring case")
	}
	if s.timeout != nil {
		fmt.Fprintf(&b, " within %s", *s.timeout)
	}
	return b.String()
}

// resolveOptional resolves a template through the runtime, passing nil
// through unchanged.
func resolveOptional(rt Runtime, template *string) (*string, error) {
	if template == nil {
		return nil, nil
	}
	resolved, err := rt.Resolve(*template)
	if err != nil {
		return nil, err
	}
	return &resolved, nil
}
