package step

import (
	"fmt"
	"time"

	"github.com/uipilot-dev/uipilot/pkg/cancel"
	"github.com/uipilot-dev/uipilot/pkg/core"
	"github.com/uipilot-dev/uipilot/pkg/report"
	"github.com/uipilot-dev/uipilot/pkg/vars"
)

// IDSetValue identifies the set-value step.
const IDSetValue = "set_value"

// Value type tags accepted by set_value.
const (
	TypeBool   = "bool"
	TypeInt    = "int"
	TypeDouble = "double"
	TypeString = "String"
)

// setValueStep locates an element and writes a typed value into it.
type setValueStep struct {
	base
	testableID string
	value      string
	valueType  string
	timeout    *time.Duration
}

func newSetValue(rec Record) (Definition, error) {
	f := newFields(rec.ID, rec.Values)

	testableID, err := f.requireString("testableId")
	if err != nil {
		return nil, err
	}
	value, err := f.requireString("value")
	if err != nil {
		return nil, err
	}
	timeout, err := f.optSeconds("timeout")
	if err != nil {
		return nil, err
	}

	valueType := TypeString
	if t, err := f.optString("type"); err != nil {
		return nil, err
	} else if t != nil {
		valueType = *t
	}

	return &setValueStep{
		base:       base{id: rec.ID, image: rec.Image},
		testableID: testableID,
		value:      value,
		valueType:  valueType,
		timeout:    timeout,
	}, nil
}

func (s *setValueStep) ToData() Record {
	values := map[string]interface{}{
		"testableId": s.testableID,
		"value":      s.value,
		"type":       s.valueType,
	}
	if s.timeout != nil {
		values["timeout"] = int(s.timeout.Seconds())
	}
	return s.record(values)
}

func (s *setValueStep) Execute(rt Runtime, token *cancel.Token, rep *report.Run) error {
	id, err := rt.Resolve(s.testableID)
	if err != nil {
		return err
	}
	raw, err := rt.Resolve(s.value)
	if err != nil {
		return err
	}

	coerced, err := s.coerce(raw)
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

	if err := rt.Driver().WriteValue(el, coerced); err != nil {
		return core.ErrCapabilityMissing.WithCause(err).
			WithDetails(map[string]interface{}{"testableId": id})
	}
	return nil
}

// coerce validates the resolved literal against the declared type tag
// and returns its canonical string form for the driver.
func (s *setValueStep) coerce(raw string) (string, error) {
	f := newFields(s.id, nil)
	switch s.valueType {
	case TypeString:
		return raw, nil
	case TypeBool:
		return fmt.Sprintf("%t", vars.CoerceBool(raw)), nil
	case TypeInt:
		n, err := vars.CoerceInt(raw)
		if err != nil {
			return "", f.malformed("value %q is not an int: %v", raw, err)
		}
		return fmt.Sprintf("%d", n), nil
	case TypeDouble:
		x, err := vars.CoerceFloat(raw)
		if err != nil {
			return "", f.malformed("value %q is not a double: %v", raw, err)
		}
		return vars.Stringify(x), nil
	default:
		return "", f.malformed("unrecognized value type %q", s.valueType)
	}
}

func (s *setValueStep) Describe(rt Runtime) string {
	id := describeResolve(rt, s.testableID)
	value := describeResolve(rt, s.value)
	if s.valueType == TypeString {
		return fmt.Sprintf("Set value of %q to %q", id, value)
	}
	return fmt.Sprintf("Set value of %q to %q as %s", id, value, s.valueType)
}
