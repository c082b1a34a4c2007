package step

import (
	"time"

	"github.com/uipilot-dev/uipilot/pkg/core"
	"github.com/uipilot-dev/uipilot/pkg/vars"
)

// fields wraps a raw value bag with the owning step id so every
// malformed-step error names the step it came from.
type fields struct {
	stepID string
	raw    map[string]interface{}
}

func newFields(stepID string, raw map[string]interface{}) fields {
	return fields{stepID: stepID, raw: raw}
}

func (f fields) malformed(format string, v ...interface{}) error {
	return core.ErrMalformedStep.
		WithMessage(format, v...).
		WithDetails(map[string]interface{}{"stepId": f.stepID})
}

func (f fields) lookup(key string) (interface{}, bool) {
	v, ok := f.raw[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// requireString returns a mandatory string field.
func (f fields) requireString(key string) (string, error) {
	v, ok := f.lookup(key)
	if !ok {
		return "", f.malformed("missing required field %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", f.malformed("field %q must be a string, got %T", key, v)
	}
	return s, nil
}

// optString returns an optional string field, nil when absent.
func (f fields) optString(key string) (*string, error) {
	v, ok := f.lookup(key)
	if !ok {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, f.malformed("field %q must be a string, got %T", key, v)
	}
	return &s, nil
}

// optStringValue accepts any primitive and stringifies it. Used for
// comparison literals where the author may write a bare number.
func (f fields) optStringValue(key string) *string {
	v, ok := f.lookup(key)
	if !ok {
		return nil
	}
	s := vars.Stringify(v)
	return &s
}

// optBool coerces an optional boolean field, using def when absent.
func (f fields) optBool(key string, def bool) bool {
	v, ok := f.lookup(key)
	if !ok {
		return def
	}
	return vars.CoerceBool(v)
}

// optInt coerces an optional integer field, using def when absent.
func (f fields) optInt(key string, def int) (int, error) {
	v, ok := f.lookup(key)
	if !ok {
		return def, nil
	}
	n, err := vars.CoerceInt(v)
	if err != nil {
		return 0, f.malformed("field %q: %v", key, err)
	}
	return n, nil
}

// optFloat coerces an optional float field, using def when absent.
func (f fields) optFloat(key string, def float64) (float64, error) {
	v, ok := f.lookup(key)
	if !ok {
		return def, nil
	}
	x, err := vars.CoerceFloat(v)
	if err != nil {
		return 0, f.malformed("field %q: %v", key, err)
	}
	return x, nil
}

// optSeconds coerces an optional whole-seconds duration field, nil when
// absent.
func (f fields) optSeconds(key string) (*time.Duration, error) {
	v, ok := f.lookup(key)
	if !ok {
		return nil, nil
	}
	d, err := vars.CoerceSeconds(v)
	if err != nil {
		return nil, f.malformed("field %q: %v", key, err)
	}
	return &d, nil
}
