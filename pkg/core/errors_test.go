package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestEngineError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *EngineError
		expected string
	}{
		{
			"message only",
			&EngineError{Message: "target did not appear"},
			"target did not appear",
		},
		{
			"with cause",
			&EngineError{Message: "driver call failed", Cause: fmt.Errorf("connection reset")},
			"driver call failed: connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error()=%q, want %q", got, tt.expected)
			}
		})
	}
}

func TestEngineError_Is(t *testing.T) {
	derived := ErrTimeoutExceeded.
		WithMessage("target %q did not appear within %s", "login_button", "5s").
		WithDetails(map[string]interface{}{"testableId": "login_button"})

	if !errors.Is(derived, ErrTimeoutExceeded) {
		t.Error("derived error should match its sentinel via errors.Is")
	}
	if errors.Is(derived, ErrAssertionFailed) {
		t.Error("derived error should not match a different sentinel")
	}
}

func TestEngineError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("socket closed")
	err := ErrDriverFault.WithCause(cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped cause should be reachable via errors.Is")
	}
}

func TestEngineError_WithDetails(t *testing.T) {
	base := ErrAssertionFailed.WithDetails(map[string]interface{}{"expected": "a"})
	merged := base.WithDetails(map[string]interface{}{"actual": "b"})

	if merged.Details["expected"] != "a" || merged.Details["actual"] != "b" {
		t.Errorf("WithDetails should merge, got %v", merged.Details)
	}
	if len(base.Details) != 1 {
		t.Error("WithDetails must not mutate the receiver")
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorKind
	}{
		{"sentinel", ErrAmbiguousTarget, KindAmbiguousTarget},
		{"derived", ErrCancelled.WithMessage("run aborted"), KindCancelled},
		{"wrapped", fmt.Errorf("step: %w", ErrScrollTimeout), KindScrollTimeout},
		{"foreign", fmt.Errorf("plain failure"), KindDriver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.expected {
				t.Errorf("KindOf()=%v, want %v", got, tt.expected)
			}
		})
	}
}
