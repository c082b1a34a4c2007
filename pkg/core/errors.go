package core

import (
	"errors"
	"fmt"
)

// EngineError represents a structured error with kind and details.
// Step execution raises exactly one EngineError per failure; the kind
// separates "the test legitimately failed" from "the engine malfunctioned".
type EngineError struct {
	Kind    ErrorKind
	Code    string                 // Machine-readable code: target_not_found, assertion_failed, etc.
	Message string                 // Human-readable message
	Details map[string]interface{} // Additional context
	Cause   error                  // Underlying error
}

// Error implements the error interface
func (e *EngineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *EngineError) Unwrap() error {
	return e.Cause
}

// Is matches two EngineErrors by kind and code, so derived copies
// (WithCause, WithMessage, WithDetails) still compare equal to their
// predeclared sentinel via errors.Is.
func (e *EngineError) Is(target error) bool {
	var t *EngineError
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// WithCause returns a copy of the error with the given cause
func (e *EngineError) WithCause(cause error) *EngineError {
	return &EngineError{
		Kind:    e.Kind,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// WithMessage returns a copy of the error with a custom message
func (e *EngineError) WithMessage(format string, v ...interface{}) *EngineError {
	return &EngineError{
		Kind:    e.Kind,
		Code:    e.Code,
		Message: fmt.Sprintf(format, v...),
		Details: e.Details,
		Cause:   e.Cause,
	}
}

// WithDetails returns a copy of the error with additional details
func (e *EngineError) WithDetails(details map[string]interface{}) *EngineError {
	merged := make(map[string]interface{})
	for k, v := range e.Details {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	return &EngineError{
		Kind:    e.Kind,
		Code:    e.Code,
		Message: e.Message,
		Details: merged,
		Cause:   e.Cause,
	}
}

// Predefined errors, one per failure the engine can surface.
var (
	// Loading errors
	ErrMalformedStep = &EngineError{
		Kind:    KindMalformedStep,
		Code:    "malformed_step",
		Message: "step record is missing a required field or has a bad value",
	}
	ErrUnknownStepType = &EngineError{
		Kind:    KindUnknownStepType,
		Code:    "unknown_step_type",
		Message: "no factory registered for step type",
	}

	// Resolution errors
	ErrUnknownVariable = &EngineError{
		Kind:    KindUnknownVariable,
		Code:    "unknown_variable",
		Message: "template references a variable that is not set",
	}

	// Locator errors
	ErrTimeoutExceeded = &EngineError{
		Kind:    KindTimeout,
		Code:    "target_not_found",
		Message: "target did not appear within the timeout",
	}
	ErrAmbiguousTarget = &EngineError{
		Kind:    KindAmbiguousTarget,
		Code:    "ambiguous_target",
		Message: "identifier matched more than one element",
	}

	// Scroll errors
	ErrScrollableNotFound = &EngineError{
		Kind:    KindScrollableNotFound,
		Code:    "scrollable_not_found",
		Message: "no scrollable container could be resolved",
	}
	ErrScrollTimeout = &EngineError{
		Kind:    KindScrollTimeout,
		Code:    "scroll_timeout",
		Message: "target was not revealed within the scroll timeout",
	}

	// Outcome errors
	ErrAssertionFailed = &EngineError{
		Kind:    KindAssertionFailed,
		Code:    "assertion_failed",
		Message: "comparison outcome contradicts the expectation",
	}
	ErrCancelled = &EngineError{
		Kind:    KindCancelled,
		Code:    "cancelled",
		Message: "run was cancelled",
	}

	// Driver errors
	ErrCapabilityMissing = &EngineError{
		Kind:    KindDriver,
		Code:    "capability_missing",
		Message: "target does not support the requested capability",
	}
	ErrDriverFault = &EngineError{
		Kind:    KindDriver,
		Code:    "driver_fault",
		Message: "driver call failed",
	}
)

// NewEngineError creates a new EngineError with the given parameters
func NewEngineError(kind ErrorKind, code, message string) *EngineError {
	return &EngineError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// KindOf extracts the error kind from an error chain.
// Non-engine errors report KindDriver: anything the engine did not raise
// itself came across the driver boundary.
func KindOf(err error) ErrorKind {
	var e *EngineError
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindDriver
}
