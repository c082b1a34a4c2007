package core

// StepStatus represents the execution status of a step
type StepStatus int

const (
	StatusPending   StepStatus = iota // Not yet started
	StatusRunning                     // Currently executing
	StatusPassed                      // Completed successfully
	StatusFailed                      // Raised a typed execution error
	StatusCancelled                   // Unwound by cooperative cancellation
)

// String returns the string representation of StepStatus
func (s StepStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// IsTerminal returns true if the status is a final state
func (s StepStatus) IsTerminal() bool {
	switch s {
	case StatusPassed, StatusFailed, StatusCancelled:
		return true
	default:
		return false
	}
}

// ErrorKind classifies what failed, so callers can distinguish a failing
// assertion from a misbehaving engine or driver.
type ErrorKind int

const (
	KindNone               ErrorKind = iota // No error
	KindMalformedStep                       // Bad or missing parameter at deserialize time
	KindUnknownStepType                     // Registry miss
	KindUnknownVariable                     // Strict-mode resolution miss
	KindTimeout                             // Wait-for exhausted without a match
	KindAmbiguousTarget                     // More than one match where exactly one is required
	KindScrollableNotFound                  // No scroll container resolvable
	KindScrollTimeout                       // Scroll search exhausted
	KindAssertionFailed                     // Comparison mismatch
	KindCancelled                           // Cooperative abort
	KindDriver                              // Fault at the driver boundary
)

// String returns the string representation of ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindMalformedStep:
		return "malformed_step"
	case KindUnknownStepType:
		return "unknown_step_type"
	case KindUnknownVariable:
		return "unknown_variable"
	case KindTimeout:
		return "timeout"
	case KindAmbiguousTarget:
		return "ambiguous_target"
	case KindScrollableNotFound:
		return "scrollable_not_found"
	case KindScrollTimeout:
		return "scroll_timeout"
	case KindAssertionFailed:
		return "assertion_failed"
	case KindCancelled:
		return "cancelled"
	case KindDriver:
		return "driver"
	default:
		return "unknown"
	}
}
