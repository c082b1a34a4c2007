// Package step defines the polymorphic step contract, the registry that
// deserializes raw records into typed steps, and every built-in step.
package step

import (
	"time"

	"github.com/uipilot-dev/uipilot/pkg/cancel"
	"github.com/uipilot-dev/uipilot/pkg/core"
	"github.com/uipilot-dev/uipilot/pkg/progress"
	"github.com/uipilot-dev/uipilot/pkg/report"
)

// Record is the flat serialized form of a step: its type id, an optional
// binary snapshot carried for audit purposes, and the step-specific
// field bag. The engine never interprets the image.
type Record struct {
	ID     string                 `json:"id" yaml:"id"`
	Image  []byte                 `json:"image,omitempty" yaml:"image,omitempty"`
	Values map[string]interface{} `json:"values" yaml:"values"`
}

// Runtime is the controller surface a step executes against. Every
// blocking call takes the run's cancel token so cancellation unwinds
// within one polling tick.
type Runtime interface {
	// Resolve substitutes {{name}} tokens using the current scopes.
	Resolve(template string) (string, error)

	// Driver exposes the host's gesture/value capability.
	Driver() core.Driver

	// WaitFor polls for a uniquely identified element until timeout.
	WaitFor(id string, timeout time.Duration, token *cancel.Token) (core.Element, error)

	// WaitForInError is WaitFor with error-context progress ticks.
	WaitForInError(id string, timeout time.Duration, token *cancel.Token) (core.Element, error)

	// WaitForAbsent polls until no element matches the identifier.
	WaitForAbsent(id string, timeout time.Duration, token *cancel.Token) error

	// Sleep waits the duration, publishing bounded progress ticks.
	Sleep(d time.Duration, token *cancel.Token) error

	// SetRunVariable stores a value into the run-local scope.
	SetRunVariable(name string, value interface{}) error

	// DefaultTimeout is the wait budget for steps without an explicit one.
	DefaultTimeout() time.Duration

	// Eval runs a script expression against the run's script engine.
	Eval(src string) (interface{}, error)

	// PublishProgress and ClearProgress drive the transient progress
	// value directly, for steps that report their own iteration progress.
	PublishProgress(v progress.Value)
	ClearProgress()

	// Logf writes a line to the engine log.
	Logf(format string, v ...interface{})
}

// Definition is one immutable unit of declarative test work.
type Definition interface {
	// ID returns the step's type identifier, fixed at construction.
	ID() string

	// ToData serializes the step back to its record form. The round
	// trip through the registry yields a value-equal step.
	ToData() Record

	// Execute performs the step's effect. It either completes or raises
	// exactly one typed error; it never returns partial success.
	Execute(rt Runtime, token *cancel.Token, rep *report.Run) error

	// Describe renders a natural-language description of the step with
	// variable tokens substituted with their current values.
	Describe(rt Runtime) string
}

// base carries the fields every step shares.
type base struct {
	id    string
	image []byte
}

func (b base) ID() string { return b.id }

func (b base) record(values map[string]interface{}) Record {
	return Record{ID: b.id, Image: b.image, Values: values}
}

// settleDelay is the pause after a gesture or scroll drag, giving the
// host's animations and layout a moment before the next probe.
const settleDelay = 300 * time.Millisecond

// settle waits the settle delay, aborting promptly on cancellation.
func settle(token *cancel.Token) error {
	timer := time.NewTimer(settleDelay)
	defer timer.Stop()
	select {
	case <-token.Done():
		return core.ErrCancelled.WithMessage("cancelled during settle delay")
	case <-timer.C:
		return nil
	}
}

// describeResolve resolves a template for display. Resolution failures
// keep the literal text; Describe never raises.
func describeResolve(rt Runtime, template string) string {
	resolved, err := rt.Resolve(template)
	if err != nil {
		return template
	}
	return resolved
}
