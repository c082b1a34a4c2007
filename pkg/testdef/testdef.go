// Package testdef holds the authorable test value: metadata plus an
// ordered sequence of step definitions.
package testdef

import (
	"fmt"

	"github.com/uipilot-dev/uipilot/pkg/step"
)

// Test is an ordered, mutable sequence of steps with metadata. It is
// built and edited by authoring operations and never mutated during
// execution.
type Test struct {
	Name    string
	Suite   string
	Version string

	steps []step.Definition
}

// New creates an empty test.
func New(name, suite, version string) *Test {
	return &Test{Name: name, Suite: suite, Version: version}
}

// Len returns the number of steps.
func (t *Test) Len() int { return len(t.steps) }

// Steps returns the step sequence in order. The slice is a copy; the
// definitions themselves are immutable.
func (t *Test) Steps() []step.Definition {
	return append([]step.Definition(nil), t.steps...)
}

// Append adds a step at the end of the sequence.
func (t *Test) Append(def step.Definition) {
	t.steps = append(t.steps, def)
}

// RemoveAt deletes the step at index i, closing the gap.
func (t *Test) RemoveAt(i int) error {
	if i < 0 || i >= len(t.steps) {
		return fmt.Errorf("step index %d out of range [0,%d)", i, len(t.steps))
	}
	t.steps = append(t.steps[:i], t.steps[i+1:]...)
	return nil
}

// Move relocates the step at index from to index to, shifting the steps
// in between. The rest of the order is preserved.
func (t *Test) Move(from, to int) error {
	n := len(t.steps)
	if from < 0 || from >= n {
		return fmt.Errorf("step index %d out of range [0,%d)", from, n)
	}
	if to < 0 || to >= n {
		return fmt.Errorf("step index %d out of range [0,%d)", to, n)
	}
	if from == to {
		return nil
	}
	moved := t.steps[from]
	t.steps = append(t.steps[:from], t.steps[from+1:]...)
	t.steps = append(t.steps[:to], append([]step.Definition{moved}, t.steps[to:]...)...)
	return nil
}

// Records serializes every step in order.
func (t *Test) Records() []step.Record {
	records := make([]step.Record, len(t.steps))
	for i, def := range t.steps {
		records[i] = def.ToData()
	}
	return records
}
