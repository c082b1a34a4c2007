package step

import (
	"sort"
	"sync"

	"github.com/uipilot-dev/uipilot/pkg/core"
)

// Factory deserializes a raw record into a typed step. It fails with a
// malformed-step error when a required field is missing or untypeable.
type Factory func(rec Record) (Definition, error)

// Registry maps step type identifiers to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register binds a factory to a step id, replacing any previous binding.
func (r *Registry) Register(stepID string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[stepID] = factory
}

// Create deserializes a record through the registered factory. An
// unregistered id fails with an unknown-step-type error.
func (r *Registry) Create(rec Record) (Definition, error) {
	r.mu.RLock()
	factory, ok := r.factories[rec.ID]
	r.mu.RUnlock()
	if !ok {
		return nil, core.ErrUnknownStepType.
			WithMessage("no step registered for id %q", rec.ID).
			WithDetails(map[string]interface{}{"stepId": rec.ID})
	}
	return factory(rec)
}

// Known reports whether a step id has a registered factory.
func (r *Registry) Known(stepID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[stepID]
	return ok
}

// IDs returns the registered step ids, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DefaultRegistry returns a registry with every built-in step type.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(IDAssertValue, newAssertValue)
	r.Register(IDAssertError, newAssertError)
	r.Register(IDSetValue, newSetValue)
	r.Register(IDTap, newTap)
	r.Register(IDDoubleTap, newDoubleTap)
	r.Register(IDLongPress, newLongPress)
	r.Register(IDScrollUntilVisible, newScrollUntilVisible)
	r.Register(IDSleep, newSleep)
	r.Register(IDComment, newComment)
	r.Register(IDEvalScript, newEvalScript)
	r.Register(IDScreenshot, newScreenshot)
	r.Register(IDWaitForAbsent, newWaitForAbsent)
	return r
}
