// Package vars provides the layered variable store and the {{name}}
// template resolver used by every string-typed step field.
package vars

import (
	"fmt"
	"strconv"
)

// ScopeKind selects which layer a variable operation targets.
type ScopeKind int

const (
	// ScopeGlobal persists across runs.
	ScopeGlobal ScopeKind = iota
	// ScopeRun is cleared at the start of every run.
	ScopeRun
)

// String returns the string representation of ScopeKind
func (s ScopeKind) String() string {
	if s == ScopeRun {
		return "run"
	}
	return "global"
}

// Scopes is the two-layer key/value store. Keys are case-sensitive; values
// are typed (string, int, float64, bool) but always representable as a
// string. Lookup consults the run-local layer first, then global.
type Scopes struct {
	global map[string]interface{}
	run    map[string]interface{}
}

// NewScopes creates an empty store.
func NewScopes() *Scopes {
	return &Scopes{
		global: make(map[string]interface{}),
		run:    make(map[string]interface{}),
	}
}

// Set stores a value in the given scope. Only string, bool, int and
// float64 values are accepted.
func (s *Scopes) Set(scope ScopeKind, name string, value interface{}) error {
	switch value.(type) {
	case string, bool, int, float64:
	default:
		return fmt.Errorf("unsupported variable type %T for %q", value, name)
	}
	s.layer(scope)[name] = value
	return nil
}

// Remove deletes a variable from the given scope.
func (s *Scopes) Remove(scope ScopeKind, name string) {
	delete(s.layer(scope), name)
}

// Lookup finds a variable, run-local shadowing global.
func (s *Scopes) Lookup(name string) (interface{}, bool) {
	if v, ok := s.run[name]; ok {
		return v, true
	}
	v, ok := s.global[name]
	return v, ok
}

// LookupString finds a variable and stringifies it.
func (s *Scopes) LookupString(name string) (string, bool) {
	v, ok := s.Lookup(name)
	if !ok {
		return "", false
	}
	return Stringify(v), true
}

// Snapshot flattens both layers into one map, run-local shadowing
// global. The result is a copy.
func (s *Scopes) Snapshot() map[string]interface{} {
	out := make(map[string]interface{}, len(s.global)+len(s.run))
	for name, v := range s.global {
		out[name] = v
	}
	for name, v := range s.run {
		out[name] = v
	}
	return out
}

// ClearRun drops every run-local variable. Called at the start of a run.
func (s *Scopes) ClearRun() {
	s.run = make(map[string]interface{})
}

func (s *Scopes) layer(scope ScopeKind) map[string]interface{} {
	if scope == ScopeRun {
		return s.run
	}
	return s.global
}

// Stringify renders a typed variable value in its canonical string form.
func Stringify(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
