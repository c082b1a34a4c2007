// Package script provides JavaScript expression evaluation backed by goja.
package script

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dop251/goja"
)

// LogFunc receives console output produced by evaluated scripts.
type LogFunc func(format string, v ...interface{})

// Engine wraps a goja runtime with a variable bridge and console logging.
type Engine struct {
	runtime *goja.Runtime
	logf    LogFunc
	mu      sync.Mutex
}

// New creates an engine. logf may be nil to discard console output.
func New(logf LogFunc) *Engine {
	e := &Engine{
		runtime: goja.New(),
		logf:    logf,
	}
	e.setupConsole()
	return e
}

// setupConsole wires console.log/info/warn/error to the log function.
func (e *Engine) setupConsole() {
	makeFunc := func(prefix string) func(goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			if e.logf == nil {
				return goja.Undefined()
			}
			parts := make([]string, 0, len(call.Arguments))
			for _, arg := range call.Arguments {
				parts = append(parts, fmt.Sprintf("%v", arg.Export()))
			}
			e.logf("%s%s", prefix, strings.Join(parts, " "))
			return goja.Undefined()
		}
	}

	console := e.runtime.NewObject()
	console.Set("log", makeFunc(""))
	console.Set("info", makeFunc(""))
	console.Set("warn", makeFunc("WARN: "))
	console.Set("error", makeFunc("ERROR: "))
	e.runtime.Set("console", console)
}

// Set binds a value into the runtime's global scope.
func (e *Engine) Set(name string, value interface{}) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.runtime.Set(name, value)
}

// SetAll binds every entry of a map into the global scope.
func (e *Engine) SetAll(values map[string]interface{}) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for name, value := range values {
		e.runtime.Set(name, value)
	}
}

// Eval runs a script and returns its exported result. Script exceptions
// come back as plain errors.
func (e *Engine) Eval(src string) (interface{}, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	value, err := e.runtime.RunString(src)
	if err != nil {
		if exc, ok := err.(*goja.Exception); ok {
			return nil, fmt.Errorf("script exception: %v", exc.Value())
		}
		return nil, fmt.Errorf("script error: %w", err)
	}
	if value == nil || goja.IsUndefined(value) || goja.IsNull(value) {
		return nil, nil
	}
	return value.Export(), nil
}
