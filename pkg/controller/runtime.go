package controller

import (
	"time"

	"github.com/uipilot-dev/uipilot/pkg/cancel"
	"github.com/uipilot-dev/uipilot/pkg/core"
	"github.com/uipilot-dev/uipilot/pkg/progress"
	"github.com/uipilot-dev/uipilot/pkg/vars"
)

// The controller is the runtime its steps execute against, and the sink
// its progress reporter publishes to.

// Resolve substitutes {{name}} tokens using the current scopes.
func (c *Controller) Resolve(template string) (string, error) {
	return c.resolver.Resolve(template)
}

// Driver exposes the host's gesture/value capability.
func (c *Controller) Driver() core.Driver { return c.driver }

// WaitFor polls for a uniquely identified element until timeout.
func (c *Controller) WaitFor(id string, timeout time.Duration, token *cancel.Token) (core.Element, error) {
	return c.loc.WaitFor(id, timeout, token)
}

// WaitForInError is WaitFor with error-context progress ticks.
func (c *Controller) WaitForInError(id string, timeout time.Duration, token *cancel.Token) (core.Element, error) {
	return c.loc.WaitForInError(id, timeout, token)
}

// WaitForAbsent polls until no element matches the identifier.
func (c *Controller) WaitForAbsent(id string, timeout time.Duration, token *cancel.Token) error {
	return c.loc.WaitForAbsent(id, timeout, token)
}

// Sleep waits the duration, publishing bounded progress ticks.
func (c *Controller) Sleep(d time.Duration, token *cancel.Token) error {
	return c.reporter.Sleep(d, token)
}

// SetRunVariable stores a value into the run-local scope.
func (c *Controller) SetRunVariable(name string, value interface{}) error {
	return c.scopes.Set(vars.ScopeRun, name, normalize(value))
}

// DefaultTimeout is the wait budget for steps without an explicit one.
func (c *Controller) DefaultTimeout() time.Duration {
	return c.opts.DefaultTimeout
}

// Eval runs a script expression with the current variables in scope.
func (c *Controller) Eval(src string) (interface{}, error) {
	c.engine.SetAll(c.scopes.Snapshot())
	return c.engine.Eval(src)
}

// Logf writes a line to the engine log.
func (c *Controller) Logf(format string, v ...interface{}) {
	c.log.Infof(format, v...)
}

// PublishProgress records the in-flight progress value.
func (c *Controller) PublishProgress(v progress.Value) {
	c.Publish(v)
}

// ClearProgress resets the progress value to absent.
func (c *Controller) ClearProgress() {
	c.Clear()
}

// Publish implements progress.Sink.
func (c *Controller) Publish(v progress.Value) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = v
	c.active = true
}

// Clear implements progress.Sink.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = progress.Value{}
	c.active = false
}
