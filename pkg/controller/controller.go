// Package controller orchestrates test runs: it owns the variable
// scopes, the cancel token, the transient progress value and the report,
// and executes steps strictly in order.
package controller

import (
	"errors"
	"sync"
	"time"

	"github.com/uipilot-dev/uipilot/pkg/cancel"
	"github.com/uipilot-dev/uipilot/pkg/core"
	"github.com/uipilot-dev/uipilot/pkg/locator"
	"github.com/uipilot-dev/uipilot/pkg/logger"
	"github.com/uipilot-dev/uipilot/pkg/progress"
	"github.com/uipilot-dev/uipilot/pkg/report"
	"github.com/uipilot-dev/uipilot/pkg/script"
	"github.com/uipilot-dev/uipilot/pkg/step"
	"github.com/uipilot-dev/uipilot/pkg/testdef"
	"github.com/uipilot-dev/uipilot/pkg/vars"
)

// DefaultWaitTimeout is the wait budget for steps without an explicit
// timeout when Options leaves it unset.
const DefaultWaitTimeout = 10 * time.Second

// Options configures run behavior.
type Options struct {
	// StopOnFailure aborts the run at the first failed step. A
	// cancelled step always stops the run regardless of this setting.
	StopOnFailure bool

	// StrictVariables raises UnknownVariable for unresolved template
	// tokens instead of passing them through.
	StrictVariables bool

	// DefaultTimeout is the wait budget for steps without their own.
	DefaultTimeout time.Duration

	// CaptureOnFailure attaches a screenshot to failed report entries.
	CaptureOnFailure bool

	// OnStepComplete, when set, observes every closed report entry.
	OnStepComplete func(report.Entry)
}

// Controller drives step execution against one driver.
type Controller struct {
	driver   core.Driver
	registry *step.Registry
	log      *logger.Logger
	opts     Options

	scopes   *vars.Scopes
	resolver *vars.Resolver
	engine   *script.Engine
	reporter *progress.Reporter
	loc      *locator.Locator

	mu      sync.Mutex
	token   *cancel.Token
	current progress.Value
	active  bool
}

// New creates a controller. log may be nil to discard engine logging.
func New(driver core.Driver, registry *step.Registry, log *logger.Logger, opts Options) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	if opts.DefaultTimeout <= 0 {
		opts.DefaultTimeout = DefaultWaitTimeout
	}

	mode := vars.Lenient
	if opts.StrictVariables {
		mode = vars.Strict
	}

	c := &Controller{
		driver:   driver,
		registry: registry,
		log:      log,
		opts:     opts,
		scopes:   vars.NewScopes(),
	}
	c.resolver = vars.NewResolver(c.scopes, mode)
	c.engine = script.New(c.Logf)
	c.reporter = progress.NewReporter(c)
	c.loc = locator.New(driver, c.reporter)
	return c
}

// Registry exposes the step registry the controller deserializes with.
func (c *Controller) Registry() *step.Registry { return c.registry }

// SetVariable stores a variable in the given scope.
func (c *Controller) SetVariable(scope vars.ScopeKind, name string, value interface{}) error {
	return c.scopes.Set(scope, name, normalize(value))
}

// GetVariable finds a variable, run-local shadowing global.
func (c *Controller) GetVariable(name string) (interface{}, bool) {
	return c.scopes.Lookup(name)
}

// RemoveVariable deletes a variable from the given scope.
func (c *Controller) RemoveVariable(scope vars.ScopeKind, name string) {
	c.scopes.Remove(scope, name)
}

// Cancel flips the current run's token. It is safe to call at any time,
// from any goroutine, and is a no-op when no run is active.
func (c *Controller) Cancel() {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != nil {
		token.Cancel()
	}
}

// Progress returns the in-flight progress value, if any wait is active.
func (c *Controller) Progress() (progress.Value, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current, c.active
}

// Execute runs the steps in order and returns the finalized report.
// Each run gets a fresh cancel token and a cleared run-local scope.
func (c *Controller) Execute(name string, steps []step.Definition) *report.Run {
	token := cancel.NewToken()
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	c.scopes.ClearRun()
	run := report.NewRun(name)
	c.log.Infof("run %s (%s): %d steps", run.ID, name, len(steps))

	defer func() {
		c.ClearProgress()
		run.Finalize()
		c.mu.Lock()
		c.token = nil
		c.mu.Unlock()
	}()

	for i, def := range steps {
		if token.Cancelled() {
			c.log.Warnf("run %s cancelled before step %d", run.ID, i)
			break
		}

		desc := def.Describe(c)
		c.log.Infof("step %d [%s]: %s", i, def.ID(), desc)
		run.Begin(i, def.ID(), desc)

		err := def.Execute(c, token, run)
		if err != nil && c.opts.CaptureOnFailure && !errors.Is(err, core.ErrCancelled) {
			if img, shotErr := c.driver.Screenshot(); shotErr == nil {
				run.AttachImage(img)
			}
		}
		run.Complete(err)

		if c.opts.OnStepComplete != nil {
			if entry, ok := run.Entry(run.Len() - 1); ok {
				c.opts.OnStepComplete(entry)
			}
		}

		if err == nil {
			continue
		}
		c.log.Errorf("step %d failed (%s): %v", i, core.KindOf(err), err)
		if errors.Is(err, core.ErrCancelled) || c.opts.StopOnFailure {
			break
		}
	}

	return run
}

// RunTests executes each test in sequence, one report per test. A
// cancellation stops the remaining tests as well.
func (c *Controller) RunTests(tests []*testdef.Test) []*report.Run {
	runs := make([]*report.Run, 0, len(tests))
	for _, t := range tests {
		run := c.Execute(t.Name, t.Steps())
		runs = append(runs, run)
		if runWasCancelled(run) {
			break
		}
	}
	return runs
}

func runWasCancelled(run *report.Run) bool {
	n := run.Len()
	if n == 0 {
		return false
	}
	entry, _ := run.Entry(n - 1)
	return entry.Status == core.StatusCancelled.String()
}

// normalize widens script and host values into the store's primitive
// set.
func normalize(value interface{}) interface{} {
	switch t := value.(type) {
	case string, bool, int, float64:
		return t
	case int32:
		return int(t)
	case int64:
		return int(t)
	case float32:
		return float64(t)
	default:
		return vars.Stringify(value)
	}
}
