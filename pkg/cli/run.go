package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/uipilot-dev/uipilot/pkg/config"
	"github.com/uipilot-dev/uipilot/pkg/controller"
	"github.com/uipilot-dev/uipilot/pkg/logger"
	"github.com/uipilot-dev/uipilot/pkg/report"
	"github.com/uipilot-dev/uipilot/pkg/step"
	"github.com/uipilot-dev/uipilot/pkg/testdef"
	"github.com/uipilot-dev/uipilot/pkg/vars"
)

var runCommand = &cli.Command{
	Name:      "run",
	Usage:     "Execute test documents and write JSON reports",
	ArgsUsage: "[test files...]",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "stop-on-failure",
			Usage: "Abort a run at the first failed step",
		},
		&cli.BoolFlag{
			Name:  "strict-vars",
			Usage: "Fail on unresolved {{variable}} tokens",
		},
		&cli.BoolFlag{
			Name:  "capture",
			Usage: "Attach a screenshot to failed steps",
		},
		&cli.IntFlag{
			Name:  "timeout",
			Usage: "Default wait timeout in seconds",
		},
		&cli.StringFlag{
			Name:  "report-dir",
			Usage: "Directory for run reports (default: workspace config, else stdout only)",
		},
		&cli.StringFlag{
			Name:  "screen",
			Usage: "Screen file scripting the simulated target application",
		},
	},
	Action: runAction,
}

func runAction(ctx *cli.Context) error {
	workspace := ctx.String("workspace")
	cfg, err := config.LoadFromDir(workspace)
	if err != nil {
		return fmt.Errorf("loading workspace config: %w", err)
	}
	applyFlags(ctx, cfg)

	log, err := openLog(ctx, cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	registry := step.DefaultRegistry()
	tests, err := loadTests(ctx, workspace, cfg, registry)
	if err != nil {
		return err
	}
	if len(tests) == 0 {
		return fmt.Errorf("no test documents to run")
	}

	drv, err := loadScreen(ctx.String("screen"))
	if err != nil {
		return err
	}

	ctrl := controller.New(drv, registry, log, controller.Options{
		StopOnFailure:    cfg.StopOnFailure,
		StrictVariables:  cfg.StrictVariables,
		CaptureOnFailure: cfg.CaptureOnFailure,
		DefaultTimeout:   time.Duration(cfg.DefaultTimeout) * time.Second,
	})
	if err := seedVariables(ctx, cfg, ctrl); err != nil {
		return err
	}

	runs := ctrl.RunTests(tests)

	failed := 0
	for _, run := range runs {
		if !run.Success() {
			failed++
		}
		fmt.Fprintf(ctx.App.Writer, "%s: %s (%d steps)\n", run.Name, outcome(run), run.Len())
		if cfg.ReportDir != "" {
			if err := writeReport(cfg.ReportDir, run); err != nil {
				return err
			}
		}
	}
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d tests failed", failed, len(runs)), 1)
	}
	return nil
}

func applyFlags(ctx *cli.Context, cfg *config.Config) {
	if ctx.Bool("stop-on-failure") {
		cfg.StopOnFailure = true
	}
	if ctx.Bool("strict-vars") {
		cfg.StrictVariables = true
	}
	if ctx.Bool("capture") {
		cfg.CaptureOnFailure = true
	}
	if t := ctx.Int("timeout"); t > 0 {
		cfg.DefaultTimeout = t
	}
	if dir := ctx.String("report-dir"); dir != "" {
		cfg.ReportDir = dir
	}
	if path := ctx.String("log-file"); path != "" {
		cfg.LogFile = path
	}
}

func openLog(ctx *cli.Context, cfg *config.Config) (*logger.Logger, error) {
	if cfg.LogFile == "" {
		return logger.Nop(), nil
	}
	log, err := logger.New(cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return log, nil
}

// loadTests resolves the documents to run: explicit arguments win,
// otherwise the workspace config's glob patterns.
func loadTests(ctx *cli.Context, workspace string, cfg *config.Config, registry *step.Registry) ([]*testdef.Test, error) {
	paths := ctx.Args().Slice()
	if len(paths) == 0 {
		for _, pattern := range cfg.Tests {
			matches, err := filepath.Glob(filepath.Join(workspace, pattern))
			if err != nil {
				return nil, fmt.Errorf("bad test pattern %q: %w", pattern, err)
			}
			paths = append(paths, matches...)
		}
	}

	tests := make([]*testdef.Test, 0, len(paths))
	for _, path := range paths {
		t, err := testdef.LoadFile(path, registry)
		if err != nil {
			return nil, err
		}
		tests = append(tests, t)
	}
	return tests, nil
}

func seedVariables(ctx *cli.Context, cfg *config.Config, ctrl *controller.Controller) error {
	for name, value := range cfg.Variables {
		if err := ctrl.SetVariable(vars.ScopeGlobal, name, value); err != nil {
			return err
		}
	}
	for _, pair := range ctx.StringSlice("var") {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("variable %q is not NAME=VALUE", pair)
		}
		if err := ctrl.SetVariable(vars.ScopeGlobal, name, value); err != nil {
			return err
		}
	}
	return nil
}

func writeReport(dir string, run *report.Run) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	path := filepath.Join(dir, run.ID+".json")
	f, err := os.Create(path) //#nosec G304 -- path derived from run id
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()
	return run.WriteJSON(f)
}

func outcome(run *report.Run) string {
	if run.Success() {
		return "passed"
	}
	return "failed"
}
