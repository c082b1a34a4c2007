// Package cli provides the command-line interface for uipilot.
package cli

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// Version is set at build time.
var Version = "dev"

// GlobalFlags are available to all commands.
var GlobalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "workspace",
		Aliases: []string{"w"},
		Usage:   "Workspace directory holding config.yaml",
		Value:   ".",
		EnvVars: []string{"UIPILOT_WORKSPACE"},
	},
	&cli.StringFlag{
		Name:    "log-file",
		Usage:   "Engine log file (defaults to the workspace config, else discard)",
		EnvVars: []string{"UIPILOT_LOG_FILE"},
	},
	&cli.StringSliceFlag{
		Name:    "var",
		Aliases: []string{"e"},
		Usage:   "Global variable as NAME=VALUE (repeatable)",
	},
}

// Execute runs the CLI.
func Execute() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "uipilot",
		Usage:   "Declarative step-based UI test engine",
		Version: Version,
		Description: `uipilot executes ordered step documents against a target
application and writes a per-run JSON report.

Examples:
  uipilot run tests/login.yaml
  uipilot run -w workspace/ --stop-on-failure
  uipilot validate tests/*.yaml
  uipilot describe tests/login.yaml -e user=ada`,
		// Return ExitCoder errors from Run instead of calling os.Exit so
		// Execute's error handling above is reachable.
		ExitErrHandler: func(*cli.Context, error) {},
		Flags:          GlobalFlags,
		Commands: []*cli.Command{
			runCommand,
			validateCommand,
			describeCommand,
		},
	}
}
