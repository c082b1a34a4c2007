package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/uipilot-dev/uipilot/pkg/config"
	"github.com/uipilot-dev/uipilot/pkg/controller"
	"github.com/uipilot-dev/uipilot/pkg/driver/mock"
	"github.com/uipilot-dev/uipilot/pkg/step"
	"github.com/uipilot-dev/uipilot/pkg/testdef"
)

var describeCommand = &cli.Command{
	Name:      "describe",
	Usage:     "Print the resolved description of every step in a document",
	ArgsUsage: "<test file>",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "var",
			Aliases: []string{"e"},
			Usage:   "Global variable as NAME=VALUE (repeatable)",
		},
	},
	Action: describeAction,
}

func describeAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("describe takes exactly one test document")
	}

	cfg, err := config.LoadFromDir(ctx.String("workspace"))
	if err != nil {
		return fmt.Errorf("loading workspace config: %w", err)
	}

	registry := step.DefaultRegistry()
	t, err := testdef.LoadFile(ctx.Args().First(), registry)
	if err != nil {
		return err
	}

	// Descriptions resolve against the seeded variables; no driver calls
	// happen, so an empty mock suffices.
	ctrl := controller.New(mock.New(mock.Config{}), registry, nil, controller.Options{})
	if err := seedVariables(ctx, cfg, ctrl); err != nil {
		return err
	}

	fmt.Fprintf(ctx.App.Writer, "%s (%d steps)\n", t.Name, t.Len())
	for i, def := range t.Steps() {
		fmt.Fprintf(ctx.App.Writer, "%3d. %s\n", i+1, def.Describe(ctrl))
	}
	return nil
}
