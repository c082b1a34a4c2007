package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/uipilot-dev/uipilot/pkg/step"
	"github.com/uipilot-dev/uipilot/pkg/testdef"
)

var validateCommand = &cli.Command{
	Name:      "validate",
	Usage:     "Parse test documents without executing them",
	ArgsUsage: "<test files...>",
	Action:    validateAction,
}

func validateAction(ctx *cli.Context) error {
	paths := ctx.Args().Slice()
	if len(paths) == 0 {
		return fmt.Errorf("no test documents given")
	}

	registry := step.DefaultRegistry()
	bad := 0
	for _, path := range paths {
		t, err := testdef.LoadFile(path, registry)
		if err != nil {
			fmt.Fprintf(ctx.App.Writer, "FAIL %s: %v\n", path, err)
			bad++
			continue
		}
		fmt.Fprintf(ctx.App.Writer, "OK   %s: %q (%d steps)\n", path, t.Name, t.Len())
	}
	if bad > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d documents invalid", bad, len(paths)), 1)
	}
	return nil
}
