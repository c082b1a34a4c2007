package cli

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/uipilot-dev/uipilot/pkg/core"
	"github.com/uipilot-dev/uipilot/pkg/driver/mock"
)

// screenDoc scripts the simulated screen the mock driver serves. It lets
// test documents run end to end without a live host application.
type screenDoc struct {
	Elements []struct {
		ID            string  `yaml:"id"`
		Value         string  `yaml:"value"`
		Error         string  `yaml:"error"`
		NoValue       bool    `yaml:"noValue"`
		NoError       bool    `yaml:"noError"`
		AppearAfterMS int     `yaml:"appearAfterMs"`
		ScrollOffset  float64 `yaml:"scrollOffset"`
	} `yaml:"elements"`
	Root *struct {
		ID       string  `yaml:"id"`
		Axis     string  `yaml:"axis"`
		Viewport float64 `yaml:"viewport"`
	} `yaml:"root"`
}

// loadScreen builds a mock driver from a screen file. An empty path
// yields a driver with no elements.
func loadScreen(path string) (*mock.Driver, error) {
	if path == "" {
		return mock.New(mock.Config{}), nil
	}

	data, err := os.ReadFile(path) //#nosec G304 -- user-provided screen file
	if err != nil {
		return nil, fmt.Errorf("reading screen file: %w", err)
	}
	var doc screenDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing screen file: %w", err)
	}

	cfg := mock.Config{}
	for _, el := range doc.Elements {
		cfg.Elements = append(cfg.Elements, mock.ElementSpec{
			ID:           el.ID,
			Value:        el.Value,
			Error:        el.Error,
			NoValue:      el.NoValue,
			NoError:      el.NoError,
			AppearAfter:  time.Duration(el.AppearAfterMS) * time.Millisecond,
			ScrollOffset: el.ScrollOffset,
		})
	}
	if doc.Root != nil {
		axis, err := parseAxis(doc.Root.Axis)
		if err != nil {
			return nil, err
		}
		cfg.Root = &mock.ContainerSpec{
			ID:       doc.Root.ID,
			Axis:     axis,
			Viewport: doc.Root.Viewport,
		}
	}
	return mock.New(cfg), nil
}

func parseAxis(s string) (core.ScrollAxis, error) {
	switch s {
	case "", "down":
		return core.AxisDown, nil
	case "up":
		return core.AxisUp, nil
	case "left":
		return core.AxisLeft, nil
	case "right":
		return core.AxisRight, nil
	default:
		return 0, fmt.Errorf("unknown scroll axis %q", s)
	}
}
