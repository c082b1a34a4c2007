// Package config handles the workspace configuration (config.yaml).
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the workspace configuration.
type Config struct {
	// Test selection
	Tests []string `yaml:"tests"` // Glob patterns for test documents

	// Variables seed the global scope before any run.
	Variables map[string]string `yaml:"variables"`

	// Execution settings
	StopOnFailure    bool `yaml:"stopOnFailure"`
	StrictVariables  bool `yaml:"strictVariables"`
	CaptureOnFailure bool `yaml:"captureOnFailure"`
	DefaultTimeout   int  `yaml:"defaultTimeout"` // Seconds

	// Output
	LogFile   string `yaml:"logFile"`
	ReportDir string `yaml:"reportDir"`
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided config file
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromDir looks for config.yaml or config.yml in the directory. A
// missing file yields an empty config, not an error.
func LoadFromDir(dir string) (*Config, error) {
	for _, name := range []string{"config.yaml", "config.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return &Config{}, nil
}
