package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/edi-tools/dtrex/pkg/dtrex"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// RunConfig holds the batch-run settings. Empty Input/Output mean stdin and
// stdout respectively.
type RunConfig struct {
	Input   string `yaml:"input,omitempty"`
	Output  string `yaml:"output,omitempty"`
	Workers int    `yaml:"workers,omitempty"`
	Verbose bool   `yaml:"verbose,omitempty"`
}

const ConfigFileName = "dtrex.yaml"

// Default returns a RunConfig with the built-in defaults applied.
func Default() *RunConfig {
	return &RunConfig{Workers: dtrex.DefaultWorkers}
}

// Load reads dtrex.yaml from the given directory. Settings not present in
// the file keep their defaults.
func Load(dir string) (*RunConfig, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", dtrex.ErrInvalidConfig, configPath, err)
	}
	return cfg, nil
}

// ApplyEnvironment overlays DTREX_* environment variables onto the config.
// Precedence is flag > environment > config file > default; flags are applied
// by the CLI after this call.
//
// Recognized variables: DTREX_INPUT, DTREX_OUTPUT, DTREX_WORKERS,
// DTREX_VERBOSE (1/true enables).
func (c *RunConfig) ApplyEnvironment() error {
	if v, ok := os.LookupEnv("DTREX_INPUT"); ok {
		c.Input = v
	}
	if v, ok := os.LookupEnv("DTREX_OUTPUT"); ok {
		c.Output = v
	}
	if v, ok := os.LookupEnv("DTREX_WORKERS"); ok {
		workers, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: DTREX_WORKERS=%q is not an integer", dtrex.ErrInvalidConfig, v)
		}
		c.Workers = workers
	}
	if v, ok := os.LookupEnv("DTREX_VERBOSE"); ok {
		verbose, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: DTREX_VERBOSE=%q is not a boolean", dtrex.ErrInvalidConfig, v)
		}
		c.Verbose = verbose
	}
	return nil
}

// Validate checks the config for values no run could honor.
func (c *RunConfig) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", dtrex.ErrInvalidConfig, c.Workers)
	}
	return nil
}
