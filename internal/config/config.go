// Package config provides unified configuration loading for adsens.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/neurodyn/adsens/internal/sensitivity"
	"github.com/neurodyn/adsens/internal/solve"
)

// Config contains all adsens configuration settings.
type Config struct {
	// Ages is the integration window in subject years.
	Ages AgesConfig `yaml:"ages"`

	// Solver holds the integrator tolerances and limits.
	Solver solve.Config `yaml:"solver"`

	// Perturbation controls the sensitivity sweeps.
	Perturbation PerturbationConfig `yaml:"perturbation"`

	// Output controls where charts and CSV summaries are written.
	Output OutputConfig `yaml:"output"`

	// Logging controls log verbosity.
	Logging LoggingConfig `yaml:"logging"`

	// Groups are the parameter groups for the groupwise synergy analysis.
	Groups []sensitivity.Group `yaml:"groups"`
}

// AgesConfig is the integration window and sampling density.
type AgesConfig struct {
	Start   float64 `yaml:"start"`
	End     float64 `yaml:"end"`
	Samples int     `yaml:"samples"`
}

// PerturbationConfig configures the perturbation drivers.
type PerturbationConfig struct {
	// Factor is the OAT perturbation: up by Factor, down by 1/Factor.
	Factor float64 `yaml:"factor"`

	// Sweep are the factors overlaid in trajectory sweep charts; 1 is the
	// baseline run.
	Sweep []float64 `yaml:"sweep"`

	// Epsilon guards near-zero denominators in the relative-change metric;
	// zero selects the package default.
	Epsilon float64 `yaml:"epsilon"`

	// SkipFailures drops parameters whose perturbed integration fails
	// instead of aborting the analysis.
	SkipFailures bool `yaml:"skip_failures"`

	// Workers bounds the number of concurrent integration runs.
	Workers int `yaml:"workers"`
}

// OutputConfig configures result artifacts.
type OutputConfig struct {
	// Dir is the directory charts and CSV files are written to.
	Dir string `yaml:"dir"`

	// CSV additionally writes ranking tables as CSV next to the charts.
	CSV bool `yaml:"csv"`
}

// LoggingConfig configures adsens's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables the per-run JSONL trace in the output directory.
	Level string `yaml:"level"`
}

// Default returns a Config matching the source study: ages 30-80 with 1000
// samples, tolerances 1e-10, ±10% OAT perturbation, sweep overlays at +5%,
// +10% and -5%.
func Default() *Config {
	return &Config{
		Ages: AgesConfig{
			Start:   30,
			End:     80,
			Samples: 1000,
		},
		Solver: solve.DefaultConfig(),
		Perturbation: PerturbationConfig{
			Factor:       1.1,
			Sweep:        []float64{1, 1.05, 1.10, 0.95},
			SkipFailures: true,
			Workers:      1,
		},
		Output: OutputConfig{
			Dir: "results",
			CSV: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Groups: []sensitivity.Group{
			{Name: "amyloid production", Members: []string{"lambda_ABi", "lambda_ABmo", "lambda_AABmo"}},
			{Name: "tau pathology", Members: []string{"lambda_tau", "lambda_Gtau", "kappa_tauFi"}},
			{Name: "microglia activation", Members: []string{"kappa_FoM", "kappa_ABooM"}},
			{Name: "proinflammatory cytokines", Members: []string{"kappa_MproTa", "kappa_MhatproTa", "kappa_MproP", "kappa_MhatproP"}},
		},
	}
}

// Load loads configuration from the default location and environment
// variables. Order: defaults -> ./adsens.yaml (if present) -> environment.
func Load() (*Config, error) {
	config := Default()

	if _, err := os.Stat("adsens.yaml"); err == nil {
		fileConfig, loadErr := LoadFromFile("adsens.yaml")
		if loadErr != nil {
			return nil, fmt.Errorf("loading config file: %w", loadErr)
		}
		config = fileConfig
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file. Settings not
// present in the file keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(config)

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Ages.End <= c.Ages.Start {
		return fmt.Errorf("ages.end (%g) must be after ages.start (%g)", c.Ages.End, c.Ages.Start)
	}
	if c.Ages.Samples < 2 {
		return fmt.Errorf("ages.samples must be at least 2, got %d", c.Ages.Samples)
	}
	if c.Perturbation.Factor <= 0 {
		return fmt.Errorf("perturbation.factor must be positive, got %g", c.Perturbation.Factor)
	}
	if c.Perturbation.Epsilon < 0 {
		return fmt.Errorf("perturbation.epsilon must be non-negative, got %g", c.Perturbation.Epsilon)
	}
	if c.Solver.ATol <= 0 || c.Solver.RTol <= 0 {
		return fmt.Errorf("solver tolerances must be positive (atol=%g, rtol=%g)", c.Solver.ATol, c.Solver.RTol)
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir must not be empty")
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	seen := make(map[string]bool, len(c.Groups))
	for _, g := range c.Groups {
		if g.Name == "" {
			return fmt.Errorf("group with members %v has no name", g.Members)
		}
		if seen[g.Name] {
			return fmt.Errorf("duplicate group name %q", g.Name)
		}
		seen[g.Name] = true
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("ADSENS_OUTPUT_DIR"); v != "" {
		config.Output.Dir = v
	}

	if v := os.Getenv("ADSENS_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}

	if v := os.Getenv("ADSENS_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Perturbation.Workers = n
		}
	}

	if v := os.Getenv("ADSENS_FACTOR"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Perturbation.Factor = f
		}
	}
}
