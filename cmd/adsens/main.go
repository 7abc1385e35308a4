// Command adsens performs local sensitivity analysis on an ODE model of
// Alzheimer's disease progression. Each subcommand is one analysis type:
// baseline integration, mean-relative-change ranking, OAT trajectory sweeps,
// specific-parameter perturbation, and groupwise synergy.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neurodyn/adsens/internal/config"
	"github.com/neurodyn/adsens/internal/logging"
	"github.com/neurodyn/adsens/internal/model"
	"github.com/neurodyn/adsens/internal/sensitivity"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "adsens",
		Short: "Sensitivity analysis for an Alzheimer's disease progression model",
		Long: `adsens integrates a 19-equation ODE model of Alzheimer's disease
progression (amyloid-beta, tau, neurons, neuroinflammation) and measures how
sensitive the amyloid, tau and neuron-count trajectories are to each model
parameter, using one-at-a-time and groupwise perturbations.

Charts and CSV summaries are written to the output directory.`,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (default: ./adsens.yaml if present)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output directory for charts and CSV files")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: info, debug, or trace")
	rootCmd.PersistentFlags().StringSlice("cases", nil,
		"Demographic cases to analyze: women-, women+, men-, men+ (default all four)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newBaselineCmd(),
		newRankCmd(),
		newOATCmd(),
		newPerturbCmd(),
		newSingleCmd(),
		newGroupCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "adsens version %s\n", version)
		},
	}
}

// setup resolves configuration and loggers shared by every analysis command.
type setup struct {
	cfg   *config.Config
	cases []model.Case
	log   *logging.RunLogger // run trace; nil unless debug
}

// loadSetup reads the config (file, environment, then flags), validates it,
// and resolves the requested demographic cases.
func loadSetup(cmd *cobra.Command) (*setup, error) {
	path, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.Output.Dir = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Logging.Level = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	names, _ := cmd.Flags().GetStringSlice("cases")
	cases, err := parseCases(names)
	if err != nil {
		return nil, err
	}

	return &setup{
		cfg:   cfg,
		cases: cases,
		log:   logging.NewRunLogger(cfg.Output.Dir, cfg.Logging.Level),
	}, nil
}

// analyzer builds a sensitivity.Analyzer for one case from the resolved
// configuration.
func (s *setup) analyzer(c model.Case) *sensitivity.Analyzer {
	a := sensitivity.NewAnalyzer(c)
	a.StartAge = s.cfg.Ages.Start
	a.EndAge = s.cfg.Ages.End
	a.Samples = s.cfg.Ages.Samples
	a.Solver = s.cfg.Solver
	a.Log = logging.NewLogger(s.cfg.Logging.Level, os.Stderr)
	a.Runs = s.log
	return a
}

// oatConfig translates the perturbation settings into a driver config.
func (s *setup) oatConfig() sensitivity.OATConfig {
	return sensitivity.OATConfig{
		Factor:       s.cfg.Perturbation.Factor,
		Epsilon:      s.cfg.Perturbation.Epsilon,
		SkipFailures: s.cfg.Perturbation.SkipFailures,
		Workers:      s.cfg.Perturbation.Workers,
	}
}

func (s *setup) close() {
	s.log.Close()
}

// parseCases maps case tokens to model cases. An empty list selects all four.
func parseCases(names []string) ([]model.Case, error) {
	if len(names) == 0 {
		return model.Cases, nil
	}

	cases := make([]model.Case, 0, len(names))
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "women-":
			cases = append(cases, model.Case{Sex: model.Woman, APOE4: false})
		case "women+":
			cases = append(cases, model.Case{Sex: model.Woman, APOE4: true})
		case "men-":
			cases = append(cases, model.Case{Sex: model.Man, APOE4: false})
		case "men+":
			cases = append(cases, model.Case{Sex: model.Man, APOE4: true})
		case "all":
			return model.Cases, nil
		default:
			return nil, fmt.Errorf("unknown case %q (valid: women-, women+, men-, men+, all)", name)
		}
	}
	return cases, nil
}

// factorLabel formats a perturbation factor as the percent change shown in
// chart legends, e.g. 1.05 -> "+5%", 1 -> "+0%".
func factorLabel(f float64) string {
	return fmt.Sprintf("%+.0f%%", f*100-100)
}
