package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neurodyn/adsens/internal/model"
	"github.com/neurodyn/adsens/internal/report"
	"github.com/neurodyn/adsens/internal/sensitivity"
)

func newRankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank all parameters by mean relative change of each biomarker",
		Long: `Perturb every parameter one at a time (up by the factor, down by its
inverse) for each demographic case, measure the mean relative change of the
amyloid, tau and neuron-count trajectories, and write one grouped bar chart
and CSV table per biomarker.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSetup(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			if v, _ := cmd.Flags().GetFloat64("factor"); cmd.Flags().Changed("factor") {
				s.cfg.Perturbation.Factor = v
			}
			if v, _ := cmd.Flags().GetInt("workers"); cmd.Flags().Changed("workers") {
				s.cfg.Perturbation.Workers = v
			}
			if ff, _ := cmd.Flags().GetBool("fail-fast"); ff {
				s.cfg.Perturbation.SkipFailures = false
			}
			threshold, _ := cmd.Flags().GetFloat64("threshold")

			// One full OAT sweep per case; each sweep covers all biomarkers.
			byCase := make(map[string][]sensitivity.Sensitivity, len(s.cases))
			for _, c := range s.cases {
				a := s.analyzer(c)
				res, err := a.OAT(s.oatConfig())
				if err != nil {
					return fmt.Errorf("case %s: %w", c.Label(), err)
				}
				byCase[c.Label()] = res
			}

			for _, b := range model.Biomarkers {
				params, series := rankingTable(s.cases, byCase, b.Name, threshold)
				if len(params) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "no parameters above threshold for %s\n", b.Name)
					continue
				}

				path := report.Filename(s.cfg.Output.Dir, "png", "mean_relative_sensitivity", b.Name)
				title := fmt.Sprintf("Relative change of %s in response to a %s change in parameter",
					b.Name, factorLabel(s.cfg.Perturbation.Factor))
				ylabel := fmt.Sprintf("Relative change of %s (%%)", b.Name)
				if err := report.RankingChart(path, title, ylabel, params, series); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)

				if s.cfg.Output.CSV {
					csvPath := report.Filename(s.cfg.Output.Dir, "csv", "mean_relative_sensitivity", b.Name)
					if err := report.WriteTableCSV(csvPath, params, series); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().Float64("factor", 1.1, "Perturbation factor (1.1 = ±10%)")
	cmd.Flags().Float64("threshold", 0.2, "Keep parameters above this fraction of the top sensitivity")
	cmd.Flags().Int("workers", 1, "Concurrent perturbation runs")
	cmd.Flags().Bool("fail-fast", false, "Abort on the first failed integration instead of skipping the parameter")
	return cmd
}

// rankingTable assembles the per-case sensitivity values for one biomarker
// into a chart-ready table: parameters ranked by their mean change across
// cases, filtered to those within the threshold fraction of the top mean.
func rankingTable(cases []model.Case, byCase map[string][]sensitivity.Sensitivity, biomarker string, threshold float64) ([]string, []report.Series) {
	// Union of parameters over all cases; a parameter missing from a case
	// (skipped after a failed integration) contributes zero there.
	values := make(map[string]map[string]float64) // parameter -> case label -> change
	for label, results := range byCase {
		for _, r := range results {
			if values[r.Parameter] == nil {
				values[r.Parameter] = make(map[string]float64, len(cases))
			}
			values[r.Parameter][label] = r.Change[biomarker]
		}
	}

	means := make([]sensitivity.Sensitivity, 0, len(values))
	for name, perCase := range values {
		var sum float64
		for _, c := range cases {
			sum += perCase[c.Label()]
		}
		means = append(means, sensitivity.Sensitivity{
			Parameter: name,
			Change:    map[string]float64{biomarker: sum / float64(len(cases))},
		})
	}

	ranked := sensitivity.Rank(means, biomarker)
	if biomarker == "N" {
		// Perturbing the reference neuron density rescales the neuron output
		// directly rather than through the dynamics; the source study drops
		// it from the neuron ranking. Excluded before the threshold so it
		// cannot set the cut.
		ranked = sensitivity.Exclude(ranked, "N_0")
	}
	ranked = sensitivity.Threshold(ranked, threshold)

	params := make([]string, 0, len(ranked))
	for _, r := range ranked {
		params = append(params, r.Parameter)
	}

	series := make([]report.Series, 0, len(cases))
	for _, c := range cases {
		vals := make([]float64, len(params))
		for i, name := range params {
			vals[i] = values[name][c.Label()]
		}
		series = append(series, report.Series{Label: c.Label(), Values: vals})
	}
	return params, series
}
