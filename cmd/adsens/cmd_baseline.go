package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neurodyn/adsens/internal/model"
	"github.com/neurodyn/adsens/internal/report"
)

func newBaselineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "baseline",
		Short: "Integrate the unperturbed model and plot biomarker trajectories",
		Long: `Solve the model with baseline parameters for each demographic case and
write one chart per biomarker overlaying the cases.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSetup(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			lines := make(map[string][]report.Line, len(model.Biomarkers))
			for _, c := range s.cases {
				a := s.analyzer(c)
				tr, err := a.Baseline()
				if err != nil {
					return fmt.Errorf("case %s: %w", c.Label(), err)
				}

				years := make([]float64, tr.Len())
				for i, t := range tr.Times {
					years[i] = t / 365.25
				}
				for _, b := range model.Biomarkers {
					lines[b.Name] = append(lines[b.Name], report.Line{
						Label: c.Label(),
						X:     years,
						Y:     tr.Component(b.Index),
					})
				}
			}

			for _, b := range model.Biomarkers {
				path := report.Filename(s.cfg.Output.Dir, "png", "baseline", b.Name)
				title := fmt.Sprintf("Baseline %s trajectory", b.Name)
				if err := report.TrajectoryChart(path, title, "Age (years)",
					fmt.Sprintf("%s [%s]", b.Name, b.Unit), lines[b.Name]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}
}
