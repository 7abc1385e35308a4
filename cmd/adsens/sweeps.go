package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neurodyn/adsens/internal/model"
	"github.com/neurodyn/adsens/internal/report"
)

// sweepCharts integrates one parameter at every sweep factor for one case
// and writes a trajectory chart per requested biomarker, overlaying the
// baseline and perturbed runs.
func sweepCharts(cmd *cobra.Command, s *setup, c model.Case, param, prefix string, biomarkers []model.Biomarker) error {
	a := s.analyzer(c)
	runs, err := a.Sweep(param, s.cfg.Perturbation.Sweep)
	if err != nil {
		return fmt.Errorf("case %s, parameter %s: %w", c.Label(), param, err)
	}

	for _, b := range biomarkers {
		lines := make([]report.Line, 0, len(runs))
		for _, run := range runs {
			years := make([]float64, run.Trajectory.Len())
			for i, t := range run.Trajectory.Times {
				years[i] = t / 365.25
			}
			lines = append(lines, report.Line{
				Label: factorLabel(run.Factor),
				X:     years,
				Y:     run.Trajectory.Component(b.Index),
			})
		}

		path := report.Filename(s.cfg.Output.Dir, "png", prefix, param, c.Label(), b.Name)
		title := fmt.Sprintf("%s perturbations for %s - %s", param, c.Label(), b.Name)
		ylabel := fmt.Sprintf("%s [%s]", b.Name, b.Unit)
		if err := report.TrajectoryChart(path, title, "Age (years)", ylabel, lines); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}

// resolveParams validates a parameter list against the model, returning the
// full perturbable set when the list is empty.
func resolveParams(names []string) ([]string, error) {
	p := model.NewParams(model.Case{})
	if len(names) == 0 {
		return p.Names(), nil
	}
	for _, name := range names {
		if _, err := p.Get(name); err != nil {
			return nil, err
		}
	}
	return names, nil
}
