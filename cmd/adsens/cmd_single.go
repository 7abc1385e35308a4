package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neurodyn/adsens/internal/model"
)

func newSingleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "single",
		Short: "Perturb one parameter and plot one biomarker",
		Long: `Sweep a single parameter and chart a single biomarker per case: the
focused view the source study used for d_Fi against the neuron count.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSetup(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			param, _ := cmd.Flags().GetString("param")
			if _, err := model.NewParams(model.Case{}).Get(param); err != nil {
				return err
			}

			bioName, _ := cmd.Flags().GetString("biomarker")
			bio, ok := model.BiomarkerByName(bioName)
			if !ok {
				return fmt.Errorf("unknown biomarker %q (valid: AB, tau, N)", bioName)
			}

			for _, c := range s.cases {
				fmt.Fprintf(cmd.OutOrStdout(), "Processing case: %s\n", c.Label())
				if err := sweepCharts(cmd, s, c, param, "single", []model.Biomarker{bio}); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().String("param", "d_Fi", "Parameter to perturb")
	cmd.Flags().String("biomarker", "N", "Biomarker to chart: AB, tau, or N")
	return cmd
}
