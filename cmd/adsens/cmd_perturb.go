package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neurodyn/adsens/internal/model"
)

func newPerturbCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "perturb",
		Short: "Trajectory sweep for a selected list of parameters",
		Long: `Like oat, but restricted to a hand-picked parameter list. The default
parameters are the intracellular NFT degradation rate (d_Fi) and the
GSK-3-driven tau phosphorylation rate (lambda_Gtau), the two drivers the
source study singled out.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSetup(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			names, _ := cmd.Flags().GetStringSlice("params")
			params, err := resolveParams(names)
			if err != nil {
				return err
			}

			for _, c := range s.cases {
				fmt.Fprintf(cmd.OutOrStdout(), "Processing case: %s\n", c.Label())
				for _, param := range params {
					if err := sweepCharts(cmd, s, c, param, "perturbations", model.Biomarkers); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSlice("params", []string{"d_Fi", "lambda_Gtau"}, "Parameters to sweep")
	return cmd
}
