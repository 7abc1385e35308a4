package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neurodyn/adsens/internal/model"
)

func newOATCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "oat",
		Short: "One-at-a-time trajectory sweep over model parameters",
		Long: `For each parameter, overlay the baseline trajectory with the runs at the
configured sweep factors (+5%, +10%, -5% by default) and write one line chart
per parameter and biomarker. Without --params this sweeps every perturbable
parameter, which produces a large number of charts.`,
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
					if err := sweepCharts(cmd, s, c, param, "oat", model.Biomarkers); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSlice("params", nil, "Parameters to sweep (default: all)")
	return cmd
}
