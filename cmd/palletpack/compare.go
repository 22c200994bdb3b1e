package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/palletpack/internal/engine"
	"github.com/piwi3910/palletpack/internal/model"
)

func newCompareCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run the greedy packer and the genetic search on the same shapes",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			settings, err := c.settings()
			if err != nil {
				return err
			}
			requests, err := c.shapes(out)
			if err != nil {
				return err
			}
			shapes := model.ExpandRequests(requests)
			results := engine.CompareStrategies(cmd.Context(), settings, shapes, c.logger)

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SCENARIO\tPALLETS\tPLACED\tUNPLACED\tWASTE")
			for _, r := range results {
				if r.Err != nil {
					fmt.Fprintf(tw, "%s\terror: %v\t\t\t\n", r.Scenario.Name, r.Err)
					continue
				}
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.1f%%\n",
					r.Scenario.Name, r.PalletsUsed, r.PlacedCount, r.UnplacedCount, r.WastePercent)
			}
			return tw.Flush()
		},
	}
	addShapeFlags(cmd.Flags())
	addSettingsFlags(cmd.Flags())
	return cmd
}
