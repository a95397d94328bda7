package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-gamma/gamma/spectrum"
)

func infoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <spectrum.csv>...",
		Short: "Print spectrum statistics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "File\tBins\tRange\tTotal Counts\tMax Counts\tMax At\tCentroid\n")
			fmt.Fprintf(tw, "----\t----\t-----\t------------\t----------\t------\t--------\n")
			for _, path := range args {
				s, err := readSpectrum(path)
				if err != nil {
					return err
				}
				sum := spectrum.Summarize(s)
				fmt.Fprintf(tw, "%s\t%d\t%g..%g\t%g\t%g\t%g\t%.3f\n",
					path, sum.Bins, sum.AxisMin, sum.AxisMax,
					sum.TotalCounts, sum.MaxCounts, sum.PeakPosition, sum.Centroid)
			}
			return tw.Flush()
		},
	}
}
