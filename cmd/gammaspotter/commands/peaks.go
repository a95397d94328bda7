package commands

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-gamma/gamma/peak"
	"github.com/cwbudde/algo-gamma/gamma/spectrum"
)

func peaksCmd(a *app) *cobra.Command {
	var df detectFlags
	cmd := &cobra.Command{
		Use:   "peaks <spectrum.csv>",
		Short: "Detect peaks by prominence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readSpectrum(args[0])
			if err != nil {
				return err
			}
			opts, err := df.detectOptions()
			if err != nil {
				return err
			}
			cands, err := peak.Detect(spectrum.Clean(s), df.prominence, opts...)
			if err != nil {
				return err
			}
			a.logger.DebugContext(cmd.Context(), "peaks detected", slog.Int("count", len(cands)))

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Peak\tPosition\tCounts\tProminence\tWidth [bins]\n")
			fmt.Fprintf(tw, "----\t--------\t------\t----------\t------------\n")
			for i, c := range cands {
				fmt.Fprintf(tw, "%d\t%g\t%g\t%.1f\t%.2f\n", i+1, c.Position, c.Counts, c.Prominence, c.Width)
			}
			return tw.Flush()
		},
	}
	df.bind(cmd, a, a.cfg.DomainWidth)
	return cmd
}
