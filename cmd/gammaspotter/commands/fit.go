package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-gamma/gamma/pipeline"
)

func fitCmd(a *app) *cobra.Command {
	var df detectFlags
	cmd := &cobra.Command{
		Use:   "fit <spectrum.csv>",
		Short: "Fit a peak shape to every detected peak",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readSpectrum(args[0])
			if err != nil {
				return err
			}
			opts, err := df.pipelineOptions(a)
			if err != nil {
				return err
			}
			rep, err := pipeline.Analyze(cmd.Context(), s, nil, opts...)
			if err != nil {
				return err
			}
			return printFits(cmd.OutOrStdout(), rep)
		},
	}
	df.bind(cmd, a, a.cfg.DomainWidth)
	return cmd
}

func printFits(w io.Writer, rep pipeline.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Peak\tCenter\tStdErr\tAmplitude\tWidth\tBaseline\tStatus\n")
	fmt.Fprintf(tw, "----\t------\t------\t---------\t-----\t--------\t------\n")
	for _, p := range rep.Peaks {
		if !p.OK() {
			fmt.Fprintf(tw, "%d\t%g\t-\t-\t-\t-\t%v\n", p.Number, p.Candidate.Position, p.Err)
			continue
		}
		r := p.Fit
		fmt.Fprintf(tw, "%d\t%.4f\t%.4f\t%.1f\t%.3f\t%.1f\tok\n",
			p.Number, p.Energy, p.EnergyStdErr, r.Amplitude, r.Width, r.Baseline)
	}
	return tw.Flush()
}
