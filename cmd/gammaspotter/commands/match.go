package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-gamma/gamma/fit"
	"github.com/cwbudde/algo-gamma/gamma/isotope"
)

func matchCmd(a *app) *cobra.Command {
	var (
		catalog string
		limit   int
	)
	cmd := &cobra.Command{
		Use:   "match <energy:stderr>...",
		Short: "Rank catalog isotopes against given peak energies",
		Example: "  gammaspotter match 661.2:0.8 1460.5:1.5\n" +
			"  gammaspotter match --limit 3 --catalog my-lines.csv 511:0.3",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := isotope.LoadCatalog(catalog)
			if err != nil {
				return err
			}
			peaks := make([]fit.Result, len(args))
			for i, arg := range args {
				if peaks[i], err = parsePeak(arg); err != nil {
					return err
				}
			}
			return printMatches(cmd.OutOrStdout(), isotope.Match(peaks, entries, isotope.WithLimit(limit)))
		},
	}
	cmd.Flags().StringVar(&catalog, "catalog", a.cfg.Catalog, "isotope catalog CSV (energy, isotope)")
	cmd.Flags().IntVar(&limit, "limit", a.cfg.MaxMatches, "maximum results per peak (0 = unlimited)")
	return cmd
}

func parsePeak(arg string) (fit.Result, error) {
	e, se, ok := strings.Cut(arg, ":")
	if !ok {
		return fit.Result{}, fmt.Errorf("peak %q: want energy:stderr", arg)
	}
	energy, err := strconv.ParseFloat(e, 64)
	if err != nil {
		return fit.Result{}, fmt.Errorf("peak %q: %w", arg, err)
	}
	stdErr, err := strconv.ParseFloat(se, 64)
	if err != nil {
		return fit.Result{}, fmt.Errorf("peak %q: %w", arg, err)
	}
	return fit.Result{Center: energy, CenterStdErr: stdErr}, nil
}

func printMatches(w io.Writer, matches []isotope.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Peak\tIsotope\tEnergy [keV]\tConfidence [%%]\n")
	fmt.Fprintf(tw, "----\t-------\t------------\t--------------\n")
	for _, group := range isotope.Group(matches) {
		for _, m := range group {
			fmt.Fprintf(tw, "%d\t%s\t%g\t%.2f\n", m.Peak, m.Isotope, m.Energy, m.Confidence)
		}
	}
	return tw.Flush()
}
