package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-gamma/gamma/isotope"
	"github.com/cwbudde/algo-gamma/gamma/pipeline"
)

func analyzeCmd(a *app) *cobra.Command {
	var (
		df         detectFlags
		catalog    string
		limit      int
		calibrated bool
	)
	cmd := &cobra.Command{
		Use:   "analyze <spectrum.csv>",
		Short: "Detect, fit and identify the peaks of a spectrum",
		Long: "Runs the full chain on one spectrum. With --calibrated the fitted centers\n" +
			"are mapped through the stored calibration before matching; otherwise the\n" +
			"spectrum positions are taken to be energies already.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := isotope.LoadCatalog(catalog)
			if err != nil {
				return err
			}
			s, err := readSpectrum(args[0])
			if err != nil {
				return err
			}
			opts, err := df.pipelineOptions(a)
			if err != nil {
				return err
			}
			opts = append(opts, pipeline.WithMatchOptions(isotope.WithLimit(limit), isotope.WithWorkers(df.workers)))
			if calibrated {
				t, err := a.loadTransform(cmd)
				if err != nil {
					return err
				}
				opts = append(opts, pipeline.WithTransform(t))
			}

			rep, err := pipeline.Analyze(cmd.Context(), s, entries, opts...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := printFits(out, rep); err != nil {
				return err
			}
			fmt.Fprintln(out)
			fitted := rep.Fitted()
			if len(fitted) == 0 {
				fmt.Fprintln(out, "no fitted peaks to match")
				return nil
			}
			if len(rep.Matches) > 0 {
				if err := printMatches(out, rep.Matches); err != nil {
					return err
				}
			}
			matched := make(map[int]bool, len(rep.Matches))
			for _, m := range rep.Matches {
				matched[m.Peak] = true
			}
			for _, p := range fitted {
				if !matched[p.Number] {
					fmt.Fprintf(out, "Peak %d has no matches\n", p.Number)
				}
			}
			return nil
		},
	}
	df.bind(cmd, a, a.cfg.DomainWidth)
	cmd.Flags().StringVar(&catalog, "catalog", a.cfg.Catalog, "isotope catalog CSV (energy, isotope)")
	cmd.Flags().IntVar(&limit, "limit", a.cfg.MaxMatches, "maximum results per peak (0 = unlimited)")
	cmd.Flags().BoolVar(&calibrated, "calibrated", false, "apply the stored calibration to fitted centers")
	return cmd
}
