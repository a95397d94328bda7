package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-gamma/gamma/calib"
	"github.com/cwbudde/algo-gamma/gamma/pipeline"
)

func calibrateCmd(a *app) *cobra.Command {
	var (
		df     detectFlags
		preset string
		known  []float64
		save   bool
	)
	cmd := &cobra.Command{
		Use:   "calibrate <spectrum.csv>",
		Short: "Derive and store an energy calibration from known lines",
		Long: "Detects and fits the peaks of a calibration source spectrum and maps their\n" +
			"centers onto the known line energies. The number of fitted peaks must match\n" +
			"the number of energies; tune --prominence and --width until it does.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			energies, source := known, "custom"
			if len(energies) == 0 {
				e, err := calib.Preset(preset)
				if err != nil {
					return fmt.Errorf("%w (available: %v)", err, calib.PresetNames())
				}
				energies, source = e, preset
			}

			s, err := readSpectrum(args[0])
			if err != nil {
				return err
			}
			opts, err := df.pipelineOptions(a)
			if err != nil {
				return err
			}
			t, rep, err := pipeline.Calibrate(ctx, s, energies, opts...)
			if err != nil {
				if len(rep.Peaks) > 0 {
					_ = printFits(cmd.ErrOrStderr(), rep)
				}
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "scale:  %.8g\n", t.Scale)
			fmt.Fprintf(out, "offset: %.8g\n", t.Offset)

			if !save {
				return nil
			}
			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			if err := store.Save(ctx, calib.NewRecord(t, source)); err != nil {
				return err
			}
			a.logger.InfoContext(ctx, "calibration saved",
				slog.String("source", source),
				slog.String("file", a.cfg.CalibrationFile),
				slog.String("db", a.cfg.CalibrationDB),
			)
			return nil
		},
	}
	df.bind(cmd, a, a.cfg.CalibrateWidth)
	cmd.Flags().StringVar(&preset, "preset", "na-22", "calibration source preset")
	cmd.Flags().Float64SliceVar(&known, "known", nil, "known line energies in keV (overrides --preset)")
	cmd.Flags().BoolVar(&save, "save", true, "store the calibration record")
	return cmd
}
