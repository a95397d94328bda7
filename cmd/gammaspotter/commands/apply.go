package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-gamma/gamma/calib"
	"github.com/cwbudde/algo-gamma/gamma/spectrum"
)

func applyCmd(a *app) *cobra.Command {
	var (
		outDir string
		scale  float64
		offset float64
	)
	cmd := &cobra.Command{
		Use:   "apply <spectrum.csv>...",
		Short: "Write calibrated copies of spectrum files",
		Long: "Maps every position through the stored calibration (or --scale/--offset)\n" +
			"and writes <name>_calibrated<ext> next to each input or into --out-dir.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := calib.Transform{Scale: scale, Offset: offset}
			if cmd.Flags().Changed("offset") && !cmd.Flags().Changed("scale") {
				return errors.New("--offset requires --scale")
			}
			if !cmd.Flags().Changed("scale") {
				var err error
				if t, err = a.loadTransform(cmd); err != nil {
					return err
				}
			} else if !(scale > 0) {
				return fmt.Errorf("%w: %g", calib.ErrNonMonotonic, scale)
			}

			for _, path := range args {
				s, err := readSpectrum(path)
				if err != nil {
					return err
				}
				dst := calibratedPath(path, outDir)
				if err := writeSpectrum(dst, calib.Apply(s, t)); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), dst)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory for calibrated files (default: next to input)")
	cmd.Flags().Float64Var(&scale, "scale", 0, "calibration scale (skips the stored record)")
	cmd.Flags().Float64Var(&offset, "offset", 0, "calibration offset, used with --scale")
	return cmd
}

// calibratedPath returns <dir>/<stem>_calibrated<ext>, keeping the input's
// extension.
func calibratedPath(path, outDir string) string {
	dir := filepath.Dir(path)
	if outDir != "" {
		dir = outDir
	}
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return filepath.Join(dir, strings.TrimSuffix(base, ext)+"_calibrated"+ext)
}

func writeSpectrum(path string, s spectrum.Spectrum) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := spectrum.WriteCSV(f, s, "energy", "counts"); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// loadTransform reads the latest stored calibration.
func (a *app) loadTransform(cmd *cobra.Command) (calib.Transform, error) {
	store, closeStore, err := a.openStore()
	if err != nil {
		return calib.Transform{}, err
	}
	defer func() { _ = closeStore() }()

	rec, err := store.Latest(cmd.Context())
	if err != nil {
		return calib.Transform{}, fmt.Errorf("load calibration: %w (run calibrate first)", err)
	}
	return rec.Transform(), nil
}
