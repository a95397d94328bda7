package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/mdobak/go-xerrors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-gamma/gamma/calib"
	"github.com/cwbudde/algo-gamma/gamma/pipeline"
	"github.com/cwbudde/algo-gamma/internal/config"
	"github.com/cwbudde/algo-gamma/internal/logging"
)

// app is the state shared by all subcommands.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *pipeline.Metrics
}

// Execute runs the command line with flag defaults taken from cfg.
func Execute(cfg config.Config) error {
	ctx := context.Background()

	a := &app{cfg: cfg, logger: slog.New(slog.NewTextHandler(os.Stderr, nil))}
	root := newRootCmd(a, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		a.logger.ErrorContext(ctx, "command failed", slog.Any("error", xerrors.New(err)))
		return err
	}
	return nil
}

func newRootCmd(a *app, logOut io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "gammaspotter",
		Short:         "Gamma-ray spectrum peak analysis",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(logOut, a.cfg.LogLevel, a.cfg.LogFormat)
			if err != nil {
				return err
			}
			a.logger = logger

			a.registry = prometheus.NewRegistry()
			a.metrics, err = pipeline.NewMetrics(a.registry)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.MetricsFile == "" {
				return nil
			}
			return pipeline.WriteTextfile(a.cfg.MetricsFile, a.registry)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level (debug, info, warn, error)")
	pf.StringVar(&a.cfg.LogFormat, "log-format", a.cfg.LogFormat, "log format (text, json)")
	pf.StringVar(&a.cfg.MetricsFile, "metrics-file", a.cfg.MetricsFile, "write Prometheus metrics to this file after the run")
	pf.StringVar(&a.cfg.CalibrationFile, "calibration-file", a.cfg.CalibrationFile, "JSON calibration record")
	pf.StringVar(&a.cfg.CalibrationDB, "calibration-db", a.cfg.CalibrationDB, "SQLite calibration history (overrides --calibration-file)")

	root.AddCommand(
		infoCmd(a),
		peaksCmd(a),
		fitCmd(a),
		calibrateCmd(a),
		applyCmd(a),
		matchCmd(a),
		analyzeCmd(a),
	)
	return root
}

// openStore returns the configured calibration store and its closer.
func (a *app) openStore() (calib.RecordStore, func() error, error) {
	if a.cfg.CalibrationDB != "" {
		s, err := calib.OpenSQLiteStore(a.cfg.CalibrationDB)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}
	return calib.NewFileStore(a.cfg.CalibrationFile), func() error { return nil }, nil
}
