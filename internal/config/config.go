// Package config loads gammaspotter settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the defaults for command line flags. Every field can be set
// through a GAMMASPOTTER_ environment variable or a .env file.
type Config struct {
	Prominence      float64 `env:"PROMINENCE" envDefault:"100"`
	MinWidth        float64 `env:"MIN_WIDTH" envDefault:"0"`
	MaxWidth        float64 `env:"MAX_WIDTH" envDefault:"0"`
	DomainWidth     float64 `env:"DOMAIN_WIDTH" envDefault:"60"`
	CalibrateWidth  float64 `env:"CALIBRATE_DOMAIN_WIDTH" envDefault:"5"`
	SmoothSigma     float64 `env:"SMOOTH_SIGMA" envDefault:"0"`
	Shape           string  `env:"SHAPE" envDefault:"gaussian"`
	Workers         int     `env:"WORKERS" envDefault:"0"`
	MaxMatches      int     `env:"MAX_MATCHES" envDefault:"5"`
	Catalog         string  `env:"CATALOG" envDefault:"catalogs/gamma-energies-common.csv"`
	CalibrationFile string  `env:"CALIBRATION_FILE" envDefault:"calibration.json"`
	CalibrationDB   string  `env:"CALIBRATION_DB"`
	LogLevel        string  `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string  `env:"LOG_FORMAT" envDefault:"text"`
	MetricsFile     string  `env:"METRICS_FILE"`
}

// Prefix is prepended to every variable name.
const Prefix = "GAMMASPOTTER_"

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: Prefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the optional dotenv files (".env" when none are given) and then
// the environment. Variables already set take precedence over the files.
func Load(dotenv ...string) (Config, error) {
	if len(dotenv) == 0 {
		dotenv = []string{".env"}
	}
	for _, name := range dotenv {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", name, err)
		}
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings no command can run with.
func (c Config) Validate() error {
	switch {
	case c.Prominence < 0:
		return fmt.Errorf("config: prominence must be >= 0, got %g", c.Prominence)
	case c.DomainWidth < 0 || c.CalibrateWidth < 0:
		return errors.New("config: domain widths must be >= 0")
	case c.SmoothSigma < 0:
		return fmt.Errorf("config: smoothing sigma must be >= 0, got %g", c.SmoothSigma)
	case c.Workers < 0 || c.MaxMatches < 0:
		return errors.New("config: workers and max matches must be >= 0")
	}
	return nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
