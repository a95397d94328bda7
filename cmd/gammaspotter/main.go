// Command gammaspotter detects, fits, calibrates and identifies peaks in
// gamma-ray spectra.
//
// Usage:
//
//	gammaspotter <command> [flags] <spectrum.csv>
//
// Examples:
//
//	gammaspotter peaks --prominence 300 --width 3,7 na22.csv
//	gammaspotter calibrate --preset na-22 na22.csv
//	gammaspotter apply unknown.csv
//	gammaspotter analyze --calibrated --limit 5 unknown.csv
package main

import (
	"os"

	"github.com/cwbudde/algo-gamma/cmd/gammaspotter/commands"
	"github.com/cwbudde/algo-gamma/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("gammaspotter: %v", err)
	}
	if err := commands.Execute(cfg); err != nil {
		os.Exit(1)
	}
}
