package calib

import (
	"fmt"
	"slices"
	"strings"
)

// PresetNa22 holds the Na-22 annihilation and 1274.5 keV lines.
var PresetNa22 = []float64{511.0034, 1274.5}

// PresetCo60 holds the two Co-60 lines.
var PresetCo60 = []float64{1173.228, 1332.492}

var presets = map[string][]float64{
	"na-22": PresetNa22,
	"co-60": PresetCo60,
}

// Preset returns the reference energies of a named calibration source.
// Names are case-insensitive ("Na-22", "na22").
func Preset(name string) ([]float64, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if !strings.Contains(key, "-") && len(key) > 2 {
		key = key[:2] + "-" + key[2:]
	}
	e, ok := presets[key]
	if !ok {
		return nil, fmt.Errorf("calib: unknown preset %q", name)
	}
	return slices.Clone(e), nil
}

// PresetNames lists the available presets.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
