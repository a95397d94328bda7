package isotope

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// DefaultCatalogPath is the catalog shipped with the repository.
const DefaultCatalogPath = "catalogs/gamma-energies-common.csv"

// ErrEmptyCatalog is returned when a catalog holds no entries.
var ErrEmptyCatalog = errors.New("isotope: empty catalog")

// Entry is one known emission line.
type Entry struct {
	Isotope string
	Energy  float64 // keV
}

// CatalogError reports a malformed catalog row.
type CatalogError struct {
	Line int
	Err  error
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("isotope: catalog line %d: %v", e.Line, e.Err)
}

func (e *CatalogError) Unwrap() error { return e.Err }

// ReadCatalog parses a two column CSV of energy (keV) and isotope name. A
// first row whose energy column is not numeric is treated as a header.
// Additional columns are ignored.
func ReadCatalog(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out []Entry
	for first := true; ; first = false {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &CatalogError{Line: pe.Line, Err: pe.Err}
			}
			return nil, &CatalogError{Err: err}
		}
		line, _ := cr.FieldPos(0)
		if len(rec) < 2 {
			return nil, &CatalogError{Line: line, Err: fmt.Errorf("want 2 columns, got %d", len(rec))}
		}
		energy, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		if err != nil {
			if first {
				continue
			}
			return nil, &CatalogError{Line: line, Err: err}
		}
		if math.IsNaN(energy) || math.IsInf(energy, 0) || energy < 0 {
			return nil, &CatalogError{Line: line, Err: fmt.Errorf("invalid energy %g", energy)}
		}
		name := strings.TrimSpace(rec[1])
		if name == "" {
			return nil, &CatalogError{Line: line, Err: errors.New("missing isotope name")}
		}
		out = append(out, Entry{Isotope: name, Energy: energy})
	}
	if len(out) == 0 {
		return nil, ErrEmptyCatalog
	}
	return out, nil
}

// LoadCatalog reads the catalog file at path.
func LoadCatalog(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("isotope: open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	entries, err := ReadCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}
