package spectrum

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadCSV reads a two-column delimited spectrum: column 0 is the position,
// column 1 the counts. Extra columns are ignored. A first row whose first two
// fields are not numeric is treated as a header and skipped.
func ReadCSV(r io.Reader) (Spectrum, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var positions, counts []float64
	for first := true; ; first = false {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("spectrum: read csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if len(rec) < 2 {
			return nil, fmt.Errorf("spectrum: line %d: expected 2 columns, got %d", line, len(rec))
		}
		x, errX := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if errX != nil || errY != nil {
			if first {
				continue
			}
			return nil, fmt.Errorf("spectrum: line %d: non-numeric value %q,%q", line, rec[0], rec[1])
		}
		positions = append(positions, x)
		counts = append(counts, y)
	}
	return New(positions, counts)
}

// WriteCSV writes s as two columns. A non-empty header is written as the first
// row; it must have exactly two names.
func WriteCSV(w io.Writer, s Spectrum, header ...string) error {
	cw := csv.NewWriter(w)
	if len(header) > 0 {
		if len(header) != 2 {
			return fmt.Errorf("spectrum: header must have 2 columns, got %d", len(header))
		}
		if err := cw.Write(header); err != nil {
			return fmt.Errorf("spectrum: write header: %w", err)
		}
	}
	row := make([]string, 2)
	for _, b := range s {
		row[0] = strconv.FormatFloat(b.Position, 'g', -1, 64)
		row[1] = strconv.FormatFloat(b.Counts, 'g', -1, 64)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("spectrum: write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
