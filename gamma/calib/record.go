package calib

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// ErrNoRecord is returned by a store that holds no calibration yet.
var ErrNoRecord = errors.New("calib: no calibration record")

// Record is a persisted calibration.
type Record struct {
	Timestamp time.Time `json:"timestamp"`
	Catalog   string    `json:"catalog"`
	Scale     float64   `json:"scale"`
	Offset    float64   `json:"offset"`
}

// NewRecord stamps t with the current UTC time.
func NewRecord(t Transform, catalog string) Record {
	return Record{
		Timestamp: time.Now().UTC(),
		Catalog:   catalog,
		Scale:     t.Scale,
		Offset:    t.Offset,
	}
}

// Transform returns the stored transform.
func (r Record) Transform() Transform {
	return Transform{Scale: r.Scale, Offset: r.Offset}
}

// RecordStore persists calibration records.
type RecordStore interface {
	Save(ctx context.Context, r Record) error
	Latest(ctx context.Context) (Record, error)
}

// WriteRecord encodes r as indented JSON.
func WriteRecord(w io.Writer, r Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("calib: encode record: %w", err)
	}
	return nil
}

// ReadRecord decodes a JSON record.
func ReadRecord(r io.Reader) (Record, error) {
	var rec Record
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return Record{}, fmt.Errorf("calib: decode record: %w", err)
	}
	if !(rec.Scale > 0) {
		return Record{}, fmt.Errorf("%w: record scale %g", ErrNonMonotonic, rec.Scale)
	}
	return rec, nil
}

// FileStore keeps the most recent record in a single JSON file.
type FileStore struct {
	Path string
}

// NewFileStore returns a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Save overwrites the file with r.
func (s *FileStore) Save(_ context.Context, r Record) error {
	if dir := filepath.Dir(s.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("calib: create dirs: %w", err)
		}
	}
	f, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("calib: create record file: %w", err)
	}
	if err := WriteRecord(f, r); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Latest reads the record from the file.
func (s *FileStore) Latest(_ context.Context) (Record, error) {
	f, err := os.Open(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return Record{}, ErrNoRecord
	}
	if err != nil {
		return Record{}, fmt.Errorf("calib: open record file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadRecord(f)
}
