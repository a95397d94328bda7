package calib

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SQLiteStore keeps every calibration record in a SQLite table, so earlier
// calibrations remain available for comparison.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (and if needed creates) the database at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		path = "gammaspotter.db"
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("calib: create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("calib: open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS calibrations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at TEXT NOT NULL,
		catalog TEXT NOT NULL,
		scale_factor REAL NOT NULL,
		energy_offset REAL NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("calib: create calibrations table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save appends r.
func (s *SQLiteStore) Save(ctx context.Context, r Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO calibrations (created_at, catalog, scale_factor, energy_offset) VALUES (?, ?, ?, ?)`,
		r.Timestamp.UTC().Format(time.RFC3339Nano), r.Catalog, r.Scale, r.Offset,
	)
	if err != nil {
		return fmt.Errorf("calib: insert record: %w", err)
	}
	return nil
}

// Latest returns the most recently saved record.
func (s *SQLiteStore) Latest(ctx context.Context) (Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT created_at, catalog, scale_factor, energy_offset FROM calibrations ORDER BY id DESC LIMIT 1`)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNoRecord
	}
	return r, err
}

// List returns all records, oldest first.
func (s *SQLiteStore) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT created_at, catalog, scale_factor, energy_offset FROM calibrations ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("calib: select records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("calib: iterate records: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var (
		r  Record
		ts string
	)
	if err := sc.Scan(&ts, &r.Catalog, &r.Scale, &r.Offset); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, err
		}
		return Record{}, fmt.Errorf("calib: scan record: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return Record{}, fmt.Errorf("calib: parse timestamp %q: %w", ts, err)
	}
	r.Timestamp = t
	return r, nil
}
