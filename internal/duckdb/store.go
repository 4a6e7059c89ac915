// Package duckdb stores per-window summaries in a DuckDB database so they can
// be queried alongside other run outputs.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection holding window counts.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS window_counts (
		window_index INTEGER PRIMARY KEY,
		window_label VARCHAR,
		"count" INTEGER,
		window_start BIGINT,
		window_end BIGINT,
		midpoint DOUBLE
	)`); err != nil {
		return err
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		input_path VARCHAR,
		input_size BIGINT,
		input_mtime TIMESTAMP,
		genome_length BIGINT,
		window_size BIGINT,
		binned INTEGER,
		dropped INTEGER,
		median DOUBLE,
		q95 DOUBLE
	)`)
	return err
}
