package duckdb

import (
	"fmt"
	"os"
	"time"
)

// FileFingerprint holds stat-based identity for a file.
type FileFingerprint struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// StatFile creates a FileFingerprint from an on-disk file.
func StatFile(path string) (FileFingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileFingerprint{}, err
	}
	return FileFingerprint{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// RunInfo records the input and parameters that produced the stored windows.
type RunInfo struct {
	Input        FileFingerprint
	GenomeLength int64
	WindowSize   int64
	Binned       int
	Dropped      int
	Median       float64
	Q95          float64
}

// WriteRun appends a row to the runs table.
func (s *Store) WriteRun(r RunInfo) error {
	_, err := s.db.Exec(`INSERT INTO runs VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Input.Path, r.Input.Size, r.Input.ModTime.UTC(),
		r.GenomeLength, r.WindowSize, r.Binned, r.Dropped, r.Median, r.Q95)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Runs returns every recorded run in insertion order.
func (s *Store) Runs() ([]RunInfo, error) {
	rows, err := s.db.Query(`SELECT input_path, input_size, input_mtime, genome_length,
		window_size, binned, dropped, median, q95 FROM runs`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		var r RunInfo
		if err := rows.Scan(&r.Input.Path, &r.Input.Size, &r.Input.ModTime,
			&r.GenomeLength, &r.WindowSize, &r.Binned, &r.Dropped, &r.Median, &r.Q95); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}
