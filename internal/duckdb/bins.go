package duckdb

import (
	"context"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/vibe-density/internal/density"
)

// WriteBins replaces the window_counts table contents with bins using the
// Appender API.
func (s *Store) WriteBins(bins []density.BinCount) error {
	if err := s.ClearBins(); err != nil {
		return fmt.Errorf("clear window counts: %w", err)
	}
	if len(bins) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "window_counts")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, b := range bins {
		if err := appender.AppendRow(
			int32(b.Index), b.Label(), int32(b.Count), b.Start, b.End, b.Midpoint,
		); err != nil {
			return fmt.Errorf("append window %s: %w", b.Label(), err)
		}
	}

	return appender.Flush()
}

// ClearBins removes all stored window counts.
func (s *Store) ClearBins() error {
	_, err := s.db.Exec("DELETE FROM window_counts")
	return err
}

// ReadBins returns the stored window counts in window order.
func (s *Store) ReadBins() ([]density.BinCount, error) {
	rows, err := s.db.Query(`SELECT window_index, "count", window_start, window_end, midpoint
		FROM window_counts ORDER BY window_index`)
	if err != nil {
		return nil, fmt.Errorf("query window counts: %w", err)
	}
	defer rows.Close()

	var bins []density.BinCount
	for rows.Next() {
		var b density.BinCount
		if err := rows.Scan(&b.Index, &b.Count, &b.Start, &b.End, &b.Midpoint); err != nil {
			return nil, fmt.Errorf("scan window count: %w", err)
		}
		bins = append(bins, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate window counts: %w", err)
	}
	return bins, nil
}
