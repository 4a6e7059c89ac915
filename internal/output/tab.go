// Package output writes per-window summary tables.
package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/vibe-density/internal/density"
)

// Columns is the summary table header.
var Columns = []string{
	"window",
	"count",
	"start",
	"end",
	"midpoint",
}

// SummaryWriter writes a per-window table.
type SummaryWriter interface {
	WriteBins(bins []density.BinCount) error
}

// TabWriter writes the summary in tab-delimited format.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w:       bufio.NewWriter(w),
		columns: Columns,
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single window.
func (tw *TabWriter) Write(b density.BinCount) error {
	values := []string{
		b.Label(),
		strconv.Itoa(b.Count),
		strconv.FormatInt(b.Start, 10),
		strconv.FormatInt(b.End, 10),
		formatMidpoint(b.Midpoint),
	}

	_, err := tw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// WriteBins writes the header, every window and flushes.
func (tw *TabWriter) WriteBins(bins []density.BinCount) error {
	if err := tw.WriteHeader(); err != nil {
		return err
	}
	for _, b := range bins {
		if err := tw.Write(b); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// formatMidpoint writes the shortest exact decimal, so 200 stays "200" and
// 12.5 stays "12.5" in every summary format.
func formatMidpoint(m float64) string {
	return strconv.FormatFloat(m, 'f', -1, 64)
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}
