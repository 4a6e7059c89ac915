package output

import (
	"io"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/inodb/vibe-density/internal/density"
)

// CSVWriter writes the summary as comma-separated values.
type CSVWriter struct {
	w io.Writer
}

// NewCSVWriter creates a CSV summary writer.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: w}
}

// Frame returns the summary table as a dataframe with the Columns layout.
func Frame(bins []density.BinCount) dataframe.DataFrame {
	labels := make([]string, len(bins))
	counts := make([]int, len(bins))
	starts := make([]int, len(bins))
	ends := make([]int, len(bins))
	mids := make([]float64, len(bins))
	for i, b := range bins {
		labels[i] = b.Label()
		counts[i] = b.Count
		starts[i] = int(b.Start)
		ends[i] = int(b.End)
		mids[i] = b.Midpoint
	}
	return dataframe.New(
		series.New(labels, series.String, Columns[0]),
		series.New(counts, series.Int, Columns[1]),
		series.New(starts, series.Int, Columns[2]),
		series.New(ends, series.Int, Columns[3]),
		series.New(mids, series.Float, Columns[4]),
	)
}

// WriteBins writes the header and one row per window.
func (cw *CSVWriter) WriteBins(bins []density.BinCount) error {
	if len(bins) == 0 {
		// Header only for an empty table.
		_, err := io.WriteString(cw.w, strings.Join(Columns, ",")+"\n")
		return err
	}
	mids := make([]string, len(bins))
	for i, b := range bins {
		mids[i] = formatMidpoint(b.Midpoint)
	}
	// gota prints floats with six decimals; the written column matches the TSV.
	df := Frame(bins).Mutate(series.New(mids, series.String, Columns[4]))
	if df.Err != nil {
		return df.Err
	}
	return df.WriteCSV(cw.w)
}
