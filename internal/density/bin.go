// Package density bins variant positions into fixed-width genome windows.
package density

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGenomeLength is returned when the genome length is not positive.
	ErrInvalidGenomeLength = errors.New("genome length must be positive")
	// ErrInvalidWindow is returned when the window size is not positive.
	ErrInvalidWindow = errors.New("window size must be positive")
)

// BinCount is the number of positions falling in one window.
type BinCount struct {
	Index    int
	Start    int64 // inclusive
	End      int64 // exclusive
	Midpoint float64
	Count    int
}

// Label returns the window label used in summary tables.
func (b BinCount) Label() string {
	return fmt.Sprintf("%d-%d", b.Start, b.End)
}

// Width returns the true width of the window. Only the last window can be
// narrower than the window size.
func (b BinCount) Width() int64 {
	return b.End - b.Start
}

// Result is the output of Bin.
type Result struct {
	Bins []BinCount

	// Binned is the number of positions counted in some window.
	Binned int
	// Dropped is the number of positions outside [0, genomeLength).
	Dropped int
}

// Counts returns the per-window counts in window order.
func (r Result) Counts() []int {
	counts := make([]int, len(r.Bins))
	for i, b := range r.Bins {
		counts[i] = b.Count
	}
	return counts
}

// WindowCount returns ceil(genomeLength / windowSize).
func WindowCount(genomeLength, windowSize int64) int {
	return int((genomeLength + windowSize - 1) / windowSize)
}

// Bin partitions [0, genomeLength) into half-open windows of windowSize and
// counts the positions in each. Positions outside the genome are dropped.
//
// The midpoint of every window is start + windowSize/2, including a last
// window that is shorter than windowSize.
func Bin(positions []int64, genomeLength, windowSize int64) (Result, error) {
	if genomeLength <= 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidGenomeLength, genomeLength)
	}
	if windowSize <= 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidWindow, windowSize)
	}

	n := WindowCount(genomeLength, windowSize)
	bins := make([]BinCount, n)
	half := float64(windowSize) / 2
	for i := range bins {
		start := int64(i) * windowSize
		bins[i] = BinCount{
			Index:    i,
			Start:    start,
			End:      min(start+windowSize, genomeLength),
			Midpoint: float64(start) + half,
		}
	}

	res := Result{Bins: bins}
	for _, p := range positions {
		if p < 0 || p >= genomeLength {
			res.Dropped++
			continue
		}
		bins[p/windowSize].Count++
		res.Binned++
	}
	return res, nil
}
