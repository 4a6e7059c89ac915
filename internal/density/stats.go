package density

import (
	"math"
	"slices"
)

// Summary holds the reference values drawn over the density chart.
type Summary struct {
	Median float64
	Q95    float64
	Max    int
	Total  int
}

// Quantile returns the p-quantile of values by linear interpolation between
// order statistics at rank p*(n-1) (Hyndman & Fan type 7). It returns 0 for
// empty input. values is not modified.
func Quantile(values []float64, p float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	p = math.Min(math.Max(p, 0), 1)
	h := p * float64(n-1)
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// Summarize computes median, 0.95 quantile, max and total of the window counts.
func Summarize(bins []BinCount) Summary {
	vals := make([]float64, len(bins))
	var s Summary
	for i, b := range bins {
		vals[i] = float64(b.Count)
		s.Total += b.Count
		if b.Count > s.Max {
			s.Max = b.Count
		}
	}
	s.Median = Quantile(vals, 0.5)
	s.Q95 = Quantile(vals, 0.95)
	return s
}
