package annotation

import "sort"

// Index answers "which CDS features cover this position" in O(log n + k)
// using a sorted slice with a suffix max of end coordinates. It is built once
// and never modified.
type Index struct {
	spans  []span
	maxEnd []int64 // maxEnd[i] = max(end) for spans[i:]
}

type span struct {
	start   int64
	end     int64
	feature int
}

// NewIndex builds an index over features. Results refer to features by slice
// position, so the slice must not be reordered afterwards.
func NewIndex(features []CDSFeature) *Index {
	if len(features) == 0 {
		return &Index{}
	}

	spans := make([]span, len(features))
	for i, f := range features {
		spans[i] = span{start: f.Start, end: f.End, feature: i}
	}
	sort.Slice(spans, func(i, j int) bool {
		return spans[i].start < spans[j].start
	})

	maxEnd := make([]int64, len(spans))
	maxEnd[len(spans)-1] = spans[len(spans)-1].end
	for i := len(spans) - 2; i >= 0; i-- {
		maxEnd[i] = max(spans[i].end, maxEnd[i+1])
	}

	return &Index{spans: spans, maxEnd: maxEnd}
}

// Overlaps returns the indexes of features whose [Start, End] range contains
// the 1-based position pos.
func (x *Index) Overlaps(pos int64) []int {
	if len(x.spans) == 0 {
		return nil
	}

	// Candidates are spans[0:hi), the ones starting at or before pos.
	hi := sort.Search(len(x.spans), func(i int) bool {
		return x.spans[i].start > pos
	})

	var result []int
	for i := hi - 1; i >= 0; i-- {
		if x.maxEnd[i] < pos {
			break
		}
		if x.spans[i].end >= pos {
			result = append(result, x.spans[i].feature)
		}
	}
	return result
}

// GeneCount is the number of variant positions that fall in a gene's CDS.
type GeneCount struct {
	GeneName  string
	Count     int
	Highlight bool
}

// CountByGene counts 0-based variant positions per gene name. A position
// covered by several CDS records of the same gene counts once for that gene.
// Genes without variants are included with a zero count, in first-seen order.
func CountByGene(features []CDSFeature, positions []int64) []GeneCount {
	idx := NewIndex(features)

	order := make(map[string]int)
	var counts []GeneCount
	for _, f := range features {
		if i, ok := order[f.GeneName]; ok {
			counts[i].Highlight = counts[i].Highlight || f.Highlight
			continue
		}
		order[f.GeneName] = len(counts)
		counts = append(counts, GeneCount{GeneName: f.GeneName, Highlight: f.Highlight})
	}

	for _, pos := range positions {
		seen := make(map[int]bool)
		for _, fi := range idx.Overlaps(pos + 1) {
			gi := order[features[fi].GeneName]
			if seen[gi] {
				continue
			}
			seen[gi] = true
			counts[gi].Count++
		}
	}
	return counts
}
