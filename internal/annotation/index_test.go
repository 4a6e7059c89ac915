package annotation

import (
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIndex_Empty(t *testing.T) {
	assert.Empty(t, NewIndex(nil).Overlaps(100))
}

func TestIndex_Boundaries(t *testing.T) {
	idx := NewIndex([]CDSFeature{{GeneName: "A", Start: 100, End: 200, Strand: "+"}})

	assert.Equal(t, []int{0}, idx.Overlaps(150))
	assert.Len(t, idx.Overlaps(100), 1, "start boundary inclusive")
	assert.Len(t, idx.Overlaps(200), 1, "end boundary inclusive")
	assert.Empty(t, idx.Overlaps(99), "before start")
	assert.Empty(t, idx.Overlaps(201), "after end")
}

func TestIndex_Overlapping(t *testing.T) {
	features := []CDSFeature{
		{GeneName: "C", Start: 200, End: 400},
		{GeneName: "A", Start: 100, End: 300},
		{GeneName: "B", Start: 150, End: 250},
	}
	idx := NewIndex(features)

	got := idx.Overlaps(175)
	sort.Ints(got)
	assert.Equal(t, []int{1, 2}, got)

	assert.Len(t, idx.Overlaps(250), 3)
	assert.Equal(t, []int{0}, idx.Overlaps(350))
}

func TestIndex_LongFeatureBeforeShortOnes(t *testing.T) {
	// The suffix max must not prune a long early feature.
	features := []CDSFeature{
		{GeneName: "long", Start: 1, End: 10000},
		{GeneName: "a", Start: 100, End: 110},
		{GeneName: "b", Start: 200, End: 210},
	}
	idx := NewIndex(features)
	assert.Equal(t, []int{0}, idx.Overlaps(5000))
}

func TestCountByGene(t *testing.T) {
	features, _, err := NewLoader(filepath.Join("testdata", "sarscov2.gff3")).Load()
	require.NoError(t, err)
	MarkHighlighted(features, map[string]bool{"S": true})

	// 0-based positions from testdata/sarscov2.vcf plus one at the ORF1ab
	// frameshift, which both ORF1ab records cover.
	positions := []int64{240, 3036, 11287, 14407, 21764, 23402, 28880, 13467}

	counts := CountByGene(features, positions)
	assert.Equal(t, []GeneCount{
		{GeneName: "ORF1ab", Count: 4},
		{GeneName: "S", Count: 2, Highlight: true},
		{GeneName: "N", Count: 1},
	}, counts)
}

func TestCountByGene_NoFeatures(t *testing.T) {
	assert.Empty(t, CountByGene(nil, []int64{1, 2, 3}))
}
