package annotation

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoader_GFF3(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	l := NewLoader(filepath.Join("testdata", "sarscov2.gff3"))
	l.SetLogger(zap.New(core))

	features, stats, err := l.Load()
	require.NoError(t, err)

	require.Len(t, features, 4)
	assert.Equal(t, CDSFeature{Chrom: "MN908947.3", Start: 266, End: 13468, Strand: "+", GeneName: "ORF1ab"}, features[0])
	assert.Equal(t, "S", features[2].GeneName)
	assert.Equal(t, "N", features[3].GeneName)
	assert.Equal(t, "-", features[3].Strand)

	assert.Equal(t, 4, stats.Features)
	assert.Equal(t, 1, stats.Unstranded)
	assert.Equal(t, 3, stats.OtherTypes)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, int64(1), logs.All()[0].ContextMap()["count"])
}

func TestLoader_GzipMatchesPlain(t *testing.T) {
	plain, _, err := NewLoader(filepath.Join("testdata", "sarscov2.gff3")).Load()
	require.NoError(t, err)
	gz, _, err := NewLoader(filepath.Join("testdata", "sarscov2.gff3.gz")).Load()
	require.NoError(t, err)
	assert.Equal(t, plain, gz)
}

func TestLoader_GTFWithChrom(t *testing.T) {
	l := NewLoader(filepath.Join("testdata", "kras.gtf"))
	l.SetChrom("12")

	features, stats, err := l.Load()
	require.NoError(t, err)

	require.Len(t, features, 2)
	for _, f := range features {
		assert.Equal(t, "KRAS", f.GeneName)
		assert.Equal(t, "chr12", f.Chrom)
		y, ok := f.DerivedY()
		assert.True(t, ok)
		assert.Equal(t, -1, y)
	}
	assert.Equal(t, 1, stats.OtherChrom)
}

func TestLoader_MissingFile(t *testing.T) {
	_, _, err := NewLoader(filepath.Join(t.TempDir(), "missing.gff3")).Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoader_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"short line", "seq1\tsrc\tCDS\t1\t10\n", "expected 9 columns"},
		{"bad start", "seq1\tsrc\tCDS\tx\t10\t.\t+\t0\tgene=A\n", "invalid start"},
		{"bad end", "seq1\tsrc\tCDS\t1\ty\t.\t+\t0\tgene=A\n", "invalid end"},
		{"reversed", "seq1\tsrc\tCDS\t10\t1\t.\t+\t0\tgene=A\n", "before start"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := NewLoader("").parse(strings.NewReader("##gff-version 3\n" + tt.body))
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, 2, perr.Line)
			assert.Contains(t, perr.Message, tt.want)
		})
	}
}

func TestLoader_NoCDS(t *testing.T) {
	body := "##gff-version 3\nseq1\tsrc\tgene\t1\t10\t.\t+\t.\tgene=A\n"
	features, stats, err := NewLoader("").parse(strings.NewReader(body))
	require.NoError(t, err)
	assert.Empty(t, features)
	assert.Equal(t, 1, stats.OtherTypes)
}

func TestParseAttributes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected map[string]string
	}{
		{
			name:  "gff3",
			input: "ID=cds-QHD43416.1;Parent=gene-S;gene=S;product=surface glycoprotein",
			expected: map[string]string{
				"ID":      "cds-QHD43416.1",
				"gene":    "S",
				"product": "surface glycoprotein",
			},
		},
		{
			name:  "gtf",
			input: `gene_id "ENSG00000133703"; transcript_id "ENST00000311936"; gene_name "KRAS";`,
			expected: map[string]string{
				"gene_id":   "ENSG00000133703",
				"gene_name": "KRAS",
			},
		},
		{
			name:  "gtf value containing equals",
			input: `gene_id "G1"; note "a=b";`,
			expected: map[string]string{
				"note": "a=b",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseAttributes(tt.input)
			for key, want := range tt.expected {
				assert.Equal(t, want, result[key], "parseAttributes()[%q]", key)
			}
		})
	}
}

func TestGeneName(t *testing.T) {
	assert.Equal(t, "S", geneName(map[string]string{"gene": "S", "Name": "spike"}))
	assert.Equal(t, "KRAS", geneName(map[string]string{"gene_name": "KRAS", "gene_id": "ENSG1"}))
	assert.Equal(t, "cds-1", geneName(map[string]string{"ID": "cds-1"}))
	assert.Equal(t, "", geneName(map[string]string{}))
}

func TestDerivedY(t *testing.T) {
	y, ok := CDSFeature{Strand: "+"}.DerivedY()
	assert.True(t, ok)
	assert.Equal(t, 1, y)

	y, ok = CDSFeature{Strand: "-"}.DerivedY()
	assert.True(t, ok)
	assert.Equal(t, -1, y)

	for _, s := range []string{".", "?", ""} {
		_, ok = CDSFeature{Strand: s}.DerivedY()
		assert.False(t, ok, "strand %q", s)
	}
}

func TestMarkHighlighted(t *testing.T) {
	features := []CDSFeature{
		{GeneName: "S", Strand: "+"},
		{GeneName: "S", Strand: "-", Start: 99999},
		{GeneName: "N", Strand: "-"},
	}
	MarkHighlighted(features, map[string]bool{"S": true})

	assert.True(t, features[0].Highlight)
	assert.True(t, features[1].Highlight)
	assert.False(t, features[2].Highlight)
}
