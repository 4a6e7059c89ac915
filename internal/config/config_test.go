package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"zero genome length", func(c *Config) { c.GenomeLength = 0 }, "genome_length"},
		{"negative window", func(c *Config) { c.WindowSize = -5 }, "window_size"},
		{"empty region", func(c *Config) {
			c.Regions = []HighlightRegion{{Label: "S", Start: 100, End: 100}}
		}, "invalid interval"},
		{"bad region colour", func(c *Config) {
			c.Regions = []HighlightRegion{{Label: "S", Start: 0, End: 10, Color: "red"}}
		}, "invalid colour"},
		{"bad highlight colour", func(c *Config) { c.HighlightColor = "#12" }, "highlight_color"},
		{"zero height", func(c *Config) { c.HeightInches = 0 }, "figure size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#d62728")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}, c)

	c, err = ParseColor("ffd70040")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0x40}, c)

	_, err = ParseColor("#zzzzzz")
	assert.Error(t, err)
}

func TestRegionLabelPosition(t *testing.T) {
	r := HighlightRegion{Label: "RBD", Start: 22517, End: 23185}
	assert.InDelta(t, 22851.0, r.ResolvedLabelX(), 1e-9)
	assert.InDelta(t, 9.0, r.LabelY(10), 1e-9)

	r.LabelX = 20000
	r.LabelFraction = 0.5
	assert.InDelta(t, 20000.0, r.ResolvedLabelX(), 1e-9)
	assert.InDelta(t, 5.0, r.LabelY(10), 1e-9)
	assert.InDelta(t, 0.0, r.LabelY(0), 1e-9)
}

func TestHighlightSet(t *testing.T) {
	c := Config{HighlightGenes: []string{"S", " ORF1ab ", ""}}
	set := c.HighlightSet()
	assert.Len(t, set, 2)
	assert.True(t, set["S"])
	assert.True(t, set["ORF1ab"])
}

func TestFromViper(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	yaml := `vcf: calls.vcf.gz
window_size: 500
highlight_genes: [S, N]
regions:
  - label: RBD
    start: 22517
    end: 23185
    color: "#ff000033"
    label_fraction: 0.8
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "calls.vcf.gz", cfg.VCFPath)
	assert.Equal(t, int64(500), cfg.WindowSize)
	assert.Equal(t, int64(DefaultGenomeLength), cfg.GenomeLength)
	assert.Equal(t, []string{"S", "N"}, cfg.HighlightGenes)
	require.Len(t, cfg.Regions, 1)
	assert.Equal(t, "RBD", cfg.Regions[0].Label)
	assert.Equal(t, int64(23185), cfg.Regions[0].End)
	assert.InDelta(t, 0.8, cfg.Regions[0].LabelFraction, 1e-9)
}

func TestFromViperRejectsInvalid(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("window_size", 0)

	_, err := FromViper(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "window_size")
}
