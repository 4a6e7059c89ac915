// Package config holds the run parameters of a density plot.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Defaults used when neither the config file nor a flag sets a value.
const (
	DefaultGenomeLength   = 29903
	DefaultWindowSize     = 400
	DefaultSummaryPath    = "variant_density.tsv"
	DefaultFigurePath     = "variant_density.png"
	DefaultWidthInches    = 10.0
	DefaultHeightInches   = 5.0
	DefaultLabelFraction  = 0.9
	DefaultHighlightColor = "#d62728"
	DefaultFeatureColor   = "#7f7f7f"
	DefaultBarColor       = "#1f77b4"
	DefaultRegionColor    = "#ffd70040"
)

// HighlightRegion is a labelled genome interval drawn as a background band on
// both charts.
type HighlightRegion struct {
	Label string `mapstructure:"label" yaml:"label"`
	Start int64  `mapstructure:"start" yaml:"start"`
	End   int64  `mapstructure:"end" yaml:"end"`
	Color string `mapstructure:"color" yaml:"color"`

	// LabelX is the label position in bp. Zero places the label at the
	// region centre.
	LabelX float64 `mapstructure:"label_x" yaml:"label_x"`

	// LabelFraction scales the maximum window count to give the label height.
	LabelFraction float64 `mapstructure:"label_fraction" yaml:"label_fraction"`
}

// ResolvedLabelX returns the x coordinate of the region label in bp.
func (r HighlightRegion) ResolvedLabelX() float64 {
	if r.LabelX != 0 {
		return r.LabelX
	}
	return float64(r.Start) + float64(r.End-r.Start)/2
}

// LabelY returns the label height for a chart whose tallest bar is maxCount.
func (r HighlightRegion) LabelY(maxCount int) float64 {
	frac := r.LabelFraction
	if frac == 0 {
		frac = DefaultLabelFraction
	}
	return float64(maxCount) * frac
}

// Config is the full set of parameters for one run.
type Config struct {
	VCFPath        string `mapstructure:"vcf" yaml:"vcf"`
	AnnotationPath string `mapstructure:"annotation" yaml:"annotation"`
	SummaryPath    string `mapstructure:"summary" yaml:"summary"`
	FigurePath     string `mapstructure:"figure" yaml:"figure"`
	HTMLPath       string `mapstructure:"html" yaml:"html"`

	GenomeLength int64  `mapstructure:"genome_length" yaml:"genome_length"`
	WindowSize   int64  `mapstructure:"window_size" yaml:"window_size"`
	Chrom        string `mapstructure:"chrom" yaml:"chrom"`

	// SNVOnly restricts binning to single nucleotide variants. Off by default:
	// all variant types are counted.
	SNVOnly bool `mapstructure:"snv_only" yaml:"snv_only"`

	// PassOnly skips records whose FILTER is neither PASS nor ".".
	PassOnly bool `mapstructure:"pass_only" yaml:"pass_only"`

	Regions        []HighlightRegion `mapstructure:"regions" yaml:"regions"`
	HighlightGenes []string          `mapstructure:"highlight_genes" yaml:"highlight_genes"`

	HighlightColor string `mapstructure:"highlight_color" yaml:"highlight_color"`
	FeatureColor   string `mapstructure:"feature_color" yaml:"feature_color"`
	BarColor       string `mapstructure:"bar_color" yaml:"bar_color"`

	WidthInches  float64 `mapstructure:"width" yaml:"width"`
	HeightInches float64 `mapstructure:"height" yaml:"height"`
}

// Default returns a Config with every default applied.
func Default() Config {
	return Config{
		SummaryPath:    DefaultSummaryPath,
		FigurePath:     DefaultFigurePath,
		GenomeLength:   DefaultGenomeLength,
		WindowSize:     DefaultWindowSize,
		HighlightColor: DefaultHighlightColor,
		FeatureColor:   DefaultFeatureColor,
		BarColor:       DefaultBarColor,
		WidthInches:    DefaultWidthInches,
		HeightInches:   DefaultHeightInches,
	}
}

// SetDefaults registers the defaults with v so that config files and
// environment variables only need to override what they change.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("summary", d.SummaryPath)
	v.SetDefault("figure", d.FigurePath)
	v.SetDefault("genome_length", d.GenomeLength)
	v.SetDefault("window_size", d.WindowSize)
	v.SetDefault("highlight_color", d.HighlightColor)
	v.SetDefault("feature_color", d.FeatureColor)
	v.SetDefault("bar_color", d.BarColor)
	v.SetDefault("width", d.WidthInches)
	v.SetDefault("height", d.HeightInches)
}

// FromViper decodes a Config from v and validates it.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// HighlightSet returns the highlighted gene names as a set.
func (c Config) HighlightSet() map[string]bool {
	set := make(map[string]bool, len(c.HighlightGenes))
	for _, g := range c.HighlightGenes {
		if g = strings.TrimSpace(g); g != "" {
			set[g] = true
		}
	}
	return set
}

// Validate checks the genome geometry, the regions and the colours.
func (c Config) Validate() error {
	var errs []error
	if c.GenomeLength <= 0 {
		errs = append(errs, fmt.Errorf("genome_length must be positive, got %d", c.GenomeLength))
	}
	if c.WindowSize <= 0 {
		errs = append(errs, fmt.Errorf("window_size must be positive, got %d", c.WindowSize))
	}
	if c.WidthInches <= 0 || c.HeightInches <= 0 {
		errs = append(errs, fmt.Errorf("figure size must be positive, got %gx%g", c.WidthInches, c.HeightInches))
	}
	for i, r := range c.Regions {
		if r.Start < 0 || r.End <= r.Start {
			errs = append(errs, fmt.Errorf("region %d (%q): invalid interval [%d, %d)", i, r.Label, r.Start, r.End))
		}
		if r.Color != "" {
			if _, err := ParseColor(r.Color); err != nil {
				errs = append(errs, fmt.Errorf("region %d (%q): %w", i, r.Label, err))
			}
		}
	}
	for _, col := range []struct{ name, value string }{
		{"highlight_color", c.HighlightColor},
		{"feature_color", c.FeatureColor},
		{"bar_color", c.BarColor},
	} {
		if _, err := ParseColor(col.value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", col.name, err))
		}
	}
	return errors.Join(errs...)
}

// ParseColor parses "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: want #rrggbb or #rrggbbaa", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.NRGBA{
		R: uint8(n >> 24),
		G: uint8(n >> 16),
		B: uint8(n >> 8),
		A: uint8(n),
	}, nil
}

// MustColor is ParseColor for values that already passed Validate. Invalid
// input falls back to opaque black.
func MustColor(s string) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		return color.NRGBA{A: 0xff}
	}
	return c
}
