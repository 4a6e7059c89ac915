// Package chart turns binned counts and CDS features into declarative chart
// descriptions. Nothing here draws; see package render.
package chart

import (
	"image/color"

	"github.com/inodb/vibe-density/internal/config"
)

// Genome axis defaults: positions are shown in kilobases with a major tick
// every 5 kb and a minor tick every 2.5 kb.
const (
	KilobaseScale = 1000.0
	MajorTickBP   = 5000.0
	MinorTickBP   = 2500.0
)

// XAxis describes the shared genome axis.
type XAxis struct {
	Min, Max float64 // bp
	Scale    float64 // bp per displayed unit
	Major    float64 // bp between labelled ticks
	Minor    float64 // bp between unlabelled ticks
	Label    string
}

// GenomeAxis returns the kilobase axis spanning [0, genomeLength].
func GenomeAxis(genomeLength int64) XAxis {
	return XAxis{
		Min:   0,
		Max:   float64(genomeLength),
		Scale: KilobaseScale,
		Major: MajorTickBP,
		Minor: MinorTickBP,
		Label: "Position (kb)",
	}
}

// Band is a background rectangle covering [Start, End) across the full
// vertical extent of a chart.
type Band struct {
	Label      string
	Start, End float64
	Color      color.NRGBA
}

// Label is a text annotation placed in data coordinates.
type Label struct {
	Text string
	X, Y float64
}

// YTick is a labelled tick on a y axis.
type YTick struct {
	Value float64
	Label string
}

// bands maps highlight regions to background bands.
func bands(regions []config.HighlightRegion) []Band {
	out := make([]Band, 0, len(regions))
	for _, r := range regions {
		c := r.Color
		if c == "" {
			c = config.DefaultRegionColor
		}
		out = append(out, Band{
			Label: r.Label,
			Start: float64(r.Start),
			End:   float64(r.End),
			Color: config.MustColor(c),
		})
	}
	return out
}
