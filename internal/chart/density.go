package chart

import (
	"image/color"

	"github.com/inodb/vibe-density/internal/config"
	"github.com/inodb/vibe-density/internal/density"
)

// Bar is one window column centred on X. Label is the window's unique
// "start-end" name.
type Bar struct {
	Label  string
	X      float64
	Width  float64
	Height float64
}

// RefLine is a full-width dashed horizontal line.
type RefLine struct {
	Name string
	Y    float64
}

// DensityChart is the declarative variant density chart.
type DensityChart struct {
	Bars     []Bar
	BarColor color.NRGBA
	Bands    []Band
	Labels   []Label
	RefLines []RefLine
	XAxis    XAxis
	YLabel   string
	MaxCount int
}

// BuildDensity maps binned counts, highlight regions and summary values to a
// density chart. Bars sit at the window midpoint and are windowSize wide.
func BuildDensity(bins []density.BinCount, sum density.Summary, cfg config.Config) DensityChart {
	c := DensityChart{
		Bars:     make([]Bar, len(bins)),
		BarColor: config.MustColor(cfg.BarColor),
		Bands:    bands(cfg.Regions),
		XAxis:    GenomeAxis(cfg.GenomeLength),
		YLabel:   "Variants per window",
		MaxCount: sum.Max,
		RefLines: []RefLine{
			{Name: "median", Y: sum.Median},
			{Name: "95th percentile", Y: sum.Q95},
		},
	}
	for i, b := range bins {
		c.Bars[i] = Bar{
			Label:  b.Label(),
			X:      b.Midpoint,
			Width:  float64(cfg.WindowSize),
			Height: float64(b.Count),
		}
	}
	for _, r := range cfg.Regions {
		c.Labels = append(c.Labels, Label{
			Text: r.Label,
			X:    r.ResolvedLabelX(),
			Y:    r.LabelY(sum.Max),
		})
	}
	return c
}
