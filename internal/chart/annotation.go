package chart

import (
	"image/color"

	"github.com/inodb/vibe-density/internal/annotation"
	"github.com/inodb/vibe-density/internal/config"
)

// Interval is one CDS drawn from Y=0 to Y=Top (+1 or -1).
type Interval struct {
	Name       string
	Start, End float64
	Top        float64
	Color      color.NRGBA
}

// AnnotationChart is the declarative strand-separated CDS chart.
type AnnotationChart struct {
	Intervals []Interval
	Bands     []Band
	XAxis     XAxis
	YTicks    []YTick
}

// StrandTicks are the only y ticks shown on the annotation chart.
var StrandTicks = []YTick{
	{Value: -1, Label: "-"},
	{Value: 1, Label: "+"},
}

// BuildAnnotation maps CDS features to intervals. Highlighted features take
// the highlight colour regardless of strand or position. Features without a
// +/- strand are left out.
func BuildAnnotation(features []annotation.CDSFeature, cfg config.Config) AnnotationChart {
	hi := config.MustColor(cfg.HighlightColor)
	neutral := config.MustColor(cfg.FeatureColor)

	c := AnnotationChart{
		Intervals: make([]Interval, 0, len(features)),
		Bands:     bands(cfg.Regions),
		XAxis:     GenomeAxis(cfg.GenomeLength),
		YTicks:    StrandTicks,
	}
	for _, f := range features {
		y, ok := f.DerivedY()
		if !ok {
			continue
		}
		fill := neutral
		if f.Highlight {
			fill = hi
		}
		c.Intervals = append(c.Intervals, Interval{
			Name:  f.GeneName,
			Start: float64(f.Start),
			End:   float64(f.End),
			Top:   float64(y),
			Color: fill,
		})
	}
	return c
}
