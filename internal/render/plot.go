// Package render draws chart descriptions with gonum/plot and go-echarts.
package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"github.com/inodb/vibe-density/internal/chart"
)

var (
	refLineColor = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	refDashes    = [][]vg.Length{
		{vg.Points(4), vg.Points(3)},
		{vg.Points(1.5), vg.Points(2)},
	}
)

// DensityPlot builds the variant density plot.
func DensityPlot(c chart.DensityChart) (*plot.Plot, error) {
	p := plot.New()
	setGenomeAxis(p, c.XAxis)
	p.Y.Label.Text = c.YLabel
	p.Legend.Top = true

	p.Add(bands(c.Bands))

	bars := make(rects, len(c.Bars))
	for i, b := range c.Bars {
		bars[i] = rect{
			xMin:  b.X - b.Width/2,
			xMax:  b.X + b.Width/2,
			yMin:  0,
			yMax:  b.Height,
			color: c.BarColor,
		}
	}
	p.Add(bars)

	yMax := float64(c.MaxCount)
	for i, rl := range c.RefLines {
		line, err := plotter.NewLine(plotter.XYs{{X: c.XAxis.Min, Y: rl.Y}, {X: c.XAxis.Max, Y: rl.Y}})
		if err != nil {
			return nil, fmt.Errorf("reference line %s: %w", rl.Name, err)
		}
		line.LineStyle.Color = refLineColor
		line.LineStyle.Width = vg.Points(1)
		line.LineStyle.Dashes = refDashes[i%len(refDashes)]
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("%s (%.1f)", rl.Name, rl.Y), line)
		yMax = math.Max(yMax, rl.Y)
	}

	if len(c.Labels) > 0 {
		xys := make(plotter.XYs, len(c.Labels))
		texts := make([]string, len(c.Labels))
		for i, l := range c.Labels {
			xys[i] = plotter.XY{X: l.X, Y: l.Y}
			texts[i] = l.Text
			yMax = math.Max(yMax, l.Y)
		}
		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
		if err != nil {
			return nil, fmt.Errorf("region labels: %w", err)
		}
		for i := range labels.TextStyle {
			labels.TextStyle[i].XAlign = text.XCenter
		}
		p.Add(labels)
	}

	// Fixed ranges: data ranges from the plotters above must not widen them.
	p.X.Min, p.X.Max = c.XAxis.Min, c.XAxis.Max
	p.Y.Min = 0
	p.Y.Max = math.Max(yMax*1.05, 1)
	return p, nil
}

// AnnotationPlot builds the strand-separated CDS plot.
func AnnotationPlot(c chart.AnnotationChart) *plot.Plot {
	p := plot.New()
	setGenomeAxis(p, c.XAxis)

	p.Add(bands(c.Bands))

	intervals := make(rects, len(c.Intervals))
	for i, iv := range c.Intervals {
		intervals[i] = rect{
			xMin:  iv.Start,
			xMax:  iv.End,
			yMin:  0,
			yMax:  iv.Top,
			color: iv.Color,
		}
	}
	p.Add(intervals)

	ticks := make(plot.ConstantTicks, len(c.YTicks))
	for i, t := range c.YTicks {
		ticks[i] = plot.Tick{Value: t.Value, Label: t.Label}
	}
	p.Y.Tick.Marker = ticks
	p.Y.Label.Text = ""
	p.Y.LineStyle.Width = 0
	p.Y.Tick.LineStyle.Width = 0

	p.X.Min, p.X.Max = c.XAxis.Min, c.XAxis.Max
	p.Y.Min, p.Y.Max = -1.1, 1.1
	return p
}

func setGenomeAxis(p *plot.Plot, ax chart.XAxis) {
	p.X.Label.Text = ax.Label
	p.X.Tick.Marker = newGenomeTicks(ax)
	p.X.Padding = 0
}
