package render

import (
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/inodb/vibe-density/internal/chart"
)

// rect is a filled rectangle in data coordinates.
type rect struct {
	xMin, xMax float64
	yMin, yMax float64
	color      color.Color
}

// rects draws filled rectangles clipped to the data area.
type rects []rect

// Plot implements plot.Plotter.
func (rs rects) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for _, r := range rs {
		x0 := clamp(trX(r.xMin), c.Min.X, c.Max.X)
		x1 := clamp(trX(r.xMax), c.Min.X, c.Max.X)
		y0 := clamp(trY(math.Min(r.yMin, r.yMax)), c.Min.Y, c.Max.Y)
		y1 := clamp(trY(math.Max(r.yMin, r.yMax)), c.Min.Y, c.Max.Y)
		if x1 <= x0 || y1 <= y0 {
			continue
		}
		c.FillPolygon(r.color, []vg.Point{
			{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1},
		})
	}
}

// DataRange implements plot.DataRanger.
func (rs rects) DataRange() (xmin, xmax, ymin, ymax float64) {
	if len(rs) == 0 {
		return 0, 0, 0, 0
	}
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, r := range rs {
		xmin = math.Min(xmin, r.xMin)
		xmax = math.Max(xmax, r.xMax)
		ymin = math.Min(ymin, math.Min(r.yMin, r.yMax))
		ymax = math.Max(ymax, math.Max(r.yMin, r.yMax))
	}
	return xmin, xmax, ymin, ymax
}

// bands draws background bands over the full height of the data area.
type bands []chart.Band

// Plot implements plot.Plotter.
func (bs bands) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, _ := plt.Transforms(&c)
	for _, b := range bs {
		x0 := clamp(trX(b.Start), c.Min.X, c.Max.X)
		x1 := clamp(trX(b.End), c.Min.X, c.Max.X)
		if x1 <= x0 {
			continue
		}
		c.FillPolygon(b.Color, []vg.Point{
			{X: x0, Y: c.Min.Y}, {X: x1, Y: c.Min.Y}, {X: x1, Y: c.Max.Y}, {X: x0, Y: c.Max.Y},
		})
	}
}

// genomeTicks labels major ticks in display units (e.g. kb) and leaves
// minor ticks unlabelled.
type genomeTicks struct {
	major, minor, scale float64
}

func newGenomeTicks(ax chart.XAxis) genomeTicks {
	return genomeTicks{major: ax.Major, minor: ax.Minor, scale: ax.Scale}
}

// Ticks implements plot.Ticker.
func (t genomeTicks) Ticks(min, max float64) []plot.Tick {
	if t.minor <= 0 || t.major <= 0 || max < min {
		return nil
	}
	var ticks []plot.Tick
	first := int64(math.Ceil(min / t.minor))
	last := int64(math.Floor(max / t.minor))
	for i := first; i <= last; i++ {
		v := float64(i) * t.minor
		label := ""
		if math.Mod(v, t.major) == 0 {
			label = strconv.FormatFloat(v/t.scale, 'f', -1, 64)
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: label})
	}
	return ticks
}

func clamp(v, lo, hi vg.Length) vg.Length {
	return vg.Length(math.Min(math.Max(float64(v), float64(lo)), float64(hi)))
}
