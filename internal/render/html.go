package render

import (
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/inodb/vibe-density/internal/chart"
)

// DensityBarChart builds the interactive density chart. Windows are
// categories named by their "start-end" label.
func DensityBarChart(c chart.DensityChart) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Variant density", Width: "1200px", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{Title: "Variant density"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Window (bp)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: c.YLabel}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)

	x := make([]string, len(c.Bars))
	data := make([]opts.BarData, len(c.Bars))
	for i, b := range c.Bars {
		x[i] = b.Label
		data[i] = opts.BarData{Value: b.Height}
	}

	var refs []opts.MarkLineNameYAxisItem
	for _, rl := range c.RefLines {
		refs = append(refs, opts.MarkLineNameYAxisItem{Name: rl.Name, YAxis: rl.Y})
	}

	bar.SetXAxis(x).AddSeries("variants", data,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: rgba(c.BarColor)}),
		charts.WithMarkLineNameYAxisItemOpts(refs...),
		charts.WithMarkAreaNameCoordItemOpts(markAreas(c)...),
	)
	return bar
}

// markAreas maps each band to a mark area spanning the bars whose centre lies
// inside it, from 0 to the top of the value axis. Bands covering no bar centre
// are left out.
func markAreas(c chart.DensityChart) []opts.MarkAreaNameCoordItem {
	top := float64(max(c.MaxCount, 1))
	var areas []opts.MarkAreaNameCoordItem
	for _, b := range c.Bands {
		first, last := barRange(c.Bars, b)
		if first < 0 {
			continue
		}
		areas = append(areas, opts.MarkAreaNameCoordItem{
			Name:        b.Label,
			Coordinate0: []interface{}{c.Bars[first].Label, 0},
			Coordinate1: []interface{}{c.Bars[last].Label, top},
			ItemStyle:   &opts.ItemStyle{Color: rgba(b.Color)},
		})
	}
	return areas
}

// AnnotationLineChart builds the interactive CDS chart: each feature is a
// filled step from 0 to +1 or -1 on a value x axis.
func AnnotationLineChart(c chart.AnnotationChart) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "CDS", Width: "1200px", Height: "160px"}),
		charts.WithXAxisOpts(opts.XAxis{Name: c.XAxis.Label, Type: "value", Min: c.XAxis.Min, Max: c.XAxis.Max}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Min: -1, Max: 1}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	for _, iv := range c.Intervals {
		points := []opts.LineData{
			{Value: []interface{}{iv.Start, 0}},
			{Value: []interface{}{iv.Start, iv.Top}},
			{Value: []interface{}{iv.End, iv.Top}},
			{Value: []interface{}{iv.End, 0}},
		}
		line.AddSeries(iv.Name, points,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: rgba(iv.Color)}),
			charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: 0.8}),
		)
	}
	return line
}

// WriteHTML renders both interactive charts into one page.
func WriteHTML(w io.Writer, d chart.DensityChart, a chart.AnnotationChart) error {
	page := components.NewPage()
	page.PageTitle = "Variant density"
	page.AddCharts(DensityBarChart(d), AnnotationLineChart(a))
	return page.Render(w)
}

// SaveHTML writes the interactive page to path, overwriting it.
func SaveHTML(path string, d chart.DensityChart, a chart.AnnotationChart) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create html: %w", err)
	}
	if err := WriteHTML(out, d, a); err != nil {
		out.Close()
		return fmt.Errorf("render html: %w", err)
	}
	return out.Close()
}

// barRange returns the indices of the first and last bars whose centre lies
// inside the band, or -1, -1 if none does.
func barRange(bars []chart.Bar, b chart.Band) (int, int) {
	first, last := -1, -1
	for i, bar := range bars {
		if bar.X >= b.Start && bar.X < b.End {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	return first, last
}

func rgba(c color.NRGBA) string {
	return fmt.Sprintf("rgba(%d,%d,%d,%.2f)", c.R, c.G, c.B, float64(c.A)/255)
}
