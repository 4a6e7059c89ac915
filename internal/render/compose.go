package render

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// HeightRatio is the height of the density chart relative to the annotation
// chart.
const HeightRatio = 4.0

// DPI is the resolution of raster output.
const DPI = 300

// Figure is a stacked pair of plots on one canvas.
type Figure struct {
	Top, Bottom *plot.Plot
	Width       vg.Length
	Height      vg.Length
	Ratio       float64
}

// NewFigure stacks top over bottom with HeightRatio on a width×height canvas.
func NewFigure(top, bottom *plot.Plot, width, height vg.Length) *Figure {
	return &Figure{Top: top, Bottom: bottom, Width: width, Height: height, Ratio: HeightRatio}
}

// FormatFromPath returns the output format implied by the file extension.
func FormatFromPath(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// NewCanvas returns an empty canvas of the given format.
func NewCanvas(format string, w, h vg.Length) (vg.CanvasWriterTo, error) {
	switch format {
	case "png", "jpg", "jpeg", "tif", "tiff":
		c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(DPI))
		switch format {
		case "png":
			return vgimg.PngCanvas{Canvas: c}, nil
		case "jpg", "jpeg":
			return vgimg.JpegCanvas{Canvas: c}, nil
		default:
			return vgimg.TiffCanvas{Canvas: c}, nil
		}
	case "svg":
		return vgsvg.New(w, h), nil
	case "pdf":
		return vgpdf.New(w, h), nil
	}
	return nil, fmt.Errorf("unsupported figure format %q", format)
}

// alignSteps bounds the crop passes in layout.
const alignSteps = 4

// Draw renders the figure onto c.
func (f *Figure) Draw(c draw.Canvas) {
	top, bottom := f.layout(c)
	f.Top.Draw(top)
	f.Bottom.Draw(bottom)
}

// layout splits c into the top and bottom canvases with heights in Ratio:1,
// then crops them horizontally until both data areas span the same x range.
func (f *Figure) layout(c draw.Canvas) (top, bottom draw.Canvas) {
	height := c.Max.Y - c.Min.Y
	topH := height * vg.Length(f.Ratio/(f.Ratio+1))

	top = draw.Crop(c, 0, 0, height-topH, 0)
	bottom = draw.Crop(c, 0, 0, 0, -topH)

	for i := 0; i < alignSteps; i++ {
		dt, db := f.Top.DataCanvas(top), f.Bottom.DataCanvas(bottom)
		left := dt.Min.X - db.Min.X
		if left > 0 {
			bottom = draw.Crop(bottom, left, 0, 0, 0)
		} else if left < 0 {
			top = draw.Crop(top, -left, 0, 0, 0)
		}

		dt, db = f.Top.DataCanvas(top), f.Bottom.DataCanvas(bottom)
		right := dt.Max.X - db.Max.X
		if right < 0 {
			bottom = draw.Crop(bottom, 0, right, 0, 0)
		} else if right > 0 {
			top = draw.Crop(top, 0, -right, 0, 0)
		}

		if math.Abs(float64(left)) < 1e-3 && math.Abs(float64(right)) < 1e-3 {
			break
		}
	}
	return top, bottom
}

// Save writes the figure to path in the format named by its extension.
// An existing file is overwritten.
func (f *Figure) Save(path string) error {
	canvas, err := NewCanvas(FormatFromPath(path), f.Width, f.Height)
	if err != nil {
		return err
	}
	f.Draw(draw.New(canvas))

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create figure: %w", err)
	}
	if _, err := canvas.WriteTo(out); err != nil {
		out.Close()
		return fmt.Errorf("write figure: %w", err)
	}
	return out.Close()
}
