package chart

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	DefaultPNGWidth  = 12 * vg.Inch
	DefaultPNGHeight = 8 * vg.Inch
)

// WritePNG draws a static version of the chart. gonum/plot has no secondary
// y-axis, so each trace gets its own panel; the panels are stacked and share
// the year axis range.
func WritePNG(w io.Writer, spec *Spec, width, height vg.Length) error {
	if len(spec.Traces) == 0 {
		return fmt.Errorf("chart has no traces")
	}

	bg, err := ParseColor(spec.Style.BackgroundColor)
	if err != nil {
		return err
	}
	plotBG, err := ParseColor(spec.Style.PlotBackgroundColor)
	if err != nil {
		return err
	}
	lo, hi, _ := spec.xRange()

	plots := make([][]*plot.Plot, len(spec.Traces))
	for i, tr := range spec.Traces {
		p := plot.New()
		p.BackgroundColor = plotBG
		if i == 0 {
			p.Title.Text = spec.Title
			p.Title.TextStyle.Font.Size = vg.Points(14)
		}
		if i == len(spec.Traces)-1 {
			p.X.Label.Text = spec.XAxisLabel
		}
		p.Y.Label.Text = spec.YAxisLabel
		if tr.Secondary {
			p.Y.Label.Text = spec.Y2AxisLabel
		}

		// Pad by half a year so the end markers are not clipped.
		p.X.Min = float64(lo) - 0.5
		p.X.Max = float64(hi) + 0.5
		p.X.Tick.Marker = yearTicker{}

		c, err := ParseColor(tr.Color)
		if err != nil {
			return err
		}

		pts := make(plotter.XYs, len(tr.Values))
		for j := range tr.Values {
			pts[j].X = float64(tr.Years[j])
			pts[j].Y = tr.Values[j]
		}
		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return fmt.Errorf("error plotting %s: %w", tr.Name, err)
		}
		line.Color = c
		line.Width = vg.Points(2)
		points.Color = c
		points.Shape = draw.CircleGlyph{}
		points.Radius = vg.Points(3)

		p.Add(plotter.NewGrid(), line, points)
		p.Legend.Add(tr.Name, line, points)
		p.Legend.Top = true

		plots[i] = []*plot.Plot{p}
	}

	img := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseBackgroundColor(bg))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      1,
		PadX:      vg.Millimeter,
		PadY:      vg.Millimeter,
		PadTop:    vg.Points(4),
		PadBottom: vg.Points(4),
		PadLeft:   vg.Points(4),
		PadRight:  vg.Points(8),
	}

	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return fmt.Errorf("error encoding PNG: %w", err)
	}
	return nil
}

// PNGRenderer writes the static chart to a PNG file.
type PNGRenderer struct {
	Path   string
	Width  vg.Length
	Height vg.Length
}

func NewPNGRenderer(path string) *PNGRenderer {
	return &PNGRenderer{Path: path, Width: DefaultPNGWidth, Height: DefaultPNGHeight}
}

func (r *PNGRenderer) Render(ctx context.Context, spec *Spec) error {
	return writeFile(r.Path, func(w io.Writer) error {
		return WritePNG(w, spec, r.Width, r.Height)
	})
}

// yearTicker places ticks on whole years only.
type yearTicker struct{}

func (yearTicker) Ticks(min, max float64) []plot.Tick {
	first := int(math.Ceil(min))
	last := int(math.Floor(max))
	if last < first {
		return nil
	}

	step := 1
	if span := last - first; span > 10 {
		step = int(math.Ceil(float64(span) / 10))
	}

	var ticks []plot.Tick
	for y := first; y <= last; y++ {
		t := plot.Tick{Value: float64(y)}
		if (y-first)%step == 0 {
			t.Label = strconv.Itoa(y)
		}
		ticks = append(ticks, t)
	}
	return ticks
}
