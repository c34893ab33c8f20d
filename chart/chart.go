// Package chart renders flux series to PNG images.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/synaptecltd/flicker"
)

// Size of the rendered image in inches, and its resolution.
const (
	widthIn  = 8
	heightIn = 4.5
	dpi      = 150
)

var palette = []color.RGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
}

// FramePlot returns a plot of per-frame flux against time, one line per series.
// Frame 0 is omitted since it is never evaluated.
func FramePlot(title string, series map[string]flicker.FrameSeries) (*plot.Plot, error) {
	if len(series) == 0 {
		return nil, errors.New("no series to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "integrated flux"
	p.Add(plotter.NewGrid())

	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		s := series[name]
		pts := make(plotter.XYs, 0, s.Len())
		for j := 1; j < s.Len(); j++ {
			pts = append(pts, plotter.XY{X: s.Time[j], Y: s.Phi[j]})
		}
		if err := addLine(p, name, pts, i); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// SweepPlot returns a plot of flux against exposure start phase.
func SweepPlot(title string, phases, phi []float64) (*plot.Plot, error) {
	if len(phases) != len(phi) {
		return nil, fmt.Errorf("phase and flux lengths differ: %d != %d", len(phases), len(phi))
	}
	if len(phases) == 0 {
		return nil, errors.New("no samples to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "exposure start phase (ms)"
	p.Y.Label.Text = "integrated flux"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(phases))
	for i := range phases {
		pts[i].X = phases[i]
		pts[i].Y = phi[i]
	}
	if err := addLine(p, "", pts, 0); err != nil {
		return nil, err
	}
	return p, nil
}

func addLine(p *plot.Plot, name string, pts plotter.XYs, i int) error {
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = palette[i%len(palette)]
	p.Add(line)
	if name != "" {
		p.Legend.Add(name, line)
	}
	return nil
}

// SavePNG renders p to a PNG file at path.
func SavePNG(p *plot.Plot, path string) error {
	w := vg.Length(widthIn) * vg.Inch
	h := vg.Length(heightIn) * vg.Inch

	c := vgimg.NewWith(
		vgimg.UseWH(w, h),
		vgimg.UseDPI(dpi),
	)
	p.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
