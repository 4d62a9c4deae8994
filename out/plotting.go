// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bufio"
	"image/color"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// PltEntity stores all data for a plot entity (X vs Y)
type PltEntity struct {
	Label  string      // legend entry; use "" for none
	X      []float64   // x-values
	Y      []float64   // y-values
	Xkey   string      // key of x-values; e.g. "draw_length"
	Ykey   string      // key of y-values; e.g. "draw_force"
	Color  color.Color // line color; nil means the next default color
	Dashed bool        // dashed line
}

// SplotDat stores all data for one subplot
type SplotDat struct {
	Id     string       // unique identifier
	Title  string       // title of subplot
	Xscale float64      // x-axis scale
	Yscale float64      // y-axis scale
	Xrange []float64    // x range
	Yrange []float64    // y range
	Xlbl   string       // x-axis label (formatted; e.g. "draw length [m]")
	Ylbl   string       // y-axis label
	Data   []*PltEntity // data and styles to be plotted
}

// Figure holds a number of subplots drawn into one PNG file or into one file per subplot
type Figure struct {
	Splots []*SplotDat // all subplots
	Csplot *SplotDat   // current subplot
	Width  vg.Length   // width of each subplot
	Height vg.Length   // height of each subplot
	DPI    int         // resolution
}

// NewFigure returns a new figure with default sizes
func NewFigure() *Figure {
	return &Figure{Width: 4 * vg.Inch, Height: 3 * vg.Inch, DPI: 96}
}

// Splot activates a new subplot window
func (o *Figure) Splot(id, splotTitle string) {
	s := &SplotDat{Id: id, Title: splotTitle}
	o.Splots = append(o.Splots, s)
	o.Csplot = s
}

// SplotConfig configures units and scales of axes
func (o *Figure) SplotConfig(xunit, yunit string, xscale, yscale float64) {
	if o.Csplot == nil {
		return
	}
	var xkey, ykey string
	if len(o.Csplot.Data) > 0 {
		xkey = o.Csplot.Data[0].Xkey
		ykey = o.Csplot.Data[0].Ykey
	}
	o.Csplot.Xlbl = GetLabel(xkey, xunit)
	o.Csplot.Ylbl = GetLabel(ykey, yunit)
	o.Csplot.Xscale = xscale
	o.Csplot.Yscale = yscale
}

// Plot adds a curve to the current subplot and returns it for further styling
//  xkey, ykey -- keys of the quantities; e.g. "draw_length" and "draw_force"
//  label      -- legend entry
func (o *Figure) Plot(x, y []float64, xkey, ykey, label string) *PltEntity {
	if len(x) != len(y) {
		chk.Panic("lengths of x- and y-series are different. len(x)=%d, len(y)=%d", len(x), len(y))
	}
	e := &PltEntity{Label: label, X: x, Y: y, Xkey: xkey, Ykey: ykey}
	if o.Csplot == nil {
		o.Splot(io.Sf("%d", len(o.Splots)), "")
	}
	o.Csplot.Data = append(o.Csplot.Data, e)
	if len(o.Csplot.Data) == 1 {
		o.SplotConfig("", "", 1, 1)
	}
	return e
}

// Draw saves the figure as PNG
//  dirout -- directory to save figure; created if needed
//  fname  -- file name; e.g. myplot.png
//  nr     -- number of rows. Use -1 to compute best value
//  nc     -- number of columns. Use -1 to compute best value
//  split  -- split subplots into separated figures named fname_id.png
func (o *Figure) Draw(dirout, fname string, nr, nc int, split bool) (err error) {
	nplots := len(o.Splots)
	if nplots == 0 {
		return chk.Err("figure %q has no subplots", fname)
	}
	plots := make([]*plot.Plot, nplots)
	for k, spl := range o.Splots {
		if plots[k], err = spl.plot(); err != nil {
			return
		}
	}
	fnk, ext := io.FnKey(fname), io.FnExt(fname)
	if ext == "" {
		ext = ".png"
	}
	if split {
		for k, p := range plots {
			fn := io.Sf("%s_%s%s", fnk, o.Splots[k].Id, ext)
			if err = o.savefig(dirout, fn, [][]*plot.Plot{{p}}); err != nil {
				return
			}
		}
		return
	}
	if nr < 0 || nc < 0 {
		nr, nc = utl.BestSquare(nplots)
	}
	if nr*nc < nplots {
		return chk.Err("grid of %d×%d is too small for %d subplots", nr, nc, nplots)
	}
	grid := make([][]*plot.Plot, nr)
	for i := 0; i < nr; i++ {
		grid[i] = make([]*plot.Plot, nc)
		for j := 0; j < nc; j++ {
			if k := i*nc + j; k < nplots {
				grid[i][j] = plots[k]
			}
		}
	}
	return o.savefig(dirout, fnk+ext, grid)
}

// auxiliary /////////////////////////////////////////////////////////////////////////////////////////

// plot converts the subplot data into a gonum plot
func (o *SplotDat) plot() (p *plot.Plot, err error) {
	p = plot.New()
	p.Title.Text = o.Title
	p.X.Label.Text = o.Xlbl
	p.Y.Label.Text = o.Ylbl
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	for i, d := range o.Data {
		pts := make(plotter.XYs, len(d.X))
		x, y := scaled(d.X, o.Xscale), scaled(d.Y, o.Yscale)
		for j := range pts {
			pts[j].X, pts[j].Y = x[j], y[j]
		}
		line, e := plotter.NewLine(pts)
		if e != nil {
			return nil, chk.Err("cannot plot %q in subplot %q:\n%v", d.Label, o.Id, e)
		}
		line.Color = d.Color
		if line.Color == nil {
			line.Color = plotutil.Color(i)
		}
		line.Width = vg.Points(1.5)
		if d.Dashed {
			line.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		}
		p.Add(line)
		if d.Label != "" {
			p.Legend.Add(d.Label, line)
		}
	}
	if len(o.Xrange) == 2 {
		p.X.Min, p.X.Max = o.Xrange[0], o.Xrange[1]
	}
	if len(o.Yrange) == 2 {
		p.Y.Min, p.Y.Max = o.Yrange[0], o.Yrange[1]
	}
	return
}

// savefig draws a grid of plots into a PNG file
func (o *Figure) savefig(dirout, fn string, grid [][]*plot.Plot) (err error) {
	nr, nc := len(grid), len(grid[0])
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(nc)*o.Width, vg.Length(nr)*o.Height),
		vgimg.UseDPI(o.DPI),
	)
	dc := draw.New(c)
	tiles := draw.Tiles{
		Rows: nr, Cols: nc,
		PadX: vg.Millimeter, PadY: vg.Millimeter,
		PadTop: vg.Points(2), PadBottom: vg.Points(2), PadLeft: vg.Points(2), PadRight: vg.Points(2),
	}
	canvases := plot.Align(grid, tiles, dc)
	for i := range grid {
		for j, p := range grid[i] {
			if p != nil {
				p.Draw(canvases[i][j])
			}
		}
	}
	if dirout != "" {
		if err = os.MkdirAll(dirout, 0755); err != nil {
			return chk.Err("cannot create directory %q:\n%v", dirout, err)
		}
	}
	path := filepath.Join(dirout, fn)
	f, err := os.Create(path)
	if err != nil {
		return chk.Err("cannot create figure file %q:\n%v", path, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if _, err = (vgimg.PngCanvas{Canvas: c}).WriteTo(w); err != nil {
		return chk.Err("cannot write figure %q:\n%v", path, err)
	}
	return w.Flush()
}

// scaled returns a scaled copy of v; v itself if scale is zero or one
func scaled(v []float64, scale float64) []float64 {
	if scale == 0 || scale == 1 {
		return v
	}
	res := make([]float64, len(v))
	floats.ScaleTo(res, scale, v)
	return res
}
