// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"math"

	"github.com/cpmech/gosl/io"
)

// LimbShapes adds a subplot with the shapes of limb and string at the selected states. The lower
// half of the bow is obtained by mirroring about the x-axis
//  idx -- indices of states; use -1 for the last one
func (o *Figure) LimbShapes(id, title string, st *States, idx ...int) {
	o.Splot(id, title)
	n := st.Len()
	for k, i := range idx {
		if i < 0 {
			i = n - 1
		}
		if i >= n {
			continue
		}
		label := io.Sf("state %d", i)
		if st.Time[i] > 0 {
			label = io.Sf("t = %.4g s", st.Time[i])
		}
		xl, yl := mirrored(st.XLimb[i], st.YLimb[i])
		xs, ys := mirrored(reversed(st.XString[i]), reversed(st.YString[i]))
		limb := o.Plot(xl, yl, "x", "y", label)
		limb.Color = ColorLimb
		str := o.Plot(xs, ys, "x", "y", "")
		str.Color = ColorString
		if k > 0 {
			limb.Dashed, str.Dashed = true, true
		}
	}
	o.SplotConfig("m", "m", 1, 1)
}

// LimbStresses adds a subplot with the stresses at back (solid) and belly (dashed) of each layer
// along the limb at state i. Use i = -1 for the last state
func (o *Figure) LimbStresses(id, title string, setup *Setup, st *States, i int) {
	if i < 0 {
		i = st.Len() - 1
	}
	o.Splot(id, title)
	for k, name := range setup.Layers {
		back := o.Plot(setup.S, st.StressBack[i][k], "s", "stress", name+" (back)")
		back.Color = LayerColor(k)
		belly := o.Plot(setup.S, st.StressBelly[i][k], "s", "stress", name+" (belly)")
		belly.Color = LayerColor(k)
		belly.Dashed = true
	}
	o.SplotConfig("m", "MPa", 1, 1e-6)
}

// LimbSections adds two subplots with the cross-section dimensions and stiffnesses along the limb
func (o *Figure) LimbSections(setup *Setup) {
	o.Splot("sections", "cross sections")
	o.Plot(setup.S, setup.Width, "s", "width", "width")
	o.Plot(setup.S, setup.Height, "s", "width", "height")
	o.SplotConfig("m", "m", 1, 1)
	o.Csplot.Ylbl = GetLabel("width and height", "m")

	o.Splot("stiffness", "stiffness (normalised)")
	o.Plot(setup.S, normalised(setup.Cee), "s", "stiffness", "longitudinal")
	o.Plot(setup.S, normalised(setup.Ckk), "s", "stiffness", "bending")
	o.SplotConfig("m", "", 1, 1)
}

// auxiliary /////////////////////////////////////////////////////////////////////////////////////////

// mirrored returns the coordinates of the whole bow given the upper half starting at the x-axis
func mirrored(x, y []float64) (X, Y []float64) {
	n := len(x)
	X = make([]float64, 2*n)
	Y = make([]float64, 2*n)
	for i := 0; i < n; i++ {
		X[i], Y[i] = x[n-1-i], -y[n-1-i]
		X[n+i], Y[n+i] = x[i], y[i]
	}
	return
}

// reversed returns a copy of v in reverse order
func reversed(v []float64) []float64 {
	res := make([]float64, len(v))
	for i, a := range v {
		res[len(v)-1-i] = a
	}
	return res
}

// normalised returns v divided by its largest absolute value
func normalised(v []float64) []float64 {
	var vmax float64
	for _, a := range v {
		vmax = math.Max(vmax, math.Abs(a))
	}
	res := make([]float64, len(v))
	if vmax == 0 {
		return res
	}
	for i, a := range v {
		res[i] = a / vmax
	}
	return res
}
