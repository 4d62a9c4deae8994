// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// PlotSetup draws the limb geometry and cross-sections into dirout/fnkey_setup.png
func PlotSetup(o *Output, dirout, fnkey string) error {
	s := &o.Setup
	fig := NewFigure()
	fig.Splot("profile", "unbraced limb")
	limb := fig.Plot(s.X, s.Y, "x", "y", "")
	limb.Color = ColorLimb
	fig.SplotConfig("m", "m", 1, 1)
	fig.LimbSections(s)
	return fig.Draw(dirout, fnkey+"_setup.png", -1, -1, false)
}

// PlotStatics draws the draw curve, the shapes while drawing, the stresses at full draw and the
// energies into dirout/fnkey_statics.png
func PlotStatics(o *Output, dirout, fnkey string) error {
	if o.Statics == nil {
		return chk.Err("output has no static results")
	}
	st := &o.Statics.States
	fig := NewFigure()

	fig.Splot("draw", "draw curve")
	fig.Plot(st.DrawLength, st.DrawForce, "draw_length", "draw_force", "")
	fig.SplotConfig("m", "N", 1, 1)

	n := st.Len()
	fig.LimbShapes("shapes", "limb and string", st, 0, n/2, n-1)
	fig.LimbStresses("stress", "stresses at full draw", &o.Setup, st, n-1)

	fig.Splot("forces", "string and grip forces")
	fig.Plot(st.DrawLength, st.StringForce, "draw_length", "string_force", "string")
	fig.Plot(st.DrawLength, st.GripForce, "draw_length", "string_force", "grip")
	fig.SplotConfig("m", "N", 1, 1)

	fig.energies(st.DrawLength, "draw_length", "m", st)
	return fig.Draw(dirout, fnkey+"_statics.png", -1, -1, false)
}

// PlotDynamics draws the arrow motion, the forces, the energies and the shapes at departure into
// dirout/fnkey_dynamics.png
func PlotDynamics(o *Output, dirout, fnkey string) error {
	if o.Dynamics == nil {
		return chk.Err("output has no dynamic results")
	}
	dyn := o.Dynamics
	st := &dyn.States
	fig := NewFigure()

	fig.Splot("arrow", "arrow")
	fig.Plot(st.Time, st.PosArrow, "time", "pos_arrow", "position")
	fig.SplotConfig("s", "m", 1, 1)
	fig.Splot("velocity", io.Sf("arrow velocity (exit %.4g m/s)", dyn.ArrowVelocity))
	fig.Plot(st.Time, st.VelArrow, "time", "vel_arrow", "")
	fig.SplotConfig("s", "m/s", 1, 1)

	fig.Splot("forces", "string and grip forces")
	fig.Plot(st.Time, st.StringForce, "time", "string_force", "string")
	fig.Plot(st.Time, st.GripForce, "time", "string_force", "grip")
	fig.SplotConfig("s", "N", 1, 1)

	fig.energies(st.Time, "time", "s", st)

	// state closest to the departure of the arrow
	idep := 0
	for i, t := range st.Time {
		if t <= dyn.ArrowDepartureTime {
			idep = i
		}
	}
	fig.LimbShapes("shapes", "limb and string", st, 0, idep, -1)
	return fig.Draw(dirout, fnkey+"_dynamics.png", -1, -1, false)
}

// energies adds a subplot with the energies versus x
func (o *Figure) energies(x []float64, xkey, xunit string, st *States) {
	o.Splot("energy", "energies")
	o.Plot(x, st.EpotLimbs, xkey, "energy", "limbs (potential)")
	o.Plot(x, st.EkinLimbs, xkey, "energy", "limbs (kinetic)")
	o.Plot(x, st.EpotString, xkey, "energy", "string (potential)")
	o.Plot(x, st.EkinString, xkey, "energy", "string (kinetic)")
	arrow := o.Plot(x, st.EkinArrow, xkey, "energy", "arrow (kinetic)")
	arrow.Color = ColorArrow
	o.SplotConfig(xunit, "J", 1, 1)
}
