// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bow

import (
	"errors"
	"math"
	"testing"

	"github.com/bow-simulation/virtualbow-sub000/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// coarse returns the default bow with few elements
func coarse() *inp.Input {
	input := inp.Default()
	input.Settings.NLimbElements = 10
	input.Settings.NStringElements = 8
	input.Settings.NDrawSteps = 20
	return input
}

func Test_limb01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("limb01. sections of one and two layers")

	// one layer: rectangular section with the reference line at the back
	input := inp.Default()
	limb := NewLimbProperties(input, 4)
	E, ρ, w, h := 12e9, 675.0, 0.04, 0.015
	sec := limb.Sec[0]
	chk.Float64(tst, "Cee", 1e-15*E, sec.Cee, E*w*h)
	chk.Float64(tst, "Cek", 1e-15*E, sec.Cek, -E*w*h*h/2)
	chk.Float64(tst, "Ckk", 1e-15*E, sec.Ckk, E*w*h*h*h/3)
	chk.Float64(tst, "ρA", 1e-15, sec.RhoA, ρ*w*h)
	chk.Float64(tst, "length", 1e-15, limb.Length, 0.8)
	chk.Float64(tst, "width (tip)", 1e-15, limb.Width[4], 0.01)
	chk.Float64(tst, "height (middle)", 1e-15, limb.Height[2], 0.0125)
	chk.Float64(tst, "mass (trapezoidal rule)", 1e-12, limb.Mass(), ρ*0.8*3.265625e-4)

	// straight limb along y starting at half of the handle
	chk.Float64(tst, "x (root)", 1e-15, limb.Pos[0].X, 0)
	chk.Float64(tst, "y (root)", 1e-15, limb.Pos[0].Y, 0.05)
	chk.Float64(tst, "y (tip)", 1e-12, limb.Pos[4].Y, 0.85)
	belly := limb.Belly(0)
	chk.Float64(tst, "belly x (root)", 1e-15, belly.X, -h)

	// stresses of pure bending: tension at the back, compression at the belly
	back, bel := limb.Stresses(0, 0, 2)
	chk.Float64(tst, "σ back", 1e-15, back[0], 0)
	chk.Float64(tst, "σ belly", 1e-15*E, bel[0], -E*h*2)

	// two layers with the same material behave as one
	input.Layers[0].Height = inp.Table{{0, 0.01}}
	input.Layers = append(input.Layers, inp.Layer{Name: "belly", Material: "wood", Height: inp.Table{{0, 0.005}}})
	two := NewLimbProperties(input, 4)
	sec = two.Sec[0]
	chk.Float64(tst, "Cee (2)", 1e-15*E, sec.Cee, E*w*h)
	chk.Float64(tst, "Cek (2)", 1e-15*E, sec.Cek, -E*w*h*h/2)
	chk.Float64(tst, "Ckk (2)", 1e-15*E, sec.Ckk, E*w*h*h*h/3)
	back, bel = two.Stresses(0, 0, 2)
	chk.Array(tst, "σ back (2)", 1e-15*E, back, []float64{0, -E * 0.01 * 2})
	chk.Array(tst, "σ belly (2)", 1e-15*E, bel, []float64{-E * 0.01 * 2, -E * h * 2})
}

func Test_statics01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("statics01. straight bow")

	input := coarse()
	output, err := Run(input, Static, nil, chk.Verbose)
	if err != nil {
		tst.Errorf("Simulate failed:\n%v", err)
		return
	}
	if output.Dynamics != nil {
		tst.Errorf("dynamics should not be computed")
	}
	st := output.Statics
	s := st.States
	chk.Int(tst, "number of states", s.Len(), input.Settings.NDrawSteps+1)
	chk.Float64(tst, "brace height", 1e-9, s.DrawLength[0], input.Dimensions.BraceHeight)
	chk.Float64(tst, "draw length", 1e-9, s.DrawLength[s.Len()-1], input.Dimensions.DrawLength)
	chk.Float64(tst, "braced draw force", 1e-4*st.FinalDrawForce, s.DrawForce[0], 0)
	io.Pforan("final draw force = %v  work = %v  storage ratio = %v\n", st.FinalDrawForce, st.DrawingWork, st.StorageRatio)

	// draw curve
	for i := 1; i < s.Len(); i++ {
		if s.DrawForce[i] < s.DrawForce[i-1] {
			tst.Errorf("draw force decreases at step %d: %g < %g", i, s.DrawForce[i], s.DrawForce[i-1])
			return
		}
	}
	if st.StorageRatio <= 0 || st.StorageRatio > 1 {
		tst.Errorf("storage ratio must be within (0, 1]. got %g", st.StorageRatio)
	}
	chk.Float64(tst, "energy storage factor", 1e-15, st.EnergyStorageFactor, 2*st.StorageRatio)

	// equilibrium: the grip holds the draw force
	for i := 0; i < s.Len(); i++ {
		chk.Float64(tst, io.Sf("grip force %d", i), 1e-3*math.Max(1, s.DrawForce[i]), s.GripForce[i], s.DrawForce[i])
	}

	// the energy stored in the bow equals the drawing work (up to the trapezoidal rule)
	n := s.Len() - 1
	E := s.EpotLimbs[n] + s.EpotString[n] - s.EpotLimbs[0] - s.EpotString[0]
	chk.Float64(tst, "stored energy", 2e-2*st.DrawingWork, E, st.DrawingWork)

	// braced string is shorter than the initial string and the limbs bend towards the archer
	setup := output.Setup
	if setup.StringLength <= 0 || setup.StringLength > 2*0.9 {
		tst.Errorf("unexpected string length %g", setup.StringLength)
	}
	xtip := s.XLimb[0][len(s.XLimb[0])-1]
	if xtip >= 0 {
		tst.Errorf("braced limb tip should move towards the archer. x = %g", xtip)
	}
	chk.Int(tst, "stresses (layers)", len(s.StressBack[n]), 1)
	if s.StressBack[n][0][0] <= 0 || s.StressBelly[n][0][0] >= 0 {
		tst.Errorf("back must be in tension and belly in compression at full draw")
	}
	if st.MaxStress[0] < math.Max(s.StressBack[n][0][0], -s.StressBelly[n][0][0]) {
		tst.Errorf("max stress is smaller than the stress at the root at full draw")
	}
}

func Test_statics02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("statics02. brace height too low and cancellation")

	input := coarse()
	input.Dimensions.BraceHeight = 0.005
	_, err := Simulate(input, Static, nil)
	if !errors.Is(err, ErrBraceHeightTooLow) {
		tst.Errorf("error should be ErrBraceHeightTooLow. got %v", err)
	}

	input = coarse()
	input.Dimensions.DrawLength = 0.1
	if _, err = Simulate(input, Static, nil); !errors.Is(err, inp.ErrInvalidInput) {
		tst.Errorf("error should be ErrInvalidInput. got %v", err)
	}

	// stop after three states
	calls := 0
	output, err := Simulate(coarse(), Dynamic, func(static, dynamic int) bool {
		calls++
		return calls < 3
	})
	if err != nil {
		tst.Errorf("cancellation is not an error. got %v", err)
		return
	}
	chk.Int(tst, "number of states", output.Statics.States.Len(), 3)
	if output.Dynamics != nil {
		tst.Errorf("dynamics should not be computed after cancellation")
	}
}

func Test_dynamics01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dynamics01. shooting the arrow")

	input := coarse()
	var last [2]int
	output, err := Simulate(input, Dynamic, func(static, dynamic int) bool {
		if static < last[0] || dynamic < last[1] {
			tst.Errorf("progress must not decrease: %v after %v", []int{static, dynamic}, last)
		}
		last = [2]int{static, dynamic}
		return true
	})
	if err != nil {
		tst.Errorf("Simulate failed:\n%v", err)
		return
	}
	chk.Ints(tst, "final progress", last[:], []int{100, 100})
	dyn := output.Dynamics
	s := dyn.States
	io.Pforan("departure = %v  velocity = %v  efficiency = %v\n", dyn.ArrowDepartureTime, dyn.ArrowVelocity, dyn.Efficiency)
	if dyn.ArrowDepartureTime <= 0 || dyn.ArrowVelocity <= 0 {
		tst.Errorf("arrow must leave the bow. t = %g, v = %g", dyn.ArrowDepartureTime, dyn.ArrowVelocity)
		return
	}
	if dyn.Efficiency <= 0 || dyn.Efficiency >= 1 {
		tst.Errorf("efficiency must be within (0, 1). got %g", dyn.Efficiency)
	}
	chk.Float64(tst, "arrow energy", 1e-12, dyn.ArrowEnergy, 0.5*input.Masses.Arrow*dyn.ArrowVelocity*dyn.ArrowVelocity)
	chk.Float64(tst, "efficiency", 1e-12, dyn.Efficiency, dyn.ArrowEnergy/output.Statics.DrawingWork)

	// time span and free flight of the arrow
	n := s.Len() - 1
	if s.Time[n] < input.Settings.TimeSpanFactor*dyn.ArrowDepartureTime {
		tst.Errorf("simulation ends too early: %g", s.Time[n])
	}
	for i := 1; i <= n; i++ {
		if s.Time[i] <= s.Time[i-1] {
			tst.Errorf("time must increase")
			return
		}
		if s.Time[i] > dyn.ArrowDepartureTime {
			chk.Float64(tst, io.Sf("arrow velocity %d", i), 1e-6, s.VelArrow[i], dyn.ArrowVelocity)
		}
	}
	chk.Float64(tst, "initial draw length", 1e-9, s.DrawLength[0], input.Dimensions.DrawLength)
	if dyn.MaxStringForce <= 0 || dyn.MaxStress[0] <= 0 {
		tst.Errorf("peak values must be positive")
	}

	// the damped bow does not gain energy
	total := func(i int) float64 {
		return s.EpotLimbs[i] + s.EkinLimbs[i] + s.EpotString[i] + s.EkinString[i] + s.EkinArrow[i]
	}
	E0 := total(0)
	for i := 1; i <= n; i++ {
		if total(i) > 1.02*E0 {
			tst.Errorf("energy grows at t = %g: %g > %g", s.Time[i], total(i), E0)
			return
		}
	}
	io.Pforan("energy: initial = %v  final = %v  arrow = %v\n", E0, total(n), dyn.ArrowEnergy)
	if total(n) >= E0 {
		tst.Errorf("damping must dissipate energy. final = %g, initial = %g", total(n), E0)
	}

	// plausible shot: the arrow leaves close to the brace height after a time of the order of
	// the estimate for a constant draw force
	d := input.Dimensions
	work := output.Statics.DrawingWork
	tEst := (d.DrawLength - d.BraceHeight) * math.Sqrt(2*input.Masses.Arrow/work)
	if dyn.ArrowDepartureTime < 0.5*tEst || dyn.ArrowDepartureTime > 3*tEst {
		tst.Errorf("departure time %g is not within [%g, %g]", dyn.ArrowDepartureTime, 0.5*tEst, 3*tEst)
	}
	idep := 0
	for i := 0; i <= n; i++ {
		if s.Time[i] <= dyn.ArrowDepartureTime {
			idep = i
		}
	}
	if x := s.PosArrow[idep]; x < -d.BraceHeight-0.25*(d.DrawLength-d.BraceHeight) {
		tst.Errorf("arrow leaves the string too early at x = %g", x)
	}
	vmax := math.Sqrt(2 * work / input.Masses.Arrow)
	if dyn.ArrowVelocity < 0.3*vmax || dyn.ArrowVelocity > vmax {
		tst.Errorf("arrow velocity %g is not within [%g, %g]", dyn.ArrowVelocity, 0.3*vmax, vmax)
	}
	if dyn.Efficiency < 0.3 {
		tst.Errorf("efficiency %g is too low", dyn.Efficiency)
	}
}

func Test_dynamics02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dynamics02. separation of the arrow")

	sep := separation{Brace: 0.2, Amin: -20, Tmax: 0.1, Dt: 1e-6}
	for _, c := range []struct {
		t, u, v, a float64
		res        bool
	}{
		{0, -0.7, 0, 1e5, false},        // released
		{1e-6, -0.7, 0.1, -1e3, false},  // first step
		{2e-6, -0.7, -0.1, -1e3, false}, // moving backwards
		{2e-6, -0.7, 0.1, -1e3, true},   // decelerating
		{2e-6, -0.7, 0.1, -10, false},   // clamp holds
		{0.01, -0.2, 50, 1e4, true},     // brace height
		{0.1, -0.5, 10, 1e4, true},      // time limit
		{0.01, -0.3, 50, 1e4, false},    // accelerating
	} {
		if res := sep.Check(c.t, c.u, c.v, c.a); res != c.res {
			tst.Errorf("separation at t=%g u=%g v=%g a=%g should be %v", c.t, c.u, c.v, c.a, c.res)
		}
	}
}
