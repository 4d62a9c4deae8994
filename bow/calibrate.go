// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bow

import (
	"math"

	"github.com/bow-simulation/virtualbow-sub000/fem"
	"github.com/bow-simulation/virtualbow-sub000/roots"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// limbDamping finds the damping coefficient β of the beams such that the lowest mode of the
// unbraced limb has the damping ratio given in the input. It also returns the natural frequency
// of this mode
func (o *Model) limbDamping() (β, ω float64, err error) {
	sys := fem.NewSystem()
	_, beams := addLimb(sys, o.Limb, o.Input.Masses.LimbTip)
	mode, err := fem.MinFrequencyMode(sys)
	if err != nil {
		err = chk.Err("cannot compute the lowest mode of the limb:\n%w", err)
		return
	}
	ω = mode.Omega
	ζ := o.Input.Damping.Limb
	if ζ == 0 {
		return
	}

	// ζ(β) - ζ with the first guess of pure stiffness proportional damping
	f := func(β float64) (float64, error) {
		for _, b := range beams {
			b.SetDamping(β)
		}
		sys.Invalidate()
		mode, err := fem.MinFrequencyMode(sys)
		if err != nil {
			return 0, err
		}
		return mode.Zeta - ζ, nil
	}
	β0 := 2 * ζ / ω
	β, err = roots.Secant(f, β0, 1.1*β0, roots.DefaultSettings())
	if err != nil {
		err = chk.Err("cannot calibrate the limb damping:\n%w", err)
	}
	return
}

// calibrateString finds the rest length L of the half string such that the string center is in
// equilibrium at the brace height without external force. L0 is the length of the initial string
// along the belly, which is slack. Shorter strings pull the limb tips towards the archer and the
// force at the string center changes sign once the tips pass the brace line. The state of the
// system is left at the braced equilibrium
func (o *Model) calibrateString(L0 float64) (L float64, err error) {
	sys := o.Sys
	center := o.Center()
	target := -o.Input.Dimensions.BraceHeight
	solver := fem.NewStaticSolverDC(sys, center.X)
	n := float64(len(o.Bars))

	// force at the string center. The rest length is changed from the last equilibrium Lc in
	// increments that are halved whenever a solution fails; the state of the failed increment is
	// discarded
	Lc := L0
	minStep := StringMinStep * L0
	setLength := func(L float64) {
		for _, bar := range o.Bars {
			bar.SetLength(L / n)
		}
		sys.Invalidate()
	}
	u0 := make([]float64, sys.Ndof())
	p0 := make([]float64, sys.Ndof())
	f := func(L float64) (float64, error) {
		dL := L - Lc
		for Lc != L {
			next := Lc + dL
			if (next-L)*dL > 0 {
				next = L
			}
			copy(u0, sys.U())
			copy(p0, sys.P())
			setLength(next)
			if _, err := solver.Solve(target); err != nil {
				sys.SetUVec(u0)
				sys.SetPVec(p0)
				setLength(Lc)
				dL *= 0.5
				if !(math.Abs(dL) >= minStep) {
					return 0, err
				}
				if o.Verbose {
					io.Pfred("> string length %g: %v\n", next, err)
				}
				continue
			}
			Lc = next
		}
		return sys.GetP(center.X), nil
	}

	search := roots.NewStepSearch(minStep)
	search.Verbose = o.Verbose
	L, err = search.Find(f, L0, -StringInitialStep*L0)
	if err != nil {
		err = chk.Err("cannot find the string length:\n%w", err)
		return
	}
	if o.Verbose {
		io.Pforan("> string length found after %d steps and %d failures\n", search.Steps, search.Failures)
	}
	if _, err = f(L); err != nil {
		err = chk.Err("cannot brace the bow with string length %g:\n%w", L, err)
	}
	return
}
