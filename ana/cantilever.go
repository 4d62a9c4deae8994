// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical and semi-analytical solutions used to verify the elements
// and solvers
package ana

import (
	"math"

	"github.com/bow-simulation/virtualbow-sub000/roots"
	"github.com/cpmech/gosl/chk"
)

// CantileverLinear returns the tip deflection v = PL³/3EI and rotation θ = PL²/2EI of a cantilever
// under a small transverse tip load P
func CantileverLinear(P, L, EI float64) (v, θ float64) {
	v = P * L * L * L / (3 * EI)
	θ = P * L * L / (2 * EI)
	return
}

// CantileverMoment returns the tip position and rotation of a cantilever of length L, clamped at
// the origin along x, bent into a circular arc by a tip moment M
func CantileverMoment(M, L, EI float64) (x, y, θ float64) {
	θ = M * L / EI
	if θ == 0 {
		return L, 0, 0
	}
	R := EI / M
	x = R * math.Sin(θ)
	y = R * (1 - math.Cos(θ))
	return
}

// Elastica computes the large deflection of a cantilever of length L clamped at the origin along
// x under a transverse tip load P of fixed direction (+y). The angle θ(s) satisfies
//
//   EI⋅θ'' = -P⋅cos θ     θ(0) = 0     θ'(L) = 0
//
// which is solved by shooting on the root curvature κ₀ = θ'(0) ∈ [0, PL/EI] with RK4
type Elastica struct {
	P     float64 // tip load
	L     float64 // length
	EI    float64 // bending stiffness
	Nstep int     // number of integration steps

	// results
	Kappa0 float64 // root curvature
	X, Y   float64 // tip position
	Theta  float64 // tip rotation
}

// Init solves the problem
func (o *Elastica) Init(P, L, EI float64) {
	o.P, o.L, o.EI = P, L, EI
	if o.Nstep == 0 {
		o.Nstep = 2000
	}
	if P == 0 {
		o.X, o.Y, o.Theta = L, 0, 0
		return
	}
	kmax := P * L / EI
	f := func(κ0 float64) (float64, error) {
		y := o.integrate(κ0)
		return y[1], nil
	}
	fa, _ := f(0)
	fb, _ := f(kmax)
	κ0, err := roots.Bisection(f, 0, kmax, fa, fb, roots.Settings{Xtol: 1e-15, Ftol: 1e-15, MaxIter: 200})
	if err != nil {
		chk.Panic("Elastica: shooting failed: %v", err)
	}
	y := o.integrate(κ0)
	o.Kappa0 = κ0
	o.Theta, o.X, o.Y = y[0], y[2], y[3]
}

// integrate integrates y = {θ, θ', x, y} from s = 0 to L
func (o *Elastica) integrate(κ0 float64) []float64 {
	y := []float64{0, κ0, 0, 0}
	h := o.L / float64(o.Nstep)
	rhs := func(f, y []float64) {
		f[0] = y[1]
		f[1] = -o.P / o.EI * math.Cos(y[0])
		f[2] = math.Cos(y[0])
		f[3] = math.Sin(y[0])
	}
	var k1, k2, k3, k4, tmp [4]float64
	for i := 0; i < o.Nstep; i++ {
		rhs(k1[:], y)
		for j := range y {
			tmp[j] = y[j] + 0.5*h*k1[j]
		}
		rhs(k2[:], tmp[:])
		for j := range y {
			tmp[j] = y[j] + 0.5*h*k2[j]
		}
		rhs(k3[:], tmp[:])
		for j := range y {
			tmp[j] = y[j] + h*k3[j]
		}
		rhs(k4[:], tmp[:])
		for j := range y {
			y[j] += h / 6 * (k1[j] + 2*k2[j] + 2*k3[j] + k4[j])
		}
	}
	return y
}
