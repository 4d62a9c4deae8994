// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import "math"

// Oscillator is a damped single-degree-of-freedom oscillator m⋅ü + c⋅u̇ + k⋅u = 0 (underdamped)
type Oscillator struct {
	M, C, K float64 // mass, damping and stiffness
	U0, V0  float64 // initial displacement and velocity
}

// Omega returns the undamped natural frequency
func (o Oscillator) Omega() float64 { return math.Sqrt(o.K / o.M) }

// Zeta returns the damping ratio
func (o Oscillator) Zeta() float64 { return o.C / (2 * math.Sqrt(o.K*o.M)) }

// Period returns the undamped period
func (o Oscillator) Period() float64 { return 2 * math.Pi / o.Omega() }

// U returns the displacement at time t:
//
//   u(t) = e^(-ζωt)⋅(A⋅sin ω_d t + B⋅cos ω_d t)
//
func (o Oscillator) U(t float64) float64 {
	ω, ζ := o.Omega(), o.Zeta()
	ωd := ω * math.Sqrt(1-ζ*ζ)
	B := o.U0
	A := (o.V0 + ζ*ω*o.U0) / ωd
	return math.Exp(-ζ*ω*t) * (A*math.Sin(ωd*t) + B*math.Cos(ωd*t))
}
