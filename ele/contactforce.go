// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// ContactForce implements a penalty force law f(e) on the penetration e. It is quadratic up to
// e = ε and linear with slope k beyond, hence f and df/de are continuous
//
//   f(e) = k/(2ε)⋅e²        0 ≤ e ≤ ε
//   f(e) = k⋅(e - ε/2)      e > ε
//
type ContactForce struct {
	K       float64 // stiffness
	Epsilon float64 // transition penetration
}

// Force returns f(e)
func (o ContactForce) Force(e float64) float64 {
	switch {
	case e <= 0:
		return 0
	case e <= o.Epsilon:
		return o.K / (2 * o.Epsilon) * e * e
	}
	return o.K * (e - o.Epsilon/2)
}

// Stiffness returns df/de
func (o ContactForce) Stiffness(e float64) float64 {
	switch {
	case e <= 0:
		return 0
	case e <= o.Epsilon:
		return o.K / o.Epsilon * e
	}
	return o.K
}

// Energy returns the integral of f from 0 to e
func (o ContactForce) Energy(e float64) float64 {
	switch {
	case e <= 0:
		return 0
	case e <= o.Epsilon:
		return o.K / (6 * o.Epsilon) * e * e * e
	}
	return o.K*o.Epsilon*o.Epsilon/6 + o.K/2*(e*e-o.Epsilon*e)
}
