// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import "math"

// TwoBarTruss holds a symmetric truss made of two bars from the supports (±B, 0) to the apex
// (0, H). The bars are unstressed in this configuration
//
//              o (0, H)
//            ,' ',
//          ,'     ',
//    ////o'         'o////
//      (-B, 0)    (B, 0)
//
type TwoBarTruss struct {
	B  float64 // half span
	H  float64 // initial height of the apex
	EA float64 // axial stiffness of the bars
}

// RestLength returns the length of the unstressed bars
func (o TwoBarTruss) RestLength() float64 { return math.Hypot(o.B, o.H) }

// Force returns the vertical force on the apex holding it at height s:
//
//   F(s) = 2⋅EA⋅s⋅(L - L₀)/(L⋅L₀)    with L = √(B² + s²)
//
func (o TwoBarTruss) Force(s float64) float64 {
	L0 := o.RestLength()
	L := math.Hypot(o.B, s)
	return 2 * o.EA * s * (L - L0) / (L * L0)
}

// LinearDeflection returns the small vertical deflection of the apex under a vertical load P:
// δ = P⋅L₀³/(2⋅EA⋅H²)
func (o TwoBarTruss) LinearDeflection(P float64) float64 {
	L0 := o.RestLength()
	return P * L0 * L0 * L0 / (2 * o.EA * o.H * o.H)
}
