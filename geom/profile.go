// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/spatial/r2"
)

// number of Gauss-Legendre points per integration interval
const profileQuadPoints = 32

// Segment is a piece of curve with linearly varying curvature (clothoid). Constant curvature
// gives an arc and zero curvature a line
type Segment struct {
	Length float64 `json:"length" yaml:"length"` // arc length
	K0     float64 `json:"k0" yaml:"k0"`         // curvature at the start
	K1     float64 `json:"k1" yaml:"k1"`         // curvature at the end
}

// Profile is a planar curve made of clothoid segments, parametrised by arc length s:
//
//   φ(s) = φ₀ + ∫ κ ds     x(s) = x₀ + ∫ cos φ ds     y(s) = y₀ + ∫ sin φ ds
//
type Profile struct {
	Start    r2.Vec    // point at s = 0
	Angle0   float64   // angle at s = 0
	Segments []Segment // segments

	s0   []float64 // arc length at the start of each segment
	p0   []r2.Vec  // point at the start of each segment
	phi0 []float64 // angle at the start of each segment
}

// NewProfile returns a new profile
func NewProfile(start r2.Vec, angle0 float64, segments []Segment) (o *Profile) {
	if len(segments) == 0 {
		chk.Panic("NewProfile: at least one segment is required")
	}
	o = &Profile{Start: start, Angle0: angle0, Segments: segments}
	n := len(segments)
	o.s0 = make([]float64, n+1)
	o.p0 = make([]r2.Vec, n+1)
	o.phi0 = make([]float64, n+1)
	o.p0[0], o.phi0[0] = start, angle0
	for i, seg := range segments {
		if seg.Length <= 0 {
			chk.Panic("NewProfile: length of segment %d must be positive. got %g", i, seg.Length)
		}
		o.s0[i+1] = o.s0[i] + seg.Length
		o.p0[i+1] = o.local(i, seg.Length)
		o.phi0[i+1] = o.phi0[i] + seg.Length*(seg.K0+seg.K1)/2
	}
	return
}

// Length returns the total arc length
func (o *Profile) Length() float64 { return o.s0[len(o.s0)-1] }

// Curvature returns κ(s)
func (o *Profile) Curvature(s float64) float64 {
	i, t := o.find(s)
	seg := o.Segments[i]
	return seg.K0 + (seg.K1-seg.K0)*t/seg.Length
}

// Angle returns φ(s)
func (o *Profile) Angle(s float64) float64 {
	i, t := o.find(s)
	return o.angle(i, t)
}

// Point returns the position at s
func (o *Profile) Point(s float64) r2.Vec {
	i, t := o.find(s)
	return o.local(i, t)
}

// Sample returns n+1 equally spaced arc lengths with the corresponding points and angles
func (o *Profile) Sample(n int) (s []float64, points []r2.Vec, angles []float64) {
	s = make([]float64, n+1)
	points = make([]r2.Vec, n+1)
	angles = make([]float64, n+1)
	for k := 0; k <= n; k++ {
		s[k] = o.Length() * float64(k) / float64(n)
		points[k] = o.Point(s[k])
		angles[k] = o.Angle(s[k])
	}
	return
}

// find returns the segment containing s and the arc length within it; s is clamped
func (o *Profile) find(s float64) (i int, t float64) {
	s = math.Max(0, math.Min(s, o.Length()))
	i = sort.SearchFloat64s(o.s0[1:], s)
	if i >= len(o.Segments) {
		i = len(o.Segments) - 1
	}
	return i, s - o.s0[i]
}

// angle returns the angle at arc length t within segment i
func (o *Profile) angle(i int, t float64) float64 {
	seg := o.Segments[i]
	return o.phi0[i] + seg.K0*t + (seg.K1-seg.K0)*t*t/(2*seg.Length)
}

// local integrates the position from the start of segment i to the arc length t within it
func (o *Profile) local(i int, t float64) r2.Vec {
	if t == 0 {
		return o.p0[i]
	}
	dx := quad.Fixed(func(τ float64) float64 { return math.Cos(o.angle(i, τ)) }, 0, t, profileQuadPoints, quad.Legendre{}, 0)
	dy := quad.Fixed(func(τ float64) float64 { return math.Sin(o.angle(i, τ)) }, 0, t, profileQuadPoints, quad.Legendre{}, 0)
	return r2.Add(o.p0[i], r2.Vec{X: dx, Y: dy})
}
