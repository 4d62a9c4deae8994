// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package geom implements planar geometry: orientation of point triples, polylines and the
// profile curve of the limb
package geom

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/spatial/r2"
)

// Orientation of three points
type Orientation int

const (
	Clockwise        Orientation = -1
	Collinear        Orientation = 0
	CounterClockwise Orientation = 1
)

// String returns the name of the orientation
func (o Orientation) String() string {
	switch o {
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counterclockwise"
	}
	return "collinear"
}

// Orient returns the orientation of the triple (a, b, c)
func Orient(a, b, c r2.Vec) Orientation {
	z := r2.Cross(r2.Sub(b, a), r2.Sub(c, b))
	switch {
	case z > 0:
		return CounterClockwise
	case z < 0:
		return Clockwise
	}
	return Collinear
}

// ConstantOrientationSubset returns the subset of points such that every three consecutive
// points have the given orientation. The first and the last point are always kept. A point is
// dropped as soon as a later point reverses the orientation, as in the monotone chain algorithm
// for convex hulls; thus a polyline that already has the orientation is returned unchanged
func ConstantOrientationSubset(points []r2.Vec, orientation Orientation) (res []r2.Vec) {
	if orientation == Collinear {
		chk.Panic("ConstantOrientationSubset: orientation must be Clockwise or CounterClockwise")
	}
	res = make([]r2.Vec, 0, len(points))
	for _, p := range points {
		for len(res) >= 2 && Orient(res[len(res)-2], res[len(res)-1], p) != orientation {
			res = res[:len(res)-1]
		}
		res = append(res, p)
	}
	return
}

// Polyline ///////////////////////////////////////////////////////////////////////////////////////

// ArcLengths returns the cumulative lengths along a polyline; s[0] = 0
func ArcLengths(points []r2.Vec) (s []float64) {
	s = make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		s[i] = s[i-1] + r2.Norm(r2.Sub(points[i], points[i-1]))
	}
	return
}

// Resample returns n points equally spaced by arc length along a polyline
func Resample(points []r2.Vec, n int) (res []r2.Vec) {
	if len(points) < 2 || n < 2 {
		chk.Panic("Resample: at least 2 points are required. got %d points; n = %d", len(points), n)
	}
	s := ArcLengths(points)
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}
	var fx, fy interp.PiecewiseLinear
	if err := fx.Fit(s, xs); err != nil {
		chk.Panic("Resample: %v", err)
	}
	if err := fy.Fit(s, ys); err != nil {
		chk.Panic("Resample: %v", err)
	}
	L := s[len(s)-1]
	res = make([]r2.Vec, n)
	for i := 0; i < n; i++ {
		t := L * float64(i) / float64(n-1)
		res[i] = r2.Vec{X: fx.Predict(t), Y: fy.Predict(t)}
	}
	res[0], res[n-1] = points[0], points[len(points)-1]
	return
}
