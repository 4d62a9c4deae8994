// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/spatial/r2"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func coords(points []r2.Vec) (x, y []float64) {
	for _, p := range points {
		x = append(x, p.X)
		y = append(y, p.Y)
	}
	return
}

func Test_orient01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("orient01. orientation of triples")

	a, b := r2.Vec{X: 0, Y: 0}, r2.Vec{X: 1, Y: 0}
	chk.Int(tst, "ccw", int(Orient(a, b, r2.Vec{X: 2, Y: 1})), int(CounterClockwise))
	chk.Int(tst, "cw", int(Orient(a, b, r2.Vec{X: 2, Y: -1})), int(Clockwise))
	chk.Int(tst, "collinear", int(Orient(a, b, r2.Vec{X: 2, Y: 0})), int(Collinear))
	chk.String(tst, Clockwise.String(), "clockwise")
}

func Test_subset01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("subset01. constant orientation subset")

	// convex arc: already counterclockwise
	var arc []r2.Vec
	for i := 0; i <= 10; i++ {
		θ := math.Pi * float64(i) / 10
		arc = append(arc, r2.Vec{X: math.Cos(θ), Y: math.Sin(θ)})
	}
	res := ConstantOrientationSubset(arc, CounterClockwise)
	x0, y0 := coords(arc)
	x1, y1 := coords(res)
	chk.Array(tst, "x (idempotent)", 1e-17, x1, x0)
	chk.Array(tst, "y (idempotent)", 1e-17, y1, y0)
	x2, y2 := coords(ConstantOrientationSubset(res, CounterClockwise))
	chk.Array(tst, "x (twice)", 1e-17, x2, x1)
	chk.Array(tst, "y (twice)", 1e-17, y2, y1)

	// dent in the middle of the arc is removed
	dented := append([]r2.Vec{}, arc...)
	dented[5] = r2.Vec{X: 0, Y: 0.5}
	res = ConstantOrientationSubset(dented, CounterClockwise)
	io.Pforan("len(res) = %d\n", len(res))
	if len(res) >= len(dented) {
		tst.Errorf("subset should be smaller: %d >= %d", len(res), len(dented))
	}
	chk.Float64(tst, "first x", 1e-17, res[0].X, dented[0].X)
	chk.Float64(tst, "last x", 1e-17, res[len(res)-1].X, dented[len(dented)-1].X)
	for i := 2; i < len(res); i++ {
		if Orient(res[i-2], res[i-1], res[i]) != CounterClockwise {
			tst.Errorf("triple %d is not counterclockwise", i)
		}
	}

	// zigzag against the wanted orientation collapses to the end points
	zigzag := []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}, {X: 3, Y: 1}, {X: 4, Y: 0}}
	res = ConstantOrientationSubset(zigzag, CounterClockwise)
	x, y := coords(res)
	chk.Array(tst, "zigzag x", 1e-17, x, []float64{0, 4})
	chk.Array(tst, "zigzag y", 1e-17, y, []float64{0, 0})
}

func Test_resample01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("resample01. equally spaced points")

	points := []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 3}}
	chk.Array(tst, "arc lengths", 1e-15, ArcLengths(points), []float64{0, 1, 4})
	x, y := coords(Resample(points, 5))
	chk.Array(tst, "x", 1e-15, x, []float64{0, 1, 1, 1, 1})
	chk.Array(tst, "y", 1e-15, y, []float64{0, 0, 1, 2, 3})
}

func Test_profile01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("profile01. line and arc")

	R := 2.0
	p := NewProfile(r2.Vec{X: 1, Y: 0}, math.Pi/2, []Segment{
		{Length: 0.5, K0: 0, K1: 0},
		{Length: math.Pi * R / 2, K0: 1 / R, K1: 1 / R},
	})
	chk.Float64(tst, "length", 1e-15, p.Length(), 0.5+math.Pi*R/2)

	// end of the line
	q := p.Point(0.5)
	chk.Float64(tst, "x(0.5)", 1e-14, q.X, 1)
	chk.Float64(tst, "y(0.5)", 1e-14, q.Y, 0.5)

	// on the arc: centre at (1-R, 0.5)
	for _, t := range []float64{0.3, 1.7, math.Pi * R / 2} {
		s := 0.5 + t
		θ := t / R
		q = p.Point(s)
		chk.Float64(tst, io.Sf("x(%g)", s), 1e-13, q.X, 1-R+R*math.Cos(θ))
		chk.Float64(tst, io.Sf("y(%g)", s), 1e-13, q.Y, 0.5+R*math.Sin(θ))
		chk.Float64(tst, io.Sf("φ(%g)", s), 1e-14, p.Angle(s), math.Pi/2+θ)
		chk.Float64(tst, io.Sf("κ(%g)", s), 1e-15, p.Curvature(s), 1/R)
	}

	// clamped beyond the end
	end := p.Point(p.Length())
	q = p.Point(p.Length() + 1)
	chk.Float64(tst, "clamped x", 1e-15, q.X, end.X)
}

func Test_profile02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("profile02. clothoid")

	p := NewProfile(r2.Vec{}, 0, []Segment{
		{Length: 1, K0: 0, K1: 2},
		{Length: 0.5, K0: 2, K1: -1},
	})
	chk.Float64(tst, "φ(end)", 1e-14, p.Angle(p.Length()), 1+0.5*(2-1)/2)

	// derivative of the position is the tangent
	h := 1e-5
	for _, s := range []float64{0.1, 0.5, 0.99, 1.2, 1.45} {
		a, b := p.Point(s-h), p.Point(s+h)
		φ := p.Angle(s)
		chk.AnaNum(tst, io.Sf("dx/ds(%g)", s), 1e-9, math.Cos(φ), (b.X-a.X)/(2*h), chk.Verbose)
		chk.AnaNum(tst, io.Sf("dy/ds(%g)", s), 1e-9, math.Sin(φ), (b.Y-a.Y)/(2*h), chk.Verbose)
	}

	// sampling
	s, points, angles := p.Sample(3)
	chk.Array(tst, "s", 1e-15, s, []float64{0, 0.5, 1, 1.5})
	chk.Float64(tst, "φ(0.5)", 1e-15, angles[1], 0.25)
	chk.Float64(tst, "x(0)", 1e-15, points[0].X, 0)
}
