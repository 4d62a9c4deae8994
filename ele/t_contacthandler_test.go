// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"math"
	"testing"

	"github.com/bow-simulation/virtualbow-sub000/fem"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r2"
)

// bruteForce returns the pairs of segments and points whose bounding boxes overlap, computed
// from scratch
func bruteForce(sys *fem.System, o *ContactHandler) (keys []ContactKey) {
	for i := 0; i < len(o.Surface)-1; i++ {
		x0, y0, φ0 := sys.NodeU(o.Surface[i])
		x1, y1, φ1 := sys.NodeU(o.Surface[i+1])
		P0 := r2.Vec{X: x0, Y: y0}
		P1 := r2.Vec{X: x1, Y: y1}
		box := boundingBox(P0, P1, r2.Add(P0, r2.Scale(o.Heights[i], normal(φ0))), r2.Add(P1, r2.Scale(o.Heights[i+1], normal(φ1))))
		for j, nod := range o.Points {
			x, y := sys.GetU(nod.X), sys.GetU(nod.Y)
			if x >= box.Min.X && x <= box.Max.X && y >= box.Min.Y && y <= box.Max.Y {
				keys = append(keys, ContactKey{i, j})
			}
		}
	}
	return
}

func keysToInts(keys []ContactKey) (res []int) {
	for _, k := range keys {
		res = append(res, k.Segment, k.Point)
	}
	return
}

func Test_sweep01(tst *testing.T) {

	//tests.Verbose()
	chk.PrintTitle("sweep01. sweep-and-prune versus brute force")

	rnd := rand.New(rand.NewSource(1234))
	nseg, npts := 12, 15

	// wavy surface along x and a cloud of points around it
	sys := fem.NewSystem()
	var surface, points []fem.Node
	var heights []float64
	for i := 0; i <= nseg; i++ {
		x := float64(i) / float64(nseg)
		surface = append(surface, sys.CreateNode(fem.FreeDofs, [3]float64{x, 0.05 * math.Sin(6*x), 0.1 * rnd.Float64()}))
		heights = append(heights, 0.05+0.1*rnd.Float64())
	}
	for j := 0; j < npts; j++ {
		points = append(points, sys.CreateNode(fem.PointDofs, [3]float64{rnd.Float64(), -0.1 + 0.3*rnd.Float64(), 0}))
	}
	handler := NewContactHandler(sys, surface, heights, points, ContactForce{K: 100, Epsilon: 0.01})
	chk.Ints(tst, "keys (initial)", keysToInts(handler.Keys()), keysToInts(bruteForce(sys, handler)))

	// random motion: small steps with occasional large jumps
	u := append([]float64{}, sys.U()...)
	total := 0
	for frame := 0; frame < 300; frame++ {
		scale := 0.01
		if frame%50 == 49 {
			scale = 0.3
		}
		for i := range u {
			u[i] += scale * (2*rnd.Float64() - 1)
		}
		sys.SetUVec(u)
		handler.UpdateContacts(sys)
		got, want := keysToInts(handler.Keys()), keysToInts(bruteForce(sys, handler))
		total += len(want) / 2
		chk.Ints(tst, io.Sf("keys (frame %d)", frame), got, want)
		if tst.Failed() {
			return
		}
	}
	io.Pforan("number of overlaps over all frames = %d\n", total)
	if total == 0 {
		tst.Errorf("test is not meaningful: no overlaps")
	}
}

func Test_sweep02(tst *testing.T) {

	//tests.Verbose()
	chk.PrintTitle("sweep02. points on the bounds of the boxes")

	// flat surface of two segments with boxes [0,1]×[0,0.2] and [1,2]×[0,0.2]
	sys := fem.NewSystem()
	var surface []fem.Node
	for i := 0; i < 3; i++ {
		surface = append(surface, sys.CreateNode(fem.FixedDofs, [3]float64{float64(i), 0, 0}))
	}
	p := sys.CreateNode(fem.PointDofs, [3]float64{0.5, 0.3, 0})
	handler := NewContactHandler(sys, surface, []float64{0.2, 0.2, 0.2}, []fem.Node{p}, ContactForce{K: 100, Epsilon: 0.01})
	chk.Int(tst, "number of contacts (initial)", len(handler.Keys()), 0)

	for _, c := range []struct {
		x, y float64
		keys []int
	}{
		{0.5, 0.2, []int{0, 0}},       // onto the top of the first box
		{1.0, 0.1, []int{0, 0, 1, 0}}, // onto the common bound of both boxes
		{1.0, 0.3, nil},               // above both boxes
		{1.0, 0.2, []int{0, 0, 1, 0}}, // onto the common corner
		{2.0, 0.0, []int{1, 0}},       // onto the last corner
		{2.5, 0.0, nil},               // beyond the surface
	} {
		sys.SetU(p.X, c.x)
		sys.SetU(p.Y, c.y)
		handler.UpdateContacts(sys)
		chk.Ints(tst, io.Sf("keys at (%g, %g)", c.x, c.y), keysToInts(handler.Keys()), c.keys)
		chk.Ints(tst, io.Sf("brute force at (%g, %g)", c.x, c.y), keysToInts(bruteForce(sys, handler)), c.keys)
	}
}

func Test_handler01(tst *testing.T) {

	//tests.Verbose()
	chk.PrintTitle("handler01. contact handler as element")

	// flat surface of two segments and two points pressing on it
	sys := fem.NewSystem()
	var surface []fem.Node
	for i := 0; i < 3; i++ {
		surface = append(surface, sys.CreateNode(fem.FixedDofs, [3]float64{float64(i), 0, 0}))
	}
	p0 := sys.CreateNode(fem.PointDofs, [3]float64{0.5, 0.15, 0})
	p1 := sys.CreateNode(fem.PointDofs, [3]float64{1.5, 0.3, 0})
	law := ContactForce{K: 100, Epsilon: 0.01}
	handler := NewContactHandler(sys, surface, []float64{0.2, 0.2, 0.2}, []fem.Node{p0, p1}, law)
	sys.Add(handler, "contact")

	chk.Ints(tst, "keys", keysToInts(handler.Keys()), []int{0, 0})
	chk.Array(tst, "q", 1e-12, sys.Q(), []float64{0, -law.Force(0.05), 0, 0})
	chk.Float64(tst, "Epot", 1e-12, sys.PotentialEnergy("contact"), law.Energy(0.05))

	// second point moves into the second segment; the first leaves
	sys.SetU(p0.Y, 0.5)
	sys.SetU(p1.Y, 0.1)
	chk.Array(tst, "q (moved)", 1e-12, sys.Q(), []float64{0, 0, 0, -law.Force(0.1)})
	chk.Ints(tst, "keys (moved)", keysToInts(handler.Keys()), []int{1, 1})
	if handler.Contact(ContactKey{0, 0}) != nil {
		tst.Errorf("contact (0, 0) should have been removed")
	}
	K := sys.K()
	chk.Float64(tst, "K", 1e-12, K.At(3, 3), law.Stiffness(0.1))
}
