// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"math"

	"github.com/bow-simulation/virtualbow-sub000/fem"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

// Contact implements the penalty contact between a point P₂ and a segment of a thick curve. The
// segment goes from P₀ to P₁ (nodes with rotation); its contact surface is given by the points
// Sᵢ = Pᵢ + hᵢ⋅n(φᵢ) with n(φ) = {-sin φ, cos φ}
//
//             P₂
//    S₀ o-----⋅-------o S₁      surface
//       |     e       |
//       |             |
//    P₀ o-------------o P₁      back
//
// The penetration e is the distance of P₂ from the line S₀-S₁, positive on the side of the back:
//
//   e = (a₂⋅b₁ - a₁⋅b₂) / |a|    with a = S₁ - S₀ and b = P₂ - S₀
//
// Contact is active if P₂ is inside the bounding box of {P₀, P₁, S₀, S₁}, e > 0, P₂ lies on the
// surface side of the back line P₀-P₁ and between the end cross-sections P₀-S₀ and P₁-S₁
type Contact struct {
	Nodes [3]fem.Node  // segment start, segment end and point
	H0    float64      // height of the segment at node 0
	H1    float64      // height of the segment at node 1
	Law   ContactForce // force law

	dofs []fem.Dof   // [8] {x0, y0, φ0, x1, y1, φ1, x2, y2}
	f    []float64   // [8] element vector
	k    [][]float64 // [8][8] element matrix
}

// NewContact returns a new contact element
func NewContact(n0, n1, n2 fem.Node, h0, h1 float64, law ContactForce) (o *Contact) {
	o = new(Contact)
	o.Nodes = [3]fem.Node{n0, n1, n2}
	o.H0, o.H1 = h0, h1
	o.Law = law
	o.dofs = []fem.Dof{n0.X, n0.Y, n0.Phi, n1.X, n1.Y, n1.Phi, n2.X, n2.Y}
	o.f = make([]float64, 8)
	o.k = utl.Alloc(8, 8)
	return
}

// Penetration returns the penetration depth and whether the contact is active
func (o *Contact) Penetration(sys *fem.System) (e float64, active bool) {
	P0, P1, P2, S0, S1 := o.points(sys)
	if !o.isActive(P0, P1, P2, S0, S1) {
		return 0, false
	}
	e, _, _ = o.penetration(S0, S1, P2, false)
	return e, e > 0
}

// AddMasses does nothing
func (o *Contact) AddMasses(sys *fem.System, M []float64) {}

// AddInternalForces adds f(e)⋅∇e
func (o *Contact) AddInternalForces(sys *fem.System, q []float64) {
	e, de, _, ok := o.eval(sys, false)
	if !ok {
		return
	}
	f := o.Law.Force(e)
	for i := 0; i < 8; i++ {
		o.f[i] = f * de[i]
	}
	fem.AddVec(q, o.dofs, o.f)
}

// AddTangentStiffness adds f'(e)⋅∇e⋅∇eᵀ + f(e)⋅∇²e
func (o *Contact) AddTangentStiffness(sys *fem.System, K *mat.SymDense) {
	e, de, dde, ok := o.eval(sys, true)
	if !ok {
		return
	}
	f, df := o.Law.Force(e), o.Law.Stiffness(e)
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			o.k[i][j] = df*de[i]*de[j] + f*dde[i][j]
		}
	}
	fem.AddMat(K, o.dofs, o.k)
}

// AddTangentDamping does nothing
func (o *Contact) AddTangentDamping(sys *fem.System, D *mat.SymDense) {}

// PotentialEnergy returns the energy of the force law at the current penetration
func (o *Contact) PotentialEnergy(sys *fem.System) float64 {
	e, ok := o.Penetration(sys)
	if !ok {
		return 0
	}
	return o.Law.Energy(e)
}

// KineticEnergy returns zero
func (o *Contact) KineticEnergy(sys *fem.System) float64 { return 0 }

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// points returns the nodal positions and the surface points
func (o *Contact) points(sys *fem.System) (P0, P1, P2, S0, S1 r2.Vec) {
	x0, y0, φ0 := sys.NodeU(o.Nodes[0])
	x1, y1, φ1 := sys.NodeU(o.Nodes[1])
	P0 = r2.Vec{X: x0, Y: y0}
	P1 = r2.Vec{X: x1, Y: y1}
	P2 = r2.Vec{X: sys.GetU(o.Nodes[2].X), Y: sys.GetU(o.Nodes[2].Y)}
	S0 = r2.Add(P0, r2.Scale(o.H0, normal(φ0)))
	S1 = r2.Add(P1, r2.Scale(o.H1, normal(φ1)))
	return
}

// isActive performs the bounding box and orientation tests
func (o *Contact) isActive(P0, P1, P2, S0, S1 r2.Vec) bool {
	box := boundingBox(P0, P1, S0, S1)
	if P2.X < box.Min.X || P2.X > box.Max.X || P2.Y < box.Min.Y || P2.Y > box.Max.Y {
		return false
	}
	if r2.Cross(r2.Sub(S1, S0), r2.Sub(P2, S0)) >= 0 { // outside the surface line
		return false
	}
	if r2.Cross(r2.Sub(P1, P0), r2.Sub(P2, P0)) <= 0 { // behind the back line
		return false
	}
	if r2.Cross(r2.Sub(S0, P0), r2.Sub(P2, P0)) > 0 { // before the first cross-section
		return false
	}
	if r2.Cross(r2.Sub(S1, P1), r2.Sub(P2, P1)) < 0 { // after the second cross-section
		return false
	}
	return true
}

// eval computes e and its first (and second) derivatives with respect to the element dofs
func (o *Contact) eval(sys *fem.System, second bool) (e float64, de [8]float64, dde [8][8]float64, ok bool) {
	P0, P1, P2, S0, S1 := o.points(sys)
	if !o.isActive(P0, P1, P2, S0, S1) {
		return
	}
	var dg [4]float64
	var ddg [4][4]float64
	e, dg, ddg = o.penetration(S0, S1, P2, second)
	if e <= 0 {
		return
	}
	ok = true

	// z = {a₁, a₂, b₁, b₂} as function of the dofs
	_, _, φ0 := sys.NodeU(o.Nodes[0])
	_, _, φ1 := sys.NodeU(o.Nodes[1])
	s0, c0 := math.Sincos(φ0)
	s1, c1 := math.Sincos(φ1)
	h0, h1 := o.H0, o.H1
	dz := [4][8]float64{
		{-1, 0, h0 * c0, 1, 0, -h1 * c1, 0, 0},
		{0, -1, h0 * s0, 0, 1, -h1 * s1, 0, 0},
		{-1, 0, h0 * c0, 0, 0, 0, 1, 0},
		{0, -1, h0 * s0, 0, 0, 0, 0, 1},
	}

	// ∇e = dzᵀ⋅∇g
	for i := 0; i < 8; i++ {
		for m := 0; m < 4; m++ {
			de[i] += dz[m][i] * dg[m]
		}
	}
	if !second {
		return
	}

	// ∇²e = dzᵀ⋅∇²g⋅dz + Σ ∂g/∂zₘ⋅∂²zₘ/∂u²  (the second derivatives of z are nonzero on φφ only)
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			for m := 0; m < 4; m++ {
				for n := 0; n < 4; n++ {
					dde[i][j] += dz[m][i] * ddg[m][n] * dz[n][j]
				}
			}
		}
	}
	dde[2][2] += -dg[0]*h0*s0 + dg[1]*h0*c0 - dg[2]*h0*s0 + dg[3]*h0*c0
	dde[5][5] += dg[0]*h1*s1 - dg[1]*h1*c1
	return
}

// penetration computes e = g(z) and its derivatives with respect to z = {a₁, a₂, b₁, b₂}
func (o *Contact) penetration(S0, S1, P2 r2.Vec, second bool) (e float64, dg [4]float64, ddg [4][4]float64) {
	a := r2.Sub(S1, S0)
	b := r2.Sub(P2, S0)
	r := r2.Norm(a)
	r3 := r * r * r
	c := a.Y*b.X - a.X*b.Y
	e = c / r

	// ∇g = ∇c/r + c⋅∇(1/r)
	cz := [4]float64{-b.Y, b.X, a.Y, -a.X}
	wz := [4]float64{-a.X / r3, -a.Y / r3, 0, 0}
	for i := 0; i < 4; i++ {
		dg[i] = cz[i]/r + c*wz[i]
	}
	if !second {
		return
	}

	// ∇²g = ∇²c/r + ∇c⊗∇(1/r) + ∇(1/r)⊗∇c + c⋅∇²(1/r)
	r5 := r3 * r * r
	av := [2]float64{a.X, a.Y}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			ddg[i][j] = cz[i]*wz[j] + wz[i]*cz[j]
		}
	}
	ddg[0][3] -= 1 / r
	ddg[3][0] -= 1 / r
	ddg[1][2] += 1 / r
	ddg[2][1] += 1 / r
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			h := 3 * av[i] * av[j] / r5
			if i == j {
				h -= 1 / r3
			}
			ddg[i][j] += c * h
		}
	}
	return
}

// normal returns n(φ) = {-sin φ, cos φ}
func normal(φ float64) r2.Vec {
	s, c := math.Sincos(φ)
	return r2.Vec{X: -s, Y: c}
}

// boundingBox returns the axis-aligned bounding box of the given points
func boundingBox(points ...r2.Vec) (box r2.Box) {
	box.Min = r2.Vec{X: math.Inf(1), Y: math.Inf(1)}
	box.Max = r2.Vec{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, p := range points {
		box.Min.X = math.Min(box.Min.X, p.X)
		box.Min.Y = math.Min(box.Min.Y, p.Y)
		box.Max.X = math.Max(box.Max.X, p.X)
		box.Max.Y = math.Max(box.Max.Y, p.Y)
	}
	return
}
