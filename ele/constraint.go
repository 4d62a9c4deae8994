// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"math"

	"github.com/bow-simulation/virtualbow-sub000/fem"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/mat"
)

// Constraint ties the position of node 1 to the point of node 0 offset by h along the normal
// n(φ₀) = {-sin φ₀, cos φ₀} by means of a penalty spring with stiffness k
//
//          (1)
//           ⋮ r
//           o  P₀ + h⋅n
//           |  h
//          (0)
//
// The energy is ½⋅k⋅|r|² with r = P₀ + h⋅n(φ₀) - P₁
type Constraint struct {
	Nodes [2]fem.Node // node 0 (with rotation) and node 1
	K     float64     // penalty stiffness
	H     float64     // offset along the normal of node 0

	dofs []fem.Dof   // [5] {x0, y0, φ0, x1, y1}
	f    []float64   // [5] element vector
	k    [][]float64 // [5][5] element matrix
}

// NewConstraint returns a new constraint
func NewConstraint(n0, n1 fem.Node, k, h float64) (o *Constraint) {
	o = new(Constraint)
	o.Nodes = [2]fem.Node{n0, n1}
	o.K, o.H = k, h
	o.dofs = []fem.Dof{n0.X, n0.Y, n0.Phi, n1.X, n1.Y}
	o.f = make([]float64, 5)
	o.k = utl.Alloc(5, 5)
	return
}

// Gap returns the vector r = P₀ + h⋅n(φ₀) - P₁
func (o *Constraint) Gap(sys *fem.System) (rx, ry float64) {
	rx, ry, _ = o.gap(sys)
	return
}

// AddMasses does nothing
func (o *Constraint) AddMasses(sys *fem.System, M []float64) {}

// AddInternalForces adds k⋅Gᵀ⋅r with G = ∂r/∂u
func (o *Constraint) AddInternalForces(sys *fem.System, q []float64) {
	rx, ry, G := o.gap(sys)
	for i := 0; i < 5; i++ {
		o.f[i] = o.K * (G[0][i]*rx + G[1][i]*ry)
	}
	fem.AddVec(q, o.dofs, o.f)
}

// AddTangentStiffness adds k⋅Gᵀ⋅G + k⋅r⋅∂²r/∂u²
func (o *Constraint) AddTangentStiffness(sys *fem.System, K *mat.SymDense) {
	rx, ry, G := o.gap(sys)
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			o.k[i][j] = o.K * (G[0][i]*G[0][j] + G[1][i]*G[1][j])
		}
	}
	φ := sys.GetU(o.Nodes[0].Phi)
	o.k[2][2] += o.K * o.H * (rx*math.Sin(φ) - ry*math.Cos(φ))
	fem.AddMat(K, o.dofs, o.k)
}

// AddTangentDamping does nothing
func (o *Constraint) AddTangentDamping(sys *fem.System, D *mat.SymDense) {}

// PotentialEnergy returns ½⋅k⋅|r|²
func (o *Constraint) PotentialEnergy(sys *fem.System) float64 {
	rx, ry, _ := o.gap(sys)
	return 0.5 * o.K * (rx*rx + ry*ry)
}

// KineticEnergy returns zero
func (o *Constraint) KineticEnergy(sys *fem.System) float64 { return 0 }

// gap returns r and G = ∂r/∂u
func (o *Constraint) gap(sys *fem.System) (rx, ry float64, G [2][5]float64) {
	x0, y0, φ := sys.NodeU(o.Nodes[0])
	x1, y1 := sys.GetU(o.Nodes[1].X), sys.GetU(o.Nodes[1].Y)
	sφ, cφ := math.Sincos(φ)
	rx = x0 - o.H*sφ - x1
	ry = y0 + o.H*cφ - y1
	G[0] = [5]float64{1, 0, -o.H * cφ, -1, 0}
	G[1] = [5]float64{0, 1, -o.H * sφ, 0, -1}
	return
}
