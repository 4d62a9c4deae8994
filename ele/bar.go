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

// Bar implements a two-node truss element with linear elasticity and viscous damping. Large
// displacements are handled exactly (no geometric linearisation)
//
//              N                         N = EA/L⋅(l - L) + ηA/L⋅dl/dt
//   (0) o<--------------------->o (1)
//
// Only the translational dofs of the nodes are used
type Bar struct {

	// nodes
	Nodes [2]fem.Node // the two nodes
	dofs  []fem.Dof   // [4] {x0, y0, x1, y1}

	// parameters
	L    float64 // rest length
	EA   float64 // axial stiffness
	EtaA float64 // axial damping
	RhoA float64 // mass per unit length

	// scratchpad
	f []float64   // [4] element forces
	k [][]float64 // [4][4] element matrix
}

// NewBar returns a new bar element between n0 and n1
func NewBar(n0, n1 fem.Node, L, EA, etaA, rhoA float64) (o *Bar) {
	o = new(Bar)
	o.Nodes = [2]fem.Node{n0, n1}
	o.dofs = []fem.Dof{n0.X, n0.Y, n1.X, n1.Y}
	o.L, o.EA, o.EtaA, o.RhoA = L, EA, etaA, rhoA
	o.f = make([]float64, 4)
	o.k = utl.Alloc(4, 4)
	return
}

// SetLength sets the rest length
func (o *Bar) SetLength(L float64) { o.L = L }

// SetDamping sets the axial damping ηA
func (o *Bar) SetDamping(etaA float64) { o.EtaA = etaA }

// Length returns the current length l
func (o *Bar) Length(sys *fem.System) float64 {
	l, _, _ := o.geometry(sys)
	return l
}

// NormalForce returns the current normal force N (tension is positive)
func (o *Bar) NormalForce(sys *fem.System) float64 {
	l, c, s := o.geometry(sys)
	return o.normalForce(sys, l, c, s)
}

// fem.Element interface /////////////////////////////////////////////////////////////////////////

// AddMasses adds ρA⋅L/2 to each translational dof
func (o *Bar) AddMasses(sys *fem.System, M []float64) {
	m := 0.5 * o.RhoA * o.L
	for i := range o.f {
		o.f[i] = m
	}
	fem.AddDiag(M, o.dofs, o.f)
}

// AddInternalForces adds N⋅[-c, -s, c, s]
func (o *Bar) AddInternalForces(sys *fem.System, q []float64) {
	l, c, s := o.geometry(sys)
	N := o.normalForce(sys, l, c, s)
	o.f[0], o.f[1], o.f[2], o.f[3] = -N*c, -N*s, N*c, N*s
	fem.AddVec(q, o.dofs, o.f)
}

// AddTangentStiffness adds EA/L⋅t⋅tᵀ + N/l⋅(I - t⋅tᵀ)
func (o *Bar) AddTangentStiffness(sys *fem.System, K *mat.SymDense) {
	l, c, s := o.geometry(sys)
	N := o.normalForce(sys, l, c, s)
	a := o.EA / o.L
	b := N / l
	o.blocks(a*c*c+b*s*s, a*c*s-b*c*s, a*s*s+b*c*c)
	fem.AddMat(K, o.dofs, o.k)
}

// AddTangentDamping adds ηA/L⋅t⋅tᵀ
func (o *Bar) AddTangentDamping(sys *fem.System, D *mat.SymDense) {
	_, c, s := o.geometry(sys)
	a := o.EtaA / o.L
	o.blocks(a*c*c, a*c*s, a*s*s)
	fem.AddMat(D, o.dofs, o.k)
}

// PotentialEnergy returns ½⋅EA/L⋅(l - L)²
func (o *Bar) PotentialEnergy(sys *fem.System) float64 {
	l, _, _ := o.geometry(sys)
	return 0.5 * o.EA / o.L * math.Pow(l-o.L, 2)
}

// KineticEnergy returns ½⋅ρA⋅L/2⋅(|v0|² + |v1|²)
func (o *Bar) KineticEnergy(sys *fem.System) (res float64) {
	for _, dof := range o.dofs {
		res += math.Pow(sys.GetV(dof), 2)
	}
	return 0.25 * o.RhoA * o.L * res
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// geometry returns the current length and direction cosines
func (o *Bar) geometry(sys *fem.System) (l, c, s float64) {
	dx := sys.GetU(o.Nodes[1].X) - sys.GetU(o.Nodes[0].X)
	dy := sys.GetU(o.Nodes[1].Y) - sys.GetU(o.Nodes[0].Y)
	l = math.Hypot(dx, dy)
	c, s = dx/l, dy/l
	return
}

// normalForce returns N for the given geometry
func (o *Bar) normalForce(sys *fem.System, l, c, s float64) float64 {
	dvx := sys.GetV(o.Nodes[1].X) - sys.GetV(o.Nodes[0].X)
	dvy := sys.GetV(o.Nodes[1].Y) - sys.GetV(o.Nodes[0].Y)
	ldot := c*dvx + s*dvy
	return o.EA/o.L*(l-o.L) + o.EtaA/o.L*ldot
}

// blocks sets k = [[B, -B], [-B, B]] with B = [[bxx, bxy], [bxy, byy]]
func (o *Bar) blocks(bxx, bxy, byy float64) {
	B := [2][2]float64{{bxx, bxy}, {bxy, byy}}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			o.k[i][j] = B[i][j]
			o.k[i+2][j+2] = B[i][j]
			o.k[i][j+2] = -B[i][j]
			o.k[i+2][j] = -B[i][j]
		}
	}
}
