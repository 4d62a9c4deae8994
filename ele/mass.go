// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/bow-simulation/virtualbow-sub000/fem"
	"gonum.org/v1/gonum/mat"
)

// Mass implements a point mass with rotational inertia attached to one node
type Mass struct {
	Node fem.Node // the node
	M    float64  // mass
	I    float64  // rotational inertia
}

// NewMass returns a new point mass
func NewMass(nod fem.Node, m, I float64) *Mass {
	return &Mass{Node: nod, M: m, I: I}
}

// SetNode moves the mass onto another node; e.g. when the arrow leaves the string.
// sys.Invalidate must be called afterwards
func (o *Mass) SetNode(nod fem.Node) { o.Node = nod }

// AddMasses adds m to the translational and I to the rotational dof
func (o *Mass) AddMasses(sys *fem.System, M []float64) {
	fem.AddDiag(M, o.dofs(), []float64{o.M, o.M, o.I})
}

// AddInternalForces does nothing
func (o *Mass) AddInternalForces(sys *fem.System, q []float64) {}

// AddTangentStiffness does nothing
func (o *Mass) AddTangentStiffness(sys *fem.System, K *mat.SymDense) {}

// AddTangentDamping does nothing
func (o *Mass) AddTangentDamping(sys *fem.System, D *mat.SymDense) {}

// PotentialEnergy returns zero
func (o *Mass) PotentialEnergy(sys *fem.System) float64 { return 0 }

// KineticEnergy returns ½⋅m⋅|v|² + ½⋅I⋅ω²
func (o *Mass) KineticEnergy(sys *fem.System) float64 {
	vx, vy, ω := sys.NodeV(o.Node)
	return 0.5*o.M*(vx*vx+vy*vy) + 0.5*o.I*ω*ω
}

func (o *Mass) dofs() []fem.Dof {
	d := o.Node.Dofs()
	return d[:]
}
