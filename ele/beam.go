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

// BeamRotationalInertia is the fraction of ρA⋅L³ lumped on the rotational dof of each node
// (empirical)
const BeamRotationalInertia = 0.02

// Beam implements a two-node planar beam element with a corotational formulation. The rigid
// body rotation is given by the angle α of the chord and the deformation by the three elastic
// coordinates
//
//   e₀ = l - L           (elongation of the chord)
//   e₁ = φ₀ - α - θ₀     (rotation of node 0 relative to the chord)
//   e₂ = φ₁ - α - θ₁     (rotation of node 1 relative to the chord)
//
//              φ₁
//              ↺ (1)
//              ,'
//           ,'  α
//   φ₀ ↺ (0)--------> x
//
// where the reference angles θ₀ and θ₁ make e = 0 in the (possibly curved) reference
// configuration. The elastic forces are f = C⋅(e + β⋅de/dt)/L with
//
//       | Cee   -Cek   Cek  |
//   C = | -Cek  4Ckk   2Ckk |
//       | Cek   2Ckk   4Ckk |
type Beam struct {

	// nodes
	Nodes [2]fem.Node // the two nodes
	dofs  []fem.Dof   // [6] {x0, y0, φ0, x1, y1, φ1}

	// parameters
	L    float64 // reference length
	θ0   float64 // reference angle of node 0 relative to the chord
	θ1   float64 // reference angle of node 1 relative to the chord
	Cee  float64 // axial stiffness
	Cek  float64 // coupling between axial strain and curvature
	Ckk  float64 // bending stiffness
	RhoA float64 // mass per unit length
	Beta float64 // damping coefficient (stiffness proportional)

	// derived
	C [3][3]float64 // C/L

	// scratchpad
	f []float64   // [6] element vector
	k [][]float64 // [6][6] element matrix
}

// NewBeam returns a new beam between n0 and n1. The current configuration of the nodes is taken
// as the stress-free reference configuration
func NewBeam(sys *fem.System, n0, n1 fem.Node, Cee, Cek, Ckk, rhoA float64) (o *Beam) {
	o = new(Beam)
	o.Nodes = [2]fem.Node{n0, n1}
	o.dofs = []fem.Dof{n0.X, n0.Y, n0.Phi, n1.X, n1.Y, n1.Phi}
	o.Cee, o.Cek, o.Ckk, o.RhoA = Cee, Cek, Ckk, rhoA
	l, α, _, _ := o.chord(sys)
	o.L = l
	o.θ0 = sys.GetU(n0.Phi) - α
	o.θ1 = sys.GetU(n1.Phi) - α
	o.f = make([]float64, 6)
	o.k = utl.Alloc(6, 6)
	o.C = [3][3]float64{
		{Cee / l, -Cek / l, Cek / l},
		{-Cek / l, 4 * Ckk / l, 2 * Ckk / l},
		{Cek / l, 2 * Ckk / l, 4 * Ckk / l},
	}
	return
}

// SetDamping sets the damping coefficient β
func (o *Beam) SetDamping(β float64) { o.Beta = β }

// ElasticCoordinates returns e = {l - L, φ₀ - α - θ₀, φ₁ - α - θ₁}
func (o *Beam) ElasticCoordinates(sys *fem.System) (e [3]float64) {
	e, _ = o.elastic(sys)
	return
}

// ElasticForces returns f = C⋅(e + β⋅de/dt)/L, i.e. the normal force and the two end moments
func (o *Beam) ElasticForces(sys *fem.System) (f [3]float64) {
	e, J := o.elastic(sys)
	return o.forces(sys, e, J)
}

// NodalForces returns Jᵀ⋅f, the forces {x0, y0, φ0, x1, y1, φ1} the beam needs at its nodes
func (o *Beam) NodalForces(sys *fem.System) (res [6]float64) {
	e, J := o.elastic(sys)
	f := o.forces(sys, e, J)
	for i := 0; i < 6; i++ {
		res[i] = J[0][i]*f[0] + J[1][i]*f[1] + J[2][i]*f[2]
	}
	return
}

// Deformations returns the axial strain and the curvatures at both nodes. The curvatures follow
// from the cubic deflection of a beam with end rotations e₁ and e₂
func (o *Beam) Deformations(sys *fem.System) (ε, κ0, κ1 float64) {
	e, _ := o.elastic(sys)
	ε = e[0] / o.L
	κ0 = -(4*e[1] + 2*e[2]) / o.L
	κ1 = (2*e[1] + 4*e[2]) / o.L
	return
}

// fem.Element interface /////////////////////////////////////////////////////////////////////////

// AddMasses adds ρA⋅L/2 to the translational and BeamRotationalInertia⋅ρA⋅L³ to the rotational
// dofs of each node
func (o *Beam) AddMasses(sys *fem.System, M []float64) {
	m := 0.5 * o.RhoA * o.L
	I := BeamRotationalInertia * o.RhoA * math.Pow(o.L, 3)
	o.f[0], o.f[1], o.f[2] = m, m, I
	o.f[3], o.f[4], o.f[5] = m, m, I
	fem.AddDiag(M, o.dofs, o.f)
}

// AddInternalForces adds Jᵀ⋅f
func (o *Beam) AddInternalForces(sys *fem.System, q []float64) {
	f := o.NodalForces(sys)
	copy(o.f, f[:])
	fem.AddVec(q, o.dofs, o.f)
}

// AddTangentStiffness adds Jᵀ⋅C⋅J/L + f₀⋅∂²l/∂u² - (f₁ + f₂)⋅∂²α/∂u²
func (o *Beam) AddTangentStiffness(sys *fem.System, K *mat.SymDense) {
	e, J := o.elastic(sys)
	f := o.forces(sys, e, J)
	o.material(J, 1)
	l, _, c, s := o.chord(sys)
	Hl := [2][2]float64{{s * s / l, -c * s / l}, {-c * s / l, c * c / l}}
	Hα := [2][2]float64{{2 * c * s / (l * l), (s*s - c*c) / (l * l)}, {(s*s - c*c) / (l * l), -2 * c * s / (l * l)}}
	t := [4]int{0, 1, 3, 4} // translational dofs
	sgn := [4]float64{-1, -1, 1, 1}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			g := sgn[i] * sgn[j]
			o.k[t[i]][t[j]] += g * (f[0]*Hl[i%2][j%2] - (f[1]+f[2])*Hα[i%2][j%2])
		}
	}
	fem.AddMat(K, o.dofs, o.k)
}

// AddTangentDamping adds β⋅Jᵀ⋅C⋅J/L
func (o *Beam) AddTangentDamping(sys *fem.System, D *mat.SymDense) {
	_, J := o.elastic(sys)
	o.material(J, o.Beta)
	fem.AddMat(D, o.dofs, o.k)
}

// PotentialEnergy returns ½⋅eᵀ⋅C⋅e/L
func (o *Beam) PotentialEnergy(sys *fem.System) (res float64) {
	e, _ := o.elastic(sys)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			res += 0.5 * e[i] * o.C[i][j] * e[j]
		}
	}
	return
}

// KineticEnergy returns ½⋅vᵀ⋅M⋅v with the lumped masses
func (o *Beam) KineticEnergy(sys *fem.System) (res float64) {
	m := 0.5 * o.RhoA * o.L
	I := BeamRotationalInertia * o.RhoA * math.Pow(o.L, 3)
	for _, nod := range o.Nodes {
		vx, vy, ω := sys.NodeV(nod)
		res += 0.5*m*(vx*vx+vy*vy) + 0.5*I*ω*ω
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// chord returns the length, angle and direction cosines of the chord
func (o *Beam) chord(sys *fem.System) (l, α, c, s float64) {
	dx := sys.GetU(o.Nodes[1].X) - sys.GetU(o.Nodes[0].X)
	dy := sys.GetU(o.Nodes[1].Y) - sys.GetU(o.Nodes[0].Y)
	l = math.Hypot(dx, dy)
	α = math.Atan2(dy, dx)
	c, s = dx/l, dy/l
	return
}

// elastic returns the elastic coordinates and their derivatives J = ∂e/∂u
func (o *Beam) elastic(sys *fem.System) (e [3]float64, J [3][6]float64) {
	l, α, c, s := o.chord(sys)
	e[0] = l - o.L
	e[1] = math.Remainder(sys.GetU(o.Nodes[0].Phi)-α-o.θ0, 2*math.Pi)
	e[2] = math.Remainder(sys.GetU(o.Nodes[1].Phi)-α-o.θ1, 2*math.Pi)
	dα := [6]float64{s / l, -c / l, 0, -s / l, c / l, 0}
	J[0] = [6]float64{-c, -s, 0, c, s, 0}
	for i := 0; i < 6; i++ {
		J[1][i] = -dα[i]
		J[2][i] = -dα[i]
	}
	J[1][2] += 1
	J[2][5] += 1
	return
}

// forces returns C⋅(e + β⋅de/dt)/L
func (o *Beam) forces(sys *fem.System, e [3]float64, J [3][6]float64) (f [3]float64) {
	var ed [3]float64
	if o.Beta != 0 {
		for i := 0; i < 3; i++ {
			for j, dof := range o.dofs {
				ed[i] += J[i][j] * sys.GetV(dof)
			}
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			f[i] += o.C[i][j] * (e[j] + o.Beta*ed[j])
		}
	}
	return
}

// material sets k = factor⋅Jᵀ⋅C⋅J/L
func (o *Beam) material(J [3][6]float64, factor float64) {
	var CJ [3][6]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 6; j++ {
			for m := 0; m < 3; m++ {
				CJ[i][j] += o.C[i][m] * J[m][j]
			}
		}
	}
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			o.k[i][j] = 0
			for m := 0; m < 3; m++ {
				o.k[i][j] += factor * J[m][i] * CJ[m][j]
			}
		}
	}
}
