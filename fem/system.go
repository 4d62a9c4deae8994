// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the degrees of freedom, the system of elements and the static and
// dynamic solvers of the planar bow model
package fem

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// System holds the global state {u, v, a, p} of all active dofs, the prescribed values of fixed
// dofs and all elements. The derived quantities {M, q, K, D} are evaluated lazily and are always
// consistent with the current {u, v}
type System struct {

	// state
	t      float64   // time
	ufixed []float64 // prescribed displacements of fixed dofs
	u      []float64 // [ndof] displacements
	v      []float64 // [ndof] velocities
	a      []float64 // [ndof] accelerations
	p      []float64 // [ndof] external forces

	// elements
	elems  []Element            // all elements
	groups map[string][]Element // tag => elements

	// derived; recomputed upon request if invalid
	m   []float64     // [ndof] lumped masses
	q   []float64     // [ndof] internal forces
	k   *mat.SymDense // [ndof][ndof] tangent stiffness
	d   *mat.SymDense // [ndof][ndof] tangent damping
	okM bool          // m is up to date
	okQ bool          // q is up to date
	okK bool          // k is up to date
	okD bool          // d is up to date
}

// NewSystem returns a new empty system
func NewSystem() (o *System) {
	o = new(System)
	o.groups = make(map[string][]Element)
	return
}

// dofs and nodes //////////////////////////////////////////////////////////////////////////////////

// CreateDof allocates a new dof with initial displacement u0
func (o *System) CreateDof(typ DofType, u0 float64) Dof {
	if typ == Fixed {
		o.ufixed = append(o.ufixed, u0)
		return Dof{Fixed, len(o.ufixed) - 1}
	}
	o.u = append(o.u, u0)
	o.v = append(o.v, 0)
	o.a = append(o.a, 0)
	o.p = append(o.p, 0)
	o.Invalidate()
	return Dof{Active, len(o.u) - 1}
}

// CreateNode allocates the three dofs of a new node
func (o *System) CreateNode(types [3]DofType, u0 [3]float64) Node {
	return Node{
		X:   o.CreateDof(types[0], u0[0]),
		Y:   o.CreateDof(types[1], u0[1]),
		Phi: o.CreateDof(types[2], u0[2]),
	}
}

// Ndof returns the number of active dofs
func (o *System) Ndof() int { return len(o.u) }

// Time returns the current time
func (o *System) Time() float64 { return o.t }

// SetTime sets the current time
func (o *System) SetTime(t float64) { o.t = t }

// scalar access ///////////////////////////////////////////////////////////////////////////////////

// GetU returns the displacement of dof; prescribed value if dof is fixed
func (o *System) GetU(dof Dof) float64 {
	if dof.Type == Fixed {
		return o.ufixed[dof.Index]
	}
	return o.u[dof.Index]
}

// GetV returns the velocity of dof; zero if dof is fixed
func (o *System) GetV(dof Dof) float64 {
	if dof.Type == Fixed {
		return 0
	}
	return o.v[dof.Index]
}

// GetA returns the acceleration of dof; zero if dof is fixed
func (o *System) GetA(dof Dof) float64 {
	if dof.Type == Fixed {
		return 0
	}
	return o.a[dof.Index]
}

// GetP returns the external force at dof; zero if dof is fixed
func (o *System) GetP(dof Dof) float64 {
	if dof.Type == Fixed {
		return 0
	}
	return o.p[dof.Index]
}

// GetQ returns the internal force at dof; zero if dof is fixed
func (o *System) GetQ(dof Dof) float64 {
	if dof.Type == Fixed {
		return 0
	}
	return o.Q()[dof.Index]
}

// GetM returns the lumped mass at dof; zero if dof is fixed
func (o *System) GetM(dof Dof) float64 {
	if dof.Type == Fixed {
		return 0
	}
	return o.M()[dof.Index]
}

// SetU sets the displacement of an active dof
func (o *System) SetU(dof Dof, val float64) {
	o.mustBeActive(dof, "SetU")
	o.u[dof.Index] = val
	o.Invalidate()
}

// SetV sets the velocity of an active dof
func (o *System) SetV(dof Dof, val float64) {
	o.mustBeActive(dof, "SetV")
	o.v[dof.Index] = val
	o.okQ = false
}

// SetP sets the external force at an active dof
func (o *System) SetP(dof Dof, val float64) {
	o.mustBeActive(dof, "SetP")
	o.p[dof.Index] = val
}

// NodeU returns the current position and rotation of node
func (o *System) NodeU(nod Node) (x, y, φ float64) {
	return o.GetU(nod.X), o.GetU(nod.Y), o.GetU(nod.Phi)
}

// NodeV returns the current velocities of node
func (o *System) NodeV(nod Node) (vx, vy, ω float64) {
	return o.GetV(nod.X), o.GetV(nod.Y), o.GetV(nod.Phi)
}

// vector access (solvers) /////////////////////////////////////////////////////////////////////////

// U returns the displacements. Do not modify: use SetUVec or AddUVec
func (o *System) U() []float64 { return o.u }

// V returns the velocities. Do not modify: use SetVVec
func (o *System) V() []float64 { return o.v }

// A returns the accelerations. Do not modify: use SetAVec
func (o *System) A() []float64 { return o.a }

// P returns the external forces. Do not modify: use SetPVec or SetP
func (o *System) P() []float64 { return o.p }

// SetUVec copies u into the displacements
func (o *System) SetUVec(u []float64) {
	chk.IntAssert(len(u), len(o.u))
	copy(o.u, u)
	o.Invalidate()
}

// AddUVec adds du to the displacements
func (o *System) AddUVec(du []float64) {
	chk.IntAssert(len(du), len(o.u))
	for i := range o.u {
		o.u[i] += du[i]
	}
	o.Invalidate()
}

// SetVVec copies v into the velocities
func (o *System) SetVVec(v []float64) {
	chk.IntAssert(len(v), len(o.v))
	copy(o.v, v)
	o.okQ = false
}

// SetAVec copies a into the accelerations
func (o *System) SetAVec(a []float64) {
	chk.IntAssert(len(a), len(o.a))
	copy(o.a, a)
}

// SetPVec copies p into the external forces
func (o *System) SetPVec(p []float64) {
	chk.IntAssert(len(p), len(o.p))
	copy(o.p, p)
}

// elements ////////////////////////////////////////////////////////////////////////////////////////

// Add adds an element to the system and to the groups given by tags
func (o *System) Add(e Element, tags ...string) {
	o.elems = append(o.elems, e)
	for _, tag := range tags {
		o.groups[tag] = append(o.groups[tag], e)
	}
	o.Invalidate()
}

// Elements returns all elements
func (o *System) Elements() []Element { return o.elems }

// Group returns the elements tagged with tag
func (o *System) Group(tag string) []Element { return o.groups[tag] }

// Invalidate marks {M, q, K, D} as outdated. It must be called after element parameters are
// changed externally; e.g. during calibration
func (o *System) Invalidate() {
	o.okM, o.okQ, o.okK, o.okD = false, false, false, false
}

// derived quantities //////////////////////////////////////////////////////////////////////////////

// M returns the lumped masses
func (o *System) M() []float64 {
	if !o.okM {
		o.m = resize(o.m, len(o.u))
		for _, e := range o.elems {
			e.AddMasses(o, o.m)
		}
		o.okM = true
	}
	return o.m
}

// Q returns the internal forces
func (o *System) Q() []float64 {
	if !o.okQ {
		o.q = resize(o.q, len(o.u))
		for _, e := range o.elems {
			e.AddInternalForces(o, o.q)
		}
		o.okQ = true
	}
	return o.q
}

// K returns the tangent stiffness matrix (symmetric)
func (o *System) K() *mat.SymDense {
	if !o.okK {
		o.k = resizeSym(o.k, len(o.u))
		for _, e := range o.elems {
			e.AddTangentStiffness(o, o.k)
		}
		o.okK = true
	}
	return o.k
}

// D returns the tangent damping matrix (symmetric)
func (o *System) D() *mat.SymDense {
	if !o.okD {
		o.d = resizeSym(o.d, len(o.u))
		for _, e := range o.elems {
			e.AddTangentDamping(o, o.d)
		}
		o.okD = true
	}
	return o.d
}

// energy //////////////////////////////////////////////////////////////////////////////////////////

// PotentialEnergy returns the potential energy of the elements in group tag; all if tag == ""
func (o *System) PotentialEnergy(tag string) (res float64) {
	for _, e := range o.select_(tag) {
		res += e.PotentialEnergy(o)
	}
	return
}

// KineticEnergy returns the kinetic energy of the elements in group tag; all if tag == ""
func (o *System) KineticEnergy(tag string) (res float64) {
	for _, e := range o.select_(tag) {
		res += e.KineticEnergy(o)
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func (o *System) select_(tag string) []Element {
	if tag == "" {
		return o.elems
	}
	return o.groups[tag]
}

func (o *System) mustBeActive(dof Dof, caller string) {
	if dof.Type != Active {
		chk.Panic("%s: cannot modify fixed dof %d", caller, dof.Index)
	}
}

// resize returns a zeroed slice of length n, reusing x if possible
func resize(x []float64, n int) []float64 {
	if len(x) != n {
		return make([]float64, n)
	}
	for i := range x {
		x[i] = 0
	}
	return x
}

// resizeSym returns a zeroed n×n symmetric matrix, reusing K if possible
func resizeSym(K *mat.SymDense, n int) *mat.SymDense {
	if n == 0 {
		return nil
	}
	if K == nil || K.SymmetricDim() != n {
		return mat.NewSymDense(n, nil)
	}
	raw := K.RawSymmetric()
	for i := range raw.Data {
		raw.Data[i] = 0
	}
	return K
}
