// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/floats"
)

// Outcome tells how a call to a static solver ended
type Outcome int

const (
	Success               Outcome = iota // converged
	DecompositionFailed                  // stiffness matrix not positive definite
	MaxIterationsExceeded                // no convergence within MaxIter iterations
)

// String returns a short description of the outcome
func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case DecompositionFailed:
		return "decomposition failed"
	}
	return "max iterations exceeded"
}

// Info holds information about a call to a static solver
type Info struct {
	Outcome    Outcome // how the call ended
	Iterations int     // number of iterations performed
}

// default settings of static solvers
const (
	DefaultEpsilon = 1e-6 // tolerance for convergence
	DefaultMaxIter = 50   // max number of iterations
)

// StaticSolverLC finds the equilibrium of the system for the current external forces p
// (load control) by Newton-Raphson iterations
//
//   u ← u + K⁻¹⋅(p - q)    until   ‖p - q‖ / ‖p - q‖₀ < ϵ
//
type StaticSolverLC struct {
	Epsilon float64 // tolerance
	MaxIter int     // max number of iterations
	Verbose bool    // show messages

	sys *System   // system
	lis linSol    // linear solver
	r   []float64 // residual
	du  []float64 // increment of u
}

// NewStaticSolverLC returns a new load-controlled solver
func NewStaticSolverLC(sys *System) (o *StaticSolverLC) {
	o = new(StaticSolverLC)
	o.Epsilon = DefaultEpsilon
	o.MaxIter = DefaultMaxIter
	o.sys = sys
	return
}

// Solve finds the equilibrium for the current loads. The state of the system is updated in place
func (o *StaticSolverLC) Solve() (info Info, err error) {

	// residual
	n := o.sys.Ndof()
	o.r = resize(o.r, n)
	o.du = resize(o.du, n)
	o.residual()
	norm0 := floats.Norm(o.r, 2)
	if norm0 == 0 {
		return
	}

	// iterations
	var norm float64
	for info.Iterations = 1; info.Iterations <= o.MaxIter; info.Iterations++ {
		err = o.lis.factorize(o.sys.K())
		if err == nil {
			err = o.lis.solve(o.du, o.r)
		}
		if err != nil {
			info.Outcome = DecompositionFailed
			err = &SolverError{"static LC", info.Iterations, norm, err}
			return
		}
		o.sys.AddUVec(o.du)
		o.residual()
		norm = floats.Norm(o.r, 2)
		if o.Verbose {
			io.Pf("> LC: it = %2d  ‖p-q‖/‖p-q‖₀ = %13.6e\n", info.Iterations, norm/norm0)
		}
		if norm/norm0 < o.Epsilon {
			return
		}
	}
	info.Iterations = o.MaxIter
	info.Outcome = MaxIterationsExceeded
	err = &SolverError{"static LC", o.MaxIter, norm / norm0, ErrMaxIterations}
	return
}

// residual computes r = p - q
func (o *StaticSolverLC) residual() {
	floats.SubTo(o.r, o.sys.P(), o.sys.Q())
}

// StaticSolverDC drives one dof to a prescribed displacement (displacement control). The load
// at that dof is the unknown reaction; all other loads are kept. Each iteration solves
//
//   α = K⁻¹⋅(p - q)    β = K⁻¹⋅eᵢ    Δf = (u_target - uᵢ - αᵢ) / βᵢ
//   u ← u + α + Δf⋅β   pᵢ ← pᵢ + Δf
//
// until ‖α + Δf⋅β‖ / n < ϵ
type StaticSolverDC struct {
	Epsilon float64 // tolerance
	MaxIter int     // max number of iterations
	Verbose bool    // show messages

	sys *System   // system
	dof Dof       // controlled dof
	lis linSol    // linear solver
	r   []float64 // residual p - q
	ei  []float64 // unit vector at dof
	α   []float64 // residual step
	β   []float64 // sensitivity to unit load
	du  []float64 // increment of u
}

// NewStaticSolverDC returns a new displacement-controlled solver acting on dof
func NewStaticSolverDC(sys *System, dof Dof) (o *StaticSolverDC) {
	if !dof.IsActive() {
		chk.Panic("NewStaticSolverDC: controlled dof must be active")
	}
	o = new(StaticSolverDC)
	o.Epsilon = DefaultEpsilon
	o.MaxIter = DefaultMaxIter
	o.sys = sys
	o.dof = dof
	return
}

// Solve finds the equilibrium with the controlled dof at target. The state of the system
// (including the load at the controlled dof) is updated in place
func (o *StaticSolverDC) Solve(target float64) (info Info, err error) {

	// allocate
	n := o.sys.Ndof()
	i := o.dof.Index
	o.r = resize(o.r, n)
	o.ei = resize(o.ei, n)
	o.α = resize(o.α, n)
	o.β = resize(o.β, n)
	o.du = resize(o.du, n)
	o.ei[i] = 1

	// iterations
	var norm float64
	for info.Iterations = 1; info.Iterations <= o.MaxIter; info.Iterations++ {
		err = o.lis.factorize(o.sys.K())
		if err == nil {
			floats.SubTo(o.r, o.sys.P(), o.sys.Q())
			err = o.lis.solve(o.α, o.r)
		}
		if err == nil {
			err = o.lis.solve(o.β, o.ei)
		}
		if err != nil {
			info.Outcome = DecompositionFailed
			err = &SolverError{"static DC", info.Iterations, norm, err}
			return
		}

		// update
		Δf := (target - o.sys.U()[i] - o.α[i]) / o.β[i]
		floats.AddScaledTo(o.du, o.α, Δf, o.β)
		o.sys.AddUVec(o.du)
		o.sys.SetP(o.dof, o.sys.GetP(o.dof)+Δf)

		// check convergence
		norm = floats.Norm(o.du, 2) / float64(n)
		if o.Verbose {
			io.Pf("> DC: it = %2d  ‖Δu‖/n = %13.6e  p = %g\n", info.Iterations, norm, o.sys.P()[i])
		}
		if norm < o.Epsilon {
			return
		}
	}
	info.Iterations = o.MaxIter
	info.Outcome = MaxIterationsExceeded
	err = &SolverError{"static DC", o.MaxIter, norm, ErrMaxIterations}
	return
}
