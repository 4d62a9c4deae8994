// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package tests implements structures and functions to test elements and FE simulations
package tests

import (
	"math"
	"testing"

	"github.com/bow-simulation/virtualbow-sub000/fem"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/mat"
)

// Kcheck compares the analytical tangent matrices of an element with central differences of its
// internal forces at the current state of the system
type Kcheck struct {
	Tst  *testing.T // testing structure
	Tol  float64    // tolerance relative to the largest entry of the analytical matrix
	Step float64    // step for finite differences
	Verb bool       // verbose: show results
}

// NewKcheck returns a new checker with default tolerance and step
func NewKcheck(tst *testing.T) *Kcheck {
	return &Kcheck{Tst: tst, Tol: 1e-5, Step: 1e-6, Verb: chk.Verbose}
}

// Stiffness checks K = ∂q/∂u
func (o *Kcheck) Stiffness(label string, sys *fem.System, e fem.Element) {
	n := sys.Ndof()
	Kana := mat.NewSymDense(n, nil)
	e.AddTangentStiffness(sys, Kana)
	u0 := append([]float64{}, sys.U()...)
	Knum := o.jacobian(sys, e, u0, sys.SetUVec)
	o.compare(label, Kana, Knum)
}

// Damping checks D = ∂q/∂v
func (o *Kcheck) Damping(label string, sys *fem.System, e fem.Element) {
	n := sys.Ndof()
	Dana := mat.NewSymDense(n, nil)
	e.AddTangentDamping(sys, Dana)
	v0 := append([]float64{}, sys.V()...)
	Dnum := o.jacobian(sys, e, v0, sys.SetVVec)
	o.compare(label, Dana, Dnum)
}

// Symmetric checks that the numerical Jacobian ∂q/∂u is symmetric. The global matrix stores the
// upper triangle only, hence Stiffness alone does not detect an unsymmetric element
func (o *Kcheck) Symmetric(label string, sys *fem.System, e fem.Element) {
	u0 := append([]float64{}, sys.U()...)
	Knum := o.jacobian(sys, e, u0, sys.SetUVec)
	n := len(Knum)
	KnumT := utl.Alloc(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			KnumT[i][j] = Knum[j][i]
		}
	}
	chk.Deep2(o.Tst, label+" (symmetry)", o.Tol*maxAbs(Knum), Knum, KnumT)
}

// jacobian computes ∂q/∂x by central differences where x is set by set
func (o *Kcheck) jacobian(sys *fem.System, e fem.Element, x0 []float64, set func([]float64)) (J [][]float64) {
	n := len(x0)
	J = utl.Alloc(n, n)
	x := append([]float64{}, x0...)
	qp := make([]float64, n)
	qm := make([]float64, n)
	for j := 0; j < n; j++ {
		h := o.Step * math.Max(1, math.Abs(x0[j]))
		x[j] = x0[j] + h
		set(x)
		zero(qp)
		e.AddInternalForces(sys, qp)
		x[j] = x0[j] - h
		set(x)
		zero(qm)
		e.AddInternalForces(sys, qm)
		x[j] = x0[j]
		for i := 0; i < n; i++ {
			J[i][j] = (qp[i] - qm[i]) / (2 * h)
		}
	}
	set(x0)
	return
}

// compare compares the analytical with the numerical matrix
func (o *Kcheck) compare(label string, Kana *mat.SymDense, Knum [][]float64) {
	n := len(Knum)
	K := utl.Alloc(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			K[i][j] = Kana.At(i, j)
		}
	}
	tol := o.Tol * math.Max(maxAbs(K), 1e-12)
	if o.Verb {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if math.Abs(K[i][j]-Knum[i][j]) > tol {
					io.Pfred("%s: K[%d][%d]: ana = %v  num = %v\n", label, i, j, K[i][j], Knum[i][j])
				}
			}
		}
	}
	chk.Deep2(o.Tst, label, tol, K, Knum)
}

func maxAbs(A [][]float64) (res float64) {
	for _, row := range A {
		for _, v := range row {
			res = math.Max(res, math.Abs(v))
		}
	}
	return
}

func zero(x []float64) {
	for i := range x {
		x[i] = 0
	}
}
