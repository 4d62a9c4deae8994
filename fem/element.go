// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "gonum.org/v1/gonum/mat"

// Element defines what all elements must compute. All methods accumulate into the
// given global arrays (indexed by the active dofs) using the current state of sys
type Element interface {
	AddMasses(sys *System, M []float64)               // adds lumped (diagonal) masses
	AddInternalForces(sys *System, q []float64)       // adds internal forces q(u, v)
	AddTangentStiffness(sys *System, K *mat.SymDense) // adds K = ∂q/∂u
	AddTangentDamping(sys *System, D *mat.SymDense)   // adds D = ∂q/∂v
	PotentialEnergy(sys *System) float64              // elastic energy
	KineticEnergy(sys *System) float64                // kinetic energy
}

// GroupOf returns the elements tagged with tag that have type T; e.g.
//
//	beams := GroupOf[*ele.Beam](sys, "limb")
func GroupOf[T Element](sys *System, tag string) (res []T) {
	for _, e := range sys.Group(tag) {
		if t, ok := e.(T); ok {
			res = append(res, t)
		}
	}
	return
}

// assembly ////////////////////////////////////////////////////////////////////////////////////////

// AddVec adds the element vector f to the global vector dst. Entries of fixed dofs are skipped
func AddVec(dst []float64, dofs []Dof, f []float64) {
	for i, dof := range dofs {
		if dof.Type == Active {
			dst[dof.Index] += f[i]
		}
	}
}

// AddDiag adds the diagonal entries m (e.g. lumped masses) to the global vector dst. Alias of
// AddVec kept for readability at call sites
func AddDiag(dst []float64, dofs []Dof, m []float64) { AddVec(dst, dofs, m) }

// AddMat adds the symmetric element matrix k to the global matrix K. Entries of fixed dofs are
// skipped. Only the upper triangle of K is touched
func AddMat(K *mat.SymDense, dofs []Dof, k [][]float64) {
	for r, dr := range dofs {
		if dr.Type != Active {
			continue
		}
		for c, dc := range dofs {
			if dc.Type != Active || dr.Index > dc.Index {
				continue
			}
			K.SetSym(dr.Index, dc.Index, K.At(dr.Index, dc.Index)+k[r][c])
		}
	}
}
