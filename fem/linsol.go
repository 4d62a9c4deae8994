// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"gonum.org/v1/gonum/mat"
)

// linSol solves K⋅x = b with the Cholesky factors of the current tangent stiffness
type linSol struct {
	chol mat.Cholesky
	x    *mat.VecDense
}

// factorize computes the factors of K; returns ErrStiffnessDecomposition if K is not positive definite
func (o *linSol) factorize(K *mat.SymDense) (err error) {
	if K == nil || !o.chol.Factorize(K) {
		return ErrStiffnessDecomposition
	}
	return
}

// solve solves K⋅x = b and writes x into res. Ill-conditioning is tolerated; penalty terms make
// K stiff but the factors remain usable
func (o *linSol) solve(res, b []float64) (err error) {
	n := len(b)
	if o.x == nil || o.x.Len() != n {
		o.x = mat.NewVecDense(n, nil)
	}
	err = o.chol.SolveVecTo(o.x, mat.NewVecDense(n, b))
	if err != nil {
		if _, ok := err.(mat.Condition); !ok {
			return ErrStiffnessDecomposition
		}
		err = nil
	}
	copy(res, o.x.RawVector().Data)
	return
}
