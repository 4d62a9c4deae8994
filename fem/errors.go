// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"fmt"
)

// solver errors
var (
	// ErrStiffnessDecomposition indicates that the tangent stiffness matrix is not positive definite
	ErrStiffnessDecomposition = errors.New("fem: decomposition of the stiffness matrix failed")

	// ErrMaxIterations indicates that a Newton-Raphson loop did not converge
	ErrMaxIterations = errors.New("fem: maximum number of iterations exceeded")

	// ErrZeroFrequency indicates that the maximum natural frequency of the system is zero
	ErrZeroFrequency = errors.New("fem: maximum natural frequency is zero")

	// ErrNonPositiveMass indicates that an active dof has no mass
	ErrNonPositiveMass = errors.New("fem: mass of active dof is not positive")

	// ErrEigen indicates that an eigenvalue decomposition failed
	ErrEigen = errors.New("fem: eigenvalue decomposition failed")
)

// SolverError wraps a solver error with information about where it happened
type SolverError struct {
	Op         string  // operation; e.g. "static LC"
	Iterations int     // number of iterations performed
	Residual   float64 // last residual norm
	Wrapped    error
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("%s: %v (iterations = %d, residual = %g)", e.Op, e.Wrapped, e.Iterations, e.Residual)
}

func (e *SolverError) Unwrap() error {
	return e.Wrapped
}
