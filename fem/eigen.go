// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// Mode holds the natural frequency and damping ratio of a damped vibration mode
type Mode struct {
	Omega float64 // natural (undamped) angular frequency ω = |λ|
	Zeta  float64 // damping ratio ζ = -Re(λ) / |λ|
}

// checkMasses returns ErrNonPositiveMass if any active dof has no mass
func checkMasses(M []float64) error {
	for _, m := range M {
		if !(m > 0) {
			return ErrNonPositiveMass
		}
	}
	return nil
}

// MaxNaturalFrequency returns the largest ω of the undamped eigenproblem (K - ω²⋅M)⋅x = 0 with
// lumped masses M, computed via the symmetric matrix M^(-1/2)⋅K⋅M^(-1/2)
func MaxNaturalFrequency(sys *System) (ω float64, err error) {
	M := sys.M()
	if err = checkMasses(M); err != nil {
		return
	}
	K := sys.K()
	n := len(M)
	A := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			A.SetSym(i, j, K.At(i, j)/math.Sqrt(M[i]*M[j]))
		}
	}
	var eig mat.EigenSym
	if !eig.Factorize(A, false) {
		return 0, ErrEigen
	}
	for _, λ := range eig.Values(nil) {
		if λ > 0 {
			ω = math.Max(ω, math.Sqrt(λ))
		}
	}
	if ω == 0 {
		err = ErrZeroFrequency
	}
	return
}

// ModalDamping returns the natural frequencies ωᵢ of the undamped eigenproblem together with the
// modal damping coefficients cᵢ = xᵢᵀ⋅D⋅xᵢ of the mass-normalised eigenvectors xᵢ. For damping
// proportional to M and K, cᵢ = 2⋅ζᵢ⋅ωᵢ exactly
func ModalDamping(sys *System) (ω, c []float64, err error) {
	M := sys.M()
	if err = checkMasses(M); err != nil {
		return
	}
	K, D := sys.K(), sys.D()
	n := len(M)
	A := mat.NewSymDense(n, nil)
	B := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s := math.Sqrt(M[i] * M[j])
			A.SetSym(i, j, K.At(i, j)/s)
			B.SetSym(i, j, D.At(i, j)/s)
		}
	}
	var eig mat.EigenSym
	if !eig.Factorize(A, true) {
		return nil, nil, ErrEigen
	}
	var V mat.Dense
	eig.VectorsTo(&V)
	ω = make([]float64, n)
	c = make([]float64, n)
	for i, λ := range eig.Values(nil) {
		ω[i] = math.Sqrt(math.Max(λ, 0))
		y := V.ColView(i)
		c[i] = mat.Inner(y, B, y)
	}
	return
}

// DampedModes returns the modes of the damped eigenproblem (λ²⋅M + λ⋅D + K)⋅x = 0. This is the
// generalized problem [[0,K],[K,D]]⋅z = λ⋅[[K,0],[0,-M]]⋅z with z = [x, λx]; it is solved here as
// the standard problem of the state matrix [[0,I],[-M⁻¹K,-M⁻¹D]]. Only one mode of each
// complex-conjugate pair is returned; modes with non-finite or zero eigenvalues are skipped
func DampedModes(sys *System) (modes []Mode, err error) {
	M := sys.M()
	if err = checkMasses(M); err != nil {
		return
	}
	K, D := sys.K(), sys.D()
	n := len(M)
	A := mat.NewDense(2*n, 2*n, nil)
	for i := 0; i < n; i++ {
		A.Set(i, n+i, 1)
		for j := 0; j < n; j++ {
			A.Set(n+i, j, -K.At(i, j)/M[i])
			A.Set(n+i, n+j, -D.At(i, j)/M[i])
		}
	}
	var eig mat.Eigen
	if !eig.Factorize(A, mat.EigenNone) {
		return nil, ErrEigen
	}
	for _, λ := range eig.Values(nil) {
		if imag(λ) < 0 || cmplx.IsNaN(λ) || cmplx.IsInf(λ) {
			continue
		}
		ω := cmplx.Abs(λ)
		if ω == 0 {
			continue
		}
		modes = append(modes, Mode{Omega: ω, Zeta: -real(λ) / ω})
	}
	return
}

// MinFrequencyMode returns the damped mode with the lowest natural frequency
func MinFrequencyMode(sys *System) (mode Mode, err error) {
	modes, err := DampedModes(sys)
	if err != nil {
		return
	}
	if len(modes) == 0 {
		err = ErrZeroFrequency
		return
	}
	mode = modes[0]
	for _, m := range modes[1:] {
		if m.Omega < mode.Omega {
			mode = m
		}
	}
	return
}
