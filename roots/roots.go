// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package roots implements scalar root finding for the calibration of model parameters. The
// functions may fail to evaluate (e.g. an equilibrium solver does not converge); Secant returns
// such errors while Bisection and StepSearch retry closer to the last successful evaluation
package roots

import (
	"errors"
	"math"

	"github.com/cpmech/gosl/chk"
)

var (
	// ErrStepUnderflow is returned when the step size of a search drops below its minimum
	ErrStepUnderflow = errors.New("roots: step size underflow")

	// ErrNoConvergence is returned when the maximum number of iterations is exceeded
	ErrNoConvergence = errors.New("roots: no convergence")

	// ErrNoBracket is returned when the bracketing interval does not contain a sign change
	ErrNoBracket = errors.New("roots: interval does not bracket a root")
)

// Func is a scalar function that may fail
type Func func(x float64) (float64, error)

// Settings holds the tolerances of the root finders
type Settings struct {
	Xtol    float64 // tolerance on x
	Ftol    float64 // tolerance on |f(x)|
	MaxIter int     // maximum number of iterations
}

// DefaultSettings returns the default tolerances
func DefaultSettings() Settings {
	return Settings{Xtol: 1e-8, Ftol: 1e-8, MaxIter: 50}
}

// Secant finds a root of f starting from the two guesses x0 and x1
func Secant(f Func, x0, x1 float64, s Settings) (x float64, err error) {
	f0, err := f(x0)
	if err != nil {
		return
	}
	f1, err := f(x1)
	if err != nil {
		return
	}
	for it := 0; it < s.MaxIter; it++ {
		if math.Abs(f1) <= s.Ftol {
			return x1, nil
		}
		if f1 == f0 {
			return x1, chk.Err("secant: flat function at x = %g: %w", x1, ErrNoConvergence)
		}
		x = x1 - f1*(x1-x0)/(f1-f0)
		if math.Abs(x-x1) <= s.Xtol*math.Max(1, math.Abs(x1)) {
			return
		}
		x0, f0 = x1, f1
		x1 = x
		f1, err = f(x1)
		if err != nil {
			return
		}
	}
	return x1, chk.Err("secant: %d iterations: %w", s.MaxIter, ErrNoConvergence)
}

// Bisection finds a root of f in the interval [a, b] where f(a) = fa and f(b) = fb have
// different signs. b is taken as the last point where f was evaluated. If an evaluation fails,
// it is repeated halfway towards the last successful evaluation; the error is returned once
// this point is closer than Xtol
func Bisection(f Func, a, b, fa, fb float64, s Settings) (x float64, err error) {
	if fa == 0 {
		return a, nil
	}
	if fb == 0 {
		return b, nil
	}
	if math.Signbit(fa) == math.Signbit(fb) {
		return a, chk.Err("bisection: f(%g) = %g and f(%g) = %g: %w", a, fa, b, fb, ErrNoBracket)
	}
	xl := b
	for it := 0; it < s.MaxIter; it++ {
		x = 0.5 * (a + b)
		fx, e := f(x)
		for e != nil {
			x = 0.5 * (x + xl)
			if math.Abs(x-xl) <= s.Xtol*math.Max(1, math.Abs(xl)) {
				return xl, chk.Err("bisection: evaluation failed close to x = %g:\n%w", xl, e)
			}
			fx, e = f(x)
		}
		xl = x
		if math.Abs(fx) <= s.Ftol {
			return
		}
		if math.Signbit(fx) == math.Signbit(fa) {
			a, fa = x, fx
		} else {
			b = x
		}
		if math.Abs(b-a) <= s.Xtol*math.Max(1, math.Abs(x)) {
			return
		}
	}
	return x, chk.Err("bisection: %d iterations: %w", s.MaxIter, ErrNoConvergence)
}
