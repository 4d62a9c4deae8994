// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package roots

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// step adaptation limits
const (
	StepGrowth = 2.0 // maximum factor between two consecutive steps
	StepShrink = 0.5 // factor applied to the step after a failed evaluation
)

// StepSearch finds the first sign change of f walking from x0 in the direction of dx. f(x0)
// itself is not evaluated; the sign of f(x0+dx) is the reference. After every successful step,
// the next step is adapted from a secant estimate of the root, limited to [|dx|/2, 2|dx|]. If
// an evaluation fails, the step is halved and the evaluation repeated from the last good point;
// ErrStepUnderflow is returned when |dx| < MinStep. Once a sign change is bracketed, the root is
// refined by bisection starting next to the last good point
type StepSearch struct {
	Settings         // tolerances of the final bisection
	MinStep  float64 // minimum step size
	Verbose  bool    // show messages

	// statistics
	Steps    int // number of successful steps
	Failures int // number of failed evaluations
}

// NewStepSearch returns a search with default settings
func NewStepSearch(minStep float64) *StepSearch {
	return &StepSearch{Settings: DefaultSettings(), MinStep: minStep}
}

// Find runs the search
func (o *StepSearch) Find(f Func, x0, dx float64) (x float64, err error) {
	if dx == 0 {
		chk.Panic("StepSearch: initial step must not be zero")
	}
	o.Steps, o.Failures = 0, 0
	var xa, fa float64 // last good point
	started := false
	for it := 0; it < o.MaxIter*10; it++ {
		if math.Abs(dx) < o.MinStep {
			return xa, chk.Err("step search at x = %g: |dx| = %g < %g: %w", xa, math.Abs(dx), o.MinStep, ErrStepUnderflow)
		}
		xb := x0 + dx
		if started {
			xb = xa + dx
		}
		fb, e := f(xb)
		if e != nil {
			o.Failures++
			if o.Verbose {
				io.Pfred("> step search: evaluation at x = %g failed: %v\n", xb, e)
			}
			dx *= StepShrink
			continue
		}
		o.Steps++
		if o.Verbose {
			io.Pf("> step search: x = %23.15e  f = %23.15e\n", xb, fb)
		}
		if !started {
			xa, fa, started = xb, fb, true
			if fb == 0 {
				return xb, nil
			}
			continue
		}
		if fb == 0 {
			return xb, nil
		}
		if math.Signbit(fa) != math.Signbit(fb) {
			return Bisection(f, xa, xb, fa, fb, o.Settings)
		}

		// secant estimate of the distance to the root
		next := dx * StepGrowth
		if fb != fa {
			est := -fb * (xb - xa) / (fb - fa)
			if est*dx > 0 {
				next = math.Copysign(math.Min(math.Max(math.Abs(est), StepShrink*math.Abs(dx)), StepGrowth*math.Abs(dx)), dx)
			}
		}
		xa, fa, dx = xb, fb, next
	}
	return xa, chk.Err("step search: %d evaluations: %w", o.MaxIter*10, ErrNoConvergence)
}
