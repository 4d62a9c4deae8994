// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// StopFunc tells the dynamic solver to stop; it is called after every time step
type StopFunc func(sys *System) bool

// EstimateTimeStep returns stepFactor times the stability limit of DynamicSolver. For a mode with
// frequency ω and modal damping c = 2⋅ζ⋅ω the limit is
//
//   dt = 2 / (√(ω² + c²) + c)
//
// which is 2/ω without damping and 1/c for a mode without stiffness
func EstimateTimeStep(sys *System, stepFactor float64) (dt float64, err error) {
	ω, c, err := ModalDamping(sys)
	if err != nil {
		return
	}
	dt = math.Inf(1)
	for i := range ω {
		den := math.Sqrt(ω[i]*ω[i]+c[i]*c[i]) + c[i]
		if den > 0 {
			dt = math.Min(dt, 2.0/den)
		}
	}
	if math.IsInf(dt, 1) {
		return 0, ErrZeroFrequency
	}
	return stepFactor * dt, nil
}

// DynamicSolver integrates the equations of motion M⋅a = p - q(u, v) with the explicit central
// difference method
//
//   uₙ₊₁ = 2⋅uₙ - uₙ₋₁ + dt²⋅aₙ
//   vₙ   = (1.5⋅uₙ - 2⋅uₙ₋₁ + 0.5⋅uₙ₋₂) / dt
//
// The velocity is evaluated right after uₙ₊₁ is known, hence only uₙ₋₁ needs to be stored.
// The state of the system is sampled every 1/SamplingRate; see Step
type DynamicSolver struct {
	Verbose bool // show messages

	sys   *System   // system
	dt    float64   // time step
	Δts   float64   // sampling interval
	stop  StopFunc  // stop criterion
	nstep int       // number of time steps performed
	up1   []float64 // uₙ₋₁
	un    []float64 // uₙ₊₁ and auxiliary
	vn    []float64 // vₙ₊₁
	an    []float64 // aₙ₊₁
}

// NewDynamicSolver returns a new solver starting from the current state {u, v, p} of sys.
// stop may be nil
func NewDynamicSolver(sys *System, dt, samplingRate float64, stop StopFunc) (o *DynamicSolver, err error) {
	if dt <= 0 || samplingRate <= 0 {
		chk.Panic("NewDynamicSolver: time step and sampling rate must be positive. dt=%g, rate=%g", dt, samplingRate)
	}
	o = new(DynamicSolver)
	o.sys = sys
	o.dt = dt
	o.Δts = 1.0 / samplingRate
	o.stop = stop

	// initial accelerations
	n := sys.Ndof()
	o.an = make([]float64, n)
	if err = o.accelerations(); err != nil {
		return nil, err
	}

	// fictitious previous state from a second order Taylor expansion
	u, v, a := sys.U(), sys.V(), sys.A()
	o.up1 = make([]float64, n)
	o.un = make([]float64, n)
	o.vn = make([]float64, n)
	for i := 0; i < n; i++ {
		o.up1[i] = u[i] - dt*v[i] + dt*dt/2.0*a[i]
	}
	return
}

// Dt returns the time step
func (o *DynamicSolver) Dt() float64 { return o.dt }

// Nstep returns the number of time steps performed so far
func (o *DynamicSolver) Nstep() int { return o.nstep }

// Step advances the solution by time steps of size dt until the next sampling time is reached
// or the stop criterion is met. It returns false if the integration should stop
func (o *DynamicSolver) Step() (cont bool, err error) {
	tnext := o.sys.Time() + o.Δts
	for o.sys.Time() < tnext {
		if err = o.step(); err != nil {
			return
		}
		if o.stop != nil && o.stop(o.sys) {
			if o.Verbose {
				io.Pforan("> stop criterion met at t = %g after %d steps\n", o.sys.Time(), o.nstep)
			}
			return false, nil
		}
	}
	return true, nil
}

// step performs one time step
func (o *DynamicSolver) step() (err error) {
	u, a := o.sys.U(), o.sys.A()
	dt := o.dt
	for i := range u {
		o.un[i] = 2.0*u[i] - o.up1[i] + dt*dt*a[i]
		o.vn[i] = (1.5*o.un[i] - 2.0*u[i] + 0.5*o.up1[i]) / dt
	}
	copy(o.up1, u)
	o.sys.SetUVec(o.un)
	o.sys.SetVVec(o.vn)
	o.sys.SetTime(o.sys.Time() + dt)
	o.nstep++
	return o.accelerations()
}

// accelerations computes a = M⁻¹⋅(p - q) for the current state
func (o *DynamicSolver) accelerations() (err error) {
	M := o.sys.M()
	if err = checkMasses(M); err != nil {
		return
	}
	p, q := o.sys.P(), o.sys.Q()
	for i := range o.an {
		o.an[i] = (p[i] - q[i]) / M[i]
	}
	o.sys.SetAVec(o.an)
	return
}
