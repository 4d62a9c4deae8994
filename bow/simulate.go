// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bow

import (
	"math"

	"github.com/bow-simulation/virtualbow-sub000/fem"
	"github.com/bow-simulation/virtualbow-sub000/inp"
	"github.com/bow-simulation/virtualbow-sub000/out"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

// MaxDepartureFactor limits the first dynamic phase to this multiple of the estimated arrow
// departure time
const MaxDepartureFactor = 10.0

// Mode selects the simulations to run
type Mode int

const (
	Static  Mode = iota // statics only
	Dynamic             // statics and dynamics
)

// Progress is called once per recorded state with the progress of the static and dynamic
// simulations in percent. Returning false cancels the simulation
type Progress func(static, dynamic int) bool

// Simulate runs the simulations selected by mode. progress may be nil. A cancelled simulation
// returns the output computed so far and no error
func Simulate(input *inp.Input, mode Mode, progress Progress) (output *out.Output, err error) {
	return Run(input, mode, progress, false)
}

// Run runs the simulations as Simulate; verbose shows messages
func Run(input *inp.Input, mode Mode, progress Progress, verbose bool) (output *out.Output, err error) {
	if err = input.Validate(); err != nil {
		return
	}
	if progress == nil {
		progress = func(int, int) bool { return true }
	}
	model, err := NewModel(input, verbose)
	if err != nil {
		return
	}
	output = &out.Output{Setup: model.Setup}

	// statics
	cancelled := false
	output.Statics, err = model.Statics(func(p int) bool {
		cancelled = !progress(p, 0)
		return !cancelled
	})
	if err != nil || cancelled || mode == Static {
		return
	}

	// dynamics
	output.Dynamics, err = model.Dynamics(output.Statics.DrawingWork, func(p int) bool {
		return progress(100, p)
	})
	return
}

// Statics draws the bow from brace height to full draw in NDrawSteps displacement controlled
// steps. The braced state is the first state. proceed is called with the progress in percent
// after every step; returning false stops the simulation
func (o *Model) Statics(proceed func(percent int) bool) (res *out.Statics, err error) {
	sys := o.Sys
	center := o.Center()
	d := o.Input.Dimensions
	n := o.Input.Settings.NDrawSteps
	solver := fem.NewStaticSolverDC(sys, center.X)
	res = new(out.Statics)
	for i, target := range utl.LinSpace(-d.BraceHeight, -d.DrawLength, n+1) {
		if _, err = solver.Solve(target); err != nil {
			err = chk.Err("static step %d with draw length %g failed:\n%w", i, -target, err)
			break
		}
		o.addState(&res.States)
		if o.Verbose {
			io.Pf("> statics: draw length = %8.4f  draw force = %10.4f\n", -target, res.States.DrawForce[i])
		}
		if !proceed(100 * i / n) {
			break
		}
	}
	o.summaryStatics(res)
	return
}

// Dynamics releases the string from full draw. The first phase ends when the arrow separates
// from the string: the string center moves forward and decelerates faster than the clamp force
// can hold the arrow, or it passes the brace height. The acceleration of the first time step is
// not checked. The arrow then continues on its own node without
// forces while the bow is simulated until TimeSpanFactor times the departure time. work is the
// drawing work used to estimate the departure time and to compute the efficiency
func (o *Model) Dynamics(work float64, proceed func(percent int) bool) (res *out.Dynamics, err error) {
	sys := o.Sys
	center := o.Center()
	s, d, m := o.Input.Settings, o.Input.Dimensions, o.Input.Masses.Arrow
	res = new(out.Dynamics)

	// release
	sys.SetP(center.X, 0)
	sys.Invalidate()
	dt, err := fem.EstimateTimeStep(sys, s.TimeStepFactor)
	if err != nil {
		err = chk.Err("cannot estimate the time step:\n%w", err)
		return
	}
	tEst := (d.DrawLength - d.BraceHeight) * math.Sqrt(2*m/work)
	tMax := MaxDepartureFactor * tEst
	sep := separation{Brace: d.BraceHeight, Amin: -s.ArrowClamp / m, Tmax: tMax, Dt: dt}
	separated := func(sys *fem.System) bool {
		return sep.Check(sys.Time(), sys.GetU(center.X), sys.GetV(center.X), sys.GetA(center.X))
	}
	if o.Verbose {
		io.Pf("> dynamics: dt = %g  estimated departure time = %g\n", dt, tEst)
	}

	// progress in percent of tEnd; the first phase uses the estimated departure time
	tEnd := s.TimeSpanFactor * tEst
	last := 0
	report := func() bool {
		if p := percent(sys.Time(), tEnd); p > last {
			last = p
		}
		return proceed(last)
	}

	// first phase: arrow on the string
	o.addState(&res.States)
	ok, err := o.integrate(sys, dt, separated, &res.States, report)
	if err != nil || !ok {
		o.summaryDynamics(res, work)
		return
	}
	if sys.Time() >= tMax && o.Verbose {
		io.Pfred("> dynamics: arrow did not separate until t = %g\n", sys.Time())
	}

	// separation
	res.ArrowDepartureTime = sys.Time()
	x, _, _ := sys.NodeU(center)
	vx, _, _ := sys.NodeV(center)
	res.ArrowVelocity = vx
	res.ArrowEnergy = 0.5 * m * vx * vx
	node := sys.CreateNode(fem.XOnlyDofs, [3]float64{x, 0, 0})
	sys.SetV(node.X, vx)
	o.Arrow.SetNode(node)
	sys.Invalidate()
	if o.Verbose {
		io.Pforan("> arrow departure at t = %g with v = %g\n", res.ArrowDepartureTime, vx)
	}

	// second phase: bow without arrow
	tEnd = s.TimeSpanFactor * res.ArrowDepartureTime
	if sys.Time() < tEnd {
		stop := func(sys *fem.System) bool { return sys.Time() >= tEnd }
		_, err = o.integrate(sys, dt, stop, &res.States, report)
	}
	o.summaryDynamics(res, work)
	return
}

// separation holds the criteria for the arrow leaving the string
type separation struct {
	Brace float64 // brace height
	Amin  float64 // smallest acceleration the clamp force can give to the arrow
	Tmax  float64 // latest departure time
	Dt    float64 // time step
}

// Check tells whether the arrow separates from the string center with position u, velocity v and
// acceleration a at time t
func (o separation) Check(t, u, v, a float64) bool {
	if u >= -o.Brace || t >= o.Tmax {
		return true
	}
	return t > o.Dt && v > 0 && a < o.Amin
}

// integrate runs a dynamic solver until stop is met, recording one state per sampling interval.
// ok is false if the simulation was cancelled
func (o *Model) integrate(sys *fem.System, dt float64, stop fem.StopFunc, states *out.States, proceed func() bool) (ok bool, err error) {
	solver, err := fem.NewDynamicSolver(sys, dt, o.Input.Settings.SamplingRate, stop)
	if err != nil {
		return
	}
	solver.Verbose = o.Verbose
	for {
		cont, e := solver.Step()
		if e != nil {
			return false, chk.Err("dynamic simulation failed at t = %g:\n%w", sys.Time(), e)
		}
		o.addState(states)
		if !proceed() {
			return false, nil
		}
		if !cont {
			return true, nil
		}
	}
}

// percent returns 100⋅t/tEnd limited to [0, 100]
func percent(t, tEnd float64) int {
	return int(math.Max(0, math.Min(100, 100*t/tEnd)))
}

// states ////////////////////////////////////////////////////////////////////////////////////////

// addState appends the current state of the system to s. Values of the half model are doubled
func (o *Model) addState(s *out.States) {
	sys := o.Sys
	center := o.Center()
	arrow := o.Arrow.Node

	// forces
	var N float64
	for _, bar := range o.Bars {
		N = math.Max(N, bar.NormalForce(sys))
	}
	root := o.Beams[0].NodalForces(sys)
	s.Time = append(s.Time, sys.Time())
	s.DrawLength = append(s.DrawLength, -sys.GetU(center.X))
	s.DrawForce = append(s.DrawForce, -2*sys.GetP(center.X))
	s.StringForce = append(s.StringForce, N)
	s.StrandForce = append(s.StrandForce, N/float64(o.Input.String.NStrands))
	s.GripForce = append(s.GripForce, 2*root[0])
	s.PosArrow = append(s.PosArrow, sys.GetU(arrow.X))
	s.VelArrow = append(s.VelArrow, sys.GetV(arrow.X))
	s.AccArrow = append(s.AccArrow, sys.GetA(arrow.X))

	// energies
	s.EpotLimbs = append(s.EpotLimbs, 2*sys.PotentialEnergy(TagLimb))
	s.EkinLimbs = append(s.EkinLimbs, 2*(sys.KineticEnergy(TagLimb)+sys.KineticEnergy(TagMassLimbTip)))
	s.EpotString = append(s.EpotString, 2*sys.PotentialEnergy(TagString))
	s.EkinString = append(s.EkinString, 2*(sys.KineticEnergy(TagString)+sys.KineticEnergy(TagMassStringTip)+sys.KineticEnergy(TagMassStringCenter)))
	s.EkinArrow = append(s.EkinArrow, 2*sys.KineticEnergy(TagMassArrow))

	// shapes
	xl, yl := make([]float64, len(o.LimbNodes)), make([]float64, len(o.LimbNodes))
	for i, nod := range o.LimbNodes {
		xl[i], yl[i], _ = sys.NodeU(nod)
	}
	xs, ys := make([]float64, len(o.StringNodes)), make([]float64, len(o.StringNodes))
	for i, nod := range o.StringNodes {
		xs[i], ys[i], _ = sys.NodeU(nod)
	}
	s.XLimb = append(s.XLimb, xl)
	s.YLimb = append(s.YLimb, yl)
	s.XString = append(s.XString, xs)
	s.YString = append(s.YString, ys)

	// stresses
	back, belly := o.stresses()
	s.StressBack = append(s.StressBack, back)
	s.StressBelly = append(s.StressBelly, belly)
}

// stresses returns the stresses at the back and belly of each layer [layer][node]. Strains and
// curvatures at the nodes are averages of the adjacent elements
func (o *Model) stresses() (back, belly [][]float64) {
	nn := len(o.LimbNodes)
	ε := make([]float64, nn)
	κ := make([]float64, nn)
	cnt := make([]float64, nn)
	for i, beam := range o.Beams {
		e, κ0, κ1 := beam.Deformations(o.Sys)
		ε[i] += e
		ε[i+1] += e
		κ[i] += κ0
		κ[i+1] += κ1
		cnt[i]++
		cnt[i+1]++
	}
	nl := o.Limb.Nlayers()
	back, belly = utl.Alloc(nl, nn), utl.Alloc(nl, nn)
	for i := 0; i < nn; i++ {
		σb, σl := o.Limb.Stresses(i, ε[i]/cnt[i], κ[i]/cnt[i])
		for k := 0; k < nl; k++ {
			back[k][i], belly[k][i] = σb[k], σl[k]
		}
	}
	return
}

// summaries //////////////////////////////////////////////////////////////////////////////////////

// summaryStatics computes the scalar results of the static simulation
func (o *Model) summaryStatics(res *out.Statics) {
	s := &res.States
	n := s.Len()
	if n == 0 {
		return
	}
	res.FinalDrawForce = s.DrawForce[n-1]
	res.MaxStringForce, res.MaxStrandForce, res.MaxGripForce = maxForces(s)
	res.MaxStress = o.maxStress(s)
	if n < 2 {
		return
	}
	res.DrawingWork = integrate.Trapezoidal(s.DrawLength, s.DrawForce)
	Δ := s.DrawLength[n-1] - s.DrawLength[0]
	if res.FinalDrawForce > 0 {
		res.StorageRatio = res.DrawingWork / (Δ * res.FinalDrawForce)
		res.EnergyStorageFactor = res.DrawingWork / (0.5 * Δ * res.FinalDrawForce)
	}
}

// summaryDynamics computes the scalar results of the dynamic simulation
func (o *Model) summaryDynamics(res *out.Dynamics, work float64) {
	s := &res.States
	if s.Len() == 0 {
		return
	}
	res.MaxStringForce, res.MaxStrandForce, res.MaxGripForce = maxForces(s)
	res.MaxStress = o.maxStress(s)
	if work > 0 {
		res.Efficiency = res.ArrowEnergy / work
	}
}

// maxForces returns the largest string, strand and absolute grip forces
func maxForces(s *out.States) (str, strand, grip float64) {
	str = floats.Max(s.StringForce)
	strand = floats.Max(s.StrandForce)
	for _, f := range s.GripForce {
		grip = math.Max(grip, math.Abs(f))
	}
	return
}

// maxStress returns the largest absolute stress of each layer over all states
func (o *Model) maxStress(s *out.States) (res []float64) {
	res = make([]float64, o.Limb.Nlayers())
	for _, stress := range [][][][]float64{s.StressBack, s.StressBelly} {
		for _, state := range stress {
			for k, layer := range state {
				for _, σ := range layer {
					res[k] = math.Max(res[k], math.Abs(σ))
				}
			}
		}
	}
	return
}
