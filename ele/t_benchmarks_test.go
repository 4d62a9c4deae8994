// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"errors"
	"math"
	"testing"

	"github.com/bow-simulation/virtualbow-sub000/ana"
	"github.com/bow-simulation/virtualbow-sub000/fem"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// truss returns the two-bar truss of sol with the apex free to move in x and y
func truss(sol ana.TwoBarTruss) (sys *fem.System, apex fem.Node) {
	sys = fem.NewSystem()
	left := sys.CreateNode(fem.FixedDofs, [3]float64{-sol.B, 0, 0})
	right := sys.CreateNode(fem.FixedDofs, [3]float64{sol.B, 0, 0})
	apex = sys.CreateNode(fem.PointDofs, [3]float64{0, sol.H, 0})
	L0 := sol.RestLength()
	sys.Add(NewBar(left, apex, L0, sol.EA, 0, 0), "bars")
	sys.Add(NewBar(right, apex, L0, sol.EA, 0, 0), "bars")
	return
}

// cantilever returns a straight cantilever along x made of n beams
func cantilever(n int, L, EA, EI float64) (sys *fem.System, nodes []fem.Node) {
	sys = fem.NewSystem()
	nodes = append(nodes, sys.CreateNode(fem.FixedDofs, [3]float64{0, 0, 0}))
	for i := 1; i <= n; i++ {
		nodes = append(nodes, sys.CreateNode(fem.FreeDofs, [3]float64{L * float64(i) / float64(n), 0, 0}))
		sys.Add(NewBeam(sys, nodes[i-1], nodes[i], EA, 0, EI, 1), "beams")
	}
	return
}

// solveIncrements applies the load on dof in n equal increments
func solveIncrements(tst *testing.T, sys *fem.System, dof fem.Dof, load float64, n int) bool {
	solver := fem.NewStaticSolverLC(sys)
	solver.Verbose = chk.Verbose
	for i := 1; i <= n; i++ {
		sys.SetP(dof, load*float64(i)/float64(n))
		if _, err := solver.Solve(); err != nil {
			tst.Errorf("Solve failed at increment %d:\n%v", i, err)
			return false
		}
	}
	return true
}

func Test_truss01(tst *testing.T) {

	//tests.Verbose()
	chk.PrintTitle("truss01. load control: linear deflection of two-bar truss")

	sol := ana.TwoBarTruss{B: 3, H: 4, EA: 1e7}
	sys, apex := truss(sol)
	P := 1.0
	sys.SetP(apex.Y, P)
	info, err := fem.NewStaticSolverLC(sys).Solve()
	if err != nil {
		tst.Errorf("Solve failed:\n%v", err)
		return
	}
	δ := sol.LinearDeflection(P)
	io.Pforan("iterations = %d  δ = %v\n", info.Iterations, δ)
	chk.Float64(tst, "δ", 1e-6*δ, sys.GetU(apex.Y)-sol.H, δ)
	chk.Float64(tst, "x", 1e-15, sys.GetU(apex.X), 0)
}

func Test_truss02(tst *testing.T) {

	//tests.Verbose()
	chk.PrintTitle("truss02. displacement control: large deflection of two-bar truss")

	sol := ana.TwoBarTruss{B: 1, H: 1, EA: 1000}
	sys, apex := truss(sol)
	solver := fem.NewStaticSolverDC(sys, apex.Y)
	solver.Verbose = chk.Verbose
	for k := 1; k <= 12; k++ {
		s := sol.H + 0.1*float64(k)
		info, err := solver.Solve(s)
		if err != nil {
			tst.Errorf("Solve failed:\n%v", err)
			return
		}
		F := sol.Force(s)
		io.Pforan("s = %.2f  F = %12.6f  iterations = %d\n", s, F, info.Iterations)
		chk.Float64(tst, io.Sf("u(%g)", s), 1e-12, sys.GetU(apex.Y), s)
		chk.Float64(tst, io.Sf("F(%g)", s), 1e-9*math.Max(1, F), sys.GetP(apex.Y), F)
	}
}

func Test_truss03(tst *testing.T) {

	//tests.Verbose()
	chk.PrintTitle("truss03. iteration limit of the static solvers")

	sol := ana.TwoBarTruss{B: 1, H: 1, EA: 1000}
	check := func(info fem.Info, err error, op string) {
		if !errors.Is(err, fem.ErrMaxIterations) {
			tst.Errorf("%s: ErrMaxIterations expected. got %v", op, err)
			return
		}
		var serr *fem.SolverError
		if !errors.As(err, &serr) {
			tst.Errorf("%s: SolverError expected", op)
			return
		}
		io.Pforan("err = %v\n", err)
		chk.Int(tst, op+": outcome", int(info.Outcome), int(fem.MaxIterationsExceeded))
		chk.Int(tst, op+": iterations", info.Iterations, 1)
		chk.Int(tst, op+": iterations (error)", serr.Iterations, 1)
		chk.String(tst, info.Outcome.String(), "max iterations exceeded")
		if !(serr.Residual > 0) {
			tst.Errorf("%s: residual must be positive. got %g", op, serr.Residual)
		}
	}

	// load control: one Newton step does not reach the nonlinear equilibrium
	sys, apex := truss(sol)
	sys.SetP(apex.Y, sol.Force(sol.H+0.5))
	lc := fem.NewStaticSolverLC(sys)
	lc.MaxIter = 1
	info, err := lc.Solve()
	check(info, err, "LC")

	// displacement control
	sys, apex = truss(sol)
	dc := fem.NewStaticSolverDC(sys, apex.Y)
	dc.MaxIter = 1
	info, err = dc.Solve(sol.H + 0.5)
	check(info, err, "DC")

	// both converge with the default limit
	sys, apex = truss(sol)
	sys.SetP(apex.Y, sol.Force(sol.H+0.5))
	if _, err = fem.NewStaticSolverLC(sys).Solve(); err != nil {
		tst.Errorf("LC failed:\n%v", err)
		return
	}
	chk.Float64(tst, "u", 1e-6, sys.GetU(apex.Y), sol.H+0.5)
}

func Test_oscillator01(tst *testing.T) {

	//tests.Verbose()
	chk.PrintTitle("oscillator01. bar and mass")

	for _, c := range []float64{0, 2} {
		osc := ana.Oscillator{M: 1, C: c, K: 100, U0: 0.1}
		sys := fem.NewSystem()
		n0 := sys.CreateNode(fem.FixedDofs, [3]float64{0, 0, 0})
		n1 := sys.CreateNode(fem.XOnlyDofs, [3]float64{1 + osc.U0, 0, 0})
		sys.Add(NewBar(n0, n1, 1, osc.K, osc.C, 0), "bar")
		sys.Add(NewMass(n1, osc.M, 0), "mass")

		T := osc.Period()
		solver, err := fem.NewDynamicSolver(sys, T/10000, 100/T, nil)
		if err != nil {
			tst.Errorf("NewDynamicSolver failed:\n%v", err)
			return
		}
		var maxerr float64
		for sys.Time() < T {
			if _, err = solver.Step(); err != nil {
				tst.Errorf("Step failed:\n%v", err)
				return
			}
			maxerr = math.Max(maxerr, math.Abs(sys.GetU(n1.X)-1-osc.U(sys.Time())))
		}
		io.Pforan("c = %v: max error = %v\n", c, maxerr)
		if maxerr > 1e-4*osc.U0 {
			tst.Errorf("error is too large: %v", maxerr)
		}

		// energy balance without damping
		if c == 0 {
			E := sys.PotentialEnergy("") + sys.KineticEnergy("")
			chk.Float64(tst, "energy", 1e-4*0.5*osc.K*osc.U0*osc.U0, E, 0.5*osc.K*osc.U0*osc.U0)
		}
	}
}

func Test_cantilever01(tst *testing.T) {

	//tests.Verbose()
	chk.PrintTitle("cantilever01. small tip load")

	// tip rotation of 5e-3: nearly linear, with a residual far above roundoff
	L, EA, EI, P := 1.0, 1e4, 1.0, 1e-2
	sys, nodes := cantilever(20, L, EA, EI)
	tip := nodes[len(nodes)-1]
	if !solveIncrements(tst, sys, tip.Y, P, 1) {
		return
	}
	v, θ := ana.CantileverLinear(P, L, EI)
	io.Pforan("v = %v  θ = %v\n", sys.GetU(tip.Y), sys.GetU(tip.Phi))
	chk.Float64(tst, "v", 1e-3*v, sys.GetU(tip.Y), v)
	chk.Float64(tst, "θ", 1e-3*θ, sys.GetU(tip.Phi), θ)
}

func Test_cantilever02(tst *testing.T) {

	//tests.Verbose()
	chk.PrintTitle("cantilever02. large tip load (elastica)")

	L, EA, EI := 1.0, 1e6, 1.0
	P := EI / (L * L)
	var sol ana.Elastica
	sol.Init(P, L, EI)

	sys, nodes := cantilever(50, L, EA, EI)
	tip := nodes[len(nodes)-1]
	if !solveIncrements(tst, sys, tip.Y, P, 10) {
		return
	}
	x, y, φ := sys.NodeU(tip)
	io.Pforan("x = %v (%v)  y = %v (%v)  φ = %v (%v)\n", x, sol.X, y, sol.Y, φ, sol.Theta)
	chk.Float64(tst, "v", 1e-3*sol.Y, y, sol.Y)
	chk.Float64(tst, "θ", 1e-3*sol.Theta, φ, sol.Theta)
	chk.Float64(tst, "u", 1e-3*L, L-x, L-sol.X)

	// moment at the root balances the tip load
	root := fem.GroupOf[*Beam](sys, "beams")[0].ElasticForces(sys)
	chk.Float64(tst, "root moment", 1e-5*P*x, root[1], -P*x)
}

func Test_cantilever03(tst *testing.T) {

	//tests.Verbose()
	chk.PrintTitle("cantilever03. tip moment: quarter arc and closed circle")

	L, EA, EI := 1.0, 1e6, 1.0
	for _, θ := range []float64{math.Pi / 2, 2 * math.Pi} {
		sys, nodes := cantilever(40, L, EA, EI)
		tip := nodes[len(nodes)-1]
		M := θ * EI / L
		if !solveIncrements(tst, sys, tip.Phi, M, 20) {
			return
		}
		xr, yr, θr := ana.CantileverMoment(M, L, EI)
		x, y, φ := sys.NodeU(tip)
		io.Pforan("θ = %v: x = %v (%v)  y = %v (%v)  φ = %v\n", θ, x, xr, y, yr, φ)
		chk.Float64(tst, io.Sf("x (θ = %g)", θ), 1e-3*L, x, xr)
		chk.Float64(tst, io.Sf("y (θ = %g)", θ), 1e-3*L, y, yr)
		chk.Float64(tst, io.Sf("φ (θ = %g)", θ), 1e-3*θr, φ, θr)
		chk.Float64(tst, io.Sf("energy (θ = %g)", θ), 1e-3*M*θ/2, sys.PotentialEnergy("beams"), M*θ/2)
	}
}
