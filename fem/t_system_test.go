// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// spring is a linear spring/damper between the x dofs of two nodes with lumped masses
type spring struct {
	n0, n1 Node
	l0     float64 // rest length
	k, c   float64 // stiffness and damping
	m      float64 // mass at each node
}

func (o *spring) dofs() []Dof { return []Dof{o.n0.X, o.n1.X} }

func (o *spring) AddMasses(sys *System, M []float64) {
	AddDiag(M, o.dofs(), []float64{o.m, o.m})
}

func (o *spring) AddInternalForces(sys *System, q []float64) {
	f := o.k*(sys.GetU(o.n1.X)-sys.GetU(o.n0.X)-o.l0) + o.c*(sys.GetV(o.n1.X)-sys.GetV(o.n0.X))
	AddVec(q, o.dofs(), []float64{-f, f})
}

func (o *spring) AddTangentStiffness(sys *System, K *mat.SymDense) {
	AddMat(K, o.dofs(), [][]float64{{o.k, -o.k}, {-o.k, o.k}})
}

func (o *spring) AddTangentDamping(sys *System, D *mat.SymDense) {
	AddMat(D, o.dofs(), [][]float64{{o.c, -o.c}, {-o.c, o.c}})
}

func (o *spring) PotentialEnergy(sys *System) float64 {
	Δ := sys.GetU(o.n1.X) - sys.GetU(o.n0.X) - o.l0
	return 0.5 * o.k * Δ * Δ
}

func (o *spring) KineticEnergy(sys *System) float64 {
	v0, v1 := sys.GetV(o.n0.X), sys.GetV(o.n1.X)
	return 0.5 * o.m * (v0*v0 + v1*v1)
}

// chain returns a system with n springs in series along x; the first node is fixed
func chain(n int, k, c, m float64) (sys *System, nodes []Node) {
	sys = NewSystem()
	nodes = append(nodes, sys.CreateNode(FixedDofs, [3]float64{0, 0, 0}))
	for i := 1; i <= n; i++ {
		nodes = append(nodes, sys.CreateNode(XOnlyDofs, [3]float64{float64(i), 0, 0}))
		sys.Add(&spring{nodes[i-1], nodes[i], 1, k, c, m}, "springs")
	}
	return
}

func Test_system01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("system01. dofs and nodes")

	sys := NewSystem()
	n0 := sys.CreateNode(PointDofs, [3]float64{1, 2, 3})
	n1 := sys.CreateNode(FreeDofs, [3]float64{4, 5, 6})
	n2 := sys.CreateNode(FixedDofs, [3]float64{7, 8, 9})

	chk.Int(tst, "ndof", sys.Ndof(), 5)
	chk.Ints(tst, "indices", []int{n0.X.Index, n0.Y.Index, n1.X.Index, n1.Y.Index, n1.Phi.Index}, []int{0, 1, 2, 3, 4})
	chk.Ints(tst, "fixed indices", []int{n0.Phi.Index, n2.X.Index, n2.Y.Index, n2.Phi.Index}, []int{0, 1, 2, 3})
	chk.Array(tst, "u", 1e-17, sys.U(), []float64{1, 2, 4, 5, 6})
	chk.Float64(tst, "u fixed", 1e-17, sys.GetU(n2.Y), 8)
	chk.Float64(tst, "v fixed", 1e-17, sys.GetV(n0.Phi), 0)
	chk.Float64(tst, "a fixed", 1e-17, sys.GetA(n2.X), 0)
	chk.Float64(tst, "p fixed", 1e-17, sys.GetP(n2.X), 0)

	sys.SetU(n1.Phi, -1)
	sys.SetV(n1.X, 10)
	sys.SetP(n0.Y, 20)
	chk.Float64(tst, "u", 1e-17, sys.GetU(n1.Phi), -1)
	chk.Float64(tst, "v", 1e-17, sys.GetV(n1.X), 10)
	chk.Float64(tst, "p", 1e-17, sys.GetP(n0.Y), 20)
	chk.Array(tst, "M (no elements)", 1e-17, sys.M(), []float64{0, 0, 0, 0, 0})

	// fixed dofs cannot be modified
	defer func() {
		if err := recover(); err == nil {
			tst.Errorf("SetU on a fixed dof should panic")
		}
	}()
	sys.SetU(n2.X, 0)
}

func Test_system02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("system02. lazy evaluation and groups")

	sys, nodes := chain(2, 100, 1, 0.5)
	sys.Add(&spring{nodes[0], nodes[2], 2, 50, 0, 0}, "extra")

	chk.Int(tst, "len(springs)", len(sys.Group("springs")), 2)
	chk.Int(tst, "len(extra)", len(sys.Group("extra")), 1)
	chk.Int(tst, "len(all)", len(sys.Elements()), 3)
	chk.Int(tst, "GroupOf", len(GroupOf[*spring](sys, "springs")), 2)

	chk.Array(tst, "q0", 1e-15, sys.Q(), []float64{0, 0})
	chk.Array(tst, "M", 1e-15, sys.M(), []float64{1, 0.5})

	sys.SetU(nodes[2].X, 2.1)
	chk.Array(tst, "q1", 1e-12, sys.Q(), []float64{-10, 10 + 5})
	sys.SetV(nodes[1].X, 2)
	chk.Array(tst, "q2", 1e-12, sys.Q(), []float64{-10 + 2 + 2, 10 - 2 + 5})

	K := sys.K()
	chk.Deep2(tst, "K", 1e-15, [][]float64{
		{K.At(0, 0), K.At(0, 1)},
		{K.At(1, 0), K.At(1, 1)},
	}, [][]float64{
		{200, -100},
		{-100, 150},
	})
	D := sys.D()
	chk.Float64(tst, "D00", 1e-15, D.At(0, 0), 2)

	chk.Float64(tst, "Epot springs", 1e-12, sys.PotentialEnergy("springs"), 0.5*100*0.01)
	chk.Float64(tst, "Epot all", 1e-12, sys.PotentialEnergy(""), 0.5*100*0.01+0.5*50*0.01)
	chk.Float64(tst, "Ekin", 1e-12, sys.KineticEnergy("springs"), 0.5*0.5*4*2)
}
