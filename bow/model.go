// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package bow implements the finite element model of a bow with string and arrow, its
// calibration and the static and dynamic simulations
package bow

import (
	"math"

	"github.com/bow-simulation/virtualbow-sub000/ele"
	"github.com/bow-simulation/virtualbow-sub000/fem"
	"github.com/bow-simulation/virtualbow-sub000/geom"
	"github.com/bow-simulation/virtualbow-sub000/inp"
	"github.com/bow-simulation/virtualbow-sub000/out"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/spatial/r2"
)

// empirical constants
const (
	ConstraintStiffnessFactor = 10.0 // stiffness of the tip constraint relative to EA/l of one string element
	ContactStiffness          = 1e6  // stiffness of the contact between limb and string [N/m]
	ContactEpsilon            = 1e-3 // penetration of the transition from quadratic to linear contact force [m]
	StringMinStep             = 1e-6 // minimum step of the string length search relative to the initial length
	StringInitialStep         = 1e-3 // first step of the string length search relative to the initial length
)

// group tags
const (
	TagLimb             = "limb"
	TagString           = "string"
	TagContact          = "contact"
	TagConstraint       = "constraint"
	TagMassLimbTip      = "mass limb tip"
	TagMassStringTip    = "mass string tip"
	TagMassStringCenter = "mass string center"
	TagMassArrow        = "mass arrow"
)

// Model holds the finite element model of the upper half of the bow. The lower half follows
// from the symmetry about the x-axis; the grip is at the origin and the arrow points along +x
//
//           limb (beams)
//         ,'`.
//   (tip) o   `.  string (bars)
//         |     `.
//         o       o (string center, arrow) --> x
//   (root)
//
type Model struct {
	Verbose bool // show messages

	Input *inp.Input      // input data
	Limb  *LimbProperties // limb properties
	Sys   *fem.System     // system

	LimbNodes   []fem.Node          // from root to tip
	StringNodes []fem.Node          // from tip to center
	Beams       []*ele.Beam         // limb elements
	Bars        []*ele.Bar          // string elements
	Tip         *ele.Constraint     // ties the string to the limb tip
	Contact     *ele.ContactHandler // contact between limb and string
	Arrow       *ele.Mass           // half of the arrow mass

	Setup out.Setup // properties computed while building the model
}

// NewModel builds and calibrates the model of the bow given by input, which must be valid:
//  1. limb beams from the sampled cross-sections
//  2. damping of the limb from the damping ratio of its lowest mode
//  3. string bars, contact between limb and string, and tip constraint
//  4. string length such that the bow is braced at the brace height
//  5. damping of the string
//  6. point masses
func NewModel(input *inp.Input, verbose bool) (o *Model, err error) {
	o = &Model{Input: input, Verbose: verbose}
	s, d := input.Settings, input.Dimensions
	o.Limb = NewLimbProperties(input, s.NLimbElements)

	// limb
	β, ω, err := o.limbDamping()
	if err != nil {
		return nil, err
	}
	o.Sys = fem.NewSystem()
	o.LimbNodes, o.Beams = addLimb(o.Sys, o.Limb, input.Masses.LimbTip)
	for _, b := range o.Beams {
		b.SetDamping(β)
	}
	if o.Verbose {
		io.Pf("> limb: length = %g  mass = %g  ω = %g  β = %g\n", o.Limb.Length, o.Limb.Mass(), ω, β)
	}

	// initial string along the belly
	itip := len(o.LimbNodes) - 1
	if x := o.Limb.Belly(itip).X; x <= -d.BraceHeight {
		return nil, chk.Err("unbraced limb tip at x = %g is behind the brace line at x = %g: %w", x, -d.BraceHeight, ErrBraceHeightTooLow)
	}
	points := make([]r2.Vec, 0, itip+2)
	for i := itip; i >= 0; i-- {
		points = append(points, o.Limb.Belly(i))
	}
	points = append(points, r2.Vec{X: -d.BraceHeight, Y: 0})
	points = geom.Resample(geom.ConstantOrientationSubset(points, geom.CounterClockwise), s.NStringElements+1)

	// string
	str := input.String
	EA := str.StrandStiffness * float64(str.NStrands)
	ρA := str.StrandDensity * float64(str.NStrands)
	for i, p := range points {
		types := fem.PointDofs
		if i == len(points)-1 {
			types = fem.XOnlyDofs
		}
		o.StringNodes = append(o.StringNodes, o.Sys.CreateNode(types, [3]float64{p.X, p.Y, 0}))
	}
	var L0 float64
	for i := 1; i < len(points); i++ {
		l := r2.Norm(r2.Sub(points[i], points[i-1]))
		bar := ele.NewBar(o.StringNodes[i-1], o.StringNodes[i], l, EA, 0, ρA)
		o.Sys.Add(bar, TagString)
		o.Bars = append(o.Bars, bar)
		L0 += l
	}
	k := ConstraintStiffnessFactor * EA * float64(len(o.Bars)) / L0
	o.Tip = ele.NewConstraint(o.LimbNodes[itip], o.StringNodes[0], k, o.Limb.Height[itip])
	o.Sys.Add(o.Tip, TagConstraint)
	law := ele.ContactForce{K: ContactStiffness, Epsilon: ContactEpsilon}
	o.Contact = ele.NewContactHandler(o.Sys, o.LimbNodes, o.Limb.Height, o.StringNodes[1:], law)
	o.Sys.Add(o.Contact, TagContact)

	// masses
	m := input.Masses
	o.Sys.Add(ele.NewMass(o.StringNodes[0], m.StringTip, 0), TagMassStringTip)
	o.Sys.Add(ele.NewMass(o.Center(), m.StringCenter/2, 0), TagMassStringCenter)
	o.Arrow = ele.NewMass(o.Center(), m.Arrow/2, 0)
	o.Sys.Add(o.Arrow, TagMassArrow)

	// string length and damping
	L, err := o.calibrateString(L0)
	if err != nil {
		return nil, err
	}
	ηA := 4 * L * input.Damping.String * math.Sqrt(EA*ρA) / math.Pi
	for _, bar := range o.Bars {
		bar.SetDamping(ηA)
	}
	o.Sys.Invalidate()
	if o.Verbose {
		io.Pf("> string: length = %g (initial %g)  ηA = %g\n", 2*L, 2*L0, ηA)
	}

	// setup data
	o.setup(2*L, 2*L*ρA, β, ηA, ω)
	return
}

// Center returns the node at the string center
func (o *Model) Center() fem.Node { return o.StringNodes[len(o.StringNodes)-1] }

// addLimb adds the nodes and beams of the limb and the limb tip mass to sys. The root node is
// clamped
func addLimb(sys *fem.System, limb *LimbProperties, tipMass float64) (nodes []fem.Node, beams []*ele.Beam) {
	for i, p := range limb.Pos {
		types := fem.FreeDofs
		if i == 0 {
			types = fem.FixedDofs
		}
		nodes = append(nodes, sys.CreateNode(types, [3]float64{p.X, p.Y, limb.Phi[i]}))
	}
	for i := 1; i < len(nodes); i++ {
		sec := limb.SecEle[i-1]
		beam := ele.NewBeam(sys, nodes[i-1], nodes[i], sec.Cee, sec.Cek, sec.Ckk, sec.RhoA)
		sys.Add(beam, TagLimb)
		beams = append(beams, beam)
	}
	sys.Add(ele.NewMass(nodes[len(nodes)-1], tipMass, 0), TagMassLimbTip)
	return
}

// setup fills the setup data
func (o *Model) setup(stringLength, stringMass, β, ηA, ω float64) {
	l := o.Limb
	st := &o.Setup
	st.LimbLength = l.Length
	st.LimbMass = l.Mass()
	st.S = l.S
	st.X = make([]float64, len(l.Pos))
	st.Y = make([]float64, len(l.Pos))
	for i, p := range l.Pos {
		st.X[i], st.Y[i] = p.X, p.Y
	}
	st.Phi = l.Phi
	st.Width = l.Width
	st.Height = l.Height
	n := len(l.Sec)
	st.Cee, st.Cek, st.Ckk, st.RhoA = make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	for i, sec := range l.Sec {
		st.Cee[i], st.Cek[i], st.Ckk[i], st.RhoA[i] = sec.Cee, sec.Cek, sec.Ckk, sec.RhoA
	}
	for _, layer := range o.Input.Layers {
		st.Layers = append(st.Layers, layer.Name)
	}
	st.StringLength = stringLength
	st.StringMass = stringMass
	st.LimbDamping = β
	st.StringDamping = ηA
	st.LimbFrequency = ω
}
