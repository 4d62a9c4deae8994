// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bow

import (
	"math"

	"github.com/bow-simulation/virtualbow-sub000/geom"
	"github.com/bow-simulation/virtualbow-sub000/inp"
	"gonum.org/v1/gonum/spatial/r2"
)

// Section holds the stiffness and mass of a limb cross-section. The reference line is the back
// of the limb and η is the distance from the back towards the belly
//
//   Cee = Σ Eₖ⋅w⋅Δη        Cek = -Σ Eₖ⋅w⋅Δ(η²)/2      Ckk = Σ Eₖ⋅w⋅Δ(η³)/3      ρA = Σ ρₖ⋅w⋅Δη
//
type Section struct {
	Cee, Cek, Ckk, RhoA float64
}

// LimbProperties holds the geometry and the cross-sections of one limb at its nodes
type LimbProperties struct {
	Length float64     // arc length
	S      []float64   // arc length of nodes
	Pos    []r2.Vec    // unbraced position of nodes (on the back)
	Phi    []float64   // unbraced angle of nodes
	Width  []float64   // width
	Height []float64   // total height
	Eta    [][]float64 // [nlayers+1][nnodes] position of layer boundaries
	Sec    []Section   // cross-sections at nodes
	SecEle []Section   // cross-sections at element midpoints

	E []float64 // [nlayers] elastic modulus of each layer
}

// NewLimbProperties samples the limb of input with n elements
func NewLimbProperties(input *inp.Input, n int) (o *LimbProperties) {
	o = new(LimbProperties)
	d := input.Dimensions
	start := r2.Vec{X: -d.HandleSetback, Y: d.HandleLength / 2}
	profile := geom.NewProfile(start, math.Pi/2+d.HandleAngle, input.Profile)
	o.Length = profile.Length()
	o.S, o.Pos, o.Phi = profile.Sample(n)

	// tables as functions of the relative position
	width := input.Width.Func()
	nl := len(input.Layers)
	heights := make([]func(float64) float64, nl)
	rho := make([]float64, nl)
	o.E = make([]float64, nl)
	for k, l := range input.Layers {
		heights[k] = l.Height.Func()
		mat := input.Material(l.Material)
		rho[k], o.E[k] = mat.Rho, mat.E
	}

	// section at relative position t
	section := func(t float64) (sec Section, w float64, eta []float64) {
		w = width(t)
		eta = make([]float64, nl+1)
		for k := 0; k < nl; k++ {
			η0 := eta[k]
			η1 := η0 + heights[k](t)
			eta[k+1] = η1
			sec.Cee += o.E[k] * w * (η1 - η0)
			sec.Cek -= o.E[k] * w * (η1*η1 - η0*η0) / 2
			sec.Ckk += o.E[k] * w * (η1*η1*η1 - η0*η0*η0) / 3
			sec.RhoA += rho[k] * w * (η1 - η0)
		}
		return
	}

	// nodes
	o.Width = make([]float64, n+1)
	o.Height = make([]float64, n+1)
	o.Sec = make([]Section, n+1)
	o.Eta = make([][]float64, nl+1)
	for k := range o.Eta {
		o.Eta[k] = make([]float64, n+1)
	}
	for i, s := range o.S {
		sec, w, eta := section(s / o.Length)
		o.Sec[i], o.Width[i], o.Height[i] = sec, w, eta[nl]
		for k := range eta {
			o.Eta[k][i] = eta[k]
		}
	}

	// elements
	o.SecEle = make([]Section, n)
	for i := 0; i < n; i++ {
		o.SecEle[i], _, _ = section((o.S[i] + o.S[i+1]) / 2 / o.Length)
	}
	return
}

// Nlayers returns the number of layers
func (o *LimbProperties) Nlayers() int { return len(o.E) }

// Belly returns the unbraced position of the belly at node i
func (o *LimbProperties) Belly(i int) r2.Vec {
	n := r2.Vec{X: -math.Sin(o.Phi[i]), Y: math.Cos(o.Phi[i])}
	return r2.Add(o.Pos[i], r2.Scale(o.Height[i], n))
}

// Mass returns the mass of the limb, integrated with the trapezoidal rule over the nodes
func (o *LimbProperties) Mass() (m float64) {
	for i := 1; i < len(o.S); i++ {
		m += (o.Sec[i-1].RhoA + o.Sec[i].RhoA) / 2 * (o.S[i] - o.S[i-1])
	}
	return
}

// Stresses returns the stresses σ = E⋅(ε - η⋅κ) at the back and belly side of every layer at
// node i, given the strain ε and curvature κ of the reference line
func (o *LimbProperties) Stresses(i int, ε, κ float64) (back, belly []float64) {
	nl := o.Nlayers()
	back = make([]float64, nl)
	belly = make([]float64, nl)
	for k := 0; k < nl; k++ {
		back[k] = o.E[k] * (ε - o.Eta[k][i]*κ)
		belly[k] = o.E[k] * (ε - o.Eta[k+1][i]*κ)
	}
	return
}
