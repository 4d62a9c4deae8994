// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"errors"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// ErrInvalidInput is returned (wrapped) by Validate and Load
var ErrInvalidInput = errors.New("inp: invalid input")

// checker collects messages about invalid values
type checker struct {
	msgs []string
}

func (o *checker) add(cond bool, msg string, prm ...interface{}) {
	if !cond {
		o.msgs = append(o.msgs, io.Sf(msg, prm...))
	}
}

func (o *checker) table(name string, tab Table, positive bool) {
	if len(tab) == 0 {
		o.add(false, "%s: table must have at least one point", name)
		return
	}
	for i, p := range tab {
		o.add(p[0] >= 0 && p[0] <= 1, "%s: position of point %d must be within [0, 1]. got %g", name, i, p[0])
		if i > 0 {
			o.add(p[0] > tab[i-1][0], "%s: positions must be strictly increasing. point %d has %g after %g", name, i, p[0], tab[i-1][0])
		}
		if positive {
			o.add(p[1] > 0, "%s: value of point %d must be positive. got %g", name, i, p[1])
		} else {
			o.add(p[1] >= 0, "%s: value of point %d must not be negative. got %g", name, i, p[1])
		}
	}
}

// Validate checks all values and returns an error wrapping ErrInvalidInput that lists every
// problem found
func (o *Input) Validate() (err error) {
	var c checker

	// settings
	s := o.Settings
	c.add(s.NLimbElements > 0, "settings: number of limb elements must be positive. got %d", s.NLimbElements)
	c.add(s.NStringElements > 0, "settings: number of string elements must be positive. got %d", s.NStringElements)
	c.add(s.NDrawSteps > 0, "settings: number of draw steps must be positive. got %d", s.NDrawSteps)
	c.add(s.ArrowClamp >= 0, "settings: arrow clamp force must not be negative. got %g", s.ArrowClamp)
	c.add(s.TimeSpanFactor >= 1, "settings: time span factor must be at least 1. got %g", s.TimeSpanFactor)
	c.add(s.TimeStepFactor > 0 && s.TimeStepFactor <= 1, "settings: time step factor must be within (0, 1]. got %g", s.TimeStepFactor)
	c.add(s.SamplingRate > 0, "settings: sampling rate must be positive. got %g", s.SamplingRate)

	// dimensions
	d := o.Dimensions
	c.add(d.BraceHeight > 0, "dimensions: brace height must be positive. got %g", d.BraceHeight)
	c.add(d.DrawLength > d.BraceHeight, "dimensions: draw length (%g) must be greater than brace height (%g)", d.DrawLength, d.BraceHeight)
	c.add(d.HandleLength >= 0, "dimensions: handle length must not be negative. got %g", d.HandleLength)

	// limb
	c.add(len(o.Profile) > 0, "profile: at least one segment is required")
	for i, seg := range o.Profile {
		c.add(seg.Length > 0, "profile: length of segment %d must be positive. got %g", i, seg.Length)
	}
	c.table("width", o.Width, true)
	names := make(map[string]bool)
	for i, m := range o.Materials {
		c.add(m.Name != "", "materials: material %d has no name", i)
		c.add(!names[m.Name], "materials: name %q is used more than once", m.Name)
		names[m.Name] = true
		c.add(m.Rho > 0, "materials: density of %q must be positive. got %g", m.Name, m.Rho)
		c.add(m.E > 0, "materials: elastic modulus of %q must be positive. got %g", m.Name, m.E)
	}
	c.add(len(o.Layers) > 0, "layers: at least one layer is required")
	for i, l := range o.Layers {
		c.add(o.Material(l.Material) != nil, "layers: material %q of layer %d does not exist", l.Material, i)
		c.table(io.Sf("layers: height of layer %d", i), l.Height, false)
	}
	if len(o.Layers) > 0 {
		c.add(o.totalHeightIsPositive(), "layers: total height must be positive along the whole limb")
	}

	// string, masses and damping
	c.add(o.String.StrandStiffness > 0, "string: strand stiffness must be positive. got %g", o.String.StrandStiffness)
	c.add(o.String.StrandDensity > 0, "string: strand density must be positive. got %g", o.String.StrandDensity)
	c.add(o.String.NStrands > 0, "string: number of strands must be positive. got %d", o.String.NStrands)
	c.add(o.Masses.Arrow > 0, "masses: arrow mass must be positive. got %g", o.Masses.Arrow)
	c.add(o.Masses.StringCenter >= 0, "masses: string center mass must not be negative. got %g", o.Masses.StringCenter)
	c.add(o.Masses.StringTip >= 0, "masses: string tip mass must not be negative. got %g", o.Masses.StringTip)
	c.add(o.Masses.LimbTip >= 0, "masses: limb tip mass must not be negative. got %g", o.Masses.LimbTip)
	c.add(o.Damping.Limb >= 0 && o.Damping.Limb < 1, "damping: limb damping ratio must be within [0, 1). got %g", o.Damping.Limb)
	c.add(o.Damping.String >= 0 && o.Damping.String < 1, "damping: string damping ratio must be within [0, 1). got %g", o.Damping.String)

	if len(c.msgs) > 0 {
		err = chk.Err("%w:\n  %s", ErrInvalidInput, strings.Join(c.msgs, "\n  "))
	}
	return
}

// totalHeightIsPositive checks the sum of all layer heights at the positions of all tables.
// The sum is piecewise linear between these positions
func (o *Input) totalHeightIsPositive() bool {
	xs := []float64{0, 1}
	var fs []func(float64) float64
	for _, l := range o.Layers {
		if len(l.Height) == 0 {
			return true // reported already
		}
		x, _ := l.Height.Split()
		xs = append(xs, x...)
		fs = append(fs, l.Height.Func())
	}
	for _, x := range xs {
		var h float64
		for _, f := range fs {
			h += f(x)
		}
		if h <= 0 {
			return false
		}
	}
	return true
}
