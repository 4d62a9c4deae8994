// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from (.yaml, .hjson or .json) files
package inp

import (
	"github.com/bow-simulation/virtualbow-sub000/geom"
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/interp"
)

// Table holds (relative position, value) pairs along the limb. Relative positions go from 0
// (limb root) to 1 (limb tip) and must be strictly increasing
type Table [][2]float64

// Split returns the positions and values of the table
func (o Table) Split() (xs, ys []float64) {
	xs = make([]float64, len(o))
	ys = make([]float64, len(o))
	for i, p := range o {
		xs[i], ys[i] = p[0], p[1]
	}
	return
}

// Func returns the piecewise-linear function through the points of the table. The function is
// constant beyond the first and last points. The table must be valid
func (o Table) Func() func(x float64) float64 {
	if len(o) == 1 {
		v := o[0][1]
		return func(float64) float64 { return v }
	}
	xs, ys := o.Split()
	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		chk.Panic("cannot fit table:\n%v", err)
	}
	return pl.Predict
}

// Settings holds numerical settings
type Settings struct {
	NLimbElements   int     `json:"n_limb_elements" yaml:"n_limb_elements"`     // number of beam elements along one limb
	NStringElements int     `json:"n_string_elements" yaml:"n_string_elements"` // number of bar elements along one half of the string
	NDrawSteps      int     `json:"n_draw_steps" yaml:"n_draw_steps"`           // number of static steps from brace height to full draw
	ArrowClamp      float64 `json:"arrow_clamp_force" yaml:"arrow_clamp_force"` // force holding the arrow on the string [N]
	TimeSpanFactor  float64 `json:"time_span_factor" yaml:"time_span_factor"`   // simulated time relative to the arrow departure time
	TimeStepFactor  float64 `json:"time_step_factor" yaml:"time_step_factor"`   // time step relative to the stability limit
	SamplingRate    float64 `json:"sampling_rate" yaml:"sampling_rate"`         // number of recorded dynamic states per second
}

// Dimensions holds the main dimensions of the bow [m] and [rad]
type Dimensions struct {
	BraceHeight   float64 `json:"brace_height" yaml:"brace_height"`     // distance between string and grip when braced
	DrawLength    float64 `json:"draw_length" yaml:"draw_length"`       // distance between string and grip at full draw
	HandleLength  float64 `json:"handle_length" yaml:"handle_length"`   // distance between both limb roots
	HandleSetback float64 `json:"handle_setback" yaml:"handle_setback"` // distance of the limb roots behind the grip
	HandleAngle   float64 `json:"handle_angle" yaml:"handle_angle"`     // angle of the limb roots w.r.t. the vertical
}

// Material holds the properties of one limb material
type Material struct {
	Name string  `json:"name" yaml:"name"` // name of material
	Rho  float64 `json:"rho" yaml:"rho"`   // density [kg/m³]
	E    float64 `json:"E" yaml:"E"`       // elastic modulus [Pa]
}

// Layer holds one layer of the limb cross-section. Layers are stacked from the back (first)
// to the belly (last)
type Layer struct {
	Name     string `json:"name" yaml:"name"`         // name of layer
	Material string `json:"material" yaml:"material"` // name of material
	Height   Table  `json:"height" yaml:"height"`     // height [m] along the limb
}

// String holds the properties of the bow string
type String struct {
	StrandStiffness float64 `json:"strand_stiffness" yaml:"strand_stiffness"` // axial stiffness EA of one strand [N]
	StrandDensity   float64 `json:"strand_density" yaml:"strand_density"`     // mass per length of one strand [kg/m]
	NStrands        int     `json:"n_strands" yaml:"n_strands"`               // number of strands
}

// Masses holds the additional point masses [kg]
type Masses struct {
	Arrow        float64 `json:"arrow" yaml:"arrow"`                 // mass of the arrow
	StringCenter float64 `json:"string_center" yaml:"string_center"` // serving and nocking point
	StringTip    float64 `json:"string_tip" yaml:"string_tip"`       // string loops
	LimbTip      float64 `json:"limb_tip" yaml:"limb_tip"`           // tip overlays
}

// Damping holds the damping ratios of the lowest limb mode and the string
type Damping struct {
	Limb   float64 `json:"limb" yaml:"limb"`
	String float64 `json:"string" yaml:"string"`
}

// Input holds all data describing one bow
type Input struct {
	Desc       string         `json:"desc" yaml:"desc"`             // description of bow
	Settings   Settings       `json:"settings" yaml:"settings"`     // numerical settings
	Dimensions Dimensions     `json:"dimensions" yaml:"dimensions"` // main dimensions
	Profile    []geom.Segment `json:"profile" yaml:"profile"`       // limb profile from root to tip
	Width      Table          `json:"width" yaml:"width"`           // limb width [m]
	Materials  []Material     `json:"materials" yaml:"materials"`   // available materials
	Layers     []Layer        `json:"layers" yaml:"layers"`         // limb layers from back to belly
	String     String         `json:"string" yaml:"string"`         // string
	Masses     Masses         `json:"masses" yaml:"masses"`         // point masses
	Damping    Damping        `json:"damping" yaml:"damping"`       // damping ratios
}

// Default returns the input of a simple straight wooden flatbow
func Default() *Input {
	var o Input
	o.Desc = "straight wooden flatbow"
	o.Settings.SetDefault()
	o.Dimensions.SetDefault()
	o.Profile = []geom.Segment{{Length: 0.8}}
	o.Width = Table{{0, 0.04}, {1, 0.01}}
	o.Materials = []Material{{Name: "wood", Rho: 675, E: 12e9}}
	o.Layers = []Layer{{Name: "layer 0", Material: "wood", Height: Table{{0, 0.015}, {1, 0.01}}}}
	o.String = String{StrandStiffness: 3500, StrandDensity: 0.0005, NStrands: 12}
	o.Masses = Masses{Arrow: 0.025, StringCenter: 0.005, StringTip: 0.005, LimbTip: 0.005}
	o.Damping = Damping{Limb: 0.05, String: 0.05}
	return &o
}

// Material returns the material named name or nil
func (o *Input) Material(name string) *Material {
	for i := range o.Materials {
		if o.Materials[i].Name == name {
			return &o.Materials[i]
		}
	}
	return nil
}

// extra settings //////////////////////////////////////////////////////////////////////////////////

// SetDefault sets default values
func (o *Settings) SetDefault() {
	o.NLimbElements = 30
	o.NStringElements = 25
	o.NDrawSteps = 150
	o.ArrowClamp = 0.5
	o.TimeSpanFactor = 1.5
	o.TimeStepFactor = 0.2
	o.SamplingRate = 1e4
}

// SetDefault sets default values
func (o *Dimensions) SetDefault() {
	o.BraceHeight = 0.2
	o.DrawLength = 0.7
	o.HandleLength = 0.1
}
