// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements the output records of bow simulations, their files and plots
package out

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/chk"
)

// States holds a sequence of bow states. All quantities refer to the whole bow (both limbs and
// the whole string) except node coordinates, which are given for the upper half only
type States struct {

	// scalars per state
	Time        []float64 `json:"time"`         // time [s]; zero for static states
	DrawLength  []float64 `json:"draw_length"`  // distance between string center and grip [m]
	DrawForce   []float64 `json:"draw_force"`   // force needed to hold the string [N]
	StringForce []float64 `json:"string_force"` // tension of the string [N]
	StrandForce []float64 `json:"strand_force"` // tension of one strand [N]
	GripForce   []float64 `json:"grip_force"`   // horizontal force on the grip [N]
	PosArrow    []float64 `json:"pos_arrow"`    // arrow position [m]
	VelArrow    []float64 `json:"vel_arrow"`    // arrow velocity [m/s]
	AccArrow    []float64 `json:"acc_arrow"`    // arrow acceleration [m/s²]

	// energies [J]
	EpotLimbs  []float64 `json:"e_pot_limbs"`
	EkinLimbs  []float64 `json:"e_kin_limbs"`
	EpotString []float64 `json:"e_pot_string"`
	EkinString []float64 `json:"e_kin_string"`
	EkinArrow  []float64 `json:"e_kin_arrow"`

	// shapes [state][node]
	XLimb   [][]float64 `json:"x_limb"`
	YLimb   [][]float64 `json:"y_limb"`
	XString [][]float64 `json:"x_string"`
	YString [][]float64 `json:"y_string"`

	// stresses at the back and belly side of each layer [state][layer][node]
	StressBack  [][][]float64 `json:"stress_back"`
	StressBelly [][][]float64 `json:"stress_belly"`
}

// Len returns the number of states
func (o *States) Len() int { return len(o.Time) }

// Setup holds the properties of the bow computed before the simulation
type Setup struct {

	// limb
	LimbLength float64   `json:"limb_length"` // arc length of one limb [m]
	LimbMass   float64   `json:"limb_mass"`   // mass of one limb [kg]
	S          []float64 `json:"s"`           // arc length of nodes
	X          []float64 `json:"x"`           // unbraced x-coordinates of nodes
	Y          []float64 `json:"y"`           // unbraced y-coordinates of nodes
	Phi        []float64 `json:"phi"`         // unbraced angles of nodes
	Width      []float64 `json:"width"`       // width at nodes
	Height     []float64 `json:"height"`      // total height at nodes
	Cee        []float64 `json:"Cee"`         // longitudinal stiffness at nodes
	Cek        []float64 `json:"Cek"`         // coupling stiffness at nodes
	Ckk        []float64 `json:"Ckk"`         // bending stiffness at nodes
	RhoA       []float64 `json:"rhoA"`        // mass per length at nodes
	Layers     []string  `json:"layers"`      // names of layers

	// string
	StringLength float64 `json:"string_length"` // length of the whole string [m]
	StringMass   float64 `json:"string_mass"`   // mass of the whole string [kg]

	// calibrated damping
	LimbDamping   float64 `json:"limb_damping"`   // coefficient β of beams [s]
	StringDamping float64 `json:"string_damping"` // coefficient ηA of bars [N⋅s]
	LimbFrequency float64 `json:"limb_frequency"` // lowest natural frequency of the limb [rad/s]
}

// Statics holds the results of drawing the bow
type Statics struct {
	States States `json:"states"`

	FinalDrawForce      float64 `json:"final_draw_force"`      // draw force at full draw [N]
	DrawingWork         float64 `json:"drawing_work"`          // energy stored by drawing [J]
	StorageRatio        float64 `json:"storage_ratio"`         // work over (draw distance × final draw force)
	EnergyStorageFactor float64 `json:"energy_storage_factor"` // work over the area of a linear draw curve

	MaxStringForce float64   `json:"max_string_force"` // [N]
	MaxStrandForce float64   `json:"max_strand_force"` // [N]
	MaxGripForce   float64   `json:"max_grip_force"`   // [N]
	MaxStress      []float64 `json:"max_stress"`       // largest absolute stress per layer [Pa]
}

// Dynamics holds the results of shooting the arrow
type Dynamics struct {
	States States `json:"states"`

	ArrowDepartureTime float64 `json:"arrow_departure_time"` // [s]
	ArrowVelocity      float64 `json:"arrow_velocity"`       // exit velocity [m/s]
	ArrowEnergy        float64 `json:"arrow_energy"`         // exit kinetic energy [J]
	Efficiency         float64 `json:"efficiency"`           // arrow energy over drawing work

	MaxStringForce float64   `json:"max_string_force"` // [N]
	MaxStrandForce float64   `json:"max_strand_force"` // [N]
	MaxGripForce   float64   `json:"max_grip_force"`   // [N]
	MaxStress      []float64 `json:"max_stress"`       // largest absolute stress per layer [Pa]
}

// Output holds all results of one simulation. Statics and Dynamics are nil if not computed
type Output struct {
	Setup    Setup     `json:"setup"`
	Statics  *Statics  `json:"statics,omitempty"`
	Dynamics *Dynamics `json:"dynamics,omitempty"`
}

// Save writes the output to a JSON file
func (o *Output) Save(path string) (err error) {
	b, err := json.Marshal(o)
	if err != nil {
		return chk.Err("cannot encode output:\n%v", err)
	}
	return os.WriteFile(path, b, 0644)
}

// Load reads an output file written by Save
func Load(path string) (o *Output, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return
	}
	o = new(Output)
	if err = json.Unmarshal(b, o); err != nil {
		return nil, chk.Err("cannot decode output file %q:\n%v", path, err)
	}
	return
}
