// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"image/color"

	"github.com/cpmech/gosl/io"
	"gonum.org/v1/plot/plotutil"
)

// colors of the parts of the bow
var (
	ColorLimb   = color.RGBA{R: 0x8b, G: 0x5a, B: 0x2b, A: 0xff}
	ColorString = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
	ColorArrow  = color.RGBA{R: 0xc0, G: 0x20, B: 0x20, A: 0xff}
)

// LayerColor returns the color of the i-th layer
func LayerColor(i int) color.Color { return plotutil.Color(i + 1) }

// GetLabel returns the axis label of a quantity given by its key
func GetLabel(key, unit string) string {
	var l string
	switch key {
	case "time":
		l = "time"
	case "s":
		l = "arc length"
	case "x":
		l = "x"
	case "y":
		l = "y"
	case "draw_length":
		l = "draw length"
	case "draw_force":
		l = "draw force"
	case "string_force":
		l = "string force"
	case "strand_force":
		l = "strand force"
	case "grip_force":
		l = "grip force"
	case "pos_arrow":
		l = "arrow position"
	case "vel_arrow":
		l = "arrow velocity"
	case "acc_arrow":
		l = "arrow acceleration"
	case "energy":
		l = "energy"
	case "stress":
		l = "stress"
	case "width":
		l = "width"
	case "height":
		l = "height"
	case "stiffness":
		l = "stiffness"
	default:
		l = key
	}
	if unit != "" {
		l += io.Sf(" [%s]", unit)
	}
	return l
}
