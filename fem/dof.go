// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

// DofType tells whether a degree of freedom is solved for or prescribed
type DofType int

const (
	Active DofType = iota // unknown; owns entries in u, v, a, p and q
	Fixed                 // prescribed constant displacement
)

// String returns "active" or "fixed"
func (o DofType) String() string {
	if o == Fixed {
		return "fixed"
	}
	return "active"
}

// Dof is a scalar unknown. Index points into the active arrays of System
// (Type == Active) or into the array of prescribed values (Type == Fixed)
type Dof struct {
	Type  DofType
	Index int
}

// IsActive tells whether the dof is solved for
func (o Dof) IsActive() bool { return o.Type == Active }

// Node holds the three planar dofs of a point: position {x, y} and rotation φ
//
//   y
//   ^   φ
//   |  ↺
//   o-----> x
//
type Node struct {
	X   Dof // horizontal position
	Y   Dof // vertical position
	Phi Dof // rotation (counterclockwise)
}

// Dofs returns the three dofs of the node in {x, y, φ} order
func (o Node) Dofs() [3]Dof {
	return [3]Dof{o.X, o.Y, o.Phi}
}

// some common combinations of dof types
var (
	FreeDofs  = [3]DofType{Active, Active, Active} // e.g. limb nodes
	PointDofs = [3]DofType{Active, Active, Fixed}  // e.g. string nodes (no rotation)
	XOnlyDofs = [3]DofType{Active, Fixed, Fixed}   // e.g. string centre on the symmetry axis
	FixedDofs = [3]DofType{Fixed, Fixed, Fixed}    // e.g. clamped limb root
)
