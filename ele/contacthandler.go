// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"sort"

	"github.com/bow-simulation/virtualbow-sub000/fem"
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

// ContactKey identifies a contact between segment Segment and point Point
type ContactKey struct {
	Segment int // index of segment; i.e. between surface nodes Segment and Segment+1
	Point   int // index of point
}

// kinds of entries in the sorted lists; entries with equal values are ordered by kind, so that a
// point on a bound lies inside the bounding box
const (
	kindMin   = iota // lower bound of segment
	kindPoint        // point
	kindMax          // upper bound of segment
)

// entry is an item of a sorted coordinate list
type entry struct {
	kind  int     // kindMin, kindMax or kindPoint
	index int     // index of segment or point
	value float64 // coordinate
}

// less tells whether a comes before b in a sorted list
func (a entry) less(b entry) bool {
	if a.value != b.value {
		return a.value < b.value
	}
	return a.kind < b.kind
}

// ContactHandler maintains the contacts between the segments of a thick curve (surface) and a
// set of points. Candidate pairs are found by sweep-and-prune: the bounds of the segments and the
// coordinates of the points are kept in two lists sorted along x and y. After the nodes move, the
// lists are sorted again by insertion sort and every swap of a point with a segment bound tells
// whether the pair starts or stops to overlap on that axis:
//
//   point moves left of max, or min moves left of point  =>  check bounding boxes; add
//   point moves left of min, or max moves left of point  =>  remove
//
// The handler behaves as a single element; the contacts are refreshed at every evaluation
type ContactHandler struct {
	Surface []fem.Node   // nodes of the curve
	Heights []float64    // height of the curve at each node
	Points  []fem.Node   // points
	Law     ContactForce // force law

	xs       []entry                 // entries sorted along x
	ys       []entry                 // entries sorted along y
	boxes    []r2.Box                // bounding box of each segment
	coords   []r2.Vec                // coordinates of each point
	contacts map[ContactKey]*Contact // active pairs
}

// NewContactHandler returns a new handler with the contacts of the current configuration
func NewContactHandler(sys *fem.System, surface []fem.Node, heights []float64, points []fem.Node, law ContactForce) (o *ContactHandler) {
	if len(surface) != len(heights) {
		chk.Panic("NewContactHandler: number of heights (%d) must equal number of surface nodes (%d)", len(heights), len(surface))
	}
	o = new(ContactHandler)
	o.Surface, o.Heights, o.Points, o.Law = surface, heights, points, law
	nseg := len(surface) - 1
	o.boxes = make([]r2.Box, nseg)
	o.coords = make([]r2.Vec, len(points))
	o.contacts = make(map[ContactKey]*Contact)
	for i := 0; i < nseg; i++ {
		o.xs = append(o.xs, entry{kind: kindMin, index: i}, entry{kind: kindMax, index: i})
		o.ys = append(o.ys, entry{kind: kindMin, index: i}, entry{kind: kindMax, index: i})
	}
	for j := range points {
		o.xs = append(o.xs, entry{kind: kindPoint, index: j})
		o.ys = append(o.ys, entry{kind: kindPoint, index: j})
	}

	// initial state by brute force
	o.updateValues(sys)
	for _, list := range [][]entry{o.xs, o.ys} {
		sort.SliceStable(list, func(a, b int) bool { return list[a].less(list[b]) })
	}
	for i := 0; i < nseg; i++ {
		for j := range points {
			if o.overlap(i, j) {
				o.add(i, j)
			}
		}
	}
	return
}

// UpdateContacts updates the set of contacts for the current configuration
func (o *ContactHandler) UpdateContacts(sys *fem.System) {
	o.updateValues(sys)
	o.sortList(o.xs)
	o.sortList(o.ys)
}

// Keys returns the keys of the current contacts sorted by segment and point
func (o *ContactHandler) Keys() (keys []ContactKey) {
	keys = make([]ContactKey, 0, len(o.contacts))
	for key := range o.contacts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(a, b int) bool {
		if keys[a].Segment != keys[b].Segment {
			return keys[a].Segment < keys[b].Segment
		}
		return keys[a].Point < keys[b].Point
	})
	return
}

// Contact returns the contact element of a pair; nil if the pair is not in contact
func (o *ContactHandler) Contact(key ContactKey) *Contact { return o.contacts[key] }

// fem.Element interface /////////////////////////////////////////////////////////////////////////

// AddMasses does nothing
func (o *ContactHandler) AddMasses(sys *fem.System, M []float64) {}

// AddInternalForces adds the forces of all contacts
func (o *ContactHandler) AddInternalForces(sys *fem.System, q []float64) {
	o.UpdateContacts(sys)
	for _, key := range o.Keys() {
		o.contacts[key].AddInternalForces(sys, q)
	}
}

// AddTangentStiffness adds the stiffness of all contacts
func (o *ContactHandler) AddTangentStiffness(sys *fem.System, K *mat.SymDense) {
	o.UpdateContacts(sys)
	for _, key := range o.Keys() {
		o.contacts[key].AddTangentStiffness(sys, K)
	}
}

// AddTangentDamping does nothing
func (o *ContactHandler) AddTangentDamping(sys *fem.System, D *mat.SymDense) {}

// PotentialEnergy returns the energy of all contacts
func (o *ContactHandler) PotentialEnergy(sys *fem.System) (res float64) {
	o.UpdateContacts(sys)
	for _, key := range o.Keys() {
		res += o.contacts[key].PotentialEnergy(sys)
	}
	return
}

// KineticEnergy returns zero
func (o *ContactHandler) KineticEnergy(sys *fem.System) float64 { return 0 }

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// updateValues computes bounding boxes, point coordinates and list values
func (o *ContactHandler) updateValues(sys *fem.System) {
	for i := range o.boxes {
		x0, y0, φ0 := sys.NodeU(o.Surface[i])
		x1, y1, φ1 := sys.NodeU(o.Surface[i+1])
		P0 := r2.Vec{X: x0, Y: y0}
		P1 := r2.Vec{X: x1, Y: y1}
		S0 := r2.Add(P0, r2.Scale(o.Heights[i], normal(φ0)))
		S1 := r2.Add(P1, r2.Scale(o.Heights[i+1], normal(φ1)))
		o.boxes[i] = boundingBox(P0, P1, S0, S1)
	}
	for j, nod := range o.Points {
		o.coords[j] = r2.Vec{X: sys.GetU(nod.X), Y: sys.GetU(nod.Y)}
	}
	for k := range o.xs {
		o.xs[k].value = o.value(o.xs[k], func(v r2.Vec) float64 { return v.X })
		o.ys[k].value = o.value(o.ys[k], func(v r2.Vec) float64 { return v.Y })
	}
}

// value returns the current coordinate of an entry
func (o *ContactHandler) value(e entry, axis func(r2.Vec) float64) float64 {
	switch e.kind {
	case kindMin:
		return axis(o.boxes[e.index].Min)
	case kindMax:
		return axis(o.boxes[e.index].Max)
	}
	return axis(o.coords[e.index])
}

// sortList sorts list by insertion sort and handles the swaps
func (o *ContactHandler) sortList(list []entry) {
	for i := 1; i < len(list); i++ {
		for j := i; j > 0 && list[j].less(list[j-1]); j-- {
			o.swapped(list[j], list[j-1])
			list[j-1], list[j] = list[j], list[j-1]
		}
	}
}

// swapped handles entry a moving to the left of entry b
func (o *ContactHandler) swapped(a, b entry) {
	switch {
	case a.kind == kindPoint && b.kind == kindMax:
		o.check(b.index, a.index)
	case a.kind == kindMin && b.kind == kindPoint:
		o.check(a.index, b.index)
	case a.kind == kindPoint && b.kind == kindMin:
		o.remove(b.index, a.index)
	case a.kind == kindMax && b.kind == kindPoint:
		o.remove(a.index, b.index)
	}
}

// check adds the contact between segment i and point j if their bounding boxes overlap
func (o *ContactHandler) check(i, j int) {
	if o.overlap(i, j) {
		o.add(i, j)
	}
}

// overlap tells whether point j is inside the bounding box of segment i, bounds included
func (o *ContactHandler) overlap(i, j int) bool {
	b, p := o.boxes[i], o.coords[j]
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// add adds the contact between segment i and point j if it does not exist yet
func (o *ContactHandler) add(i, j int) {
	key := ContactKey{i, j}
	if _, ok := o.contacts[key]; ok {
		return
	}
	o.contacts[key] = NewContact(o.Surface[i], o.Surface[i+1], o.Points[j], o.Heights[i], o.Heights[i+1], o.Law)
}

// remove removes the contact between segment i and point j if it exists
func (o *ContactHandler) remove(i, j int) {
	delete(o.contacts, ContactKey{i, j})
}
