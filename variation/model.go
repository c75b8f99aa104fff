// seehuhn.de/go/otvar - OpenType font variation math
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package variation

import (
	"cmp"
	"math"
	"slices"
)

// ModelOptions can be used to modify the behaviour of [NewModel].
// A nil pointer is equivalent to the zero value.
type ModelOptions struct {
	// AxisOrder lists axes in order of importance.  This affects the order in
	// which masters touching the same number of axes are processed.  Axes not
	// listed here are ordered by tag, after all listed axes.
	AxisOrder []Tag

	// Extrapolate enables linear extrapolation beyond the range of master
	// locations.  Without this, the contribution of every master vanishes
	// at the outer end of the master range.
	Extrapolate bool
}

// Model describes how values interpolate between a set of masters.
//
// The masters are processed in a canonical order, where masters touching
// fewer axes come first.  Methods which return one entry per master, like
// [Model.Supports] or [Model.GetDeltas], use this order.  Methods which take
// per-master values as arguments use the order of the locations passed to
// [NewModel].
type Model struct {
	origLocations []Location
	locations     []Location
	supports      []Support

	// deltaWeights[i] lists the masters j < i, together with the non-zero
	// weights of master j at the location of master i.
	deltaWeights [][]deltaWeight

	// mapping[i] is the canonical index of input location i,
	// reverseMapping[k] is the input index of the k-th canonical location.
	mapping        []int
	reverseMapping []int

	axisOrder   []Tag
	extrapolate bool
	axisRanges  map[Tag]axisRange
}

type deltaWeight struct {
	master int
	weight float64
}

// NewModel constructs a model for masters at the given locations.
//
// Exactly one location must be the default location, and no two locations
// may be equal.  All coordinates must be in the range [-1, 1].
func NewModel(locations []Location, opt *ModelOptions) (*Model, error) {
	if opt == nil {
		opt = &ModelOptions{}
	}

	orig := make([]Location, len(locations))
	hasDefault := false
	for i, loc := range locations {
		for tag, v := range loc {
			if math.IsNaN(v) || v < -1 || v > 1 {
				return nil, &LocationRangeError{Index: i, Axis: tag, Value: v}
			}
		}
		orig[i] = loc.stripped()
		if len(orig[i]) == 0 {
			hasDefault = true
		}
	}
	seen := make(map[string]int, len(orig))
	for i, loc := range orig {
		key := loc.String()
		if j, ok := seen[key]; ok {
			return nil, &DuplicateLocationError{Location: loc, First: j, Second: i}
		}
		seen[key] = i
	}
	if !hasDefault {
		return nil, &MissingDefaultError{}
	}

	m := &Model{
		origLocations: orig,
		axisOrder:     slices.Clone(opt.AxisOrder),
		extrapolate:   opt.Extrapolate,
	}

	m.reverseMapping = canonicalOrder(orig, m.axisOrder)
	m.mapping = make([]int, len(orig))
	m.locations = make([]Location, len(orig))
	for k, i := range m.reverseMapping {
		m.mapping[i] = k
		m.locations[k] = orig[i]
	}

	if m.extrapolate {
		m.axisRanges = make(map[Tag]axisRange)
		for _, loc := range m.locations {
			for tag, v := range loc {
				r := m.axisRanges[tag]
				r.min = min(r.min, v)
				r.max = max(r.max, v)
				m.axisRanges[tag] = r
			}
		}
	}

	m.computeSupports()
	m.computeDeltaWeights()

	return m, nil
}

// canonicalOrder returns the indices of the locations, sorted into
// processing order.  The sort is stable, so that equivalent locations keep
// their input order.
func canonicalOrder(locations []Location, axisOrder []Tag) []int {
	// axisPoints records, for each axis, the values of the masters which
	// lie on this axis alone.
	axisPoints := make(map[Tag]map[float64]bool)
	for _, loc := range locations {
		if len(loc) != 1 {
			continue
		}
		for tag, v := range loc {
			if axisPoints[tag] == nil {
				axisPoints[tag] = map[float64]bool{0: true}
			}
			axisPoints[tag][v] = true
		}
	}

	type sortKey struct {
		rank     int
		onPoint  int
		orderIdx []int
		axes     []Tag
		signs    []int
		absVals  []float64
	}
	keys := make([]sortKey, len(locations))
	for i, loc := range locations {
		axes := make([]Tag, 0, len(loc))
		for _, tag := range axisOrder {
			if _, ok := loc[tag]; ok {
				axes = append(axes, tag)
			}
		}
		for _, tag := range sortedKeys(loc) {
			if !slices.Contains(axisOrder, tag) {
				axes = append(axes, tag)
			}
		}

		k := sortKey{
			rank:     len(loc),
			orderIdx: make([]int, len(axes)),
			axes:     axes,
			signs:    make([]int, len(axes)),
			absVals:  make([]float64, len(axes)),
		}
		for tag, v := range loc {
			if axisPoints[tag][v] {
				k.onPoint++
			}
		}
		for j, tag := range axes {
			idx := slices.Index(axisOrder, tag)
			if idx < 0 {
				idx = 0x10000
			}
			k.orderIdx[j] = idx
			v := loc[tag]
			if v < 0 {
				k.signs[j] = -1
			} else if v > 0 {
				k.signs[j] = 1
			}
			k.absVals[j] = math.Abs(v)
		}
		keys[i] = k
	}

	order := make([]int, len(locations))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(i, j int) int {
		a, b := &keys[i], &keys[j]
		if c := cmp.Compare(a.rank, b.rank); c != 0 {
			return c
		}
		if c := cmp.Compare(b.onPoint, a.onPoint); c != 0 {
			return c
		}
		if c := slices.Compare(a.orderIdx, b.orderIdx); c != 0 {
			return c
		}
		if c := slices.Compare(a.axes, b.axes); c != 0 {
			return c
		}
		if c := slices.Compare(a.signs, b.signs); c != 0 {
			return c
		}
		return slices.Compare(a.absVals, b.absVals)
	})
	return order
}

// computeSupports derives the region of influence of every master.
//
// Each master starts with a box which extends from the default to the
// outermost master on every axis it uses.  Masters processed earlier which
// use the same axes and peak inside this box then cut the box, so that the
// box ends where the earlier master peaks.
func (m *Model) computeSupports() {
	minV := make(map[Tag]float64)
	maxV := make(map[Tag]float64)
	for _, loc := range m.locations {
		for tag, v := range loc {
			if old, ok := minV[tag]; !ok || v < old {
				minV[tag] = v
			}
			if old, ok := maxV[tag]; !ok || v > old {
				maxV[tag] = v
			}
		}
	}

	regions := make([]Support, len(m.locations))
	for i, loc := range m.locations {
		region := make(Support, len(loc))
		for tag, v := range loc {
			if v > 0 {
				region[tag] = Tent{0, v, maxV[tag]}
			} else {
				region[tag] = Tent{minV[tag], v, 0}
			}
		}
		regions[i] = region
	}

	for i, region := range regions {
		for _, prev := range regions[:i] {
			if !sameAxes(prev, region) {
				continue
			}

			relevant := true
			for tag, t := range region {
				p := prev[tag].Peak
				if !(p == t.Peak || (t.Lower < p && p < t.Upper)) {
					relevant = false
					break
				}
			}
			if !relevant {
				continue
			}

			// Cut the box along the axis with the largest ratio.  If several
			// axes have the same ratio, cut along all of them.
			var bestAxes map[Tag]Tent
			bestRatio := -1.0
			for _, tag := range sortedKeys(prev) {
				val := prev[tag].Peak
				t := region[tag]
				newT := t
				var ratio float64
				switch {
				case val < t.Peak:
					newT.Lower = val
					ratio = (val - t.Peak) / (t.Lower - t.Peak)
				case val > t.Peak:
					newT.Upper = val
					ratio = (val - t.Peak) / (t.Upper - t.Peak)
				default:
					continue
				}
				if ratio > bestRatio {
					bestAxes = make(map[Tag]Tent)
					bestRatio = ratio
				}
				if ratio == bestRatio {
					bestAxes[tag] = newT
				}
			}
			for tag, t := range bestAxes {
				region[tag] = t
			}
		}
	}
	m.supports = regions
}

func sameAxes(a, b Support) bool {
	if len(a) != len(b) {
		return false
	}
	for tag := range a {
		if _, ok := b[tag]; !ok {
			return false
		}
	}
	return true
}

func (m *Model) computeDeltaWeights() {
	m.deltaWeights = make([][]deltaWeight, len(m.locations))
	for i, loc := range m.locations {
		var weights []deltaWeight
		for j, sup := range m.supports[:i] {
			if w := SupportScalar(loc, sup); w != 0 {
				weights = append(weights, deltaWeight{master: j, weight: w})
			}
		}
		m.deltaWeights[i] = weights
	}
}

// NumMasters returns the number of masters in the model.
func (m *Model) NumMasters() int {
	return len(m.locations)
}

// Locations returns the master locations in canonical order.
// Zero coordinates are omitted.
func (m *Model) Locations() []Location {
	res := make([]Location, len(m.locations))
	for i, loc := range m.locations {
		res[i] = loc.Clone()
	}
	return res
}

// Supports returns the master supports in canonical order.
// The support of the default master is empty.
func (m *Model) Supports() []Support {
	res := make([]Support, len(m.supports))
	for i, sup := range m.supports {
		res[i] = sup.Clone()
	}
	return res
}

// Mapping returns, for every location passed to [NewModel], the index of
// the location in canonical order.
func (m *Model) Mapping() []int {
	return slices.Clone(m.mapping)
}

// ReverseMapping returns, for every master in canonical order, the index of
// the corresponding location passed to [NewModel].
func (m *Model) ReverseMapping() []int {
	return slices.Clone(m.reverseMapping)
}

// AxisOrder returns the axis order the model was constructed with.
func (m *Model) AxisOrder() []Tag {
	return slices.Clone(m.axisOrder)
}

// DeltaWeights returns the weights used in the delta decomposition.
// Entry j of the i-th map is the weight of master j at the location of
// master i; only masters j < i with non-zero weight are included.
func (m *Model) DeltaWeights() []map[int]float64 {
	res := make([]map[int]float64, len(m.deltaWeights))
	for i, weights := range m.deltaWeights {
		res[i] = make(map[int]float64, len(weights))
		for _, w := range weights {
			res[i][w.master] = w.weight
		}
	}
	return res
}
