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
	"fmt"
	"math"
	"slices"
)

// Axis describes a design axis in user coordinates, for example a weight
// axis ranging from 100 to 900 with default 400.
type Axis struct {
	Tag               Tag
	Min, Default, Max float64

	// Map, if non-empty, is applied to the normalized coordinate.
	// This corresponds to the segment map in the OpenType avar table.
	Map AxisMap
}

// Check verifies that the axis range is well-formed.
func (a Axis) Check() error {
	if !isFinite(a.Min) || !isFinite(a.Default) || !isFinite(a.Max) {
		return fmt.Errorf("axis %q: non-finite range", a.Tag)
	}
	if !(a.Min <= a.Default && a.Default <= a.Max) {
		return fmt.Errorf("axis %q: invalid range %s <= %s <= %s",
			a.Tag, formatFloat(a.Min), formatFloat(a.Default), formatFloat(a.Max))
	}
	for i := 1; i < len(a.Map); i++ {
		if a.Map[i].From <= a.Map[i-1].From {
			return fmt.Errorf("axis %q: map not sorted", a.Tag)
		}
	}
	return nil
}

// MapPoint is one entry of an [AxisMap].
type MapPoint struct {
	From, To float64
}

// AxisMap is a piecewise linear map on normalized coordinates.
// The points must be sorted by increasing From.
type AxisMap []MapPoint

// Apply maps v through the piecewise linear function.  Outside the range of
// the map, v is shifted by the offset at the nearest end point.  An empty
// map is the identity.
func (m AxisMap) Apply(v float64) float64 {
	if len(m) == 0 {
		return v
	}
	idx, found := slices.BinarySearchFunc(m, v, func(p MapPoint, x float64) int {
		switch {
		case p.From < x:
			return -1
		case p.From > x:
			return 1
		default:
			return 0
		}
	})
	if found {
		return m[idx].To
	}
	if idx == 0 {
		return v + m[0].To - m[0].From
	}
	if idx == len(m) {
		last := m[len(m)-1]
		return v + last.To - last.From
	}
	a, b := m[idx-1], m[idx]
	return interpolate(v, a.From, b.From, a.To, b.To)
}

// NormalizeValue converts the user coordinate v into a normalized
// coordinate for the given axis: Min maps to -1, Default maps to 0 and Max
// maps to 1, with linear interpolation in between.  Values outside the
// axis range are clamped.  The axis map is not applied.
//
// NormalizeValue panics if the axis range is not ordered.
func NormalizeValue(v float64, axis Axis) float64 {
	lower, def, upper := axis.Min, axis.Default, axis.Max
	if !(lower <= def && def <= upper) {
		panic(fmt.Sprintf("invalid axis range %g <= %g <= %g", lower, def, upper))
	}
	v = clip(v, lower, upper)
	if v == def || lower == upper {
		return 0
	}
	if (v < def && lower != def) || (v > def && upper == def) {
		return (v - def) / (def - lower)
	}
	return (v - def) / (upper - def)
}

// NormalizeLocation converts a location given in user coordinates into
// normalized coordinates.  Axes missing from user are at their default.
// Tags in user which do not correspond to an axis are ignored.
func NormalizeLocation(user Location, axes []Axis) Location {
	res := make(Location, len(axes))
	for _, axis := range axes {
		v, ok := user[axis.Tag]
		if !ok {
			v = axis.Default
		}
		x := axis.Map.Apply(NormalizeValue(v, axis))
		if x != 0 {
			res[axis.Tag] = x
		}
	}
	return res
}

func isFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}

// clip clips a value to the given range [min, max].
func clip(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// interpolate performs linear interpolation.
func interpolate(x, xMin, xMax, yMin, yMax float64) float64 {
	if xMax <= xMin {
		return yMin
	}
	return yMin + (x-xMin)*(yMax-yMin)/(xMax-xMin)
}
