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

package instancer

import (
	"fmt"
	"math"
	"slices"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/otvar/variation"
)

// AxisLimit describes the new range of one axis, in the normalized
// coordinates of the original font.
//
// After instancing, Min is at -1, Default is at 0 and Max is at 1.  If Min,
// Default and Max coincide, the axis is pinned and removed from the font.
type AxisLimit struct {
	Min, Default, Max float64

	// NegativeDistance and PositiveDistance give the lengths, in user
	// coordinates, of the parts of the original axis below and above the
	// original default.  They are only used if the new range contains the
	// original default strictly inside, in which case renormalization is
	// linear in user coordinates.  Both are 1 for limits constructed by
	// [Pin] and [Range].
	NegativeDistance, PositiveDistance float64
}

// Pin returns a limit which fixes the axis at v.
func Pin(v float64) AxisLimit {
	return AxisLimit{Min: v, Default: v, Max: v, NegativeDistance: 1, PositiveDistance: 1}
}

// Range returns a limit which restricts the axis to [min, max], with the
// new default def.
func Range(min, def, max float64) AxisLimit {
	return AxisLimit{Min: min, Default: def, Max: max, NegativeDistance: 1, PositiveDistance: 1}
}

// IsPin reports whether the limit fixes the axis to a single value.
func (l AxisLimit) IsPin() bool {
	return l.Min == l.Default && l.Default == l.Max
}

func (l AxisLimit) String() string {
	if l.IsPin() {
		return fmt.Sprintf("%g", l.Default)
	}
	return fmt.Sprintf("%g:%g:%g", l.Min, l.Default, l.Max)
}

// Validate checks that Min <= Default <= Max and that all values are in
// the range [-1, 1].
func (l AxisLimit) Validate() error {
	return l.validate("")
}

func (l AxisLimit) validate(tag variation.Tag) error {
	for _, v := range []float64{l.Min, l.Default, l.Max} {
		if math.IsNaN(v) || v < -1 || v > 1 {
			return &LimitError{Axis: tag, Value: v, Reason: "outside [-1, 1]"}
		}
	}
	if l.Min > l.Default {
		return &LimitError{Axis: tag, Value: l.Min, Reason: "minimum above default"}
	}
	if l.Default > l.Max {
		return &LimitError{Axis: tag, Value: l.Max, Reason: "maximum below default"}
	}
	for _, d := range []float64{l.NegativeDistance, l.PositiveDistance} {
		if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
			return &LimitError{Axis: tag, Value: d, Reason: "invalid axis distance"}
		}
	}
	if (l.Min < 0 && l.Default > 0) || (l.Max > 0 && l.Default < 0) {
		if l.NegativeDistance == 0 || l.PositiveDistance == 0 {
			return &LimitError{Axis: tag, Value: l.Default, Reason: "zero axis distance"}
		}
	}
	return nil
}

// reverse mirrors the limit at the original default.
func (l AxisLimit) reverse() AxisLimit {
	return AxisLimit{
		Min:              -l.Max,
		Default:          -l.Default,
		Max:              -l.Min,
		NegativeDistance: l.PositiveDistance,
		PositiveDistance: l.NegativeDistance,
	}
}

// Renormalize maps a coordinate from the original normalized space to the
// normalized space of the restricted axis.  Values outside [Min, Max] are
// mapped by linear extrapolation.
func (l AxisLimit) Renormalize(v float64) float64 {
	if v == l.Default {
		return 0
	}
	if l.Default < 0 {
		return -l.reverse().Renormalize(-v)
	}

	// from here on, l.Default >= 0
	if v > l.Default {
		return (v - l.Default) / (l.Max - l.Default)
	}
	if l.Min >= 0 {
		return (v - l.Default) / (l.Default - l.Min)
	}

	// The range below the new default crosses the original default.  The
	// two sides of the original default may have different scales in user
	// space.
	total := l.NegativeDistance*-l.Min + l.PositiveDistance*l.Default
	var dist float64
	if v >= 0 {
		dist = (l.Default - v) * l.PositiveDistance
	} else {
		dist = -v*l.NegativeDistance + l.PositiveDistance*l.Default
	}
	return -dist / total
}

// AxisLimits maps axis tags to the new ranges of the axes.
// Axes which are not present are not changed.
type AxisLimits map[variation.Tag]AxisLimit

// Validate checks all limits, see [AxisLimit.Validate].
func (ls AxisLimits) Validate() error {
	for _, tag := range ls.tags() {
		if err := ls[tag].validate(tag); err != nil {
			return err
		}
	}
	return nil
}

// Pinned returns the location given by the pinned axes.
func (ls AxisLimits) Pinned() variation.Location {
	loc := variation.Location{}
	for tag, l := range ls {
		if l.IsPin() && l.Default != 0 {
			loc[tag] = l.Default
		}
	}
	return loc
}

func (ls AxisLimits) tags() []variation.Tag {
	tags := maps.Keys(ls)
	slices.Sort(tags)
	return tags
}

// NormalizeLocation maps a location from the original design space into the
// restricted design space.  Pinned axes are removed, coordinates on
// restricted axes are clamped to the new range and renormalized.  The
// limits must be valid.
func NormalizeLocation(loc variation.Location, limits AxisLimits) variation.Location {
	res := loc.Clone()
	for tag, l := range limits {
		if l.IsPin() {
			delete(res, tag)
			continue
		}
		v := l.Renormalize(clip(loc[tag], l.Min, l.Max))
		if v == 0 {
			delete(res, tag)
		} else {
			res[tag] = v
		}
	}
	return res
}

// UserLimit describes the new range of an axis in user coordinates.
type UserLimit struct {
	Min, Max float64

	// Default is the new default.  If this is nil, the default of the
	// original axis is used, clamped to the range [Min, Max].
	Default *float64
}

// UserPin returns a limit which fixes the axis at the user coordinate v.
func UserPin(v float64) UserLimit {
	return UserLimit{Min: v, Max: v, Default: &v}
}

// NormalizeLimits converts limits given in user coordinates into normalized
// coordinates of the original font.  The avar maps of the axes are applied.
func NormalizeLimits(axes []variation.Axis, user map[variation.Tag]UserLimit) (AxisLimits, error) {
	byTag := make(map[variation.Tag]variation.Axis, len(axes))
	for _, axis := range axes {
		if err := axis.Check(); err != nil {
			return nil, err
		}
		byTag[axis.Tag] = axis
	}

	res := make(AxisLimits, len(user))
	userTags := maps.Keys(user)
	slices.Sort(userTags)
	for _, tag := range userTags {
		u := user[tag]
		axis, ok := byTag[tag]
		if !ok {
			return nil, &LimitError{Axis: tag, Reason: "unknown axis"}
		}

		if math.IsNaN(u.Min) || u.Min < axis.Min {
			return nil, &LimitError{Axis: tag, Value: u.Min, Reason: "minimum outside axis range"}
		}
		if math.IsNaN(u.Max) || u.Max > axis.Max {
			return nil, &LimitError{Axis: tag, Value: u.Max, Reason: "maximum outside axis range"}
		}
		if u.Min > u.Max {
			return nil, &LimitError{Axis: tag, Value: u.Min, Reason: "minimum above maximum"}
		}
		def := clip(axis.Default, u.Min, u.Max)
		if u.Default != nil {
			def = *u.Default
			if math.IsNaN(def) || def < u.Min || def > u.Max {
				return nil, &LimitError{Axis: tag, Value: def, Reason: "default outside new range"}
			}
		}

		n := func(v float64) float64 {
			return axis.Map.Apply(variation.NormalizeValue(v, axis))
		}
		res[tag] = AxisLimit{
			Min:              n(u.Min),
			Default:          n(def),
			Max:              n(u.Max),
			NegativeDistance: axis.Default - axis.Min,
			PositiveDistance: axis.Max - axis.Default,
		}
	}
	return res, nil
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
