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

	"seehuhn.de/go/otvar/variation"
)

const (
	// epsilon is used to move a breakpoint away from the new default, where
	// a tent would otherwise be discontinuous.
	epsilon = 1.0 / (1 << 14)

	// maxF2Dot14 is the largest value representable in F2Dot14 format.
	maxF2Dot14 = float64(0x7FFF) / (1 << 14)
)

// Term is one summand of a rebased tent.  If Tent is nil, the term is the
// constant Gain.  Otherwise the term is Gain times the tent function.
type Term struct {
	Gain float64
	Tent *variation.Tent
}

// Value evaluates the term at the coordinate v.
func (t Term) Value(v float64) float64 {
	if t.Tent == nil {
		return t.Gain
	}
	return t.Gain * t.Tent.Value(v)
}

func (t Term) String() string {
	if t.Tent == nil {
		return fmt.Sprintf("%g", t.Gain)
	}
	return fmt.Sprintf("%g@%s", t.Gain, t.Tent)
}

// RebaseTent expresses a tent on one axis in the coordinates of the
// restricted axis.
//
// The sum of the values of the returned terms at the renormalized
// coordinate limit.Renormalize(v) equals tent.Value(v), for all v in the
// range [limit.Min, limit.Max].  If the limit is a pin, the result is either
// empty or a single constant term.  Terms with gain 0 are omitted.
//
// The coordinates of tent must be in [-2, 2] and the limit must be valid,
// otherwise RebaseTent panics.
func RebaseTent(tent variation.Tent, limit AxisLimit) []Term {
	if !(-2 <= tent.Lower && tent.Lower <= tent.Peak &&
		tent.Peak <= tent.Upper && tent.Upper <= 2) {
		panic(fmt.Sprintf("instancer: invalid tent %s", tent))
	}
	if err := limit.Validate(); err != nil {
		panic("instancer: " + err.Error())
	}

	if tent.Peak == 0 {
		return []Term{{Gain: 1}}
	}
	if limit.IsPin() {
		gain := tent.Value(limit.Default)
		if gain == 0 {
			return nil
		}
		return []Term{{Gain: gain}}
	}

	var res []Term
	for _, p := range solve(tent, limit, false) {
		if p.gain == 0 {
			continue
		}
		term := Term{Gain: p.gain}
		if !p.constant {
			term.Tent = &variation.Tent{
				Lower: limit.Renormalize(p.tent.Lower),
				Peak:  limit.Renormalize(p.tent.Peak),
				Upper: limit.Renormalize(p.tent.Upper),
			}
		}
		res = append(res, term)
	}
	return res
}

// piece is a term in the old coordinates of the axis.
type piece struct {
	gain     float64
	tent     variation.Tent
	constant bool
}

// solve computes the terms for a tent restricted to the range of l.  The
// tents of the result are given in old coordinates.  The flag negative is
// set if the problem has been mirrored to the positive side.
func solve(tent variation.Tent, l AxisLimit, negative bool) []piece {
	if l.Default > tent.Peak {
		res := solve(mirror(tent), l.reverse(), !negative)
		for i := range res {
			res[i].tent = mirror(res[i].tent)
		}
		return res
	}

	// from here on, l.Default <= tent.Peak

	if l.Max <= tent.Lower && l.Max < tent.Peak {
		// The tent lies above the new range.
		return nil
	}
	if l.Max < tent.Peak {
		// The new range ends on the rising slope of the tent.  We replace
		// the tent by a tent peaking at l.Max and scale the result.
		mult := tent.Value(l.Max)
		res := solve(variation.Tent{Lower: tent.Lower, Peak: l.Max, Upper: l.Max}, l, negative)
		for i := range res {
			res[i].gain *= mult
		}
		return res
	}

	gain := tent.Value(l.Default)
	res := []piece{{gain: gain, constant: true}}
	res = appendUpper(res, tent, l, gain, negative)
	res = appendLower(res, tent, l, gain)
	return res
}

// upperShape describes the behaviour of a tent between the new default and
// the new maximum.
type upperShape int

const (
	// The tent drops to the gain at the new default, and ends at or beyond
	// the new maximum.
	upperEndsOutside upperShape = iota

	// The tent drops to the gain at the new default, and ends before the
	// new maximum.  Two extra tents are needed to cancel the gain.
	upperEndsInside

	// The tent stays above the gain at the new default.  It can be
	// represented by a single tent with a wider base.
	upperWidened

	// Like upperWidened, but the wider base would extend too far.  The tent
	// is cut at the new maximum and a second tent makes up the difference.
	upperCut
)

// classifyUpper determines the shape of the positive side of tent.  The
// second return value is the point where the rescaled tent reaches zero.
func classifyUpper(tent variation.Tent, l AxisLimit, gain, outGain float64) (upperShape, float64) {
	if gain >= outGain {
		crossing := tent.Peak + (1-gain)*(tent.Upper-tent.Peak)
		if tent.Upper >= l.Max {
			return upperEndsOutside, crossing
		}
		return upperEndsInside, crossing
	}

	upper := tent.Upper
	if l.Max == tent.Peak {
		upper = tent.Peak
	}
	widened := tent.Peak + (1-gain)*(upper-tent.Peak)
	if widened <= l.Default+2*(l.Max-l.Default) {
		return upperWidened, widened
	}
	return upperCut, widened
}

func appendUpper(res []piece, tent variation.Tent, l AxisLimit, gain float64, negative bool) []piece {
	outGain := tent.Value(l.Max)
	lower := math.Max(tent.Lower, l.Default)
	peak := tent.Peak

	shape, bound := classifyUpper(tent, l, gain, outGain)
	switch shape {
	case upperEndsOutside:
		res = append(res,
			piece{gain: 1 - gain, tent: variation.Tent{Lower: lower, Peak: peak, Upper: bound}},
			piece{gain: outGain - gain, tent: variation.Tent{Lower: bound, Peak: l.Max, Upper: l.Max}})

	case upperEndsInside:
		upper := tent.Upper
		if upper == l.Default {
			upper += epsilon
		}
		res = append(res,
			piece{gain: 1 - gain, tent: variation.Tent{Lower: lower, Peak: peak, Upper: bound}},
			piece{gain: -gain, tent: variation.Tent{Lower: bound, Peak: upper, Upper: l.Max}},
			piece{gain: -gain, tent: variation.Tent{Lower: upper, Peak: l.Max, Upper: l.Max}})

	case upperWidened:
		if !negative {
			// After renormalization, the upper end must fit into F2Dot14.
			// On the negative side, -2 is representable.
			limit := l.Default + (l.Max-l.Default)*maxF2Dot14
			if bound > limit {
				bound = limit
			}
		}
		res = append(res,
			piece{gain: 1 - gain, tent: variation.Tent{Lower: lower, Peak: peak, Upper: bound}})

	case upperCut:
		res = append(res,
			piece{gain: 1 - gain, tent: variation.Tent{Lower: lower, Peak: peak, Upper: l.Max}})
		if peak < l.Max {
			res = append(res,
				piece{gain: outGain - gain, tent: variation.Tent{Lower: peak, Peak: l.Max, Upper: l.Max}})
		}
	}
	return res
}

// lowerShape describes the behaviour of a tent between the new minimum and
// the new default.
type lowerShape int

const (
	// The tent starts at or below the new minimum.
	lowerStartsOutside lowerShape = iota

	// The tent starts above the new minimum.  Two tents are needed to bring
	// the gain at the new default down to zero.
	lowerStartsInside
)

func classifyLower(tent variation.Tent, l AxisLimit) lowerShape {
	if tent.Lower <= l.Min {
		return lowerStartsOutside
	}
	return lowerStartsInside
}

func appendLower(res []piece, tent variation.Tent, l AxisLimit, gain float64) []piece {
	switch classifyLower(tent, l) {
	case lowerStartsOutside:
		res = append(res,
			piece{gain: tent.Value(l.Min) - gain, tent: variation.Tent{Lower: l.Min, Peak: l.Min, Upper: l.Default}})

	case lowerStartsInside:
		lower := tent.Lower
		if lower == l.Default {
			lower -= epsilon
		}
		res = append(res,
			piece{gain: -gain, tent: variation.Tent{Lower: l.Min, Peak: lower, Upper: l.Default}},
			piece{gain: -gain, tent: variation.Tent{Lower: l.Min, Peak: l.Min, Upper: lower}})
	}
	return res
}

// mirror reflects a tent at 0.
func mirror(t variation.Tent) variation.Tent {
	return variation.Tent{Lower: -t.Upper, Peak: -t.Peak, Upper: -t.Lower}
}
