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
	"slices"

	"seehuhn.de/go/otvar/variation"
)

// Variation is a set of deltas attached to a region of the design space.
// This is the unit in which variation data is stored in a font, for
// example in a tuple variation of the gvar table.
type Variation struct {
	Support variation.Support
	Deltas  []float64
}

// SupportTerm is one region of a rebased support, together with the factor
// to apply to the deltas.
type SupportTerm struct {
	Gain    float64
	Support variation.Support
}

// LimitSupport rebases a region for a limit on the axis tag.
//
// Tents which have no effect on the region are removed from the support.
// If sup does not depend on the axis, the result is sup with gain 1.
// If the retained range of the axis does not intersect the region, the
// result is empty.
func LimitSupport(sup variation.Support, tag variation.Tag, limit AxisLimit) []SupportTerm {
	tent, ok := sup[tag]
	if !ok || tent.IsIgnored() {
		res := sup.Clone()
		delete(res, tag)
		return []SupportTerm{{Gain: 1, Support: res}}
	}

	terms := RebaseTent(tent, limit)
	res := make([]SupportTerm, 0, len(terms))
	for _, term := range terms {
		s := sup.Clone()
		delete(s, tag)
		if term.Tent != nil {
			s[tag] = *term.Tent
		}
		res = append(res, SupportTerm{Gain: term.Gain, Support: s})
	}
	return res
}

// LimitVariations restricts the design space of a set of variations.
//
// Evaluating the result at NormalizeLocation(loc, limits) gives the same
// values as evaluating vars at loc, for all loc inside the new ranges.
// The axes are processed in order of their tags.  Variations with equal
// supports are merged and variations where all deltas are zero are
// removed.  The deltas attached to the empty support (if any) give the
// change of the default values.
func LimitVariations(vars []Variation, limits AxisLimits) ([]Variation, error) {
	if err := limits.Validate(); err != nil {
		return nil, err
	}
	if len(vars) > 0 {
		n := len(vars[0].Deltas)
		for _, v := range vars[1:] {
			if len(v.Deltas) != n {
				return nil, &variation.CountMismatchError{What: "deltas", Got: len(v.Deltas), Want: n}
			}
		}
	}

	res := make([]Variation, len(vars))
	for i, v := range vars {
		res[i] = Variation{Support: v.Support.Clone(), Deltas: slices.Clone(v.Deltas)}
	}
	for _, tag := range limits.tags() {
		limit := limits[tag]
		var next []Variation
		for _, v := range res {
			for _, term := range LimitSupport(v.Support, tag, limit) {
				next = append(next, Variation{
					Support: term.Support,
					Deltas:  scaled(v.Deltas, term.Gain),
				})
			}
		}
		res = merge(next)
	}
	return merge(res), nil
}

// merge combines variations with equal supports.  The order of first
// occurrence is kept.  Variations with only zero deltas are dropped.
func merge(vars []Variation) []Variation {
	index := make(map[string]int, len(vars))
	var res []Variation
	for _, v := range vars {
		key := v.Support.String()
		if i, ok := index[key]; ok {
			for j, d := range v.Deltas {
				res[i].Deltas[j] += d
			}
			continue
		}
		index[key] = len(res)
		res = append(res, Variation{Support: v.Support, Deltas: slices.Clone(v.Deltas)})
	}

	out := res[:0]
	for _, v := range res {
		if !allZero(v.Deltas) {
			out = append(out, v)
		}
	}
	return out
}

// VariationsFromModel pairs the regions of a model with per-master deltas.
// deltas[i] holds the deltas of all components for master i, with the
// masters in the canonical order of the model.  This is the transpose of
// the results of [variation.Model.GetDeltas] for the individual components.
func VariationsFromModel(m *variation.Model, deltas [][]float64) ([]Variation, error) {
	supports := m.Supports()
	if len(deltas) != len(supports) {
		return nil, &variation.CountMismatchError{What: "delta sets", Got: len(deltas), Want: len(supports)}
	}
	res := make([]Variation, len(supports))
	for i, sup := range supports {
		res[i] = Variation{Support: sup, Deltas: slices.Clone(deltas[i])}
	}
	return res, nil
}

// Evaluate returns the sum of the deltas of all variations, weighted by the
// support scalars at loc.  If vars is empty, the result is nil.
func Evaluate(vars []Variation, loc variation.Location) []float64 {
	if len(vars) == 0 {
		return nil
	}
	res := make([]float64, len(vars[0].Deltas))
	for _, v := range vars {
		s := variation.SupportScalar(loc, v.Support)
		if s == 0 {
			continue
		}
		for j, d := range v.Deltas {
			res[j] += s * d
		}
	}
	return res
}

func scaled(x []float64, s float64) []float64 {
	res := make([]float64, len(x))
	for i, xi := range x {
		res[i] = s * xi
	}
	return res
}

func allZero(x []float64) bool {
	for _, xi := range x {
		if xi != 0 {
			return false
		}
	}
	return true
}
