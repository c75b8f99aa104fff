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
	"math"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/postscript/funit"
)

// SupportScalar returns the weight of master i (in canonical order) at the
// given location.
func (m *Model) SupportScalar(loc Location, i int) float64 {
	if m.extrapolate {
		return supportScalarExtrapolate(loc, m.supports[i], m.axisRanges)
	}
	return SupportScalar(loc, m.supports[i])
}

// GetScalars returns the weights of all masters at the given location, in
// canonical order.  These are the factors which multiply the deltas.
func (m *Model) GetScalars(loc Location) []float64 {
	res := make([]float64, len(m.supports))
	for i := range m.supports {
		res[i] = m.SupportScalar(loc, i)
	}
	return res
}

// GetMasterScalars returns the weights which, applied directly to the master
// values, give the interpolated value at loc.  The result uses the order of
// the locations passed to [NewModel].
func (m *Model) GetMasterScalars(loc Location) []float64 {
	out := m.GetScalars(loc)
	for i := len(m.deltaWeights) - 1; i >= 0; i-- {
		for _, w := range m.deltaWeights[i] {
			out[w.master] -= out[i] * w.weight
		}
	}
	res := make([]float64, len(out))
	for i, k := range m.mapping {
		res[i] = out[k]
	}
	return res
}

// GetDeltas converts master values into deltas.
//
// The values must be given in the order of the locations passed to
// [NewModel].  The deltas are returned in canonical order; the first delta
// is the value at the default master.
func (m *Model) GetDeltas(values []float64) ([]float64, error) {
	if len(values) != len(m.locations) {
		return nil, &CountMismatchError{What: "master values", Got: len(values), Want: len(m.locations)}
	}
	out := make([]float64, len(m.locations))
	for i, weights := range m.deltaWeights {
		delta := values[m.reverseMapping[i]]
		for _, w := range weights {
			if w.weight == 1 {
				delta -= out[w.master]
			} else {
				delta -= out[w.master] * w.weight
			}
		}
		out[i] = delta
	}
	return out, nil
}

// GetDeltasRounded is like [Model.GetDeltas], but rounds every delta to an
// integer in font design units.  Each delta is rounded before it is used to
// compute the deltas of later masters, so that the rounding errors do not
// accumulate.
func (m *Model) GetDeltasRounded(values []float64) ([]funit.Int16, error) {
	if len(values) != len(m.locations) {
		return nil, &CountMismatchError{What: "master values", Got: len(values), Want: len(m.locations)}
	}
	deltas := make([]float64, len(m.locations))
	out := make([]funit.Int16, len(m.locations))
	for i, weights := range m.deltaWeights {
		delta := values[m.reverseMapping[i]]
		for _, w := range weights {
			delta -= deltas[w.master] * w.weight
		}
		delta = otRound(delta)
		if delta < math.MinInt16 || delta > math.MaxInt16 {
			return nil, &DeltaOverflowError{Master: i, Value: delta}
		}
		deltas[i] = delta
		out[i] = funit.Int16(delta)
	}
	return out, nil
}

// otRound rounds x to the nearest integer, rounding halves up.
func otRound(x float64) float64 {
	return math.Floor(x + 0.5)
}

// GetPointDeltas converts glyph outlines given at the masters into deltas.
// Every master must have the same number of points.  The master outlines
// must be given in the order of the locations passed to [NewModel]; the
// result is in canonical order.
func (m *Model) GetPointDeltas(values [][]vec.Vec2) ([][]vec.Vec2, error) {
	if len(values) != len(m.locations) {
		return nil, &CountMismatchError{What: "master outlines", Got: len(values), Want: len(m.locations)}
	}
	n := len(values[0])
	for _, pts := range values[1:] {
		if len(pts) != n {
			return nil, &CountMismatchError{What: "points", Got: len(pts), Want: n}
		}
	}

	out := make([][]vec.Vec2, len(m.locations))
	for i, weights := range m.deltaWeights {
		delta := make([]vec.Vec2, n)
		copy(delta, values[m.reverseMapping[i]])
		for _, w := range weights {
			prev := out[w.master]
			for k := range delta {
				delta[k] = delta[k].Sub(prev[k].Mul(w.weight))
			}
		}
		out[i] = delta
	}
	return out, nil
}

// Interpolate returns the value at loc, given the deltas computed by
// [Model.GetDeltas].
func (m *Model) Interpolate(deltas []float64, loc Location) (float64, error) {
	if len(deltas) != len(m.supports) {
		return 0, &CountMismatchError{What: "deltas", Got: len(deltas), Want: len(m.supports)}
	}
	return InterpolateFromDeltasAndScalars(deltas, m.GetScalars(loc))
}

// InterpolatePoints returns the glyph outline at loc, given the deltas
// computed by [Model.GetPointDeltas].
func (m *Model) InterpolatePoints(deltas [][]vec.Vec2, loc Location) ([]vec.Vec2, error) {
	if len(deltas) != len(m.supports) {
		return nil, &CountMismatchError{What: "deltas", Got: len(deltas), Want: len(m.supports)}
	}
	res := make([]vec.Vec2, len(deltas[0]))
	for i, s := range m.GetScalars(loc) {
		if s == 0 {
			continue
		}
		if len(deltas[i]) != len(res) {
			return nil, &CountMismatchError{What: "points", Got: len(deltas[i]), Want: len(res)}
		}
		for k, d := range deltas[i] {
			res[k] = res[k].Add(d.Mul(s))
		}
	}
	return res, nil
}

// InterpolateFromMasters returns the value at loc, given the values at the
// masters in the order of the locations passed to [NewModel].
func (m *Model) InterpolateFromMasters(loc Location, values []float64) (float64, error) {
	deltas, err := m.GetDeltas(values)
	if err != nil {
		return 0, err
	}
	return m.Interpolate(deltas, loc)
}

// InterpolateFromMastersAndScalars combines master values with the weights
// obtained from [Model.GetMasterScalars].
func InterpolateFromMastersAndScalars(values, scalars []float64) (float64, error) {
	return InterpolateFromDeltasAndScalars(values, scalars)
}

// InterpolateFromDeltasAndScalars returns the weighted sum of the deltas,
// using the weights obtained from [Model.GetScalars].
func InterpolateFromDeltasAndScalars(deltas, scalars []float64) (float64, error) {
	if len(deltas) != len(scalars) {
		return 0, &CountMismatchError{What: "scalars", Got: len(scalars), Want: len(deltas)}
	}
	var v float64
	for i, d := range deltas {
		s := scalars[i]
		if s == 0 {
			continue
		}
		v += d * s
	}
	return v, nil
}

// SubModel returns a model for the subset of masters where present is true.
// This is used when some masters do not provide a value, for example
// because a glyph is missing from a source.  The entries of present
// correspond to the locations passed to [NewModel].  The default master must
// be present.
func (m *Model) SubModel(present []bool) (*Model, error) {
	if len(present) != len(m.origLocations) {
		return nil, &CountMismatchError{What: "master flags", Got: len(present), Want: len(m.origLocations)}
	}
	all := true
	var locs []Location
	for i, ok := range present {
		if ok {
			locs = append(locs, m.origLocations[i])
		} else {
			all = false
		}
	}
	if all {
		return m, nil
	}
	return NewModel(locs, &ModelOptions{
		AxisOrder:   m.axisOrder,
		Extrapolate: m.extrapolate,
	})
}
