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

// Package variation implements the interpolation model of OpenType variable
// fonts.
//
// A variable font has a number of design axes, for example weight or width.
// Points in the design space are described by a [Location], which gives the
// normalized coordinate for each axis.  Normalized coordinates range from -1
// to 1, with 0 at the default of the axis.  Axes which are missing from a
// Location are at their default.
//
// A [Model] is constructed from the locations of the master designs.  For
// every master, the model derives a [Support], the region of the design
// space in which the master has influence.  Values given at the masters
// (coordinates, advance widths, kerning values, ...) can then be converted
// into deltas, and from the deltas, values at arbitrary locations can be
// interpolated:
//
//	m, err := variation.NewModel(masters, nil)
//	if err != nil {
//		return err
//	}
//	deltas, err := m.GetDeltas(values)
//	if err != nil {
//		return err
//	}
//	v, err := m.Interpolate(deltas, variation.Location{"wght": 0.3})
//
// The model reproduces the master values exactly.  A Model is immutable once
// constructed and can be shared between goroutines.
//
// The package also converts user-space axis coordinates into normalized
// coordinates, see [NormalizeLocation].
package variation
