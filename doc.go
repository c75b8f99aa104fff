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

// Package otvar implements the arithmetic of OpenType font variations.
//
// The code is organized in the following subpackages:
//
//	variation   locations, tents and supports, axis normalization and the
//	            variation model, which converts master values into deltas
//	instancer   restriction of the design space: axis limits, rebasing of
//	            tents and renormalization of locations
//
// A variation model is constructed from the locations of the masters:
//
//	m, err := variation.NewModel(masters, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	deltas, err := m.GetDeltas(values)
//	...
//	v, err := m.Interpolate(deltas, loc)
//
// The packages do not read or write font files.
package otvar
