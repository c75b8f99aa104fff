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

// Package instancer restricts the design space of a variable font.
//
// An [AxisLimits] value restricts some axes of the design space to a
// sub-range, possibly with a new default, or pins them to a single value.
// The axis coordinates are then renormalized, so that the new range again
// runs from -1 to 1 with the new default at 0.  Pinned axes disappear.
//
// Since the variation data of a font is attached to piecewise linear tent
// functions, the tents need to be rewritten for the new coordinates.
// [RebaseTent] solves this problem for a single tent on a single axis,
// [LimitVariations] applies it to whole sets of deltas.  On the retained
// part of the design space, the interpolated values are unchanged.
//
// All coordinates used in this package are normalized coordinates of the
// original font, unless stated otherwise.  [NormalizeLimits] converts limits
// given in user coordinates.
package instancer
