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
	"strconv"

	"seehuhn.de/go/otvar/variation"
)

// LimitError indicates an invalid axis limit.
type LimitError struct {
	Axis   variation.Tag
	Value  float64
	Reason string
}

func (err *LimitError) Error() string {
	msg := "invalid axis limit"
	if err.Axis != "" {
		msg += " for " + strconv.Quote(string(err.Axis))
	}
	msg += ": " + err.Reason
	if err.Reason != "unknown axis" {
		msg += " (" + strconv.FormatFloat(err.Value, 'g', -1, 64) + ")"
	}
	return msg
}
