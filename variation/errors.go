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
	"strconv"
)

// MissingDefaultError is returned by [NewModel] if none of the master
// locations is the default location.
type MissingDefaultError struct{}

func (err *MissingDefaultError) Error() string {
	return "no master at the default location"
}

// DuplicateLocationError is returned by [NewModel] if two masters have the
// same location.  First and Second are the indices of the two masters in
// the input.
type DuplicateLocationError struct {
	Location      Location
	First, Second int
}

func (err *DuplicateLocationError) Error() string {
	return fmt.Sprintf("masters %d and %d have the same location {%s}",
		err.First, err.Second, err.Location)
}

// LocationRangeError is returned by [NewModel] if a master coordinate is not
// a number in the range [-1, 1].
type LocationRangeError struct {
	Index int
	Axis  Tag
	Value float64
}

func (err *LocationRangeError) Error() string {
	return fmt.Sprintf("master %d: coordinate %s=%s outside [-1, 1]",
		err.Index, err.Axis, formatFloat(err.Value))
}

// CountMismatchError indicates that the number of values passed to a model
// method does not match the model.
type CountMismatchError struct {
	What      string
	Got, Want int
}

func (err *CountMismatchError) Error() string {
	return "wrong number of " + err.What + ": got " + strconv.Itoa(err.Got) +
		", want " + strconv.Itoa(err.Want)
}

// DeltaOverflowError is returned by [Model.GetDeltasRounded] if a delta does
// not fit into a 16-bit integer.
type DeltaOverflowError struct {
	Master int // index in canonical order
	Value  float64
}

func (err *DeltaOverflowError) Error() string {
	return fmt.Sprintf("delta %s for master %d exceeds 16-bit range",
		formatFloat(err.Value), err.Master)
}
