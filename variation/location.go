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
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
)

// Tag identifies a design axis, for example "wght" or "wdth".
type Tag string

// Location is a point in normalized design space.
// Axes which are not present in the map are at their default value 0.
type Location map[Tag]float64

// Get returns the coordinate of loc for the given axis.
func (loc Location) Get(tag Tag) float64 {
	return loc[tag]
}

// Clone returns a copy of loc.
func (loc Location) Clone() Location {
	if loc == nil {
		return Location{}
	}
	return maps.Clone(loc)
}

// IsDefault reports whether all coordinates of loc are zero.
func (loc Location) IsDefault() bool {
	for _, v := range loc {
		if v != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether loc and other describe the same point.
// Zero coordinates are equivalent to missing ones.
func (loc Location) Equal(other Location) bool {
	for tag, v := range loc {
		if other[tag] != v {
			return false
		}
	}
	for tag, v := range other {
		if loc[tag] != v {
			return false
		}
	}
	return true
}

// Tags returns the axes with non-zero coordinates, in sorted order.
func (loc Location) Tags() []Tag {
	tags := make([]Tag, 0, len(loc))
	for tag, v := range loc {
		if v != 0 {
			tags = append(tags, tag)
		}
	}
	slices.Sort(tags)
	return tags
}

// stripped returns a copy of loc, without the zero coordinates.
func (loc Location) stripped() Location {
	res := make(Location, len(loc))
	for tag, v := range loc {
		if v != 0 {
			res[tag] = v
		}
	}
	return res
}

// String returns the location in the form "wdth=-0.5,wght=1".
// Axes are sorted and zero coordinates are omitted, so that two locations
// which are Equal have the same string representation.
func (loc Location) String() string {
	var parts []string
	for _, tag := range loc.Tags() {
		parts = append(parts, string(tag)+"="+formatFloat(loc[tag]))
	}
	return strings.Join(parts, ",")
}

// ParseLocation parses a location in the format produced by
// [Location.String].  The empty string denotes the default location.
func ParseLocation(s string) (Location, error) {
	loc := Location{}
	s = strings.TrimSpace(s)
	if s == "" {
		return loc, nil
	}
	for _, part := range strings.Split(s, ",") {
		key, val, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("invalid location component %q", part)
		}
		tag := Tag(strings.TrimSpace(key))
		if tag == "" {
			return nil, errors.New("missing axis tag in location")
		}
		if _, seen := loc[tag]; seen {
			return nil, fmt.Errorf("axis %q given twice", tag)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, fmt.Errorf("axis %q: %w", tag, err)
		}
		loc[tag] = x
	}
	return loc, nil
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// sortedKeys returns the keys of m in increasing order.
func sortedKeys[V any](m map[Tag]V) []Tag {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}
