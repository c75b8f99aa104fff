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
	"strings"

	"golang.org/x/exp/maps"
)

// Tent is a piecewise linear "hat" function on one axis.
// The function is 0 at and below Lower, rises linearly to 1 at Peak, and
// falls linearly back to 0 at Upper.
type Tent struct {
	Lower, Peak, Upper float64
}

// Value evaluates the tent function at v.
func (t Tent) Value(v float64) float64 {
	switch {
	case v == t.Peak:
		return 1
	case v <= t.Lower || v >= t.Upper:
		return 0
	case v < t.Peak:
		return (v - t.Lower) / (t.Peak - t.Lower)
	default:
		return (v - t.Upper) / (t.Peak - t.Upper)
	}
}

// IsValid reports whether the breakpoints of t are in order.
func (t Tent) IsValid() bool {
	return t.Lower <= t.Peak && t.Peak <= t.Upper
}

// straddles reports whether the tent extends to both sides of the default.
// OpenType does not allow such tents.
func (t Tent) straddles() bool {
	return t.Lower < 0 && t.Upper > 0
}

// IsIgnored reports whether [SupportScalar] disregards the tent.  This is
// the case for tents with peak 0, for malformed tents and for tents which
// extend to both sides of the default.
func (t Tent) IsIgnored() bool {
	return t.Peak == 0 || !t.IsValid() || t.straddles()
}

func (t Tent) String() string {
	return formatFloat(t.Lower) + ":" + formatFloat(t.Peak) + ":" + formatFloat(t.Upper)
}

// Support is the region of influence of a master.
// Axes which are not present do not restrict the region.
type Support map[Tag]Tent

// Clone returns a copy of s.
func (s Support) Clone() Support {
	if s == nil {
		return Support{}
	}
	return maps.Clone(s)
}

// Equal reports whether s and other contain the same tents.
func (s Support) Equal(other Support) bool {
	if len(s) != len(other) {
		return false
	}
	for tag, t := range s {
		o, ok := other[tag]
		if !ok || o != t {
			return false
		}
	}
	return true
}

// String returns the support in the form "wdth=0:0.5:1,wght=-1:-1:0",
// with the axes in sorted order.
func (s Support) String() string {
	parts := make([]string, 0, len(s))
	for _, tag := range sortedKeys(s) {
		parts = append(parts, string(tag)+"="+s[tag].String())
	}
	return strings.Join(parts, ",")
}

// SupportScalar returns the weight at loc of a master with the given
// support: the product over all axes of the tent values.
//
// The OpenType conventions are used: tents with peak 0 do not restrict the
// region, and malformed tents as well as tents which extend to both sides
// of the default are ignored.  Axes missing from loc are at 0.
func SupportScalar(loc Location, sup Support) float64 {
	scalar := 1.0
	for tag, t := range sup {
		if t.IsIgnored() {
			continue
		}
		v := loc[tag]
		if v == t.Peak {
			continue
		}
		if v <= t.Lower || v >= t.Upper {
			return 0
		}
		if v < t.Peak {
			scalar *= (v - t.Lower) / (t.Peak - t.Lower)
		} else {
			scalar *= (v - t.Upper) / (t.Peak - t.Upper)
		}
	}
	return scalar
}

// axisRange gives the extent of the master locations along one axis.
type axisRange struct {
	min, max float64
}

// supportScalarExtrapolate is like SupportScalar, but continues the ramps of
// tents which touch the boundary of the master range beyond that boundary.
func supportScalarExtrapolate(loc Location, sup Support, ranges map[Tag]axisRange) float64 {
	scalar := 1.0
	for tag, t := range sup {
		if t.IsIgnored() {
			continue
		}
		v := loc[tag]
		if v == t.Peak {
			continue
		}

		r := ranges[tag]
		if v < r.min && t.Lower <= r.min {
			if t.Peak <= r.min && t.Peak < t.Upper {
				scalar *= (v - t.Upper) / (t.Peak - t.Upper)
				continue
			} else if r.min < t.Peak {
				scalar *= (v - t.Lower) / (t.Peak - t.Lower)
				continue
			}
		} else if r.max < v && r.max <= t.Upper {
			if r.max <= t.Peak && t.Lower < t.Peak {
				scalar *= (v - t.Lower) / (t.Peak - t.Lower)
				continue
			} else if t.Peak < r.max {
				scalar *= (v - t.Upper) / (t.Peak - t.Upper)
				continue
			}
		}

		if v <= t.Lower || v >= t.Upper {
			return 0
		}
		if v < t.Peak {
			scalar *= (v - t.Lower) / (t.Peak - t.Lower)
		} else {
			scalar *= (v - t.Upper) / (t.Peak - t.Upper)
		}
	}
	return scalar
}
