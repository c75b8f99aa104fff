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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeValue(t *testing.T) {
	type testCase struct {
		v                 float64
		lower, def, upper float64
		want              float64
	}
	testCases := []testCase{
		{400, 100, 400, 900, 0},
		{100, 100, 400, 900, -1},
		{650, 100, 400, 900, 0.5},
		{250, 100, 400, 900, -0.5},
		{1000, 100, 400, 900, 1},
		{0, 100, 400, 900, -1},
		{500, 400, 400, 700, 1.0 / 3},
		{300, 400, 400, 700, 0},
		{50, 0, 100, 100, -0.5},
		{150, 0, 100, 100, 0},
		{5, 5, 5, 5, 0},
	}
	for _, tc := range testCases {
		axis := Axis{Tag: "wght", Min: tc.lower, Default: tc.def, Max: tc.upper}
		got := NormalizeValue(tc.v, axis)
		if !cmp.Equal(got, tc.want, approx) {
			t.Errorf("NormalizeValue(%g, %g:%g:%g) = %g, want %g",
				tc.v, tc.lower, tc.def, tc.upper, got, tc.want)
		}
	}
}

func TestNormalizeValuePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("invalid axis did not panic")
		}
	}()
	NormalizeValue(0, Axis{Min: 1, Default: 0, Max: 2})
}

func TestAxisMap(t *testing.T) {
	m := AxisMap{
		{-1, -1},
		{0, 0},
		{0.5, 0.8},
		{1, 1},
	}
	type testCase struct {
		v, want float64
	}
	testCases := []testCase{
		{-1, -1},
		{-0.5, -0.5},
		{0, 0},
		{0.25, 0.4},
		{0.5, 0.8},
		{0.75, 0.9},
		{1, 1},
		{1.5, 1.5},
		{-2, -2},
	}
	for _, tc := range testCases {
		if got := m.Apply(tc.v); !cmp.Equal(got, tc.want, approx) {
			t.Errorf("Apply(%g) = %g, want %g", tc.v, got, tc.want)
		}
	}

	var empty AxisMap
	if got := empty.Apply(0.3); got != 0.3 {
		t.Errorf("empty map: got %g", got)
	}
}

func TestNormalizeLocation(t *testing.T) {
	axes := []Axis{
		{Tag: "wght", Min: 100, Default: 400, Max: 900,
			Map: AxisMap{{-1, -1}, {0, 0}, {0.5, 0.8}, {1, 1}}},
		{Tag: "wdth", Min: 75, Default: 100, Max: 125},
	}
	type testCase struct {
		user Location
		want Location
	}
	testCases := []testCase{
		{Location{}, Location{}},
		{Location{"wght": 400, "wdth": 100}, Location{}},
		{Location{"wght": 650}, Location{"wght": 0.8}},
		{Location{"wght": 100, "wdth": 125}, Location{"wght": -1, "wdth": 1}},
		{Location{"opsz": 12, "wdth": 87.5}, Location{"wdth": -0.5}},
	}
	for _, tc := range testCases {
		got := NormalizeLocation(tc.user, axes)
		if d := cmp.Diff(tc.want, got, approx); d != "" {
			t.Errorf("NormalizeLocation({%s}) (-want +got):\n%s", tc.user, d)
		}
	}
}

func TestAxisCheck(t *testing.T) {
	good := Axis{Tag: "wght", Min: 100, Default: 400, Max: 900}
	if err := good.Check(); err != nil {
		t.Errorf("valid axis: %v", err)
	}
	bad := []Axis{
		{Tag: "wght", Min: 500, Default: 400, Max: 900},
		{Tag: "wght", Min: 100, Default: 400, Max: 300},
		{Tag: "wght", Min: 100, Default: 400, Max: 900, Map: AxisMap{{0, 0}, {0, 1}}},
	}
	for _, axis := range bad {
		if err := axis.Check(); err == nil {
			t.Errorf("invalid axis %+v accepted", axis)
		}
	}
}

func TestLocationString(t *testing.T) {
	loc := Location{"wght": 0.5, "wdth": -1, "opsz": 0}
	s := loc.String()
	if s != "wdth=-1,wght=0.5" {
		t.Errorf("got %q", s)
	}
	back, err := ParseLocation(s)
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(loc) {
		t.Errorf("round trip: got {%s}", back)
	}

	empty, err := ParseLocation("")
	if err != nil || !empty.IsDefault() {
		t.Errorf("empty location: %v, %v", empty, err)
	}

	for _, in := range []string{"wght", "wght=x", "=1", "wght=1,wght=0.5"} {
		if _, err := ParseLocation(in); err == nil {
			t.Errorf("%q: expected error", in)
		}
	}
}
