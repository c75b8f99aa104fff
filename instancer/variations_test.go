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
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/otvar/variation"
)

func TestLimitSupport(t *testing.T) {
	sup := variation.Support{
		"wght": {Lower: 0, Peak: 1, Upper: 1},
		"wdth": {Lower: 0, Peak: 1, Upper: 1},
	}
	wdthOnly := variation.Support{"wdth": {Lower: 0, Peak: 1, Upper: 1}}

	type testCase struct {
		sup   variation.Support
		tag   variation.Tag
		limit AxisLimit
		want  []SupportTerm
	}
	testCases := []testCase{
		{sup, "wght", Pin(0.5), []SupportTerm{{Gain: 0.5, Support: wdthOnly}}},
		{sup, "wght", Pin(0), nil},
		{sup, "opsz", Pin(0.5), []SupportTerm{{Gain: 1, Support: sup}}},
		{sup, "wght", Range(-1, 0, 0.5), []SupportTerm{{Gain: 0.5, Support: sup}}},
		{
			variation.Support{
				"wght": {Lower: -1, Peak: 0.5, Upper: 1},
				"wdth": {Lower: 0, Peak: 1, Upper: 1},
			},
			"wght", Range(-1, 0.5, 1),
			[]SupportTerm{{Gain: 1, Support: wdthOnly}},
		},
	}
	for _, tc := range testCases {
		got := LimitSupport(tc.sup, tc.tag, tc.limit)
		if d := cmp.Diff(tc.want, got, approx, equateNone); d != "" {
			t.Errorf("LimitSupport({%s}, %s, %s) (-want +got):\n%s",
				tc.sup, tc.tag, tc.limit, d)
		}
	}

	// the input must not be modified
	if len(sup) != 2 || sup["wght"] != (variation.Tent{Lower: 0, Peak: 1, Upper: 1}) {
		t.Errorf("support was modified: {%s}", sup)
	}
}

func TestMerge(t *testing.T) {
	vars := []Variation{
		{Support: variation.Support{}, Deltas: []float64{1, 2}},
		{Support: variation.Support{"wght": {Lower: 0, Peak: 1, Upper: 1}}, Deltas: []float64{0, 0}},
		{Support: nil, Deltas: []float64{1, 1}},
	}
	got, err := LimitVariations(vars, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []Variation{
		{Support: variation.Support{}, Deltas: []float64{2, 3}},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
	if vars[0].Deltas[0] != 1 {
		t.Error("input deltas were modified")
	}
}

func TestLimitVariationsErrors(t *testing.T) {
	vars := []Variation{
		{Support: variation.Support{}, Deltas: []float64{1, 2}},
		{Support: variation.Support{"wght": {Lower: 0, Peak: 1, Upper: 1}}, Deltas: []float64{3}},
	}
	_, err := LimitVariations(vars, AxisLimits{"wght": Pin(0.5)})
	var countErr *variation.CountMismatchError
	if !errors.As(err, &countErr) {
		t.Errorf("expected *CountMismatchError, got %v", err)
	}

	_, err = LimitVariations(vars[:1], AxisLimits{"wght": Range(0, 0.5, 0.2)})
	var limitErr *LimitError
	if !errors.As(err, &limitErr) {
		t.Errorf("expected *LimitError, got %v", err)
	}
}

// instancingModel returns a model together with the variations for random
// master values.  The values have two components.
func instancingModel(t *testing.T) (*variation.Model, []Variation) {
	t.Helper()

	locs := []variation.Location{
		{},
		{"wght": 0.5},
		{"wght": 1},
		{"wght": -1},
		{"wdth": 1},
		{"wght": 1, "wdth": 1},
	}
	m, err := variation.NewModel(locs, nil)
	if err != nil {
		t.Fatal(err)
	}

	rng := rand.New(rand.NewSource(4))
	n := m.NumMasters()
	deltas := make([][]float64, n)
	for i := range deltas {
		deltas[i] = make([]float64, 2)
	}
	for c := range 2 {
		values := make([]float64, n)
		for i := range values {
			values[i] = 1 + rng.Float64()*100
		}
		d, err := m.GetDeltas(values)
		if err != nil {
			t.Fatal(err)
		}
		for i := range d {
			deltas[i][c] = d[i]
		}
	}

	vars, err := VariationsFromModel(m, deltas)
	if err != nil {
		t.Fatal(err)
	}
	return m, vars
}

func TestVariationsFromModel(t *testing.T) {
	m, vars := instancingModel(t)
	if len(vars) != m.NumMasters() {
		t.Fatalf("got %d variations, want %d", len(vars), m.NumMasters())
	}

	// Evaluate must agree with the model
	col := make([]float64, len(vars))
	for i, v := range vars {
		col[i] = v.Deltas[1]
	}
	loc := variation.Location{"wght": 0.7, "wdth": 0.3}
	want, err := m.Interpolate(col, loc)
	if err != nil {
		t.Fatal(err)
	}
	got := Evaluate(vars, loc)
	if !cmp.Equal(got[1], want, approx) {
		t.Errorf("Evaluate: got %g, want %g", got[1], want)
	}

	_, err = VariationsFromModel(m, [][]float64{{1, 2}})
	var countErr *variation.CountMismatchError
	if !errors.As(err, &countErr) {
		t.Errorf("expected *CountMismatchError, got %v", err)
	}
}

func TestLimitVariations(t *testing.T) {
	_, vars := instancingModel(t)
	rng := rand.New(rand.NewSource(5))

	type testCase struct {
		limits  AxisLimits
		wght    [2]float64
		wdth    [2]float64
		maxVars int
	}
	testCases := []testCase{
		{
			limits: AxisLimits{"wght": Range(-0.5, 0.25, 1)},
			wght:   [2]float64{-0.5, 1},
			wdth:   [2]float64{0, 1},
		},
		{
			limits: AxisLimits{
				"wght": Range(-0.5, 0.25, 1),
				"wdth": Range(0, 0, 0.5),
			},
			wght: [2]float64{-0.5, 1},
			wdth: [2]float64{0, 0.5},
		},
		{
			limits: AxisLimits{"wght": Pin(0.5)},
			wght:   [2]float64{0.5, 0.5},
			wdth:   [2]float64{0, 1},
		},
		{
			limits:  AxisLimits{"wght": Pin(0.75), "wdth": Pin(1)},
			wght:    [2]float64{0.75, 0.75},
			wdth:    [2]float64{1, 1},
			maxVars: 1,
		},
	}
	for _, tc := range testCases {
		limited, err := LimitVariations(vars, tc.limits)
		if err != nil {
			t.Fatal(err)
		}
		if tc.maxVars > 0 && len(limited) > tc.maxVars {
			t.Errorf("%v: got %d variations, want at most %d",
				tc.limits, len(limited), tc.maxVars)
		}
		for _, v := range limited {
			for tag, l := range tc.limits {
				if _, found := v.Support[tag]; found && l.IsPin() {
					t.Errorf("%v: pinned axis %s in support {%s}", tc.limits, tag, v.Support)
				}
			}
		}

		for range 100 {
			loc := variation.Location{
				"wght": tc.wght[0] + rng.Float64()*(tc.wght[1]-tc.wght[0]),
				"wdth": tc.wdth[0] + rng.Float64()*(tc.wdth[1]-tc.wdth[0]),
			}
			want := Evaluate(vars, loc)
			got := Evaluate(limited, NormalizeLocation(loc, tc.limits))
			if d := cmp.Diff(want, got, approx); d != "" {
				t.Errorf("%v at {%s} (-want +got):\n%s", tc.limits, loc, d)
			}
		}
	}
}

func TestEvaluateEmpty(t *testing.T) {
	if got := Evaluate(nil, variation.Location{"wght": 1}); got != nil {
		t.Errorf("got %v", got)
	}
}

func BenchmarkLimitVariations(b *testing.B) {
	locs := []variation.Location{
		{},
		{"wght": 1},
		{"wght": -1},
		{"wdth": 1},
		{"wdth": -1},
		{"wght": 1, "wdth": 1},
		{"wght": -1, "wdth": -1},
	}
	m, err := variation.NewModel(locs, nil)
	if err != nil {
		b.Fatal(err)
	}
	deltas := make([][]float64, m.NumMasters())
	for i := range deltas {
		deltas[i] = make([]float64, 50)
		for j := range deltas[i] {
			deltas[i][j] = float64(i + j)
		}
	}
	vars, err := VariationsFromModel(m, deltas)
	if err != nil {
		b.Fatal(err)
	}
	limits := AxisLimits{
		"wght": Range(-0.5, 0.25, 1),
		"wdth": Pin(0.3),
	}

	b.ResetTimer()
	for range b.N {
		_, err := LimitVariations(vars, limits)
		if err != nil {
			b.Fatal(err)
		}
	}
}
