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

// Package designspace reads the description of a design space, together
// with values at the masters, from an HCL file.  This is used by the
// command line tools.
//
// A design file looks like this:
//
//	axis "wght" {
//	  min     = 100
//	  default = 400
//	  max     = 900
//	  map     = [[-1, -1], [0, 0], [0.5, 0.8], [1, 1]]
//	}
//
//	master "Regular" {
//	  location = {}
//	  values   = [500, 20]
//	}
//
//	master "Bold" {
//	  location = { wght = 900 }
//	  values   = [560, 36]
//	}
//
//	limit "wght" {
//	  min     = 400
//	  max     = 700
//	  default = 400
//	}
//
// Master locations and limits are given in user coordinates.  The optional
// axis map is given in normalized coordinates, like the avar table.
package designspace

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"seehuhn.de/go/otvar/instancer"
	"seehuhn.de/go/otvar/variation"
)

// Design is the contents of a design file.
type Design struct {
	Axes    []variation.Axis
	Masters []Master
	Limits  map[variation.Tag]instancer.UserLimit
}

// Master is a master design together with the values at this master.
type Master struct {
	Name     string
	Location variation.Location // user coordinates
	Values   []float64
}

type hclFile struct {
	Axes    []*hclAxis   `hcl:"axis,block"`
	Masters []*hclMaster `hcl:"master,block"`
	Limits  []*hclLimit  `hcl:"limit,block"`
}

type hclAxis struct {
	Tag     string      `hcl:"tag,label"`
	Min     float64     `hcl:"min"`
	Default float64     `hcl:"default"`
	Max     float64     `hcl:"max"`
	Map     [][]float64 `hcl:"map,optional"`
}

type hclMaster struct {
	Name     string    `hcl:"name,label"`
	Location cty.Value `hcl:"location"`
	Values   []float64 `hcl:"values"`
}

type hclLimit struct {
	Tag     string   `hcl:"tag,label"`
	Min     float64  `hcl:"min"`
	Max     float64  `hcl:"max"`
	Default *float64 `hcl:"default,optional"`
}

// Load reads a design file.
func Load(fname string) (*Design, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(fname)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", fname, diags)
	}
	return decode(f, fname)
}

// Parse decodes the contents of a design file.  The file name is only used
// in error messages.
func Parse(src []byte, fname string) (*Design, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, fname)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", fname, diags)
	}
	return decode(f, fname)
}

func decode(f *hcl.File, fname string) (*Design, error) {
	var parsed hclFile
	diags := gohcl.DecodeBody(f.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %w", fname, diags)
	}

	d := &Design{
		Limits: make(map[variation.Tag]instancer.UserLimit, len(parsed.Limits)),
	}
	known := make(map[variation.Tag]bool)
	for _, a := range parsed.Axes {
		axis := variation.Axis{
			Tag:     variation.Tag(a.Tag),
			Min:     a.Min,
			Default: a.Default,
			Max:     a.Max,
		}
		if known[axis.Tag] {
			return nil, fmt.Errorf("%s: axis %q defined twice", fname, a.Tag)
		}
		for _, p := range a.Map {
			if len(p) != 2 {
				return nil, fmt.Errorf("%s: axis %q: map entries must be pairs", fname, a.Tag)
			}
			axis.Map = append(axis.Map, variation.MapPoint{From: p[0], To: p[1]})
		}
		if err := axis.Check(); err != nil {
			return nil, fmt.Errorf("%s: %w", fname, err)
		}
		known[axis.Tag] = true
		d.Axes = append(d.Axes, axis)
	}

	for _, m := range parsed.Masters {
		loc, err := location(m.Location, known)
		if err != nil {
			return nil, fmt.Errorf("%s: master %q: %w", fname, m.Name, err)
		}
		d.Masters = append(d.Masters, Master{Name: m.Name, Location: loc, Values: m.Values})
	}
	if len(d.Masters) > 0 {
		n := len(d.Masters[0].Values)
		for _, m := range d.Masters[1:] {
			if len(m.Values) != n {
				return nil, fmt.Errorf("%s: master %q: %w", fname, m.Name,
					&variation.CountMismatchError{What: "values", Got: len(m.Values), Want: n})
			}
		}
	}

	for _, l := range parsed.Limits {
		tag := variation.Tag(l.Tag)
		if _, dup := d.Limits[tag]; dup {
			return nil, fmt.Errorf("%s: limit for axis %q given twice", fname, l.Tag)
		}
		d.Limits[tag] = instancer.UserLimit{Min: l.Min, Max: l.Max, Default: l.Default}
	}
	return d, nil
}

// location converts an HCL object into a location.
func location(val cty.Value, known map[variation.Tag]bool) (variation.Location, error) {
	loc := variation.Location{}
	if val.IsNull() {
		return loc, nil
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return nil, fmt.Errorf("location must be an object, not %s", val.Type().FriendlyName())
	}
	for it := val.ElementIterator(); it.Next(); {
		k, v := it.Element()
		tag := variation.Tag(k.AsString())
		if !known[tag] {
			return nil, fmt.Errorf("unknown axis %q", tag)
		}
		if v.IsNull() || !v.IsKnown() || !v.Type().Equals(cty.Number) {
			return nil, fmt.Errorf("axis %q: coordinate must be a number", tag)
		}
		x, _ := v.AsBigFloat().Float64()
		loc[tag] = x
	}
	return loc, nil
}

// Model constructs the variation model for the masters of the design.
func (d *Design) Model(opt *variation.ModelOptions) (*variation.Model, error) {
	locs := make([]variation.Location, len(d.Masters))
	for i, m := range d.Masters {
		locs[i] = d.Normalize(m.Location)
	}
	return variation.NewModel(locs, opt)
}

// Normalize converts a location from user coordinates into normalized
// coordinates.
func (d *Design) Normalize(user variation.Location) variation.Location {
	return variation.NormalizeLocation(user, d.Axes)
}

// Variations computes the deltas for the master values and attaches them
// to the regions of the model.
func (d *Design) Variations(m *variation.Model) ([]instancer.Variation, error) {
	if len(d.Masters) != m.NumMasters() {
		return nil, &variation.CountMismatchError{What: "masters", Got: len(d.Masters), Want: m.NumMasters()}
	}
	var numValues int
	if len(d.Masters) > 0 {
		numValues = len(d.Masters[0].Values)
	}

	deltas := make([][]float64, m.NumMasters())
	for i := range deltas {
		deltas[i] = make([]float64, numValues)
	}
	column := make([]float64, len(d.Masters))
	for c := range numValues {
		for i, master := range d.Masters {
			column[i] = master.Values[c]
		}
		dc, err := m.GetDeltas(column)
		if err != nil {
			return nil, err
		}
		for i, x := range dc {
			deltas[i][c] = x
		}
	}
	return instancer.VariationsFromModel(m, deltas)
}

// AxisLimits converts the limits of the design into normalized
// coordinates.
func (d *Design) AxisLimits() (instancer.AxisLimits, error) {
	return instancer.NormalizeLimits(d.Axes, d.Limits)
}

// AxisTags returns the tags of all axes, in the order of the design file.
func (d *Design) AxisTags() []variation.Tag {
	tags := make([]variation.Tag, 0, len(d.Axes))
	for _, a := range d.Axes {
		tags = append(tags, a.Tag)
	}
	return tags
}
