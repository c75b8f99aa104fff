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

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"seehuhn.de/go/otvar/instancer"
	"seehuhn.de/go/otvar/tools/internal/buildinfo"
	"seehuhn.de/go/otvar/tools/internal/designspace"
	"seehuhn.de/go/otvar/tools/internal/profile"
	"seehuhn.de/go/otvar/variation"
)

var (
	atArg          = flag.String("at", "", "evaluate before and after instancing at user `location`")
	limitArg       = flag.String("limit", "", "override the limits of the design file, e.g. wght=400:700,wdth=100")
	extrapolateArg = flag.Bool("extrapolate", false, "extrapolate beyond the range of the masters")
	prof           = profile.Register(flag.CommandLine)
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "varinst - restrict the axes of a design space\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("varinst"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  varinst [options] <design.hcl>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nLimits are given in user coordinates as min:max, min:default:max\n")
		fmt.Fprintf(os.Stderr, "or as a single value, which pins the axis.\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  varinst design.hcl\n")
		fmt.Fprintf(os.Stderr, "  varinst -limit wght=400:700 -at wght=550 design.hcl\n")
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(fname string) error {
	stop, err := prof.Start()
	if err != nil {
		return err
	}
	defer stop()

	d, err := designspace.Load(fname)
	if err != nil {
		return err
	}
	if *limitArg != "" {
		user, err := parseLimits(*limitArg)
		if err != nil {
			return fmt.Errorf("-limit: %w", err)
		}
		d.Limits = user
	}

	m, err := d.Model(&variation.ModelOptions{
		AxisOrder:   d.AxisTags(),
		Extrapolate: *extrapolateArg,
	})
	if err != nil {
		return err
	}
	vars, err := d.Variations(m)
	if err != nil {
		return err
	}
	limits, err := d.AxisLimits()
	if err != nil {
		return err
	}
	limited, err := instancer.LimitVariations(vars, limits)
	if err != nil {
		return err
	}

	fmt.Printf("%d masters, %d regions\n", m.NumMasters(), len(vars))
	printVariations(vars)
	fmt.Println()
	fmt.Println("limits:")
	for _, tag := range d.AxisTags() {
		if l, ok := limits[tag]; ok {
			fmt.Printf("  %s  %s\n", tag, l)
		}
	}
	fmt.Println()
	fmt.Printf("%d regions after instancing\n", len(limited))
	printVariations(limited)

	if *atArg == "" {
		return nil
	}
	user, err := variation.ParseLocation(*atArg)
	if err != nil {
		return fmt.Errorf("-at: %w", err)
	}
	loc := d.Normalize(user)
	before := instancer.Evaluate(vars, loc)
	after := instancer.Evaluate(limited, instancer.NormalizeLocation(loc, limits))
	fmt.Println()
	fmt.Printf("at {%s} (normalized {%s}):\n", user, loc)
	fmt.Printf("  before  %s\n", formatValues(before))
	fmt.Printf("  after   %s\n", formatValues(after))
	return nil
}

func printVariations(vars []instancer.Variation) {
	for i, v := range vars {
		fmt.Printf("%3d  {%s}\n", i, v.Support)
		fmt.Printf("     %s\n", formatValues(v.Deltas))
	}
}

func formatValues(x []float64) string {
	parts := make([]string, len(x))
	for i, v := range x {
		parts[i] = fmt.Sprintf("%g", v)
	}
	return strings.Join(parts, " ")
}

// parseLimits parses a comma-separated list of tag=limit entries.
func parseLimits(s string) (map[variation.Tag]instancer.UserLimit, error) {
	res := make(map[variation.Tag]instancer.UserLimit)
	for _, entry := range strings.Split(s, ",") {
		tag, value, ok := strings.Cut(strings.TrimSpace(entry), "=")
		if !ok {
			return nil, fmt.Errorf("invalid limit %q", entry)
		}
		var x [3]float64
		fields := strings.Split(value, ":")
		if len(fields) > 3 {
			return nil, fmt.Errorf("invalid limit %q", entry)
		}
		for i, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid limit %q: %w", entry, err)
			}
			x[i] = v
		}
		var l instancer.UserLimit
		switch len(fields) {
		case 1:
			l = instancer.UserPin(x[0])
		case 2:
			l = instancer.UserLimit{Min: x[0], Max: x[1]}
		case 3:
			def := x[1]
			l = instancer.UserLimit{Min: x[0], Max: x[2], Default: &def}
		}
		res[variation.Tag(tag)] = l
	}
	return res, nil
}
