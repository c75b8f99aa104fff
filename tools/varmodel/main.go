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
	"slices"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/otvar/tools/internal/buildinfo"
	"seehuhn.de/go/otvar/tools/internal/profile"
	"seehuhn.de/go/otvar/variation"
)

var (
	orderArg       = flag.String("order", "", "comma-separated axis `tags`, used to order the masters")
	extrapolateArg = flag.Bool("extrapolate", false, "extrapolate beyond the range of the masters")
	valuesArg      = flag.String("values", "", "comma-separated master `values`, one per location")
	pointsArg      = flag.String("points", "", "semicolon-separated master `outlines`, each a comma-separated list of x:y points")
	atArg          = flag.String("at", "", "interpolate the values or outlines at `location`")
	prof           = profile.Register(flag.CommandLine)
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "varmodel - show the structure of a variation model\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("varmodel"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  varmodel [options] <location>...\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  location   normalized master location, e.g. wght=1,wdth=-0.5,\n")
		fmt.Fprintf(os.Stderr, "             or \"default\" for the default master\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  varmodel default wght=1 wdth=1 wght=1,wdth=1\n")
		fmt.Fprintf(os.Stderr, "  varmodel -values 500,600,700,850 -at wght=0.5 default wght=1 wdth=1 wght=1,wdth=1\n")
		fmt.Fprintf(os.Stderr, "  varmodel -points '0:0,10:0;2:0,14:4' -at wght=0.5 default wght=1\n")
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	stop, err := prof.Start()
	if err != nil {
		return err
	}
	defer stop()

	locs := make([]variation.Location, flag.NArg())
	for i, arg := range flag.Args() {
		loc, err := parseLocation(arg)
		if err != nil {
			return fmt.Errorf("location %d: %w", i, err)
		}
		locs[i] = loc
	}

	opt := &variation.ModelOptions{Extrapolate: *extrapolateArg}
	if *orderArg != "" {
		for _, tag := range strings.Split(*orderArg, ",") {
			opt.AxisOrder = append(opt.AxisOrder, variation.Tag(strings.TrimSpace(tag)))
		}
	}
	m, err := variation.NewModel(locs, opt)
	if err != nil {
		return err
	}
	printModel(m)

	var at variation.Location
	if *atArg != "" {
		at, err = parseLocation(*atArg)
		if err != nil {
			return fmt.Errorf("-at: %w", err)
		}
	}

	if *valuesArg != "" {
		if err := showValues(m, *valuesArg, at); err != nil {
			return err
		}
	}
	if *pointsArg != "" {
		if err := showPoints(m, *pointsArg, at); err != nil {
			return err
		}
	}
	return nil
}

func showValues(m *variation.Model, arg string, at variation.Location) error {
	values, err := parseValues(arg)
	if err != nil {
		return err
	}
	deltas, err := m.GetDeltas(values)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println("deltas:")
	for i, d := range deltas {
		fmt.Printf("  %2d  %g\n", i, d)
	}

	if at == nil {
		return nil
	}
	v, err := m.Interpolate(deltas, at)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("value at {%s}: %g\n", at, v)
	return nil
}

func showPoints(m *variation.Model, arg string, at variation.Location) error {
	outlines, err := parseOutlines(arg)
	if err != nil {
		return err
	}
	deltas, err := m.GetPointDeltas(outlines)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println("point deltas:")
	for i, d := range deltas {
		fmt.Printf("  %2d  %s\n", i, formatPoints(d))
	}

	if at == nil {
		return nil
	}
	pts, err := m.InterpolatePoints(deltas, at)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("outline at {%s}: %s\n", at, formatPoints(pts))
	return nil
}

func printModel(m *variation.Model) {
	locs := m.Locations()
	supports := m.Supports()
	input := m.ReverseMapping()
	weights := m.DeltaWeights()

	fmt.Printf("%d masters\n\n", m.NumMasters())
	for i := range locs {
		fmt.Printf("%2d  (input %d)  {%s}\n", i, input[i], locs[i])
		fmt.Printf("    support  {%s}\n", supports[i])
		if len(weights[i]) == 0 {
			continue
		}
		masters := maps.Keys(weights[i])
		slices.Sort(masters)
		var parts []string
		for _, j := range masters {
			parts = append(parts, fmt.Sprintf("%d:%g", j, weights[i][j]))
		}
		fmt.Printf("    weights  %s\n", strings.Join(parts, " "))
	}
}

func parseLocation(s string) (variation.Location, error) {
	if s == "default" {
		return variation.Location{}, nil
	}
	return variation.ParseLocation(s)
}

func parseValues(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	values := make([]float64, len(parts))
	for i, p := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", p, err)
		}
		values[i] = x
	}
	return values, nil
}

// parseOutlines parses outlines of the form "0:0,10:0;2:0,14:4", with one
// outline per master.
func parseOutlines(s string) ([][]vec.Vec2, error) {
	var res [][]vec.Vec2
	for _, outline := range strings.Split(s, ";") {
		var pts []vec.Vec2
		for _, p := range strings.Split(outline, ",") {
			xs, ys, ok := strings.Cut(strings.TrimSpace(p), ":")
			if !ok {
				return nil, fmt.Errorf("invalid point %q", p)
			}
			x, err := strconv.ParseFloat(xs, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid point %q: %w", p, err)
			}
			y, err := strconv.ParseFloat(ys, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid point %q: %w", p, err)
			}
			pts = append(pts, vec.Vec2{X: x, Y: y})
		}
		res = append(res, pts)
	}
	return res, nil
}

func formatPoints(pts []vec.Vec2) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = fmt.Sprintf("%g:%g", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}
