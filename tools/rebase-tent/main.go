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
	"seehuhn.de/go/otvar/variation"
)

var (
	tentArg     = flag.String("tent", "", "the tent as `lower:peak:upper`")
	limitArg    = flag.String("limit", "", "the new axis range as `min:default:max`, or a single value to pin the axis")
	distanceArg = flag.String("distances", "", "user space lengths of the axis halves as `neg:pos`")
	samplesArg  = flag.Int("samples", 0, "print a table with `n` sample points")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "rebase-tent - express a tent in the coordinates of a restricted axis\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("rebase-tent"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  rebase-tent -tent lower:peak:upper -limit min:default:max [options]\n\n")
		fmt.Fprintf(os.Stderr, "All coordinates are normalized coordinates of the original axis.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  rebase-tent -tent 0:0.5:1 -limit 0:0.5:1\n")
		fmt.Fprintf(os.Stderr, "  rebase-tent -tent 0:1:1 -limit 0.5\n")
	}
	flag.Parse()

	if *tentArg == "" || *limitArg == "" || flag.NArg() > 0 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	t, err := parseFloats(*tentArg, 3, 3)
	if err != nil {
		return fmt.Errorf("-tent: %w", err)
	}
	tent := variation.Tent{Lower: t[0], Peak: t[1], Upper: t[2]}
	if !(-2 <= tent.Lower && tent.Lower <= tent.Peak && tent.Peak <= tent.Upper && tent.Upper <= 2) {
		return fmt.Errorf("-tent: invalid tent %s", tent)
	}

	l, err := parseFloats(*limitArg, 1, 3)
	if err != nil {
		return fmt.Errorf("-limit: %w", err)
	}
	var limit instancer.AxisLimit
	switch len(l) {
	case 1:
		limit = instancer.Pin(l[0])
	case 3:
		limit = instancer.Range(l[0], l[1], l[2])
	default:
		return fmt.Errorf("-limit: need one or three values")
	}
	if *distanceArg != "" {
		d, err := parseFloats(*distanceArg, 2, 2)
		if err != nil {
			return fmt.Errorf("-distances: %w", err)
		}
		limit.NegativeDistance, limit.PositiveDistance = d[0], d[1]
	}
	if err := limit.Validate(); err != nil {
		return err
	}

	terms := instancer.RebaseTent(tent, limit)
	if len(terms) == 0 {
		fmt.Println("(no terms)")
	}
	for _, term := range terms {
		fmt.Println(term)
	}

	n := *samplesArg
	if n < 2 || limit.IsPin() {
		return nil
	}
	fmt.Println()
	fmt.Printf("%10s %10s %10s %10s\n", "old", "new", "tent", "terms")
	for i := range n {
		x := limit.Min + float64(i)*(limit.Max-limit.Min)/float64(n-1)
		y := limit.Renormalize(x)
		sum := 0.0
		for _, term := range terms {
			sum += term.Value(y)
		}
		want := 1.0
		if tent.Peak != 0 {
			want = tent.Value(x)
		}
		fmt.Printf("%10.4f %10.4f %10.4f %10.4f\n", x, y, want, sum)
	}
	return nil
}

// parseFloats parses a colon-separated list of between minCount and
// maxCount numbers.
func parseFloats(s string, minCount, maxCount int) ([]float64, error) {
	parts := strings.Split(s, ":")
	if len(parts) < minCount || len(parts) > maxCount {
		return nil, fmt.Errorf("expected %d to %d values, got %q", minCount, maxCount, s)
	}
	res := make([]float64, len(parts))
	for i, p := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		res[i] = x
	}
	return res, nil
}
