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

// Package profile adds CPU and memory profiling options to the command line
// tools.
package profile

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// Flags holds the file names given on the command line.
type Flags struct {
	cpu string
	mem string
}

// Register adds the -cpuprofile and -memprofile options to fs.
func Register(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.cpu, "cpuprofile", "", "write cpu profile to `file`")
	fs.StringVar(&f.mem, "memprofile", "", "write memory profile to `file`")
	return f
}

// Start begins CPU profiling, if requested.  The returned function stops
// the CPU profile and writes the memory profile.  Callers should defer it.
func (f *Flags) Start() (stop func(), err error) {
	var cpuFile *os.File
	if f.cpu != "" {
		cpuFile, err = os.Create(f.cpu)
		if err != nil {
			return nil, fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err = pprof.StartCPUProfile(cpuFile); err != nil {
			cpuFile.Close()
			return nil, fmt.Errorf("could not start CPU profile: %w", err)
		}
	}

	stop = func() {
		if cpuFile != nil {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}
		if f.mem != "" {
			if err := writeHeap(f.mem); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
	}
	return stop, nil
}

func writeHeap(fname string) error {
	out, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("could not create memory profile: %w", err)
	}
	runtime.GC()
	allocs := pprof.Lookup("allocs")
	if allocs == nil {
		out.Close()
		return fmt.Errorf("could not look up memory profile")
	}
	if err := allocs.WriteTo(out, 0); err != nil {
		out.Close()
		return fmt.Errorf("could not write memory profile: %w", err)
	}
	return out.Close()
}
