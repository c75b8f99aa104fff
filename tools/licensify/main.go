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
	"bytes"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"seehuhn.de/go/otvar/tools/internal/buildinfo"
)

const header = `// seehuhn.de/go/otvar - OpenType font variation math
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

`

var checkArg = flag.Bool("check", false, "only list the files without license header")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "licensify - add the license header to Go source files\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("licensify"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  licensify [options] [dir]...\n\n")
		fmt.Fprintf(os.Stderr, "Directories starting with \".\" or \"_\" are skipped.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	dirs := flag.Args()
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	missing := 0
	for _, dir := range dirs {
		n, err := walk(dir, *checkArg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		missing += n
	}
	if *checkArg && missing > 0 {
		os.Exit(1)
	}
}

// walk visits all Go files below root.  It returns the number of files
// which had no license header.
func walk(root string, checkOnly bool) (int, error) {
	missing := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}

		body, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if bytes.HasPrefix(body, []byte(header)) {
			return nil
		}
		missing++
		if checkOnly {
			fmt.Println(path)
			return nil
		}
		if !bytes.HasPrefix(body, []byte("package ")) && !bytes.HasPrefix(body, []byte("// Package ")) {
			fmt.Println("ATTENTION " + path)
			return nil
		}

		fmt.Println("updating " + path)
		return os.WriteFile(path, append([]byte(header), body...), 0o644)
	})
	return missing, err
}
