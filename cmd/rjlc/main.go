// This file is part of rjl - https://github.com/db47h/rjl
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/db47h/rjl/compiler"
	"github.com/db47h/rjl/internal/testlang"
	"github.com/db47h/rjl/version"
)

// Exit codes follow the BSD sysexits.h EX_USAGE convention.
const (
	exitOK       = 0
	exitUsage    = 64
	exitSoftware = 1
)

func fail(code int, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(code)
}

func main() {
	fs := flag.NewFlagSet("rjlc", flag.ContinueOnError)
	outPath := fs.String("o", "", "output image `file` (required)")
	showVersion := fs.Bool("version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: rjlc -o file <file...>\n\n")
		fmt.Fprintf(os.Stderr, "Compiles one or more source files into a single bytecode image.\n")
		fmt.Fprintf(os.Stderr, "The first file named becomes module 0, the image's main module.\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(exitOK)
		}
		os.Exit(exitUsage)
	}

	if *showVersion {
		fmt.Printf("rjlc %d.%d.%d\n", version.Major, version.Minor, version.Patch)
		os.Exit(exitOK)
	}

	files := fs.Args()
	if len(files) == 0 || *outPath == "" {
		fs.Usage()
		os.Exit(exitUsage)
	}

	unit := compiler.NewUnit()
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			fail(exitSoftware, "rjlc: %v", err)
		}
		tree, err := testlang.Parse(path, f)
		f.Close()
		if err != nil {
			fail(exitSoftware, "rjlc: %v", err)
		}
		unit.Compile(path, tree)
	}

	out, err := os.Create(*outPath)
	if err != nil {
		fail(exitSoftware, "rjlc: %v", err)
	}
	err = unit.Write(out)
	closeErr := out.Close()
	if err != nil {
		fail(exitSoftware, "rjlc: %v", err)
	}
	if closeErr != nil {
		fail(exitSoftware, "rjlc: %v", closeErr)
	}
	os.Exit(exitOK)
}
