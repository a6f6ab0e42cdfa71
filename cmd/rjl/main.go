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

	"github.com/db47h/rjl/disasm"
	"github.com/db47h/rjl/image"
	"github.com/db47h/rjl/internal/testlang"
	"github.com/db47h/rjl/rt"
	"github.com/db47h/rjl/version"
)

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
	fs := flag.NewFlagSet("rjl", flag.ContinueOnError)
	fork := fs.Bool("f", false, "detach and run in the background")
	dump := fs.Bool("dump", false, "print the decoded image as canonical text instead of running it")
	showVersion := fs.Bool("version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: rjl [-f] [-dump] <file> [args...]\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(exitOK)
		}
		os.Exit(exitUsage)
	}

	if *showVersion {
		fmt.Printf("rjl %d.%d.%d\n", version.Major, version.Minor, version.Patch)
		os.Exit(exitOK)
	}

	args := fs.Args()
	if len(args) < 1 {
		fs.Usage()
		os.Exit(exitUsage)
	}
	imagePath := args[0]

	if *fork {
		if err := detach(); err != nil {
			fmt.Fprintf(os.Stderr, "rjl: %v, continuing in foreground\n", err)
		}
	}

	modules, err := image.LoadFile(imagePath)
	if err != nil {
		fail(exitSoftware, "rjl: %v", err)
	}
	if len(modules) == 0 {
		fail(exitSoftware, "rjl: %s: no modules", imagePath)
	}

	if *dump {
		if err := disasm.All(os.Stdout, modules); err != nil {
			fail(exitSoftware, "rjl: %v", err)
		}
		os.Exit(exitOK)
	}

	registry := rt.NewRegistry()
	for _, m := range modules {
		registry.Register(m.Name, m.Values)
	}

	interp := &testlang.Interp{}
	interp.Importer = rt.NewModuleManager(registry, interp)

	sched := rt.NewScheduler(os.Stderr)
	sched.Spawn(interp, modules[0].Values)

	errored := false
	for !sched.Finished() {
		if sched.Step() {
			errored = true
		}
	}

	if errored {
		os.Exit(exitSoftware)
	}
	os.Exit(exitOK)
}
