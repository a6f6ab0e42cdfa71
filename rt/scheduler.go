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

package rt

import (
	"fmt"
	"io"

	"github.com/db47h/rjl/value"
)

// Scheduler maintains an ordered list of routines and advances them one
// instruction at a time in strict round-robin order.
type Scheduler struct {
	routines []*Routine
	cursor   int
	stderr   io.Writer
}

// NewScheduler returns an empty scheduler. Routine errors are reported as
// one line per error to stderr.
func NewScheduler(stderr io.Writer) *Scheduler {
	return &Scheduler{stderr: stderr}
}

// Spawn appends a new routine executing values on a fresh context created
// by interp, and returns it.
func (s *Scheduler) Spawn(interp Interpreter, values []value.Value) *Routine {
	r := NewRoutine(interp, interp.NewContext(), values)
	s.routines = append(s.routines, r)
	return r
}

// Finished reports whether every routine has completed.
func (s *Scheduler) Finished() bool {
	return len(s.routines) == 0
}

// Step advances exactly one routine by one instruction and returns true if
// an error was observed on this tick (used by callers to accumulate the
// process exit status). The cursor is normalized to the start of the list
// before stepping, so passing the end of the list costs nothing: every
// call to Step that finds a non-empty routine list advances exactly one
// instruction, preserving strict round-robin order across removals.
func (s *Scheduler) Step() bool {
	if len(s.routines) == 0 {
		return false
	}
	if s.cursor >= len(s.routines) {
		s.cursor = 0
	}

	r := s.routines[s.cursor]
	ok := r.Step()
	errored := false
	if !ok {
		errored = true
		s.report(r)
		r.Context.ClearError()
	}

	if r.IsFinished() {
		s.routines = append(s.routines[:s.cursor], s.routines[s.cursor+1:]...)
	} else {
		s.cursor++
	}
	return errored
}

func (s *Scheduler) report(r *Routine) {
	err := r.Context.Err()
	if err == nil {
		fmt.Fprintf(s.stderr, "error: routine terminated\n")
		return
	}
	fmt.Fprintf(s.stderr, "%s:%d:%d: %s: %s\n",
		err.Position.File, err.Position.Line, err.Position.Column, err.Code, err.Message)
}
