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

import "github.com/db47h/rjl/value"

// Routine is a cooperatively scheduled execution: a context, an ordered
// value list, and an instruction cursor. Offset equal to
// len(Values)+1 marks the routine as terminated by an execution error,
// distinct from the ordinary finished state where Offset == len(Values).
type Routine struct {
	Interpreter Interpreter
	Context     Context
	Values      []value.Value
	Offset      int
}

// NewRoutine returns a routine bound to ctx, ready to execute values from
// the start against interp.
func NewRoutine(interp Interpreter, ctx Context, values []value.Value) *Routine {
	return &Routine{Interpreter: interp, Context: ctx, Values: values, Offset: 0}
}

// IsFinished reports whether the routine has no more instructions to run,
// either because it ran them all or because it was terminated by an error.
func (r *Routine) IsFinished() bool {
	return r.Offset >= len(r.Values)
}

// Step executes the routine's next instruction, if any, and advances its
// cursor. It returns true on success. On failure it sets Offset to
// len(Values)+1, the terminated-by-error state, and returns false; the
// caller is expected to read and clear Context.Err().
func (r *Routine) Step() bool {
	if r.Offset >= len(r.Values) {
		return true
	}
	err := r.Interpreter.Execute(r.Context, r.Values[r.Offset])
	r.Offset++
	if err != nil || r.Context.Err() != nil {
		r.Offset = len(r.Values) + 1
		return false
	}
	return true
}
