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

// Package rt implements the runtime side of the core: the module registry,
// the module manager, and the cooperative scheduler. The L
// interpreter itself is an external collaborator; this file pins down the
// Go contract this package needs from it, the way IN/OUT/WAIT handlers are
// bound by signature rather than implemented by the binding package itself.
package rt

import "github.com/db47h/rjl/value"

// ExecError is an execution error reported by a Context, carrying enough
// to format the stderr diagnostic the scheduler prints.
type ExecError struct {
	Position value.Position
	Code     string
	Message  string
}

func (e *ExecError) Error() string {
	return e.Message
}

// Dictionary is a live, mutable word table a Context accumulates as it
// executes word declarations. ModuleManager reads it through Entries once
// execution of an imported module's top level completes.
type Dictionary interface {
	// Entries returns the currently defined words in definition order, as
	// (symbol id, quote) pairs.
	Entries() []DictEntry
}

// DictEntry is one word binding read out of a Context's dictionary.
type DictEntry struct {
	ID    string
	Quote *value.Quote
}

// Context is a single routine's execution context: its own dictionary,
// its own pending error slot, and whatever stacks/state the interpreter
// keeps privately. The scheduler and module manager only ever touch the
// five members named here.
type Context interface {
	// Err returns the error signaled by the most recent Execute call on
	// this context, or nil if none is pending.
	Err() *ExecError
	// SetErr sets the pending error, used by ModuleManager to propagate a
	// failed import onto the importing context.
	SetErr(err *ExecError)
	// ClearError clears any pending error, after the scheduler has
	// reported it.
	ClearError()
	// Dictionary returns this context's word table.
	Dictionary() Dictionary
	// SetFilename sets the name attributed to values executed on this
	// context from here on, used by the module manager when it spins up a
	// fresh context for an import.
	SetFilename(name string)
}

// Interpreter executes one decoded value against a context, the single
// entry point the scheduler and module manager call into.
// Implementations also satisfy import requests themselves; ModuleManager
// is handed to a concrete Interpreter by the embedding program, not called
// by this package directly, matching the "external collaborator" framing
// of this package.
type Interpreter interface {
	// NewContext creates a fresh Context sharing this interpreter's
	// runtime (dictionary base, value manager, etc).
	NewContext() Context
	// Execute runs one value against ctx. A nil return does not mean
	// success; callers must additionally check ctx.Err() after the call,
	// matching the original's side-channel error convention.
	Execute(ctx Context, v value.Value) error
}
