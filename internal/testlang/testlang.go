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

// Package testlang is a minimal toy interpreter implementing rt.Interpreter
// and rt.Context, used only by this module's own tests and by cmd/rjl's
// smoke-test path to exercise the scheduler, module manager, and decoder
// against something executable, without needing a real user program.
//
// Its execution model is deliberately small: pushing a value other than a
// Symbol or WordDeclaration just appends it to the stack; a Symbol looks
// itself up in the context's dictionary and runs the bound quote; a
// WordDeclaration binds its symbol. There is no arithmetic or I/O.
package testlang

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/db47h/rjl/rt"
	"github.com/db47h/rjl/value"
)

// ErrUndefinedWord is the execution error produced when a symbol has no
// binding in the current context's dictionary.
var ErrUndefinedWord = errors.New("testlang: undefined word")

// Interp is a stateless rt.Interpreter: every Context it creates owns its
// own stack and dictionary, but they all share the same import machinery
// through whatever rt.ModuleManager the embedding program wires up.
type Interp struct {
	Importer *rt.ModuleManager
}

// NewContext returns a fresh context with an empty stack and dictionary.
func (in *Interp) NewContext() rt.Context {
	return &Context{dict: make(map[string]int)}
}

// Execute runs one decoded value against ctx (see the package doc for the
// execution model).
func (in *Interp) Execute(ctx rt.Context, v value.Value) error {
	c := ctx.(*Context)
	switch t := v.(type) {
	case *value.Symbol:
		return in.call(c, t)
	case *value.WordDeclaration:
		c.define(t.Symbol.ID, t.Quote)
		return nil
	default:
		c.stack = append(c.stack, v)
		return nil
	}
}

func (in *Interp) call(c *Context, sym *value.Symbol) error {
	if sym.ID == "import" {
		return in.importWord(c)
	}
	idx, ok := c.dict[sym.ID]
	if !ok {
		c.SetErr(&rt.ExecError{
			Position: sym.Position,
			Code:     "undefined_word",
			Message:  errors.Wrapf(ErrUndefinedWord, "%s", sym.ID).Error(),
		})
		return nil
	}
	q := c.entries[idx].Quote
	for _, child := range q.Children {
		if err := in.Execute(c, child); err != nil {
			return err
		}
		if c.Err() != nil {
			return nil
		}
	}
	return nil
}

// importWord pops a string naming a module off the stack and pushes the
// object rt.ModuleManager.Import resolves for it, matching how the
// original runtime exposes module import as an ordinary word.
func (in *Interp) importWord(c *Context) error {
	if len(c.stack) == 0 {
		c.SetErr(&rt.ExecError{Code: "stack_underflow", Message: "import: empty stack"})
		return nil
	}
	top := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	s, ok := top.(*value.String)
	if !ok {
		c.SetErr(&rt.ExecError{Code: "type_error", Message: "import: expected a string path"})
		return nil
	}
	if in.Importer == nil {
		c.SetErr(&rt.ExecError{Code: "no_importer", Message: "import: no module manager configured"})
		return nil
	}
	obj := in.Importer.Import(c, s.Value)
	if c.Err() != nil {
		return nil
	}
	if obj == nil {
		c.SetErr(&rt.ExecError{Code: "import_not_found", Message: fmt.Sprintf("import: %q not found", s.Value)})
		return nil
	}
	c.stack = append(c.stack, obj)
	return nil
}

// Context is testlang's rt.Context implementation. Word bindings are kept
// in definition order in entries, with dict indexing into it so a
// redefinition updates in place rather than appending a duplicate.
type Context struct {
	filename string
	stack    []value.Value
	entries  []rt.DictEntry
	dict     map[string]int
	err      *rt.ExecError
}

func (c *Context) define(id string, q *value.Quote) {
	if idx, ok := c.dict[id]; ok {
		c.entries[idx].Quote = q
		return
	}
	c.dict[id] = len(c.entries)
	c.entries = append(c.entries, rt.DictEntry{ID: id, Quote: q})
}

func (c *Context) Err() *rt.ExecError { return c.err }

func (c *Context) SetErr(err *rt.ExecError) { c.err = err }

func (c *Context) ClearError() { c.err = nil }

func (c *Context) SetFilename(name string) { c.filename = name }

// Filename returns the name last set by SetFilename, attributed to
// positions reported by this context (exposed for tests).
func (c *Context) Filename() string { return c.filename }

// Stack exposes the context's value stack, for tests.
func (c *Context) Stack() []value.Value { return c.stack }

// Entries implements rt.Dictionary over this context's word table, in
// definition order.
func (c *Context) Entries() []rt.DictEntry {
	return c.entries
}

// Dictionary returns c itself: Context satisfies rt.Dictionary directly.
func (c *Context) Dictionary() rt.Dictionary { return c }
