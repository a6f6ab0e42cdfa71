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

package compiler

import (
	"bytes"
	"io"

	"github.com/db47h/rjl/ast"
	"github.com/db47h/rjl/strpool"
	"github.com/db47h/rjl/version"
	"github.com/db47h/rjl/wire"
	"github.com/pkg/errors"
)

// Unit is a compilation unit: the string pool shared by every module
// compiled into it, plus the insertion-ordered list of those modules. The
// first module added is index 0; the runtime treats it as the main module.
type Unit struct {
	pool    *strpool.Pool
	modules []*Module
}

// NewUnit returns an empty compilation unit.
func NewUnit() *Unit {
	return &Unit{pool: strpool.New()}
}

// Pool returns the unit's shared string pool.
func (u *Unit) Pool() *strpool.Pool {
	return u.pool
}

// Modules returns the modules compiled into the unit so far, in insertion
// order.
func (u *Unit) Modules() []*Module {
	return u.modules
}

// Compile walks tree and adds the resulting module, named name, to the
// unit. name is interned into the shared pool.
func (u *Unit) Compile(name string, tree []ast.Node) *Module {
	m := &Module{
		NameIndex:    u.pool.Add(name),
		Instructions: Compile(tree, u.pool),
	}
	u.modules = append(u.modules, m)
	return m
}

// Write serializes the entire compilation unit to w following the
// pipeline: magic, version, pool, module count, module
// bodies. Module bodies are materialized to in-memory buffers first, so a
// failing module is reported before anything reaches w. Every pool entry
// was already added when its module was compiled (Module.Write does not
// touch the pool), so the pool written ahead of the bodies is complete.
func (u *Unit) Write(w io.Writer) error {
	bodies := make([][]byte, len(u.modules))
	for i, m := range u.modules {
		var buf bytes.Buffer
		if err := m.Write(&buf); err != nil {
			return errors.Wrapf(err, "compiler: materialize module %d", i)
		}
		bodies[i] = buf.Bytes()
	}

	if _, err := w.Write(version.Magic[:]); err != nil {
		return errors.Wrap(err, "compiler: write magic")
	}
	if _, err := w.Write([]byte{version.Patch, version.Minor, version.Major}); err != nil {
		return errors.Wrap(err, "compiler: write version")
	}
	if err := u.pool.Serialize(w); err != nil {
		return errors.Wrap(err, "compiler: write string pool")
	}
	if err := wire.WriteU32(w, uint32(len(bodies))); err != nil {
		return errors.Wrap(err, "compiler: write module count")
	}
	for i, body := range bodies {
		if _, err := w.Write(body); err != nil {
			return errors.Wrapf(err, "compiler: write module %d body", i)
		}
	}
	return nil
}
