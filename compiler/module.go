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
	"io"

	"github.com/db47h/rjl/wire"
	"github.com/pkg/errors"
)

// Module is one compile-side module: a pool-interned name and an
// insertion-ordered list of top-level instructions. Execution order is
// emission order.
type Module struct {
	NameIndex    uint32
	Instructions []Instruction
}

// Write serializes the module body: a U32 name index, a U32 instruction
// count, then each instruction in order.
func (m *Module) Write(w io.Writer) error {
	if err := wire.WriteU32(w, m.NameIndex); err != nil {
		return errors.Wrap(err, "compiler: write module name index")
	}
	if err := wire.WriteU32(w, uint32(len(m.Instructions))); err != nil {
		return errors.Wrap(err, "compiler: write module instruction count")
	}
	for i, instr := range m.Instructions {
		if err := instr.Write(w); err != nil {
			return errors.Wrapf(err, "compiler: write module instruction %d", i)
		}
	}
	return nil
}
