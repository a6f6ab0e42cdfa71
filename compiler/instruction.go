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

	"github.com/db47h/rjl/opcode"
	"github.com/db47h/rjl/wire"
	"github.com/pkg/errors"
)

// Instruction is one compile-side instruction node. Each concrete type
// knows how to serialize itself to the opcode stream; Unit.Write drives
// this the same way a disassembler walks a flat opcode stream, except here
// the tree shape itself carries the structure instead of jump offsets.
type Instruction interface {
	Write(w io.Writer) error
}

// PushArray is an array literal: opcode.PushArray, a U32 child count, then
// each child instruction in order.
type PushArray struct {
	Elements []Instruction
}

// Write implements Instruction.
func (n *PushArray) Write(w io.Writer) error {
	return writeBlock(w, opcode.PushArray, n.Elements)
}

// PushQuote is a quote literal: opcode.PushQuote, a U32 child count, then
// each child instruction in order.
type PushQuote struct {
	Children []Instruction
}

// Write implements Instruction.
func (n *PushQuote) Write(w io.Writer) error {
	return writeBlock(w, opcode.PushQuote, n.Children)
}

func writeBlock(w io.Writer, op opcode.Code, children []Instruction) error {
	if _, err := w.Write([]byte{byte(op)}); err != nil {
		return errors.Wrapf(err, "compiler: write %s", op)
	}
	if err := wire.WriteU32(w, uint32(len(children))); err != nil {
		return errors.Wrapf(err, "compiler: write %s count", op)
	}
	for i, c := range children {
		if err := c.Write(w); err != nil {
			return errors.Wrapf(err, "compiler: write %s child %d", op, i)
		}
	}
	return nil
}

// PushString is an inlined string literal: opcode.PushString followed by
// the length-prefixed UTF-8 bytes.
type PushString struct {
	Value string
}

// Write implements Instruction.
func (n *PushString) Write(w io.Writer) error {
	if _, err := w.Write([]byte{byte(opcode.PushString)}); err != nil {
		return errors.Wrap(err, "compiler: write push_string")
	}
	return errors.Wrap(wire.WriteString(w, n.Value), "compiler: write push_string")
}

// PushStringConst is an interned string literal: opcode.PushStringConst
// followed by a U32 pool index.
type PushStringConst struct {
	Index uint32
}

// Write implements Instruction.
func (n *PushStringConst) Write(w io.Writer) error {
	if _, err := w.Write([]byte{byte(opcode.PushStringConst)}); err != nil {
		return errors.Wrap(err, "compiler: write push_string_const")
	}
	return errors.Wrap(wire.WriteU32(w, n.Index), "compiler: write push_string_const")
}

// PushSymbol is a symbol whose identifier is inlined; the position's file
// name is always pool-interned regardless of identifier length.
type PushSymbol struct {
	ID        string
	FileIndex uint32
	Line      uint16
	Column    uint16
}

// Write implements Instruction.
func (n *PushSymbol) Write(w io.Writer) error {
	if _, err := w.Write([]byte{byte(opcode.PushSymbol)}); err != nil {
		return errors.Wrap(err, "compiler: write push_symbol")
	}
	if err := wire.WriteString(w, n.ID); err != nil {
		return errors.Wrap(err, "compiler: write push_symbol id")
	}
	return writeSymbolPosition(w, n.FileIndex, n.Line, n.Column)
}

// PushSymbolConst is a symbol whose identifier is pool-interned.
type PushSymbolConst struct {
	IDIndex   uint32
	FileIndex uint32
	Line      uint16
	Column    uint16
}

// Write implements Instruction.
func (n *PushSymbolConst) Write(w io.Writer) error {
	if _, err := w.Write([]byte{byte(opcode.PushSymbolConst)}); err != nil {
		return errors.Wrap(err, "compiler: write push_symbol_const")
	}
	if err := wire.WriteU32(w, n.IDIndex); err != nil {
		return errors.Wrap(err, "compiler: write push_symbol_const id index")
	}
	return writeSymbolPosition(w, n.FileIndex, n.Line, n.Column)
}

func writeSymbolPosition(w io.Writer, fileIndex uint32, line, column uint16) error {
	if err := wire.WriteU32(w, fileIndex); err != nil {
		return errors.Wrap(err, "compiler: write symbol position file index")
	}
	if err := wire.WriteU16(w, line); err != nil {
		return errors.Wrap(err, "compiler: write symbol position line")
	}
	return errors.Wrap(wire.WriteU16(w, column), "compiler: write symbol position column")
}

// ObjectEntry is one key/value pair of a PushObject. Key is always a
// *PushString or *PushStringConst, per the object-key grammar.
type ObjectEntry struct {
	Key   Instruction
	Value Instruction
}

// PushObject is an object literal: opcode.PushObject, a U32 entry count,
// then each (key, value) pair in order.
type PushObject struct {
	Entries []ObjectEntry
}

// Write implements Instruction.
func (n *PushObject) Write(w io.Writer) error {
	if _, err := w.Write([]byte{byte(opcode.PushObject)}); err != nil {
		return errors.Wrap(err, "compiler: write push_object")
	}
	if err := wire.WriteU32(w, uint32(len(n.Entries))); err != nil {
		return errors.Wrap(err, "compiler: write push_object count")
	}
	for i, e := range n.Entries {
		if err := e.Key.Write(w); err != nil {
			return errors.Wrapf(err, "compiler: write push_object entry %d key", i)
		}
		if err := e.Value.Write(w); err != nil {
			return errors.Wrapf(err, "compiler: write push_object entry %d value", i)
		}
	}
	return nil
}

// DeclareWord binds a symbol to a quote: opcode.DeclareWord, the symbol
// instruction, then the quote instruction.
type DeclareWord struct {
	Symbol Instruction // *PushSymbol or *PushSymbolConst
	Quote  *PushQuote
}

// Write implements Instruction.
func (n *DeclareWord) Write(w io.Writer) error {
	if _, err := w.Write([]byte{byte(opcode.DeclareWord)}); err != nil {
		return errors.Wrap(err, "compiler: write declare_word")
	}
	if err := n.Symbol.Write(w); err != nil {
		return errors.Wrap(err, "compiler: write declare_word symbol")
	}
	return errors.Wrap(n.Quote.Write(w), "compiler: write declare_word quote")
}
