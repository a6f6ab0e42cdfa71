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
	"unicode/utf8"

	"github.com/db47h/rjl/ast"
	"github.com/db47h/rjl/strpool"
)

// internThreshold is the design constant: identifiers and
// strings of this many code points or fewer are interned in the string
// pool; longer ones are inlined verbatim. Pool entries cost one U32 per use
// plus one copy in the pool, so short, frequently reused tokens are cheaper
// interned, while long, rare ones are cheaper left inline.
const internThreshold = 25

// Compile walks tree and returns the resulting top-level instructions,
// interning strings and symbol identifiers into pool per the
// threshold rule: one case per syntax kind, emission order equal to input
// order.
func Compile(tree []ast.Node, pool *strpool.Pool) []Instruction {
	out := make([]Instruction, 0, len(tree))
	for _, n := range tree {
		out = append(out, compileNode(n, pool))
	}
	return out
}

func compileNode(n ast.Node, pool *strpool.Pool) Instruction {
	switch t := n.(type) {
	case ast.Array:
		return &PushArray{Elements: compileChildren(t.Elements, pool)}
	case ast.Quote:
		return &PushQuote{Children: compileChildren(t.Children, pool)}
	case ast.String:
		return compileString(t.Value, pool)
	case ast.Symbol:
		return compileSymbol(t, pool)
	case ast.Object:
		return compileObject(t, pool)
	case ast.Word:
		return compileWord(t, pool)
	default:
		panic("compiler: unhandled ast.Node type")
	}
}

func compileChildren(nodes []ast.Node, pool *strpool.Pool) []Instruction {
	children := make([]Instruction, 0, len(nodes))
	for _, c := range nodes {
		children = append(children, compileNode(c, pool))
	}
	return children
}

func compileString(value string, pool *strpool.Pool) Instruction {
	if utf8.RuneCountInString(value) > internThreshold {
		return &PushString{Value: value}
	}
	return &PushStringConst{Index: pool.Add(value)}
}

func compileSymbol(sym ast.Symbol, pool *strpool.Pool) Instruction {
	fileIndex := pool.Add(sym.Position.File)
	line := clampU16(sym.Position.Line)
	column := clampU16(sym.Position.Column)
	if utf8.RuneCountInString(sym.ID) > internThreshold {
		return &PushSymbol{
			ID:        sym.ID,
			FileIndex: fileIndex,
			Line:      line,
			Column:    column,
		}
	}
	return &PushSymbolConst{
		IDIndex:   pool.Add(sym.ID),
		FileIndex: fileIndex,
		Line:      line,
		Column:    column,
	}
}

func compileObjectKey(key string, pool *strpool.Pool) Instruction {
	// Object keys use the same inline-vs-interned string instruction as
	// any other string literal: no separate tag wrapper.
	return compileString(key, pool)
}

func compileObject(obj ast.Object, pool *strpool.Pool) Instruction {
	entries := make([]ObjectEntry, 0, len(obj.Properties))
	for _, p := range obj.Properties {
		entries = append(entries, ObjectEntry{
			Key:   compileObjectKey(p.Key, pool),
			Value: compileNode(p.Value, pool),
		})
	}
	return &PushObject{Entries: entries}
}

func compileWord(w ast.Word, pool *strpool.Pool) Instruction {
	symbol := compileSymbol(w.Symbol, pool)
	quote := &PushQuote{Children: compileChildren(w.Quote.Children, pool)}
	return &DeclareWord{Symbol: symbol, Quote: quote}
}

// clampU16 saturates n to the uint16 range. Source positions are metadata
// only; an overflowing line or column clamps silently rather than wrapping.
func clampU16(n int) uint16 {
	if n < 0 {
		return 0
	}
	if n > 0xFFFF {
		return 0xFFFF
	}
	return uint16(n)
}
