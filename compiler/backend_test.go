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
	"testing"

	"github.com/db47h/rjl/ast"
	"github.com/db47h/rjl/strpool"
)

func TestCompile_StringThreshold(t *testing.T) {
	pool := strpool.New()
	tree := []ast.Node{
		ast.String{Value: "short"},
		ast.String{Value: "this identifier is most certainly over the twenty five code point threshold"},
	}
	out := Compile(tree, pool)
	if _, ok := out[0].(*PushStringConst); !ok {
		t.Errorf("short string compiled to %T, want *PushStringConst", out[0])
	}
	if _, ok := out[1].(*PushString); !ok {
		t.Errorf("long string compiled to %T, want *PushString", out[1])
	}
}

func TestCompile_SymbolAlwaysInternsFile(t *testing.T) {
	pool := strpool.New()
	tree := []ast.Node{
		ast.Symbol{ID: "x", Position: ast.Position{File: "main.l", Line: 1, Column: 1}},
	}
	out := Compile(tree, pool)
	sym, ok := out[0].(*PushSymbolConst)
	if !ok {
		t.Fatalf("got %T, want *PushSymbolConst", out[0])
	}
	file, ok := pool.At(sym.FileIndex)
	if !ok || file != "main.l" {
		t.Errorf("file index resolves to %q, %v, want %q, true", file, ok, "main.l")
	}
}

func TestCompile_LongSymbolInlined(t *testing.T) {
	pool := strpool.New()
	long := "a-symbol-identifier-well-past-the-interning-threshold"
	tree := []ast.Node{
		ast.Symbol{ID: long, Position: ast.Position{File: "f", Line: 1, Column: 1}},
	}
	out := Compile(tree, pool)
	sym, ok := out[0].(*PushSymbol)
	if !ok {
		t.Fatalf("got %T, want *PushSymbol", out[0])
	}
	if sym.ID != long {
		t.Errorf("ID = %q, want %q", sym.ID, long)
	}
}

func TestCompile_ClampsLineColumn(t *testing.T) {
	pool := strpool.New()
	tree := []ast.Node{
		ast.Symbol{ID: "x", Position: ast.Position{File: "f", Line: 1 << 20, Column: -1}},
	}
	out := Compile(tree, pool)
	sym := out[0].(*PushSymbolConst)
	if sym.Line != 0xFFFF {
		t.Errorf("Line = %d, want 0xFFFF", sym.Line)
	}
	if sym.Column != 0 {
		t.Errorf("Column = %d, want 0", sym.Column)
	}
}

func TestCompile_WordDeclaration(t *testing.T) {
	pool := strpool.New()
	tree := []ast.Node{
		ast.Word{
			Symbol: ast.Symbol{ID: "dup", Position: ast.Position{File: "f", Line: 1, Column: 1}},
			Quote:  ast.Quote{Children: []ast.Node{ast.Symbol{ID: "dup", Position: ast.Position{File: "f", Line: 1, Column: 5}}}},
		},
	}
	out := Compile(tree, pool)
	w, ok := out[0].(*DeclareWord)
	if !ok {
		t.Fatalf("got %T, want *DeclareWord", out[0])
	}
	if len(w.Quote.Children) != 1 {
		t.Errorf("quote has %d children, want 1", len(w.Quote.Children))
	}
}

func TestCompile_ObjectKeyUsesStringInstruction(t *testing.T) {
	pool := strpool.New()
	tree := []ast.Node{
		ast.Object{Properties: []ast.Property{
			{Key: "k", Value: ast.String{Value: "v"}},
		}},
	}
	out := Compile(tree, pool)
	obj := out[0].(*PushObject)
	switch obj.Entries[0].Key.(type) {
	case *PushString, *PushStringConst:
	default:
		t.Errorf("object key compiled to %T, want a string instruction", obj.Entries[0].Key)
	}
}

func TestClampU16(t *testing.T) {
	cases := []struct {
		in   int
		want uint16
	}{
		{-5, 0},
		{0, 0},
		{100, 100},
		{1 << 20, 0xFFFF},
	}
	for _, c := range cases {
		if got := clampU16(c.in); got != c.want {
			t.Errorf("clampU16(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}
