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

package image

import (
	"bytes"
	"testing"

	"github.com/db47h/rjl/ast"
	"github.com/db47h/rjl/compiler"
	"github.com/db47h/rjl/value"
)

func mustLoad(t *testing.T, tree []ast.Node) []*Module {
	t.Helper()
	unit := compiler.NewUnit()
	unit.Compile("main.l", tree)
	var buf bytes.Buffer
	if err := unit.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	modules, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return modules
}

func TestRoundTrip_Basic(t *testing.T) {
	tree := []ast.Node{
		ast.String{Value: "hi"},
		ast.Array{Elements: []ast.Node{ast.String{Value: "a"}, ast.String{Value: "b"}}},
		ast.Word{
			Symbol: ast.Symbol{ID: "sq", Position: ast.Position{File: "main.l", Line: 3, Column: 1}},
			Quote:  ast.Quote{Children: []ast.Node{ast.Symbol{ID: "dup", Position: ast.Position{File: "main.l", Line: 3, Column: 5}}}},
		},
	}
	modules := mustLoad(t, tree)
	if len(modules) != 1 {
		t.Fatalf("got %d modules, want 1", len(modules))
	}
	m := modules[0]
	if m.Name != "main.l" {
		t.Errorf("Name = %q, want %q", m.Name, "main.l")
	}
	if len(m.Values) != 3 {
		t.Fatalf("got %d values, want 3", len(m.Values))
	}

	s, ok := m.Values[0].(*value.String)
	if !ok || s.Value != "hi" {
		t.Errorf("Values[0] = %#v, want String{hi}", m.Values[0])
	}

	arr, ok := m.Values[1].(*value.Array)
	if !ok || len(arr.Elements) != 2 {
		t.Errorf("Values[1] = %#v, want Array of 2", m.Values[1])
	}

	decl, ok := m.Values[2].(*value.WordDeclaration)
	if !ok {
		t.Fatalf("Values[2] = %#v, want WordDeclaration", m.Values[2])
	}
	if decl.Symbol.ID != "sq" {
		t.Errorf("Symbol.ID = %q, want %q", decl.Symbol.ID, "sq")
	}
	if decl.Symbol.Position.File != "main.l" || decl.Symbol.Position.Line != 3 {
		t.Errorf("Symbol.Position = %+v, unexpected", decl.Symbol.Position)
	}
	if len(decl.Quote.Children) != 1 {
		t.Errorf("Quote has %d children, want 1", len(decl.Quote.Children))
	}
}

func TestRoundTrip_Object(t *testing.T) {
	tree := []ast.Node{
		ast.Object{Properties: []ast.Property{
			{Key: "a", Value: ast.String{Value: "1"}},
			{Key: "b", Value: ast.String{Value: "2"}},
		}},
	}
	modules := mustLoad(t, tree)
	obj, ok := modules[0].Values[0].(*value.Object)
	if !ok {
		t.Fatalf("got %T, want *value.Object", modules[0].Values[0])
	}
	v, ok := obj.Get("b")
	if !ok {
		t.Fatal("Get(\"b\") not found")
	}
	s := v.(*value.String)
	if s.Value != "2" {
		t.Errorf("b = %q, want %q", s.Value, "2")
	}
}

func TestRoundTrip_MultipleModules(t *testing.T) {
	unit := compiler.NewUnit()
	unit.Compile("main.l", []ast.Node{ast.String{Value: "main"}})
	unit.Compile("lib.l", []ast.Node{ast.String{Value: "lib"}})
	var buf bytes.Buffer
	if err := unit.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	modules, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(modules) != 2 {
		t.Fatalf("got %d modules, want 2", len(modules))
	}
	if modules[0].Name != "main.l" || modules[1].Name != "lib.l" {
		t.Errorf("module names %q, %q in wrong order", modules[0].Name, modules[1].Name)
	}
}
