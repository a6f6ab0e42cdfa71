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

package strpool

import (
	"bytes"
	"testing"
)

func TestPool_AddIdempotent(t *testing.T) {
	p := New()
	a := p.Add("hello")
	b := p.Add("world")
	c := p.Add("hello")
	if a != c {
		t.Errorf("Add(\"hello\") twice returned %d then %d, want same index", a, c)
	}
	if a == b {
		t.Errorf("distinct strings got the same index %d", a)
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}
}

func TestPool_At(t *testing.T) {
	p := New()
	idx := p.Add("x")
	s, ok := p.At(idx)
	if !ok || s != "x" {
		t.Errorf("At(%d) = %q, %v, want %q, true", idx, s, ok, "x")
	}
	if _, ok := p.At(100); ok {
		t.Error("At(100) past the end of the pool should fail")
	}
}

func TestPool_SerializeDeserialize(t *testing.T) {
	p := New()
	p.Add("one")
	p.Add("two")
	p.Add("three")

	var buf bytes.Buffer
	if err := p.Serialize(&buf); err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	p2, err := Deserialize(&buf)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if p2.Len() != p.Len() {
		t.Fatalf("Len() = %d, want %d", p2.Len(), p.Len())
	}
	for i := uint32(0); i < uint32(p.Len()); i++ {
		want, _ := p.At(i)
		got, ok := p2.At(i)
		if !ok || got != want {
			t.Errorf("At(%d) = %q, %v, want %q, true", i, got, ok, want)
		}
	}
}

func TestPool_ZeroValue(t *testing.T) {
	var p Pool
	idx := p.Add("a")
	if idx != 0 {
		t.Errorf("first Add on zero-value Pool got index %d, want 0", idx)
	}
}
