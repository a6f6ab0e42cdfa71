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

import (
	"bytes"
	"testing"

	"github.com/db47h/rjl/value"
)

// fakeInterp executes value.Symbol{ID: "fail"} as an error, records word
// declarations in the context's dictionary, and treats everything else as
// a no-op, just enough to drive Routine/Scheduler/ModuleManager tests
// without a real language.
type fakeInterp struct {
	steps *int
}

func (f *fakeInterp) NewContext() Context {
	return &fakeContext{}
}

func (f *fakeInterp) Execute(ctx Context, v value.Value) error {
	if f.steps != nil {
		*f.steps++
	}
	c := ctx.(*fakeContext)
	if sym, ok := v.(*value.Symbol); ok && sym.ID == "fail" {
		c.err = &ExecError{Code: "boom", Message: "boom"}
	}
	if decl, ok := v.(*value.WordDeclaration); ok {
		c.entries = append(c.entries, DictEntry{ID: decl.Symbol.ID, Quote: decl.Quote})
	}
	return nil
}

type fakeContext struct {
	filename string
	err      *ExecError
	entries  []DictEntry
}

func (c *fakeContext) Err() *ExecError         { return c.err }
func (c *fakeContext) SetErr(err *ExecError)   { c.err = err }
func (c *fakeContext) ClearError()             { c.err = nil }
func (c *fakeContext) SetFilename(name string) { c.filename = name }
func (c *fakeContext) Dictionary() Dictionary  { return c }
func (c *fakeContext) Entries() []DictEntry    { return c.entries }

func sym(id string) *value.Symbol { return &value.Symbol{ID: id} }

func TestRoutine_StepAdvancesOffset(t *testing.T) {
	interp := &fakeInterp{}
	ctx := interp.NewContext()
	r := NewRoutine(interp, ctx, []value.Value{sym("a"), sym("b")})
	if r.IsFinished() {
		t.Fatal("fresh routine reports finished")
	}
	if !r.Step() {
		t.Fatal("Step() = false on a value that doesn't fail")
	}
	if r.Offset != 1 {
		t.Errorf("Offset = %d, want 1", r.Offset)
	}
	if r.IsFinished() {
		t.Fatal("routine with one instruction left reports finished")
	}
	r.Step()
	if !r.IsFinished() {
		t.Fatal("routine with no instructions left should be finished")
	}
}

func TestRoutine_StepOnError(t *testing.T) {
	interp := &fakeInterp{}
	ctx := interp.NewContext()
	r := NewRoutine(interp, ctx, []value.Value{sym("fail")})
	if r.Step() {
		t.Fatal("Step() = true, want false on a failing instruction")
	}
	if r.Offset != len(r.Values)+1 {
		t.Errorf("Offset = %d, want %d (terminated by error)", r.Offset, len(r.Values)+1)
	}
	if !r.IsFinished() {
		t.Fatal("terminated-by-error routine should report finished")
	}
}

func TestScheduler_Fairness(t *testing.T) {
	interp := &fakeInterp{}
	sched := NewScheduler(&bytes.Buffer{})
	a := sched.Spawn(interp, []value.Value{sym("1"), sym("2"), sym("3")})
	b := sched.Spawn(interp, []value.Value{sym("1"), sym("2"), sym("3")})

	for i := 0; i < 6; i++ {
		sched.Step()
	}
	if !sched.Finished() {
		t.Fatal("expected both routines finished after 2k steps")
	}
	if a.Offset != 3 || b.Offset != 3 {
		t.Errorf("a.Offset=%d b.Offset=%d, want 3, 3", a.Offset, b.Offset)
	}
}

func TestScheduler_ErrorIsolation(t *testing.T) {
	interp := &fakeInterp{}
	var stderr bytes.Buffer
	sched := NewScheduler(&stderr)
	sched.Spawn(interp, []value.Value{sym("fail")})
	good := sched.Spawn(interp, []value.Value{sym("ok")})

	errored := false
	for !sched.Finished() {
		if sched.Step() {
			errored = true
		}
	}
	if !errored {
		t.Error("expected at least one tick to report an error")
	}
	if !good.IsFinished() {
		t.Error("the non-failing routine should still have run to completion")
	}
	if stderr.Len() == 0 {
		t.Error("expected an error report written to stderr")
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Lookup("missing"); ok {
		t.Fatal("Lookup on empty registry should fail")
	}
	values := []value.Value{sym("x")}
	r.Register("m", values)
	got, ok := r.Lookup("m")
	if !ok || len(got) != 1 {
		t.Fatalf("Lookup(\"m\") = %v, %v", got, ok)
	}
}

func TestModuleManager_MemoizesImport(t *testing.T) {
	registry := NewRegistry()
	interp := &fakeInterp{}
	word := &value.WordDeclaration{
		Symbol: &value.Symbol{ID: "w"},
		Quote:  &value.Quote{},
	}
	registry.Register("lib", []value.Value{word})
	mgr := NewModuleManager(registry, interp)

	caller := interp.NewContext()
	obj1 := mgr.Import(caller, "lib")
	if obj1 == nil {
		t.Fatal("Import(\"lib\") returned nil")
	}
	obj2 := mgr.Import(caller, "lib")
	if obj1 != obj2 {
		t.Error("second Import of the same module returned a different object")
	}
	if _, ok := obj1.Get("w"); !ok {
		t.Error("imported object missing its declared word")
	}
}

func TestModuleManager_UnregisteredReturnsNil(t *testing.T) {
	registry := NewRegistry()
	interp := &fakeInterp{}
	mgr := NewModuleManager(registry, interp)
	caller := interp.NewContext()
	if obj := mgr.Import(caller, "nope"); obj != nil {
		t.Errorf("Import of an unregistered path returned %v, want nil", obj)
	}
	if caller.Err() != nil {
		t.Error("an unregistered import should not set an error")
	}
}

func TestModuleManager_ImportCycle(t *testing.T) {
	registry := NewRegistry()
	var mgr *ModuleManager
	interp := &cyclicInterp{}
	registry.Register("a", []value.Value{sym("trigger")})
	mgr = NewModuleManager(registry, interp)
	interp.mgr = mgr

	caller := interp.NewContext()
	obj := mgr.Import(caller, "a")
	if obj != nil {
		t.Error("a cycling import should not produce an object")
	}
}

// cyclicInterp re-enters Import("a") from within executing "a" itself,
// simulating a module that imports itself before finishing materialization.
type cyclicInterp struct {
	mgr *ModuleManager
}

func (c *cyclicInterp) NewContext() Context { return &fakeContext{} }

func (c *cyclicInterp) Execute(ctx Context, v value.Value) error {
	fc := ctx.(*fakeContext)
	if sym, ok := v.(*value.Symbol); ok && sym.ID == "trigger" {
		c.mgr.Import(fc, "a")
	}
	return nil
}
