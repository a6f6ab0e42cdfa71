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
	"github.com/pkg/errors"

	"github.com/db47h/rjl/value"
)

// ErrImportCycle is the error wrapped into the message of the
// "import_cycle" ExecError that Import sets on the caller's context when an
// import re-enters a module whose materialization is already in flight on
// the call stack. This guard is a
// deliberate addition over the reference behavior, which caches only on
// success and would otherwise re-execute the cycling module's top level.
var ErrImportCycle = errors.New("rt: import cycle")

// inProgress is the cache sentinel installed for a module between the
// start and end of its materialization.
type inProgress struct{}

// ModuleManager materializes registered source modules into dictionary
// objects on demand, memoizing the result.
type ModuleManager struct {
	registry    *Registry
	interpreter Interpreter
	cache       map[string]interface{}
}

// NewModuleManager returns a manager that resolves unmaterialized imports
// against registry and executes them with interp.
func NewModuleManager(registry *Registry, interp Interpreter) *ModuleManager {
	return &ModuleManager{
		registry:    registry,
		interpreter: interp,
		cache:       make(map[string]interface{}),
	}
}

// Import resolves path for callerCtx:
//
//  1. A cached object is returned as-is.
//  2. An in-progress import is a cycle: ErrImportCycle is set on
//     callerCtx and nil is returned.
//  3. Otherwise, if path is registered, a fresh context executes the
//     module's top level; on success its dictionary is snapshotted into an
//     object and cached; on failure the fresh context's error is copied
//     onto callerCtx and nothing is cached.
//  4. An unregistered path returns nil with no error (a future filesystem
//     search is out of scope here).
func (m *ModuleManager) Import(callerCtx Context, path string) *value.Object {
	if cached, ok := m.cache[path]; ok {
		if _, busy := cached.(inProgress); busy {
			callerCtx.SetErr(&ExecError{
				Code:    "import_cycle",
				Message: errors.Wrapf(ErrImportCycle, "import %q", path).Error(),
			})
			return nil
		}
		return cached.(*value.Object)
	}

	values, ok := m.registry.Lookup(path)
	if !ok {
		return nil
	}

	m.cache[path] = inProgress{}

	fresh := m.interpreter.NewContext()
	fresh.SetFilename(path)
	for _, v := range values {
		if err := m.interpreter.Execute(fresh, v); err != nil {
			delete(m.cache, path)
			m.copyError(callerCtx, fresh, err, path)
			return nil
		}
		if fresh.Err() != nil {
			delete(m.cache, path)
			m.copyError(callerCtx, fresh, nil, path)
			return nil
		}
	}

	obj := snapshot(fresh.Dictionary())
	m.cache[path] = obj
	return obj
}

func (m *ModuleManager) copyError(callerCtx, fresh Context, err error, path string) {
	if fresh.Err() != nil {
		callerCtx.SetErr(fresh.Err())
		return
	}
	callerCtx.SetErr(&ExecError{
		Code:    "import_failed",
		Message: errors.Wrapf(err, "import %q", path).Error(),
	})
}

func snapshot(d Dictionary) *value.Object {
	entries := d.Entries()
	props := make([]value.Property, 0, len(entries))
	for _, e := range entries {
		props = append(props, value.Property{Key: e.ID, Value: e.Quote})
	}
	return &value.Object{Properties: props}
}
