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

import "github.com/db47h/rjl/value"

// Registry holds the decoded top-level value lists produced by the image
// loader, keyed by module name. Names are taken verbatim from
// the image; the registry performs no normalization.
type Registry struct {
	modules map[string][]value.Value
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string][]value.Value)}
}

// Register associates name with values, overwriting any previous
// registration under the same name.
func (r *Registry) Register(name string, values []value.Value) {
	r.modules[name] = values
}

// Lookup returns the value list registered under name, and whether it was
// found.
func (r *Registry) Lookup(name string) ([]value.Value, bool) {
	v, ok := r.modules[name]
	return v, ok
}
