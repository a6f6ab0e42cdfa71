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

// Package value defines the runtime-side value graph produced by the image
// decoder and consumed by the external L interpreter. The
// interpreter itself, and the memory management of these values once
// handed off to it, are out of this module's scope — rjl only builds the
// graph and hands it over.
package value

// Value is one decoded runtime value. Kinds: Array, Quote, Object, String,
// Symbol, WordDeclaration.
type Value interface {
	value()
}

// Position is a decoded source position: a file name plus line and column.
type Position struct {
	File   string
	Line   uint16
	Column uint16
}

// Array is a decoded array literal.
type Array struct {
	Elements []Value
}

func (*Array) value() {}

// Quote is a decoded, compiled quote: an ordered sequence of values the
// interpreter executes in turn when the quote is applied.
type Quote struct {
	Children []Value
}

func (*Quote) value() {}

// Property is one key/value pair of a decoded Object, in source order.
type Property struct {
	Key   string
	Value Value
}

// Object is a decoded, insertion-ordered key/value map.
type Object struct {
	Properties []Property
}

func (*Object) value() {}

// Get returns the value bound to key and whether it was found. Objects are
// small and insertion-ordered rather than hashed, matching the wire format.
func (o *Object) Get(key string) (Value, bool) {
	for _, p := range o.Properties {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// String is a decoded string value.
type String struct {
	Value string
}

func (*String) value() {}

// Symbol is a decoded identifier plus the source position it was compiled
// from.
type Symbol struct {
	ID       string
	Position Position
}

func (*Symbol) value() {}

// WordDeclaration binds a symbol to a quote, installing it into the
// interpreter's dictionary when executed.
type WordDeclaration struct {
	Symbol *Symbol
	Quote  *Quote
}

func (*WordDeclaration) value() {}
