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

// Package opcode is the single source of truth for the bytecode image's
// opcode values. Both the compiler back-end and the image decoder import
// this package rather than hard-coding the numeric values.
package opcode

import "strconv"

// Code is the on-wire opcode byte.
type Code byte

// The numeric values are part of the wire format: an implementer MUST use
// these exact values, since they appear byte-for-byte in every compiled
// image.
const (
	PushArray       Code = 1
	PushQuote       Code = 2
	PushObject      Code = 3
	PushString      Code = 4
	PushStringConst Code = 5
	PushSymbol      Code = 6
	PushSymbolConst Code = 7
	DeclareWord     Code = 8
)

var names = map[Code]string{
	PushArray:       "push_array",
	PushQuote:       "push_quote",
	PushObject:      "push_object",
	PushString:      "push_string",
	PushStringConst: "push_string_const",
	PushSymbol:      "push_symbol",
	PushSymbolConst: "push_symbol_const",
	DeclareWord:     "declare_word",
}

// String returns the opcode's mnemonic, or a numeric fallback for unknown
// byte values (useful when disassembling a corrupt or forward-versioned
// image).
func (c Code) String() string {
	if n, ok := names[c]; ok {
		return n
	}
	return "opcode(" + strconv.Itoa(int(c)) + ")"
}

// Valid reports whether c is one of the eight opcodes defined above.
func (c Code) Valid() bool {
	_, ok := names[c]
	return ok
}

// IsObjectKey reports whether c is one of the two opcodes legal as the key
// half of a push_object entry (push_string or push_string_const).
func IsObjectKey(c Code) bool {
	return c == PushString || c == PushStringConst
}
