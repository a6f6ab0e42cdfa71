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

// Package disasm renders a decoded module's value graph as deterministic
// S-expression text. It uses a small errWriter wrapper that tracks the
// first write error so the walk itself doesn't need error returns on
// every recursive call.
package disasm

import (
	"fmt"
	"io"
	"strconv"

	"github.com/db47h/rjl/image"
	"github.com/db47h/rjl/value"
)

type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) Write(p []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err = w.w.Write(p)
	if err != nil {
		w.err = err
	}
	return n, err
}

func (w *errWriter) str(s string) {
	io.WriteString(w, s)
}

// Module prints a single decoded module's top-level values to w, one
// top-level form per line.
func Module(w io.Writer, m *image.Module) error {
	ew := &errWriter{w: w}
	for _, v := range m.Values {
		printValue(ew, v)
		ew.str("\n")
	}
	return ew.err
}

// All prints every module in modules to w, each preceded by a header line
// naming it. This is the format used by the "-dump" switch on cmd/rjl.
func All(w io.Writer, modules []*image.Module) error {
	ew := &errWriter{w: w}
	for i, m := range modules {
		fmt.Fprintf(ew, "; module %d %q\n", i, m.Name)
		for _, v := range m.Values {
			printValue(ew, v)
			ew.str("\n")
		}
		if ew.err != nil {
			return ew.err
		}
	}
	return ew.err
}

func printValue(w *errWriter, v value.Value) {
	switch t := v.(type) {
	case *value.Array:
		w.str("(array")
		for _, e := range t.Elements {
			w.str(" ")
			printValue(w, e)
		}
		w.str(")")
	case *value.Quote:
		w.str("(quote")
		for _, c := range t.Children {
			w.str(" ")
			printValue(w, c)
		}
		w.str(")")
	case *value.Object:
		w.str("(object")
		for _, p := range t.Properties {
			w.str(" (")
			w.str(strconv.Quote(p.Key))
			w.str(" ")
			printValue(w, p.Value)
			w.str(")")
		}
		w.str(")")
	case *value.String:
		w.str(strconv.Quote(t.Value))
	case *value.Symbol:
		w.str(t.ID)
	case *value.WordDeclaration:
		w.str("(word ")
		w.str(t.Symbol.ID)
		w.str(" ")
		printValue(w, t.Quote)
		w.str(")")
	default:
		w.str("<unknown>")
	}
}
