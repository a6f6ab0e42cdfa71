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

// Package strpool implements the compilation unit's / image's string pool:
// an interning map from string to a dense, stable, append-only uint32 index.
package strpool

import (
	"io"

	"github.com/db47h/rjl/wire"
	"github.com/pkg/errors"
)

// Pool is an insertion-ordered set of interned strings. The zero value is
// an empty, ready to use pool.
type Pool struct {
	index map[string]uint32
	list  []string
}

// New returns an empty Pool.
func New() *Pool {
	return &Pool{index: make(map[string]uint32)}
}

// Add interns str, returning its index. Calling Add with the same string
// more than once always returns the same index; the pool is append-only,
// so indices are never reused or reassigned.
func (p *Pool) Add(str string) uint32 {
	if p.index == nil {
		p.index = make(map[string]uint32)
	}
	if idx, ok := p.index[str]; ok {
		return idx
	}
	idx := uint32(len(p.list))
	p.list = append(p.list, str)
	p.index[str] = idx
	return idx
}

// Len returns the number of interned strings.
func (p *Pool) Len() int {
	return len(p.list)
}

// At returns the string stored at idx. ok is false if idx is out of range.
func (p *Pool) At(idx uint32) (s string, ok bool) {
	if idx >= uint32(len(p.list)) {
		return "", false
	}
	return p.list[idx], true
}

// Serialize writes the pool to w: a U32 count followed by each string in
// insertion order, via wire.WriteString.
func (p *Pool) Serialize(w io.Writer) error {
	if err := wire.WriteU32(w, uint32(len(p.list))); err != nil {
		return errors.Wrap(err, "strpool: write count")
	}
	for idx, s := range p.list {
		if err := wire.WriteString(w, s); err != nil {
			return errors.Wrapf(err, "strpool: write entry %d", idx)
		}
	}
	return nil
}

// Deserialize reads a pool previously written by Serialize: a U32 count N
// followed by N strings, binding the i-th string read to index i.
func Deserialize(r io.Reader) (*Pool, error) {
	n, err := wire.ReadU32(r)
	if err != nil {
		return nil, errors.Wrap(err, "strpool: read count")
	}
	p := &Pool{
		index: make(map[string]uint32, n),
		list:  make([]string, 0, n),
	}
	for i := uint32(0); i < n; i++ {
		s, err := wire.ReadString(r)
		if err != nil {
			return nil, errors.Wrapf(err, "strpool: read entry %d", i)
		}
		p.index[s] = uint32(len(p.list))
		p.list = append(p.list, s)
	}
	return p, nil
}
