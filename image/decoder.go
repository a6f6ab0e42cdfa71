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

// Package image implements the runtime-side loader/decoder: the inverse of
// the compiler back-end. It parses an image's header, string pool, and
// per-module opcode streams, and reconstructs the L value graphs the
// interpreter will execute.
package image

import (
	"io"
	"os"

	"github.com/db47h/rjl/opcode"
	"github.com/db47h/rjl/strpool"
	"github.com/db47h/rjl/value"
	"github.com/db47h/rjl/version"
	"github.com/db47h/rjl/wire"
	"github.com/pkg/errors"
)

// LoadFile opens path and decodes it as described by Load. The file handle
// is closed on every exit path, success or failure.
func LoadFile(path string) ([]*Module, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "image: open %s", path)
	}
	defer f.Close()
	return Load(f)
}

// Load reads a complete bytecode image from r and returns the decoded
// modules in the order they were compiled. The first element, if any, is
// the main module.
func Load(r io.Reader) ([]*Module, error) {
	br := wire.NewBufferedReader(r)

	if err := checkMagic(br); err != nil {
		return nil, err
	}
	if err := checkVersion(br); err != nil {
		return nil, err
	}
	pool, err := strpool.Deserialize(br)
	if err != nil {
		return nil, wrapRead(err, "image: read string pool")
	}
	moduleCount, err := wire.ReadU32(br)
	if err != nil {
		return nil, wrapRead(err, "image: read module count")
	}
	modules := make([]*Module, 0, moduleCount)
	for i := uint32(0); i < moduleCount; i++ {
		m, err := decodeModule(br, pool)
		if err != nil {
			return nil, errors.Wrapf(err, "image: decode module %d", i)
		}
		modules = append(modules, m)
	}
	return modules, nil
}

func checkMagic(r io.Reader) error {
	var buf [3]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return wrapRead(err, "image: read magic")
	}
	if buf != version.Magic {
		return errors.Wrap(ErrBadMagic, "image: read magic")
	}
	return nil
}

func checkVersion(r io.Reader) error {
	var buf [3]byte // patch, minor, major
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return wrapRead(err, "image: read version")
	}
	if buf[2] > version.Major {
		return errors.Wrap(ErrIncompatibleVersion, "image: read version")
	}
	return nil
}

func decodeModule(r io.Reader, pool *strpool.Pool) (*Module, error) {
	nameIdx, err := wire.ReadU32(r)
	if err != nil {
		return nil, wrapRead(err, "read name index")
	}
	name, ok := pool.At(nameIdx)
	if !ok {
		return nil, errors.Wrap(ErrBadPoolRef, "resolve module name")
	}
	count, err := wire.ReadU32(r)
	if err != nil {
		return nil, wrapRead(err, "read instruction count")
	}
	values := make([]value.Value, 0, count)
	for i := uint32(0); i < count; i++ {
		v, err := decodeValue(r, pool)
		if err != nil {
			return nil, errors.Wrapf(err, "decode instruction %d", i)
		}
		values = append(values, v)
	}
	return &Module{Name: name, Values: values}, nil
}

func readOpcode(r io.Reader) (opcode.Code, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, wrapRead(err, "read opcode")
	}
	return opcode.Code(b[0]), nil
}

// decodeValue reads one leading opcode byte, then dispatches to decodeOp.
func decodeValue(r io.Reader, pool *strpool.Pool) (value.Value, error) {
	op, err := readOpcode(r)
	if err != nil {
		return nil, err
	}
	return decodeOp(r, pool, op)
}

// decodeOp decodes the payload for an already-read opcode byte. Object
// keys and declare_word's operands read their leading opcode byte
// explicitly to validate it before calling this, so the dispatch is
// factored out from the byte read.
func decodeOp(r io.Reader, pool *strpool.Pool, op opcode.Code) (value.Value, error) {
	switch op {
	case opcode.PushArray:
		elements, err := decodeChildren(r, pool)
		if err != nil {
			return nil, errors.Wrap(err, "decode push_array")
		}
		return &value.Array{Elements: elements}, nil

	case opcode.PushQuote:
		children, err := decodeChildren(r, pool)
		if err != nil {
			return nil, errors.Wrap(err, "decode push_quote")
		}
		return &value.Quote{Children: children}, nil

	case opcode.PushObject:
		return decodeObject(r, pool)

	case opcode.PushString:
		s, err := wire.ReadString(r)
		if err != nil {
			return nil, wrapRead(err, "decode push_string")
		}
		return &value.String{Value: s}, nil

	case opcode.PushStringConst:
		s, err := decodePoolString(r, pool)
		if err != nil {
			return nil, errors.Wrap(err, "decode push_string_const")
		}
		return &value.String{Value: s}, nil

	case opcode.PushSymbol:
		id, err := wire.ReadString(r)
		if err != nil {
			return nil, wrapRead(err, "decode push_symbol id")
		}
		pos, err := decodePosition(r, pool)
		if err != nil {
			return nil, errors.Wrap(err, "decode push_symbol position")
		}
		return &value.Symbol{ID: id, Position: pos}, nil

	case opcode.PushSymbolConst:
		id, err := decodePoolString(r, pool)
		if err != nil {
			return nil, errors.Wrap(err, "decode push_symbol_const id")
		}
		pos, err := decodePosition(r, pool)
		if err != nil {
			return nil, errors.Wrap(err, "decode push_symbol_const position")
		}
		return &value.Symbol{ID: id, Position: pos}, nil

	case opcode.DeclareWord:
		return decodeDeclareWord(r, pool)

	default:
		return nil, errors.Wrap(ErrBadOpcode, "decode instruction")
	}
}

func decodeChildren(r io.Reader, pool *strpool.Pool) ([]value.Value, error) {
	n, err := wire.ReadU32(r)
	if err != nil {
		return nil, wrapRead(err, "read child count")
	}
	children := make([]value.Value, 0, n)
	for i := uint32(0); i < n; i++ {
		v, err := decodeValue(r, pool)
		if err != nil {
			return nil, errors.Wrapf(err, "decode child %d", i)
		}
		children = append(children, v)
	}
	return children, nil
}

func decodeObject(r io.Reader, pool *strpool.Pool) (value.Value, error) {
	n, err := wire.ReadU32(r)
	if err != nil {
		return nil, wrapRead(err, "decode push_object count")
	}
	props := make([]value.Property, 0, n)
	for i := uint32(0); i < n; i++ {
		keyOp, err := readOpcode(r)
		if err != nil {
			return nil, errors.Wrapf(err, "decode push_object entry %d key opcode", i)
		}
		if !opcode.IsObjectKey(keyOp) {
			return nil, errors.Wrapf(ErrBadObjectKey, "decode push_object entry %d", i)
		}
		keyVal, err := decodeOp(r, pool, keyOp)
		if err != nil {
			return nil, errors.Wrapf(err, "decode push_object entry %d key", i)
		}
		val, err := decodeValue(r, pool)
		if err != nil {
			return nil, errors.Wrapf(err, "decode push_object entry %d value", i)
		}
		props = append(props, value.Property{Key: keyVal.(*value.String).Value, Value: val})
	}
	return &value.Object{Properties: props}, nil
}

func decodeDeclareWord(r io.Reader, pool *strpool.Pool) (value.Value, error) {
	symOp, err := readOpcode(r)
	if err != nil {
		return nil, errors.Wrap(err, "decode declare_word symbol opcode")
	}
	if symOp != opcode.PushSymbol && symOp != opcode.PushSymbolConst {
		return nil, errors.Wrap(ErrMalformedDeclaration, "decode declare_word symbol")
	}
	symVal, err := decodeOp(r, pool, symOp)
	if err != nil {
		return nil, errors.Wrap(err, "decode declare_word symbol")
	}

	quoteOp, err := readOpcode(r)
	if err != nil {
		return nil, errors.Wrap(err, "decode declare_word quote opcode")
	}
	if quoteOp != opcode.PushQuote {
		return nil, errors.Wrap(ErrMalformedDeclaration, "decode declare_word quote")
	}
	quoteVal, err := decodeOp(r, pool, quoteOp)
	if err != nil {
		return nil, errors.Wrap(err, "decode declare_word quote")
	}

	return &value.WordDeclaration{
		Symbol: symVal.(*value.Symbol),
		Quote:  quoteVal.(*value.Quote),
	}, nil
}

func decodePoolString(r io.Reader, pool *strpool.Pool) (string, error) {
	idx, err := wire.ReadU32(r)
	if err != nil {
		return "", wrapRead(err, "read pool index")
	}
	s, ok := pool.At(idx)
	if !ok {
		return "", errors.Wrap(ErrBadPoolRef, "resolve pool index")
	}
	return s, nil
}

func decodePosition(r io.Reader, pool *strpool.Pool) (value.Position, error) {
	fileIdx, err := wire.ReadU32(r)
	if err != nil {
		return value.Position{}, wrapRead(err, "read position file index")
	}
	file, ok := pool.At(fileIdx)
	if !ok {
		return value.Position{}, errors.Wrap(ErrBadPoolRef, "resolve position file index")
	}
	line, err := wire.ReadU16(r)
	if err != nil {
		return value.Position{}, wrapRead(err, "read position line")
	}
	column, err := wire.ReadU16(r)
	if err != nil {
		return value.Position{}, wrapRead(err, "read position column")
	}
	return value.Position{File: file, Line: line, Column: column}, nil
}
