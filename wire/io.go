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

// Package wire implements the little-endian, length-prefixed primitives
// shared by the compiler's image writer and the runtime's image decoder.
// Both sides must agree on these bit-for-bit.
package wire

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// WriteU16 writes n to w as a little-endian 16 bit unsigned integer.
func WriteU16(w io.Writer, n uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], n)
	_, err := w.Write(b[:])
	return errors.Wrap(err, "WriteU16")
}

// ReadU16 reads a little-endian 16 bit unsigned integer from r.
func ReadU16(r io.Reader) (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, errors.Wrap(err, "ReadU16")
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

// WriteU32 writes n to w as a little-endian 32 bit unsigned integer.
func WriteU32(w io.Writer, n uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], n)
	_, err := w.Write(b[:])
	return errors.Wrap(err, "WriteU32")
}

// ReadU32 reads a little-endian 32 bit unsigned integer from r.
func ReadU32(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, errors.Wrap(err, "ReadU32")
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// WriteString UTF-8-encodes str, writes its byte length as a U32, then the
// bytes themselves.
func WriteString(w io.Writer, str string) error {
	if err := WriteU32(w, uint32(len(str))); err != nil {
		return errors.Wrap(err, "WriteString")
	}
	_, err := io.WriteString(w, str)
	return errors.Wrap(err, "WriteString")
}

// ReadString reads a U32 byte length followed by that many bytes, and
// returns them decoded as UTF-8.
func ReadString(r io.Reader) (string, error) {
	n, err := ReadU32(r)
	if err != nil {
		return "", errors.Wrap(err, "ReadString")
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", errors.Wrap(err, "ReadString")
	}
	return string(b), nil
}

// NewBufferedReader wraps r in a *bufio.Reader, unless it already is one.
// Images are read one primitive at a time, so buffering the underlying
// io.Reader once at the top avoids a syscall per integer.
func NewBufferedReader(r io.Reader) *bufio.Reader {
	if br, ok := r.(*bufio.Reader); ok {
		return br
	}
	return bufio.NewReader(r)
}
