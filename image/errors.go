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

package image

import (
	"io"

	"github.com/pkg/errors"
)

// Decode errors. Callers can match these with
// errors.Is, since every decode error returned by this package wraps one of
// them via errors.Wrap (I/O failures other than running out of bytes, such
// as a file that cannot be opened, wrap the underlying error instead) (which github.com/pkg/errors makes transparent to
// errors.Is/As through its Cause/Unwrap chain).
var (
	ErrBadMagic             = errors.New("image: bad magic number")
	ErrIncompatibleVersion  = errors.New("image: incompatible version")
	ErrTruncated            = errors.New("image: truncated")
	ErrBadPoolRef           = errors.New("image: string pool reference out of range")
	ErrBadOpcode            = errors.New("image: unknown opcode")
	ErrBadObjectKey         = errors.New("image: object key must be a string instruction")
	ErrMalformedDeclaration = errors.New("image: malformed word declaration")
)

// wrapRead turns a low-level read error into ErrTruncated when it looks
// like the source simply ran out of bytes, and otherwise passes the
// original error through wrapped with ctx. wire.Read* already wraps
// io.EOF/io.ErrUnexpectedEOF from io.ReadFull, so unwrapping once via
// errors.Cause recovers the underlying stdlib sentinel.
func wrapRead(err error, ctx string) error {
	if err == nil {
		return nil
	}
	cause := errors.Cause(err)
	if cause == io.EOF || cause == io.ErrUnexpectedEOF {
		return errors.Wrap(ErrTruncated, ctx)
	}
	return errors.Wrap(err, ctx)
}
