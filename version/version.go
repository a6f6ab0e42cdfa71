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

// Package version holds the bytecode image format version this build of
// rjl writes and the compatibility rule it enforces when reading. The
// header stores the three version bytes in the order patch, minor, major,
// and only the major byte is checked for compatibility.
package version

// Patch, Minor and Major are the version this build writes into new images.
const (
	Patch byte = 0
	Minor byte = 1
	Major byte = 0
)

// Magic is the three-byte image header that identifies an rjl bytecode
// image. It is normative and must match bit-for-bit between compiler and
// runtime.
var Magic = [3]byte{'R', 'j', 'L'}
