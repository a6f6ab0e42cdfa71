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

//go:build !windows

package main

import (
	"os"
	"os/exec"
	"syscall"

	"github.com/pkg/errors"
)

// detach re-execs the current process in a new session and exits the
// parent immediately, the POSIX-only half of the -f switch.
// Plain fork(2) without exec is unsafe once the Go runtime has started
// extra OS threads, so this follows the fork+exec idiom instead.
func detach() error {
	exe, err := os.Executable()
	if err != nil {
		return errors.Wrap(err, "rjl: -f: resolve executable")
	}
	args := make([]string, 0, len(os.Args))
	for _, a := range os.Args[1:] {
		if a != "-f" {
			args = append(args, a)
		}
	}
	cmd := exec.Command(exe, args...)
	cmd.Stdin = nil
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return errors.Wrap(err, "rjl: -f: detach")
	}
	os.Exit(0)
	return nil
}
