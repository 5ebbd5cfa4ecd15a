// This file is part of befreak - https://github.com/db47h/befreak
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

package asm

import (
	"io"
	"strconv"
	"strings"
	"text/scanner"
	"unicode/utf8"

	"github.com/db47h/befreak/internal/bfi"
	"github.com/db47h/befreak/vm"
	"github.com/pkg/errors"
)

// maximum number of errors reported by Assemble
const maxErrors = 10

// Error is an assembly error at a given position.
type Error struct {
	Pos scanner.Position
	Msg string
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return e.Pos.String() + ": " + e.Msg
	}
	return e.Msg
}

// ErrAsm is the error type returned by Assemble. It lists up to 10 errors.
type ErrAsm []Error

func (e ErrAsm) Error() string {
	var sb strings.Builder
	for i := range e {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(e[i].Error())
	}
	return sb.String()
}

// Assemble parses a program read from the supplied io.Reader.
//
// Then name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value.
func Assemble(name string, r io.Reader) (*vm.Program, error) {
	p := newParser()
	if err := p.parse(name, r); err != nil {
		return nil, err
	}
	return p.prog, nil
}

func quote(c vm.Const) (string, error) {
	rs := make([]rune, len(c.Data))
	for i, v := range c.Data {
		r := rune(v)
		if !utf8.ValidRune(r) {
			return "", errors.Errorf("constant %s: cell %d is not a valid character: %d", c.Name, i, v)
		}
		rs[i] = r
	}
	return strconv.Quote(string(rs)), nil
}

// Disassemble writes the listing of the procedure at index proc in p to the
// given io.Writer.
func Disassemble(w io.Writer, p *vm.Program, proc int) error {
	ew, _ := w.(*bfi.ErrWriter)
	if ew == nil {
		ew = bfi.NewErrWriter(w)
	}
	if proc < 0 || proc >= len(p.Procs) {
		return errors.Errorf("procedure %d out of range", proc)
	}
	pr := &p.Procs[proc]
	io.WriteString(ew, ":"+pr.Name+"\n")
	for _, in := range pr.Code {
		io.WriteString(ew, "\t"+in.Op.String())
		switch in.Op {
		case vm.OpStr:
			if in.Arg < 0 || int(in.Arg) >= len(p.Consts) {
				return errors.Errorf("%s: constant %d out of range", pr.Name, in.Arg)
			}
			io.WriteString(ew, " "+p.Consts[in.Arg].Name)
		case vm.OpNum, vm.OpCpush:
			io.WriteString(ew, " "+strconv.Itoa(int(in.Arg)))
		}
		io.WriteString(ew, "\n")
	}
	target := func(t int) string {
		if t < 0 || t >= len(p.Procs) {
			return "???"
		}
		return p.Procs[t].Name
	}
	switch pr.Next.Kind {
	case vm.Halt:
		io.WriteString(ew, "\thalt\n")
	case vm.Jump:
		io.WriteString(ew, "\tjump "+target(pr.Next.Target[0])+"\n")
	case vm.Branch:
		io.WriteString(ew, "\tbranch "+target(pr.Next.Target[0])+" "+target(pr.Next.Target[1])+"\n")
	}
	return ew.Err
}

// Format writes the whole program p to w in a form suitable for Assemble.
func Format(w io.Writer, p *vm.Program) error {
	if err := p.Validate(); err != nil {
		return err
	}
	ew := bfi.NewErrWriter(w)
	io.WriteString(ew, ".entry "+p.Procs[p.Entry].Name+"\n")
	for _, c := range p.Consts {
		q, err := quote(c)
		if err != nil {
			return err
		}
		io.WriteString(ew, ".const "+c.Name+" "+q+"\n")
	}
	for i := range p.Procs {
		io.WriteString(ew, "\n")
		if err := Disassemble(ew, p, i); err != nil {
			return err
		}
	}
	return ew.Err
}
