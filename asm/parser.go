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
	"text/scanner"
	"unicode"

	"github.com/db47h/befreak/vm"
)

func isIdentRune(ch rune, i int) bool {
	return ch != '"' && (unicode.IsLetter(ch) || unicode.IsSymbol(ch) || unicode.IsPunct(ch) || unicode.IsDigit(ch))
}

type ref struct {
	name string
	pos  scanner.Position
}

// unresolved procedure reference in a transfer
type procRef struct {
	ref
	proc, slot int
}

// unresolved constant reference in a str instruction
type constRef struct {
	ref
	proc, instr int
}

type parser struct {
	s        scanner.Scanner
	prog     *vm.Program
	procs    map[string]int
	procPos  []scanner.Position
	consts   map[string]int
	procRefs []procRef
	strRefs  []constRef
	entry    *ref
	cur      int  // current procedure, -1 if none
	done     bool // current procedure has a terminator
	errs     ErrAsm
}

func newParser() *parser {
	return &parser{
		prog:   new(vm.Program),
		procs:  make(map[string]int),
		consts: make(map[string]int),
		cur:    -1,
	}
}

func (p *parser) errorAt(pos scanner.Position, msg string) {
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, Error{pos, msg})
	}
}

func (p *parser) fail(msg string) {
	pos := p.s.Position
	if !pos.IsValid() {
		pos = p.s.Pos()
	}
	p.errorAt(pos, msg)
}

// ident scans the next token and returns it if it is an identifier.
func (p *parser) ident(what string) (ref, bool) {
	tok := p.s.Scan()
	if tok != scanner.Ident || p.s.TokenText() == "(" {
		p.fail("expected " + what + ", got " + p.s.TokenText())
		return ref{}, false
	}
	return ref{p.s.TokenText(), p.s.Position}, true
}

func (p *parser) integer() (vm.Cell, bool) {
	r, ok := p.ident("integer")
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(r.name, 0, 64)
	if err != nil || n < -1<<31 || n > 1<<32-1 {
		p.fail("invalid integer " + r.name)
		return 0, false
	}
	return vm.Cell(n), true
}

func (p *parser) proc() *vm.Proc {
	return &p.prog.Procs[p.cur]
}

// open reports whether instructions can be added to the current procedure.
func (p *parser) open(s string) bool {
	switch {
	case p.cur < 0:
		p.fail("outside of a procedure: " + s)
		return false
	case p.done:
		p.fail("procedure " + p.proc().Name + " already terminated: " + s)
		return false
	}
	return true
}

func (p *parser) closeProc() {
	if p.cur >= 0 && !p.done {
		p.errorAt(p.procPos[p.cur], "procedure "+p.proc().Name+" has no terminator")
	}
}

func (p *parser) defProc(name string) {
	p.closeProc()
	if name == "" {
		p.fail("empty procedure name")
	}
	if i, ok := p.procs[name]; ok {
		p.fail("procedure redefinition: " + name + ", previous definition here: " + p.procPos[i].String())
	}
	p.procs[name] = len(p.prog.Procs)
	p.procPos = append(p.procPos, p.s.Position)
	p.prog.Procs = append(p.prog.Procs, vm.Proc{Name: name})
	p.cur = len(p.prog.Procs) - 1
	p.done = false
}

func (p *parser) defConst() {
	r, ok := p.ident("constant name")
	if !ok {
		return
	}
	if p.s.Scan() != scanner.String {
		p.fail(".const " + r.name + ": expected string, got " + p.s.TokenText())
		return
	}
	s, err := strconv.Unquote(p.s.TokenText())
	if err != nil {
		p.fail(".const " + r.name + ": " + err.Error())
		return
	}
	if _, ok := p.consts[r.name]; ok {
		p.errorAt(r.pos, "constant redefinition: "+r.name)
		return
	}
	var data []vm.Cell
	for _, c := range s {
		data = append(data, vm.Cell(c))
	}
	p.consts[r.name] = len(p.prog.Consts)
	p.prog.Consts = append(p.prog.Consts, vm.Const{Name: r.name, Data: data})
}

func (p *parser) transfer(kind vm.TransferKind, nargs int) {
	pr := p.proc()
	pr.Next.Kind = kind
	for i := 0; i < nargs; i++ {
		r, ok := p.ident("procedure name")
		if !ok {
			return
		}
		p.procRefs = append(p.procRefs, procRef{r, p.cur, i})
	}
	p.done = true
}

func (p *parser) instr(s string) {
	op, ok := vm.LookupOpcode(s)
	if !ok {
		p.fail("unknown instruction " + s)
		return
	}
	if !p.open(s) {
		return
	}
	in := vm.Instr{Op: op}
	switch op {
	case vm.OpStr:
		r, ok := p.ident("constant name")
		if !ok {
			return
		}
		p.strRefs = append(p.strRefs, constRef{r, p.cur, len(p.proc().Code)})
	case vm.OpNum, vm.OpCpush:
		if in.Arg, ok = p.integer(); !ok {
			return
		}
	}
	pr := p.proc()
	pr.Code = append(pr.Code, in)
}

func (p *parser) parse(name string, r io.Reader) error {
	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		p.fail(msg)
	}
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents | scanner.ScanStrings
	p.s.Filename = name

	for tok := p.s.Scan(); tok != scanner.EOF && len(p.errs) < maxErrors; tok = p.s.Scan() {
		if tok != scanner.Ident {
			p.fail("unexpected " + scanner.TokenString(tok))
			continue
		}
		s := p.s.TokenText()
		switch {
		case s == "(":
			// skip comments
			for ; tok != scanner.EOF && (tok != scanner.Ident || p.s.TokenText() != ")"); tok = p.s.Scan() {
			}
		case s[0] == ':':
			p.defProc(s[1:])
		case s == ".const":
			p.defConst()
		case s == ".entry":
			if r, ok := p.ident("procedure name"); ok {
				p.entry = &r
			}
		case s[0] == '.':
			p.fail("unknown directive " + s)
		case s == "halt":
			if p.open(s) {
				p.transfer(vm.Halt, 0)
			}
		case s == "jump":
			if p.open(s) {
				p.transfer(vm.Jump, 1)
			}
		case s == "branch":
			if p.open(s) {
				p.transfer(vm.Branch, 2)
			}
		default:
			p.instr(s)
		}
	}
	p.closeProc()
	p.resolve()

	if len(p.errs) > 0 {
		return p.errs
	}
	return nil
}

func (p *parser) resolve() {
	for _, r := range p.procRefs {
		i, ok := p.procs[r.name]
		if !ok {
			p.errorAt(r.pos, "undefined procedure "+r.name)
			continue
		}
		p.prog.Procs[r.proc].Next.Target[r.slot] = i
	}
	for _, r := range p.strRefs {
		i, ok := p.consts[r.name]
		if !ok {
			p.errorAt(r.pos, "undefined constant "+r.name)
			continue
		}
		p.prog.Procs[r.proc].Code[r.instr].Arg = vm.Cell(i)
	}
	entry := ref{name: "main"}
	if p.entry != nil {
		entry = *p.entry
	}
	i, ok := p.procs[entry.name]
	if !ok {
		p.errorAt(entry.pos, "undefined entry procedure "+entry.name)
		return
	}
	p.prog.Entry = i
}
