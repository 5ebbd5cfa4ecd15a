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

package vm

import "github.com/pkg/errors"

// Instr is a primitive instruction with its argument, if any.
type Instr struct {
	Op  Opcode
	Arg Cell
}

func (in Instr) String() string {
	if in.Op.HasArg() {
		return in.Op.String() + " " + itoa(in.Arg)
	}
	return in.Op.String()
}

// TransferKind is the kind of control transfer ending a procedure.
type TransferKind uint8

// Control transfer kinds.
const (
	Halt TransferKind = iota
	Jump
	Branch
)

// Transfer ends a procedure. Targets are indices in Program.Procs. Jump uses
// Target[0]. Branch pops a flag off the control stack and continues with
// Target[0] if it is not zero, Target[1] otherwise.
type Transfer struct {
	Kind   TransferKind
	Target [2]int
}

// Proc is a straight-line procedure.
type Proc struct {
	Name string
	Code []Instr
	Next Transfer
}

// Const is a named constant. Str instructions push its data, first cell
// first.
type Const struct {
	Name string
	Data []Cell
}

// Program is a set of procedures and constants. Execution starts with
// Procs[Entry].
type Program struct {
	Procs  []Proc
	Consts []Const
	Entry  int
}

// Proc returns the index of the procedure with the given name.
func (p *Program) Proc(name string) (int, bool) {
	for i := range p.Procs {
		if p.Procs[i].Name == name {
			return i, true
		}
	}
	return -1, false
}

// Const returns the index of the constant with the given name.
func (p *Program) Const(name string) (int, bool) {
	for i := range p.Consts {
		if p.Consts[i].Name == name {
			return i, true
		}
	}
	return -1, false
}

// Validate checks that all transfer targets and constant references are in
// range.
func (p *Program) Validate() error {
	n := len(p.Procs)
	if p.Entry < 0 || p.Entry >= n {
		return errors.Errorf("entry procedure %d out of range", p.Entry)
	}
	for _, pr := range p.Procs {
		var targets []int
		switch pr.Next.Kind {
		case Jump:
			targets = pr.Next.Target[:1]
		case Branch:
			targets = pr.Next.Target[:]
		}
		for _, t := range targets {
			if t < 0 || t >= n {
				return errors.Errorf("%s: transfer target %d out of range", pr.Name, t)
			}
		}
		for _, in := range pr.Code {
			if in.Op >= opCount {
				return errors.Errorf("%s: invalid opcode %d", pr.Name, in.Op)
			}
			if in.Op == OpStr && (in.Arg < 0 || int(in.Arg) >= len(p.Consts)) {
				return errors.Errorf("%s: constant %d out of range", pr.Name, in.Arg)
			}
		}
	}
	return nil
}
