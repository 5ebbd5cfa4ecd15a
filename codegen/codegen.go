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

// Package codegen lowers a control flow graph to a program for the two-stack
// machine of package vm.
//
// Every block of the graph becomes a procedure named after its key. The
// instructions of a block are lowered one by one: instructions executed in
// inverse mode are lowered to the dual of their forward primitive. Strings
// are hoisted into program constants.
package codegen

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/db47h/befreak/cfg"
	"github.com/db47h/befreak/lex"
	"github.com/db47h/befreak/vm"
	"github.com/pkg/errors"
)

// EntryName is the name of the entry procedure of generated programs.
const EntryName = "main"

// UnsupportedInverseError is returned by Generate when an instruction with no
// inverse (write, read or a string literal) is reached in inverse mode.
type UnsupportedInverseError struct {
	Op  lex.Op
	Key cfg.NodeKey
}

func (e *UnsupportedInverseError) Error() string {
	return fmt.Sprintf("block %v: unsupported inverse operation %v", e.Key, e.Op)
}

// ProcName returns the name of the procedure generated for the block k.
func ProcName(k cfg.NodeKey) string {
	mode := "normal"
	if k.Inverse {
		mode = "inverse"
	}
	return fmt.Sprintf("bf_%d_%d_%s_%s", k.Pos.X, k.Pos.Y, k.Dir.Abbrev(), mode)
}

type generator struct {
	log   *slog.Logger
	prog  *vm.Program
	index map[cfg.NodeKey]int

	// current procedure
	key  cfg.NodeKey
	name string
	code []vm.Instr
	nstr int
}

// Option interface
type Option func(*generator) error

// Logger sets the logger used to trace code generation. Procedures are logged
// at debug level.
func Logger(l *slog.Logger) Option {
	return func(g *generator) error {
		if l == nil {
			return errors.New("nil logger")
		}
		g.log = l
		return nil
	}
}

// Generate lowers the graph to a program. Procedures are sorted by key and
// followed by the entry procedure, which jumps to the start block.
func Generate(graph *cfg.Graph, opts ...Option) (*vm.Program, error) {
	if err := graph.Validate(); err != nil {
		return nil, err
	}
	g := &generator{
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		prog:  new(vm.Program),
		index: make(map[cfg.NodeKey]int, len(graph.Blocks)),
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}

	keys := graph.Keys()
	for i, k := range keys {
		g.index[k] = i
	}
	g.prog.Procs = make([]vm.Proc, 0, len(keys)+1)
	for _, k := range keys {
		p, err := g.proc(k, graph.Blocks[k])
		if err != nil {
			return nil, err
		}
		g.prog.Procs = append(g.prog.Procs, p)
		g.log.Debug("proc", "name", p.Name, "instrs", len(p.Code), "next", p.Next.Kind)
	}
	g.prog.Entry = len(g.prog.Procs)
	g.prog.Procs = append(g.prog.Procs, vm.Proc{
		Name: EntryName,
		Next: vm.Transfer{Kind: vm.Jump, Target: [2]int{g.index[graph.Start]}},
	})
	return g.prog, nil
}

func (g *generator) proc(k cfg.NodeKey, blk *cfg.Block) (vm.Proc, error) {
	g.key, g.name, g.code, g.nstr = k, ProcName(k), nil, 0
	for _, op := range blk.Ops {
		if err := lowering[op.Op](g, op); err != nil {
			return vm.Proc{}, err
		}
	}
	p := vm.Proc{Name: g.name, Code: g.code}
	switch blk.Term.Kind {
	case cfg.Halt:
		p.Next.Kind = vm.Halt
	case cfg.Jump:
		p.Next = vm.Transfer{Kind: vm.Jump, Target: [2]int{g.index[blk.Term.Succ[0]]}}
	case cfg.Branch:
		p.Next = vm.Transfer{Kind: vm.Branch, Target: [2]int{g.index[blk.Term.Succ[0]], g.index[blk.Term.Succ[1]]}}
	default:
		return vm.Proc{}, errors.Errorf("block %v: invalid terminator %v", k, blk.Term.Kind)
	}
	return p, nil
}

func (g *generator) emit(op vm.Opcode, arg vm.Cell) {
	g.code = append(g.code, vm.Instr{Op: op, Arg: arg})
}

// constant adds a string constant to the program and returns its index.
func (g *generator) constant(s string) vm.Cell {
	rs := []rune(s)
	data := make([]vm.Cell, len(rs))
	for i, r := range rs {
		data[i] = vm.Cell(r)
	}
	g.prog.Consts = append(g.prog.Consts, vm.Const{
		Name: fmt.Sprintf("%s.s%d", g.name, g.nstr),
		Data: data,
	})
	g.nstr++
	return vm.Cell(len(g.prog.Consts) - 1)
}
