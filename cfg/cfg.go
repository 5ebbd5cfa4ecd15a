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

// Package cfg builds the control flow graph of a Befreak program.
//
// The graph is a set of basic blocks keyed by NodeKey: the position, entry
// direction and inverse mode the instruction pointer has when entering the
// block. The same cell yields distinct blocks for distinct entry directions or
// inverse modes since the semantics of most glyphs depend on both.
package cfg

import (
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/db47h/befreak/grid"
	"github.com/db47h/befreak/lex"
	"github.com/pkg/errors"
)

// NodeKey identifies a basic block.
type NodeKey struct {
	Pos     grid.Position
	Dir     grid.Direction
	Inverse bool
}

func (k NodeKey) String() string {
	mode := "normal"
	if k.Inverse {
		mode = "inverse"
	}
	return k.Pos.String() + " " + k.Dir.String() + " " + mode
}

// Less orders keys by row, column, direction then inverse mode.
func (k NodeKey) Less(o NodeKey) bool {
	switch {
	case k.Pos.Y != o.Pos.Y:
		return k.Pos.Y < o.Pos.Y
	case k.Pos.X != o.Pos.X:
		return k.Pos.X < o.Pos.X
	case k.Dir != o.Dir:
		return k.Dir < o.Dir
	}
	return !k.Inverse && o.Inverse
}

// Op is an instruction along with the direction and inverse mode it is
// executed with.
type Op struct {
	lex.Instruction
	Dir     grid.Direction
	Inverse bool
}

// TermKind is the kind of control transfer ending a block.
type TermKind uint8

// Terminator kinds.
const (
	Halt TermKind = iota
	Jump
	Branch
)

var termNames = [...]string{"Halt", "Jump", "Branch"}

func (k TermKind) String() string {
	if int(k) < len(termNames) {
		return termNames[k]
	}
	return "TermKind(" + strconv.Itoa(int(k)) + ")"
}

// Terminator ends a block. Jump uses Succ[0]. For Branch, Succ[0] is taken
// when the popped control flag is set, Succ[1] otherwise.
type Terminator struct {
	Kind TermKind
	Succ [2]NodeKey
}

// Successors returns the keys of the blocks control may be transferred to.
func (t Terminator) Successors() []NodeKey {
	switch t.Kind {
	case Jump:
		return t.Succ[:1]
	case Branch:
		return t.Succ[:]
	}
	return nil
}

func (t Terminator) String() string {
	switch t.Kind {
	case Jump:
		return "Jump(" + t.Succ[0].String() + ")"
	case Branch:
		return "Branch(" + t.Succ[0].String() + ", " + t.Succ[1].String() + ")"
	}
	return "Halt"
}

// Block is a basic block.
type Block struct {
	Ops  []Op
	Term Terminator
}

// Graph is a program's control flow graph. It is closed: every successor of
// every block is a key of Blocks.
type Graph struct {
	Blocks map[NodeKey]*Block
	Start  NodeKey
}

// Keys returns the block keys in NodeKey.Less order.
func (g *Graph) Keys() []NodeKey {
	keys := make([]NodeKey, 0, len(g.Blocks))
	for k := range g.Blocks {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// Validate checks that the graph has a start block and no dangling edges.
func (g *Graph) Validate() error {
	if _, ok := g.Blocks[g.Start]; !ok {
		return errors.Errorf("missing start block %v", g.Start)
	}
	for _, k := range g.Keys() {
		for _, s := range g.Blocks[k].Term.Successors() {
			if _, ok := g.Blocks[s]; !ok {
				return errors.Errorf("block %v: dangling successor %v", k, s)
			}
		}
	}
	return nil
}

type builder struct {
	grid   *grid.Grid
	log    *slog.Logger
	blocks map[NodeKey]*Block
}

// Option interface
type Option func(*builder) error

// Logger sets the logger used to trace graph construction. Blocks are logged
// at debug level. By default, nothing is logged.
func Logger(l *slog.Logger) Option {
	return func(b *builder) error {
		if l == nil {
			return errors.New("nil logger")
		}
		b.log = l
		return nil
	}
}

// Build walks the grid from the cell east of the start marker and returns the
// resulting graph.
func Build(g *grid.Grid, opts ...Option) (*Graph, error) {
	b := &builder{
		grid:   g,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		blocks: make(map[NodeKey]*Block),
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	marker, err := g.Start()
	if err != nil {
		return nil, err
	}
	start := NodeKey{marker.Step(grid.East), grid.East, false}

	// depth first, a block is registered before its successors are queued so
	// that cycles back to it are not walked again.
	work := []NodeKey{start}
	for len(work) > 0 {
		k := work[len(work)-1]
		work = work[:len(work)-1]
		if _, ok := b.blocks[k]; ok {
			continue
		}
		blk, err := b.block(k)
		if err != nil {
			return nil, err
		}
		b.blocks[k] = blk
		b.log.Debug("block", "key", k, "ops", len(blk.Ops), "term", blk.Term.Kind)
		succ := blk.Term.Successors()
		for i := len(succ) - 1; i >= 0; i-- {
			if _, ok := b.blocks[succ[i]]; !ok {
				work = append(work, succ[i])
			}
		}
	}
	return &Graph{Blocks: b.blocks, Start: start}, nil
}

// block decodes the straight line code starting at key k. If the walk comes
// back to a state it already went through, the block ends with a jump to that
// state.
func (b *builder) block(k NodeKey) (*Block, error) {
	var (
		ops  []Op
		seen = make(map[NodeKey]struct{})
		pos  = k.Pos
		dir  = k.Dir
		inv  = k.Inverse
	)
	for {
		cur := NodeKey{pos, dir, inv}
		if _, ok := seen[cur]; ok {
			return &Block{ops, Terminator{Kind: Jump, Succ: [2]NodeKey{cur}}}, nil
		}
		seen[cur] = struct{}{}

		ins, exit, err := lex.Lex(b.grid, &pos, dir)
		if err != nil {
			return nil, errors.Wrapf(err, "block %v", k)
		}
		ops = append(ops, Op{ins, dir, inv})

		switch exit.Kind {
		case lex.Continue:
			dir = exit.Dir
			pos = pos.Step(dir)
		case lex.ContinueInverted:
			dir = exit.Dir
			pos = pos.Step(dir)
			inv = !inv
		case lex.Halt:
			return &Block{ops, Terminator{Kind: Halt}}, nil
		case lex.Branch:
			t := Terminator{Kind: Branch, Succ: [2]NodeKey{
				{pos.Step(exit.Dir), exit.Dir, inv},
				{pos.Step(exit.Alt), exit.Alt, inv},
			}}
			// running a branch backwards swaps the taken arms
			if inv && ins.Op != lex.OpSwapBranch {
				t.Succ[0], t.Succ[1] = t.Succ[1], t.Succ[0]
			}
			return &Block{ops, t}, nil
		}
	}
}

// Dump writes a human readable listing of the graph to w.
func (g *Graph) Dump(w io.Writer) error {
	var sb strings.Builder
	for _, k := range g.Keys() {
		blk := g.Blocks[k]
		sb.WriteString(k.String())
		if k == g.Start {
			sb.WriteString(" (start)")
		}
		sb.WriteString(":\n\t")
		for i, op := range blk.Ops {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(op.Instruction.String())
		}
		sb.WriteString("\n\t")
		sb.WriteString(blk.Term.String())
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return errors.Wrap(err, "write failed")
}
