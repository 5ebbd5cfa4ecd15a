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

package main

import (
	"io"
	"strings"

	"github.com/db47h/befreak/cfg"
	"github.com/db47h/befreak/codegen"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
)

func terminator(t cfg.Terminator) string {
	switch t.Kind {
	case cfg.Jump:
		return "jump " + codegen.ProcName(t.Succ[0])
	case cfg.Branch:
		return "branch " + codegen.ProcName(t.Succ[0]) + " " + codegen.ProcName(t.Succ[1])
	}
	return "halt"
}

// printGraph writes the control flow graph g to w as a table, one block per
// row.
func printGraph(w io.Writer, g *cfg.Graph) error {
	t := table.NewWriter()
	t.SetTitle("Control flow graph")
	t.AppendHeader(table.Row{"Block", "Pos", "Dir", "Mode", "Ops", "Next"})
	for _, k := range g.Keys() {
		blk := g.Blocks[k]
		ops := make([]string, len(blk.Ops))
		for i, op := range blk.Ops {
			ops[i] = op.Instruction.String()
		}
		mode := "normal"
		if k.Inverse {
			mode = "inverse"
		}
		name := codegen.ProcName(k)
		if k == g.Start {
			name += " *"
		}
		t.AppendRow(table.Row{name, k.Pos, k.Dir, mode, strings.Join(ops, " "), terminator(blk.Term)})
	}
	t.AppendFooter(table.Row{"", "", "", "", "blocks", len(g.Blocks)})
	_, err := io.WriteString(w, t.Render()+"\n")
	return errors.Wrap(err, "write failed")
}
