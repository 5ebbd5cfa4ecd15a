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

package codegen

import (
	"testing"

	"github.com/db47h/befreak/cfg"
	"github.com/db47h/befreak/grid"
	"github.com/db47h/befreak/lex"
	"github.com/db47h/befreak/vm"
)

func lower(t *testing.T, op cfg.Op) ([]vm.Instr, error) {
	t.Helper()
	g := &generator{prog: new(vm.Program), name: "p"}
	err := lowering[op.Op](g, op)
	return g.code, err
}

// Every instruction kind lowers in both modes, and the inverse mode lowering
// of a primitive is its dual.
func TestLowering_complete(t *testing.T) {
	for o := lex.Op(0); int(o) < lex.NumOps; o++ {
		if lowering[o] == nil {
			t.Errorf("%v: no lowering", o)
			continue
		}
		for d := grid.North; d <= grid.West; d++ {
			ins := lex.Instruction{Op: o, Value: 3, Text: "x"}
			fwd, err := lower(t, cfg.Op{Instruction: ins, Dir: d})
			if err != nil {
				t.Errorf("%v %v: %v", o, d, err)
				continue
			}
			inv, err := lower(t, cfg.Op{Instruction: ins, Dir: d, Inverse: true})
			if err != nil {
				switch o {
				case lex.OpWrite, lex.OpRead, lex.OpString:
				default:
					t.Errorf("%v %v inverse: %v", o, d, err)
				}
				continue
			}
			if len(fwd) != len(inv) {
				t.Errorf("%v %v: %v / %v", o, d, fwd, inv)
				continue
			}
			for i := range fwd {
				if fwd[i].Op == vm.OpCpush {
					if fwd[i].Arg+inv[i].Arg != 1 {
						t.Errorf("%v %v: flags not swapped: %v / %v", o, d, fwd[i], inv[i])
					}
					continue
				}
				if dual, _ := fwd[i].Op.Inverse(); dual != inv[i].Op || fwd[i].Arg != inv[i].Arg {
					t.Errorf("%v %v: %v is not the dual of %v", o, d, inv[i], fwd[i])
				}
			}
		}
	}
}
