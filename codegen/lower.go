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
	"github.com/db47h/befreak/cfg"
	"github.com/db47h/befreak/lex"
	"github.com/db47h/befreak/vm"
)

type lowerFunc func(g *generator, op cfg.Op) error

// lowering maps every instruction kind to its lowering function.
var lowering = [...]lowerFunc{
	lex.OpBlank:         nothing,
	lex.OpNumber:        number,
	lex.OpString:        str,
	lex.OpPushZero:      prim(vm.OpPushZero),
	lex.OpPopZero:       prim(vm.OpPopZero),
	lex.OpMainToControl: prim(vm.OpToControl),
	lex.OpControlToMain: prim(vm.OpToMain),
	lex.OpSwapStacks:    prim(vm.OpSwapStacks),
	lex.OpWrite:         prim(vm.OpWrite),
	lex.OpRead:          prim(vm.OpRead),
	lex.OpIncrement:     prim(vm.OpInc),
	lex.OpDecrement:     prim(vm.OpDec),
	lex.OpAdd:           prim(vm.OpAdd),
	lex.OpSubtract:      prim(vm.OpSub),
	lex.OpDivide:        prim(vm.OpDiv),
	lex.OpMultiply:      prim(vm.OpMul),
	lex.OpNot:           prim(vm.OpNot),
	lex.OpAnd:           prim(vm.OpAnd),
	lex.OpOr:            prim(vm.OpOr),
	lex.OpXor:           prim(vm.OpXor),
	lex.OpRotateLeft:    prim(vm.OpRotl),
	lex.OpRotateRight:   prim(vm.OpRotr),
	lex.OpToggleControl: prim(vm.OpToggle),
	lex.OpEqual:         prim(vm.OpEq),
	lex.OpLessThan:      prim(vm.OpLt),
	lex.OpGreaterThan:   prim(vm.OpGt),
	lex.OpSwapTop:       prim(vm.OpSwap),
	lex.OpDig:           prim(vm.OpDig),
	lex.OpBury:          prim(vm.OpBury),
	lex.OpFlip:          prim(vm.OpFlip),
	lex.OpSwapLower:     prim(vm.OpSwapLower),
	lex.OpOver:          prim(vm.OpOver),
	lex.OpUnder:         prim(vm.OpUnder),
	lex.OpDuplicate:     prim(vm.OpDup),
	lex.OpUnduplicate:   prim(vm.OpUndup),
	lex.OpInverse:       nothing,
	lex.OpHalt:          nothing,
	lex.OpMirror1:       nothing,
	lex.OpMirror2:       nothing,
	lex.OpEastBranch:    arms(armOne, armZero, armToggle, armNone),
	lex.OpWestBranch:    arms(armZero, armOne, armNone, armToggle),
	lex.OpSouthBranch:   arms(armNone, armToggle, armOne, armZero),
	lex.OpNorthBranch:   arms(armToggle, armNone, armZero, armOne),
	lex.OpSwapBranch:    prim(vm.OpSwapStacks),
}

// ensure that the table covers all instruction kinds
var _ [len(lowering) - lex.NumOps]struct{}

func nothing(*generator, cfg.Op) error { return nil }

// prim lowers to a single primitive, or to its dual in inverse mode.
func prim(fwd vm.Opcode) lowerFunc {
	return func(g *generator, op cfg.Op) error {
		o := fwd
		if op.Inverse {
			var ok bool
			if o, ok = fwd.Inverse(); !ok {
				return &UnsupportedInverseError{op.Op, g.key}
			}
		}
		g.emit(o, 0)
		return nil
	}
}

// number literals are self-inverse.
func number(g *generator, op cfg.Op) error {
	g.emit(vm.OpNum, vm.Cell(op.Value))
	return nil
}

func str(g *generator, op cfg.Op) error {
	if op.Inverse {
		return &UnsupportedInverseError{op.Op, g.key}
	}
	if op.Text == "" {
		return nil
	}
	g.emit(vm.OpStr, g.constant(op.Text))
	return nil
}

// arm is the effect of a branch glyph on the control stack for a given
// incoming direction.
type arm uint8

const (
	armNone   arm = iota // branching, the terminator pops the flag
	armToggle            // merge
	armZero              // push 0 onto the control stack
	armOne               // push 1
)

// arms lowers a branch glyph. The effects are given by incoming direction, in
// grid.Direction order. In inverse mode, pushed flags are swapped.
func arms(n, s, e, w arm) lowerFunc {
	t := [4]arm{n, s, e, w}
	return func(g *generator, op cfg.Op) error {
		switch a := t[op.Dir]; a {
		case armToggle:
			g.emit(vm.OpToggle, 0)
		case armZero, armOne:
			flag := vm.Cell(0)
			if (a == armOne) != op.Inverse {
				flag = 1
			}
			g.emit(vm.OpCpush, flag)
		}
		return nil
	}
}
