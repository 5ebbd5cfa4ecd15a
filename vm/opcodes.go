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

import "strconv"

// Opcode is a primitive machine instruction.
type Opcode uint8

// Befreak machine opcodes.
const (
	OpNop Opcode = iota
	OpNum
	OpPushZero
	OpPopZero
	OpToControl
	OpToMain
	OpSwapStacks
	OpWrite
	OpRead
	OpInc
	OpDec
	OpAdd
	OpSub
	OpDiv
	OpMul
	OpNot
	OpAnd
	OpOr
	OpXor
	OpRotl
	OpRotr
	OpToggle
	OpEq
	OpLt
	OpGt
	OpSwap
	OpDig
	OpBury
	OpFlip
	OpSwapLower
	OpOver
	OpUnder
	OpDup
	OpUndup
	OpCpush
	OpStr

	opCount
)

// NumOpcodes is the number of opcodes.
const NumOpcodes = int(opCount)

var opcodes = [...]string{
	"nop",
	"num",
	"push0",
	"pop0",
	"tocontrol",
	"tomain",
	"swapstacks",
	"write",
	"read",
	"inc",
	"dec",
	"add",
	"sub",
	"div",
	"mul",
	"not",
	"and",
	"or",
	"xor",
	"rotl",
	"rotr",
	"toggle",
	"eq",
	"lt",
	"gt",
	"swap",
	"dig",
	"bury",
	"flip",
	"swaplower",
	"over",
	"under",
	"dup",
	"undup",
	"cpush",
	"str",
}

const noDual = opCount

// duals maps every opcode to the one undoing it.
var duals = [...]Opcode{
	OpNop:        OpNop,
	OpNum:        OpNum,
	OpPushZero:   OpPopZero,
	OpPopZero:    OpPushZero,
	OpToControl:  OpToMain,
	OpToMain:     OpToControl,
	OpSwapStacks: OpSwapStacks,
	OpWrite:      noDual,
	OpRead:       noDual,
	OpInc:        OpDec,
	OpDec:        OpInc,
	OpAdd:        OpSub,
	OpSub:        OpAdd,
	OpDiv:        OpMul,
	OpMul:        OpDiv,
	OpNot:        OpNot,
	OpAnd:        OpAnd,
	OpOr:         OpOr,
	OpXor:        OpXor,
	OpRotl:       OpRotr,
	OpRotr:       OpRotl,
	OpToggle:     OpToggle,
	OpEq:         OpEq,
	OpLt:         OpLt,
	OpGt:         OpGt,
	OpSwap:       OpSwap,
	OpDig:        OpBury,
	OpBury:       OpDig,
	OpFlip:       OpFlip,
	OpSwapLower:  OpSwapLower,
	OpOver:       OpUnder,
	OpUnder:      OpOver,
	OpDup:        OpUndup,
	OpUndup:      OpDup,
	OpCpush:      noDual,
	OpStr:        noDual,
}

var opcodeIndex = make(map[string]Opcode)

func init() {
	for i, v := range opcodes {
		opcodeIndex[v] = Opcode(i)
	}
}

func (op Opcode) String() string {
	if op < opCount {
		return opcodes[op]
	}
	return "Opcode(" + strconv.Itoa(int(op)) + ")"
}

// HasArg returns true if op expects an argument.
func (op Opcode) HasArg() bool {
	return op == OpNum || op == OpCpush || op == OpStr
}

// Inverse returns the opcode undoing op. The boolean result is false for
// opcodes without a defined inverse: write, read, cpush and str.
func (op Opcode) Inverse() (Opcode, bool) {
	if op >= opCount || duals[op] == noDual {
		return op, false
	}
	return duals[op], true
}

// LookupOpcode returns the opcode with the given mnemonic.
func LookupOpcode(name string) (Opcode, bool) {
	op, ok := opcodeIndex[name]
	return op, ok
}
