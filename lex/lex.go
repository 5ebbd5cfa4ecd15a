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

// Package lex turns a grid cell, entered from a given direction, into a
// Befreak instruction and the rule telling where the instruction pointer goes
// next.
//
// Supported glyphs:
//
//	glyph	instruction
//	-----	-----------------------------------------------------------------
//	0-9	xor the top of the main stack with the (multi-digit) number
//	"	string literal up to the next "
//	(	push 0
//	)	pop 0
//	[	move top of main stack to the control stack
//	]	move top of control stack to the main stack
//	$	swap the tops of both stacks
//	w	write a character
//	r	read a character
//	'	increment
//	`	decrement
//	+ -	add, subtract
//	% *	divide, multiply
//	~	not
//	& | #	and, or, xor
//	{ }	rotate left, rotate right
//	!	toggle the top of the control stack
//	= l g	equality, less than, greater than checks
//	s d b	swap top two, dig, bury
//	f c	flip, swap lower
//	o u	over, under
//	: ;	duplicate, unduplicate
//	?	toggle inverse mode
//	@	start marker, halt
//	\ /	mirrors
//	> < v ^	branches
//	J	swap stacks, then branch south/east
//	(space)	no-op
package lex

import (
	"strconv"

	"github.com/db47h/befreak/grid"
)

// Op is an instruction kind.
type Op uint8

// Instruction kinds.
const (
	OpBlank Op = iota
	OpNumber
	OpString
	OpPushZero
	OpPopZero
	OpMainToControl
	OpControlToMain
	OpSwapStacks
	OpWrite
	OpRead
	OpIncrement
	OpDecrement
	OpAdd
	OpSubtract
	OpDivide
	OpMultiply
	OpNot
	OpAnd
	OpOr
	OpXor
	OpRotateLeft
	OpRotateRight
	OpToggleControl
	OpEqual
	OpLessThan
	OpGreaterThan
	OpSwapTop
	OpDig
	OpBury
	OpFlip
	OpSwapLower
	OpOver
	OpUnder
	OpDuplicate
	OpUnduplicate
	OpInverse
	OpHalt
	OpMirror1
	OpMirror2
	OpEastBranch
	OpWestBranch
	OpSouthBranch
	OpNorthBranch
	OpSwapBranch

	opCount
)

// NumOps is the number of instruction kinds. Valid kinds are in the range
// [0, NumOps).
const NumOps = int(opCount)

var opNames = [...]string{
	"Blank",
	"Number",
	"String",
	"PushZero",
	"PopZero",
	"MainToControl",
	"ControlToMain",
	"SwapStacks",
	"Write",
	"Read",
	"Increment",
	"Decrement",
	"Add",
	"Subtract",
	"Divide",
	"Multiply",
	"Not",
	"And",
	"Or",
	"Xor",
	"RotateLeft",
	"RotateRight",
	"ToggleControl",
	"Equal",
	"LessThan",
	"GreaterThan",
	"SwapTop",
	"Dig",
	"Bury",
	"Flip",
	"SwapLower",
	"Over",
	"Under",
	"Duplicate",
	"Unduplicate",
	"Inverse",
	"Halt",
	"Mirror1",
	"Mirror2",
	"EastBranch",
	"WestBranch",
	"SouthBranch",
	"NorthBranch",
	"SwapBranch",
}

func (op Op) String() string {
	if op < opCount {
		return opNames[op]
	}
	return "Op(" + strconv.Itoa(int(op)) + ")"
}

// single cell instructions
var glyphs = map[rune]Op{
	grid.Blank:       OpBlank,
	'(':              OpPushZero,
	')':              OpPopZero,
	'[':              OpMainToControl,
	']':              OpControlToMain,
	'$':              OpSwapStacks,
	'w':              OpWrite,
	'r':              OpRead,
	'\'':             OpIncrement,
	'`':              OpDecrement,
	'+':              OpAdd,
	'-':              OpSubtract,
	'%':              OpDivide,
	'*':              OpMultiply,
	'~':              OpNot,
	'&':              OpAnd,
	'|':              OpOr,
	'#':              OpXor,
	'{':              OpRotateLeft,
	'}':              OpRotateRight,
	'!':              OpToggleControl,
	'=':              OpEqual,
	'l':              OpLessThan,
	'g':              OpGreaterThan,
	's':              OpSwapTop,
	'd':              OpDig,
	'b':              OpBury,
	'f':              OpFlip,
	'c':              OpSwapLower,
	'o':              OpOver,
	'u':              OpUnder,
	':':              OpDuplicate,
	';':              OpUnduplicate,
	'?':              OpInverse,
	grid.StartMarker: OpHalt,
	'\\':             OpMirror1,
	'/':              OpMirror2,
	'>':              OpEastBranch,
	'<':              OpWestBranch,
	'v':              OpSouthBranch,
	'^':              OpNorthBranch,
	'J':              OpSwapBranch,
}

var opGlyphs [opCount]rune

func init() {
	for g, op := range glyphs {
		opGlyphs[op] = g
	}
}

// Glyph returns the source glyph of op. Number and String have no single
// glyph and return 0.
func (op Op) Glyph() rune {
	if op < opCount {
		return opGlyphs[op]
	}
	return 0
}

// Instruction is a decoded instruction.
type Instruction struct {
	Op    Op
	Value int32  // OpNumber
	Text  string // OpString
}

func (i Instruction) String() string {
	switch i.Op {
	case OpNumber:
		return strconv.FormatInt(int64(i.Value), 10)
	case OpString:
		return strconv.Quote(i.Text)
	case OpBlank:
		return "_"
	}
	return string(i.Op.Glyph())
}

// ExitKind tells how the instruction pointer leaves an instruction.
type ExitKind uint8

// Exit kinds.
const (
	// Continue in direction Exit.Dir, same inverse mode.
	Continue ExitKind = iota
	// ContinueInverted continues in direction Exit.Dir and flips inverse mode.
	ContinueInverted
	// Branch to either Exit.Dir (control flag set) or Exit.Alt (not set).
	// The order is the forward mode order.
	Branch
	// Halt stops execution.
	Halt
)

// Exit is the exit rule of an instruction.
type Exit struct {
	Kind ExitKind
	Dir  grid.Direction
	Alt  grid.Direction
}

func (e Exit) String() string {
	switch e.Kind {
	case Continue:
		return "Continue(" + e.Dir.String() + ")"
	case ContinueInverted:
		return "ContinueInverted(" + e.Dir.String() + ")"
	case Branch:
		return "Branch(" + e.Dir.String() + ", " + e.Alt.String() + ")"
	default:
		return "Halt"
	}
}

func cont(d grid.Direction) Exit      { return Exit{Kind: Continue, Dir: d} }
func inverted(d grid.Direction) Exit  { return Exit{Kind: ContinueInverted, Dir: d} }
func branch(a, b grid.Direction) Exit { return Exit{Kind: Branch, Dir: a, Alt: b} }

// exit rules of direction changing glyphs, indexed by incoming direction
// (North, South, East, West).
var dirExits = map[Op][4]Exit{
	OpMirror1: {cont(grid.West), cont(grid.East), cont(grid.South), cont(grid.North)},
	OpMirror2: {cont(grid.East), cont(grid.West), cont(grid.North), cont(grid.South)},
	OpEastBranch: {
		cont(grid.East),
		cont(grid.East),
		inverted(grid.West),
		branch(grid.North, grid.South),
	},
	OpWestBranch: {
		cont(grid.West),
		cont(grid.West),
		branch(grid.South, grid.North),
		inverted(grid.East),
	},
	OpSouthBranch: {
		branch(grid.East, grid.West),
		inverted(grid.North),
		cont(grid.South),
		cont(grid.South),
	},
	OpNorthBranch: {
		inverted(grid.South),
		branch(grid.West, grid.East),
		cont(grid.North),
		cont(grid.North),
	},
}

// Lex decodes the instruction at position *pos, entered while travelling in
// direction dir.
//
// Multi-cell literals (numbers and strings) move *pos to their last cell, so
// that the caller's next step is relative to the end of the literal.
//
// A position outside of the grid decodes as OpHalt.
func Lex(g *grid.Grid, pos *grid.Position, dir grid.Direction) (Instruction, Exit, error) {
	c, ok := g.Get(*pos)
	if !ok {
		return Instruction{Op: OpHalt}, Exit{Kind: Halt}, nil
	}
	switch {
	case isDigit(c):
		return lexNumber(g, pos, dir, c)
	case c == '"':
		return lexString(g, pos, dir)
	}
	op, ok := glyphs[c]
	if !ok {
		return Instruction{}, Exit{}, &InvalidCharacterError{c, *pos}
	}
	switch op {
	case OpHalt:
		return Instruction{Op: op}, Exit{Kind: Halt}, nil
	case OpInverse:
		return Instruction{Op: op}, inverted(dir), nil
	case OpSwapBranch:
		return Instruction{Op: op}, branch(grid.South, grid.East), nil
	}
	if t, ok := dirExits[op]; ok {
		return Instruction{Op: op}, t[dir], nil
	}
	return Instruction{Op: op}, cont(dir), nil
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

func lexNumber(g *grid.Grid, pos *grid.Position, dir grid.Direction, c rune) (Instruction, Exit, error) {
	start := *pos
	v := uint32(c - '0')
	for {
		next := pos.Step(dir)
		c, ok := g.Get(next)
		if !ok {
			return Instruction{}, Exit{}, &OutOfBoundsLiteralError{OpNumber, start}
		}
		if !isDigit(c) {
			return Instruction{Op: OpNumber, Value: int32(v)}, cont(dir), nil
		}
		v = v*10 + uint32(c-'0')
		*pos = next
	}
}

func lexString(g *grid.Grid, pos *grid.Position, dir grid.Direction) (Instruction, Exit, error) {
	start := *pos
	var s []rune
	for {
		next := pos.Step(dir)
		c, ok := g.Get(next)
		if !ok {
			return Instruction{}, Exit{}, &OutOfBoundsLiteralError{OpString, start}
		}
		*pos = next
		if c == '"' {
			return Instruction{Op: OpString, Text: string(s)}, cont(dir), nil
		}
		s = append(s, c)
	}
}
