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

import (
	"math/bits"
	"strconv"

	"github.com/pkg/errors"
)

func itoa(c Cell) string { return strconv.Itoa(int(c)) }

func (i *Instance) toggle() {
	t := i.Control.top()
	if *t == 0 {
		*t = 1
	} else {
		*t = 0
	}
}

// step executes a single primitive.
func (i *Instance) step(in Instr) {
	m, c := &i.Main, &i.Control
	switch in.Op {
	case OpNop:
	case OpNum:
		*m.top() ^= in.Arg
	case OpPushZero:
		m.Push(0)
	case OpPopZero:
		m.Pop()
	case OpToControl:
		c.Push(m.Pop())
	case OpToMain:
		m.Push(c.Pop())
	case OpSwapStacks:
		x, y := m.Pop(), c.Pop()
		m.Push(y)
		c.Push(x)
	case OpWrite:
		i.writeCell(m.Pop())
	case OpRead:
		m.Push(i.readCell())
	case OpInc:
		*m.top()++
	case OpDec:
		*m.top()--
	case OpAdd:
		x, y := m.Pop(), m.Pop()
		m.Push(y + x)
		m.Push(x)
	case OpSub:
		x, y := m.Pop(), m.Pop()
		m.Push(y - x)
		m.Push(x)
	case OpDiv:
		x, y := m.Pop(), m.Pop()
		if x == 0 {
			panic(ErrDivisionByZero)
		}
		m.Push(y / x)
		m.Push(y % x)
		m.Push(x)
	case OpMul:
		x, rem, quo := m.Pop(), m.Pop(), m.Pop()
		m.Push(quo*x + rem)
		m.Push(x)
	case OpNot:
		t := m.top()
		*t = ^*t
	case OpAnd, OpOr, OpXor:
		x, y := m.Pop(), m.Pop()
		v := x & y
		switch in.Op {
		case OpOr:
			v = x | y
		case OpXor:
			v = x ^ y
		}
		*m.top() ^= v
		m.Push(y)
		m.Push(x)
	case OpRotl:
		x, y := m.Pop(), m.Pop()
		m.Push(Cell(bits.RotateLeft32(uint32(y), int(x))))
		m.Push(x)
	case OpRotr:
		x, y := m.Pop(), m.Pop()
		m.Push(Cell(bits.RotateLeft32(uint32(y), -int(x))))
		m.Push(x)
	case OpToggle:
		i.toggle()
	case OpEq:
		if m.Peek(1) == m.Peek(0) {
			i.toggle()
		}
	case OpLt:
		if m.Peek(1) < m.Peek(0) {
			i.toggle()
		}
	case OpGt:
		if m.Peek(1) > m.Peek(0) {
			i.toggle()
		}
	case OpSwap:
		x, y := m.Pop(), m.Pop()
		m.Push(x)
		m.Push(y)
	case OpDig:
		x, y, z := m.Pop(), m.Pop(), m.Pop()
		m.Push(y)
		m.Push(x)
		m.Push(z)
	case OpBury:
		x, y, z := m.Pop(), m.Pop(), m.Pop()
		m.Push(x)
		m.Push(z)
		m.Push(y)
	case OpFlip:
		x, y, z := m.Pop(), m.Pop(), m.Pop()
		m.Push(x)
		m.Push(y)
		m.Push(z)
	case OpSwapLower:
		x, y, z := m.Pop(), m.Pop(), m.Pop()
		m.Push(y)
		m.Push(z)
		m.Push(x)
	case OpOver:
		x, y := m.Pop(), m.Pop()
		m.Push(y)
		m.Push(x)
		m.Push(y)
	case OpUnder:
		// assumes that the top and third cells are equal
		m.Pop()
		x, y := m.Pop(), m.Pop()
		m.Push(y)
		m.Push(x)
	case OpDup:
		m.Push(m.Peek(0))
	case OpUndup:
		m.Pop()
	case OpCpush:
		c.Push(in.Arg)
	case OpStr:
		if i.prog == nil || in.Arg < 0 || int(in.Arg) >= len(i.prog.Consts) {
			panic(errors.Errorf("undefined constant %d", in.Arg))
		}
		for _, v := range i.prog.Consts[in.Arg].Data {
			m.Push(v)
		}
	default:
		panic(errors.Errorf("invalid opcode %d", in.Op))
	}
}

func (i *Instance) where() string {
	if i.prog != nil && i.proc >= 0 && i.proc < len(i.prog.Procs) {
		return i.prog.Procs[i.proc].Name
	}
	return "-"
}

// recoverError converts panics raised by the machine into errors annotated
// with the current procedure and stack depths.
func (i *Instance) recoverError(err *error) {
	if e := recover(); e != nil {
		switch e := e.(type) {
		case error:
			*err = errors.Wrapf(e, "Recovered error @proc=%s, stack %d/%d, control %d/%d",
				i.where(), i.Main.Depth(), i.Main.Cap(), i.Control.Depth(), i.Control.Cap())
		default:
			panic(e)
		}
	}
}

// Exec executes the given instructions outside of any procedure. Str
// instructions refer to the constants of the program last passed to Run.
func (i *Instance) Exec(code ...Instr) (err error) {
	defer i.recoverError(&err)
	for _, in := range code {
		i.step(in)
		i.insCount++
	}
	return nil
}

// Run starts execution of the program p at its entry procedure and returns
// once a procedure ending with Halt has completed.
//
// Tail transfers between procedures do not consume Go stack space: programs
// looping forever run forever.
//
// If the input reaches EOF while executing a read instruction, Run returns an
// error whose cause is io.EOF. This is a normal exit condition in most use
// cases.
func (i *Instance) Run(p *Program) (err error) {
	if err = p.Validate(); err != nil {
		return err
	}
	defer func() {
		if f, ok := i.output.(flusher); ok {
			if e := f.Flush(); e != nil && err == nil {
				err = errors.Wrap(e, "flush failed")
			}
		}
	}()
	defer i.recoverError(&err)
	i.prog = p
	i.insCount = 0
	for i.proc = p.Entry; ; {
		pr := &p.Procs[i.proc]
		for _, in := range pr.Code {
			i.step(in)
			i.insCount++
		}
		switch pr.Next.Kind {
		case Halt:
			return nil
		case Jump:
			i.proc = pr.Next.Target[0]
		case Branch:
			if i.Control.Pop() != 0 {
				i.proc = pr.Next.Target[0]
			} else {
				i.proc = pr.Next.Target[1]
			}
		default:
			panic(errors.Errorf("invalid transfer kind %d", pr.Next.Kind))
		}
	}
}
