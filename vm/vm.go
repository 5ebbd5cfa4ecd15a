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
	"io"

	"github.com/pkg/errors"
)

// Cell is the raw type stored on the stacks.
type Cell int32

// DefaultStackSize is the default capacity, in cells, of each stack.
const DefaultStackSize = 40

// Machine errors. Runtime errors returned by Run and Exec wrap one of these;
// use errors.Cause to retrieve it.
var (
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrDivisionByZero = errors.New("division by zero")
)

// Stack is a bounded stack of cells.
type Stack struct {
	name  string
	cells []Cell
	sp    int // index of the top cell, -1 when empty
}

func newStack(name string, size int) Stack {
	return Stack{name: name, cells: make([]Cell, size), sp: -1}
}

// Push pushes v on top of the stack. It panics with an error wrapping
// ErrStackOverflow if the stack is full.
func (s *Stack) Push(v Cell) {
	if s.sp+1 >= len(s.cells) {
		panic(errors.Wrap(ErrStackOverflow, s.name))
	}
	s.sp++
	s.cells[s.sp] = v
}

// Pop pops the value on top of the stack and returns it. It panics with an
// error wrapping ErrStackUnderflow if the stack is empty.
func (s *Stack) Pop() Cell {
	if s.sp < 0 {
		panic(errors.Wrap(ErrStackUnderflow, s.name))
	}
	s.sp--
	return s.cells[s.sp+1]
}

// Peek returns the value at the given depth, 0 being the top of the stack.
func (s *Stack) Peek(depth int) Cell {
	if depth < 0 || depth > s.sp {
		panic(errors.Wrap(ErrStackUnderflow, s.name))
	}
	return s.cells[s.sp-depth]
}

func (s *Stack) top() *Cell {
	if s.sp < 0 {
		panic(errors.Wrap(ErrStackUnderflow, s.name))
	}
	return &s.cells[s.sp]
}

// Depth returns the number of cells on the stack.
func (s *Stack) Depth() int { return s.sp + 1 }

// Cap returns the capacity of the stack.
func (s *Stack) Cap() int { return len(s.cells) }

// Values returns the stack contents, bottom first. Note that value changes
// will be reflected in the stack, but re-slicing will not affect it.
func (s *Stack) Values() []Cell { return s.cells[:s.sp+1] }

func (s *Stack) resize(size int) error {
	if size <= s.sp {
		return errors.Errorf("%s stack: cannot shrink to %d cells, %d in use", s.name, size, s.sp+1)
	}
	t := make([]Cell, size)
	copy(t, s.cells[:s.sp+1])
	s.cells = t
	return nil
}

// Instance represents a Befreak machine instance.
type Instance struct {
	Main     Stack
	Control  Stack
	prog     *Program
	proc     int
	insCount int64
	input    io.RuneReader
	output   runeWriter
}

// Option interface
type Option func(*Instance) error

// StackSize sets the capacity of both stacks. It will not erase the stacks,
// but returns an error if a stack holds more than size cells.
func StackSize(size int) Option {
	return func(i *Instance) error {
		if size <= 0 {
			return errors.Errorf("invalid stack size %d", size)
		}
		if err := i.Main.resize(size); err != nil {
			return err
		}
		return i.Control.resize(size)
	}
}

// Input pushes the given io.Reader on top of the input stack. See PushInput.
func Input(r io.Reader) Option {
	return func(i *Instance) error { i.PushInput(r); return nil }
}

// Output sets the writer characters are written to. If w does not implement
// WriteRune, it is wrapped so that runes are written UTF-8 encoded.
func Output(w io.Writer) Option {
	return func(i *Instance) error {
		i.output = newWriter(w)
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new machine instance with empty stacks of DefaultStackSize
// cells. Options will be set by calling SetOptions.
func New(opts ...Option) (*Instance, error) {
	i := &Instance{
		Main:    newStack("main", DefaultStackSize),
		Control: newStack("control", DefaultStackSize),
		proc:    -1,
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// Proc returns the index of the procedure being executed by Run, or of the
// last executed one once Run has returned. It returns -1 if Run has not been
// called yet.
func (i *Instance) Proc() int {
	return i.proc
}
