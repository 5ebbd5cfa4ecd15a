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

package vm_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/db47h/befreak/vm"
	"github.com/pkg/errors"
)

func in(o vm.Opcode, arg vm.Cell) vm.Instr { return vm.Instr{Op: o, Arg: arg} }

// countdown decrements the top of the main stack down to zero.
func countdown(start vm.Cell) *vm.Program {
	return &vm.Program{
		Procs: []vm.Proc{
			{Name: "main", Code: []vm.Instr{op(vm.OpPushZero), in(vm.OpNum, start)}, Next: vm.Transfer{Kind: vm.Jump, Target: [2]int{1}}},
			{
				Name: "loop",
				Code: []vm.Instr{
					op(vm.OpDec),
					in(vm.OpCpush, 0),
					op(vm.OpPushZero),
					op(vm.OpEq),
					op(vm.OpPopZero),
				},
				Next: vm.Transfer{Kind: vm.Branch, Target: [2]int{2, 1}},
			},
			{Name: "done"},
		},
	}
}

func TestRun_loop(t *testing.T) {
	i := setup(t, nil, nil)
	if i.Proc() != -1 {
		t.Errorf("Expected no current procedure, got %d", i.Proc())
	}
	if err := i.Run(countdown(3)); err != nil {
		t.Fatalf("%+v", err)
	}
	assertStacks(t, "countdown", i, C{0}, nil)
	if i.Proc() != 2 {
		t.Errorf("Expected to halt in procedure 2, got %d", i.Proc())
	}
	if n := i.InstructionCount(); n != 17 {
		t.Errorf("Expected 17 instructions, got %d", n)
	}
}

func TestRun_branch(t *testing.T) {
	for flag, want := range map[vm.Cell]vm.Cell{0: 2, 1: 1, 5: 1} {
		p := &vm.Program{
			Procs: []vm.Proc{
				{Name: "main", Code: []vm.Instr{in(vm.OpCpush, flag)}, Next: vm.Transfer{Kind: vm.Branch, Target: [2]int{1, 2}}},
				{Name: "t", Code: []vm.Instr{op(vm.OpPushZero), in(vm.OpNum, 1)}},
				{Name: "f", Code: []vm.Instr{op(vm.OpPushZero), in(vm.OpNum, 2)}},
			},
		}
		i := setup(t, nil, nil)
		if err := i.Run(p); err != nil {
			t.Fatalf("%+v", err)
		}
		assertStacks(t, "branch", i, C{want}, nil)
	}
}

func TestRun_io(t *testing.T) {
	var out bytes.Buffer
	p := &vm.Program{
		Procs: []vm.Proc{
			{Name: "main", Code: []vm.Instr{
				op(vm.OpRead), op(vm.OpRead),
				in(vm.OpStr, 0),
				op(vm.OpWrite), op(vm.OpWrite), op(vm.OpWrite), op(vm.OpWrite),
			}},
		},
		Consts: []vm.Const{{Name: "main.s0", Data: []vm.Cell{'!', 'é'}}},
	}
	i := setup(t, nil, nil, vm.Input(strings.NewReader("ab")), vm.Output(&out))
	if err := i.Run(p); err != nil {
		t.Fatalf("%+v", err)
	}
	if got := out.String(); got != "é!ba" {
		t.Errorf("Expected %q, got %q", "é!ba", got)
	}
}

func TestRun_eof(t *testing.T) {
	p := &vm.Program{Procs: []vm.Proc{{Name: "main", Code: []vm.Instr{op(vm.OpRead), op(vm.OpRead)}}}}
	i := setup(t, nil, nil, vm.Input(strings.NewReader("a")))
	err := i.Run(p)
	if errors.Cause(err) != io.EOF {
		t.Fatalf("Expected io.EOF, got %v", err)
	}
	assertStacks(t, "eof", i, C{'a'}, nil)
	if !strings.Contains(err.Error(), "@proc=main") || i.Proc() != 0 {
		t.Errorf("Error does not locate the failing procedure: %v", err)
	}
}

func TestRun_multipleInputs(t *testing.T) {
	var out bytes.Buffer
	code := make([]vm.Instr, 0, 8)
	for n := 0; n < 4; n++ {
		code = append(code, op(vm.OpRead))
	}
	for n := 0; n < 4; n++ {
		code = append(code, op(vm.OpWrite))
	}
	p := &vm.Program{Procs: []vm.Proc{{Name: "main", Code: code}}}
	i := setup(t, nil, nil, vm.Input(strings.NewReader("cd")), vm.Input(strings.NewReader("ab")), vm.Output(&out))
	if err := i.Run(p); err != nil {
		t.Fatalf("%+v", err)
	}
	if got := out.String(); got != "dcba" {
		t.Errorf("Expected %q, got %q", "dcba", got)
	}
}

func TestRun_invalid(t *testing.T) {
	var tests = []struct {
		name string
		p    *vm.Program
	}{
		{"empty", &vm.Program{}},
		{"entry", &vm.Program{Procs: []vm.Proc{{Name: "main"}}, Entry: 1}},
		{"jump", &vm.Program{Procs: []vm.Proc{{Name: "main", Next: vm.Transfer{Kind: vm.Jump, Target: [2]int{3}}}}}},
		{"branch", &vm.Program{Procs: []vm.Proc{{Name: "main", Next: vm.Transfer{Kind: vm.Branch, Target: [2]int{0, -1}}}}}},
		{"const", &vm.Program{Procs: []vm.Proc{{Name: "main", Code: []vm.Instr{in(vm.OpStr, 0)}}}}},
	}
	for _, test := range tests {
		i := setup(t, nil, nil)
		if err := i.Run(test.p); err == nil {
			t.Errorf("%s: expected error", test.name)
		}
	}
}

func TestProgram_lookup(t *testing.T) {
	p := countdown(1)
	if n, ok := p.Proc("loop"); !ok || n != 1 {
		t.Errorf("Proc(loop) = %d, %v", n, ok)
	}
	if _, ok := p.Proc("nope"); ok {
		t.Error("Proc(nope) found")
	}
	if _, ok := p.Const("main.s0"); ok {
		t.Error("Const(main.s0) found")
	}
}
