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

package asm_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/db47h/befreak/asm"
	"github.com/db47h/befreak/cfg"
	"github.com/db47h/befreak/codegen"
	"github.com/db47h/befreak/grid"
	"github.com/db47h/befreak/vm"
)

// Format the program generated for a short grid.
func ExampleFormat() {
	g, err := cfg.Build(grid.New([]string{`@(72w"!i"ww`}))
	if err != nil {
		panic(err)
	}
	p, err := codegen.Generate(g)
	if err != nil {
		panic(err)
	}
	if err = asm.Format(os.Stdout, p); err != nil {
		panic(err)
	}

	// Output:
	// .entry main
	// .const bf_1_0_E_normal.s0 "!i"
	//
	// :bf_1_0_E_normal
	//	push0
	//	num 72
	//	write
	//	str bf_1_0_E_normal.s0
	//	write
	//	write
	//	halt
	//
	// :main
	//	jump bf_1_0_E_normal
}

// Assemble a count down loop and run it.
func ExampleAssemble() {
	code := `
:main	push0 num 5
	jump loop
:loop	( print the digit and decrement )
	dup num 48 write dec
	cpush 1 push0 eq pop0
	branch loop done
:done	pop0 halt
`
	p, err := asm.Assemble("countdown", strings.NewReader(code))
	if err != nil {
		fmt.Println(err)
		return
	}
	i, err := vm.New(vm.Output(os.Stdout))
	if err != nil {
		panic(err)
	}
	if err = i.Run(p); err != nil {
		panic(err)
	}
	fmt.Println()
	fmt.Println(i.Main.Depth(), i.Control.Depth())

	// Output:
	// 54321
	// 0 0
}
