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

// Package asm provides utility functions to format and parse Befreak machine
// programs in text form.
//
// A program is a list of directives and procedure definitions. Input is split
// at white space (space, tab or new line) into tokens, so that more than one
// instruction may appear on the same line:
//
//	.entry main
//	.const bf_1_0_E_normal.s0 "hi"
//
//	:bf_1_0_E_normal
//		push0
//		num 42
//		str bf_1_0_E_normal.s0
//		branch bf_2_2_S_normal bf_2_0_N_normal
//	:main	jump bf_1_0_E_normal
//
// Supported mnemonics:
//
//	x is the value on top of the main stack, y the next one and z the third.
//	c is the value on top of the control stack. Instructions with a check
//	mark in the "arg" column expect an argument.
//
//	asm		arg	inverse		description
//	---		---	-------		------------------------------------------------
//	nop			nop		no-op
//	num		✓	num		xor x with the argument
//	push0			pop0		push 0
//	pop0			push0		drop x, which should be 0
//	tocontrol		tomain		move x to the control stack
//	tomain			tocontrol	move c to the main stack
//	swapstacks		swapstacks	exchange x and c
//	write			-		pop x and write it as a character
//	read			-		read a character and push it
//	inc, dec		dec, inc	increment, decrement x
//	add, sub		sub, add	replace y with y+x, y-x
//	div			mul		replace x y with y/x y%x x
//	mul			div		replace q r x with q*x+r x
//	not			not		bitwise not of x
//	and, or, xor		self		xor z with y&x, y|x, y^x
//	rotl, rotr		rotr, rotl	rotate y left, right by x bits
//	toggle			toggle		c = 1 if c is 0, 0 otherwise
//	eq, lt, gt		self		toggle c if y == x, y < x, y > x
//	swap			swap		exchange x and y
//	dig			bury		z y x -> y x z
//	bury			dig		z y x -> x z y
//	flip			flip		z y x -> x y z
//	swaplower		swaplower	z y x -> y z x
//	over			under		y x -> y x y
//	under			over		y x y -> y x
//	dup			undup		push x
//	undup			dup		drop x, which should be equal to y
//	cpush		✓	-		push the argument onto the control stack
//	str		✓	-		push the characters of a constant
//
// Procedures:
//
// Procedures are defined by prefixing their name with a colon (:). Each
// procedure must end with exactly one of:
//
//	halt		stop the machine
//	jump P		continue with procedure P
//	branch T F	pop c, continue with T if it is not 0, F otherwise
//
// Procedure names can be used before their definition.
//
// Comments:
//
// Comments are placed between parentheses, i.e. '(' and ')'. The body of the
// comment must be separated from the enclosing parentheses by a space:
//
//	( this is a valid comment )
//	(this is not)
//
// Directives:
//
//	.const <NAME> <string>
//
// defines a constant. The string is a Go double-quoted string literal.
// Constants are referenced by name in str instructions.
//
//	.entry <NAME>
//
// sets the entry procedure. If there is no .entry directive, execution starts
// with the procedure named "main".
package asm
