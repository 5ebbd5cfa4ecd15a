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

// The befreak command line tool compiles programs written in Befreak, a two
// dimensional reversible language, and runs them on the machine of package
// github.com/db47h/befreak/vm.
//
// Usage:
//
//	befreak [flags] file
//
//	-asm
//		  the input file is assembly, as generated by befreak
//	-debug
//		  enable debug diagnostics
//	-dump
//		  dump stacks upon exit
//	-graph
//		  print the control flow graph and exit
//	-noraw
//		  disable raw terminal IO
//	-o filename
//		  write generated code to filename (default stdout)
//	-run
//		  run the program instead of writing the generated code
//	-stack int
//		  stack size in cells (default 40)
//	-with filename
//		  Add filename to the input list (can be specified multiple times)
//
// By default, befreak writes the generated code in the text form described in
// package github.com/db47h/befreak/asm. That output can be fed back to
// befreak with the -asm flag.
//
// -debug: log compilation steps and print a full stacktrace, the stacks and
// the failing procedure should the program crash. Defaults to the value of
// the BEFREAK_DEBUG environment variable.
//
// -noraw: when running, befreak switches the terminal to raw mode unless stdin
// has been redirected, so that the r instruction reads single keystrokes.
// This flag disables this behavior. Defaults to the value of BEFREAK_NORAW.
//
// -stack: capacity of both the main and control stacks. Defaults to the value
// of BEFREAK_STACK_SIZE, or 40.
//
// -with: befreak will feed the specified file to the program as input before
// stdin. If specified multiple times, files will be fed to the program in order
// of appearance on the command line.
package main
