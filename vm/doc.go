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

// Package vm implements the two stack machine Befreak programs are compiled
// to.
//
// The machine has two bounded stacks of 32 bits cells: the main stack and the
// control stack. A Program is a flat set of straight-line procedures. Each
// procedure runs a list of primitive instructions, then either halts, jumps to
// another procedure, or pops a flag off the control stack and jumps to one of
// two procedures.
//
// Every primitive has a dual undoing it, except for I/O and constant pushes (see
// Opcode.Inverse). This is what makes Befreak programs reversible.
//
// Stack overflow, stack underflow and division by zero are fatal runtime
// errors. They are reported by Run and Exec along with the state of the
// machine at the time of the error.
package vm
