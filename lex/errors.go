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

package lex

import (
	"fmt"

	"github.com/db47h/befreak/grid"
)

// InvalidCharacterError is returned by Lex when it encounters a glyph outside
// of the instruction set.
type InvalidCharacterError struct {
	Char rune
	Pos  grid.Position
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("%v: invalid character %q", e.Pos, e.Char)
}

// OutOfBoundsLiteralError is returned by Lex when a number or string literal
// runs off the grid edge before being terminated. Pos is the first cell of
// the literal.
type OutOfBoundsLiteralError struct {
	Op  Op
	Pos grid.Position
}

func (e *OutOfBoundsLiteralError) Error() string {
	kind := "number"
	if e.Op == OpString {
		kind = "string"
	}
	return fmt.Sprintf("%v: %s literal runs off the grid", e.Pos, kind)
}
