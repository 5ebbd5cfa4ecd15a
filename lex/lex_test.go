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

package lex_test

import (
	"testing"

	"github.com/db47h/befreak/grid"
	"github.com/db47h/befreak/lex"
	"github.com/pkg/errors"
)

func TestLex_number(t *testing.T) {
	g := grid.New([]string{"42(", "7", "("})
	pos := grid.Position{X: 0, Y: 0}
	ins, exit, err := lex.Lex(g, &pos, grid.East)
	if err != nil {
		t.Fatal(err)
	}
	if ins.Op != lex.OpNumber || ins.Value != 42 {
		t.Errorf("Expected Number(42), got %v %v", ins.Op, ins)
	}
	if exit.Kind != lex.Continue || exit.Dir != grid.East {
		t.Errorf("Expected Continue(East), got %v", exit)
	}
	if pos != (grid.Position{X: 1, Y: 0}) {
		t.Errorf("Expected position (1, 0), got %v", pos)
	}

	// vertical, single digit
	pos = grid.Position{X: 0, Y: 1}
	ins, _, err = lex.Lex(g, &pos, grid.South)
	if err != nil {
		t.Fatal(err)
	}
	if ins.Value != 7 || pos != (grid.Position{X: 0, Y: 1}) {
		t.Errorf("Expected Number(7) at (0, 1), got %v at %v", ins, pos)
	}
}

func TestLex_numberAccumulation(t *testing.T) {
	// each new digit is folded in, not the first one again
	g := grid.New([]string{"1230 "})
	pos := grid.Position{X: 0, Y: 0}
	ins, _, err := lex.Lex(g, &pos, grid.East)
	if err != nil {
		t.Fatal(err)
	}
	if ins.Value != 1230 {
		t.Errorf("Expected 1230, got %d", ins.Value)
	}
	// and backwards
	g = grid.New([]string{" 1230"})
	pos = grid.Position{X: 4, Y: 0}
	ins, _, err = lex.Lex(g, &pos, grid.West)
	if err != nil {
		t.Fatal(err)
	}
	if ins.Value != 321 || pos != (grid.Position{X: 1, Y: 0}) {
		t.Errorf("Expected 321 at (1, 0), got %d at %v", ins.Value, pos)
	}
}

func TestLex_string(t *testing.T) {
	g := grid.New([]string{`"hi"(`})
	pos := grid.Position{X: 0, Y: 0}
	ins, exit, err := lex.Lex(g, &pos, grid.East)
	if err != nil {
		t.Fatal(err)
	}
	if ins.Op != lex.OpString || ins.Text != "hi" {
		t.Errorf(`Expected String("hi"), got %v`, ins)
	}
	if pos != (grid.Position{X: 3, Y: 0}) {
		t.Errorf("Expected position on closing quote (3, 0), got %v", pos)
	}
	if exit.Kind != lex.Continue || exit.Dir != grid.East {
		t.Errorf("Expected Continue(East), got %v", exit)
	}

	g = grid.New([]string{`""`})
	pos = grid.Position{X: 0, Y: 0}
	ins, _, err = lex.Lex(g, &pos, grid.East)
	if err != nil {
		t.Fatal(err)
	}
	if ins.Text != "" || pos != (grid.Position{X: 1, Y: 0}) {
		t.Errorf("Expected empty string ending at (1, 0), got %v at %v", ins, pos)
	}
}

func TestLex_errors(t *testing.T) {
	var tests = []struct {
		rows  []string
		pos   grid.Position
		dir   grid.Direction
		check func(error) bool
	}{
		{[]string{"(x("}, grid.Position{X: 1, Y: 0}, grid.East, func(err error) bool {
			e, ok := err.(*lex.InvalidCharacterError)
			return ok && e.Char == 'x' && e.Pos == grid.Position{X: 1, Y: 0}
		}},
		{[]string{"(12"}, grid.Position{X: 1, Y: 0}, grid.East, func(err error) bool {
			e, ok := err.(*lex.OutOfBoundsLiteralError)
			return ok && e.Op == lex.OpNumber && e.Pos == grid.Position{X: 1, Y: 0}
		}},
		{[]string{`( "ab`}, grid.Position{X: 2, Y: 0}, grid.East, func(err error) bool {
			e, ok := err.(*lex.OutOfBoundsLiteralError)
			return ok && e.Op == lex.OpString && e.Pos == grid.Position{X: 2, Y: 0}
		}},
		{[]string{`"`, "a"}, grid.Position{X: 0, Y: 0}, grid.South, func(err error) bool {
			_, ok := err.(*lex.OutOfBoundsLiteralError)
			return ok
		}},
	}
	for _, test := range tests {
		pos := test.pos
		_, _, err := lex.Lex(grid.New(test.rows), &pos, test.dir)
		if err == nil || !test.check(errors.Cause(err)) {
			t.Errorf("%q at %v: unexpected error %v", test.rows, test.pos, err)
		}
	}
}

func TestLex_halt(t *testing.T) {
	g := grid.New([]string{"@"})
	for _, p := range []grid.Position{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: -1}} {
		pos := p
		ins, exit, err := lex.Lex(g, &pos, grid.East)
		if err != nil {
			t.Fatal(err)
		}
		if ins.Op != lex.OpHalt || exit.Kind != lex.Halt {
			t.Errorf("%v: expected Halt, got %v, %v", p, ins.Op, exit)
		}
	}
}

func TestLex_directions(t *testing.T) {
	N, S, E, W := grid.North, grid.South, grid.East, grid.West
	cont := func(d grid.Direction) lex.Exit { return lex.Exit{Kind: lex.Continue, Dir: d} }
	inv := func(d grid.Direction) lex.Exit { return lex.Exit{Kind: lex.ContinueInverted, Dir: d} }
	br := func(a, b grid.Direction) lex.Exit { return lex.Exit{Kind: lex.Branch, Dir: a, Alt: b} }

	var tests = []struct {
		glyph string
		exits [4]lex.Exit // N, S, E, W
	}{
		{`\`, [4]lex.Exit{cont(W), cont(E), cont(S), cont(N)}},
		{"/", [4]lex.Exit{cont(E), cont(W), cont(N), cont(S)}},
		{">", [4]lex.Exit{cont(E), cont(E), inv(W), br(N, S)}},
		{"<", [4]lex.Exit{cont(W), cont(W), br(S, N), inv(E)}},
		{"v", [4]lex.Exit{br(E, W), inv(N), cont(S), cont(S)}},
		{"^", [4]lex.Exit{inv(S), br(W, E), cont(N), cont(N)}},
		{"J", [4]lex.Exit{br(S, E), br(S, E), br(S, E), br(S, E)}},
		{"?", [4]lex.Exit{inv(N), inv(S), inv(E), inv(W)}},
		{"+", [4]lex.Exit{cont(N), cont(S), cont(E), cont(W)}},
	}
	g := func(s string) *grid.Grid { return grid.New([]string{s}) }
	for _, test := range tests {
		for d, want := range test.exits {
			pos := grid.Position{}
			_, got, err := lex.Lex(g(test.glyph), &pos, grid.Direction(d))
			if err != nil {
				t.Fatal(err)
			}
			if got != want {
				t.Errorf("%s entered %v: expected %v, got %v", test.glyph, grid.Direction(d), want, got)
			}
		}
	}
}

func TestLex_allGlyphs(t *testing.T) {
	seen := make(map[lex.Op]bool)
	for op := lex.Op(0); int(op) < lex.NumOps; op++ {
		if op == lex.OpNumber || op == lex.OpString {
			continue
		}
		c := op.Glyph()
		pos := grid.Position{}
		ins, _, err := lex.Lex(grid.New([]string{string(c)}), &pos, grid.East)
		if err != nil {
			t.Errorf("%v: %v", op, err)
			continue
		}
		if ins.Op != op {
			t.Errorf("Glyph %q decoded as %v, expected %v", c, ins.Op, op)
		}
		seen[op] = true
	}
	if len(seen) != lex.NumOps-2 {
		t.Errorf("Expected %d glyphs, got %d", lex.NumOps-2, len(seen))
	}
}
