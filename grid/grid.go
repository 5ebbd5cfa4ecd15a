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

// Package grid implements the rectangular character grid Befreak programs are
// written on.
//
// A Grid is immutable once built. Rows shorter than the widest row are padded
// with blank cells so that every row has the same width. Lookups past any edge
// report a missing cell rather than wrapping around.
package grid

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Blank is the rune used to pad short rows.
const Blank = ' '

// StartMarker is the glyph marking the program entry point.
const StartMarker = '@'

// Direction is one of the four cardinal directions the instruction pointer can
// travel in.
type Direction uint8

// Directions.
const (
	North Direction = iota
	South
	East
	West
)

var dirNames = [...]string{"North", "South", "East", "West"}

func (d Direction) String() string {
	if int(d) < len(dirNames) {
		return dirNames[d]
	}
	return "Direction(" + strconv.Itoa(int(d)) + ")"
}

// Abbrev returns the single letter abbreviation of d: N, S, E or W.
func (d Direction) Abbrev() string {
	return d.String()[:1]
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	return d ^ 1
}

// Position is a (column, row) pair. The origin is the top left cell.
type Position struct {
	X, Y int
}

// Step returns the position adjacent to p in direction d. No bounds checking
// is done.
func (p Position) Step(d Direction) Position {
	switch d {
	case North:
		p.Y--
	case South:
		p.Y++
	case East:
		p.X++
	case West:
		p.X--
	}
	return p
}

func (p Position) String() string {
	return "(" + strconv.Itoa(p.X) + ", " + strconv.Itoa(p.Y) + ")"
}

// ErrMissingStart is returned by Grid.Start when the grid has no start marker.
var ErrMissingStart = errors.New("missing start marker '@'")

// MultipleStartError is returned by Grid.Start when more than one start marker
// is found.
type MultipleStartError struct {
	Positions []Position
}

func (e *MultipleStartError) Error() string {
	var b strings.Builder
	b.WriteString("multiple start markers '@' at")
	for i, p := range e.Positions {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte(' ')
		b.WriteString(p.String())
	}
	return b.String()
}

// Grid is a rectangular, read-only grid of runes.
type Grid struct {
	cells [][]rune
	width int
}

// New builds a grid from the given rows, right-padding them with Blank to the
// length of the longest row.
func New(rows []string) *Grid {
	g := &Grid{cells: make([][]rune, len(rows))}
	for y, r := range rows {
		g.cells[y] = []rune(r)
		if l := len(g.cells[y]); l > g.width {
			g.width = l
		}
	}
	for y, r := range g.cells {
		for len(r) < g.width {
			r = append(r, Blank)
		}
		g.cells[y] = r
	}
	return g
}

// Read reads source text from r and returns the corresponding grid. Line
// terminators (LF or CRLF) are not part of the grid.
func Read(r io.Reader) (*Grid, error) {
	var rows []string
	br := bufio.NewReader(r)
	for {
		l, err := br.ReadString('\n')
		if len(l) > 0 {
			l = strings.TrimSuffix(l, "\n")
			rows = append(rows, strings.TrimSuffix(l, "\r"))
		}
		if err == io.EOF {
			return New(rows), nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "read failed")
		}
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return len(g.cells) }

// Get returns the rune at position p. The boolean result is false if p lies
// outside of the grid.
func (g *Grid) Get(p Position) (rune, bool) {
	if p.Y < 0 || p.Y >= len(g.cells) || p.X < 0 || p.X >= g.width {
		return 0, false
	}
	return g.cells[p.Y][p.X], true
}

// Start returns the position of the start marker. Exactly one marker must be
// present in the grid.
func (g *Grid) Start() (Position, error) {
	var found []Position
	for y, r := range g.cells {
		for x, c := range r {
			if c == StartMarker {
				found = append(found, Position{x, y})
			}
		}
	}
	switch len(found) {
	case 0:
		return Position{}, ErrMissingStart
	case 1:
		return found[0], nil
	default:
		return Position{}, &MultipleStartError{found}
	}
}
