// This file is part of fungus - https://github.com/db47h/fungus
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
	"strings"

	"github.com/pkg/errors"
)

// Grid is the program space: a two dimensional array of tokens that grows on
// demand.
//
// Rows keep the length they were loaded or written with. Reading past the end
// of a row, but left of Width, returns Noop. The grid never shrinks.
type Grid struct {
	rows  [][]Token
	width int
}

// NewGrid returns a new Grid holding rows. The grid takes ownership of the
// slices.
func NewGrid(rows [][]Token) *Grid {
	g := &Grid{rows: rows}
	for y, r := range rows {
		// rows must not share spare capacity, or growing one would overwrite the next
		rows[y] = r[:len(r):len(r)]
		if len(r) > g.width {
			g.width = len(r)
		}
	}
	return g
}

// Width returns the length of the longest row.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return len(g.rows) }

// RowWidth returns the stored length of row y, or 0 if y is out of bounds.
func (g *Grid) RowWidth(y int) int {
	if y < 0 || y >= len(g.rows) {
		return 0
	}
	return len(g.rows[y])
}

// Get returns the token at (x, y). The boolean result is false if and only if
// the coordinates lie outside [0, Width) × [0, Height).
func (g *Grid) Get(x, y int) (Token, bool) {
	if x < 0 || y < 0 || x >= g.width || y >= len(g.rows) {
		return Noop, false
	}
	row := g.rows[y]
	if x >= len(row) {
		return Noop, true
	}
	return row[x], true
}

// MaxCoord bounds the coordinates accepted by Set.
const MaxCoord = 1 << 16

// Set stores t at (x, y), growing the grid with Noop padding as needed.
// Negative coordinates yield ErrNegativeCoord: the grid only extends right and
// down. Coordinates at or past MaxCoord yield ErrCoordLimit.
func (g *Grid) Set(x, y int, t Token) error {
	if x < 0 || y < 0 {
		return errors.Wrapf(ErrNegativeCoord, "set (%d,%d)", x, y)
	}
	if x >= MaxCoord || y >= MaxCoord {
		return errors.Wrapf(ErrCoordLimit, "set (%d,%d)", x, y)
	}
	for len(g.rows) <= y {
		g.rows = append(g.rows, nil)
	}
	row := g.rows[y]
	for len(row) <= x {
		row = append(row, Noop)
	}
	row[x] = t
	g.rows[y] = row
	if x >= g.width {
		g.width = x + 1
	}
	return nil
}

// Row returns a copy of row y as text.
func (g *Grid) Row(y int) string {
	if y < 0 || y >= len(g.rows) {
		return ""
	}
	var b strings.Builder
	for _, t := range g.rows[y] {
		b.WriteRune(t.Rune())
	}
	return b.String()
}

// String renders the grid as text, one line per row.
func (g *Grid) String() string {
	var b strings.Builder
	for y := range g.rows {
		if y > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(g.Row(y))
	}
	return b.String()
}
