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

package vm_test

import (
	"testing"

	"github.com/db47h/fungus/vm"
	"github.com/pkg/errors"
)

func tokens(s string) []vm.Token {
	var row []vm.Token
	for _, r := range s {
		row = append(row, vm.TokenOf(r))
	}
	return row
}

func TestGrid_Get(t *testing.T) {
	g := vm.NewGrid([][]vm.Token{tokens("12345"), tokens("ab"), nil})
	if w, h := g.Width(), g.Height(); w != 5 || h != 3 {
		t.Fatalf("Expected 5x3 grid, got %dx%d", w, h)
	}
	var gets = [...]struct {
		x, y int
		tok  vm.Token
		ok   bool
	}{
		{0, 0, vm.Int(1), true},
		{4, 0, vm.Int(5), true},
		{1, 1, vm.Char('b'), true},
		{4, 1, vm.Noop, true},
		{2, 2, vm.Noop, true},
		{5, 0, vm.Noop, false},
		{0, 3, vm.Noop, false},
		{-1, 0, vm.Noop, false},
		{0, -1, vm.Noop, false},
	}
	for _, tt := range gets {
		tok, ok := g.Get(tt.x, tt.y)
		if tok != tt.tok || ok != tt.ok {
			t.Errorf("Get(%d,%d): expected %v, %v, got %v, %v", tt.x, tt.y, tt.tok, tt.ok, tok, ok)
		}
	}
	if w := g.RowWidth(1); w != 2 {
		t.Errorf("RowWidth(1): expected 2, got %d", w)
	}
	if w := g.RowWidth(7); w != 0 {
		t.Errorf("RowWidth(7): expected 0, got %d", w)
	}
}

func TestGrid_Set(t *testing.T) {
	g := vm.NewGrid([][]vm.Token{tokens("ab")})
	if err := g.Set(1, 0, vm.TokenOf('@')); err != nil {
		t.Fatal(err)
	}
	if tok, _ := g.Get(1, 0); tok != vm.TokenOf('@') {
		t.Errorf("Expected Quit, got %v", tok)
	}
	// writing at x == width must make the cell visible
	if err := g.Set(2, 0, vm.Int(3)); err != nil {
		t.Fatal(err)
	}
	if tok, ok := g.Get(2, 0); !ok || tok != vm.Int(3) {
		t.Errorf("Expected Int(3), got %v, %v", tok, ok)
	}
	if err := g.Set(4, 2, vm.Char('z')); err != nil {
		t.Fatal(err)
	}
	if w, h := g.Width(), g.Height(); w != 5 || h != 3 {
		t.Fatalf("Expected 5x3 grid, got %dx%d", w, h)
	}
	if s := g.String(); s != "a@3\n\n    z" {
		t.Errorf("Unexpected grid %q", s)
	}
	// the grid never shrinks
	if err := g.Set(0, 0, vm.Noop); err != nil {
		t.Fatal(err)
	}
	if w, h := g.Width(), g.Height(); w != 5 || h != 3 {
		t.Fatalf("Expected 5x3 grid, got %dx%d", w, h)
	}
}

func TestGrid_SetNegative(t *testing.T) {
	g := vm.NewGrid(nil)
	for _, c := range [][2]int{{-1, 0}, {0, -1}, {-3, -3}} {
		err := g.Set(c[0], c[1], vm.Noop)
		if errors.Cause(err) != vm.ErrNegativeCoord {
			t.Errorf("Set(%d,%d): expected ErrNegativeCoord, got %v", c[0], c[1], err)
		}
	}
	if g.Height() != 0 || g.Width() != 0 {
		t.Error("failed Set modified the grid")
	}
}

func TestNewGrid_sharedBacking(t *testing.T) {
	buf := tokens("1234")
	g := vm.NewGrid([][]vm.Token{buf[0:2], buf[2:4]})
	if err := g.Set(2, 0, vm.Int(9)); err != nil {
		t.Fatal(err)
	}
	if s := g.String(); s != "129\n34" {
		t.Errorf("Unexpected grid %q", s)
	}
}

func TestGrid_SetLimit(t *testing.T) {
	g := vm.NewGrid(nil)
	for _, c := range [][2]int{{vm.MaxCoord, 0}, {0, vm.MaxCoord}, {2147483647, 2147483647}} {
		err := g.Set(c[0], c[1], vm.Noop)
		if errors.Cause(err) != vm.ErrCoordLimit {
			t.Errorf("Set(%d,%d): expected ErrCoordLimit, got %v", c[0], c[1], err)
		}
	}
	if g.Height() != 0 || g.Width() != 0 {
		t.Error("failed Set modified the grid")
	}
	if err := g.Set(vm.MaxCoord-1, 1, vm.Int(1)); err != nil {
		t.Fatal(err)
	}
	if w, h := g.Width(), g.Height(); w != vm.MaxCoord || h != 2 {
		t.Errorf("Expected %dx2 grid, got %dx%d", vm.MaxCoord, w, h)
	}
}
