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

import "math/rand"

// Direction is the heading of the instruction pointer.
type Direction uint8

// Pointer headings. Right is the zero value and the initial heading.
const (
	Right Direction = iota
	Down
	Left
	Up
)

var dirNames = [...]string{"Right", "Down", "Left", "Up"}

func (d Direction) String() string {
	if int(d) < len(dirNames) {
		return dirNames[d]
	}
	return "Direction(?)"
}

// Delta returns the unit move along each axis.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Up:
		return 0, -1
	}
	return 0, 0
}

// RandomDirection picks one of the four headings with equal probability.
func RandomDirection(r *rand.Rand) Direction {
	return Direction(r.Intn(4))
}
