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

// Package vm implements a Befunge-93 style interpreter.
//
// A program is a Grid of Tokens. The instruction pointer starts at (0, 0)
// heading right; each Step executes the token under the pointer and moves the
// pointer one cell in its current direction, wrapping around the edges: a
// horizontal move wraps around the length of the current row, a vertical
// move around the number of rows. The Put instruction writes to the grid at
// runtime and may grow it to the right and down.
//
// The stack holds 32 bits signed values. Popping an empty stack yields 0, so
// stack underflow is never an error. Division or modulo by zero does not trap:
// the result is read from the Input source instead.
//
//	instruction	char	stack	description
//	-----------	----	-----	----------------------------------------------
//	Add		+	ab-c	push a+b
//	Subtract	-	ab-c	push a-b
//	Multiply	*	ab-c	push a*b
//	Divide		/	ab-c	push a/b, truncated; if b is 0, read an integer
//	Modulo		%	ab-c	push a%b; if b is 0, read an integer
//	Not		!	a-b	push 1 if a is 0, 0 otherwise
//	Greater		`	ab-c	push 1 if a > b, 0 otherwise
//	Right		>		head right
//	Left		<		head left
//	Up		^		head up
//	Down		v		head down
//	Random		?		head in a random direction
//	HorizontalIf	_	a-	head right if a is 0, left otherwise
//	VerticalIf	|	a-	head down if a is 0, up otherwise
//	StringMode	"		toggle string mode
//	Duplicate	:	a-aa	duplicate the top value
//	Swap		\	ab-ba	swap the top two values
//	Discard		$	a-	drop the top value
//	PrintInt	.	a-	output a in decimal, followed by a space
//	PrintChar	,	a-	output the character with code a
//	ReadInt		&	-a	read an integer
//	ReadChar	~	-a	read a character code
//	Bridge		#		skip the next cell
//	Get		g	xy-v	push the character code at (x, y), 0 if outside the grid
//	Put		p	vxy-	store the character with code v at (x, y)
//	Quit		@		halt
//	Int		0-9	-n	push the digit value
//	Noop		space		do nothing
//
// In string mode, every token but StringMode pushes the code of the character
// it is drawn as.
//
// Any other character is a Char literal: a no-op outside of string mode.
package vm
