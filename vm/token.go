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

import "strconv"

// Op identifies the instruction held by a Token.
type Op uint8

// Instruction set. OpNoop is the zero value so that the zero Token is a no-op.
const (
	OpNoop Op = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo
	OpNot
	OpGreater
	OpRight
	OpLeft
	OpUp
	OpDown
	OpRandom
	OpHorizontalIf
	OpVerticalIf
	OpStringMode
	OpDuplicate
	OpSwap
	OpDiscard
	OpPrintInt
	OpPrintChar
	OpReadInt
	OpReadChar
	OpBridge
	OpGet
	OpPut
	OpQuit
	OpInt
	OpChar
	opCount
)

var opRunes = [...]rune{
	OpNoop:         ' ',
	OpAdd:          '+',
	OpSubtract:     '-',
	OpMultiply:     '*',
	OpDivide:       '/',
	OpModulo:       '%',
	OpNot:          '!',
	OpGreater:      '`',
	OpRight:        '>',
	OpLeft:         '<',
	OpUp:           '^',
	OpDown:         'v',
	OpRandom:       '?',
	OpHorizontalIf: '_',
	OpVerticalIf:   '|',
	OpStringMode:   '"',
	OpDuplicate:    ':',
	OpSwap:         '\\',
	OpDiscard:      '$',
	OpPrintInt:     '.',
	OpPrintChar:    ',',
	OpReadInt:      '&',
	OpReadChar:     '~',
	OpBridge:       '#',
	OpGet:          'g',
	OpPut:          'p',
	OpQuit:         '@',
}

var opNames = [...]string{
	OpNoop:         "Noop",
	OpAdd:          "Add",
	OpSubtract:     "Subtract",
	OpMultiply:     "Multiply",
	OpDivide:       "Divide",
	OpModulo:       "Modulo",
	OpNot:          "Not",
	OpGreater:      "Greater",
	OpRight:        "Right",
	OpLeft:         "Left",
	OpUp:           "Up",
	OpDown:         "Down",
	OpRandom:       "Random",
	OpHorizontalIf: "HorizontalIf",
	OpVerticalIf:   "VerticalIf",
	OpStringMode:   "StringMode",
	OpDuplicate:    "Duplicate",
	OpSwap:         "Swap",
	OpDiscard:      "Discard",
	OpPrintInt:     "PrintInt",
	OpPrintChar:    "PrintChar",
	OpReadInt:      "ReadInt",
	OpReadChar:     "ReadChar",
	OpBridge:       "Bridge",
	OpGet:          "Get",
	OpPut:          "Put",
	OpQuit:         "Quit",
	OpInt:          "Int",
	OpChar:         "Char",
}

// runeOps is the reverse of opRunes.
var runeOps map[rune]Op

func init() {
	runeOps = make(map[rune]Op, len(opRunes))
	for op, r := range opRunes {
		runeOps[r] = Op(op)
	}
}

func (op Op) String() string {
	if op < opCount {
		return opNames[op]
	}
	return "Op(" + strconv.Itoa(int(op)) + ")"
}

// Token is the immutable content of a grid cell.
//
// Tokens are comparable values. The zero Token is Noop.
type Token struct {
	op Op
	r  rune // digit value for OpInt, the character for OpChar
}

// Noop is the filler token, drawn as a space.
var Noop = Token{}

// Int returns the literal token for digit n. n must be in the range [0, 9].
func Int(n int) Token {
	if n < 0 || n > 9 {
		panic("vm: Int literal out of range: " + strconv.Itoa(n))
	}
	return Token{OpInt, rune(n)}
}

// Char returns the literal token for a character with no instruction meaning.
// It panics if r is a digit or an instruction character; use TokenOf for those.
func Char(r rune) Token {
	if t := TokenOf(r); t.op != OpChar {
		panic("vm: Char literal for instruction character " + strconv.QuoteRune(r))
	}
	return Token{OpChar, r}
}

// TokenOf maps a character to its token. Digits map to Int literals,
// characters of the instruction set to their instruction and any other
// character to a Char literal.
func TokenOf(r rune) Token {
	if r >= '0' && r <= '9' {
		return Token{OpInt, r - '0'}
	}
	if op, ok := runeOps[r]; ok {
		return Token{op: op}
	}
	return Token{OpChar, r}
}

// Op returns the token's instruction.
func (t Token) Op() Op { return t.op }

// Rune returns the character the token is drawn as. TokenOf(t.Rune()) == t
// holds for every token.
func (t Token) Rune() rune {
	switch t.op {
	case OpInt:
		return '0' + t.r
	case OpChar:
		return t.r
	}
	return opRunes[t.op]
}

// IsInt returns the digit value of an Int literal. ok is false for any other
// token.
func (t Token) IsInt() (n int, ok bool) {
	if t.op != OpInt {
		return 0, false
	}
	return int(t.r), true
}

// IsChar returns the character of a Char literal. ok is false for any other
// token.
func (t Token) IsChar() (r rune, ok bool) {
	if t.op != OpChar {
		return 0, false
	}
	return t.r, true
}

// Value returns the digit value of an Int literal, or the code of a Char
// literal. It returns 0 for instructions.
func (t Token) Value() Cell {
	switch t.op {
	case OpInt, OpChar:
		return Cell(t.r)
	}
	return 0
}

func (t Token) String() string {
	switch t.op {
	case OpInt:
		return "Int(" + strconv.Itoa(int(t.r)) + ")"
	case OpChar:
		return "Char(" + strconv.QuoteRune(t.r) + ")"
	}
	return t.op.String()
}
