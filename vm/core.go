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
	"strconv"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Depth returns the stack depth.
func (i *Instance) Depth() int {
	return len(i.stack)
}

// Push pushes the argument on top of the stack.
func (i *Instance) Push(v Cell) {
	i.stack = append(i.stack, v)
}

// Pop pops the value on top of the stack and returns it. Popping an empty
// stack returns 0.
func (i *Instance) Pop() Cell {
	l := len(i.stack) - 1
	if l < 0 {
		return 0
	}
	v := i.stack[l]
	i.stack = i.stack[:l]
	return v
}

// Peek returns the value on top of the stack without removing it, or 0 if the
// stack is empty.
func (i *Instance) Peek() Cell {
	if l := len(i.stack); l > 0 {
		return i.stack[l-1]
	}
	return 0
}

// peekAt returns the value n positions below the top of the stack, or 0 if
// the stack is not that deep.
func (i *Instance) peekAt(n int) Cell {
	if l := len(i.stack) - 1 - n; l >= 0 {
		return i.stack[l]
	}
	return 0
}

// drop removes up to n values from the top of the stack.
func (i *Instance) drop(n int) {
	if n > len(i.stack) {
		n = len(i.stack)
	}
	i.stack = i.stack[:len(i.stack)-n]
}

func toRune(v Cell) (rune, error) {
	r := rune(v)
	if r < 0 || !utf8.ValidRune(r) {
		return utf8.RuneError, errors.Wrapf(ErrInvalidChar, "%d", v)
	}
	return r, nil
}

func (i *Instance) emit(b []byte) error {
	i.lastOutput = append(i.lastOutput, b...)
	if i.output != nil {
		if _, err := i.output.Write(b); err != nil {
			return errors.Wrap(err, "write failed")
		}
	}
	return nil
}

// flush makes pending output visible before a potentially blocking read.
func (i *Instance) flush() error {
	if f, ok := i.output.(flusher); ok {
		return errors.Wrap(f.Flush(), "flush failed")
	}
	return nil
}

func (i *Instance) readInt() (Cell, error) {
	if i.input == nil {
		return 0, ErrNoInput
	}
	if err := i.flush(); err != nil {
		return 0, err
	}
	return i.input.ReadInt()
}

func (i *Instance) readChar() (Cell, error) {
	if i.input == nil {
		return 0, ErrNoInput
	}
	if err := i.flush(); err != nil {
		return 0, err
	}
	return i.input.ReadChar()
}

// advance moves the instruction pointer one cell forward. Horizontal moves wrap
// around the current row's length, vertical moves around the grid height.
func (i *Instance) advance() {
	dx, dy := i.Dir.Delta()
	if dx != 0 {
		w := i.grid.RowWidth(i.Y)
		if w == 0 {
			w = i.grid.Width()
		}
		i.X = ((i.X+dx)%w + w) % w
	}
	if dy != 0 {
		h := i.grid.Height()
		i.Y = ((i.Y+dy)%h + h) % h
	}
}

// Step executes the instruction under the instruction pointer, then moves the
// pointer. Stepping a halted instance returns ErrHalted.
//
// If an error occurs, the instruction pointer is left on the instruction that
// triggered the error and the stack and grid are left as they were, so the step
// can be retried. Errors from the input source are returned with their
// cause intact, so that callers can check for io.EOF with errors.Cause.
func (i *Instance) Step() error {
	if !i.running {
		return ErrHalted
	}
	i.lastOutput = i.lastOutput[:0]
	// the pointer never leaves the grid, but an out of bounds read is a Noop
	t, _ := i.grid.Get(i.X, i.Y)
	var err error
	if i.stringMode {
		err = i.execString(t)
	} else {
		err = i.exec(t)
	}
	if err != nil {
		return errors.Wrapf(err, "@(%d,%d) %v", i.X, i.Y, t)
	}
	i.advance()
	i.insCount++
	return nil
}

func (i *Instance) execString(t Token) error {
	if t.op == OpStringMode {
		i.stringMode = false
		return nil
	}
	i.Push(Cell(t.Rune()))
	return nil
}

func (i *Instance) exec(t Token) error {
	switch t.op {
	case OpNoop, OpChar:
	case OpAdd:
		rhs := i.Pop()
		i.Push(i.Pop() + rhs)
	case OpSubtract:
		rhs := i.Pop()
		i.Push(i.Pop() - rhs)
	case OpMultiply:
		rhs := i.Pop()
		i.Push(i.Pop() * rhs)
	case OpDivide, OpModulo:
		if i.Peek() == 0 {
			// operands stay on the stack until the replacement value is read
			v, err := i.readInt()
			if err != nil {
				return err
			}
			i.drop(2)
			i.Push(v)
			break
		}
		rhs, lhs := i.Pop(), i.Pop()
		if t.op == OpDivide {
			i.Push(lhs / rhs)
		} else {
			i.Push(lhs % rhs)
		}
	case OpNot:
		if i.Pop() == 0 {
			i.Push(1)
		} else {
			i.Push(0)
		}
	case OpGreater:
		rhs := i.Pop()
		if i.Pop() > rhs {
			i.Push(1)
		} else {
			i.Push(0)
		}
	case OpRight:
		i.Dir = Right
	case OpLeft:
		i.Dir = Left
	case OpUp:
		i.Dir = Up
	case OpDown:
		i.Dir = Down
	case OpRandom:
		i.Dir = RandomDirection(i.rnd)
	case OpHorizontalIf:
		if i.Pop() == 0 {
			i.Dir = Right
		} else {
			i.Dir = Left
		}
	case OpVerticalIf:
		if i.Pop() == 0 {
			i.Dir = Down
		} else {
			i.Dir = Up
		}
	case OpStringMode:
		i.stringMode = true
	case OpDuplicate:
		i.Push(i.Peek())
	case OpSwap:
		top, next := i.Pop(), i.Pop()
		i.Push(top)
		i.Push(next)
	case OpDiscard:
		i.Pop()
	case OpPrintInt:
		b := make([]byte, 0, 12)
		b = strconv.AppendInt(b, int64(i.Peek()), 10)
		if err := i.emit(append(b, ' ')); err != nil {
			return err
		}
		i.Pop()
	case OpPrintChar:
		r, err := toRune(i.Peek())
		if err != nil {
			return err
		}
		b := [utf8.UTFMax]byte{}
		if err = i.emit(b[:utf8.EncodeRune(b[:], r)]); err != nil {
			return err
		}
		i.Pop()
	case OpReadInt:
		v, err := i.readInt()
		if err != nil {
			return err
		}
		i.Push(v)
	case OpReadChar:
		v, err := i.readChar()
		if err != nil {
			return err
		}
		i.Push(v)
	case OpBridge:
		i.advance()
	case OpGet:
		y, x := i.Pop(), i.Pop()
		if c, ok := i.grid.Get(int(x), int(y)); ok {
			i.Push(Cell(c.Rune()))
		} else {
			i.Push(0)
		}
	case OpPut:
		y, x, v := i.peekAt(0), i.peekAt(1), i.peekAt(2)
		r, err := toRune(v)
		if err != nil {
			return err
		}
		if err = i.grid.Set(int(x), int(y), TokenOf(r)); err != nil {
			return err
		}
		i.drop(3)
	case OpQuit:
		i.running = false
	case OpInt:
		i.Push(t.Value())
	default:
		return errors.Errorf("illegal instruction %v", t.op)
	}
	return nil
}

// Run steps the program until it halts.
//
// Run returns nil once a Quit instruction has been executed. If an error
// occurs, the instruction pointer will point to the instruction that triggered
// the error. If a step limit is set and reached, Run returns ErrStepLimit and
// can be called again to resume execution, with a higher limit.
//
// If the input source runs dry, the error's cause will be io.EOF. This is a
// normal exit condition in most use cases.
func (i *Instance) Run() error {
	for i.running {
		if i.limit > 0 && i.insCount >= i.limit {
			return ErrStepLimit
		}
		if err := i.Step(); err != nil {
			return err
		}
	}
	return nil
}
