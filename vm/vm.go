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
	"io"
	"math/rand"
	"time"

	"github.com/pkg/errors"
)

// Cell is the type of values on the stack.
type Cell int32

// Errors returned by Step and Run. They may be wrapped; use errors.Cause to
// test for them.
var (
	ErrHalted        = errors.New("program halted")
	ErrStepLimit     = errors.New("step limit reached")
	ErrNegativeCoord = errors.New("negative grid coordinate")
	ErrCoordLimit    = errors.New("grid coordinate too large")
	ErrInvalidChar   = errors.New("invalid character code")
	ErrNoInput       = errors.New("no input source")
)

// Instance represents an interpreter instance: the program grid, the stack and
// the instruction pointer.
type Instance struct {
	X, Y       int       // Instruction pointer
	Dir        Direction // Instruction pointer heading
	grid       *Grid
	stack      []Cell
	running    bool
	stringMode bool
	lastOutput []byte
	insCount   int64
	limit      int64
	input      Input
	output     io.Writer
	rnd        *rand.Rand
}

// Option interface
type Option func(*Instance) error

// InputReader pushes the given reader on top of the input stack. It only
// applies if the instance uses a ReaderInput, which is the default.
func InputReader(r io.Reader) Option {
	return func(i *Instance) error {
		ri, ok := i.input.(*ReaderInput)
		if !ok {
			return errors.New("InputReader option requires a ReaderInput source")
		}
		ri.Push(r)
		return nil
	}
}

// InputSource replaces the instance's input source.
func InputSource(src Input) Option {
	return func(i *Instance) error {
		i.input = src
		return nil
	}
}

// Output configures a writer that receives all emitted text as it is
// produced. If w implements Flush() error, it is flushed before each blocking
// read from the input source.
func Output(w io.Writer) Option {
	return func(i *Instance) error {
		i.output = w
		return nil
	}
}

// Rand sets the random number generator used by the Random instruction.
func Rand(r *rand.Rand) Option {
	return func(i *Instance) error {
		if r == nil {
			return errors.New("nil random source")
		}
		i.rnd = r
		return nil
	}
}

// Seed seeds a new random number generator for the Random instruction.
func Seed(seed int64) Option {
	return Rand(rand.New(rand.NewSource(seed)))
}

// StepLimit makes Run return ErrStepLimit after n steps. A value <= 0 removes
// the limit.
func StepLimit(n int64) Option {
	return func(i *Instance) error {
		i.limit = n
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new interpreter instance running the program in g.
//
// The instruction pointer starts at (0, 0) heading Right. An empty grid is
// given a single Noop cell. Unless configured otherwise, the instance reads
// input from an empty ReaderInput, discards output (it is still available
// through LastOutput) and uses a time seeded random number generator.
//
// Options will be set by calling SetOptions.
func New(g *Grid, opts ...Option) (*Instance, error) {
	if g == nil {
		g = NewGrid(nil)
	}
	if g.Height() == 0 || g.Width() == 0 {
		if err := g.Set(0, 0, Noop); err != nil {
			return nil, err
		}
	}
	i := &Instance{
		grid:    g,
		running: true,
		input:   NewReaderInput(),
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	if i.rnd == nil {
		i.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return i, nil
}

// Grid returns the program grid. It should not be modified while the
// program is running.
func (i *Instance) Grid() *Grid {
	return i.grid
}

// Data returns the stack, bottom first. Value changes will be reflected in the
// instance's stack, but re-slicing will not affect it. To add/remove values,
// use the Push and Pop functions.
func (i *Instance) Data() []Cell {
	return i.stack
}

// Running returns false once the program has executed a Quit instruction.
func (i *Instance) Running() bool {
	return i.running
}

// StringMode reports whether the instance is in string mode.
func (i *Instance) StringMode() bool {
	return i.stringMode
}

// LastOutput returns the text emitted by the most recent step, if any.
func (i *Instance) LastOutput() string {
	return string(i.lastOutput)
}

// InstructionCount returns the number of steps executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// Snapshot is a read-only view of an instance's state, suitable for rendering
// by a debugger or serialization.
type Snapshot struct {
	Grid       []string  `cbor:"1,keyasint"`
	X          int       `cbor:"2,keyasint"`
	Y          int       `cbor:"3,keyasint"`
	Dir        Direction `cbor:"4,keyasint"`
	StringMode bool      `cbor:"5,keyasint"`
	Running    bool      `cbor:"6,keyasint"`
	Stack      []Cell    `cbor:"7,keyasint"`
	Steps      int64     `cbor:"8,keyasint"`
	LastOutput string    `cbor:"9,keyasint"`
}

// Snapshot returns a copy of the current state.
func (i *Instance) Snapshot() *Snapshot {
	s := &Snapshot{
		Grid:       make([]string, i.grid.Height()),
		X:          i.X,
		Y:          i.Y,
		Dir:        i.Dir,
		StringMode: i.stringMode,
		Running:    i.running,
		Stack:      append([]Cell(nil), i.stack...),
		Steps:      i.insCount,
		LastOutput: string(i.lastOutput),
	}
	for y := range s.Grid {
		s.Grid[y] = i.grid.Row(y)
	}
	return s
}
