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
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/db47h/fungus/source"
	"github.com/db47h/fungus/vm"
	"github.com/pkg/errors"
)

type C []vm.Cell

const testStepLimit = 10000

func newInstance(t *testing.T, code string, opts ...vm.Option) *vm.Instance {
	g, err := source.Parse(t.Name(), strings.NewReader(code))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	opts = append([]vm.Option{vm.Seed(1), vm.StepLimit(testStepLimit)}, opts...)
	i, err := vm.New(g, opts...)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	return i
}

func runCode(t *testing.T, code, input string, opts ...vm.Option) (*vm.Instance, string, error) {
	var out bytes.Buffer
	opts = append(opts, vm.Output(&out), vm.InputReader(strings.NewReader(input)))
	i := newInstance(t, code, opts...)
	err := i.Run()
	return i, out.String(), err
}

func assertStack(t *testing.T, name string, i *vm.Instance, stack C) {
	t.Helper()
	stk := i.Data()
	diff := len(stk) != len(stack)
	if !diff {
		for n := range stack {
			if stack[n] != stk[n] {
				diff = true
				break
			}
		}
	}
	if diff {
		t.Errorf("%s: Stack error: expected %d, got %d", name, stack, stk)
	}
}

func TestNew_emptyGrid(t *testing.T) {
	i, err := vm.New(nil, vm.StepLimit(10))
	if err != nil {
		t.Fatal(err)
	}
	if w, h := i.Grid().Width(), i.Grid().Height(); w != 1 || h != 1 {
		t.Fatalf("Expected 1x1 grid, got %dx%d", w, h)
	}
	if err = i.Run(); err != vm.ErrStepLimit {
		t.Fatalf("Expected ErrStepLimit, got %v", err)
	}
	if i.X != 0 || i.Y != 0 {
		t.Errorf("Pointer moved off the single cell: (%d,%d)", i.X, i.Y)
	}
}

func TestStep_halted(t *testing.T) {
	i := newInstance(t, "@")
	if err := i.Step(); err != nil {
		t.Fatal(err)
	}
	if i.Running() {
		t.Fatal("Expected instance to be halted")
	}
	if err := i.Step(); err != vm.ErrHalted {
		t.Fatalf("Expected ErrHalted, got %v", err)
	}
	if err := i.Run(); err != nil {
		t.Fatalf("Run on halted instance: %v", err)
	}
}

func TestStack(t *testing.T) {
	i := newInstance(t, "@")
	if v := i.Pop(); v != 0 {
		t.Errorf("Pop on empty stack: expected 0, got %d", v)
	}
	if v := i.Peek(); v != 0 {
		t.Errorf("Peek on empty stack: expected 0, got %d", v)
	}
	i.Push(42)
	if v := i.Peek(); v != 42 {
		t.Errorf("Peek: expected 42, got %d", v)
	}
	if v := i.Pop(); v != 42 {
		t.Errorf("Pop: expected 42, got %d", v)
	}
	if d := i.Depth(); d != 0 {
		t.Errorf("Depth: expected 0, got %d", d)
	}
}

func TestLastOutput(t *testing.T) {
	i := newInstance(t, `"a",5.@`)
	var outs []string
	for i.Running() {
		if err := i.Step(); err != nil {
			t.Fatalf("%+v", err)
		}
		outs = append(outs, i.LastOutput())
	}
	exp := []string{"", "", "", "a", "", "5 ", ""}
	if strings.Join(outs, "|") != strings.Join(exp, "|") {
		t.Fatalf("Expected outputs %q, got %q", exp, outs)
	}
}

func TestRun_stepLimit(t *testing.T) {
	i := newInstance(t, "1", vm.StepLimit(5))
	if err := i.Run(); err != vm.ErrStepLimit {
		t.Fatalf("Expected ErrStepLimit, got %v", err)
	}
	assertStack(t, "stepLimit", i, C{1, 1, 1, 1, 1})
	if n := i.InstructionCount(); n != 5 {
		t.Errorf("Expected 5 steps, got %d", n)
	}
	// resume with a higher limit
	if err := i.SetOptions(vm.StepLimit(7)); err != nil {
		t.Fatal(err)
	}
	if err := i.Run(); err != vm.ErrStepLimit {
		t.Fatalf("Expected ErrStepLimit, got %v", err)
	}
	assertStack(t, "stepLimit", i, C{1, 1, 1, 1, 1, 1, 1})
}

func TestInputReader_requiresReaderInput(t *testing.T) {
	g := vm.NewGrid(nil)
	_, err := vm.New(g, vm.InputSource(nil), vm.InputReader(strings.NewReader("x")))
	if err == nil {
		t.Fatal("Expected error")
	}
}

func TestNoInput(t *testing.T) {
	i := newInstance(t, "&@", vm.InputSource(nil))
	err := i.Run()
	if errors.Cause(err) != vm.ErrNoInput {
		t.Fatalf("Expected ErrNoInput, got %v", err)
	}
}

type flushBuffer struct {
	bytes.Buffer
	flushes int
}

func (b *flushBuffer) Flush() error {
	b.flushes++
	return nil
}

func TestOutput_flushBeforeRead(t *testing.T) {
	var out flushBuffer
	i := newInstance(t, "5.&.@", vm.Output(&out), vm.InputReader(strings.NewReader("7")))
	if err := i.Run(); err != nil {
		t.Fatalf("%+v", err)
	}
	if out.flushes != 1 {
		t.Errorf("Expected 1 flush, got %d", out.flushes)
	}
	if s := out.String(); s != "5 7 " {
		t.Errorf("Expected output %q, got %q", "5 7 ", s)
	}
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) { return 0, io.ErrClosedPipe }

func TestOutput_writeError(t *testing.T) {
	i := newInstance(t, "5.@", vm.Output(failWriter{}))
	err := i.Run()
	if errors.Cause(err) != io.ErrClosedPipe {
		t.Fatalf("Expected ErrClosedPipe, got %v", err)
	}
	// pointer stays on the failing instruction
	if i.X != 1 || i.Y != 0 {
		t.Errorf("Expected pointer at (1,0), got (%d,%d)", i.X, i.Y)
	}
	assertStack(t, "writeError", i, C{5})
}

func TestSnapshot(t *testing.T) {
	i := newInstance(t, "12\"a\n@")
	for n := 0; n < 4; n++ {
		if err := i.Step(); err != nil {
			t.Fatalf("%+v", err)
		}
	}
	s := i.Snapshot()
	if s.X != 0 || s.Y != 0 || s.Dir != vm.Right {
		t.Errorf("Bad pointer: (%d,%d) %v", s.X, s.Y, s.Dir)
	}
	if !s.StringMode || !s.Running {
		t.Errorf("Bad flags: stringMode=%v running=%v", s.StringMode, s.Running)
	}
	if len(s.Grid) != 2 || s.Grid[0] != "12\"a" || s.Grid[1] != "@" {
		t.Errorf("Bad grid: %q", s.Grid)
	}
	if len(s.Stack) != 3 || s.Stack[2] != 'a' {
		t.Errorf("Bad stack: %v", s.Stack)
	}
	// the snapshot is a copy
	s.Stack[0] = 99
	if i.Data()[0] != 1 {
		t.Error("Snapshot shares the stack with the instance")
	}
	if s.Steps != 4 {
		t.Errorf("Expected 4 steps, got %d", s.Steps)
	}
}

func TestRandom_seeded(t *testing.T) {
	code := "?1@\n2\n@\n3"
	run := func() *vm.Snapshot {
		i := newInstance(t, code, vm.Seed(42))
		if err := i.Run(); err != nil && err != vm.ErrStepLimit {
			t.Fatalf("%+v", err)
		}
		return i.Snapshot()
	}
	a, b := run(), run()
	if a.X != b.X || a.Y != b.Y || a.Steps != b.Steps || len(a.Stack) != len(b.Stack) {
		t.Fatalf("Same seed, different runs: %+v / %+v", a, b)
	}
}
