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

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/db47h/fungus/dump"
	"github.com/db47h/fungus/source"
	"github.com/db47h/fungus/vm"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var log commonlog.Logger

// fileReader closes the underlying file once the buffered reader is exhausted.
type fileReader struct {
	*bufio.Reader
	io.Closer
}

func loadProgram(c *config) (*vm.Grid, error) {
	f, err := os.Open(c.program)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return source.Parse(c.program, f, source.Encoding(c.Encoding))
}

// setupInput builds the input stack: -with files first, then stdin. It returns
// a function to restore the terminal state, if any.
func setupInput(c *config, out *tailWriter) (vm.Input, func(), error) {
	var readers []io.Reader
	for _, name := range c.With {
		f, err := os.Open(name)
		if err != nil {
			for _, r := range readers {
				r.(io.Closer).Close()
			}
			return nil, nil, err
		}
		readers = append(readers, fileReader{bufio.NewReader(f), f})
	}

	var tearDown func()
	switch {
	case !isTerminal(os.Stdin):
		readers = append(readers, bufio.NewReader(os.Stdin))
	case c.Raw:
		restore, err := setRawIO(os.Stdin)
		if err != nil {
			log.Warningf("%v, falling back to line input", err)
			return setupLineInput(readers, out)
		}
		tearDown = restore
		readers = append(readers, &rawReader{r: os.Stdin, echo: out})
	default:
		return setupLineInput(readers, out)
	}
	return vm.NewReaderInput(readers...), tearDown, nil
}

func setupLineInput(readers []io.Reader, out *tailWriter) (vm.Input, func(), error) {
	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)
	readers = append(readers, &lineReader{p: ln, out: out})
	return vm.NewReaderInput(readers...), func() { ln.Close() }, nil
}

func run(i *vm.Instance, c *config) error {
	if !c.Trace {
		return i.Run()
	}
	for i.Running() {
		if c.Limit > 0 && i.InstructionCount() >= c.Limit {
			return vm.ErrStepLimit
		}
		x, y := i.X, i.Y
		t, _ := i.Grid().Get(x, y)
		if err := i.Step(); err != nil {
			return err
		}
		log.Debugf("%d @(%d,%d) %v stack: %v", i.InstructionCount(), x, y, t, i.Data())
	}
	return nil
}

func dumpState(w io.Writer, i *vm.Instance, f dumpFormat) error {
	s := i.Snapshot()
	if f == "cbor" {
		return dump.CBOR(w, s)
	}
	return dump.Text(w, s)
}

func atExit(i *vm.Instance, debug bool, err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	if i != nil {
		fmt.Fprintf(os.Stderr, "IP: (%d,%d) %v, Stack: %v\n", i.X, i.Y, i.Dir, i.Data())
	}
	os.Exit(1)
}

func main() {
	// check exit condition
	var err error
	var i *vm.Instance
	var c *config

	stdout := bufio.NewWriter(os.Stdout)
	output := &tailWriter{w: stdout}

	// flush output, catch and log errors
	defer func() {
		if err == nil && c != nil && c.Dump && i != nil {
			err = dumpState(stdout, i, c.DumpFmt)
		}
		if ferr := stdout.Flush(); err == nil {
			err = errors.Wrap(ferr, "flush failed")
		}
		atExit(i, c != nil && c.Debug, err)
	}()

	c, err = parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if err == flag.ErrHelp {
			err = nil
		}
		return
	}

	verbosity := 0
	if c.Debug || c.Trace {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)
	log = commonlog.GetLogger("fungus")

	g, err := loadProgram(c)
	if err != nil {
		return
	}
	log.Infof("loaded %s: %dx%d", c.program, g.Width(), g.Height())

	input, tearDown, err := setupInput(c, output)
	if err != nil {
		return
	}
	if tearDown != nil {
		defer tearDown()
	}

	opts := []vm.Option{
		vm.InputSource(input),
		vm.Output(output),
		vm.StepLimit(c.Limit),
	}
	if c.Seed != 0 {
		opts = append(opts, vm.Seed(c.Seed))
	}
	i, err = vm.New(g, opts...)
	if err != nil {
		return
	}
	err = run(i, c)
	if errors.Cause(err) == io.EOF {
		log.Debugf("input exhausted after %d steps", i.InstructionCount())
		err = nil
	} else if err == nil {
		log.Debugf("halted after %d steps", i.InstructionCount())
	}
}
