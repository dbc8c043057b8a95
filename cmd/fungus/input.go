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
	"bytes"
	"io"

	"github.com/peterh/liner"
	"github.com/pkg/errors"
)

// rawReader handles CTRL-D and echo for a terminal in raw mode.
type rawReader struct {
	r    io.Reader
	echo io.Writer
	eof  bool
}

func (r *rawReader) Read(p []byte) (int, error) {
	if r.eof {
		return 0, io.EOF
	}
	n, err := r.r.Read(p)
	if i := bytes.IndexByte(p[:n], 4); i >= 0 {
		n, err, r.eof = i, nil, true
	}
	if n > 0 && r.echo != nil {
		r.echo.Write(p[:n])
		if f, ok := r.echo.(interface{ Flush() error }); ok {
			f.Flush()
		}
	}
	if n == 0 && r.eof {
		return 0, io.EOF
	}
	return n, err
}

// tailWriter keeps track of the last incomplete line written to w.
type tailWriter struct {
	w    io.Writer
	tail []byte
}

func (t *tailWriter) Write(p []byte) (int, error) {
	if i := bytes.LastIndexByte(p, '\n'); i >= 0 {
		t.tail = append(t.tail[:0], p[i+1:]...)
	} else {
		t.tail = append(t.tail, p...)
	}
	return t.w.Write(p)
}

// Flush flushes the underlying writer if it supports it.
func (t *tailWriter) Flush() error {
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// prompter is the subset of *liner.State used by lineReader.
type prompter interface {
	Prompt(string) (string, error)
	AppendHistory(string)
}

// lineReader reads terminal input one line at a time with line editing. The
// pending output line is used as the prompt so that the terminal redraw does
// not erase it.
type lineReader struct {
	p   prompter
	out *tailWriter
	buf []byte
}

func (l *lineReader) Read(b []byte) (int, error) {
	if len(l.buf) == 0 {
		prompt := string(l.out.tail)
		line, err := l.p.Prompt(prompt)
		if err != nil {
			if err == liner.ErrPromptAborted {
				return 0, io.EOF
			}
			if err == io.EOF {
				return 0, err
			}
			return 0, errors.Wrap(err, "prompt failed")
		}
		l.out.tail = l.out.tail[:0]
		if line != "" {
			l.p.AppendHistory(line)
		}
		l.buf = append(l.buf[:0], line...)
		l.buf = append(l.buf, '\n')
	}
	n := copy(b, l.buf)
	l.buf = l.buf[n:]
	return n, nil
}
