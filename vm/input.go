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
	"math"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Input is the source of values for the ReadInt and ReadChar instructions and
// for division by zero.
//
// Both methods may block until a value is available. Any error returned stops
// the current Step and is returned by it; io.EOF is a normal exit condition for
// most callers.
type Input interface {
	ReadInt() (Cell, error)
	ReadChar() (Cell, error)
}

type flusher interface {
	Flush() error
}

// runeReaderWrapper wraps a basic reader into a io.RuneReader and io.Closer
type runeReaderWrapper struct {
	io.Reader
}

func (r *runeReaderWrapper) ReadRune() (ret rune, size int, err error) {
	var (
		b = [utf8.UTFMax]byte{}
		i = 0
	)
	for i < utf8.UTFMax && err == nil && !utf8.FullRune(b[:i]) {
		var n int
		n, err = r.Reader.Read(b[i : i+1])
		i += n
	}
	if i == 0 {
		return 0, 0, err
	}
	ret, size = rune(b[0]), 1
	if ret >= utf8.RuneSelf {
		ret, size = utf8.DecodeRune(b[:i])
	}
	return ret, size, err
}

func (r *runeReaderWrapper) Close() error {
	if c, ok := r.Reader.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func newRuneReader(r io.Reader) io.RuneReader {
	switch rr := r.(type) {
	case nil:
		return nil
	case io.RuneReader:
		return rr
	default:
		return &runeReaderWrapper{r}
	}
}

// ReaderInput is an Input that reads text from a stack of readers. When the
// reader on top of the stack reaches EOF, it is closed if it implements
// io.Closer and the next one is used.
type ReaderInput struct {
	readers []io.RuneReader
}

// NewReaderInput returns a new ReaderInput reading from the given readers in
// order.
func NewReaderInput(readers ...io.Reader) *ReaderInput {
	in := new(ReaderInput)
	for n := len(readers) - 1; n >= 0; n-- {
		in.Push(readers[n])
	}
	return in
}

// Push sets r as the current reader. When r reaches EOF, the previously pushed
// reader will be used.
func (in *ReaderInput) Push(r io.Reader) {
	if rr := newRuneReader(r); rr != nil {
		in.readers = append([]io.RuneReader{rr}, in.readers...)
	}
}

// ReadRune implements io.RuneReader.
func (in *ReaderInput) ReadRune() (r rune, size int, err error) {
	for len(in.readers) > 0 {
		r, size, err = in.readers[0].ReadRune()
		if size > 0 || err != io.EOF {
			if err == io.EOF {
				err = nil
			}
			return
		}
		// discard the reader and optionally close it
		if cl, ok := in.readers[0].(io.Closer); ok {
			cl.Close()
		}
		in.readers = in.readers[1:]
	}
	return 0, 0, io.EOF
}

// ReadChar returns the code of the next character.
func (in *ReaderInput) ReadChar() (Cell, error) {
	r, size, err := in.ReadRune()
	if size > 0 {
		return Cell(r), nil
	}
	if err == io.EOF {
		return 0, err
	}
	return 0, errors.Wrap(err, "read char")
}

// ReadInt skips any text up to the next decimal number, optionally signed, and
// returns its value. The character following the number is consumed. Values
// outside the Cell range are clamped to math.MinInt32 or math.MaxInt32.
func (in *ReaderInput) ReadInt() (Cell, error) {
	var (
		n      int64
		neg    bool
		digits int
	)
	for {
		r, size, err := in.ReadRune()
		if size == 0 {
			if digits > 0 && err == io.EOF {
				break
			}
			if err == io.EOF {
				return 0, err
			}
			return 0, errors.Wrap(err, "read int")
		}
		if r >= '0' && r <= '9' {
			if n <= math.MaxInt32 {
				n = n*10 + int64(r-'0')
			}
			digits++
			continue
		}
		if digits > 0 {
			break
		}
		neg = r == '-'
	}
	if neg {
		n = -n
	}
	if n > math.MaxInt32 {
		n = math.MaxInt32
	} else if n < math.MinInt32 {
		n = math.MinInt32
	}
	return Cell(n), nil
}
