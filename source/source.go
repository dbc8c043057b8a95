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

package source

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/db47h/fungus/internal/fi"
	"github.com/db47h/fungus/vm"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var encodings = map[string]encoding.Encoding{
	"utf-8":        nil,
	"utf8":         nil,
	"cp437":        charmap.CodePage437,
	"ibm437":       charmap.CodePage437,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-1":   charmap.ISO8859_1,
	"cp1252":       charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"utf-16le":     unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"utf-16be":     unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	"utf-16":       unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM),
}

type config struct {
	enc encoding.Encoding
}

// Option interface
type Option func(*config) error

// Encoding sets the character encoding of the program text. Besides UTF-8, the
// default, the classic Befunge code page "cp437", "latin1", "windows-1252" and
// the UTF-16 variants are known by name. Other names are looked up in the IANA
// registry.
func Encoding(name string) Option {
	return func(c *config) error {
		enc, err := Lookup(name)
		if err != nil {
			return err
		}
		c.enc = enc
		return nil
	}
}

// Lookup returns the encoding with the given name. A nil Encoding with a nil
// error stands for UTF-8.
func Lookup(name string) (encoding.Encoding, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return nil, nil
	}
	if enc, ok := encodings[n]; ok {
		return enc, nil
	}
	enc, err := ianaindex.IANA.Encoding(n)
	if err != nil || enc == nil {
		return nil, errors.Errorf("unsupported encoding %q", name)
	}
	return enc, nil
}

func newConfig(opts []Option) (*config, error) {
	c := new(config)
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Position is a location in program text.
type Position struct {
	Name string
	Line int // starting at 1
	Col  int // starting at 1, in characters
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Name, p.Line, p.Col)
}

// ErrSyntax is returned by Parse for malformed program text.
type ErrSyntax struct {
	Pos Position
	Msg string
}

func (e *ErrSyntax) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// Parse reads program text from r and returns the corresponding grid: one row
// per line, one cell per character. Both "\n" and "\r\n" line terminators are
// accepted. A final line terminator does not start a new row.
//
// The name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, will be an *ErrSyntax for invalid UTF-8 in
// the decoded text, or an I/O error.
func Parse(name string, r io.Reader, opts ...Option) (*vm.Grid, error) {
	c, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	if c.enc != nil {
		r = transform.NewReader(r, c.enc.NewDecoder())
	}
	br := bufio.NewReader(r)

	var (
		rows [][]vm.Token
		row  []vm.Token
		pos  = Position{name, 1, 1}
		cr   bool
	)
	for {
		ch, size, err := br.ReadRune()
		if err != nil {
			if err != io.EOF {
				return nil, errors.Wrapf(err, "%s: read failed", pos)
			}
			break
		}
		if ch == utf8.RuneError && size == 1 {
			return nil, &ErrSyntax{pos, "illegal UTF-8 encoding"}
		}
		if cr {
			// a lone \r is kept as program data
			if ch != '\n' {
				row = append(row, vm.TokenOf('\r'))
			}
			cr = false
		}
		switch ch {
		case '\r':
			cr = true
		case '\n':
			rows = append(rows, row)
			row = nil
			pos.Line++
			pos.Col = 1
			continue
		default:
			row = append(row, vm.TokenOf(ch))
		}
		pos.Col++
	}
	if cr {
		row = append(row, vm.TokenOf('\r'))
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return vm.NewGrid(rows), nil
}

// Format writes the grid as program text to w, one line per row, each line
// terminated by "\n". Characters that cannot be represented in the selected
// encoding yield an error.
func Format(g *vm.Grid, w io.Writer, opts ...Option) error {
	c, err := newConfig(opts)
	if err != nil {
		return err
	}
	ew := fi.NewErrWriter(w)
	var out io.Writer = ew
	var tw io.WriteCloser
	if c.enc != nil {
		tw = transform.NewWriter(ew, c.enc.NewEncoder())
		out = tw
	}
	for y := 0; y < g.Height(); y++ {
		if _, err = io.WriteString(out, g.Row(y)); err != nil {
			return errors.Wrapf(err, "row %d", y)
		}
		if _, err = out.Write([]byte{'\n'}); err != nil {
			return errors.Wrapf(err, "row %d", y)
		}
	}
	if tw != nil {
		if err = tw.Close(); err != nil {
			return errors.Wrap(err, "encoder")
		}
	}
	return ew.Err
}
