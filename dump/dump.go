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

// Package dump serializes interpreter snapshots, either as text for test
// harnesses or as CBOR for external debugger frontends.
package dump

import (
	"io"
	"strconv"

	"github.com/db47h/fungus/internal/fi"
	"github.com/db47h/fungus/vm"
	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
)

var encMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic("dump: failed to create CBOR enc mode: " + err.Error())
	}
	encMode = em
}

func dumpSlice(w io.Writer, prefix byte, a []vm.Cell) error {
	var err error
	l := len(a) - 1
	b := make([]byte, 0, 14)
	b = append(b, prefix)
	if l >= 0 {
		for i := 0; i < l; i++ {
			b = strconv.AppendInt(b, int64(a[i]), 10)
			b = append(b, ' ')
			_, err = w.Write(b)
			if err != nil {
				return err
			}
			b = b[:0]
		}
		b = strconv.AppendInt(b, int64(a[l]), 10)
	}
	_, err = w.Write(b)
	return err
}

// Text dumps the snapshot's stack (bottom first), pointer and grid to the
// specified io.Writer:
//
//	\x1C stack \x1D x y direction \x1D rows separated by \n
func Text(w io.Writer, s *vm.Snapshot) error {
	ew := fi.NewErrWriter(w)
	dumpSlice(ew, '\x1C', s.Stack)
	dumpSlice(ew, '\x1D', []vm.Cell{vm.Cell(s.X), vm.Cell(s.Y)})
	io.WriteString(ew, " "+s.Dir.String())
	ew.Write([]byte{'\x1D'})
	for y, r := range s.Grid {
		if y > 0 {
			ew.Write([]byte{'\n'})
		}
		io.WriteString(ew, r)
	}
	return ew.Err
}

// CBOR writes the snapshot to w in canonical CBOR encoding.
func CBOR(w io.Writer, s *vm.Snapshot) error {
	data, err := encMode.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "dump: marshal snapshot")
	}
	_, err = fi.NewErrWriter(w).Write(data)
	return err
}

// Decode decodes a CBOR encoded snapshot.
func Decode(data []byte) (*vm.Snapshot, error) {
	var s vm.Snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, "dump: unmarshal snapshot")
	}
	return &s, nil
}
