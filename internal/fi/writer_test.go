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

package fi_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/db47h/fungus/internal/fi"
	"github.com/pkg/errors"
)

type shortWriter struct{ n int }

func (w *shortWriter) Write(p []byte) (int, error) {
	if w.n < len(p) {
		return 0, io.ErrShortWrite
	}
	w.n -= len(p)
	return len(p), nil
}

func TestErrWriter(t *testing.T) {
	var b bytes.Buffer
	ew := fi.NewErrWriter(&b)
	io.WriteString(ew, "ok")
	if ew.Err != nil || b.String() != "ok" {
		t.Fatalf("unexpected state %q, %v", b.String(), ew.Err)
	}
	if fi.NewErrWriter(ew) != ew {
		t.Error("ErrWriter wrapped twice")
	}

	ew = fi.NewErrWriter(&shortWriter{3})
	io.WriteString(ew, "abc")
	io.WriteString(ew, "d")
	n, err := io.WriteString(ew, "e")
	if n != 0 || errors.Cause(err) != io.ErrShortWrite || errors.Cause(ew.Err) != io.ErrShortWrite {
		t.Fatalf("Expected sticky ErrShortWrite, got %d, %v", n, err)
	}
}
