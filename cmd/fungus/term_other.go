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

//go:build !linux

package main

import (
	"os"

	"github.com/pkg/errors"
)

// setRawIO() attempts to set f to raw IO and returns a function
// to restore IO settings as they were before
func setRawIO(f *os.File) (func(), error) {
	return nil, errors.New("raw IO not supported")
}

func isTerminal(f *os.File) bool {
	return false
}
