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

// Package source loads Befunge program text into a vm.Grid and writes grids
// back as text.
//
// Program text is one row per line and one cell per character. Lines may have
// different lengths: the grid width is the length of the longest line and
// shorter rows read as spaces (Noop) up to that width. Characters that are not
// part of the instruction set become Char literals, so parsing never fails on
// content; only invalid UTF-8 (after decoding) and I/O errors are reported.
//
// Befunge programs have traditionally been written in code page 437. Use the
// Encoding option to load such files:
//
//	g, err := source.Parse(fileName, f, source.Encoding("cp437"))
package source
