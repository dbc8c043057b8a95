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

// The fungus command line tool runs Befunge-93 programs with the
// github.com/db47h/fungus/vm package.
//
// Usage:
//
//	fungus [flags] program.bf
//
//	-config filename
//		  read default settings from a TOML file
//	-debug
//		  enable debug diagnostics
//	-dump
//		  dump the interpreter state upon exit
//	-dumpfmt format
//		  dump format: text or cbor (default "text")
//	-encoding name
//		  character encoding of the program file (default "utf-8")
//	-limit int
//		  stop after int steps (0 means no limit)
//	-raw
//		  read terminal input one key at a time
//	-seed int
//		  random seed for the ? instruction (0 means time based)
//	-trace
//		  log every executed instruction
//	-with filename
//		  Add filename to the input list (can be specified multiple times)
//
// -config: settings are read from the given TOML file, with the same names as
// the flags:
//
//	encoding = "cp437"
//	seed = 42
//	limit = 1000000
//	with = ["input.txt"]
//	raw = false
//	debug = false
//	trace = false
//	dump = false
//	dumpfmt = "text"
//
// Flags given on the command line override the file. Files given with -with on
// the command line are fed after the ones listed in the configuration file.
//
// -debug: will print a full stacktrace should the interpreter fail, and enable
// debug logging to stderr.
//
// -dump: this flag is meant to be used by test harnesses and debuggers. Once
// the program has stopped, the stack, instruction pointer and grid are written
// to stdout. The text format frames them with \x1C and \x1D characters, the
// cbor format writes a single canonical CBOR map.
//
// -raw: if stdin is a terminal, it is switched to raw mode so that the ~
// instruction gets every key as soon as it is typed. CTRL-D ends the input.
// Without this flag, terminal input is read one line at a time with line
// editing and history.
//
// -with: the specified files are fed to the program as input, in order of
// appearance on the command line, before stdin.
//
// The program exits with status 0 when the program quits or when input runs
// dry, and with status 1 on any error.
package main
