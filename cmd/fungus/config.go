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
	"flag"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

type fileList []string

func (f *fileList) String() string     { return "" }
func (f *fileList) Set(s string) error { *f = append(*f, s); return nil }
func (f *fileList) Get() interface{}   { return *f }

type dumpFormat string

func (d *dumpFormat) String() string { return string(*d) }
func (d *dumpFormat) Set(s string) error {
	switch s {
	case "text", "cbor":
		*d = dumpFormat(s)
		return nil
	default:
		return errors.Errorf("unsupported dump format %q", s)
	}
}
func (d *dumpFormat) Get() interface{} { return *d }

// config holds the command line settings.
type config struct {
	Encoding string     `toml:"encoding"`
	Seed     int64      `toml:"seed"`
	Limit    int64      `toml:"limit"`
	With     fileList   `toml:"with"`
	Raw      bool       `toml:"raw"`
	Debug    bool       `toml:"debug"`
	Trace    bool       `toml:"trace"`
	Dump     bool       `toml:"dump"`
	DumpFmt  dumpFormat `toml:"dumpfmt"`

	configFile string
	program    string
}

func defaultConfig() config {
	return config{Encoding: "utf-8", DumpFmt: "text"}
}

func newFlagSet(c *config, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("fungus", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&c.configFile, "config", "", "read default settings from TOML file `filename`")
	fs.StringVar(&c.Encoding, "encoding", c.Encoding, "character encoding of the program file")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed for the ? instruction (0 means time based)")
	fs.Int64Var(&c.Limit, "limit", c.Limit, "stop after `int` steps (0 means no limit)")
	fs.Var(&c.With, "with", "Add `filename` to the input list (can be specified multiple times)")
	fs.BoolVar(&c.Raw, "raw", c.Raw, "read terminal input one key at a time")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "enable debug diagnostics")
	fs.BoolVar(&c.Trace, "trace", c.Trace, "log every executed instruction")
	fs.BoolVar(&c.Dump, "dump", c.Dump, "dump the interpreter state upon exit")
	fs.Var(&c.DumpFmt, "dumpfmt", "dump `format`: text or cbor")
	fs.Usage = func() {
		io.WriteString(fs.Output(), "Usage: fungus [flags] program\n")
		fs.PrintDefaults()
	}
	return fs
}

// parseArgs parses the command line. If a configuration file is specified,
// it is loaded first and the command line parsed again on top of it.
func parseArgs(args []string, output io.Writer) (*config, error) {
	c := defaultConfig()
	fs := newFlagSet(&c, output)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.configFile != "" {
		fc := defaultConfig()
		md, err := toml.DecodeFile(c.configFile, &fc)
		if err != nil {
			return nil, errors.Wrapf(err, "config %s", c.configFile)
		}
		if un := md.Undecoded(); len(un) > 0 {
			return nil, errors.Errorf("config %s: unknown setting %q", c.configFile, un[0].String())
		}
		if err = fc.DumpFmt.Set(string(fc.DumpFmt)); err != nil {
			return nil, errors.Wrapf(err, "config %s", c.configFile)
		}
		c = fc
		fs = newFlagSet(&c, output)
		if err = fs.Parse(args); err != nil {
			return nil, err
		}
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return nil, errors.New("expected exactly one program file")
	}
	c.program = fs.Arg(0)
	return &c, nil
}
