// Copyright 2018 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command dcmrepack parses a DICOM-like file into a tree, optionally rewrites leaf payloads, and
// writes the tree back.
//
// Usage:
//
//	dcmrepack -in RS.dcm -out RS.out.dcm -find '(3006,0020)/(FFFE,E000)/(3006,0026)' \
//		-replace-from 'L PAROTID ' -replace-to 'R PAROTID '
//	dcmrepack -in RS.dcm -dump - -verify
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/GoogleCloudPlatform/go-dicom-repack/internal/logging"
)

type options struct {
	in          string
	out         string
	configPath  string
	flat        bool
	dump        string
	find        string
	replaceFrom string
	replaceTo   string
	replace     bool
	export      string
	snippets    string
	verify      bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("dcmrepack", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.in, "in", "", "input file (required)")
	fs.StringVar(&opts.out, "out", "", "output file for the repacked tree")
	fs.StringVar(&opts.configPath, "config", "", "TOML config with classifier rules and charset")
	fs.BoolVar(&opts.flat, "flat", false, "do not delineate nested sequences")
	fs.StringVar(&opts.dump, "dump", "", "write a text dump of the parsed tree to this path, - for stdout")
	fs.StringVar(&opts.find, "find", "", "'/' separated tag path of nodes to rewrite, e.g. (3006,0020)/*/(3006,0026)")
	fs.StringVar(&opts.replaceFrom, "replace-from", "", "only rewrite found payloads equal to this text")
	fs.StringVar(&opts.replaceTo, "replace-to", "", "new payload for found leaves")
	fs.StringVar(&opts.export, "export", "", "write the parsed tree as CBOR to this path")
	fs.StringVar(&opts.snippets, "snippets", "", "write a survey of printable and binary runs of the input to this path, - for stdout")
	fs.BoolVar(&opts.verify, "verify", false, "fail unless the repacked body is identical to the input body")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "replace-to" {
			opts.replace = true
		}
	})

	if opts.in == "" {
		return options{}, fmt.Errorf("-in is required")
	}
	if opts.replace && opts.find == "" {
		return options{}, fmt.Errorf("-replace-to requires -find")
	}
	if opts.replaceFrom != "" && !opts.replace {
		return options{}, fmt.Errorf("-replace-from requires -replace-to")
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "dcmrepack: %v\n", err)
		os.Exit(2)
	}

	logger := logging.New("dcmrepack", os.Stderr)
	if err := run(opts, logger, os.Stdout); err != nil {
		logger.Error().Err(err).Str("in", opts.in).Msg("dcmrepack failed")
		os.Exit(1)
	}
}
