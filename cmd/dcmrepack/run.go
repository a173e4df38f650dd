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

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/GoogleCloudPlatform/go-dicom-repack/dicom"
	"github.com/GoogleCloudPlatform/go-dicom-repack/internal/config"
	"github.com/GoogleCloudPlatform/go-dicom-repack/internal/export"
	"github.com/GoogleCloudPlatform/go-dicom-repack/internal/logging"
	"github.com/GoogleCloudPlatform/go-dicom-repack/internal/snippet"
	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"
)

var errVerify = errors.New("repacked body differs from input")

func run(opts options, logger zerolog.Logger, stdout io.Writer) error {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return err
		}
	}
	classifier := cfg.Classifier()
	dopts := append(cfg.Options(), dicom.WithClassifier(classifier))

	data, err := os.ReadFile(opts.in)
	if err != nil {
		return fmt.Errorf("reading input: %v", err)
	}
	logger.Info().Str("in", opts.in).Int("bytes", len(data)).Msg("loaded")

	if opts.snippets != "" {
		err := writeTo(opts.snippets, stdout, func(w io.Writer) error {
			return snippet.Write(w, snippet.New(data), snippet.AllColumns)
		})
		if err != nil {
			return err
		}
	}

	body, err := dicom.StripHeader(data)
	if err != nil {
		return err
	}

	var diags dicom.Diagnostics
	nodes, parseDiags := dicom.Parse(body, dopts...)
	diags = append(diags, parseDiags...)
	if !opts.flat {
		diags = append(diags, dicom.Delineate(nodes, dopts...)...)
	}
	logger.Info().Int("top_level", len(nodes)).Int("nodes", dicom.Count(nodes)).Msg("parsed")

	if opts.dump != "" {
		err := writeTo(opts.dump, stdout, func(w io.Writer) error {
			return dicom.Dump(w, nodes, dopts...)
		})
		if err != nil {
			return err
		}
	}

	if opts.export != "" {
		err := writeTo(opts.export, stdout, func(w io.Writer) error {
			return export.Write(w, nodes, classifier)
		})
		if err != nil {
			return err
		}
	}

	if opts.find != "" {
		path, err := dicom.ParsePath(opts.find)
		if err != nil {
			return fmt.Errorf("parsing -find: %v", err)
		}
		matches := dicom.Find(nodes, path...)
		rewritten := 0
		if opts.replace {
			rewritten = replacePayloads(matches, opts.replaceFrom, opts.replaceTo)
		}
		logger.Info().Str("path", opts.find).Int("matches", len(matches)).Int("rewritten", rewritten).Msg("found")
	}

	dicom.Invalidate(nodes)
	total, recomputeDiags := dicom.Recompute(nodes, dopts...)
	diags = append(diags, recomputeDiags...)
	out, repackDiags := dicom.Repack(nodes, dopts...)
	diags = append(diags, repackDiags...)

	logging.Report(logger, diags)
	logging.Summary(logger, diags)

	if opts.verify {
		if err := verify(body, out); err != nil {
			return err
		}
		logger.Info().Uint64("xxhash", xxhash.Sum64(out)).Msg("verified")
	}

	if opts.out != "" {
		if err := os.WriteFile(opts.out, append(dicom.Header(), out...), 0o644); err != nil {
			return fmt.Errorf("writing output: %v", err)
		}
		logger.Info().Str("out", opts.out).Uint64("bytes", total+uint64(dicom.HeaderLength)).Msg("written")
	}
	return nil
}

// replacePayloads rewrites the payload of every leaf in matches. When from is not empty, only
// payloads equal to it are rewritten.
func replacePayloads(matches []*dicom.Node, from, to string) int {
	rewritten := 0
	for _, n := range matches {
		if !n.IsLeaf() {
			continue
		}
		if from != "" && !bytes.Equal(n.Payload, []byte(from)) {
			continue
		}
		n.Payload = []byte(to)
		rewritten++
	}
	return rewritten
}

func verify(in, out []byte) error {
	want, got := xxhash.Sum64(in), xxhash.Sum64(out)
	if want != got || len(in) != len(out) {
		return fmt.Errorf("%w: input %016x (%d bytes), output %016x (%d bytes)", errVerify, want, len(in), got, len(out))
	}
	return nil
}

// writeTo calls write with the file at path, or with stdout when path is "-".
func writeTo(path string, stdout io.Writer, write func(io.Writer) error) error {
	if path == "-" {
		return write(stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %v", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %v", path, err)
	}
	return nil
}
