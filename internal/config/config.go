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

// Package config loads the TOML configuration of the dcmrepack command.
//
// Example:
//
//	charset = "ISO_IR 192"
//	keep_truncated = true
//
//	[rules]
//	trailing_word = ["(0002,0013)"]
//	never_expand  = ["(3006,0050)"]
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/GoogleCloudPlatform/go-dicom-repack/dicom"
)

// DefaultCharset renders payloads as Latin-1, read as Windows-1252.
const DefaultCharset = "ISO_IR 100"

// Config holds the settings shared by every pass over a file.
type Config struct {
	// Charset is the Specific Character Set defined term used to render payloads in dumps.
	Charset string

	// KeepTruncated leaves payloads that do not parse completely undelineated.
	KeepTruncated bool

	// Rules extends the built-in classification tables.
	Rules dicom.Rules
}

type fileConfig struct {
	Charset       string    `toml:"charset"`
	KeepTruncated bool      `toml:"keep_truncated"`
	Rules         fileRules `toml:"rules"`
}

type fileRules struct {
	Direct       []string `toml:"direct"`
	NotDirect    []string `toml:"not_direct"`
	TrailingWord []string `toml:"trailing_word"`
	Extended     []string `toml:"extended"`
	AlwaysExpand []string `toml:"always_expand"`
	NeverExpand  []string `toml:"never_expand"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{Charset: DefaultCharset}
}

// Load reads the file at path over the defaults. Keys missing from the file keep their default.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) != 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("load config: unknown keys %s", strings.Join(keys, ", "))
	}

	if meta.IsDefined("charset") {
		cfg.Charset = strings.TrimSpace(raw.Charset)
	}

	if meta.IsDefined("keep_truncated") {
		cfg.KeepTruncated = raw.KeepTruncated
	}

	rules := []struct {
		key string
		in  []string
		out *[]dicom.Tag
	}{
		{"direct", raw.Rules.Direct, &cfg.Rules.Direct},
		{"not_direct", raw.Rules.NotDirect, &cfg.Rules.NotDirect},
		{"trailing_word", raw.Rules.TrailingWord, &cfg.Rules.TrailingWord},
		{"extended", raw.Rules.Extended, &cfg.Rules.Extended},
		{"always_expand", raw.Rules.AlwaysExpand, &cfg.Rules.AlwaysExpand},
		{"never_expand", raw.Rules.NeverExpand, &cfg.Rules.NeverExpand},
	}
	for _, r := range rules {
		if !meta.IsDefined("rules", r.key) {
			continue
		}
		tags, err := dicom.ParseTags(r.in)
		if err != nil {
			return Config{}, fmt.Errorf("parse rules.%s: %w", r.key, err)
		}
		*r.out = tags
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects unsupported charsets and wildcard rules.
func (c Config) Validate() error {
	if err := dicom.ValidateCharset(c.Charset); err != nil {
		return fmt.Errorf("invalid charset: %w", err)
	}

	all := [][]dicom.Tag{
		c.Rules.Direct, c.Rules.NotDirect, c.Rules.TrailingWord,
		c.Rules.Extended, c.Rules.AlwaysExpand, c.Rules.NeverExpand,
	}
	for _, tags := range all {
		for _, t := range tags {
			if t == dicom.Wildcard {
				return fmt.Errorf("invalid rule: wildcard cannot be classified")
			}
		}
	}
	return nil
}

// Classifier returns the built-in classifier extended by the configured rules.
func (c Config) Classifier() *dicom.Classifier {
	return dicom.NewClassifier(c.Rules)
}

// Options returns the dicom options selected by the configuration.
func (c Config) Options() []dicom.Option {
	opts := []dicom.Option{
		dicom.WithClassifier(c.Classifier()),
		dicom.WithCharset(c.Charset),
	}
	if c.KeepTruncated {
		opts = append(opts, dicom.KeepTruncatedPayloads)
	}
	return opts
}
