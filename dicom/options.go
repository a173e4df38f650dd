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

package dicom

import (
	"fmt"

	"golang.org/x/text/encoding"
)

// Option configures the behavior of Parse, Delineate, Recompute, Repack, Encode and Dump.
// Options that do not apply to an operation are ignored by it.
type Option struct {
	apply func(*options)
}

type options struct {
	classifier    *Classifier
	keepTruncated bool
	encoding      encoding.Encoding
	err           error
}

func collectOptions(opts []Option) options {
	o := options{classifier: DefaultClassifier, encoding: defaultCharacterRepertoire}
	for _, opt := range opts {
		if opt.apply != nil {
			opt.apply(&o)
		}
	}
	return o
}

// WithClassifier replaces DefaultClassifier. The same Classifier must be used for every pass over
// a tree, otherwise repacked lengths will not match the parsed layout.
func WithClassifier(c *Classifier) Option {
	return Option{func(o *options) {
		if c != nil {
			o.classifier = c
		}
	}}
}

// KeepTruncatedPayloads makes Delineate leave a node as a leaf when its payload does not parse
// completely as a nested sequence. By default the partial children replace the payload.
var KeepTruncatedPayloads = Option{func(o *options) {
	o.keepTruncated = true
}}

// WithCharset selects the character set Dump uses to render payloads, given as a DICOM Specific
// Character Set defined term such as "ISO_IR 100" or "ISO_IR 192".
func WithCharset(term string) Option {
	return Option{func(o *options) {
		coding, err := lookupEncoding(term)
		if err != nil {
			o.err = fmt.Errorf("selecting charset: %v", err)
			return
		}
		o.encoding = coding
	}}
}

// WithEncoding selects the encoding Dump uses to render payloads.
func WithEncoding(enc encoding.Encoding) Option {
	return Option{func(o *options) {
		if enc != nil {
			o.encoding = enc
		}
	}}
}
