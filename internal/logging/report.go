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

package logging

import (
	"github.com/GoogleCloudPlatform/go-dicom-repack/dicom"
	"github.com/rs/zerolog"
)

var messages = map[dicom.DiagnosticKind]string{
	dicom.UnknownLayout: "unfamiliar element, guessed trailing-word layout",
	dicom.Truncated:     "range truncated",
	dicom.Overflow:      "size exceeds 2-byte length",
	dicom.StaleSize:     "stale size derived during repack",
}

// Report logs every diagnostic as a warning with its fields.
func Report(logger zerolog.Logger, diags dicom.Diagnostics) {
	for _, d := range diags {
		msg, ok := messages[d.Kind]
		if !ok {
			msg = d.Kind.String()
		}

		e := logger.Warn().
			Str("pass", string(d.Pass)).
			Stringer("kind", d.Kind).
			Stringer("a", d.A).
			Stringer("b", d.B)
		switch d.Kind {
		case dicom.UnknownLayout:
			e = e.Int("offset", d.Offset).Hex("b_bytes", bytesOf(d.B))
		case dicom.Truncated:
			e = e.Int("offset", d.Offset).Int64("want", d.Want).Int64("have", d.Have)
		case dicom.Overflow:
			e = e.Int64("want", d.Want).Int64("have", d.Have)
		}
		e.Msg(msg)
	}
}

// Summary logs the number of diagnostics of each kind at info level.
func Summary(logger zerolog.Logger, diags dicom.Diagnostics) {
	counts := map[dicom.DiagnosticKind]int{}
	for _, d := range diags {
		counts[d.Kind]++
	}
	logger.Info().
		Int("unknown_layout", counts[dicom.UnknownLayout]).
		Int("truncated", counts[dicom.Truncated]).
		Int("overflow", counts[dicom.Overflow]).
		Int("stale_size", counts[dicom.StaleSize]).
		Msg("diagnostics")
}

func bytesOf(t dicom.Tag) []byte {
	b := t.Bytes()
	return b[:]
}
