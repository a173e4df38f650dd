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
	"strings"
)

// Pass names the operation that produced a Diagnostic.
type Pass string

const (
	ParsePass     Pass = "parse"
	DelineatePass Pass = "delineate"
	RecomputePass Pass = "recompute"
	RepackPass    Pass = "repack"
)

// DiagnosticKind classifies a non-fatal condition met during a pass.
type DiagnosticKind int

const (
	// UnknownLayout means no table decided the length mode of a tag pair and the TrailingWord
	// guess was used. The tag should be added to one of the Classifier tables.
	UnknownLayout DiagnosticKind = iota

	// Truncated means a header or payload needed more bytes than remained. The nodes parsed
	// before it were kept and the rest of the range was dropped.
	Truncated

	// Overflow means a payload size did not fit the 2-byte length of a TrailingWord node and
	// was truncated when written.
	Overflow

	// StaleSize means a node reached the repacker without a recomputed size.
	StaleSize
)

func (k DiagnosticKind) String() string {
	switch k {
	case UnknownLayout:
		return "unknown-layout"
	case Truncated:
		return "truncated"
	case Overflow:
		return "overflow"
	case StaleSize:
		return "stale-size"
	default:
		return fmt.Sprintf("DiagnosticKind(%d)", int(k))
	}
}

// Diagnostic describes one non-fatal condition. Diagnostics never stop a pass.
type Diagnostic struct {
	Pass Pass
	Kind DiagnosticKind
	A    Tag
	B    Tag

	// Offset is the position of the node's A within the byte range being parsed. It is only
	// meaningful for the parse and delineate passes.
	Offset int

	// Want and Have are byte counts: the bytes needed and the bytes available for Truncated,
	// the size and the largest encodable size for Overflow.
	Want int64
	Have int64
}

func (d Diagnostic) String() string {
	switch d.Kind {
	case UnknownLayout:
		return fmt.Sprintf("%s: unfamiliar element A = %v B = %v (% X) at offset %d: guessed %v layout, add it to a classifier table",
			d.Pass, d.A, d.B, d.B.Bytes(), d.Offset, TrailingWord)
	case Truncated:
		return fmt.Sprintf("%s: element A = %v B = %v at offset %d needs %d bytes but %d remain",
			d.Pass, d.A, d.B, d.Offset, d.Want, d.Have)
	case Overflow:
		return fmt.Sprintf("%s: element A = %v B = %v size %d exceeds the %d byte limit of a 2-byte length",
			d.Pass, d.A, d.B, d.Want, d.Have)
	case StaleSize:
		return fmt.Sprintf("%s: element A = %v B = %v has a stale size, recompute sizes before repacking",
			d.Pass, d.A, d.B)
	default:
		return fmt.Sprintf("%s: %v A = %v B = %v", d.Pass, d.Kind, d.A, d.B)
	}
}

// Diagnostics is the ordered list of conditions met during one or more passes.
type Diagnostics []Diagnostic

// Truncated is true if any range stopped before its end.
func (ds Diagnostics) Truncated() bool {
	return ds.Has(Truncated)
}

// Guessed is true if any tag pair fell back to the guessed layout.
func (ds Diagnostics) Guessed() bool {
	return ds.Has(UnknownLayout)
}

// Has is true if any Diagnostic is of kind k.
func (ds Diagnostics) Has(k DiagnosticKind) bool {
	for _, d := range ds {
		if d.Kind == k {
			return true
		}
	}
	return false
}

func (ds Diagnostics) String() string {
	lines := make([]string, 0, len(ds))
	for _, d := range ds {
		lines = append(lines, d.String())
	}
	return strings.Join(lines, "\n")
}
