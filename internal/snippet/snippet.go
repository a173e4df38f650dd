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

// Package snippet surveys a raw buffer as alternating runs of printable and binary bytes. Runs
// that repeat across a file usually mark fixed structure, such as a tag and its type code, which
// helps when adding an unfamiliar layout to a classifier table.
package snippet

import (
	"bufio"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
)

// Run is a maximal sequence of bytes that are all printable or all binary.
type Run struct {
	Data      []byte
	Printable bool
}

// ID identifies the content of the Run. Identical runs share an ID.
func (r Run) ID() uint64 {
	return xxhash.Sum64(r.Data)
}

// Survey holds the runs of a buffer in order and how often each distinct run occurs.
type Survey struct {
	Runs   []Run
	counts map[string]int
}

// New splits data into runs.
func New(data []byte) *Survey {
	s := &Survey{Runs: make([]Run, 0), counts: map[string]int{}}
	start := 0
	for i := 1; i <= len(data); i++ {
		if i < len(data) && isPrintable(data[i]) == isPrintable(data[start]) {
			continue
		}
		run := Run{Data: data[start:i], Printable: isPrintable(data[start])}
		s.Runs = append(s.Runs, run)
		s.counts[string(run.Data)]++
		start = i
	}
	return s
}

// Freq returns the number of times the content of r occurs as a run.
func (s *Survey) Freq(r Run) int {
	return s.counts[string(r.Data)]
}

// Distinct returns the number of distinct runs.
func (s *Survey) Distinct() int {
	return len(s.counts)
}

// Columns selects the fields written before each run.
type Columns struct {
	Freq bool
	ID   bool
	Size bool
	Kind bool
}

// AllColumns selects every field.
var AllColumns = Columns{Freq: true, ID: true, Size: true, Kind: true}

// Write writes one line per run. Printable runs are written as is, binary runs as 3-digit decimal
// bytes.
func Write(w io.Writer, s *Survey, cols Columns) error {
	bw := bufio.NewWriter(w)
	for _, r := range s.Runs {
		if cols.Freq {
			fmt.Fprintf(bw, "FREQ %4dx: ", s.Freq(r))
		}
		if cols.ID {
			fmt.Fprintf(bw, "ID_%016x: ", r.ID())
		}
		if cols.Size {
			fmt.Fprintf(bw, "size: %4d ", len(r.Data))
		}
		if cols.Kind {
			if r.Printable {
				bw.WriteString("STR: ")
			} else {
				bw.WriteString("BIN: ")
			}
		}

		if r.Printable {
			bw.Write(r.Data)
		} else {
			for _, b := range r.Data {
				fmt.Fprintf(bw, "%03d ", b)
			}
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing snippets: %v", err)
	}
	return nil
}

func isPrintable(b byte) bool {
	return b >= 32 && b <= 126
}
