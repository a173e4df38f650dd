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
	"bytes"
	"fmt"
	"io"
	"math"
)

// Repack serializes nodes, recursively, into the layout Parse reads. The preamble and magic
// marker are not written; see Header.
//
// Every Node's length field is written according to the Classifier's verdict for its current A
// and B, and holds its Size. Sizes must be brought up to date with Invalidate and Recompute after
// any change to the tree. A Node that still has UnknownSize is written with a size derived from its
// payloads and reported as StaleSize.
func Repack(nodes []*Node, opts ...Option) ([]byte, Diagnostics) {
	var buf bytes.Buffer
	// bytes.Buffer writes do not fail
	diags, _ := Encode(&buf, nodes, opts...)
	return buf.Bytes(), diags
}

// Encode writes nodes to w like Repack. It only fails when w does.
func Encode(w io.Writer, nodes []*Node, opts ...Option) (Diagnostics, error) {
	o := collectOptions(opts)
	dw := &dcmWriter{w}
	var diags Diagnostics
	var err error

	// A Node's Children are written right after its header, which is exactly pre-order.
	walk(nodes, func(n *Node, _ int) {
		if err != nil {
			return
		}
		if writeErr := writeNode(dw, o.classifier, n, &diags); writeErr != nil {
			err = fmt.Errorf("writing element %v: %v", n.A, writeErr)
		}
	})

	return diags, err
}

func writeNode(dw *dcmWriter, c *Classifier, n *Node, diags *Diagnostics) error {
	size := n.Size
	if size < 0 {
		*diags = append(*diags, Diagnostic{Pass: RepackPass, Kind: StaleSize, A: n.A, B: n.B})
		size = derivedSize(c, n)
	}

	if err := dw.Tag(n.A); err != nil {
		return fmt.Errorf("writing A: %v", err)
	}
	if err := writeLength(dw, c, n, size, diags); err != nil {
		return err
	}

	if len(n.Children) != 0 {
		return nil
	}
	if err := dw.Bytes(n.Payload); err != nil {
		return fmt.Errorf("writing payload: %v", err)
	}
	return nil
}

func writeLength(dw *dcmWriter, c *Classifier, n *Node, size int64, diags *Diagnostics) error {
	mode, guessed := c.Mode(n.A, n.B)
	if guessed {
		*diags = append(*diags, Diagnostic{Pass: RepackPass, Kind: UnknownLayout, A: n.A, B: n.B})
	}

	switch mode {
	case Direct:
		if err := dw.UInt32(uint32(size)); err != nil {
			return fmt.Errorf("writing 32 bit length: %v", err)
		}
	case TrailingWord:
		if size > math.MaxUint16 {
			*diags = append(*diags, Diagnostic{
				Pass: RepackPass, Kind: Overflow, A: n.A, B: n.B,
				Want: size, Have: math.MaxUint16,
			})
		}
		if err := dw.Word(n.B); err != nil {
			return fmt.Errorf("writing type code: %v", err)
		}
		if err := dw.UInt16(uint16(size)); err != nil {
			return fmt.Errorf("writing 16 bit length: %v", err)
		}
	case Extended:
		if err := dw.Tag(n.B); err != nil {
			return fmt.Errorf("writing B: %v", err)
		}
		if err := dw.UInt32(uint32(size)); err != nil {
			return fmt.Errorf("writing 32 bit length: %v", err)
		}
	}

	return nil
}
