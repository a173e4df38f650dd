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

// Parse splits data into a sequence of leaf Nodes. data must not include the preamble and magic
// marker; see StripHeader.
//
// Parsing never fails. When a header or payload needs more bytes than remain, a Truncated
// Diagnostic is reported and the Nodes parsed so far are returned. Callers decide whether a
// truncated result is acceptable with Diagnostics.Truncated. Tag pairs whose layout had to be
// guessed are reported as UnknownLayout.
//
// Payloads are copied, the returned Nodes do not reference data.
func Parse(data []byte, opts ...Option) ([]*Node, Diagnostics) {
	o := collectOptions(opts)
	return parseRange(data, o.classifier, ParsePass)
}

func parseRange(data []byte, c *Classifier, pass Pass) ([]*Node, Diagnostics) {
	dr := newDcmReader(data)
	nodes := make([]*Node, 0)
	var diags Diagnostics

	for dr.Remaining() > 0 {
		node, nodeDiags := readNode(dr, c, pass)
		diags = append(diags, nodeDiags...)
		if node == nil {
			return nodes, diags
		}
		nodes = append(nodes, node)
	}

	return nodes, diags
}

// readNode reads one Node. It returns a nil Node if the range is truncated.
func readNode(dr *dcmReader, c *Classifier, pass Pass) (*Node, Diagnostics) {
	offset := dr.Offset()
	truncated := func(a, b Tag, want int64) Diagnostics {
		return Diagnostics{{
			Pass: pass, Kind: Truncated, A: a, B: b, Offset: offset,
			Want: want, Have: int64(dr.Remaining()),
		}}
	}

	if dr.Remaining() < directOverhead {
		var a Tag
		if dr.Remaining() >= tagSize {
			a = TagFromBytes(dr.data[dr.pos:])
		}
		return nil, truncated(a, 0, directOverhead)
	}
	a, _ := dr.Tag()
	b, _ := dr.Tag()

	var diags Diagnostics
	mode, guessed := c.Mode(a, b)
	if guessed {
		diags = append(diags, Diagnostic{Pass: pass, Kind: UnknownLayout, A: a, B: b, Offset: offset})
	}

	var amount int64
	switch mode {
	case Direct:
		amount = int64(uint32(b))
	case TrailingWord:
		amount = int64(b.Words()[1])
	case Extended:
		length, err := dr.UInt32()
		if err != nil {
			return nil, append(diags, truncated(a, b, 4)...)
		}
		amount = int64(length)
	}

	if int64(dr.Remaining()) < amount {
		return nil, append(diags, truncated(a, b, amount)...)
	}

	payload, _ := dr.Bytes(int(amount))
	return &Node{A: a, B: b, Size: amount, Payload: payload}, diags
}
