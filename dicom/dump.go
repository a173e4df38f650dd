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
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

const dumpIndent = "    "

// Dump writes a human readable listing of nodes and all their descendants to w, one Node per
// line, indented by depth:
//
//	A = <tag> B = <tag> S = <size> [HAS_CHILD]
//	    A = <tag> B = <tag> S = <size> data = "<payload>"
//	A = <tag> B = <tag> S = <size> [_NO_DATA_]
//
// Tags are shown as a decimal value, their 4 bytes, their 2 words in hex and as a DICOM
// (gggg,eeee) pair. B is followed by its VR when its first two bytes name one. Payloads are
// decoded with the character set selected by WithCharset (Windows-1252 by default) and quoted.
func Dump(w io.Writer, nodes []*Node, opts ...Option) error {
	o := collectOptions(opts)
	if o.err != nil {
		return o.err
	}

	var err error
	walk(nodes, func(n *Node, depth int) {
		if err != nil {
			return
		}
		_, err = io.WriteString(w, dumpLine(n, depth, o)+"\n")
	})
	if err != nil {
		return fmt.Errorf("writing dump: %v", err)
	}
	return nil
}

func dumpLine(n *Node, depth int, o options) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(dumpIndent, depth))
	fmt.Fprintf(&b, "A = %s B = %s", formatTag(n.A), formatTag(n.B))
	if vr, ok := VRHint(n.B); ok && o.classifier.LengthIsNotDirect(n.A, n.B) {
		fmt.Fprintf(&b, " VR = %v", vr)
	}
	fmt.Fprintf(&b, " S = %9d ", n.Size)

	switch {
	case len(n.Children) != 0:
		b.WriteString("[HAS_CHILD]")
	case len(n.Payload) == 0:
		b.WriteString("[_NO_DATA_]")
	default:
		b.WriteString("data = ")
		b.WriteString(quotePayload(decodePayload(o.encoding, n.Payload)))
	}
	return b.String()
}

// quotePayload quotes decoded payload text like strconv.QuoteToGraphic, except that undecodable
// bytes and non-graphic runes in the Latin-1 range render as \xNN.
func quotePayload(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			fmt.Fprintf(&b, `\x%02x`, s[i])
		case r >= utf8.RuneSelf && r <= 0xFF && !strconv.IsGraphic(r):
			fmt.Fprintf(&b, `\x%02x`, r)
		default:
			q := strconv.QuoteToGraphic(s[i : i+size])
			b.WriteString(q[1 : len(q)-1])
		}
		i += size
	}
	b.WriteByte('"')
	return b.String()
}

func formatTag(t Tag) string {
	b := t.Bytes()
	w := t.Words()
	return fmt.Sprintf("%10d (%03d,%03d,%03d,%03d) (%04x,%04x) %v",
		uint32(t), b[0], b[1], b[2], b[3], w[0], w[1], t)
}
