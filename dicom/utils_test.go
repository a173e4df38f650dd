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
	"encoding/binary"
	"errors"
)

// directElement encodes a Node whose B is the 4-byte payload length.
func directElement(a Tag, payload []byte) []byte {
	out := tagBytes(a)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(payload)))
	return append(out, payload...)
}

// trailingElement encodes a Node whose B is a type code followed by a 2-byte payload length.
func trailingElement(a Tag, code string, payload []byte) []byte {
	out := tagBytes(a)
	out = append(out, code[0], code[1])
	out = binary.LittleEndian.AppendUint16(out, uint16(len(payload)))
	return append(out, payload...)
}

// extendedElement encodes a Node whose B is a type code and two reserved bytes followed by a
// separate 4-byte payload length.
func extendedElement(a Tag, code string, payload []byte) []byte {
	out := tagBytes(a)
	out = append(out, code[0], code[1], 0, 0)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(payload)))
	return append(out, payload...)
}

func tagBytes(t Tag) []byte {
	b := t.Bytes()
	return append([]byte{}, b[:]...)
}

func concat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

func withHeader(body []byte) []byte {
	return append(Header(), body...)
}

var (
	roiNumberTag = NewTag(0x3006, 0x0022)

	metaElements = concat(
		trailingElement(FileMetaInformationGroupLengthTag, "UL", []byte{0xCA, 0x00, 0x00, 0x00}),
		extendedElement(FileMetaInformationVersionTag, "OB", []byte{0x00, 0x01}),
		trailingElement(TransferSyntaxUIDTag, "UI", []byte("1.2.840.10008.1.2\x00")),
	)

	parotidItem = directElement(ItemTag, concat(
		directElement(roiNumberTag, []byte("1 ")),
		directElement(ROINameTag, []byte("L PAROTID ")),
	))

	cordItem = directElement(ItemTag, concat(
		directElement(roiNumberTag, []byte("2 ")),
		directElement(ROINameTag, []byte("CORD")),
	))

	structureSetROISequence = directElement(StructureSetROISequenceTag, concat(parotidItem, cordItem))

	contourData = directElement(ContourDataTag, []byte("1.5\\-2.25\\3.0\\4.5\\5.75\\-6.0"))

	pixelData = directElement(PixelDataTag, []byte{0x10, 0x00, 0x20, 0x00, 0x30, 0x00, 0x40, 0x00, 0x50, 0x00})

	// rtstructBody is a file body using only tags with a known layout.
	rtstructBody = concat(metaElements, structureSetROISequence, contourData, pixelData)
)

func cloneNodes(nodes []*Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		c := &Node{A: n.A, B: n.B, Size: n.Size}
		if n.Payload != nil {
			c.Payload = append([]byte{}, n.Payload...)
		}
		if n.Children != nil {
			c.Children = cloneNodes(n.Children)
		}
		out = append(out, c)
	}
	return out
}

func sizes(nodes []*Node) []int64 {
	out := make([]int64, 0)
	walk(nodes, func(n *Node, _ int) {
		out = append(out, n.Size)
	})
	return out
}

var errWriteFailed = errors.New("write failed")

type failingWriter struct{}

func (*failingWriter) Write([]byte) (int, error) {
	return 0, errWriteFailed
}
