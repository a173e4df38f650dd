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

// Package export encodes a parsed tree as deterministic CBOR for other tools to consume.
package export

import (
	"fmt"
	"io"

	"github.com/GoogleCloudPlatform/go-dicom-repack/dicom"
	"github.com/fxamacker/cbor/v2"
)

// Element is the exported form of a dicom.Node, annotated with how it was classified.
type Element struct {
	A     uint32 `cbor:"a"`
	B     uint32 `cbor:"b"`
	Group uint16 `cbor:"group"`
	Elem  uint16 `cbor:"element"`

	// VR is the type code held by B, if any.
	VR      string `cbor:"vr,omitempty"`
	Mode    string `cbor:"mode"`
	Guessed bool   `cbor:"guessed,omitempty"`

	Size     int64     `cbor:"size"`
	Payload  []byte    `cbor:"payload,omitempty"`
	Children []Element `cbor:"children,omitempty"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	if encMode, err = cbor.CoreDetEncOptions().EncMode(); err != nil {
		panic(err)
	}
	// Every level of a tree adds a map and an array.
	if decMode, err = (cbor.DecOptions{MaxNestedLevels: 65535, MaxArrayElements: 1 << 27}).DecMode(); err != nil {
		panic(err)
	}
}

// Tree converts nodes, recursively, into Elements classified by c.
func Tree(nodes []*dicom.Node, c *dicom.Classifier) []Element {
	out := make([]Element, 0, len(nodes))
	for _, n := range nodes {
		mode, guessed := c.Mode(n.A, n.B)
		e := Element{
			A:       uint32(n.A),
			B:       uint32(n.B),
			Group:   n.A.Group(),
			Elem:    n.A.Element(),
			Mode:    mode.String(),
			Guessed: guessed,
			Size:    n.Size,
		}
		if vr, ok := dicom.VRHint(n.B); ok && mode != dicom.Direct {
			e.VR = vr.Name
		}
		if n.IsLeaf() {
			e.Payload = n.Payload
		} else {
			e.Children = Tree(n.Children, c)
		}
		out = append(out, e)
	}
	return out
}

// Nodes converts Elements back into a tree.
func Nodes(elems []Element) []*dicom.Node {
	out := make([]*dicom.Node, 0, len(elems))
	for _, e := range elems {
		n := &dicom.Node{A: dicom.Tag(e.A), B: dicom.Tag(e.B), Size: e.Size}
		if len(e.Children) != 0 {
			n.Children = Nodes(e.Children)
		} else if len(e.Payload) != 0 {
			n.Payload = e.Payload
		}
		out = append(out, n)
	}
	return out
}

// Marshal returns the CBOR encoding of nodes.
func Marshal(nodes []*dicom.Node, c *dicom.Classifier) ([]byte, error) {
	data, err := encMode.Marshal(Tree(nodes, c))
	if err != nil {
		return nil, fmt.Errorf("marshal tree: %w", err)
	}
	return data, nil
}

// Write writes the CBOR encoding of nodes to w.
func Write(w io.Writer, nodes []*dicom.Node, c *dicom.Classifier) error {
	if err := encMode.NewEncoder(w).Encode(Tree(nodes, c)); err != nil {
		return fmt.Errorf("write tree: %w", err)
	}
	return nil
}

// Unmarshal decodes a tree written by Marshal or Write.
func Unmarshal(data []byte) ([]Element, error) {
	var elems []Element
	if err := decMode.Unmarshal(data, &elems); err != nil {
		return nil, fmt.Errorf("unmarshal tree: %w", err)
	}
	return elems, nil
}
