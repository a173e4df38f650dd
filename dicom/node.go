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
)

// UnknownSize marks a Node whose Size must be recomputed before it is repacked.
const UnknownSize int64 = -1

// Node is one parsed tag/length/value record, possibly delineated into children.
//
// A Node created by Parse is a leaf: Payload holds its value bytes and Size equals
// len(Payload). Delineate turns an expandable leaf into an internal node by parsing its payload
// into Children and clearing Payload. A Node may legitimately have neither payload nor children.
//
// Each Node exclusively owns its Children. Nodes are never shared between trees.
type Node struct {
	// A identifies the Node.
	A Tag

	// B is the secondary field. Depending on the Classifier's verdict for (A, B) it is the payload
	// length, a 2-character type code followed by the length, or a type code followed by a
	// separate 4-byte length.
	B Tag

	// Size is the number of payload bytes, excluding this Node's own tag/length header.
	// UnknownSize means the value must be recomputed.
	Size int64

	// Payload holds the value bytes of a leaf.
	Payload []byte

	// Children holds the delineated payload of an internal node.
	Children []*Node
}

// IsLeaf is true if the Node has not been delineated into children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Equal reports whether n and o are structurally identical, including all descendants.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.A != o.A || n.B != o.B || n.Size != o.Size {
		return false
	}
	if !bytes.Equal(n.Payload, o.Payload) {
		return false
	}
	return EqualNodes(n.Children, o.Children)
}

// EqualNodes reports whether two sequences of Nodes are structurally identical.
func EqualNodes(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Count returns the number of Nodes in the sequence, including all descendants.
func Count(nodes []*Node) int {
	total := 0
	walk(nodes, func(*Node, int) { total++ })
	return total
}

func (n *Node) String() string {
	return fmt.Sprintf("A = %v B = %v S = %d children = %d payload = %d bytes",
		n.A, n.B, n.Size, len(n.Children), len(n.Payload))
}

// walk visits every Node in pre-order, passing its depth. It uses an explicit stack so deeply
// nested input cannot exhaust the call stack.
func walk(nodes []*Node, visit func(n *Node, depth int)) {
	type frame struct {
		nodes []*Node
		depth int
	}
	stack := []frame{{nodes, 0}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if len(top.nodes) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		n := top.nodes[0]
		top.nodes = top.nodes[1:]
		depth := top.depth
		visit(n, depth)
		if len(n.Children) > 0 {
			stack = append(stack, frame{n.Children, depth + 1})
		}
	}
}
