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

// Invalidate marks the Size of every Node as UnknownSize and drops the Payload of every Node that
// has Children. It must run before Recompute whenever any part of the tree may have changed.
func Invalidate(nodes []*Node) {
	walk(nodes, func(n *Node, _ int) {
		n.Size = UnknownSize
		if len(n.Children) != 0 {
			n.Payload = nil
		}
	})
}

// Recompute sets the Size of every Node from the bottom up and returns the number of bytes the
// sequence occupies when repacked. A leaf's Size is the length of its Payload. An internal
// Node's Size is the sum of its Children's Sizes plus their tag/length headers, whose length
// depends on the Classifier's verdict for each child.
func Recompute(nodes []*Node, opts ...Option) (uint64, Diagnostics) {
	o := collectOptions(opts)
	var diags Diagnostics

	// Children follow their parent in pre-order, so walking it backwards visits every child
	// before its parent.
	order := preOrder(nodes)
	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		if len(n.Children) == 0 {
			n.Size = int64(len(n.Payload))
			continue
		}
		size := int64(0)
		for _, child := range n.Children {
			size += child.Size + headerLength(o.classifier, child, &diags)
		}
		n.Size = size
	}

	total := int64(0)
	for _, n := range nodes {
		total += n.Size + headerLength(o.classifier, n, &diags)
	}
	return uint64(total), diags
}

func headerLength(c *Classifier, n *Node, diags *Diagnostics) int64 {
	mode, guessed := c.Mode(n.A, n.B)
	if guessed {
		*diags = append(*diags, Diagnostic{Pass: RecomputePass, Kind: UnknownLayout, A: n.A, B: n.B})
	}
	return Overhead(mode)
}

// derivedSize computes the Size n would have after Recompute without modifying the tree.
func derivedSize(c *Classifier, n *Node) int64 {
	order := preOrder([]*Node{n})
	sizes := make(map[*Node]int64, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		m := order[i]
		if len(m.Children) == 0 {
			sizes[m] = int64(len(m.Payload))
			continue
		}
		size := int64(0)
		for _, child := range m.Children {
			mode, _ := c.Mode(child.A, child.B)
			size += sizes[child] + Overhead(mode)
		}
		sizes[m] = size
	}
	return sizes[n]
}

func preOrder(nodes []*Node) []*Node {
	order := make([]*Node, 0, len(nodes))
	walk(nodes, func(n *Node, _ int) {
		order = append(order, n)
	})
	return order
}
