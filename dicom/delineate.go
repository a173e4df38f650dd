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

// Delineate expands, in place and depth-first, every Node whose payload the Classifier judges to
// be a nested sequence. An expanded Node has its payload parsed into Children and its Payload
// cleared, then its Children are delineated in turn. Nodes that already have Children are not
// re-parsed, so running Delineate again on its own result changes nothing.
//
// A payload that yields no Nodes at all is kept as is. A payload that parses only partially is
// replaced by the Nodes parsed before the truncation unless KeepTruncatedPayloads is given.
func Delineate(nodes []*Node, opts ...Option) Diagnostics {
	o := collectOptions(opts)
	var diags Diagnostics

	walk(nodes, func(n *Node, _ int) {
		if !o.classifier.IsExpandable(n) {
			return
		}
		children, nested := parseRange(n.Payload, o.classifier, DelineatePass)
		if len(children) == 0 || (o.keepTruncated && nested.Truncated()) {
			return
		}
		diags = append(diags, nested...)
		n.Children = children
		n.Payload = nil
	})

	return diags
}
