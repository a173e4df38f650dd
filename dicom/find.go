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

// Find returns the Nodes reached by following path from nodes. path[0] is matched against nodes,
// path[1] against the Children of the matches, and so on; Wildcard matches any Tag. Only the
// Nodes matching the last entry of path are returned, in tree order.
//
// The returned pointers give direct access to Nodes of the tree, typically to rewrite their
// Payload. They must not be used after the tree is restructured by Delineate.
func Find(nodes []*Node, path ...Tag) []*Node {
	matches := make([]*Node, 0)
	if len(path) == 0 {
		return matches
	}
	find(&matches, nodes, path, 0)
	return matches
}

func find(matches *[]*Node, nodes []*Node, path []Tag, depth int) {
	for _, n := range nodes {
		if path[depth] != Wildcard && n.A != path[depth] {
			continue
		}
		if depth+1 == len(path) {
			*matches = append(*matches, n)
		} else if len(n.Children) != 0 {
			find(matches, n.Children, path, depth+1)
		}
	}
}

// ParsePath parses a Find path of '/' separated tags, each in a form accepted by ParseTag.
// For example "(3006,0020)/(FFFE,E000)/*".
func ParsePath(s string) ([]Tag, error) {
	s = strings.Trim(strings.TrimSpace(s), "/")
	if s == "" {
		return nil, fmt.Errorf("empty path")
	}
	return ParseTags(strings.Split(s, "/"))
}
