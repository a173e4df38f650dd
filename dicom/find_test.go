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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func delineatedTree(t *testing.T) []*Node {
	t.Helper()
	nodes, diags := Parse(rtstructBody)
	require.Empty(t, diags)
	require.Empty(t, Delineate(nodes))
	return nodes
}

func payloads(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, string(n.Payload))
	}
	return out
}

func TestFind(t *testing.T) {
	nodes := delineatedTree(t)

	tests := []struct {
		name string
		path []Tag
		want []string
	}{
		{
			name: "names",
			path: []Tag{StructureSetROISequenceTag, ItemTag, ROINameTag},
			want: []string{"L PAROTID ", "CORD"},
		},
		{
			name: "wildcard item",
			path: []Tag{StructureSetROISequenceTag, Wildcard, ROINameTag},
			want: []string{"L PAROTID ", "CORD"},
		},
		{
			name: "every element of every item",
			path: []Tag{StructureSetROISequenceTag, ItemTag, Wildcard},
			want: []string{"1 ", "L PAROTID ", "2 ", "CORD"},
		},
		{
			name: "top level",
			path: []Tag{ContourDataTag},
			want: []string{"1.5\\-2.25\\3.0\\4.5\\5.75\\-6.0"},
		},
		{
			name: "names are not top level",
			path: []Tag{ROINameTag},
			want: []string{},
		},
		{
			name: "path deeper than tree",
			path: []Tag{StructureSetROISequenceTag, ItemTag, ROINameTag, Wildcard},
			want: []string{},
		},
		{
			name: "empty path",
			path: nil,
			want: []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Find(nodes, tc.path...)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, payloads(got))
		})
	}
}

func TestFind_WildcardReturnsEveryNode(t *testing.T) {
	nodes := delineatedTree(t)

	got := Find(nodes, Wildcard)
	require.Len(t, got, len(nodes))
	for i := range nodes {
		assert.Same(t, nodes[i], got[i])
	}

	items := Find(nodes, Wildcard, Wildcard)
	assert.Equal(t, nodes[3].Children, items)
}

func TestFind_ReturnsTreeNodes(t *testing.T) {
	nodes := delineatedTree(t)

	for _, n := range Find(nodes, StructureSetROISequenceTag, ItemTag, ROINameTag) {
		n.Payload = []byte("BRAINSTEM ")
	}

	assert.Equal(t, []byte("BRAINSTEM "), nodes[3].Children[0].Children[1].Payload)
	assert.Equal(t, []byte("BRAINSTEM "), nodes[3].Children[1].Children[1].Payload)
}

func TestParsePath(t *testing.T) {
	path, err := ParsePath("(3006,0020)/(FFFE,E000)/*")
	require.NoError(t, err)
	assert.Equal(t, []Tag{StructureSetROISequenceTag, ItemTag, Wildcard}, path)

	path, err = ParsePath("/3006,0026/")
	require.NoError(t, err)
	assert.Equal(t, []Tag{ROINameTag}, path)

	for _, in := range []string{"", "/", " ", "(3006,0020)//(3006,0026)", "(3006,0020)/name"} {
		if _, err := ParsePath(in); err == nil {
			t.Errorf("ParsePath(%q): expected error", in)
		}
	}
}
