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

func TestTag_FileRepresentation(t *testing.T) {
	tag := TagFromBytes([]byte{0x02, 0x00, 0x01, 0x00})

	assert.Equal(t, FileMetaInformationVersionTag, tag)
	assert.EqualValues(t, 65538, tag)
	assert.Equal(t, [4]byte{0x02, 0x00, 0x01, 0x00}, tag.Bytes())
	assert.Equal(t, [2]uint16{0x0002, 0x0001}, tag.Words())
	assert.EqualValues(t, 0x0002, tag.Group())
	assert.EqualValues(t, 0x0001, tag.Element())
	assert.Equal(t, "(0002,0001)", tag.String())
}

func TestTag_ItemTag(t *testing.T) {
	assert.Equal(t, [4]byte{0xFE, 0xFF, 0x00, 0xE0}, ItemTag.Bytes())
	assert.Equal(t, "(FFFE,E000)", ItemTag.String())
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		in   string
		want Tag
	}{
		{"(3006,0026)", ROINameTag},
		{"3006,0026", ROINameTag},
		{" ( fffe , e000 ) ", ItemTag},
		{"0x00010002", FileMetaInformationVersionTag},
		{"0X00010002", FileMetaInformationVersionTag},
		{"65538", FileMetaInformationVersionTag},
		{"0010", Tag(10)},
		{"0x0010", Tag(16)},
		{"*", Wildcard},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseTag(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseTag_Invalid(t *testing.T) {
	for _, in := range []string{"", "(3006)", "(3006,0026,0000)", "(30060,0026)", "(zzzz,0000)", "0x100000000", "ROIName", "0x", "0x1G", "0b101", "0o17", "-1"} {
		t.Run(in, func(t *testing.T) {
			if _, err := ParseTag(in); err == nil {
				t.Fatalf("ParseTag(%q): expected error", in)
			}
		})
	}
}

func TestParseTags(t *testing.T) {
	tags, err := ParseTags([]string{"(3006,0020)", "*"})
	require.NoError(t, err)
	assert.Equal(t, []Tag{StructureSetROISequenceTag, Wildcard}, tags)

	_, err = ParseTags([]string{"(3006,0020)", "bad"})
	assert.Error(t, err)
}
