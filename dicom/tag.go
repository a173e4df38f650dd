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
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

// Tag is one of the two leading 4-byte fields of a Node. The value is the little endian
// interpretation of the 4 bytes exactly as they appear in the file, so a standard DICOM tag
// (gggg,eeee) stored as group then element reads as uint32(eeee)<<16 | uint32(gggg).
//
// No byte swapping is ever performed: Bytes returns the original 4 bytes and Words the two
// 16-bit halves in file order.
type Tag uint32

// Wildcard matches any Tag at its depth of a Find path.
const Wildcard Tag = 0

// NewTag returns the Tag whose file representation is the DICOM tag (group,element).
func NewTag(group, element uint16) Tag {
	return Tag(uint32(element)<<16 | uint32(group))
}

// TagFromBytes interprets the first 4 bytes of b as a Tag.
func TagFromBytes(b []byte) Tag {
	return Tag(binary.LittleEndian.Uint32(b))
}

// Bytes returns the 4 bytes of the Tag in file order.
func (t Tag) Bytes() [4]byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(t))
	return b
}

// Words returns the two 16-bit halves of the Tag in file order.
func (t Tag) Words() [2]uint16 {
	return [2]uint16{uint16(t & 0xFFFF), uint16(t >> 16)}
}

// Group returns the group number when the Tag holds a DICOM tag.
func (t Tag) Group() uint16 {
	return t.Words()[0]
}

// Element returns the element number when the Tag holds a DICOM tag.
func (t Tag) Element() uint16 {
	return t.Words()[1]
}

// String renders the Tag as a DICOM (gggg,eeee) pair.
func (t Tag) String() string {
	return fmt.Sprintf("(%04X,%04X)", t.Group(), t.Element())
}

// ParseTag parses a Tag from one of the following forms:
//
//	(gggg,eeee) or gggg,eeee   hexadecimal DICOM group and element
//	0xNNNNNNNN                 raw value in hexadecimal
//	NNNNNNNNNN                 raw value in decimal
//	*                          Wildcard
func ParseTag(s string) (Tag, error) {
	s = strings.TrimSpace(s)
	if s == "*" {
		return Wildcard, nil
	}

	if strings.Contains(s, ",") {
		pair := strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
		parts := strings.Split(pair, ",")
		if len(parts) != 2 {
			return 0, fmt.Errorf("malformed tag %q: want (gggg,eeee)", s)
		}
		group, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 16, 16)
		if err != nil {
			return 0, fmt.Errorf("parsing group of %q: %v", s, err)
		}
		element, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 16, 16)
		if err != nil {
			return 0, fmt.Errorf("parsing element of %q: %v", s, err)
		}
		return NewTag(uint16(group), uint16(element)), nil
	}

	digits, base := s, 10
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		digits, base = s[2:], 16
	}
	v, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return 0, fmt.Errorf("parsing raw tag %q: %v", s, err)
	}
	return Tag(v), nil
}

// ParseTags parses every entry of ss with ParseTag.
func ParseTags(ss []string) ([]Tag, error) {
	tags := make([]Tag, 0, len(ss))
	for _, s := range ss {
		t, err := ParseTag(s)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, nil
}
