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
	"io"
)

// dcmReader is a cursor over an in-memory byte range, providing convenience methods for
// reading tags, lengths and payloads. Reads never go past the end of the range.
type dcmReader struct {
	data []byte
	pos  int
}

func newDcmReader(data []byte) *dcmReader {
	return &dcmReader{data: data}
}

// Remaining returns the number of unread bytes.
func (dr *dcmReader) Remaining() int {
	return len(dr.data) - dr.pos
}

// Offset returns the number of bytes read so far.
func (dr *dcmReader) Offset() int {
	return dr.pos
}

// Tag returns the next 4 bytes as a Tag.
func (dr *dcmReader) Tag() (Tag, error) {
	v, err := dr.UInt32()
	return Tag(v), err
}

// UInt32 returns the next 4 bytes as a little endian uint32.
func (dr *dcmReader) UInt32() (uint32, error) {
	b, err := dr.peek(4)
	if err != nil {
		return 0, err
	}
	dr.pos += 4
	return binary.LittleEndian.Uint32(b), nil
}

// Bytes returns a copy of the next n bytes.
func (dr *dcmReader) Bytes(n int) ([]byte, error) {
	b, err := dr.peek(n)
	if err != nil {
		return nil, err
	}
	dr.pos += n
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

func (dr *dcmReader) peek(n int) ([]byte, error) {
	if n < 0 || dr.Remaining() < n {
		return nil, io.ErrUnexpectedEOF
	}
	return dr.data[dr.pos : dr.pos+n], nil
}
