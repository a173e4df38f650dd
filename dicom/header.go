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
	"errors"
	"fmt"
	"io"
)

const (
	// PreambleLength is the number of arbitrary bytes before the magic marker.
	PreambleLength = 128

	// Magic is the marker following the preamble.
	Magic = "DICM"

	// HeaderLength is the size of the preamble and the magic marker.
	HeaderLength = PreambleLength + len(Magic)
)

var (
	// ErrShortHeader means the buffer cannot hold a preamble and a magic marker.
	ErrShortHeader = errors.New("dicom: buffer shorter than preamble and magic")

	// ErrMissingMagic means the magic marker was not found after the preamble.
	ErrMissingMagic = errors.New("dicom: magic marker not found")
)

// ValidateHeader locates the magic marker after the preamble of data and returns the offset of
// the first byte after it. The bytes of the preamble are ignored. Starting at the end of the
// preamble, the first 4 consecutive non-zero bytes must be the magic marker.
func ValidateHeader(data []byte) (int, error) {
	if len(data) < HeaderLength {
		return 0, fmt.Errorf("validating header of %d bytes: %w", len(data), ErrShortHeader)
	}

	for i := PreambleLength; i+len(Magic) <= len(data); i++ {
		window := data[i : i+len(Magic)]
		if bytes.IndexByte(window, 0) >= 0 {
			continue
		}
		if string(window) != Magic {
			return 0, fmt.Errorf("found %q at offset %d: %w", window, i, ErrMissingMagic)
		}
		return i + len(Magic), nil
	}

	return 0, fmt.Errorf("validating header of %d bytes: %w", len(data), ErrMissingMagic)
}

// StripHeader returns the bytes of data following the magic marker.
func StripHeader(data []byte) ([]byte, error) {
	offset, err := ValidateHeader(data)
	if err != nil {
		return nil, err
	}
	return data[offset:], nil
}

// WriteHeader writes a zeroed preamble and the magic marker to w.
func WriteHeader(w io.Writer) error {
	dw := &dcmWriter{w}
	if err := dw.Bytes(make([]byte, PreambleLength)); err != nil {
		return fmt.Errorf("writing preamble: %v", err)
	}

	if err := dw.String(Magic); err != nil {
		return fmt.Errorf("writing magic: %v", err)
	}

	return nil
}

// Header returns a zeroed preamble followed by the magic marker.
func Header() []byte {
	var buf bytes.Buffer
	// bytes.Buffer writes do not fail
	_ = WriteHeader(&buf)
	return buf.Bytes()
}
