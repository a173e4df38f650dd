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
	"golang.org/x/text/encoding/unicode"
)

func TestCollectOptions_Defaults(t *testing.T) {
	o := collectOptions(nil)
	assert.Same(t, DefaultClassifier, o.classifier)
	assert.False(t, o.keepTruncated)
	assert.Equal(t, defaultCharacterRepertoire, o.encoding)
	assert.NoError(t, o.err)
}

func TestCollectOptions(t *testing.T) {
	c := NewClassifier()
	o := collectOptions([]Option{
		WithClassifier(c),
		KeepTruncatedPayloads,
		WithEncoding(unicode.UTF8),
		WithClassifier(nil),
		WithEncoding(nil),
		{},
	})

	assert.Same(t, c, o.classifier)
	assert.True(t, o.keepTruncated)
	assert.Equal(t, unicode.UTF8, o.encoding)
}

func TestWithCharset(t *testing.T) {
	o := collectOptions([]Option{WithCharset("ISO_IR 144")})
	require.NoError(t, o.err)
	text, err := o.encoding.NewDecoder().Bytes([]byte{0xD0})
	require.NoError(t, err)
	assert.Equal(t, "\u0430", string(text))

	o = collectOptions([]Option{WithCharset("Klingon")})
	assert.Error(t, o.err)
	assert.Equal(t, defaultCharacterRepertoire, o.encoding)
}
