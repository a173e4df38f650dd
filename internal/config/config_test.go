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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/GoogleCloudPlatform/go-dicom-repack/dicom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dcmrepack.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "dcmrepack.toml"))
	require.NoError(t, err)

	vendor := dicom.NewTag(0x3007, 0x1010)
	assert.Equal(t, "ISO_IR 192", cfg.Charset)
	assert.True(t, cfg.KeepTruncated)
	assert.Equal(t, []dicom.Tag{vendor}, cfg.Rules.NotDirect)
	assert.Equal(t, []dicom.Tag{dicom.NewTag(0x0002, 0x0013), vendor}, cfg.Rules.TrailingWord)
	assert.Equal(t, []dicom.Tag{dicom.NewTag(0x0009, 0x1010)}, cfg.Rules.Extended)
	assert.Equal(t, []dicom.Tag{dicom.ContourDataTag}, cfg.Rules.NeverExpand)
	assert.Empty(t, cfg.Rules.Direct)
	assert.Empty(t, cfg.Rules.AlwaysExpand)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "# nothing set\n"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, DefaultCharset, cfg.Charset)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "charset = \n"},
		{"unknown key", "verbose = true\n"},
		{"unknown rule", "[rules]\nsometimes_expand = [\"(3006,0050)\"]\n"},
		{"bad tag", "[rules]\ndirect = [\"(3006)\"]\n"},
		{"wildcard", "[rules]\nnever_expand = [\"*\"]\n"},
		{"bad charset", "charset = \"EBCDIC\"\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.content)); err == nil {
				t.Fatalf("Load(%q): expected error", tc.content)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfig_Classifier(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "dcmrepack.toml"))
	require.NoError(t, err)
	c := cfg.Classifier()

	b := dicom.TagFromBytes([]byte("OB\x00\x00"))
	mode, guessed := c.Mode(dicom.NewTag(0x0009, 0x1010), b)
	assert.Equal(t, dicom.Extended, mode)
	assert.False(t, guessed)

	// Not direct even though the length bytes are binary.
	mode, guessed = c.Mode(dicom.NewTag(0x3007, 0x1010), dicom.TagFromBytes([]byte{0x10, 0x00, 0x04, 0x00}))
	assert.Equal(t, dicom.TrailingWord, mode)
	assert.False(t, guessed)

	assert.False(t, c.IsExpandable(&dicom.Node{A: dicom.ContourDataTag, Payload: make([]byte, 16)}))
}

func TestConfig_Options(t *testing.T) {
	vendor := dicom.NewTag(0x0009, 0x1010)
	body := []byte{0x09, 0x00, 0x10, 0x10, 'O', 'B', 0, 0, 2, 0, 0, 0, 0xAA, 0xBB}

	_, diags := dicom.Parse(body, Default().Options()...)
	assert.True(t, diags.Guessed())

	cfg := Default()
	cfg.Rules.Extended = []dicom.Tag{vendor}
	nodes, diags := dicom.Parse(body, cfg.Options()...)
	require.Empty(t, diags)
	require.Len(t, nodes, 1)
	assert.Equal(t, []byte{0xAA, 0xBB}, nodes[0].Payload)
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, Default().Validate())

	cfg := Default()
	cfg.Charset = ""
	assert.Error(t, cfg.Validate())
}
