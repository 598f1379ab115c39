// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hashing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pomali/autogram/pkg/document"
)

func TestSum(t *testing.T) {
	tests := []struct {
		name      string
		algorithm string
		data      string
		wantHex   string
		wantAlgo  string
		wantErr   bool
	}{
		{
			name:      "sha256",
			algorithm: "sha256",
			data:      "abc",
			wantHex:   "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
			wantAlgo:  "sha256",
		},
		{
			name:     "default algorithm",
			data:     "abc",
			wantHex:  "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
			wantAlgo: "sha256",
		},
		{
			name:      "blake2b",
			algorithm: "BLAKE2b",
			data:      "abc",
			wantHex:   "ba80a53f981c4d0d6a2797b69f12f6e94c212f14685ac4b74b12bb6fdbffa2d17d87c5392aab792dc252d5de4533cc9518d38aa8dbf1925ab92386edd4009923",
			wantAlgo:  "blake2b",
		},
		{
			name:      "unknown algorithm",
			algorithm: "md5",
			data:      "abc",
			wantErr:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Sum(tt.algorithm, []byte(tt.data))
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, d.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHex, d.Hex())
			assert.Equal(t, tt.wantAlgo, d.Algorithm())
		})
	}
}

func TestFingerprintDocument(t *testing.T) {
	a := document.New("a.txt", document.MimePlain, []byte("same bytes"))
	b := document.New("b.txt", document.MimePlain, []byte("same bytes"))

	da, err := Fingerprint(a, "")
	require.NoError(t, err)
	db, err := Fingerprint(b, "")
	require.NoError(t, err)

	// Fingerprints follow content, identifiers follow instances.
	assert.True(t, da.Equal(db))
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestCSPSource(t *testing.T) {
	assert.Equal(t, "'sha256-47DEQpj8HBSa+/TImW+5JCeuQeRkm5NMpJWZG3hSuFU='", CSPSource(nil))
	assert.NotEqual(t, CSPSource([]byte("a")), CSPSource([]byte("b")))
}
