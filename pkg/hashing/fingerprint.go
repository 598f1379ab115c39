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

// Package hashing computes fingerprints of the exact bytes a signer is
// shown, so the preview and the signed content can be tied together.
package hashing

import (
	"fmt"

	"github.com/pomali/autogram/pkg/hashing/digests"
	hashengines "github.com/pomali/autogram/pkg/hashing/engines"
	"github.com/pomali/autogram/pkg/hashing/engines/memory"
)

// DefaultAlgorithm is used when no algorithm is configured.
const DefaultAlgorithm = memory.SHA256

// Sum hashes data with the named algorithm.
func Sum(algorithm string, data []byte) (digests.Digest, error) {
	if algorithm == "" {
		algorithm = DefaultAlgorithm
	}
	engine, err := hashengines.Create(algorithm)
	if err != nil {
		return digests.Digest{}, err
	}
	engine.Update(data)
	d, err := engine.Compute()
	if err != nil {
		return digests.Digest{}, fmt.Errorf("failed to compute %s digest: %w", algorithm, err)
	}
	return d, nil
}

// Content is anything exposing the bytes to fingerprint, such as
// *document.Document.
type Content interface {
	Content() []byte
}

// Fingerprint hashes the content of c with the named algorithm.
func Fingerprint(c Content, algorithm string) (digests.Digest, error) {
	return Sum(algorithm, c.Content())
}

// CSPSource returns the Content-Security-Policy hash source that allows
// the inline script or style with exactly the given bytes.
func CSPSource(inline []byte) string {
	d := memory.NewSHA256(inline)
	sum, _ := d.Compute()
	return fmt.Sprintf("'%s-%s'", sum.Algorithm(), sum.Base64())
}
