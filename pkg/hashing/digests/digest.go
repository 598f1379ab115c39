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

// Package digests provides an immutable digest value tagged with the
// algorithm that produced it.
package digests

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// Digest is a computed hash. Fields are unexported and accessors copy, so
// a Digest can be shared freely.
type Digest struct {
	algorithm string
	value     []byte
}

// NewDigest copies value into a new Digest.
func NewDigest(algorithm string, value []byte) Digest {
	v := make([]byte, len(value))
	copy(v, value)
	return Digest{algorithm: algorithm, value: v}
}

// Algorithm returns the name of the hash algorithm, e.g. "sha256".
func (d Digest) Algorithm() string {
	return d.algorithm
}

// Value returns a copy of the raw digest bytes.
func (d Digest) Value() []byte {
	v := make([]byte, len(d.value))
	copy(v, d.value)
	return v
}

// Hex returns the lower-case hexadecimal encoding of the value.
func (d Digest) Hex() string {
	return hex.EncodeToString(d.value)
}

// Base64 returns the standard base64 encoding of the value, as used in
// Content-Security-Policy hash sources and Subresource Integrity.
func (d Digest) Base64() string {
	return base64.StdEncoding.EncodeToString(d.value)
}

// Size returns the length of the value in bytes.
func (d Digest) Size() int {
	return len(d.value)
}

// IsZero reports whether d holds no value.
func (d Digest) IsZero() bool {
	return d.algorithm == "" && len(d.value) == 0
}

// String formats the digest as "algorithm:hex".
func (d Digest) String() string {
	return fmt.Sprintf("%s:%s", d.algorithm, d.Hex())
}

// Equal reports whether both the algorithm and the value match.
func (d Digest) Equal(other Digest) bool {
	return d.algorithm == other.algorithm && bytes.Equal(d.value, other.value)
}

// MarshalText implements encoding.TextMarshaler using the String form.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
