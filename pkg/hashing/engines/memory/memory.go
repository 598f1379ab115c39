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

// Package memory provides in-memory hash engines for SHA-256, SHA-384,
// SHA-512 and BLAKE2b-512 and registers them with package hashengines.
package memory

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"golang.org/x/crypto/blake2b"

	"github.com/pomali/autogram/pkg/hashing/digests"
	hashengines "github.com/pomali/autogram/pkg/hashing/engines"
)

// Algorithm names.
const (
	SHA256  = "sha256"
	SHA384  = "sha384"
	SHA512  = "sha512"
	BLAKE2b = "blake2b"
)

func init() {
	hashengines.MustRegister(SHA256, func() (hashengines.StreamingHashEngine, error) {
		return NewSHA256(nil), nil
	})
	hashengines.MustRegister(SHA384, func() (hashengines.StreamingHashEngine, error) {
		return NewSHA384(nil), nil
	})
	hashengines.MustRegister(SHA512, func() (hashengines.StreamingHashEngine, error) {
		return NewSHA512(nil), nil
	})
	hashengines.MustRegister(BLAKE2b, func() (hashengines.StreamingHashEngine, error) {
		return NewBLAKE2b(nil)
	})
}

var _ hashengines.StreamingHashEngine = (*Engine)(nil)

// Engine wraps any hash.Hash as a StreamingHashEngine.
type Engine struct {
	name    string
	size    int
	newHash func() (hash.Hash, error)
	h       hash.Hash
}

// New creates an engine from a hash constructor and writes initialData.
func New(name string, size int, newHash func() (hash.Hash, error), initialData []byte) (*Engine, error) {
	h, err := newHash()
	if err != nil {
		return nil, err
	}
	e := &Engine{name: name, size: size, newHash: newHash, h: h}
	e.Update(initialData)
	return e, nil
}

func infallible(f func() hash.Hash) func() (hash.Hash, error) {
	return func() (hash.Hash, error) { return f(), nil }
}

// NewSHA256 returns a SHA-256 engine.
func NewSHA256(initialData []byte) *Engine {
	e, _ := New(SHA256, sha256.Size, infallible(sha256.New), initialData)
	return e
}

// NewSHA384 returns a SHA-384 engine.
func NewSHA384(initialData []byte) *Engine {
	e, _ := New(SHA384, sha512.Size384, infallible(sha512.New384), initialData)
	return e
}

// NewSHA512 returns a SHA-512 engine.
func NewSHA512(initialData []byte) *Engine {
	e, _ := New(SHA512, sha512.Size, infallible(sha512.New), initialData)
	return e
}

// NewBLAKE2b returns an unkeyed BLAKE2b-512 engine.
func NewBLAKE2b(initialData []byte) (*Engine, error) {
	return New(BLAKE2b, blake2b.Size, func() (hash.Hash, error) {
		return blake2b.New512(nil)
	}, initialData)
}

// Update appends data to the hash state.
func (e *Engine) Update(data []byte) {
	if len(data) > 0 {
		_, _ = e.h.Write(data)
	}
}

// Reset starts over, optionally seeded with data.
func (e *Engine) Reset(data []byte) {
	// The constructor succeeded once in New, so it does not fail here.
	e.h, _ = e.newHash()
	e.Update(data)
}

// Compute returns the digest of the data written so far.
func (e *Engine) Compute() (digests.Digest, error) {
	return digests.NewDigest(e.name, e.h.Sum(nil)), nil
}

// DigestName returns the algorithm name.
func (e *Engine) DigestName() string {
	return e.name
}

// DigestSize returns the digest length in bytes.
func (e *Engine) DigestSize() int {
	return e.size
}
