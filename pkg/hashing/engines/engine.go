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

// Package hashengines defines streaming hash engines and a registry that
// creates them by algorithm name.
//
// Engines are registered by the packages implementing them; import
// package memory for the built-in algorithms.
package hashengines

import "github.com/pomali/autogram/pkg/hashing/digests"

// HashEngine computes a digest of the data fed to it.
type HashEngine interface {
	// Compute returns the digest of everything written so far.
	Compute() (digests.Digest, error)
	// DigestName is the algorithm name recorded in computed digests.
	DigestName() string
	// DigestSize is the length of computed digests in bytes.
	DigestSize() int
}

// Streaming feeds data to an engine incrementally.
type Streaming interface {
	Update(data []byte)
	Reset(data []byte)
}

// StreamingHashEngine is a HashEngine that accepts incremental input.
type StreamingHashEngine interface {
	HashEngine
	Streaming
}
