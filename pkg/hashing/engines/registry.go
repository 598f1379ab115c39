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

package hashengines

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Factory creates a fresh engine.
type Factory func() (StreamingHashEngine, error)

var (
	mu       sync.RWMutex
	registry = map[string]Factory{}
)

// normalize folds algorithm names so "SHA256" and "sha256" match.
func normalize(algorithm string) string {
	return strings.ToLower(strings.TrimSpace(algorithm))
}

// Register adds a factory for algorithm. Registering the same name twice
// is an error.
func Register(algorithm string, factory Factory) error {
	name := normalize(algorithm)
	if name == "" {
		return fmt.Errorf("algorithm name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory for %q cannot be nil", name)
	}

	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[name]; exists {
		return fmt.Errorf("hash algorithm %q already registered", name)
	}
	registry[name] = factory
	return nil
}

// MustRegister is Register for package init functions; it panics on error.
func MustRegister(algorithm string, factory Factory) {
	if err := Register(algorithm, factory); err != nil {
		panic(fmt.Sprintf("failed to register hash algorithm: %v", err))
	}
}

// Unregister removes algorithm from the registry.
func Unregister(algorithm string) error {
	name := normalize(algorithm)

	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[name]; !exists {
		return fmt.Errorf("hash algorithm %q not registered", name)
	}
	delete(registry, name)
	return nil
}

// Create returns a new engine for algorithm.
func Create(algorithm string) (StreamingHashEngine, error) {
	name := normalize(algorithm)

	mu.RLock()
	factory, exists := registry[name]
	mu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("unsupported hash algorithm %q (supported: %s)",
			algorithm, strings.Join(SupportedAlgorithms(), ", "))
	}

	engine, err := factory()
	if err != nil {
		return nil, fmt.Errorf("failed to create %s engine: %w", name, err)
	}
	return engine, nil
}

// IsSupported reports whether algorithm is registered.
func IsSupported(algorithm string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := registry[normalize(algorithm)]
	return ok
}

// SupportedAlgorithms returns the registered names in sorted order.
func SupportedAlgorithms() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
