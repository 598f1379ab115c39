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

package cache

import (
	"fmt"
	"io"

	"github.com/pkg/browser"
)

// Opener hands a cached file to an external viewer.
type Opener interface {
	Open(path string) error
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(path string) error

// Open calls f(path).
func (f OpenerFunc) Open(path string) error {
	return f(path)
}

// SystemOpener opens files with the desktop's default application.
type SystemOpener struct {
	// Stdout and Stderr receive the output of the launcher. Nil discards it.
	Stdout io.Writer
	Stderr io.Writer
}

// Open launches the default application for path.
func (o SystemOpener) Open(path string) error {
	browser.Stdout = discardIfNil(o.Stdout)
	browser.Stderr = discardIfNil(o.Stderr)
	if err := browser.OpenFile(path); err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	return nil
}

func discardIfNil(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
