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

// Package surface hands rendering outcomes to whatever displays them.
//
// Display surfaces load asynchronously. Each load is represented by a
// Ready value that is resolved exactly once; content is injected only
// after it fires. Work that must not run concurrently, such as cache
// resolution, is queued on a Loop.
package surface

import (
	"context"
	"sync"
)

// Ready is a one-shot completion signal for one surface load.
type Ready struct {
	once sync.Once
	done chan struct{}
	err  error
}

// NewReady returns an unresolved Ready.
func NewReady() *Ready {
	return &Ready{done: make(chan struct{})}
}

// Resolved returns a Ready that has already fired with err.
func Resolved(err error) *Ready {
	r := NewReady()
	r.Resolve(err)
	return r
}

// Resolve fires the signal. A nil err means the surface loaded; a non-nil
// err means the load failed. Only the first call has an effect; it
// reports whether this call was the one that resolved r.
func (r *Ready) Resolve(err error) bool {
	first := false
	r.once.Do(func() {
		r.err = err
		close(r.done)
		first = true
	})
	return first
}

// Done is closed once r is resolved.
func (r *Ready) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until r is resolved or ctx ends, returning the load error or
// the context error.
func (r *Ready) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return r.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
