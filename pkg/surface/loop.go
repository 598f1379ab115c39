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

package surface

import (
	"context"
	"errors"
	"sync"
)

// ErrLoopClosed is returned for work submitted to a stopped Loop.
var ErrLoopClosed = errors.New("surface loop is closed")

// Loop runs tasks one at a time, in submission order, on the goroutine
// that called Run.
type Loop struct {
	tasks     chan func()
	quit      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
	runOnce   sync.Once
}

// NewLoop creates a loop with room for backlog queued tasks.
func NewLoop(backlog int) *Loop {
	if backlog < 0 {
		backlog = 0
	}
	return &Loop{
		tasks:   make(chan func(), backlog),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Run executes tasks until ctx ends or Close is called. Tasks still
// queued at that point are dropped. Run may only be called once.
func (l *Loop) Run(ctx context.Context) error {
	err := ErrLoopClosed
	l.runOnce.Do(func() {
		defer close(l.stopped)
		for {
			select {
			case <-ctx.Done():
				err = ctx.Err()
				return
			case <-l.quit:
				err = nil
				return
			case task := <-l.tasks:
				task()
			}
		}
	})
	return err
}

// Start runs the loop on a new goroutine.
func (l *Loop) Start(ctx context.Context) {
	go func() { _ = l.Run(ctx) }()
}

// Close stops the loop after the task in progress, if any.
func (l *Loop) Close() {
	l.closeOnce.Do(func() { close(l.quit) })
}

// Stopped is closed once Run has returned.
func (l *Loop) Stopped() <-chan struct{} {
	return l.stopped
}

// Post queues task without waiting for it to run.
func (l *Loop) Post(ctx context.Context, task func()) error {
	select {
	case <-l.quit:
		return ErrLoopClosed
	case <-l.stopped:
		return ErrLoopClosed
	default:
	}
	select {
	case l.tasks <- task:
		return nil
	case <-l.quit:
		return ErrLoopClosed
	case <-l.stopped:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do runs task on the loop and waits for its result.
func (l *Loop) Do(ctx context.Context, task func() error) error {
	_, err := Call(ctx, l, func() (struct{}, error) {
		return struct{}{}, task()
	})
	return err
}

type callResult[T any] struct {
	value T
	err   error
}

// Call runs task on l and returns its value. The value is handed over on
// the result channel only, so a task that completes after the caller gave
// up writes nothing the caller can observe.
func Call[T any](ctx context.Context, l *Loop, task func() (T, error)) (T, error) {
	var zero T
	result := make(chan callResult[T], 1)
	if err := l.Post(ctx, func() {
		v, err := task()
		result <- callResult[T]{value: v, err: err}
	}); err != nil {
		return zero, err
	}
	select {
	case r := <-result:
		return r.value, r.err
	case <-l.stopped:
		// The task may have completed just before the loop stopped.
		select {
		case r := <-result:
			return r.value, r.err
		default:
			return zero, ErrLoopClosed
		}
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
