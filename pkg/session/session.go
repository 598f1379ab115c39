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

// Package session holds the mutable state of one signing job.
//
// A Session owns the native-fallback cache entry and the active signing
// key. Every operation that touches that state runs on the session's
// surface.Loop, so there is exactly one writer.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/pomali/autogram/pkg/badge"
	"github.com/pomali/autogram/pkg/cache"
	"github.com/pomali/autogram/pkg/document"
	"github.com/pomali/autogram/pkg/logging"
	"github.com/pomali/autogram/pkg/surface"
	"github.com/pomali/autogram/pkg/tracing"
	"github.com/pomali/autogram/pkg/visualization"
)

var errNoCache = errors.New("session has no document cache")

// Sign button labels.
const (
	LabelLoadSigners = "Load signers"
	LabelSignAs      = "Sign as %s"
)

// SigningKey is the key chosen by the signer. Key access itself happens
// outside this module.
type SigningKey interface {
	DisplayName() string
}

// Renderer produces the visualization outcome for a document.
type Renderer interface {
	Render(ctx context.Context, doc *document.Document, params document.Parameters) (visualization.Outcome, error)
}

var _ Renderer = (*visualization.Renderer)(nil)

// Options configures a Session.
type Options struct {
	Renderer Renderer       // Renderer defaults to visualization.NewRenderer.
	Cache    *cache.Cache   // Cache is required for ResolveNativeFallback.
	Opener   cache.Opener   // Opener defaults to cache.SystemOpener.
	Backlog  int            // Backlog is the loop queue length.
	Logger   logging.Logger // Logger is used for debug and info output.
}

// Session is one interactive signing job.
type Session struct {
	renderer Renderer
	cache    *cache.Cache
	opener   cache.Opener
	loop     *surface.Loop
	logger   logging.Logger

	// Owned by the loop goroutine.
	activeKey SigningKey
}

// New creates a Session and starts its loop. The loop stops when ctx ends
// or Close is called.
func New(ctx context.Context, opts Options) *Session {
	logger := logging.EnsureLogger(opts.Logger)
	s := &Session{
		renderer: opts.Renderer,
		cache:    opts.Cache,
		opener:   opts.Opener,
		loop:     surface.NewLoop(opts.Backlog),
		logger:   logger,
	}
	if s.renderer == nil {
		s.renderer = visualization.NewRenderer(visualization.RendererOptions{Logger: logger})
	}
	if s.opener == nil {
		s.opener = cache.SystemOpener{}
	}
	s.loop.Start(ctx)
	return s
}

// Close stops the session loop. Pending operations fail with
// surface.ErrLoopClosed.
func (s *Session) Close() {
	s.loop.Close()
}

// Loop returns the loop session operations run on.
func (s *Session) Loop() *surface.Loop {
	return s.loop
}

// ClassifyAndRender classifies doc and renders it on the session loop.
func (s *Session) ClassifyAndRender(ctx context.Context, doc *document.Document, params document.Parameters) (visualization.Outcome, error) {
	return surface.Call(ctx, s.loop, func() (visualization.Outcome, error) {
		return s.renderer.Render(ctx, doc, params)
	})
}

// ResolveNativeFallback returns the path of the cached copy of doc,
// writing it if needed.
func (s *Session) ResolveNativeFallback(ctx context.Context, doc *document.Document) (string, error) {
	if s.cache == nil {
		return "", errNoCache
	}
	return surface.Call(ctx, s.loop, func() (string, error) {
		return s.cache.Resolve(ctx, doc)
	})
}

// OpenNative resolves the cached copy of doc and hands it to the external
// viewer.
func (s *Session) OpenNative(ctx context.Context, doc *document.Document) (string, error) {
	path, err := s.ResolveNativeFallback(ctx, doc)
	if err != nil {
		return "", err
	}
	s.logger.WithField(logging.FieldDocument, doc.Filename()).Info("Opening %s", path)
	if err := s.opener.Open(path); err != nil {
		return path, err
	}
	return path, nil
}

// ComposeBadges derives the badge set for one signature.
func (s *Session) ComposeBadges(ctx context.Context, rec badge.SignatureRecord) badge.Display {
	var d badge.Display
	_ = tracing.Run(ctx, "ComposeBadges", map[string]interface{}{
		tracing.AttrSignatureID: rec.ID,
	}, func(context.Context) error {
		d = badge.Compose(rec)
		s.logger.WithField(logging.FieldSignature, rec.ID).Debug("Composed %d badge(s): %s", len(d.Badges), d.Summary().Label)
		return nil
	})
	return d
}

// SetActiveKey records the key subsequent signatures use.
func (s *Session) SetActiveKey(ctx context.Context, key SigningKey) error {
	return s.loop.Do(ctx, func() error {
		s.activeKey = key
		return nil
	})
}

// ActiveKey returns the active signing key, or nil if none was chosen.
func (s *Session) ActiveKey(ctx context.Context) (SigningKey, error) {
	return surface.Call(ctx, s.loop, func() (SigningKey, error) {
		return s.activeKey, nil
	})
}

// SignButtonLabel returns the text of the main action button.
func (s *Session) SignButtonLabel(ctx context.Context) (string, error) {
	key, err := s.ActiveKey(ctx)
	if err != nil {
		return "", err
	}
	if key == nil {
		return LabelLoadSigners, nil
	}
	return fmt.Sprintf(LabelSignAs, key.DisplayName()), nil
}
