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

// Package cache keeps an on-disk copy of the document being signed so it
// can be handed to an external viewer.
//
// A Cache remembers the last path it wrote. It is not safe for concurrent
// use; callers serialize access (see package session).
package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pomali/autogram/pkg/document"
	"github.com/pomali/autogram/pkg/errtypes"
	"github.com/pomali/autogram/pkg/logging"
	"github.com/pomali/autogram/pkg/tracing"
)

// StageCache is reported in errtypes.Error.Stage.
const StageCache = "cache"

// DefaultDir returns <tmp>/<app>/documents.
func DefaultDir(app string) string {
	return filepath.Join(os.TempDir(), app, "documents")
}

// Options configures a Cache.
type Options struct {
	Dir    string         // Dir is the directory cached copies are written to.
	Logger logging.Logger // Logger is used for debug output.
}

// Cache writes documents to Dir, reusing the previous copy when the same
// document instance is requested again.
type Cache struct {
	dir    string
	cached string
	logger logging.Logger
}

// New creates a Cache. The directory is created lazily on first write.
func New(opts Options) *Cache {
	return &Cache{dir: opts.Dir, logger: logging.EnsureLogger(opts.Logger)}
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Cached returns the last path written, or "" if none.
func (c *Cache) Cached() string {
	return c.cached
}

// Target returns the path doc is cached at: <dir>/<base>-<id>.<ext>. The
// identifier keeps two documents sharing a display name apart.
func (c *Cache) Target(doc *document.Document) string {
	name := doc.BaseName() + "-" + doc.ID().String()
	if ext := doc.Extension(); ext != "" {
		name += "." + ext
	}
	return filepath.Join(c.dir, name)
}

// Resolve returns a path holding doc's content. When the previously
// cached path equals the target and the file still exists it is returned
// without any write. Otherwise the content is written atomically and
// becomes the cached path. Any I/O failure is returned as
// ErrTypeCacheWrite and leaves the previous cached path untouched.
func (c *Cache) Resolve(ctx context.Context, doc *document.Document) (string, error) {
	var path string
	attrs := map[string]interface{}{
		tracing.AttrDocumentName: doc.Filename(),
		tracing.AttrDocumentID:   doc.ID().String(),
	}
	err := tracing.Run(ctx, "ResolveNativeFallback", attrs, func(ctx context.Context) error {
		var err error
		path, err = c.resolve(ctx, doc)
		return err
	})
	return path, err
}

func (c *Cache) resolve(ctx context.Context, doc *document.Document) (string, error) {
	target := c.Target(doc)
	log := c.logger.WithFields(map[string]interface{}{
		logging.FieldDocument: doc.Filename(),
		logging.FieldPath:     target,
	})

	if c.cached == target {
		if _, err := os.Stat(target); err == nil {
			log.Debugln("Reusing cached document")
			return target, nil
		}
		log.Debugln("Cached document disappeared, writing it again")
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := writeAtomic(target, doc.Content()); err != nil {
		return "", errtypes.New(errtypes.ErrTypeCacheWrite, doc.Filename(), StageCache,
			"failed to write document copy", err)
	}
	log.Debugln("Wrote document copy")
	c.cached = target
	return target, nil
}

// writeAtomic writes data to a temporary file next to path and renames it
// into place, so path is either absent or complete.
func writeAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".autogram-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move document into place: %w", err)
	}
	return nil
}
