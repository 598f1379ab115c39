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

// Package pdfrender rasterizes PDF documents to one PNG image per page.
package pdfrender

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/gen2brain/go-fitz"

	"github.com/pomali/autogram/pkg/document"
	"github.com/pomali/autogram/pkg/errtypes"
	"github.com/pomali/autogram/pkg/logging"
	"github.com/pomali/autogram/pkg/tracing"
)

// DefaultDPI is the resolution pages are rendered at unless configured.
const DefaultDPI = 100

// StageRasterization is reported in errtypes.Error.Stage.
const StageRasterization = "rasterization"

// Source is an opened PDF. Implementations must be safe to Close once.
type Source interface {
	NumPage() int
	ImageDPI(page int, dpi float64) (*image.RGBA, error)
	Close() error
}

// Opener opens PDF bytes for rendering.
type Opener func(content []byte) (Source, error)

// OpenFitz opens content with MuPDF.
func OpenFitz(content []byte) (Source, error) {
	d, err := fitz.NewFromMemory(content)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Options configures a Rasterizer.
type Options struct {
	Open   Opener         // Open defaults to OpenFitz.
	Logger logging.Logger // Logger is used for debug output.
}

// Rasterizer renders PDF pages to PNG images.
type Rasterizer struct {
	open   Opener
	logger logging.Logger
}

// New creates a Rasterizer.
func New(opts Options) *Rasterizer {
	open := opts.Open
	if open == nil {
		open = OpenFitz
	}
	return &Rasterizer{open: open, logger: logging.EnsureLogger(opts.Logger)}
}

// Rasterize renders every page of doc at dpi and returns the encoded PNGs
// in page order. The PDF handle is opened and closed within the call. A
// document without pages yields an empty, non-nil slice.
//
// Any failure is returned as ErrTypeRasterization; cancellation of ctx is
// checked between pages and returned unwrapped.
func (r *Rasterizer) Rasterize(ctx context.Context, doc *document.Document, dpi float64) ([][]byte, error) {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	var pages [][]byte
	attrs := map[string]interface{}{
		tracing.AttrDocumentName: doc.Filename(),
		tracing.AttrDPI:          dpi,
	}
	err := tracing.Run(ctx, "RasterizePDF", attrs, func(ctx context.Context) error {
		var err error
		pages, err = r.rasterize(ctx, doc, dpi)
		return err
	})
	return pages, err
}

func (r *Rasterizer) rasterize(ctx context.Context, doc *document.Document, dpi float64) (pages [][]byte, err error) {
	fail := func(msg string, cause error) error {
		return errtypes.New(errtypes.ErrTypeRasterization, doc.Filename(), StageRasterization, msg, cause)
	}

	src, err := r.open(doc.Content())
	if err != nil {
		return nil, fail("failed to open PDF", err)
	}
	defer func() {
		if cerr := src.Close(); cerr != nil && err == nil {
			pages, err = nil, fail("failed to close PDF", cerr)
		}
	}()

	n := src.NumPage()
	r.logger.WithField(logging.FieldDocument, doc.Filename()).Debug("Rendering %d page(s) at %v DPI", n, dpi)

	pages = make([][]byte, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := src.ImageDPI(i, dpi)
		if err != nil {
			return nil, fail(fmt.Sprintf("failed to render page %d", i+1), err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fail(fmt.Sprintf("failed to encode page %d", i+1), err)
		}
		pages = append(pages, buf.Bytes())
	}
	return pages, nil
}
