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

// Package visualization decides how a document is presented to the signer
// and produces the matching Outcome.
//
// A document is first classified by its extension and declared content
// type (see Classify). XML documents are validated and transformed by
// package xmlrender, PDFs are rasterized by package pdfrender and every
// other previewable format is left to an external viewer. Rendering errors
// are returned as *errtypes.Error and are never turned into an
// unsupported outcome, because the signer has not seen the content.
package visualization

import (
	"context"
	"fmt"

	"github.com/pomali/autogram/pkg/document"
	"github.com/pomali/autogram/pkg/errtypes"
	"github.com/pomali/autogram/pkg/logging"
	"github.com/pomali/autogram/pkg/tracing"
	"github.com/pomali/autogram/pkg/visualization/pdfrender"
	"github.com/pomali/autogram/pkg/visualization/xmlrender"
)

// nativeMessage is shown for previewable formats that have no in-app view.
const nativeMessage = "Document %s can be reviewed in an external application before signing."

// XMLRenderer validates and transforms XML documents.
type XMLRenderer interface {
	Render(ctx context.Context, doc *document.Document, params document.Parameters) (xmlrender.Output, error)
}

// Rasterizer renders PDF documents to page images.
type Rasterizer interface {
	Rasterize(ctx context.Context, doc *document.Document, dpi float64) ([][]byte, error)
}

// Ensure the default renderers satisfy the interfaces at compile time.
var (
	_ XMLRenderer = (*xmlrender.Renderer)(nil)
	_ Rasterizer  = (*pdfrender.Rasterizer)(nil)
)

// RendererOptions configures a Renderer.
type RendererOptions struct {
	XML    XMLRenderer    // XML defaults to xmlrender.New.
	PDF    Rasterizer     // PDF defaults to pdfrender.New.
	DPI    float64        // DPI is the page resolution, pdfrender.DefaultDPI if zero.
	Logger logging.Logger // Logger is used for debug and info output.
}

// Renderer dispatches documents to the rendering path chosen by Classify.
type Renderer struct {
	xml    XMLRenderer
	pdf    Rasterizer
	dpi    float64
	logger logging.Logger
}

// NewRenderer creates a Renderer.
func NewRenderer(opts RendererOptions) *Renderer {
	logger := logging.EnsureLogger(opts.Logger)
	r := &Renderer{
		xml:    opts.XML,
		pdf:    opts.PDF,
		dpi:    opts.DPI,
		logger: logger,
	}
	if r.xml == nil {
		r.xml = xmlrender.New(xmlrender.Options{Logger: logger})
	}
	if r.pdf == nil {
		r.pdf = pdfrender.New(pdfrender.Options{Logger: logger})
	}
	if r.dpi <= 0 {
		r.dpi = pdfrender.DefaultDPI
	}
	return r
}

// DPI returns the resolution PDF pages are rendered at.
func (r *Renderer) DPI() float64 {
	return r.dpi
}

// Render produces exactly one Outcome for doc.
//
// Unsupported documents are not an error: they yield a KindUnsupported
// outcome carrying a message with the file name. Schema, transformation
// and rasterization failures are returned as errors.
func (r *Renderer) Render(ctx context.Context, doc *document.Document, params document.Parameters) (Outcome, error) {
	path := Classify(doc)
	log := r.logger.WithFields(map[string]interface{}{
		logging.FieldDocument:   doc.Filename(),
		logging.FieldDocumentID: doc.ID().String(),
		logging.FieldPath:       path.String(),
	})

	var out Outcome
	attrs := map[string]interface{}{
		tracing.AttrDocumentName:  doc.Filename(),
		tracing.AttrDocumentID:    doc.ID().String(),
		tracing.AttrContentType:   doc.ContentType(),
		tracing.AttrVisualization: path.String(),
	}
	err := tracing.Run(ctx, "ClassifyAndRender", attrs, func(ctx context.Context) error {
		var err error
		out, err = r.render(ctx, path, doc, params)
		return err
	})
	if err != nil {
		log.Warn("Visualization failed: %v", err)
		return Outcome{}, err
	}
	log.Debug("Visualization ready (%s)", out.Kind)
	return out, nil
}

func (r *Renderer) render(ctx context.Context, path Path, doc *document.Document, params document.Parameters) (Outcome, error) {
	switch path {
	case PathXML:
		res, err := r.xml.Render(ctx, doc, params)
		if err != nil {
			return Outcome{}, err
		}
		if res.PlainText() {
			return Outcome{Kind: KindPlainText, Text: res.Content}, nil
		}
		return Outcome{Kind: KindMarkupFrame, Markup: res.Content}, nil

	case PathPDF:
		pages, err := r.pdf.Rasterize(ctx, doc, r.dpi)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Kind: KindPageImages, Pages: pages}, nil

	case PathNative:
		return Outcome{Kind: KindNative, Message: fmt.Sprintf(nativeMessage, doc.Filename())}, nil

	default:
		return Outcome{
			Kind:    KindUnsupported,
			Message: errtypes.Message(errtypes.ErrTypeUnsupportedFormat, doc.Filename()),
		}, nil
	}
}
