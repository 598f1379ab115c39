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

// Package xmlrender turns structured XML documents into something a signer
// can read: the document is optionally validated against an XSD and then
// transformed with the XSLT stylesheet supplied by the signing client.
package xmlrender

import (
	"context"

	"github.com/pomali/autogram/pkg/document"
	"github.com/pomali/autogram/pkg/errtypes"
	"github.com/pomali/autogram/pkg/logging"
	"github.com/pomali/autogram/pkg/tracing"
)

// Processing stages reported in errtypes.Error.Stage.
const (
	StageSchema         = "schema"
	StageTransformation = "transformation"
)

// SchemaValidator checks an XML document against an XSD schema.
type SchemaValidator interface {
	Validate(content, schema []byte) error
}

// Transformer applies an XSLT stylesheet to an XML document.
type Transformer interface {
	Transform(content, stylesheet []byte) ([]byte, error)
}

// Output is the transformed document and the content type the stylesheet
// declared for it.
type Output struct {
	Content     string
	ContentType string
}

// PlainText reports whether the output is shown as plain text. Any other
// output type is treated as markup and must go through a sandboxed frame.
func (o Output) PlainText() bool {
	return document.IsMediaType(o.ContentType, document.MimePlain)
}

// Options configures a Renderer.
type Options struct {
	Validator   SchemaValidator // Validator defaults to the libxml2 XSD validator.
	Transformer Transformer     // Transformer defaults to the libxslt transformer.
	Logger      logging.Logger  // Logger is used for debug output.
}

// Renderer validates and transforms XML documents.
type Renderer struct {
	validator   SchemaValidator
	transformer Transformer
	logger      logging.Logger
}

// New creates a Renderer, filling in the cgo-backed defaults for anything
// not supplied.
func New(opts Options) *Renderer {
	r := &Renderer{
		validator:   opts.Validator,
		transformer: opts.Transformer,
		logger:      logging.EnsureLogger(opts.Logger),
	}
	if r.validator == nil {
		r.validator = LibXMLValidator{}
	}
	if r.transformer == nil {
		r.transformer = XSLTTransformer{}
	}
	return r
}

// Render validates doc against params.Schema when one is given and then
// applies params.Transformation.
//
// A schema failure is returned as ErrTypeSchemaValidation and the
// stylesheet is never run. Without a stylesheet the XML is returned
// verbatim as plain text so it is never interpreted as markup.
func (r *Renderer) Render(ctx context.Context, doc *document.Document, params document.Parameters) (Output, error) {
	var out Output
	attrs := map[string]interface{}{
		tracing.AttrDocumentName: doc.Filename(),
		"xml.schema":             params.HasSchema(),
		"xml.transformation":     params.HasTransformation(),
	}
	err := tracing.Run(ctx, "RenderXML", attrs, func(ctx context.Context) error {
		var err error
		out, err = r.render(ctx, doc, params)
		return err
	})
	return out, err
}

func (r *Renderer) render(ctx context.Context, doc *document.Document, params document.Parameters) (Output, error) {
	log := r.logger.WithField(logging.FieldDocument, doc.Filename())
	content := doc.Content()

	if params.HasSchema() {
		if err := ctx.Err(); err != nil {
			return Output{}, err
		}
		log.WithField(logging.FieldStage, StageSchema).Debugln("Validating document against schema")
		if err := r.validator.Validate(content, []byte(params.Schema)); err != nil {
			return Output{}, errtypes.New(errtypes.ErrTypeSchemaValidation, doc.Filename(), StageSchema,
				"document does not conform to its schema", err)
		}
	}

	if !params.HasTransformation() {
		log.Debugln("No transformation supplied, presenting XML as plain text")
		return Output{Content: string(content), ContentType: document.MimePlain}, nil
	}

	if err := ctx.Err(); err != nil {
		return Output{}, err
	}
	log.Debug("Applying transformation (output type %q)", params.TransformationOutputType)
	transformed, err := r.transformer.Transform(content, []byte(params.Transformation))
	if err != nil {
		return Output{}, errtypes.New(errtypes.ErrTypeTransformation, doc.Filename(), StageTransformation,
			"stylesheet could not be applied", err)
	}

	return Output{Content: string(transformed), ContentType: params.TransformationOutputType}, nil
}
