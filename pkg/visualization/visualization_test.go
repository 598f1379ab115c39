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

package visualization

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pomali/autogram/pkg/document"
	"github.com/pomali/autogram/pkg/errtypes"
	"github.com/pomali/autogram/pkg/logging"
	"github.com/pomali/autogram/pkg/visualization/xmlrender"
)

type stubXML struct {
	calls int
	out   xmlrender.Output
	err   error
}

func (s *stubXML) Render(context.Context, *document.Document, document.Parameters) (xmlrender.Output, error) {
	s.calls++
	return s.out, s.err
}

type stubPDF struct {
	calls int
	dpi   float64
	pages int
	err   error
}

func (s *stubPDF) Rasterize(_ context.Context, _ *document.Document, dpi float64) ([][]byte, error) {
	s.calls++
	s.dpi = dpi
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]byte, s.pages)
	for i := range out {
		out[i] = []byte{byte(i)}
	}
	return out, nil
}

func quietLogger() logging.Logger {
	return logging.NewLoggerWithOptions(logging.LoggerOptions{Level: logging.LevelSilent})
}

func TestIsPreviewable(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"contract.pdf", true},
		{"CONTRACT.PDF", true},
		{"scan.Tiff", true},
		{"form.xml", true},
		{"schema.xsd", true},
		{"sheet.xls", true},
		{"sheet.xlsx", false},
		{"slides.pptx", false},
		{"archive.zip", false},
		{"payload.exe", false},
		{"noextension", false},
		{"trailing.", false},
		{"pdf", false},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPreviewable(tt.filename))
		})
	}
	assert.Len(t, PreviewableExtensions(), 16)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		want        Path
	}{
		{"xml", "form.xml", "application/xml", PathXML},
		{"text xml", "form.xml", "text/xml; charset=utf-8", PathXML},
		{"structured xml", "sig.xml", "application/vnd.etsi.asic-e+xml", PathXML},
		{"pdf", "contract.pdf", "application/pdf", PathPDF},
		{"image", "scan.png", "image/png", PathNative},
		{"office", "letter.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", PathNative},
		{"pdf bytes with unknown extension", "contract.bin", "application/pdf", PathUnsupported},
		{"xml claim with unknown extension", "form.xhtml", "application/xml", PathUnsupported},
		{"xml extension declared as pdf", "form.xml", "application/pdf", PathPDF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := document.New(tt.filename, tt.contentType, nil)
			assert.Equal(t, tt.want, Classify(doc))
		})
	}
}

func TestRenderUnsupportedIgnoresContent(t *testing.T) {
	// Content that looks like a PDF or XML must not change the outcome.
	contents := map[string][]byte{
		"application/pdf": []byte("%PDF-1.7\n1 0 obj\n<<>>\nendobj\n"),
		"application/xml": []byte(`<?xml version="1.0"?><a/>`),
		"text/html":       []byte("<script>alert(1)</script>"),
	}
	for ct, content := range contents {
		xml, pdf := &stubXML{}, &stubPDF{}
		r := NewRenderer(RendererOptions{XML: xml, PDF: pdf, Logger: quietLogger()})

		out, err := r.Render(context.Background(), document.New("payload.dat", ct, content), document.Parameters{})
		require.NoError(t, err)
		assert.Equal(t, KindUnsupported, out.Kind)
		assert.False(t, out.Signable())
		assert.True(t, out.NeedsNativeViewer())
		assert.Contains(t, out.Message, "payload.dat")
		assert.Zero(t, xml.calls)
		assert.Zero(t, pdf.calls)
	}
}

func TestRenderXML(t *testing.T) {
	t.Run("plain text", func(t *testing.T) {
		xml := &stubXML{out: xmlrender.Output{Content: "Total: 10", ContentType: "text/plain"}}
		r := NewRenderer(RendererOptions{XML: xml, PDF: &stubPDF{}, Logger: quietLogger()})

		out, err := r.Render(context.Background(), document.New("a.xml", document.MimeXML, []byte("<a/>")), document.Parameters{})
		require.NoError(t, err)
		assert.Equal(t, Outcome{Kind: KindPlainText, Text: "Total: 10"}, out)
		assert.True(t, out.Signable())
	})

	t.Run("markup", func(t *testing.T) {
		xml := &stubXML{out: xmlrender.Output{Content: "<p>Total</p>", ContentType: "text/html"}}
		r := NewRenderer(RendererOptions{XML: xml, PDF: &stubPDF{}, Logger: quietLogger()})

		out, err := r.Render(context.Background(), document.New("a.xml", document.MimeXML, []byte("<a/>")), document.Parameters{})
		require.NoError(t, err)
		assert.Equal(t, KindMarkupFrame, out.Kind)
		assert.Equal(t, "<p>Total</p>", out.Markup)
		assert.Empty(t, out.Text)
	})

	t.Run("schema failure is not downgraded", func(t *testing.T) {
		schemaErr := errtypes.New(errtypes.ErrTypeSchemaValidation, "a.xml", xmlrender.StageSchema, "invalid", errors.New("cvc"))
		r := NewRenderer(RendererOptions{XML: &stubXML{err: schemaErr}, PDF: &stubPDF{}, Logger: quietLogger()})

		out, err := r.Render(context.Background(), document.New("a.xml", document.MimeXML, []byte("<a/>")), document.Parameters{})
		require.Error(t, err)
		assert.True(t, errtypes.IsType(err, errtypes.ErrTypeSchemaValidation))
		assert.Equal(t, Outcome{}, out)
	})
}

func TestRenderPDF(t *testing.T) {
	pdf := &stubPDF{pages: 3}
	r := NewRenderer(RendererOptions{XML: &stubXML{}, PDF: pdf, DPI: 150, Logger: quietLogger()})

	out, err := r.Render(context.Background(), document.New("c.pdf", document.MimePDF, []byte("%PDF")), document.Parameters{})
	require.NoError(t, err)
	assert.Equal(t, KindPageImages, out.Kind)
	require.Len(t, out.Pages, 3)
	for i, p := range out.Pages {
		assert.Equal(t, []byte{byte(i)}, p)
	}
	assert.Equal(t, 150.0, pdf.dpi)

	pdf.err = errtypes.New(errtypes.ErrTypeRasterization, "c.pdf", "rasterization", "broken", nil)
	_, err = r.Render(context.Background(), document.New("c.pdf", document.MimePDF, []byte("%PDF")), document.Parameters{})
	assert.True(t, errtypes.IsType(err, errtypes.ErrTypeRasterization))
}

func TestRenderNative(t *testing.T) {
	r := NewRenderer(RendererOptions{XML: &stubXML{}, PDF: &stubPDF{}, Logger: quietLogger()})

	out, err := r.Render(context.Background(), document.New("scan.jpg", "image/jpeg", []byte{0xff, 0xd8}), document.Parameters{})
	require.NoError(t, err)
	assert.Equal(t, KindNative, out.Kind)
	assert.True(t, out.Signable())
	assert.True(t, out.NeedsNativeViewer())
	assert.Contains(t, out.Message, "scan.jpg")
	assert.Empty(t, out.Markup)
}

func TestRendererDefaults(t *testing.T) {
	r := NewRenderer(RendererOptions{})
	assert.Equal(t, 100.0, r.DPI())
	assert.IsType(t, &xmlrender.Renderer{}, r.xml)
}

func TestOutcomeJSON(t *testing.T) {
	data, err := json.Marshal(Outcome{Kind: KindPageImages, Pages: [][]byte{[]byte("png")}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"page-images","signable":true,"pages":["cG5n"]}`, string(data))

	data, err = json.Marshal(Outcome{Kind: KindUnsupported, Message: "nope"})
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"signable":false`))
}
