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

package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentIsImmutable(t *testing.T) {
	content := []byte("hello")
	doc := New("note.txt", "text/plain", content)

	content[0] = 'j'
	assert.Equal(t, []byte("hello"), doc.Content())

	out := doc.Content()
	out[0] = 'y'
	assert.Equal(t, []byte("hello"), doc.Content())
	assert.Equal(t, 5, doc.Size())
}

func TestDocumentIdentityIsPerInstance(t *testing.T) {
	a := New("same.pdf", MimePDF, []byte("%PDF"))
	b := New("same.pdf", MimePDF, []byte("%PDF"))
	assert.NotEqual(t, a.ID(), b.ID())

	id := uuid.New()
	c := NewWithID(id, "same.pdf", MimePDF, nil)
	assert.Equal(t, id, c.ID())
}

func TestNames(t *testing.T) {
	tests := []struct {
		filename string
		base     string
		ext      string
	}{
		{"contract.PDF", "contract", "pdf"},
		{"archive.tar.gz", "archive.tar", "gz"},
		{"README", "README", ""},
		{"dir/sub/invoice.xml", "invoice", "xml"},
		{".hidden", "", "hidden"},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			doc := New(tt.filename, "", nil)
			assert.Equal(t, tt.base, doc.BaseName())
			assert.Equal(t, tt.ext, doc.Extension())
		})
	}
}

func TestMediaTypes(t *testing.T) {
	assert.True(t, IsXML("application/xml"))
	assert.True(t, IsXML("text/xml; charset=utf-8"))
	assert.True(t, IsXML("application/vnd.gov.sk.xmldatacontainer+xml"))
	assert.False(t, IsXML("application/pdf"))

	assert.True(t, IsPDF("Application/PDF"))
	assert.False(t, IsPDF("application/pdfx"))

	assert.True(t, Parameters{TransformationOutputType: "text/plain; charset=UTF-8"}.OutputIsPlainText())
	assert.False(t, Parameters{TransformationOutputType: "text/html"}.OutputIsPlainText())
	assert.False(t, Parameters{}.OutputIsPlainText())
}

func TestParametersPresence(t *testing.T) {
	p := Parameters{Schema: "  ", Transformation: "<xsl:stylesheet/>"}
	assert.False(t, p.HasSchema())
	assert.True(t, p.HasTransformation())
}

func TestFromFileDetectsDeclaredType(t *testing.T) {
	dir := t.TempDir()

	xmlPath := filepath.Join(dir, "order.xml")
	require.NoError(t, os.WriteFile(xmlPath, []byte(`<?xml version="1.0"?><order id="1"/>`), 0o644))
	doc, err := FromFile(xmlPath, "")
	require.NoError(t, err)
	assert.Equal(t, "order.xml", doc.Filename())
	assert.Equal(t, MimeXML, doc.ContentType())

	pdfPath := filepath.Join(dir, "scan.pdf")
	require.NoError(t, os.WriteFile(pdfPath, []byte("%PDF-1.4\n%%EOF\n"), 0o644))
	doc, err = FromFile(pdfPath, "")
	require.NoError(t, err)
	assert.Equal(t, MimePDF, doc.ContentType())

	doc, err = FromFile(pdfPath, "application/octet-stream")
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", doc.ContentType())

	_, err = FromFile(filepath.Join(dir, "missing.pdf"), "")
	assert.Error(t, err)
}
