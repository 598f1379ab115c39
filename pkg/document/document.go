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

// Package document defines the document submitted for signing and the
// parameters that control how it is presented to the signer.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Document is the content a signer is asked to sign.
//
// Document is immutable: fields are unexported and Content returns a copy.
// The ID identifies one logical document instance within a signing session;
// two documents with identical bytes still receive different IDs.
type Document struct {
	id          uuid.UUID
	filename    string
	contentType string
	content     []byte
}

// New creates a document with a fresh identifier.
func New(filename, contentType string, content []byte) *Document {
	return NewWithID(uuid.New(), filename, contentType, content)
}

// NewWithID creates a document with a caller-supplied identifier, e.g. one
// received from a web client that refers to the same document again.
func NewWithID(id uuid.UUID, filename, contentType string, content []byte) *Document {
	c := make([]byte, len(content))
	copy(c, content)
	return &Document{
		id:          id,
		filename:    filename,
		contentType: strings.TrimSpace(contentType),
		content:     c,
	}
}

// FromFile reads a document from disk. When contentType is empty the
// declared type is detected from the bytes; detection only fills in the
// declaration and never changes which preview path the extension allows.
func FromFile(path, contentType string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}
	if contentType == "" {
		contentType = DetectContentType(filepath.Base(path), content)
	}
	return New(filepath.Base(path), contentType, content), nil
}

// DetectContentType guesses a declared content type for content that
// arrived without one.
func DetectContentType(filename string, content []byte) string {
	mt := mimetype.Detect(content)
	// Plain XML is reported as text/xml; keep the application/xml spelling
	// used by signing clients.
	if mt.Is("text/xml") {
		return MimeXML
	}
	if mt.Is("text/plain") && strings.EqualFold(filepath.Ext(filename), ".xml") {
		return MimeXML
	}
	ct := mt.String()
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	return ct
}

// ID returns the stable identifier of the document instance.
func (d *Document) ID() uuid.UUID {
	return d.id
}

// Filename returns the display name, including its extension.
func (d *Document) Filename() string {
	return d.filename
}

// ContentType returns the declared content type.
func (d *Document) ContentType() string {
	return d.contentType
}

// Content returns a copy of the document bytes.
func (d *Document) Content() []byte {
	c := make([]byte, len(d.content))
	copy(c, d.content)
	return c
}

// Size returns the length of the content in bytes.
func (d *Document) Size() int {
	return len(d.content)
}

// Extension returns the lower-cased filename extension without the dot.
func (d *Document) Extension() string {
	return Extension(d.filename)
}

// BaseName returns the filename without directories and extension.
func (d *Document) BaseName() string {
	name := filepath.Base(d.filename)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Extension returns the lower-cased extension of filename without the dot.
func Extension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}
