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
	"mime"
	"strings"
)

// Content types recognized by the visualization dispatch.
const (
	MimeXML   = "application/xml"
	MimePDF   = "application/pdf"
	MimePlain = "text/plain"
	MimeHTML  = "text/html"
)

// Parameters describe how an XML document is turned into something the
// signer can read. They are supplied together with the document and are
// not modified afterwards.
type Parameters struct {
	// Transformation is the XSLT stylesheet source.
	Transformation string
	// TransformationOutputType is the content type the stylesheet produces.
	TransformationOutputType string
	// Schema is an optional XSD source the document is validated against
	// before the transformation runs.
	Schema string
}

// HasSchema reports whether schema validation was requested.
func (p Parameters) HasSchema() bool {
	return strings.TrimSpace(p.Schema) != ""
}

// HasTransformation reports whether a stylesheet was supplied.
func (p Parameters) HasTransformation() bool {
	return strings.TrimSpace(p.Transformation) != ""
}

// OutputIsPlainText reports whether the transformation produces plain text.
func (p Parameters) OutputIsPlainText() bool {
	return IsMediaType(p.TransformationOutputType, MimePlain)
}

// IsMediaType compares the media type of contentType with want, ignoring
// parameters such as charset and letter case.
func IsMediaType(contentType, want string) bool {
	return mediaType(contentType) == want
}

// IsXML reports whether contentType declares an XML document, including
// structured suffixes such as application/xades+xml.
func IsXML(contentType string) bool {
	mt := mediaType(contentType)
	return mt == MimeXML || mt == "text/xml" || strings.HasSuffix(mt, "+xml")
}

// IsPDF reports whether contentType declares a PDF document.
func IsPDF(contentType string) bool {
	return mediaType(contentType) == MimePDF
}

func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt, _, _ = strings.Cut(contentType, ";")
	}
	return strings.ToLower(strings.TrimSpace(mt))
}
