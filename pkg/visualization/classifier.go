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
	"sort"

	"github.com/pomali/autogram/pkg/document"
)

// previewable is the fixed allow-list of extensions that may be shown to
// the signer. Content is never sniffed: a file outside this list is
// unsupported whatever its bytes claim to be.
var previewable = map[string]struct{}{
	"pdf":  {},
	"doc":  {},
	"docx": {},
	"odt":  {},
	"txt":  {},
	"xml":  {},
	"rtf":  {},
	"png":  {},
	"gif":  {},
	"tif":  {},
	"tiff": {},
	"bmp":  {},
	"jpg":  {},
	"jpeg": {},
	"xsd":  {},
	"xls":  {},
}

// PreviewableExtensions returns the allow-list in sorted order.
func PreviewableExtensions() []string {
	out := make([]string, 0, len(previewable))
	for ext := range previewable {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// IsPreviewable reports whether filename carries an allow-listed extension.
// The comparison ignores letter case.
func IsPreviewable(filename string) bool {
	_, ok := previewable[document.Extension(filename)]
	return ok
}

// Path is the rendering path selected for a document.
type Path int

const (
	// PathUnsupported means the document cannot be previewed; only the
	// native fallback is offered and signing stays disabled.
	PathUnsupported Path = iota
	// PathXML routes to the schema validation and XSLT renderer.
	PathXML
	// PathPDF routes to the page rasterizer.
	PathPDF
	// PathNative covers the remaining previewable formats, which are only
	// ever opened in an external viewer.
	PathNative
)

func (p Path) String() string {
	switch p {
	case PathXML:
		return "xml"
	case PathPDF:
		return "pdf"
	case PathNative:
		return "native"
	default:
		return "unsupported"
	}
}

// Classify selects the rendering path from the filename and the declared
// content type. It is pure: the document content is never inspected.
func Classify(doc *document.Document) Path {
	if !IsPreviewable(doc.Filename()) {
		return PathUnsupported
	}
	switch ct := doc.ContentType(); {
	case document.IsXML(ct):
		return PathXML
	case document.IsPDF(ct):
		return PathPDF
	default:
		return PathNative
	}
}
