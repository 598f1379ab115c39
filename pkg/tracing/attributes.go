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

package tracing

// ServiceName is reported when OTEL_SERVICE_NAME is unset.
const ServiceName = "autogram"

const instrumentationName = "github.com/pomali/autogram"

// Span attribute keys.
const (
	AttrDocumentName  = "autogram.document.name"
	AttrDocumentID    = "autogram.document.id"
	AttrContentType   = "autogram.document.content_type"
	AttrVisualization = "autogram.visualization.path"
	AttrDPI           = "autogram.pdf.dpi"
	AttrSignatureID   = "autogram.signature.id"
	AttrSignatures    = "autogram.report.signatures"
	AttrError         = "error"
	AttrErrorMessage  = "error.message"
)
