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
	"encoding/base64"
	"encoding/json"
)

// Kind tags the variant held by an Outcome.
type Kind int

const (
	KindUnsupported Kind = iota
	KindPlainText
	KindMarkupFrame
	KindPageImages
	KindNative
)

func (k Kind) String() string {
	switch k {
	case KindPlainText:
		return "plain-text"
	case KindMarkupFrame:
		return "markup-frame"
	case KindPageImages:
		return "page-images"
	case KindNative:
		return "native"
	default:
		return "unsupported"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Outcome is what the signer is shown for one document. Only the field
// matching Kind is set.
type Outcome struct {
	Kind Kind

	// Text is the content of a KindPlainText outcome.
	Text string
	// Markup is the untrusted markup of a KindMarkupFrame outcome. It must
	// only be displayed inside a sandboxed frame.
	Markup string
	// Pages holds one PNG per page of a KindPageImages outcome.
	Pages [][]byte
	// Message is the user-facing explanation for KindUnsupported and
	// KindNative outcomes.
	Message string
}

// Signable reports whether the signer may proceed after seeing the outcome.
func (o Outcome) Signable() bool {
	return o.Kind != KindUnsupported
}

// NeedsNativeViewer reports whether the content can only be inspected in
// an external application.
func (o Outcome) NeedsNativeViewer() bool {
	return o.Kind == KindUnsupported || o.Kind == KindNative
}

// outcomeJSON is the wire form used by the HTTP API and the CLI.
type outcomeJSON struct {
	Kind     Kind     `json:"kind"`
	Signable bool     `json:"signable"`
	Text     string   `json:"text,omitempty"`
	Markup   string   `json:"markup,omitempty"`
	Pages    []string `json:"pages,omitempty"`
	Message  string   `json:"message,omitempty"`
}

// MarshalJSON encodes pages as base64 PNG data and includes Signable.
func (o Outcome) MarshalJSON() ([]byte, error) {
	out := outcomeJSON{
		Kind:     o.Kind,
		Signable: o.Signable(),
		Text:     o.Text,
		Markup:   o.Markup,
		Message:  o.Message,
	}
	for _, p := range o.Pages {
		out.Pages = append(out.Pages, base64.StdEncoding.EncodeToString(p))
	}
	return json.Marshal(out)
}
