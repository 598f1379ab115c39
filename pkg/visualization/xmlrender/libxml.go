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

package xmlrender

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/lestrrat-go/libxml2"
	"github.com/lestrrat-go/libxml2/xsd"
	"github.com/wamuir/go-xslt"
)

// Ensure the defaults implement the interfaces at compile time.
var (
	_ SchemaValidator = LibXMLValidator{}
	_ Transformer     = XSLTTransformer{}
)

// LibXMLValidator validates documents with libxml2's XSD support.
type LibXMLValidator struct{}

// Validate parses schema and content and validates one against the other.
// Every individual validation failure reported by libxml2 is kept in the
// returned error. libxml2's error state is cleared before returning.
func (LibXMLValidator) Validate(content, schema []byte) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer resetLastError()

	s, err := xsd.Parse(schema)
	if err != nil {
		return fmt.Errorf("failed to parse schema: %w", err)
	}
	defer s.Free()

	doc, err := libxml2.Parse(content)
	if err != nil {
		return fmt.Errorf("failed to parse document: %w", err)
	}
	defer doc.Free()

	if err := s.Validate(doc); err != nil {
		var verr xsd.SchemaValidationError
		if errors.As(err, &verr) && len(verr.Errors()) > 0 {
			return errors.Join(verr.Errors()...)
		}
		return err
	}
	return nil
}

// XSLTTransformer applies stylesheets with libxslt.
type XSLTTransformer struct{}

// Transform compiles stylesheet and applies it to content. The compiled
// stylesheet is released before returning.
func (XSLTTransformer) Transform(content, stylesheet []byte) ([]byte, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	resetLastError()

	xs, err := xslt.NewStylesheet(stylesheet)
	if err != nil {
		return nil, fmt.Errorf("failed to compile stylesheet: %w", err)
	}
	defer xs.Close()

	out, err := xs.Transform(content)
	if err != nil {
		return nil, fmt.Errorf("failed to transform document: %w", err)
	}
	return out, nil
}
