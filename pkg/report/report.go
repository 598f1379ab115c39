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

// Package report reads signature validation reports produced by the
// validation service and turns them into badge records.
//
// A report is JSON:
//
//	{
//	  "document": "contract.pdf",
//	  "signatures": [
//	    {
//	      "id": "S-1",
//	      "qualification": "QESig",
//	      "timestamps": [{"qualification": "QTSA", "indication": "TOTAL_PASSED"}]
//	    }
//	  ]
//	}
//
// A signature without a qualification has not been assessed yet.
package report

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/pomali/autogram/pkg/badge"
	"github.com/pomali/autogram/pkg/errtypes"
)

// StageReport is reported in errtypes.Error.Stage.
const StageReport = "report"

const schemaURL = "https://autogram.local/schemas/validation-report.schema.json"

//go:embed schema.json
var schemaSource string

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// Schema returns the compiled report schema.
func Schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(schemaURL, strings.NewReader(schemaSource)); err != nil {
			compileErr = fmt.Errorf("failed to load report schema: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("failed to compile report schema: %w", compileErr)
		}
	})
	return compiled, compileErr
}

// Report is a decoded validation report.
type Report struct {
	Document   string                  `json:"document,omitempty"`
	Signatures []badge.SignatureRecord `json:"signatures"`
}

// Badges composes the badge set of every signature, in report order.
func (r *Report) Badges() []badge.Display {
	return badge.ComposeAll(r.Signatures)
}

// Parse validates data against the report schema and decodes it. name
// identifies the report in errors. Every failure is ErrTypeInvalidReport.
func Parse(data []byte, name string) (*Report, error) {
	fail := func(msg string, cause error) error {
		return errtypes.New(errtypes.ErrTypeInvalidReport, name, StageReport, msg, cause)
	}

	schema, err := Schema()
	if err != nil {
		return nil, fail("report schema unavailable", err)
	}

	var doc interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fail("report is not valid JSON", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fail("report does not match the schema", err)
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fail("failed to decode report", err)
	}
	if r.Signatures == nil {
		r.Signatures = []badge.SignatureRecord{}
	}
	return &r, nil
}

// Read reads a report from rd; see Parse.
func Read(rd io.Reader, name string) (*Report, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, errtypes.New(errtypes.ErrTypeInvalidReport, name, StageReport, "failed to read report", err)
	}
	return Parse(data, name)
}
