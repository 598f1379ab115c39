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

package logging

import "io"

// Field names shared by all components.
const (
	FieldDocument   = "document"
	FieldDocumentID = "document_id"
	FieldPath       = "path"
	FieldStage      = "stage"
	FieldSignature  = "signature"
	FieldRequestID  = "request_id"
)

// New creates a logger from the textual level and format names used in
// configuration files and flags.
func New(level, format string, out io.Writer) (*DefaultLogger, error) {
	l, err := ParseLogLevelStrict(level)
	if err != nil {
		return nil, err
	}
	return NewLoggerWithOptions(LoggerOptions{
		Level:     l,
		Format:    ParseLogFormat(format),
		Output:    out,
		ShowLevel: true,
	}), nil
}
