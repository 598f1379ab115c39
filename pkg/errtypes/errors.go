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

// Package errtypes defines the closed set of failures the visualization and
// native-fallback paths can report, together with their user-facing messages.
package errtypes

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of a visualization failure.
type ErrorType int

const (
	// ErrTypeUnsupportedFormat is a policy outcome rather than a failure: the
	// document extension is not on the preview allow-list.
	ErrTypeUnsupportedFormat ErrorType = iota

	// ErrTypeSchemaValidation indicates the XML document does not conform to
	// the schema supplied with the rendering parameters.
	ErrTypeSchemaValidation

	// ErrTypeTransformation indicates the XSLT transformation could not be
	// applied to the document.
	ErrTypeTransformation

	// ErrTypeRasterization indicates a PDF that passed the allow-list could
	// not be rendered to page images.
	ErrTypeRasterization

	// ErrTypeCacheWrite indicates the native-fallback copy could not be
	// written to disk.
	ErrTypeCacheWrite

	// ErrTypeInvalidReport indicates a validation report that does not match
	// the expected structure.
	ErrTypeInvalidReport

	numErrorTypes
)

// messages holds exactly one user-facing message per ErrorType. Messages
// may contain a single %s verb which receives the document name.
var messages = [...]string{
	ErrTypeUnsupportedFormat: "Visualization of %s is not supported. Open the document in an external application before signing.",
	ErrTypeSchemaValidation:  "Document %s does not match its schema and cannot be signed.",
	ErrTypeTransformation:    "Document %s could not be transformed for display and cannot be signed.",
	ErrTypeRasterization:     "Document %s could not be rendered for display and cannot be signed.",
	ErrTypeCacheWrite:        "Document %s could not be saved for opening in an external application.",
	ErrTypeInvalidReport:     "Validation report %s is malformed.",
}

// A new ErrorType without a message (or a stray message) fails to compile.
var (
	_ [len(messages) - int(numErrorTypes)]struct{}
	_ [int(numErrorTypes) - len(messages)]struct{}
)

// Types returns every ErrorType in declaration order.
func Types() []ErrorType {
	out := make([]ErrorType, 0, numErrorTypes)
	for t := ErrorType(0); t < numErrorTypes; t++ {
		out = append(out, t)
	}
	return out
}

// String returns a stable name for the error type.
func (e ErrorType) String() string {
	switch e {
	case ErrTypeUnsupportedFormat:
		return "UnsupportedFormat"
	case ErrTypeSchemaValidation:
		return "SchemaValidationError"
	case ErrTypeTransformation:
		return "TransformationError"
	case ErrTypeRasterization:
		return "RasterizationError"
	case ErrTypeCacheWrite:
		return "CacheWriteError"
	case ErrTypeInvalidReport:
		return "InvalidReport"
	default:
		return "UnknownError"
	}
}

// BlocksSigning reports whether a failure of this type must prevent the
// signer from proceeding. Unsupported formats and cache failures only
// affect the preview or the external viewer.
func (e ErrorType) BlocksSigning() bool {
	switch e {
	case ErrTypeSchemaValidation, ErrTypeTransformation, ErrTypeRasterization:
		return true
	default:
		return false
	}
}

// Message returns the user-facing message for errType, filled in with the
// document name.
func Message(errType ErrorType, document string) string {
	if errType < 0 || errType >= numErrorTypes {
		return fmt.Sprintf("Unexpected error while processing %s.", document)
	}
	return fmt.Sprintf(messages[errType], document)
}

// Error is a structured failure carrying enough context for a user-facing
// message: which document failed and at which stage.
//
// Example usage:
//
//	var visErr *errtypes.Error
//	if errors.As(err, &visErr) {
//	    fmt.Println(visErr.UserMessage())
//	}
type Error struct {
	// Type categorizes the error for programmatic handling.
	Type ErrorType

	// Document is the display name of the document involved.
	Document string

	// Stage names the processing step that failed (e.g. "schema", "xslt").
	Stage string

	// Message is a technical description of what went wrong.
	Message string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.Document != "" {
		msg = fmt.Sprintf("%s (document: %s", msg, e.Document)
		if e.Stage != "" {
			msg += ", stage: " + e.Stage
		}
		msg += ")"
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// UserMessage returns the message to show to the signer.
func (e *Error) UserMessage() string {
	return Message(e.Type, e.Document)
}

// ExitCode maps the error onto a process exit status for the CLI.
func (e *Error) ExitCode() int {
	return 10 + int(e.Type)
}

// New creates an Error of the given type.
func New(errType ErrorType, document, stage, message string, cause error) *Error {
	return &Error{
		Type:     errType,
		Document: document,
		Stage:    stage,
		Message:  message,
		Cause:    cause,
	}
}

// IsType checks whether err wraps an *Error of the given type.
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if As(err, &e) {
		return e.Type == errType
	}
	return false
}

// As finds the first *Error in err's chain.
func As(err error, target **Error) bool {
	if err == nil {
		return false
	}
	return errors.As(err, target)
}
