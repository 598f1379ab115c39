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

package errtypes

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageCoversEveryType(t *testing.T) {
	seen := map[string]ErrorType{}
	for _, errType := range Types() {
		msg := Message(errType, "contract.pdf")
		assert.Contains(t, msg, "contract.pdf", "message for %s", errType)
		assert.NotEqual(t, "UnknownError", errType.String())
		if prev, dup := seen[msg]; dup {
			t.Errorf("%s and %s share the message %q", prev, errType, msg)
		}
		seen[msg] = errType
	}
}

func TestMessageOutOfRange(t *testing.T) {
	msg := Message(ErrorType(99), "a.txt")
	assert.True(t, strings.HasPrefix(msg, "Unexpected error"))
}

func TestBlocksSigning(t *testing.T) {
	tests := []struct {
		errType ErrorType
		want    bool
	}{
		{ErrTypeUnsupportedFormat, false},
		{ErrTypeSchemaValidation, true},
		{ErrTypeTransformation, true},
		{ErrTypeRasterization, true},
		{ErrTypeCacheWrite, false},
		{ErrTypeInvalidReport, false},
	}
	for _, tt := range tests {
		t.Run(tt.errType.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.errType.BlocksSigning())
		})
	}
}

func TestErrorFormattingAndUnwrap(t *testing.T) {
	cause := errors.New("element 'Amount': not a decimal")
	err := New(ErrTypeSchemaValidation, "invoice.xml", "schema", "document is not valid", cause)

	assert.Equal(t,
		"SchemaValidationError: document is not valid (document: invoice.xml, stage: schema): element 'Amount': not a decimal",
		err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, Message(ErrTypeSchemaValidation, "invoice.xml"), err.UserMessage())
	assert.Equal(t, 11, err.ExitCode())
}

func TestIsTypeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("rendering: %w", New(ErrTypeRasterization, "scan.pdf", "page 2", "render failed", nil))

	assert.True(t, IsType(err, ErrTypeRasterization))
	assert.False(t, IsType(err, ErrTypeTransformation))
	assert.False(t, IsType(nil, ErrTypeRasterization))

	var target *Error
	require.True(t, As(err, &target))
	assert.Equal(t, "page 2", target.Stage)
}
