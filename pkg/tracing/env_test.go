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

//go:build !otel

package tracing

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pomali/autogram/pkg/logging"
)

func TestInitFromEnvWarnsWithoutOtelTag(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLoggerWithOptions(logging.LoggerOptions{Level: logging.LevelWarn, Output: &buf})

	t.Setenv("OTEL_TRACES_EXPORTER", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	assert.NoError(t, InitFromEnv(InitOptions{Logger: logger}))
	assert.Empty(t, buf.String())

	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://collector:4318")
	assert.NoError(t, InitFromEnv(InitOptions{Logger: logger, ServiceVersion: "v1.0.0"}))
	assert.Contains(t, buf.String(), "built without -tags=otel")
	assert.False(t, Enabled())
	assert.NoError(t, Shutdown(context.Background()))
}
