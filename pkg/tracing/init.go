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

import (
	"os"

	"github.com/pomali/autogram/pkg/logging"
)

// InitOptions configures InitFromEnv.
type InitOptions struct {
	// ServiceVersion is recorded on exported spans, e.g. the release tag.
	ServiceVersion string
	// Logger reports where spans go, or that they are dropped.
	Logger logging.Logger
}

// exportRequested reports whether the OTEL_* variables ask for spans to be
// exported. OTEL_TRACES_EXPORTER=none always wins.
func exportRequested(getenv func(string) string) bool {
	if getenv("OTEL_TRACES_EXPORTER") == "none" {
		return false
	}
	return getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" ||
		getenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT") != "" ||
		getenv("OTEL_TRACES_EXPORTER") != ""
}

func envExportRequested() bool {
	return exportRequested(os.Getenv)
}
