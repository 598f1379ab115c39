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

// Without the otel build tag spans are never exported; InitFromEnv only
// tells the user when the environment asks for something this binary
// cannot do.

package tracing

import (
	"context"

	"github.com/pomali/autogram/pkg/logging"
)

// InitFromEnv keeps the no-op tracer. When OTEL_* variables request an
// exporter it warns that this autogram binary was built without the otel
// tag.
func InitFromEnv(opts InitOptions) error {
	if envExportRequested() {
		logging.EnsureLogger(opts.Logger).Warnln("OTEL_* tracing variables are set but autogram was built without -tags=otel; spans are not exported")
	}
	return nil
}

// Shutdown is a no-op without the otel build tag.
func Shutdown(context.Context) error {
	return nil
}
