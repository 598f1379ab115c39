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

package options

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/pomali/autogram/internal/server"
)

type ServeOptions struct {
	Listen         string        // --listen
	HashAlgorithm  string        // --hash-algorithm
	MaxBodyBytes   int64         // --max-body-bytes
	RequestTimeout time.Duration // --request-timeout
}

func (o *ServeOptions) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.Listen, "listen", "", "Address to listen on. Defaults to the configured value.")
	cmd.Flags().StringVar(&o.HashAlgorithm, "hash-algorithm", "", "Fingerprint algorithm reported with each visualization (sha256, sha512, blake2b).")
	cmd.Flags().Int64Var(&o.MaxBodyBytes, "max-body-bytes", server.DefaultMaxBodyBytes, "Maximum request body size.")
	cmd.Flags().DurationVar(&o.RequestTimeout, "request-timeout", 0, "Per-request timeout. Defaults to the configured timeout.")
}
