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

package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pomali/autogram/cmd/autogram/cli/options"
	"github.com/pomali/autogram/internal/server"
	"github.com/pomali/autogram/pkg/config"
)

// Serve creates the serve subcommand.
//
// Returns a *cobra.Command that runs the local HTTP API until interrupted.
func Serve() *cobra.Command {
	o := &options.ServeOptions{}

	long := `Run the local HTTP API used by web integrations.

Endpoints:
  POST /api/v1/visualization       render a document and return the outcome
  POST /api/v1/visualization/html  render a document as a viewer page
  POST /api/v1/badges              compose badges for a validation report
  GET  /healthz                    liveness
  GET  /metrics                    Prometheus metrics

The server binds to a loopback address by default and stops on SIGINT or
SIGTERM. --timeout does not apply; use --request-timeout to bound requests.`

	cmd := &cobra.Command{
		Use:   "serve [OPTIONS]",
		Short: "Run the local HTTP API.",
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := ro.Config()
			applyServeOptions(cfg, o)
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger := ro.NewObservability().Logger

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			sess := newSession(ctx, cfg, logger, 0, nil)
			defer sess.Close()

			timeout := o.RequestTimeout
			if timeout == 0 {
				timeout = cfg.Timeout()
			}
			srv, err := server.New(server.Options{
				Session:       sess,
				HashAlgorithm: cfg.HashAlgorithm(),
				Timeout:       timeout,
				MaxBodyBytes:  o.MaxBodyBytes,
				Logger:        logger,
			})
			if err != nil {
				return err
			}
			return srv.ListenAndServe(ctx, cfg.ListenAddress())
		},
	}

	o.AddFlags(cmd)
	return cmd
}

func applyServeOptions(cfg *config.Config, o *options.ServeOptions) {
	if o.Listen != "" {
		cfg.SetListenAddress(o.Listen)
	}
	if o.HashAlgorithm != "" {
		cfg.SetHashAlgorithm(o.HashAlgorithm)
	}
}
