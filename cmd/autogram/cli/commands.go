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
	"context"

	"github.com/spf13/cobra"
	cobracompletefig "github.com/withfig/autocomplete-tools/integrations/cobra"
	"sigs.k8s.io/release-utils/version"

	"github.com/pomali/autogram/cmd/autogram/cli/options"
	"github.com/pomali/autogram/pkg/cache"
	"github.com/pomali/autogram/pkg/config"
	"github.com/pomali/autogram/pkg/logging"
	"github.com/pomali/autogram/pkg/session"
	"github.com/pomali/autogram/pkg/tracing"
	"github.com/pomali/autogram/pkg/visualization"
)

var (
	ro = &options.RootOptions{}
)

func New() *cobra.Command {
	ro = &options.RootOptions{}

	cmd := &cobra.Command{
		Use:               "autogram",
		Short:             "Preview documents before signing and show signature trust badges.",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := ro.Load(cmd); err != nil {
				return err
			}
			return tracing.InitFromEnv(tracing.InitOptions{
				ServiceVersion: version.GetVersionInfo().GitVersion,
				Logger:         ro.NewObservability().Logger,
			})
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return tracing.Shutdown(cmd.Context())
		},
	}
	ro.AddFlags(cmd)

	// Add sub-commands.
	cmd.AddCommand(Preview())
	cmd.AddCommand(Open())
	cmd.AddCommand(Badges())
	cmd.AddCommand(Serve())
	cmd.AddCommand(version.WithFont("starwars"))
	cmd.AddCommand(cobracompletefig.CreateCompletionSpecCommand())
	return cmd
}

// newSession starts a session rendering PDFs at dpi and caching native
// copies in the configured directory.
func newSession(ctx context.Context, cfg *config.Config, logger logging.Logger, dpi float64, opener cache.Opener) *session.Session {
	if dpi <= 0 {
		dpi = cfg.PDFDPI()
	}
	return session.New(ctx, session.Options{
		Renderer: visualization.NewRenderer(visualization.RendererOptions{DPI: dpi, Logger: logger}),
		Cache:    cache.New(cache.Options{Dir: cfg.CacheDir(), Logger: logger}),
		Opener:   opener,
		Logger:   logger,
	})
}
