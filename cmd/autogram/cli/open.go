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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pomali/autogram/cmd/autogram/cli/options"
	"github.com/pomali/autogram/pkg/cache"
	"github.com/pomali/autogram/pkg/document"
	"github.com/pomali/autogram/pkg/tracing"
)

// Open creates the open subcommand.
//
// Returns a *cobra.Command that hands DOCUMENT to the desktop's default
// application through the native-fallback cache.
func Open() *cobra.Command {
	o := &options.OpenOptions{}

	long := `Open a document in an external application.

The document is copied into the cache directory (see --cache-dir) and the
copy is opened with the default application. Opening the same file again
within one run reuses the copy. The path of the copy is printed.`

	cmd := &cobra.Command{
		Use:   "open [OPTIONS] DOCUMENT",
		Short: "Open a document in an external application.",
		Long:  long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := document.FromFile(args[0], o.ContentType)
			if err != nil {
				return err
			}
			cfg := ro.Config()
			logger := ro.NewObservability().Logger
			attrs := map[string]interface{}{
				tracing.AttrDocumentName: doc.Filename(),
				tracing.AttrDocumentID:   doc.ID().String(),
			}

			ctx, cancel := ro.Context(cmd.Context())
			defer cancel()
			return tracing.Run(ctx, "OpenNative", attrs, func(ctx context.Context) error {
				opener := cache.SystemOpener{Stdout: cmd.ErrOrStderr(), Stderr: cmd.ErrOrStderr()}
				sess := newSession(ctx, cfg, logger, 0, opener)
				defer sess.Close()

				var path string
				if o.NoLaunch {
					path, err = sess.ResolveNativeFallback(ctx, doc)
				} else {
					path, err = sess.OpenNative(ctx, doc)
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			})
		},
	}

	o.AddFlags(cmd)
	return cmd
}
