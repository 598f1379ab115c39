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
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pomali/autogram/cmd/autogram/cli/options"
	"github.com/pomali/autogram/pkg/badge"
	"github.com/pomali/autogram/pkg/report"
	"github.com/pomali/autogram/pkg/session"
	"github.com/pomali/autogram/pkg/surface"
	"github.com/pomali/autogram/pkg/tracing"
	"github.com/pomali/autogram/pkg/utils"
)

// Badges creates the badges subcommand.
//
// Returns a *cobra.Command that composes trust badges for every signature
// of a validation report.
func Badges() *cobra.Command {
	o := &options.BadgesOptions{}

	long := `Show trust badges for the signatures of a validation report.

REPORT is a JSON validation report; "-" reads it from standard input. Each
signature gets a summary badge. Signatures with failed or mixed timestamps
also get one badge per timestamp.`

	cmd := &cobra.Command{
		Use:   "badges [OPTIONS] REPORT",
		Short: "Show trust badges for a validation report.",
		Long:  long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Validate(); err != nil {
				return err
			}
			rep, err := readReport(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			logger := ro.NewObservability().Logger
			attrs := map[string]interface{}{
				tracing.AttrDocumentName: rep.Document,
				tracing.AttrSignatures:   len(rep.Signatures),
			}
			ctx, cancel := ro.Context(cmd.Context())
			defer cancel()
			return tracing.Run(ctx, "Badges", attrs, func(ctx context.Context) error {
				sess := session.New(ctx, session.Options{Logger: logger})
				defer sess.Close()

				displays := make([]badge.Display, 0, len(rep.Signatures))
				for _, rec := range rep.Signatures {
					displays = append(displays, sess.ComposeBadges(ctx, rec))
				}

				w := cmd.OutOrStdout()
				switch {
				case o.JSON:
					enc := json.NewEncoder(w)
					enc.SetIndent("", "  ")
					return enc.Encode(displays)
				case o.HTML:
					title := "Autogram - signatures"
					if rep.Document != "" {
						title = "Autogram - " + rep.Document
					}
					return surface.NewHTMLSurface(w, title).ShowBadges(displays)
				default:
					return printBadges(w, displays)
				}
			})
		},
	}

	o.AddFlags(cmd)
	return cmd
}

func readReport(stdin io.Reader, path string) (*report.Report, error) {
	if path == "-" {
		return report.Read(stdin, "stdin")
	}
	data, err := utils.ReadFile("report", path)
	if err != nil {
		return nil, err
	}
	return report.Parse(data, path)
}

func printBadges(w io.Writer, displays []badge.Display) error {
	if len(displays) == 0 {
		fmt.Fprintln(w, "No signatures.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SIGNATURE\tBADGE\tSTYLE")
	for _, d := range displays {
		for i, b := range d.Badges {
			id := d.SignatureID
			if i > 0 {
				id = "  timestamp"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", id, b.Label, b.Style)
		}
	}
	return tw.Flush()
}
