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
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pomali/autogram/cmd/autogram/cli/options"
	"github.com/pomali/autogram/pkg/document"
	"github.com/pomali/autogram/pkg/hashing"
	"github.com/pomali/autogram/pkg/surface"
	"github.com/pomali/autogram/pkg/tracing"
	"github.com/pomali/autogram/pkg/visualization"
)

// Preview creates the preview subcommand.
//
// Returns a *cobra.Command that renders DOCUMENT the way the signer sees it.
func Preview() *cobra.Command {
	o := &options.PreviewOptions{}

	long := `Show a document the way the signer will see it.

XML documents are validated against --schema and rendered with
--transformation. A text/plain --output-type is printed as is; HTML output is
only ever shown inside a sandboxed frame. PDF documents are rasterized to page
images, which can be written to --out-dir. Other allow-listed formats, such as
plain text files, office documents and images, are reviewed in an external
application (see "autogram open") and can still be signed. Formats outside the
allow-list cannot be previewed or signed.

With --html a self-contained viewer page is written to standard output.`

	cmd := &cobra.Command{
		Use:   "preview [OPTIONS] DOCUMENT",
		Short: "Show a document the way the signer will see it.",
		Long:  long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, o, args[0])
		},
	}

	o.AddFlags(cmd)
	return cmd
}

func runPreview(cmd *cobra.Command, o *options.PreviewOptions, path string) error {
	if err := o.Validate(); err != nil {
		return err
	}
	params, err := o.Parameters()
	if err != nil {
		return err
	}
	doc, err := document.FromFile(path, o.ContentType)
	if err != nil {
		return err
	}

	cfg := ro.Config()
	logger := ro.NewObservability().Logger
	attrs := map[string]interface{}{
		tracing.AttrDocumentName: doc.Filename(),
		tracing.AttrDocumentID:   doc.ID().String(),
		tracing.AttrContentType:  doc.ContentType(),
	}

	ctx, cancel := ro.Context(cmd.Context())
	defer cancel()
	return tracing.Run(ctx, "Preview", attrs, func(ctx context.Context) error {
		sess := newSession(ctx, cfg, logger, o.DPI, nil)
		defer sess.Close()

		out, err := sess.ClassifyAndRender(ctx, doc, params)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		switch {
		case o.HTML:
			return surface.Present(ctx, surface.NewHTMLSurface(w, "Autogram - "+doc.Filename()), out)
		case o.OutDir != "" && out.Kind == visualization.KindPageImages:
			return writePages(w, o.OutDir, doc, out.Pages)
		default:
			return printOutcome(w, doc, out, cfg.HashAlgorithm())
		}
	})
}

func printOutcome(w io.Writer, doc *document.Document, out visualization.Outcome, hashAlg string) error {
	fp, err := hashing.Fingerprint(doc, hashAlg)
	if err != nil {
		return err
	}
	signable := "no"
	if out.Signable() {
		signable = "yes"
	}
	fmt.Fprintf(w, "Document:      %s\n", doc.Filename())
	fmt.Fprintf(w, "Fingerprint:   %s:%s\n", fp.Algorithm(), fp.Hex())
	fmt.Fprintf(w, "Visualization: %s\n", out.Kind)
	fmt.Fprintf(w, "Signable:      %s\n", signable)

	switch out.Kind {
	case visualization.KindPlainText:
		fmt.Fprintf(w, "\n%s\n", out.Text)
	case visualization.KindMarkupFrame:
		fmt.Fprintf(w, "\n%s\n", out.Markup)
	case visualization.KindPageImages:
		fmt.Fprintf(w, "Pages:         %d\n", len(out.Pages))
	default:
		fmt.Fprintf(w, "\n%s\n", out.Message)
	}
	return nil
}

// writePages writes one PNG per page as <name>-page-NNN.png.
func writePages(w io.Writer, dir string, doc *document.Document, pages [][]byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for i, png := range pages {
		path := filepath.Join(dir, fmt.Sprintf("%s-page-%03d.png", doc.BaseName(), i+1))
		if err := os.WriteFile(path, png, 0o644); err != nil { //nolint:gosec
			return fmt.Errorf("failed to write page %d: %w", i+1, err)
		}
		fmt.Fprintln(w, path)
	}
	return nil
}
