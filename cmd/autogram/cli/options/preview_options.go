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
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pomali/autogram/pkg/document"
	"github.com/pomali/autogram/pkg/utils"
)

type PreviewOptions struct {
	DocumentFlags
	Transformation string  // --transformation XSLT
	OutputType     string  // --output-type
	Schema         string  // --schema XSD
	DPI            float64 // --dpi
	HTML           bool    // --html
	OutDir         string  // --out-dir
}

func (o *PreviewOptions) AddFlags(cmd *cobra.Command) {
	AddAllFlags(cmd, &o.DocumentFlags)

	cmd.Flags().StringVar(&o.Transformation, "transformation", "", "Path to the XSLT stylesheet that renders an XML document.")
	_ = cmd.MarkFlagFilename("transformation", "xsl", "xslt")
	cmd.Flags().StringVar(&o.OutputType, "output-type", document.MimeHTML, "Content type the transformation produces (text/html or text/plain).")
	cmd.Flags().StringVar(&o.Schema, "schema", "", "Path to the XSD the XML document must conform to before it is transformed.")
	_ = cmd.MarkFlagFilename("schema", "xsd")
	cmd.Flags().Float64Var(&o.DPI, "dpi", 0, "Resolution of PDF page images. Defaults to the configured value.")
	cmd.Flags().BoolVar(&o.HTML, "html", false, "Write a self-contained viewer page instead of a text summary.")
	cmd.Flags().StringVar(&o.OutDir, "out-dir", "", "Write PDF page images to this directory.")
	_ = cmd.MarkFlagDirname("out-dir")
}

// Validate checks flag combinations and that the referenced files exist.
func (o *PreviewOptions) Validate() error {
	var errs []error
	if o.DPI < 0 {
		errs = append(errs, fmt.Errorf("--dpi must not be negative, got %v", o.DPI))
	}
	if o.HTML && o.OutDir != "" {
		errs = append(errs, errors.New("--html and --out-dir are mutually exclusive"))
	}
	if err := utils.ValidateOptionalFile("transformation", o.Transformation); err != nil {
		errs = append(errs, err)
	}
	if err := utils.ValidateOptionalFile("schema", o.Schema); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Parameters reads the referenced stylesheet and schema.
func (o *PreviewOptions) Parameters() (document.Parameters, error) {
	xslt, err := utils.ReadOptionalFile("transformation", o.Transformation)
	if err != nil {
		return document.Parameters{}, err
	}
	xsd, err := utils.ReadOptionalFile("schema", o.Schema)
	if err != nil {
		return document.Parameters{}, err
	}
	return document.Parameters{
		Transformation:           xslt,
		TransformationOutputType: o.OutputType,
		Schema:                   xsd,
	}, nil
}

type OpenOptions struct {
	DocumentFlags
	NoLaunch bool // --no-launch
}

func (o *OpenOptions) AddFlags(cmd *cobra.Command) {
	o.DocumentFlags.AddFlags(cmd)
	cmd.Flags().BoolVar(&o.NoLaunch, "no-launch", false, "Only write the cached copy and print its path.")
}
