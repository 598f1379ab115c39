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

	"github.com/spf13/cobra"
)

type BadgesOptions struct {
	JSON bool // --json
	HTML bool // --html
}

func (o *BadgesOptions) AddFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.JSON, "json", false, "Print the badges as JSON.")
	cmd.Flags().BoolVar(&o.HTML, "html", false, "Write the badges as an HTML page.")
}

func (o *BadgesOptions) Validate() error {
	if o.JSON && o.HTML {
		return errors.New("--json and --html are mutually exclusive")
	}
	return nil
}
