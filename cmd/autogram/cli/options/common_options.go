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
	"github.com/spf13/cobra"
)

// Interface is implemented by any flag group that can register itself to a cobra command.
type Interface interface {
	AddFlags(cmd *cobra.Command)
}

// DocumentFlags describe the document given on the command line.
type DocumentFlags struct {
	// ContentType is the declared content type; detected from the bytes when empty.
	ContentType string
}

// AddFlags adds document flags to the cobra command.
func (o *DocumentFlags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.ContentType, "content-type", "",
		"Declared content type of the document. Detected from its bytes when omitted.")
}

// AddAllFlags is a helper function to register multiple flag groups at once.
func AddAllFlags(cmd *cobra.Command, flagGroups ...Interface) {
	for _, fg := range flagGroups {
		fg.AddFlags(cmd)
	}
}
