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

// Package badge turns signature and timestamp qualification outcomes into
// display badges a non-expert can act on.
//
// Everything in this package is a pure function of its input: no errors,
// no clocks, no hidden state. Composing the same record twice yields the
// same badges.
package badge

import (
	"github.com/pomali/autogram/pkg/qualification"
)

// Style selects the visual treatment of a badge.
type Style int

const (
	StyleProcessing Style = iota
	StyleValid
	StyleCustomValid
	StyleUnknown
	StyleWarning
	StyleInvalid
)

// CSSClass returns the stylesheet class used by the presentation layer.
func (s Style) CSSClass() string {
	switch s {
	case StyleProcessing:
		return "autogram-tag-processing"
	case StyleValid:
		return "autogram-tag-valid"
	case StyleCustomValid:
		return "autogram-tag-custom-valid"
	case StyleUnknown:
		return "autogram-tag-unknown"
	case StyleWarning:
		return "autogram-tag-warning"
	default:
		return "autogram-tag-invalid"
	}
}

func (s Style) String() string {
	switch s {
	case StyleProcessing:
		return "processing"
	case StyleValid:
		return "valid"
	case StyleCustomValid:
		return "custom-valid"
	case StyleUnknown:
		return "unknown"
	case StyleWarning:
		return "warning"
	default:
		return "invalid"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Style) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Badge is a label with a style and the tier it represents.
type Badge struct {
	Label string             `json:"label"`
	Style Style              `json:"style"`
	Tier  qualification.Tier `json:"tier"`
}

// Labels shown on badges.
const (
	LabelInProgress              = "Validation in progress..."
	LabelQualifiedSignature      = "Qualified electronic signature"
	LabelQualifiedSeal           = "Qualified electronic seal"
	LabelAdvancedSignature       = "Advanced electronic signature"
	LabelOtherSignature          = "Other electronic signature"
	LabelUnknownQualified        = "Unknown qualified signature"
	LabelUnknownSignature        = "Unknown signature"
	LabelProvisionallyValid      = "Provisionally valid signature"
	LabelHandwrittenEquivalent   = "Handwritten-equivalent signature"
	LabelCertifiedSignature      = "Certified signature"
	LabelElectronicSeal          = "Electronic seal"
	LabelRecognizedAuthorization = "Recognized authorization method"
	LabelQualifiedTimestamp      = "Qualified timestamp"
	LabelTimestamp               = "Timestamp"
	LabelUnknownTimestamp        = "Unknown timestamp"
	LabelInvalidTimestamp        = "Invalid timestamp"
)

func newBadge(label string, style Style, tier qualification.Tier) Badge {
	return Badge{Label: label, Style: style, Tier: tier}
}

// InProgress is shown while the validation service has not answered yet.
func InProgress() Badge {
	return newBadge(LabelInProgress, StyleProcessing, qualification.TierInProgress)
}

// FromQualification maps a signature qualification to a single badge.
// A nil qualification yields the in-progress badge.
func FromQualification(q *qualification.Signature) Badge {
	tier := qualification.TierOf(q)
	switch tier {
	case qualification.TierInProgress:
		return InProgress()
	case qualification.TierQualifiedSignature:
		return newBadge(LabelQualifiedSignature, StyleValid, tier)
	case qualification.TierQualifiedSeal:
		return newBadge(LabelQualifiedSeal, StyleValid, tier)
	case qualification.TierAdvancedQualifiedSignature:
		return newBadge(LabelAdvancedSignature, StyleValid, tier)
	case qualification.TierAdvancedSignatureOther:
		return newBadge(LabelOtherSignature, StyleCustomValid, tier)
	case qualification.TierUnknownQualified:
		return newBadge(LabelUnknownQualified, StyleUnknown, tier)
	case qualification.TierUnknownSignature:
		return newBadge(LabelUnknownSignature, StyleUnknown, tier)
	case qualification.TierIndeterminateWarning:
		return newBadge(LabelProvisionallyValid, StyleWarning, tier)
	default:
		return newBadge(LabelUnknownSignature, StyleInvalid, qualification.TierInvalid)
	}
}

// FromTimestampQualification maps one timestamp to a badge. A nil
// qualification yields the in-progress badge; a failed timestamp is always
// invalid regardless of how it was qualified. Unset and unrecognized
// qualifications yield the unknown timestamp badge.
func FromTimestampQualification(failed bool, q *qualification.Timestamp) Badge {
	if q == nil {
		return InProgress()
	}
	if failed {
		return newBadge(LabelInvalidTimestamp, StyleInvalid, qualification.TierInvalid)
	}
	switch *q {
	case qualification.QTSA:
		return newBadge(LabelQualifiedTimestamp, StyleValid, qualification.TierQualifiedSignature)
	case qualification.TSA:
		return newBadge(LabelTimestamp, StyleCustomValid, qualification.TierAdvancedSignatureOther)
	default:
		return newBadge(LabelUnknownTimestamp, StyleUnknown, qualification.TierUnknownSignature)
	}
}
