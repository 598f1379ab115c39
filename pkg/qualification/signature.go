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

// Package qualification models the qualification outcomes reported by the
// signature validation service and the display tiers derived from them.
//
// The raw values follow the ETSI EN 319 102-1 / TS 119 615 vocabulary as
// emitted by validation reports. They are opaque inputs: this package only
// names and classifies them.
package qualification

import (
	"fmt"
	"strings"
)

// Signature is the qualification of a signature as reported by the
// validation service.
type Signature int

const (
	QESig Signature = iota + 1
	QESeal
	QES
	AdESigQC
	AdESealQC
	AdESQC
	AdESig
	AdESeal
	AdES
	IndeterminateQESig
	IndeterminateQESeal
	IndeterminateQES
	IndeterminateAdESigQC
	IndeterminateAdESealQC
	IndeterminateAdESQC
	IndeterminateAdESig
	IndeterminateAdESeal
	IndeterminateAdES
	NotAdESQCQSCD
	NotAdESQC
	NotAdES
	UnknownQCQSCD
	UnknownQC
	Unknown
	NotApplicable

	lastSignature = NotApplicable
)

type signatureInfo struct {
	name     string
	readable string
	tier     Tier
}

// signatures lists every Signature value. Index 0 is unused so that the
// zero value is never a valid qualification.
var signatures = [...]signatureInfo{
	QESig:                  {"QESIG", "QESig", TierQualifiedSignature},
	QESeal:                 {"QESEAL", "QESeal", TierQualifiedSeal},
	QES:                    {"QES", "QES?", TierInvalid},
	AdESigQC:               {"ADESIG_QC", "AdESig-QC", TierAdvancedQualifiedSignature},
	AdESealQC:              {"ADESEAL_QC", "AdESeal-QC", TierAdvancedSignatureOther},
	AdESQC:                 {"ADES_QC", "AdES?-QC", TierInvalid},
	AdESig:                 {"ADESIG", "AdESig", TierAdvancedSignatureOther},
	AdESeal:                {"ADESEAL", "AdESeal", TierAdvancedSignatureOther},
	AdES:                   {"ADES", "AdES?", TierInvalid},
	IndeterminateQESig:     {"INDETERMINATE_QESIG", "Indeterminate QESig", TierIndeterminateWarning},
	IndeterminateQESeal:    {"INDETERMINATE_QESEAL", "Indeterminate QESeal", TierIndeterminateWarning},
	IndeterminateQES:       {"INDETERMINATE_QES", "Indeterminate QES?", TierIndeterminateWarning},
	IndeterminateAdESigQC:  {"INDETERMINATE_ADESIG_QC", "Indeterminate AdESig-QC", TierIndeterminateWarning},
	IndeterminateAdESealQC: {"INDETERMINATE_ADESEAL_QC", "Indeterminate AdESeal-QC", TierIndeterminateWarning},
	IndeterminateAdESQC:    {"INDETERMINATE_ADES_QC", "Indeterminate AdES?-QC", TierIndeterminateWarning},
	IndeterminateAdESig:    {"INDETERMINATE_ADESIG", "Indeterminate AdESig", TierIndeterminateWarning},
	IndeterminateAdESeal:   {"INDETERMINATE_ADESEAL", "Indeterminate AdESeal", TierIndeterminateWarning},
	IndeterminateAdES:      {"INDETERMINATE_ADES", "Indeterminate AdES?", TierIndeterminateWarning},
	NotAdESQCQSCD:          {"NOT_ADES_QC_QSCD", "Not AdES but QC with QSCD", TierUnknownQualified},
	NotAdESQC:              {"NOT_ADES_QC", "Not AdES but QC", TierUnknownQualified},
	NotAdES:                {"NOT_ADES", "Not AdES", TierUnknownSignature},
	UnknownQCQSCD:          {"UNKNOWN_QC_QSCD", "Unknown QC with QSCD", TierUnknownQualified},
	UnknownQC:              {"UNKNOWN_QC", "Unknown QC", TierUnknownQualified},
	Unknown:                {"UNKNOWN", "Unknown", TierUnknownSignature},
	NotApplicable:          {"NA", "N/A", TierUnknownSignature},
}

var _ [len(signatures) - int(lastSignature) - 1]struct{}

// Signatures returns every known signature qualification in declaration
// order.
func Signatures() []Signature {
	out := make([]Signature, 0, lastSignature)
	for s := QESig; s <= lastSignature; s++ {
		out = append(out, s)
	}
	return out
}

// Valid reports whether s is a known qualification.
func (s Signature) Valid() bool {
	return s >= QESig && s <= lastSignature
}

// String returns the symbolic name, e.g. "ADESIG_QC".
func (s Signature) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Signature(%d)", int(s))
	}
	return signatures[s].name
}

// Readable returns the label used in validation reports, e.g. "AdESig-QC".
func (s Signature) Readable() string {
	if !s.Valid() {
		return "Unknown"
	}
	return signatures[s].readable
}

// Tier returns the display tier of the qualification.
func (s Signature) Tier() Tier {
	return TierOf(&s)
}

// ParseSignature accepts either the symbolic name or the readable label,
// ignoring case and surrounding whitespace.
func ParseSignature(v string) (Signature, error) {
	v = strings.TrimSpace(v)
	for s := QESig; s <= lastSignature; s++ {
		if strings.EqualFold(v, signatures[s].name) || strings.EqualFold(v, signatures[s].readable) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown signature qualification %q", v)
}

// MarshalText implements encoding.TextMarshaler.
func (s Signature) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid signature qualification %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. A value this package
// does not know decodes to Unknown, so a report from a newer validation
// service still yields a badge for every signature.
func (s *Signature) UnmarshalText(text []byte) error {
	v, err := ParseSignature(string(text))
	if err != nil {
		v = Unknown
	}
	*s = v
	return nil
}
