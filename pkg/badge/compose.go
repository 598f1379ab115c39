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

package badge

import (
	"github.com/pomali/autogram/pkg/qualification"
)

// TimestampRecord is one timestamp attached to a signature.
type TimestampRecord struct {
	ID            string                   `json:"id,omitempty"`
	Qualification qualification.Timestamp  `json:"qualification"`
	Indication    qualification.Indication `json:"indication"`
}

// Failed reports whether the timestamp failed validation.
func (t TimestampRecord) Failed() bool {
	return t.Indication.IsFailure()
}

// SignatureRecord is one signature of a validation report. A nil
// Qualification means the validation service has not assessed it yet.
type SignatureRecord struct {
	ID            string                   `json:"id"`
	Qualification *qualification.Signature `json:"qualification,omitempty"`
	Timestamps    []TimestampRecord        `json:"timestamps,omitempty"`
}

// Aggregate summarizes the timestamps of one signature.
type Aggregate struct {
	// AnyFailed is true when at least one timestamp failed validation.
	AnyFailed bool
	// AllQualified is true when every timestamp is qualified; it holds
	// vacuously for a signature without timestamps.
	AllQualified bool
}

// AggregateTimestamps inspects the complete timestamp set.
func AggregateTimestamps(timestamps []TimestampRecord) Aggregate {
	agg := Aggregate{AllQualified: true}
	for _, ts := range timestamps {
		if ts.Failed() {
			agg.AnyFailed = true
		}
		if !ts.Qualification.Qualified() {
			agg.AllQualified = false
		}
	}
	return agg
}

// Kind tells the presentation layer how to lay out a Display.
type Kind int

const (
	// KindSingle is one summary badge.
	KindSingle Kind = iota
	// KindComposite is a summary badge followed by one badge per timestamp.
	KindComposite
)

func (k Kind) String() string {
	if k == KindComposite {
		return "composite"
	}
	return "single"
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Display is the badge set shown for one signature.
type Display struct {
	SignatureID string  `json:"signatureId,omitempty"`
	Kind        Kind    `json:"kind"`
	Badges      []Badge `json:"badges"`
}

// Summary returns the first badge.
func (d Display) Summary() Badge {
	return d.Badges[0]
}

func single(id string, b Badge) Display {
	return Display{SignatureID: id, Kind: KindSingle, Badges: []Badge{b}}
}

// Compose derives the badges for one signature.
//
// The order of the checks matters. A single failed timestamp forces the
// full composite view; a qualified signature without timestamps is shown
// more favourably than one with mixed (but not failed) timestamps.
func Compose(rec SignatureRecord) Display {
	if rec.Qualification == nil {
		return single(rec.ID, InProgress())
	}

	agg := AggregateTimestamps(rec.Timestamps)
	if agg.AnyFailed {
		return composite(rec)
	}

	sig := *rec.Qualification
	switch sig {
	case qualification.QESig:
		if len(rec.Timestamps) == 0 {
			return single(rec.ID, newBadge(LabelHandwrittenEquivalent, StyleValid, qualification.TierQualifiedSignature))
		}
		if agg.AllQualified {
			return single(rec.ID, newBadge(LabelCertifiedSignature, StyleValid, qualification.TierQualifiedSignature))
		}
		return composite(rec)
	case qualification.QESeal:
		if agg.AllQualified {
			return single(rec.ID, newBadge(LabelElectronicSeal, StyleValid, qualification.TierQualifiedSeal))
		}
		return composite(rec)
	case qualification.AdESigQC:
		if agg.AllQualified {
			return single(rec.ID, newBadge(LabelRecognizedAuthorization, StyleValid, qualification.TierAdvancedQualifiedSignature))
		}
		return composite(rec)
	case qualification.AdESig, qualification.AdESeal, qualification.AdESealQC:
		return composite(rec)
	default:
		return single(rec.ID, FromQualification(rec.Qualification))
	}
}

// composite lists the classified signature followed by one badge per
// timestamp, in report order.
func composite(rec SignatureRecord) Display {
	badges := make([]Badge, 0, len(rec.Timestamps)+1)
	badges = append(badges, FromQualification(rec.Qualification))

	for _, ts := range rec.Timestamps {
		badges = append(badges, timestampDetail(ts))
	}
	return Display{SignatureID: rec.ID, Kind: KindComposite, Badges: badges}
}

// timestampDetail is FromTimestampQualification as shown next to a
// signature: a named qualification is labelled the way the report spells it,
// and any named authority other than N/A counts as valid.
func timestampDetail(ts TimestampRecord) Badge {
	q := ts.Qualification
	b := FromTimestampQualification(ts.Failed(), &q)
	if ts.Failed() || !q.Named() {
		return b
	}
	b.Label = q.Readable()
	if q == qualification.TSA {
		b.Style = StyleValid
	}
	return b
}

// ComposeAll composes every signature in order.
func ComposeAll(records []SignatureRecord) []Display {
	out := make([]Display, 0, len(records))
	for _, rec := range records {
		out = append(out, Compose(rec))
	}
	return out
}
