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

package qualification

import (
	"fmt"
	"strings"
)

// Timestamp is the qualification of a timestamp token.
type Timestamp int

const (
	// TimestampUnset means the report did not qualify the timestamp.
	TimestampUnset Timestamp = iota
	// QTSA marks a timestamp issued by a qualified trust service.
	QTSA
	// TSA marks a timestamp from a non-qualified authority.
	TSA
	// TimestampNotApplicable is reported when qualification cannot apply.
	TimestampNotApplicable
	// TimestampUnknown stands for a qualification this package does not
	// recognize.
	TimestampUnknown
)

func (t Timestamp) String() string {
	switch t {
	case QTSA:
		return "QTSA"
	case TSA:
		return "TSA"
	case TimestampNotApplicable:
		return "NA"
	case TimestampUnknown:
		return "UNKNOWN"
	default:
		return ""
	}
}

// Readable returns the label used in validation reports.
func (t Timestamp) Readable() string {
	switch t {
	case QTSA:
		return "QTSA"
	case TSA:
		return "TSA"
	case TimestampNotApplicable:
		return "N/A"
	default:
		return "Unknown"
	}
}

// Named reports whether t is a qualification the report spelled out, as
// opposed to an unset or unrecognized one.
func (t Timestamp) Named() bool {
	return t == QTSA || t == TSA || t == TimestampNotApplicable
}

// Qualified reports whether the timestamp is at the top trust tier.
func (t Timestamp) Qualified() bool {
	return t == QTSA
}

// ParseTimestamp parses a timestamp qualification; the empty string yields
// TimestampUnset.
func ParseTimestamp(v string) (Timestamp, error) {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "":
		return TimestampUnset, nil
	case "QTSA":
		return QTSA, nil
	case "TSA":
		return TSA, nil
	case "NA", "N/A":
		return TimestampNotApplicable, nil
	case "UNKNOWN":
		return TimestampUnknown, nil
	default:
		return TimestampUnset, fmt.Errorf("unknown timestamp qualification %q", v)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Timestamp) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unrecognized values
// decode to TimestampUnknown.
func (t *Timestamp) UnmarshalText(text []byte) error {
	v, err := ParseTimestamp(string(text))
	if err != nil {
		v = TimestampUnknown
	}
	*t = v
	return nil
}

// Indication is the overall validation status of a signature or timestamp.
type Indication int

const (
	IndicationUnset Indication = iota
	TotalPassed
	Passed
	Indeterminate
	Failed
	TotalFailed
	NoSignatureFound
)

var indicationNames = map[Indication]string{
	TotalPassed:      "TOTAL_PASSED",
	Passed:           "PASSED",
	Indeterminate:    "INDETERMINATE",
	Failed:           "FAILED",
	TotalFailed:      "TOTAL_FAILED",
	NoSignatureFound: "NO_SIGNATURE_FOUND",
}

func (i Indication) String() string {
	return indicationNames[i]
}

// IsFailure reports whether the indication is a definitive failure.
// Indeterminate results are not failures.
func (i Indication) IsFailure() bool {
	return i == Failed || i == TotalFailed
}

// ParseIndication parses an indication name, case-insensitively.
func ParseIndication(v string) (Indication, error) {
	v = strings.ToUpper(strings.TrimSpace(v))
	if v == "" {
		return IndicationUnset, nil
	}
	for ind, name := range indicationNames {
		if name == v {
			return ind, nil
		}
	}
	return IndicationUnset, fmt.Errorf("unknown indication %q", v)
}

// MarshalText implements encoding.TextMarshaler.
func (i Indication) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Indication) UnmarshalText(text []byte) error {
	v, err := ParseIndication(string(text))
	if err != nil {
		return err
	}
	*i = v
	return nil
}
