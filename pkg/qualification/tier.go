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

// Tier is the display tier a qualification is shown with. Tiers are ordered
// by trustworthiness for presentation only; they carry no legal meaning.
type Tier int

const (
	// TierInProgress means the assessment is not available yet.
	TierInProgress Tier = iota
	TierQualifiedSignature
	TierQualifiedSeal
	TierAdvancedQualifiedSignature
	TierAdvancedSignatureOther
	TierUnknownQualified
	TierUnknownSignature
	TierIndeterminateWarning
	TierInvalid
)

// Tiers returns every tier in declaration order.
func Tiers() []Tier {
	return []Tier{
		TierInProgress,
		TierQualifiedSignature,
		TierQualifiedSeal,
		TierAdvancedQualifiedSignature,
		TierAdvancedSignatureOther,
		TierUnknownQualified,
		TierUnknownSignature,
		TierIndeterminateWarning,
		TierInvalid,
	}
}

func (t Tier) String() string {
	switch t {
	case TierInProgress:
		return "InProgress"
	case TierQualifiedSignature:
		return "QualifiedSignature"
	case TierQualifiedSeal:
		return "QualifiedSeal"
	case TierAdvancedQualifiedSignature:
		return "AdvancedQualifiedSignature"
	case TierAdvancedSignatureOther:
		return "AdvancedSignatureOther"
	case TierUnknownQualified:
		return "UnknownQualified"
	case TierUnknownSignature:
		return "UnknownSignature"
	case TierIndeterminateWarning:
		return "IndeterminateWarning"
	case TierInvalid:
		return "Invalid"
	default:
		return "Tier(?)"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Rank orders tiers by trustworthiness, higher is more trusted. An
// assessment in progress ranks below every outcome.
func (t Tier) Rank() int {
	switch t {
	case TierQualifiedSignature:
		return 8
	case TierQualifiedSeal:
		return 7
	case TierAdvancedQualifiedSignature:
		return 6
	case TierAdvancedSignatureOther:
		return 5
	case TierUnknownQualified:
		return 4
	case TierUnknownSignature:
		return 3
	case TierIndeterminateWarning:
		return 2
	case TierInvalid:
		return 1
	default:
		return 0
	}
}

// MoreTrustedThan reports whether t ranks above other.
func (t Tier) MoreTrustedThan(other Tier) bool {
	return t.Rank() > other.Rank()
}

// TierOf maps a signature qualification to its display tier. A nil
// qualification means the assessment has not finished. Every Signature
// value maps explicitly; values outside the enumeration are Invalid.
func TierOf(s *Signature) Tier {
	if s == nil {
		return TierInProgress
	}
	if !s.Valid() {
		return TierInvalid
	}
	return signatures[*s].tier
}
