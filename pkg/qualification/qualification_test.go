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
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierOfIsExhaustive(t *testing.T) {
	assert.Equal(t, TierInProgress, TierOf(nil))

	for _, s := range Signatures() {
		s := s
		tier := TierOf(&s)
		assert.NotEqual(t, TierInProgress, tier, "%s must have an assessed tier", s)
		assert.NotEqual(t, "Tier(?)", tier.String())
	}

	bogus := Signature(1000)
	assert.Equal(t, TierInvalid, TierOf(&bogus))
}

func TestIndeterminateQualificationsAreWarnings(t *testing.T) {
	for _, s := range Signatures() {
		if strings.HasPrefix(s.String(), "INDETERMINATE_") {
			assert.Equal(t, TierIndeterminateWarning, s.Tier(), s.String())
		} else {
			assert.NotEqual(t, TierIndeterminateWarning, s.Tier(), s.String())
		}
	}
}

func TestTierOfSelectedValues(t *testing.T) {
	tests := []struct {
		sig  Signature
		want Tier
	}{
		{QESig, TierQualifiedSignature},
		{QESeal, TierQualifiedSeal},
		{AdESigQC, TierAdvancedQualifiedSignature},
		{AdESig, TierAdvancedSignatureOther},
		{AdESeal, TierAdvancedSignatureOther},
		{AdESealQC, TierAdvancedSignatureOther},
		{UnknownQC, TierUnknownQualified},
		{NotAdESQCQSCD, TierUnknownQualified},
		{NotAdES, TierUnknownSignature},
		{NotApplicable, TierUnknownSignature},
		{QES, TierInvalid},
		{AdES, TierInvalid},
		{AdESQC, TierInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.sig.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sig.Tier())
		})
	}
}

func TestTierRankIsTotal(t *testing.T) {
	ranks := map[int]Tier{}
	for _, tier := range Tiers() {
		if prev, dup := ranks[tier.Rank()]; dup {
			t.Fatalf("%s and %s share rank %d", prev, tier, tier.Rank())
		}
		ranks[tier.Rank()] = tier
	}
	assert.True(t, TierQualifiedSignature.MoreTrustedThan(TierQualifiedSeal))
	assert.True(t, TierIndeterminateWarning.MoreTrustedThan(TierInvalid))
	assert.True(t, TierInvalid.MoreTrustedThan(TierInProgress))
}

func TestParseSignature(t *testing.T) {
	tests := []struct {
		in      string
		want    Signature
		wantErr bool
	}{
		{"QESIG", QESig, false},
		{"QESig", QESig, false},
		{" adesig-qc ", AdESigQC, false},
		{"ADESIG_QC", AdESigQC, false},
		{"Indeterminate QESeal", IndeterminateQESeal, false},
		{"N/A", NotApplicable, false},
		{"NA", NotApplicable, false},
		{"QESIG_PLUS", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSignature(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSignatureJSON(t *testing.T) {
	var v struct {
		Q *Signature `json:"q"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"q":"AdESeal-QC"}`), &v))
	require.NotNil(t, v.Q)
	assert.Equal(t, AdESealQC, *v.Q)

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"q":"ADESEAL_QC"}`, string(out))

	_, err = Signature(0).MarshalText()
	assert.Error(t, err)
}

func TestUnmarshalUnknownQualifications(t *testing.T) {
	var v struct {
		Sig Signature `json:"sig"`
		TS  Timestamp `json:"ts"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"sig":"QESIG_PLUS","ts":"EIDAS"}`), &v))
	assert.Equal(t, Unknown, v.Sig)
	assert.Equal(t, TierUnknownSignature, v.Sig.Tier())
	assert.Equal(t, TimestampUnknown, v.TS)
	assert.False(t, v.TS.Named())
	assert.False(t, v.TS.Qualified())

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"sig":"UNKNOWN","ts":"UNKNOWN"}`, string(out))
}

func TestTimestampAndIndication(t *testing.T) {
	q, err := ParseTimestamp("qtsa")
	require.NoError(t, err)
	assert.True(t, q.Qualified())

	q, err = ParseTimestamp("N/A")
	require.NoError(t, err)
	assert.Equal(t, TimestampNotApplicable, q)
	assert.False(t, q.Qualified())

	_, err = ParseTimestamp("EIDAS")
	assert.Error(t, err)

	q, err = ParseTimestamp("unknown")
	require.NoError(t, err)
	assert.Equal(t, TimestampUnknown, q)

	for _, tt := range []struct {
		in      string
		failure bool
	}{
		{"TOTAL_PASSED", false},
		{"PASSED", false},
		{"INDETERMINATE", false},
		{"FAILED", true},
		{"total_failed", true},
		{"NO_SIGNATURE_FOUND", false},
	} {
		ind, err := ParseIndication(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.failure, ind.IsFailure(), tt.in)
	}

	_, err = ParseIndication("BROKEN")
	assert.Error(t, err)
}
