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

package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pomali/autogram/pkg/badge"
	"github.com/pomali/autogram/pkg/errtypes"
	"github.com/pomali/autogram/pkg/qualification"
)

const sampleReport = `{
  "document": "contract.pdf",
  "signatures": [
    {
      "id": "S-1",
      "qualification": "QESig",
      "timestamps": [
        {"id": "T-1", "qualification": "QTSA", "indication": "TOTAL_PASSED"},
        {"id": "T-2", "qualification": "QTSA", "indication": "PASSED"}
      ]
    },
    {
      "id": "S-2",
      "qualification": "QESig",
      "timestamps": [{"indication": "TOTAL_FAILED"}]
    },
    {"id": "S-3", "qualification": null},
    {"id": "S-4"}
  ]
}`

func TestParse(t *testing.T) {
	r, err := Parse([]byte(sampleReport), "report.json")
	require.NoError(t, err)

	assert.Equal(t, "contract.pdf", r.Document)
	require.Len(t, r.Signatures, 4)

	first := r.Signatures[0]
	assert.Equal(t, "S-1", first.ID)
	require.NotNil(t, first.Qualification)
	assert.Equal(t, qualification.QESig, *first.Qualification)
	require.Len(t, first.Timestamps, 2)
	assert.Equal(t, qualification.QTSA, first.Timestamps[0].Qualification)
	assert.Equal(t, qualification.Passed, first.Timestamps[1].Indication)

	assert.Equal(t, qualification.TimestampUnset, r.Signatures[1].Timestamps[0].Qualification)
	assert.Nil(t, r.Signatures[2].Qualification)
	assert.Nil(t, r.Signatures[3].Qualification)

	displays := r.Badges()
	require.Len(t, displays, 4)
	assert.Equal(t, badge.LabelCertifiedSignature, displays[0].Summary().Label)
	assert.Len(t, displays[1].Badges, 2)
	assert.Equal(t, badge.LabelInProgress, displays[2].Summary().Label)
	assert.Equal(t, badge.LabelInProgress, displays[3].Summary().Label)
}

func TestParseReadableQualification(t *testing.T) {
	want := qualification.AdESigQC
	r, err := Parse([]byte(`{"signatures":[{"id":"S","qualification":"`+want.Readable()+`"}]}`), "r")
	require.NoError(t, err)
	require.NotNil(t, r.Signatures[0].Qualification)
	assert.Equal(t, want, *r.Signatures[0].Qualification)
}

func TestParseEmpty(t *testing.T) {
	r, err := Parse([]byte(`{"signatures":[]}`), "empty.json")
	require.NoError(t, err)
	assert.NotNil(t, r.Signatures)
	assert.Empty(t, r.Badges())
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: `{"signatures": [`},
		{name: "missing signatures", data: `{"document": "a.pdf"}`},
		{name: "signature without id", data: `{"signatures":[{"qualification":"QESig"}]}`},
		{name: "unknown field", data: `{"signatures":[],"extra":1}`},
		{name: "bad indication", data: `{"signatures":[{"id":"S","timestamps":[{"indication":"OK"}]}]}`},
		{name: "wrong type", data: `{"signatures":{"id":"S"}}`},
		{name: "numeric qualification", data: `{"signatures":[{"id":"S","qualification":3}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Parse([]byte(tt.data), "bad.json")
			assert.Nil(t, r)
			require.Error(t, err)
			assert.True(t, errtypes.IsType(err, errtypes.ErrTypeInvalidReport))

			var e *errtypes.Error
			require.True(t, errtypes.As(err, &e))
			assert.Equal(t, "bad.json", e.Document)
			assert.Equal(t, StageReport, e.Stage)
		})
	}
}

func TestParseUnknownQualifications(t *testing.T) {
	data := `{"signatures":[
		{"id":"S-1","qualification":"QESig"},
		{"id":"S-2","qualification":"FUTURE_TIER"},
		{"id":"S-3","qualification":"QESig","timestamps":[{"qualification":"QTSA_NEW","indication":"PASSED"}]}
	]}`
	r, err := Parse([]byte(data), "report.json")
	require.NoError(t, err)
	require.Len(t, r.Signatures, 3)

	require.NotNil(t, r.Signatures[1].Qualification)
	assert.Equal(t, qualification.Unknown, *r.Signatures[1].Qualification)
	assert.Equal(t, qualification.TimestampUnknown, r.Signatures[2].Timestamps[0].Qualification)

	displays := r.Badges()
	require.Len(t, displays, 3)
	assert.Equal(t, badge.LabelHandwrittenEquivalent, displays[0].Summary().Label)

	assert.Equal(t, badge.LabelUnknownSignature, displays[1].Summary().Label)
	assert.Equal(t, qualification.TierUnknownSignature, displays[1].Summary().Tier)

	require.Len(t, displays[2].Badges, 2)
	assert.Equal(t, badge.LabelQualifiedSignature, displays[2].Badges[0].Label)
	assert.Equal(t, badge.LabelUnknownTimestamp, displays[2].Badges[1].Label)
	assert.Equal(t, badge.StyleUnknown, displays[2].Badges[1].Style)
}

func TestRead(t *testing.T) {
	r, err := Read(strings.NewReader(sampleReport), "stdin")
	require.NoError(t, err)
	assert.Len(t, r.Signatures, 4)
}

func TestSchemaCompiles(t *testing.T) {
	s, err := Schema()
	require.NoError(t, err)
	assert.NotNil(t, s)
}
