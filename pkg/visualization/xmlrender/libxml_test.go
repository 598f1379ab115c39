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

package xmlrender

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pomali/autogram/pkg/document"
	"github.com/pomali/autogram/pkg/errtypes"
	"github.com/pomali/autogram/pkg/logging"
)

const (
	invoiceXSD = `<?xml version="1.0" encoding="UTF-8"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
  <xs:element name="invoice">
    <xs:complexType>
      <xs:sequence>
        <xs:element name="total" type="xs:decimal"/>
      </xs:sequence>
    </xs:complexType>
  </xs:element>
</xs:schema>`

	invoiceTextXSL = `<?xml version="1.0" encoding="UTF-8"?>
<xsl:stylesheet version="1.0" xmlns:xsl="http://www.w3.org/1999/XSL/Transform">
  <xsl:output method="text"/>
  <xsl:template match="/invoice">Total: <xsl:value-of select="total"/></xsl:template>
</xsl:stylesheet>`

	invoiceHTMLXSL = `<?xml version="1.0" encoding="UTF-8"?>
<xsl:stylesheet version="1.0" xmlns:xsl="http://www.w3.org/1999/XSL/Transform">
  <xsl:output method="html"/>
  <xsl:template match="/invoice"><p class="total"><xsl:value-of select="total"/></p></xsl:template>
</xsl:stylesheet>`

	validInvoice   = `<?xml version="1.0"?><invoice><total>12.50</total></invoice>`
	invalidInvoice = `<?xml version="1.0"?><invoice><total>twelve</total></invoice>`
)

func TestLibXMLValidator(t *testing.T) {
	v := LibXMLValidator{}
	assert.NoError(t, v.Validate([]byte(validInvoice), []byte(invoiceXSD)))
	assert.Error(t, v.Validate([]byte(invalidInvoice), []byte(invoiceXSD)))
	assert.Error(t, v.Validate([]byte("<invoice>"), []byte(invoiceXSD)), "malformed document")
	assert.Error(t, v.Validate([]byte(validInvoice), []byte("not a schema")))
}

func TestXSLTTransformer(t *testing.T) {
	out, err := XSLTTransformer{}.Transform([]byte(validInvoice), []byte(invoiceTextXSL))
	require.NoError(t, err)
	assert.Equal(t, "Total: 12.50", strings.TrimSpace(string(out)))

	_, err = XSLTTransformer{}.Transform([]byte(validInvoice), []byte("<xsl:broken"))
	assert.Error(t, err)
}

func TestRenderWithLibXML(t *testing.T) {
	r := New(Options{
		Logger: logging.NewLoggerWithOptions(logging.LoggerOptions{Level: logging.LevelSilent}),
	})
	doc := document.New("invoice.xml", document.MimeXML, []byte(validInvoice))

	t.Run("plain text", func(t *testing.T) {
		out, err := r.Render(context.Background(), doc, document.Parameters{
			Schema:                   invoiceXSD,
			Transformation:           invoiceTextXSL,
			TransformationOutputType: document.MimePlain,
		})
		require.NoError(t, err)
		assert.True(t, out.PlainText())
		assert.Equal(t, "Total: 12.50", strings.TrimSpace(out.Content))
	})

	t.Run("markup", func(t *testing.T) {
		out, err := r.Render(context.Background(), doc, document.Parameters{
			Transformation:           invoiceHTMLXSL,
			TransformationOutputType: document.MimeHTML,
		})
		require.NoError(t, err)
		assert.False(t, out.PlainText())
		assert.Contains(t, out.Content, `<p class="total">12.50</p>`)
	})

	t.Run("schema failure", func(t *testing.T) {
		bad := document.New("invoice.xml", document.MimeXML, []byte(invalidInvoice))
		_, err := r.Render(context.Background(), bad, document.Parameters{
			Schema:                   invoiceXSD,
			Transformation:           invoiceTextXSL,
			TransformationOutputType: document.MimePlain,
		})
		assert.True(t, errtypes.IsType(err, errtypes.ErrTypeSchemaValidation))
	})
}

func TestRenderAfterLibXMLFailure(t *testing.T) {
	r := New(Options{
		Logger: logging.NewLoggerWithOptions(logging.LoggerOptions{Level: logging.LevelSilent}),
	})
	params := document.Parameters{
		Schema:                   invoiceXSD,
		Transformation:           invoiceTextXSL,
		TransformationOutputType: document.MimePlain,
	}
	valid := document.New("invoice.xml", document.MimeXML, []byte(validInvoice))

	failures := []struct {
		name    string
		content string
		params  document.Parameters
	}{
		{name: "invalid document", content: invalidInvoice, params: params},
		{name: "malformed document", content: "<invoice>", params: params},
		{name: "unparseable schema", content: validInvoice, params: document.Parameters{
			Schema:                   "not a schema",
			Transformation:           invoiceTextXSL,
			TransformationOutputType: document.MimePlain,
		}},
	}
	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			bad := document.New("invoice.xml", document.MimeXML, []byte(tt.content))
			_, err := r.Render(context.Background(), bad, tt.params)
			require.Error(t, err)

			out, err := r.Render(context.Background(), valid, params)
			require.NoError(t, err)
			assert.Equal(t, "Total: 12.50", strings.TrimSpace(out.Content))
		})
	}
}
