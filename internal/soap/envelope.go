// =============================================================================
// X3 Flat Bridge - SOAP Envelope Construction
// =============================================================================
//
// Builds the request envelopes for the backend's generic web service. Both
// directions share the same shape: a CAdxCallContext header block and an
// inputXml string whose value is a JSON payload.
//
//   - Export (AOWSEXPORT): JSON names the export model, optional selection
//     criteria lines, and asks for "|" as the record separator.
//   - Import (AOWSIMPORT): JSON names the import model and carries the flat
//     order file in I_FILE; the JSON rides inside a CDATA section because
//     the flat text is not XML-safe.
//
// The response parsing lives in extract.go.
//
// =============================================================================

package soap

import (
	"encoding/json"
	"fmt"
	"strings"
)

// requestConfig asks the backend to answer with JSON inside resultXml.
const requestConfig = "adxwss.optreturn=JSON&adxwss.beautify=true"

// recordSeparator is requested on every call so exports match the codec's
// expectations.
const recordSeparator = "|"

// envelopeTemplate is the shared SOAP 1.1 skeleton. Interpolated values are
// escaped (or CDATA-wrapped) by the builders below.
const envelopeTemplate = `<?xml version="1.0" encoding="utf-8"?>
<soapenv:Envelope xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xmlns:xsd="http://www.w3.org/2001/XMLSchema" xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:wss="http://www.adonix.com/WSS">
  <soapenv:Header/>
  <soapenv:Body>
    <wss:run soapenv:encodingStyle="http://schemas.xmlsoap.org/soap/encoding/">
      <callContext xsi:type="wss:CAdxCallContext">
        <codeLang xsi:type="xsd:string">%s</codeLang>
        <poolAlias xsi:type="xsd:string">%s</poolAlias>
        <poolId xsi:type="xsd:string">%s</poolId>
        <requestConfig xsi:type="xsd:string">%s</requestConfig>
      </callContext>
      <publicName xsi:type="xsd:string">%s</publicName>
      <inputXml xsi:type="xsd:string">%s</inputXml>
    </wss:run>
  </soapenv:Body>
</soapenv:Envelope>`

// =============================================================================
// PAYLOADS
// =============================================================================

// exportPayload is the JSON carried by an export call.
type exportPayload struct {
	GRP1 exportModel      `json:"GRP1"`
	GRP2 []exportCriteria `json:"GRP2"`
	GRP3 exportExec       `json:"GRP3"`
}

type exportModel struct {
	Module string `json:"I_MODEXP"`
	Chrono string `json:"I_CHRONO"`
}

type exportCriteria struct {
	Criteria string `json:"I_TCRITERE"`
}

type exportExec struct {
	Exec      string `json:"I_EXEC"`
	RecordSep string `json:"I_RECORDSEP"`
}

// importPayload is the JSON carried by an import call. The flat order file
// travels in I_FILE.
type importPayload struct {
	GRP1 importModel `json:"GRP1"`
}

type importModel struct {
	Module    string `json:"I_MODIMP"`
	Aowsta    string `json:"I_AOWSTA"`
	Exec      string `json:"I_EXEC"`
	RecordSep string `json:"I_RECORDSEP"`
	File      string `json:"I_FILE"`
}

// =============================================================================
// ENVELOPE BUILDERS
// =============================================================================

// buildExportEnvelope renders the export request. Criteria lines are passed
// through verbatim (e.g. "ZUSER='john'"); an empty slice sends an empty
// GRP2 array as the backend expects.
func (c *Client) buildExportEnvelope(module string, criteria []string) (string, error) {
	payload := exportPayload{
		GRP1: exportModel{Module: module, Chrono: "NO"},
		GRP2: make([]exportCriteria, 0, len(criteria)),
		GRP3: exportExec{Exec: "REALTIME", RecordSep: recordSeparator},
	}
	for _, criterion := range criteria {
		payload.GRP2 = append(payload.GRP2, exportCriteria{Criteria: criterion})
	}

	inner, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode export payload: %w", err)
	}

	return fmt.Sprintf(envelopeTemplate,
		escapeXML(c.language),
		escapeXML(c.poolAlias),
		escapeXML(c.poolID),
		escapeXML(requestConfig),
		escapeXML(c.exportName),
		escapeXML(string(inner)),
	), nil
}

// buildImportEnvelope renders the import request. The JSON payload is
// CDATA-wrapped so the flat file's delimiters survive untouched.
func (c *Client) buildImportEnvelope(module, flatFile string) (string, error) {
	payload := importPayload{
		GRP1: importModel{
			Module:    module,
			Aowsta:    "NO",
			Exec:      "REALTIME",
			RecordSep: recordSeparator,
			File:      flatFile,
		},
	}

	inner, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode import payload: %w", err)
	}

	return fmt.Sprintf(envelopeTemplate,
		escapeXML(c.language),
		escapeXML(c.poolAlias),
		escapeXML(c.poolID),
		escapeXML(requestConfig),
		escapeXML(c.importName),
		wrapCDATA(string(inner)),
	), nil
}

// =============================================================================
// XML HELPERS
// =============================================================================

// escapeXML escapes the five XML special characters in element content.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}

// wrapCDATA wraps content in a CDATA section, splitting any "]]>" so the
// section cannot terminate early.
func wrapCDATA(s string) string {
	s = strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>")
	return "<![CDATA[" + s + "]]>"
}

// QuoteCriterion renders one selection criterion line ("FIELD='value'"),
// doubling embedded quotes so a value cannot break out of the literal.
func QuoteCriterion(field, value string) string {
	return fmt.Sprintf("%s='%s'", field, strings.ReplaceAll(value, "'", "''"))
}
