// =============================================================================
// X3 Flat Bridge - Response Extraction
// =============================================================================
//
// Pulls the flat export text out of a backend response. The payload is
// nested three deep:
//
//   SOAP envelope -> resultXml element (CDATA) -> JSON object -> GRP3.O_FILE
//
// Every level is mandatory for an export response. A response missing any of
// them was never a valid export in the first place, so extraction fails
// outright rather than handing the codec a partial result. An O_FILE that is
// present but empty is valid: it decodes to empty collections.
//
// =============================================================================

package soap

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
)

// ErrNoResultPayload reports a response with no extractable result payload:
// no resultXml CDATA, a body that is not the expected JSON, or a JSON object
// without the export file field.
var ErrNoResultPayload = errors.New("no result payload found in response")

// soapResponse maps the envelope down to the resultXml text. Namespace
// prefixes are ignored: only local element names are matched.
type soapResponse struct {
	XMLName xml.Name
	Result  string `xml:"Body>runResponse>runReturn>resultXml"`
}

// exportResult is the JSON inside resultXml. O_FILE is a pointer so a
// present-but-empty file can be told apart from an absent field.
type exportResult struct {
	GRP3 struct {
		OFile *string `json:"O_FILE"`
	} `json:"GRP3"`
}

// ExtractExportFile extracts the flat export text from a raw export
// response body.
func ExtractExportFile(responseBody []byte) (string, error) {
	var envelope soapResponse
	if err := xml.Unmarshal(responseBody, &envelope); err != nil {
		return "", fmt.Errorf("%w: response is not a SOAP envelope: %v", ErrNoResultPayload, err)
	}

	if envelope.Result == "" {
		return "", fmt.Errorf("%w: missing resultXml", ErrNoResultPayload)
	}

	var result exportResult
	if err := json.Unmarshal([]byte(envelope.Result), &result); err != nil {
		return "", fmt.Errorf("%w: resultXml is not valid JSON: %v", ErrNoResultPayload, err)
	}

	if result.GRP3.OFile == nil {
		return "", fmt.Errorf("%w: missing GRP3.O_FILE", ErrNoResultPayload)
	}

	return *result.GRP3.OFile, nil
}
