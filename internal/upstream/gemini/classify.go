package gemini

import (
	"encoding/json"

	apperrors "nanobanana-go/internal/errors"

	"github.com/tidwall/gjson"
)

const reasonAPIKeyInvalid = "API_KEY_INVALID"

// Error classes recorded for failed attempts besides network classes.
const (
	classHTTPStatus    = "http_status"
	classMalformedJSON = "malformed_json"
	classRequestBuild  = "request_build"
	classReadBody      = "read_body"
)

// attemptResult is the explicit classification of one outbound attempt.
type attemptResult struct {
	kind           apperrors.Kind // "" on success
	status         int
	class          string
	// upstreamStatus is error.status of a non-2xx envelope, e.g. UNAVAILABLE.
	upstreamStatus string
	response       *Response
}

func (a attemptResult) ok() bool { return a.kind == "" && a.response != nil }

func transient(status int, class string) attemptResult {
	return attemptResult{kind: apperrors.KindTransientFailure, status: status, class: class}
}

// classifyResponse turns a received status and body into an attemptResult.
// A 400 whose error.details carries reason API_KEY_INVALID is the only
// signal that a key is permanently bad.
func classifyResponse(status int, body []byte) attemptResult {
	if status < 200 || status >= 300 {
		envelope := decodeError(body)
		if status == 400 && envelope.hasReason(reasonAPIKeyInvalid) {
			return attemptResult{kind: apperrors.KindInvalidCredential, status: status, class: "api_key_invalid", upstreamStatus: envelope.Error.Status}
		}
		res := transient(status, classHTTPStatus)
		res.upstreamStatus = envelope.Error.Status
		return res
	}
	if !gjson.ValidBytes(body) || !gjson.ParseBytes(body).IsObject() {
		return transient(status, classMalformedJSON)
	}
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return transient(status, classMalformedJSON)
	}
	resp.Raw = body
	return attemptResult{status: status, response: &resp}
}

// decodeError reads the error envelope of a failed reply. Bodies that are not
// an error object yield the zero value.
func decodeError(body []byte) ErrorResponse {
	var envelope ErrorResponse
	if !gjson.GetBytes(body, "error").IsObject() {
		return envelope
	}
	_ = json.Unmarshal(body, &envelope)
	return envelope
}

func (e ErrorResponse) hasReason(reason string) bool {
	for _, d := range e.Error.Details {
		if d.Reason == reason {
			return true
		}
	}
	return false
}
