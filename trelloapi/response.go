package trelloapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Response is the HTTP envelope of a successful API call.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// JSONBody returns the raw response body. It allows a *Response to be passed directly to the
// schema validator.
func (r *Response) JSONBody() []byte {
	return r.Body
}

// Decode unmarshals the response body into target.
func (r *Response) Decode(target interface{}) error {
	if err := json.Unmarshal(r.Body, target); err != nil {
		return fmt.Errorf("malformed JSON response body: %w", err)
	}
	return nil
}

// Value parses the response body as an arbitrary JSON value. A body that is not valid JSON
// produces ldvalue.Null().
func (r *Response) Value() ldvalue.Value {
	return ldvalue.Parse(r.Body)
}

// APIError is returned for any response with a status code outside the 2xx range.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	// Message is the response body. Trello sends error messages as plain text; if the body is a
	// JSON string, or an object with a "message" property, the message is extracted from it.
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: %d - %q", e.Method, e.Path, e.StatusCode, e.Message)
}

func errorMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	var s string
	if err := json.Unmarshal([]byte(trimmed), &s); err == nil {
		return s
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(trimmed), &obj); err == nil && obj.Message != "" {
		return obj.Message
	}
	return trimmed
}
