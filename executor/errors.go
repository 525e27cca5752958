package executor

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// ErrEmptyResponse reports a 2xx response that carried no entity: an empty
// body or a JSON null.
var ErrEmptyResponse = errors.New("empty response")

// UpstreamError is returned when a REST call fails: the transport failed,
// the service answered with a non-2xx status, or the body could not be decoded.
type UpstreamError struct {
	Entity    string
	Operation string
	Method    string
	URL       string
	Status    int    // 0 when no response was received
	Body      []byte // raw response body, if any
	Err       error
}

// NewEmptyResponseError reports that r succeeded without returning an entity.
func NewEmptyResponseError(r *Request) *UpstreamError {
	return newUpstreamError(r, 0, nil, ErrEmptyResponse)
}

func newUpstreamError(r *Request, status int, body []byte, err error) *UpstreamError {
	return &UpstreamError{
		Entity:    r.Entity,
		Operation: r.Operation,
		Method:    r.Method,
		URL:       r.URL,
		Status:    status,
		Body:      body,
		Err:       err,
	}
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s.%s: %s %s: %v", e.Entity, e.Operation, e.Method, e.URL, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Extensions is picked up by the GraphQL engine and rendered under
// "extensions" of the error entry.
func (e *UpstreamError) Extensions() map[string]any {
	ext := map[string]any{
		"code":      "UPSTREAM_ERROR",
		"entity":    e.Entity,
		"operation": e.Operation,
	}
	if e.Status != 0 {
		ext["status"] = e.Status
	}

	return ext
}

// ErrorPayload is the error body convention of the upstream REST services.
type ErrorPayload struct {
	ID          any `json:"id"`
	Code        any `json:"code"`
	Description any `json:"description"`
}

// Payload extracts the {id, code, description} error object from the
// response body. The object may be the body itself or nested under "error".
func (e *UpstreamError) Payload() (*ErrorPayload, bool) {
	if len(e.Body) == 0 {
		return nil, false
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(e.Body, &body); err != nil {
		return nil, false
	}

	if nested, ok := body["error"]; ok {
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(nested, &inner); err == nil {
			body = inner
		}
	}

	_, hasID := body["id"]
	_, hasCode := body["code"]
	_, hasDescription := body["description"]
	if !hasID && !hasCode && !hasDescription {
		return nil, false
	}

	p := &ErrorPayload{}
	decode := func(key string, dst *any) {
		if raw, ok := body[key]; ok {
			_ = json.Unmarshal(raw, dst)
		}
	}
	decode("id", &p.ID)
	decode("code", &p.Code)
	decode("description", &p.Description)

	return p, true
}
