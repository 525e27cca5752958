package gateway

import (
	"errors"

	gqlerrors "github.com/graph-gophers/graphql-go/errors"
	"github.com/n9te9/go-graphql-rest-gateway/executor"
)

// formattedError is the client-facing projection of an upstream error payload.
type formattedError struct {
	Message     any   `json:"message"`
	Code        any   `json:"code"`
	Description any   `json:"description"`
	Path        []any `json:"path,omitempty"`
}

// FormatError projects upstream {id, code, description} payloads into
// {message, code, description, path}. Any other error is returned unchanged.
func FormatError(qe *gqlerrors.QueryError) any {
	if qe == nil || qe.ResolverError == nil {
		return qe
	}

	var upstreamErr *executor.UpstreamError
	if !errors.As(qe.ResolverError, &upstreamErr) {
		return qe
	}

	payload, ok := upstreamErr.Payload()
	if !ok {
		return qe
	}

	return &formattedError{
		Message:     payload.ID,
		Code:        payload.Code,
		Description: payload.Description,
		Path:        qe.Path,
	}
}
