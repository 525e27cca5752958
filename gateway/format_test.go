package gateway

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	gqlerrors "github.com/graph-gophers/graphql-go/errors"
	"github.com/n9te9/go-graphql-rest-gateway/executor"
)

func TestFormatError(t *testing.T) {
	withPayload := &executor.UpstreamError{
		Entity:    "lodging",
		Operation: "byId",
		Status:    404,
		Body:      []byte(`{"error":{"id":"LODGING_NOT_FOUND","code":"E404","description":"no such lodging"}}`),
		Err:       errors.New("unexpected status code 404"),
	}
	withoutPayload := &executor.UpstreamError{
		Entity:    "lodging",
		Operation: "byId",
		Status:    500,
		Body:      []byte(`internal server error`),
		Err:       errors.New("unexpected status code 500"),
	}
	plain := errors.New("boom")

	tests := []struct {
		name string
		qe   *gqlerrors.QueryError
		want any
	}{
		{
			name: "upstream payload is projected",
			qe:   &gqlerrors.QueryError{Message: withPayload.Error(), ResolverError: withPayload, Path: []any{"lodgingById"}},
			want: &formattedError{
				Message:     "LODGING_NOT_FOUND",
				Code:        "E404",
				Description: "no such lodging",
				Path:        []any{"lodgingById"},
			},
		},
		{
			name: "wrapped upstream error is projected",
			qe:   &gqlerrors.QueryError{ResolverError: fmt.Errorf("resolve: %w", withPayload), Path: []any{"lodgingById"}},
			want: &formattedError{
				Message:     "LODGING_NOT_FOUND",
				Code:        "E404",
				Description: "no such lodging",
				Path:        []any{"lodgingById"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, FormatError(tt.qe)); diff != "" {
				t.Errorf("FormatError() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	passthrough := []struct {
		name string
		qe   *gqlerrors.QueryError
	}{
		{name: "upstream error without payload", qe: &gqlerrors.QueryError{ResolverError: withoutPayload}},
		{name: "other resolver error", qe: &gqlerrors.QueryError{ResolverError: plain}},
		{name: "validation error", qe: &gqlerrors.QueryError{Message: `Cannot query field "x" on type "Query".`}},
	}

	for _, tt := range passthrough {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatError(tt.qe); got != any(tt.qe) {
				t.Errorf("FormatError() = %#v, want the error unchanged", got)
			}
		})
	}
}
