package executor

import (
	"context"
	"net/http"
)

type requestHeaderKey struct{}

// hangOverHeaders are copied from the inbound GraphQL request onto every
// upstream call when the request header was stored in the context.
var hangOverHeaders = []string{
	"Authorization",
	"X-Request-Id",
}

// SetRequestHeaderToContext stores a copy of the inbound request header.
func SetRequestHeaderToContext(ctx context.Context, h http.Header) context.Context {
	return context.WithValue(ctx, requestHeaderKey{}, h.Clone())
}

func RequestHeaderFromContext(ctx context.Context) (http.Header, bool) {
	h, ok := ctx.Value(requestHeaderKey{}).(http.Header)
	return h, ok
}

func hangOverRequestHeader(ctx context.Context, dst http.Header) {
	src, ok := RequestHeaderFromContext(ctx)
	if !ok {
		return
	}

	for _, key := range hangOverHeaders {
		if v := src.Get(key); v != "" {
			dst.Set(key, v)
		}
	}
}
