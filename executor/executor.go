package executor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Request describes a single REST call issued on behalf of one GraphQL field.
type Request struct {
	Entity    string // upstream service name (e.g. "user")
	Operation string // resolver operation (e.g. "byId")
	Method    string
	URL       string
	Body      any
}

// Executor dispatches REST calls to the upstream services.
// It holds no per-request state and is safe for concurrent use.
type Executor struct {
	httpClient *http.Client
	showURLs   bool
	logger     zerolog.Logger
	metrics    *Metrics
}

type Option func(*Executor)

// WithShowURLs logs every outbound URL before it is dispatched.
func WithShowURLs(show bool) Option {
	return func(e *Executor) {
		e.showURLs = show
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(e *Executor) {
		e.metrics = metrics
	}
}

// NewExecutor creates a new Executor instance.
func NewExecutor(httpClient *http.Client, opts ...Option) *Executor {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	e := &Executor{
		httpClient: httpClient,
		logger:     zerolog.Nop(),
	}
	for _, o := range opts {
		o(e)
	}

	return e
}

// Do sends r and decodes a 2xx JSON response into out.
// Any failure is returned as *UpstreamError.
func (e *Executor) Do(ctx context.Context, r *Request, out any) error {
	if e.showURLs {
		e.logger.Info().
			Str("entity", r.Entity).
			Str("method", r.Method).
			Msg(r.URL)
	}

	start := time.Now()
	status, err := e.sendRequest(ctx, r, out)
	e.metrics.observe(r, status, time.Since(start))

	return err
}

// Get issues a GET to rawURL with params appended as a query string.
func (e *Executor) Get(ctx context.Context, entity, operation, rawURL string, params Params, out any) error {
	return e.Do(ctx, &Request{
		Entity:    entity,
		Operation: operation,
		Method:    http.MethodGet,
		URL:       AddParams(rawURL, params),
	}, out)
}

func (e *Executor) sendRequest(ctx context.Context, r *Request, out any) (int, error) {
	var body io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return 0, newUpstreamError(r, 0, nil, fmt.Errorf("failed to marshal request: %w", err))
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL, body)
	if err != nil {
		return 0, newUpstreamError(r, 0, nil, fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	hangOverRequestHeader(ctx, req.Header)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return 0, newUpstreamError(r, 0, nil, fmt.Errorf("failed to send request: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, newUpstreamError(r, resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return resp.StatusCode, newUpstreamError(r, resp.StatusCode, respBody, fmt.Errorf("unexpected status code %d", resp.StatusCode))
	}

	// DELETE endpoints may answer with an empty body.
	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return resp.StatusCode, nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return resp.StatusCode, newUpstreamError(r, resp.StatusCode, respBody, fmt.Errorf("failed to unmarshal response: %w", err))
	}

	return resp.StatusCode, nil
}
