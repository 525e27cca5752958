package gateway

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	graphql "github.com/graph-gophers/graphql-go"
	gqlotel "github.com/graph-gophers/graphql-go/trace/otel"
	"github.com/n9te9/go-graphql-rest-gateway/executor"
	"github.com/n9te9/go-graphql-rest-gateway/graph"
	"github.com/n9te9/go-graphql-rest-gateway/resolver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const requestIDHeader = "X-Request-Id"

type gateway struct {
	graphQLEndpoint string
	serviceName     string
	schema          *graphql.Schema
	superGraph      *graph.SuperGraph
	registry        *prometheus.Registry
	logger          zerolog.Logger
	handler         http.Handler

	enableComplementRequestId   bool
	enableHangOverRequestHeader bool
	enableOpentelemetryTracing  bool
}

var _ http.Handler = (*gateway)(nil)

// NewGateway validates settings and compiles the stitched schema once.
// Any error here must abort startup.
func NewGateway(settings GatewayOption, logger zerolog.Logger) (*gateway, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gateway settings: %w", err)
	}

	timeout, err := settings.Timeout()
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{
		Timeout: timeout,
	}
	if settings.Opentelemetry.TracingSetting.Enable {
		httpClient.Transport = otelhttp.NewTransport(http.DefaultTransport)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	exec := executor.NewExecutor(httpClient,
		executor.WithShowURLs(settings.ShowURLs),
		executor.WithLogger(logger),
		executor.WithMetrics(executor.NewMetrics(reg)),
	)

	res, err := resolver.New(exec, settings.ServiceHosts())
	if err != nil {
		return nil, err
	}

	superGraph, err := resolver.NewSuperGraph()
	if err != nil {
		return nil, fmt.Errorf("failed to build schema: %w", err)
	}

	opts := []graphql.SchemaOpt{
		graphql.Logger(&panicLogger{logger: logger}),
	}
	if settings.Opentelemetry.TracingSetting.Enable {
		opts = append(opts, graphql.Tracer(gqlotel.DefaultTracer()))
	}

	schema, err := superGraph.Compile(res, opts...)
	if err != nil {
		return nil, err
	}

	g := &gateway{
		graphQLEndpoint:             settings.Endpoint,
		serviceName:                 settings.ServiceName,
		schema:                      schema,
		superGraph:                  superGraph,
		registry:                    reg,
		logger:                      logger,
		enableComplementRequestId:   settings.EnableComplementRequestId,
		enableHangOverRequestHeader: settings.EnableHangOverRequestHeader,
		enableOpentelemetryTracing:  settings.Opentelemetry.TracingSetting.Enable,
	}
	g.handler = g.routes()
	g.logRootFields()

	return g, nil
}

func (g *gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.handler.ServeHTTP(w, r)
}

func (g *gateway) routes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc(g.graphQLEndpoint, g.serveGraphQL).Methods(http.MethodGet, http.MethodPost)
	r.Handle("/graphiql", playground.Handler("GraphiQL", g.graphQLEndpoint)).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(g.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok")) //nolint:errcheck
	}).Methods(http.MethodGet)

	var h http.Handler = r
	h = hlog.AccessHandler(accessLog)(h)
	h = tokenHandler(h)
	if g.enableComplementRequestId {
		h = requestIDHandler(h)
	}
	h = hlog.NewHandler(g.logger)(h)
	h = gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{"*"}),
		gorillaHandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", requestIDHeader}),
	)(h)
	if g.enableOpentelemetryTracing {
		h = otelhttp.NewHandler(h, g.serviceName)
	}

	return h
}

func (g *gateway) logRootFields() {
	for _, typeName := range []string{"Query", "Mutation"} {
		fields, err := g.superGraph.RootFields(typeName)
		if err != nil {
			g.logger.Warn().Err(err).Str("type", typeName).Msg("failed to list root fields")
			continue
		}
		g.logger.Debug().Str("type", typeName).Strs("fields", fields).Msg("schema compiled")
	}
}

type graphQLRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

type graphQLResponse struct {
	Data       json.RawMessage `json:"data,omitempty"`
	Errors     []any           `json:"errors,omitempty"`
	Extensions map[string]any  `json:"extensions,omitempty"`
}

func (g *gateway) serveGraphQL(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, graphQLResponse{
			Errors: []any{map[string]string{"message": err.Error()}},
		})
		return
	}

	ctx := r.Context()
	if g.enableHangOverRequestHeader {
		ctx = executor.SetRequestHeaderToContext(ctx, r.Header)
	}

	result := g.schema.Exec(ctx, req.Query, req.OperationName, req.Variables)

	resp := graphQLResponse{
		Data:       json.RawMessage(result.Data),
		Extensions: result.Extensions,
	}
	for _, qe := range result.Errors {
		resp.Errors = append(resp.Errors, FormatError(qe))
	}

	writeJSON(w, r, http.StatusOK, resp)
}

// decodeRequest reads a GraphQL request from URL parameters (GET) or a JSON
// body (POST).
func decodeRequest(r *http.Request) (*graphQLRequest, error) {
	req := &graphQLRequest{}

	switch r.Method {
	case http.MethodGet:
		query := r.URL.Query()
		req.Query = query.Get("query")
		req.OperationName = query.Get("operationName")
		if v := query.Get("variables"); v != "" {
			if err := json.Unmarshal([]byte(v), &req.Variables); err != nil {
				return nil, fmt.Errorf("not a valid GraphQL request: %w", err)
			}
		}
	case http.MethodPost:
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil {
			return nil, fmt.Errorf("unable to parse media type: %w", err)
		}
		if mediaType != "application/json" {
			return nil, errors.New("unrecognised Content-Type, please use application/json for GraphQL requests")
		}
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			return nil, fmt.Errorf("not a valid GraphQL request body: %w", err)
		}
	default:
		return nil, errors.New("unrecognised request method, please use GET or POST for GraphQL requests")
	}

	if strings.TrimSpace(req.Query) == "" {
		return nil, errors.New("no query string supplied in request")
	}

	return req, nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to write response")
	}
}

type tokenKey struct{}

var bearerPattern = regexp.MustCompile(`Bearer ([A-Za-z0-9]+)`)

// tokenHandler stores the bearer token of the Authorization header in the
// request context. The token is not validated.
func tokenHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m := bearerPattern.FindStringSubmatch(r.Header.Get("Authorization")); m != nil {
			r = r.WithContext(context.WithValue(r.Context(), tokenKey{}, m[1]))
		}
		next.ServeHTTP(w, r)
	})
}

// TokenFromContext returns the bearer token extracted from the inbound request.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok
}

// requestIDHandler assigns an X-Request-Id to requests that lack one and
// echoes it on the response.
func requestIDHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)

		next.ServeHTTP(w, r)
	})
}

func accessLog(r *http.Request, status, size int, duration time.Duration) {
	_, hasToken := TokenFromContext(r.Context())
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("request_id", r.Header.Get(requestIDHeader)).
		Bool("token", hasToken).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("request")
}

type panicLogger struct {
	logger zerolog.Logger
}

func (l *panicLogger) LogPanic(ctx context.Context, value any) {
	l.logger.Error().Interface("panic", value).Msg("graphql: panic occurred")
}
