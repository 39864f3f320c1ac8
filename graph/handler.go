package graph

import (
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"

	"github.com/c360/memberhub/errors"
	"github.com/c360/memberhub/service"
	"github.com/c360/memberhub/store"
)

// Request is the standard GraphQL POST body
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Observer receives execution outcomes for instrumentation. Either hook
// may be nil.
type Observer struct {
	// Operation is called once per executed request with "ok" or "error"
	Operation func(status string)

	// DepthRejected is called for every query the depth guard refuses
	DepthRejected func()
}

// Handler executes GraphQL requests over HTTP. Each request gets a fresh
// Loaders set, so batching and caching never cross request boundaries.
type Handler struct {
	schema   graphql.Schema
	store    *store.Store
	service  *service.Service
	maxDepth int
	logger   *slog.Logger
	observe  DispatchObserver
	observer Observer
}

// SetObserver installs execution outcome hooks. Must be called before the
// handler starts serving.
func (h *Handler) SetObserver(o Observer) {
	h.observer = o
}

// NewHandler builds the GraphQL endpoint handler. maxDepth <= 0 selects
// DefaultMaxDepth; observe may be nil.
func NewHandler(st *store.Store, svc *service.Service, maxDepth int, logger *slog.Logger, observe DispatchObserver) (*Handler, error) {
	if st == nil || svc == nil {
		return nil, errors.WrapFatal(errors.ErrMissingConfig,
			"Handler", "NewHandler", "store and service are required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	schema, err := NewSchema()
	if err != nil {
		return nil, errors.WrapFatal(err, "Handler", "NewHandler", "schema construction")
	}

	return &Handler{
		schema:   schema,
		store:    st,
		service:  svc,
		maxDepth: maxDepth,
		logger:   logger,
		observe:  observe,
	}, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResult(w, http.StatusBadRequest,
			wrapResolverError(errors.WrapInvalid(err, "Handler", "ServeHTTP", "request decode"), "request"))
		return
	}

	// The depth guard runs before execution; an oversized query is rejected
	// without invoking a single resolver.
	if err := CheckDepth(req.Query, h.maxDepth); err != nil {
		h.logger.Warn("query rejected by depth guard",
			"operation", req.OperationName,
			"error", err)
		if h.observer.DepthRejected != nil {
			h.observer.DepthRejected()
		}
		writeErrorResult(w, http.StatusOK, wrapResolverError(err, "request"))
		return
	}

	ctx := WithStore(r.Context(), h.store)
	ctx = WithService(ctx, h.service)
	ctx = WithLoaders(ctx, NewLoaders(h.store, h.observe))

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        ctx,
	})

	status := "ok"
	if len(result.Errors) > 0 {
		status = "error"
		h.logger.Warn("graphql execution returned errors",
			"operation", req.OperationName,
			"error_count", len(result.Errors))
	}
	if h.observer.Operation != nil {
		h.observer.Operation(status)
	}

	writeJSON(w, http.StatusOK, result)
}

// writeErrorResult emits a GraphQL-shaped error response with no data key.
// The formatted error is built by hand because gqlerrors.FormatError only
// consults ExtendedError for errors that went through execution.
func writeErrorResult(w http.ResponseWriter, status int, err error) {
	formatted := gqlerrors.FormattedError{Message: err.Error()}
	var extended gqlerrors.ExtendedError
	if stderrors.As(err, &extended) {
		formatted.Extensions = extended.Extensions()
	}
	writeJSON(w, status, map[string]interface{}{
		"errors": []gqlerrors.FormattedError{formatted},
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
