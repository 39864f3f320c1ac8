package server

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/99designs/gqlgen/graphql/playground"

	"github.com/c360/memberhub/errors"
	"github.com/c360/memberhub/graph"
	"github.com/c360/memberhub/metric"
	"github.com/c360/memberhub/seed"
	"github.com/c360/memberhub/service"
	"github.com/c360/memberhub/store"
)

// Server owns the HTTP surface of memberhub: the REST routes, the GraphQL
// endpoint with its depth guard and per-request loaders, the playground,
// health and metrics endpoints.
type Server struct {
	config   Config
	store    *store.Store
	service  *service.Service
	registry *metric.MetricsRegistry
	logger   *slog.Logger

	httpServer *http.Server
	mux        *http.ServeMux

	// Lifecycle
	running  bool
	mu       sync.RWMutex
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewServer creates a server with a fresh store and service
func NewServer(config Config, logger *slog.Logger) (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.WrapInvalid(err, "Server", "NewServer", "config validation")
	}

	if logger == nil {
		logger = slog.Default()
	}

	st := store.New()
	return &Server{
		config:   config,
		store:    st,
		service:  service.New(st, logger),
		registry: metric.NewMetricsRegistry(),
		logger:   logger,
		mux:      http.NewServeMux(),
		stopChan: make(chan struct{}),
	}, nil
}

// Store returns the server's store handle
func (s *Server) Store() *store.Store {
	return s.store
}

// Setup seeds the store, builds the GraphQL handler and registers all routes
func (s *Server) Setup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.config.SeedUsers > 0 {
		if err := seed.Populate(ctx, s.service, s.config.SeedUsers, s.logger); err != nil {
			return errors.Wrap(err, "Server", "Setup", "store seeding")
		}
	}
	s.updateEntityGauges(ctx)

	metrics := s.registry.CoreMetrics()
	graphHandler, err := graph.NewHandler(s.store, s.service, s.config.MaxQueryDepth, s.logger,
		func(relation string, batchSize int) {
			metrics.RecordLoaderBatch(relation, batchSize)
		})
	if err != nil {
		return errors.Wrap(err, "Server", "Setup", "graphql handler construction")
	}
	graphHandler.SetObserver(graph.Observer{
		Operation:     metrics.RecordGraphQLOperation,
		DepthRejected: metrics.RecordDepthRejection,
	})

	s.mux.Handle("POST "+s.config.GraphQLPath, s.instrument(s.config.GraphQLPath, graphHandler))
	s.registerRESTRoutes()

	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.Handle("GET /metrics", s.registry.Handler())

	if s.config.EnablePlayground {
		s.mux.Handle("GET /{$}", playground.Handler("MemberHub GraphQL", s.config.GraphQLPath))
		s.logger.Info("GraphQL playground enabled", "address", s.config.BindAddress)
	}

	var handler http.Handler = s.mux
	if s.config.EnableCORS {
		handler = s.corsMiddleware(handler)
	}

	s.httpServer = &http.Server{
		Addr:         s.config.BindAddress,
		Handler:      handler,
		ReadTimeout:  s.config.Timeout(),
		WriteTimeout: s.config.Timeout(),
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("server configured",
		"address", s.config.BindAddress,
		"graphql_path", s.config.GraphQLPath,
		"max_query_depth", s.config.MaxQueryDepth,
		"seeded_users", s.config.SeedUsers)

	return nil
}

// Handler returns the configured root handler. Only valid after Setup.
func (s *Server) Handler() http.Handler {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Handler
}

// Start starts the HTTP server.
// The ready channel is closed when the server is about to accept connections.
func (s *Server) Start(ctx context.Context, ready chan<- struct{}) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.WrapFatal(errors.ErrAlreadyStarted, "Server", "Start", "server already running")
	}
	if s.httpServer == nil {
		s.mu.Unlock()
		return errors.WrapFatal(errors.ErrNotStarted, "Server", "Start", "Setup must run before Start")
	}
	s.running = true
	server := s.httpServer
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		defer close(errChan)
		s.logger.Info("server starting", "address", s.config.BindAddress)

		if ready != nil {
			close(ready)
		}

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", "error", err)
			select {
			case errChan <- err:
			case <-ctx.Done():
			case <-s.stopChan:
			}
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("server context cancelled, shutting down")
		return s.Stop(s.config.ShutdownTimeout)

	case <-s.stopChan:
		s.logger.Info("server stop requested")
		return nil

	case err := <-errChan:
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		return errors.WrapFatal(err, "Server", "Start", "HTTP server failed")
	}
}

// Stop gracefully shuts down the HTTP server
func (s *Server) Stop(timeout time.Duration) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	server := s.httpServer
	s.mu.Unlock()

	s.logger.Info("server stopping")

	s.stopOnce.Do(func() {
		close(s.stopChan)
	})

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		s.logger.Error("failed to shut down server gracefully", "error", err)
		return errors.WrapTransient(err, "Server", "Stop", "graceful shutdown failed")
	}

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	s.logger.Info("server stopped")
	return nil
}

// IsRunning returns whether the server is currently running
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}

// instrument wraps a handler with request counting and latency observation,
// labelled by the route pattern rather than the raw path
func (s *Server) instrument(route string, next http.Handler) http.Handler {
	metrics := s.registry.CoreMetrics()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		metrics.RecordHTTPRequest(r.Method, route, strconv.Itoa(recorder.status), time.Since(start))
		if r.Method != http.MethodGet {
			s.updateEntityGauges(r.Context())
		}
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// corsMiddleware adds CORS headers to responses
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		allowed := false
		for _, allowedOrigin := range s.config.CORSOrigins {
			if allowedOrigin == "*" || allowedOrigin == origin {
				allowed = true
				break
			}
		}

		if allowed {
			if origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
			} else {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "3600")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// updateEntityGauges refreshes the stored entity counts
func (s *Server) updateEntityGauges(_ context.Context) {
	metrics := s.registry.CoreMetrics()
	metrics.SetEntityCount("users", s.store.Users.Len())
	metrics.SetEntityCount("posts", s.store.Posts.Len())
	metrics.SetEntityCount("profiles", s.store.Profiles.Len())
	metrics.SetEntityCount("member_types", s.store.MemberTypes.Len())
}
