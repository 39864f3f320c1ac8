// Package service implements the orchestration layer between the transport
// surfaces (REST and GraphQL) and the store: input validation, uniqueness
// invariants, the subscription graph, and the application-level delete
// cascade. The store itself only performs uniform key-indexed lookups; every
// cross-entity rule lives here.
package service

import (
	"log/slog"

	"github.com/c360/memberhub/store"
)

// Service exposes all mutation and validation operations over the store.
// It is safe for concurrent use; consistency of individual collection
// operations is the store's concern.
type Service struct {
	store  *store.Store
	logger *slog.Logger
}

// New creates a service around the given store
func New(st *store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  st,
		logger: logger.With("component", "service"),
	}
}

// Store returns the underlying store handle for read paths that bypass the
// orchestration layer (root-level queries, loaders)
func (s *Service) Store() *store.Store {
	return s.store
}
