// Package memberhub is a REST and GraphQL API server over four entity
// kinds - users, posts, profiles and member types - backed by an in-memory
// store.
//
// # Architecture
//
//	┌─────────────────────────────────────┐
//	│        server (HTTP surface)        │  REST routes, /graphql,
//	│   playground, /health, /metrics     │  CORS, lifecycle
//	└─────────────────────────────────────┘
//	           ↓ delegates to
//	┌──────────────────┬──────────────────┐
//	│      graph       │      service     │  schema + resolvers,
//	│ (GraphQL layer)  │ (orchestration)  │  validation, cascades
//	└──────────────────┴──────────────────┘
//	           ↓ reads/writes
//	┌─────────────────────────────────────┐
//	│         store (collections)         │  uniform key-indexed
//	│                                     │  in-memory collections
//	└─────────────────────────────────────┘
//
// # Packages
//
//   - store: generic in-memory collections with filter-based lookups
//   - service: validation, uniqueness invariants, the subscription graph
//     and the user delete cascade
//   - pkg/loader: generic batch loader with per-key caching and explicit
//     dispatch, the N+1 defense of the GraphQL layer
//   - graph: schema, relational resolvers, per-request loader sets, the
//     pre-execution query depth guard and the HTTP execution handler
//   - server: REST routes, endpoint wiring and server lifecycle
//   - seed: generated development data
//   - metric: Prometheus instrumentation
//   - errors: structured error classification
//
// # Execution model
//
// Every GraphQL request gets a fresh set of batch loaders. Relational
// resolvers enqueue loads and return thunks; the engine forces thunks only
// after invoking all sibling resolvers, so one selection level costs one
// store query per relation regardless of row count.
//
// Query documents are depth-checked before execution. A document nested
// beyond the configured limit (default 6) is rejected without invoking a
// single resolver.
//
// # Binary
//
//	# Run with seeded data and the playground at /
//	go run ./cmd/memberhub --seed-users=20
//
//	# Environment variables mirror every flag
//	MEMBERHUB_BIND=:9000 MEMBERHUB_SEED_USERS=20 go run ./cmd/memberhub
package memberhub
