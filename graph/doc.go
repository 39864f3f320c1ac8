// Package graph implements the GraphQL surface of memberhub: the schema and
// relational resolver graph over users, posts, profiles and member types,
// per-request batch loaders for N+1 avoidance, a pre-execution query depth
// guard, and the HTTP request entry point.
//
// # Execution model
//
// Each request gets a fresh Loaders set carried in the context. Relational
// fields on User return thunks; the engine invokes every sibling resolver
// before forcing thunks, so all foreign-key loads issued for one selection
// level coalesce into a single store query per relation (see pkg/loader).
//
// Root-level query fields call the store directly. They run once per
// request, not once per row, so the loader layer would buy nothing there.
//
// # Depth guard
//
// Query documents are parsed and depth-checked before any resolver runs.
// A query nested beyond the configured limit is rejected with a structured
// error carrying the code DEPTH_LIMIT_EXCEEDED and the execution engine is
// never entered.
//
// # Error codes
//
// Resolver errors carry machine-readable codes in the error extensions:
//
//	NOT_FOUND             - referenced entity id does not resolve
//	CONFLICT              - uniqueness invariant violated
//	INVALID_INPUT         - malformed or incomplete input
//	DEPTH_LIMIT_EXCEEDED  - query nesting over the configured limit
//	GRAPHQL_PARSE_FAILED  - query document failed to parse
//	INTERNAL_ERROR        - unexpected server-side failure
package graph
