// Package server exposes the HTTP surface of memberhub: REST routes for the
// four entity kinds, the GraphQL endpoint with its pre-execution depth guard
// and per-request batch loaders, the playground, and the health and metrics
// endpoints. The Server owns one in-memory store for its lifetime; Setup
// optionally seeds it with generated data.
package server
