package graph

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/memberhub/service"
	"github.com/c360/memberhub/store"
)

func newTestHandler(t *testing.T, maxDepth int, observe DispatchObserver) (*Handler, *store.Store) {
	t.Helper()
	st := store.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h, err := NewHandler(st, service.New(st, logger), maxDepth, logger, observe)
	require.NoError(t, err)
	return h, st
}

func postQuery(t *testing.T, h http.Handler, req Request) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body)))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	return rec, decoded
}

func errorExtensions(t *testing.T, decoded map[string]interface{}) map[string]interface{} {
	t.Helper()
	errs, ok := decoded["errors"].([]interface{})
	require.True(t, ok, "expected errors in response: %v", decoded)
	require.NotEmpty(t, errs)
	first := errs[0].(map[string]interface{})
	ext, _ := first["extensions"].(map[string]interface{})
	return ext
}

// TestHandlerRoundTrip runs a create-then-read exchange over HTTP
func TestHandlerRoundTrip(t *testing.T) {
	h, _ := newTestHandler(t, 0, nil)

	rec, decoded := postQuery(t, h, Request{
		Query: `mutation {
			userCreate(input: {firstName: "Ada", lastName: "Lovelace", email: "ada@example.com"}) { user { id } }
		}`,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	data := decoded["data"].(map[string]interface{})
	payload := data["userCreate"].(map[string]interface{})
	id := payload["user"].(map[string]interface{})["id"].(string)
	require.NotEmpty(t, id)

	rec, decoded = postQuery(t, h, Request{
		Query:     `query($id: ID!) { user(id: $id) { firstName } }`,
		Variables: map[string]interface{}{"id": id},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	data = decoded["data"].(map[string]interface{})
	assert.Equal(t, "Ada", data["user"].(map[string]interface{})["firstName"])
}

// TestHandlerDepthGuard verifies an oversized query is rejected before
// execution: structured error, no data key, and no loader dispatches
func TestHandlerDepthGuard(t *testing.T) {
	dispatched := 0
	h, _ := newTestHandler(t, 3, func(string, int) { dispatched++ })

	rec, decoded := postQuery(t, h, Request{
		Query: `{ users { subscribedTo { subscribers { posts { id } } } } }`,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, decoded, "data")
	ext := errorExtensions(t, decoded)
	assert.Equal(t, "DEPTH_LIMIT_EXCEEDED", ext["code"])
	assert.Zero(t, dispatched)
}

// TestHandlerDefaultDepthLimit verifies depth 6 passes and depth 7 fails
// with no limit configured
func TestHandlerDefaultDepthLimit(t *testing.T) {
	h, _ := newTestHandler(t, 0, nil)

	atLimit := `{ users { subscribedTo { subscribedTo { subscribedTo { posts { id } } } } } }`
	_, decoded := postQuery(t, h, Request{Query: atLimit})
	assert.NotContains(t, decoded, "errors")

	pastLimit := `{ users { subscribedTo { subscribedTo { subscribedTo { subscribedTo { posts { id } } } } } } }`
	_, decoded = postQuery(t, h, Request{Query: pastLimit})
	ext := errorExtensions(t, decoded)
	assert.Equal(t, "DEPTH_LIMIT_EXCEEDED", ext["code"])
}

// TestHandlerParseFailure verifies malformed query documents are coded
func TestHandlerParseFailure(t *testing.T) {
	h, _ := newTestHandler(t, 0, nil)

	rec, decoded := postQuery(t, h, Request{Query: `{ users { id `})
	require.Equal(t, http.StatusOK, rec.Code)
	ext := errorExtensions(t, decoded)
	assert.Equal(t, "GRAPHQL_PARSE_FAILED", ext["code"])
}

// TestHandlerMalformedBody verifies invalid JSON is a 400
func TestHandlerMalformedBody(t *testing.T) {
	h, _ := newTestHandler(t, 0, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql",
		strings.NewReader(`{"query": `)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestHandlerMethodNotAllowed verifies only POST is served
func TestHandlerMethodNotAllowed(t *testing.T) {
	h, _ := newTestHandler(t, 0, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/graphql", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}

// TestHandlerErrorCodes verifies domain failures carry machine-readable codes
func TestHandlerErrorCodes(t *testing.T) {
	h, _ := newTestHandler(t, 0, nil)

	_, decoded := postQuery(t, h, Request{
		Query: `mutation { userDelete(id: "missing") { user { id } } }`,
	})
	ext := errorExtensions(t, decoded)
	assert.Equal(t, "NOT_FOUND", ext["code"])
	assert.Equal(t, "Mutation.userDelete", ext["operation"])
}
