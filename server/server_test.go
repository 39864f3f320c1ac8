package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/memberhub/store"
)

// TestConfigValidation tests configuration validation
func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:   "valid default config",
			config: DefaultConfig(),
		},
		{
			name: "valid custom config",
			config: Config{
				BindAddress:   ":9090",
				GraphQLPath:   "/api/graphql",
				TimeoutStr:    "10s",
				MaxQueryDepth: 12,
				SeedUsers:     5,
			},
		},
		{
			name:   "empty config fills defaults",
			config: Config{},
		},
		{
			name: "graphql path without leading slash",
			config: Config{
				GraphQLPath: "graphql",
			},
			wantErr: true,
		},
		{
			name: "timeout too short",
			config: Config{
				TimeoutStr: "10ms",
			},
			wantErr: true,
		},
		{
			name: "max query depth too high",
			config: Config{
				MaxQueryDepth: 100,
			},
			wantErr: true,
		},
		{
			name: "negative seed count",
			config: Config{
				SeedUsers: -1,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestConfigDefaults verifies Validate fills the documented defaults
func TestConfigDefaults(t *testing.T) {
	config := Config{}
	require.NoError(t, config.Validate())

	assert.Equal(t, ":8080", config.BindAddress)
	assert.Equal(t, "/graphql", config.GraphQLPath)
	assert.Equal(t, 6, config.MaxQueryDepth)
	assert.Equal(t, "30s", config.Timeout().String())
}

func newTestServer(t *testing.T, config Config) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv, err := NewServer(config, logger)
	require.NoError(t, err)
	require.NoError(t, srv.Setup(context.Background()))
	return srv
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, reader))

	decoded := map[string]interface{}{}
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Body.String(), "{") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

// TestUserCRUDOverREST walks the full user lifecycle through the REST routes
func TestUserCRUDOverREST(t *testing.T) {
	srv := newTestServer(t, Config{EnableCORS: false})
	h := srv.Handler()

	rec, created := doJSON(t, h, http.MethodPost, "/users", map[string]string{
		"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := created["id"].(string)
	require.NotEmpty(t, id)

	rec, fetched := doJSON(t, h, http.MethodGet, "/users/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ada", fetched["firstName"])

	rec, patched := doJSON(t, h, http.MethodPatch, "/users/"+id, map[string]string{
		"email": "ada@lovelace.dev",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ada@lovelace.dev", patched["email"])
	assert.Equal(t, "Ada", patched["firstName"])

	rec, _ = doJSON(t, h, http.MethodDelete, "/users/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, h, http.MethodGet, "/users/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// TestRESTStatusMapping verifies domain errors reach the wire as the right
// status codes
func TestRESTStatusMapping(t *testing.T) {
	srv := newTestServer(t, Config{EnableCORS: false})
	h := srv.Handler()

	// Missing required fields
	rec, _ := doJSON(t, h, http.MethodPost, "/users", map[string]string{"firstName": "only"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown id on delete
	rec, body := doJSON(t, h, http.MethodDelete, "/users/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, body["message"])

	// Post referencing an unknown author
	rec, _ = doJSON(t, h, http.MethodPost, "/posts", map[string]string{
		"title": "t", "content": "c", "userId": "missing",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Malformed body
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users", strings.NewReader("{")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestSubscriptionEndpoints verifies subscribe and unsubscribe over REST
func TestSubscriptionEndpoints(t *testing.T) {
	srv := newTestServer(t, Config{EnableCORS: false})
	h := srv.Handler()

	_, follower := doJSON(t, h, http.MethodPost, "/users", map[string]string{
		"firstName": "F", "lastName": "One", "email": "f@example.com",
	})
	_, author := doJSON(t, h, http.MethodPost, "/users", map[string]string{
		"firstName": "A", "lastName": "Two", "email": "a@example.com",
	})
	followerID := follower["id"].(string)
	authorID := author["id"].(string)

	rec, updated := doJSON(t, h, http.MethodPost, "/users/"+followerID+"/subscribeTo",
		map[string]string{"userId": authorID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []interface{}{authorID}, updated["subscribedToUserIds"])

	// Repeat subscription conflicts
	rec, _ = doJSON(t, h, http.MethodPost, "/users/"+followerID+"/subscribeTo",
		map[string]string{"userId": authorID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, updated = doJSON(t, h, http.MethodPost, "/users/"+followerID+"/unsubscribeFrom",
		map[string]string{"userId": authorID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, updated["subscribedToUserIds"])
}

// TestMemberTypesAreFixed verifies the tier set has no create or delete routes
func TestMemberTypesAreFixed(t *testing.T) {
	srv := newTestServer(t, Config{EnableCORS: false})
	h := srv.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/member-types", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var tiers []store.MemberType
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tiers))
	assert.Len(t, tiers, 2)

	rec, _ = doJSON(t, h, http.MethodPost, "/member-types", map[string]interface{}{"id": "gold"})
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec, patched := doJSON(t, h, http.MethodPatch, "/member-types/basic",
		map[string]interface{}{"discount": 3})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3.0, patched["discount"])
}

// TestGraphQLServedThroughServer verifies the GraphQL endpoint is mounted
// with the configured depth limit
func TestGraphQLServedThroughServer(t *testing.T) {
	srv := newTestServer(t, Config{EnableCORS: false, MaxQueryDepth: 3})
	h := srv.Handler()

	rec, decoded := doJSON(t, h, http.MethodPost, "/graphql", map[string]string{
		"query": `{ users { id } }`,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decoded, "data")

	rec, decoded = doJSON(t, h, http.MethodPost, "/graphql", map[string]string{
		"query": `{ users { subscribedTo { posts { title } } } }`,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, decoded, "data")
	assert.Contains(t, decoded, "errors")

	// The rejection shows up on the scrape endpoint
	rec2 := httptest.NewRecorder()
	h.ServeHTTP(rec2, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec2.Body.String(), "memberhub_graphql_depth_rejections_total 1")
}

// TestSeededServer verifies SeedUsers populates users, profiles and posts
func TestSeededServer(t *testing.T) {
	srv := newTestServer(t, Config{EnableCORS: false, SeedUsers: 4})

	ctx := context.Background()
	users, err := srv.Store().Users.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 4)
	assert.Equal(t, 4, srv.Store().Profiles.Len())
	assert.Positive(t, srv.Store().Posts.Len())
}

// TestHealthAndMetricsEndpoints verifies the operational endpoints respond
func TestHealthAndMetricsEndpoints(t *testing.T) {
	srv := newTestServer(t, Config{EnableCORS: false})
	h := srv.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	// Drive one request so HTTP series exist, then scrape
	doJSON(t, h, http.MethodGet, "/users", nil)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "memberhub_http_requests_total")
}

// TestCORSPreflight verifies OPTIONS requests short-circuit with CORS headers
func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, Config{EnableCORS: true})
	h := srv.Handler()

	req := httptest.NewRequest(http.MethodOptions, "/users", nil)
	req.Header.Set("Origin", "https://app.example.com")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
