package server

import (
	"fmt"
	"time"

	"github.com/c360/memberhub/errors"
	"github.com/c360/memberhub/graph"
)

// Config holds configuration for the API server
type Config struct {
	// BindAddress is the HTTP bind address (default: ":8080")
	BindAddress string `json:"bind_address"`

	// GraphQLPath is the GraphQL endpoint path (default: "/graphql")
	GraphQLPath string `json:"graphql_path"`

	// EnablePlayground serves the GraphQL playground UI at / (default: true)
	EnablePlayground bool `json:"enable_playground"`

	// EnableCORS enables CORS headers (default: true)
	EnableCORS bool `json:"enable_cors"`

	// CORSOrigins lists allowed CORS origins (default: ["*"])
	CORSOrigins []string `json:"cors_origins,omitempty"`

	// TimeoutStr is the HTTP read/write timeout (default: "30s")
	TimeoutStr string `json:"timeout,omitempty"`

	// MaxQueryDepth limits GraphQL query nesting depth (default: 6)
	MaxQueryDepth int `json:"max_query_depth,omitempty"`

	// SeedUsers populates the store with this many generated users at
	// startup; 0 disables seeding
	SeedUsers int `json:"seed_users,omitempty"`

	// ShutdownTimeout bounds graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `json:"shutdown_timeout,omitempty"`

	// timeout is the parsed duration (internal use)
	timeout time.Duration
}

// Validate ensures the configuration is valid, filling defaults in place
func (c *Config) Validate() error {
	if c.BindAddress == "" {
		c.BindAddress = ":8080"
	}

	if c.GraphQLPath == "" {
		c.GraphQLPath = "/graphql"
	}
	if c.GraphQLPath[0] != '/' {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			"graphql_path must start with /")
	}

	if c.TimeoutStr == "" {
		c.timeout = 30 * time.Second
	} else {
		timeout, err := time.ParseDuration(c.TimeoutStr)
		if err != nil {
			return errors.WrapInvalid(err, "Config", "Validate",
				fmt.Sprintf("invalid timeout format: %s", c.TimeoutStr))
		}
		if timeout < 100*time.Millisecond || timeout > 5*time.Minute {
			return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
				"timeout must be between 100ms and 5m")
		}
		c.timeout = timeout
	}

	if c.MaxQueryDepth == 0 {
		c.MaxQueryDepth = graph.DefaultMaxDepth
	}
	if c.MaxQueryDepth < 1 || c.MaxQueryDepth > 50 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			"max_query_depth must be between 1 and 50")
	}

	if c.SeedUsers < 0 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			"seed_users must not be negative")
	}

	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 30 * time.Second
	}

	if c.EnableCORS && len(c.CORSOrigins) == 0 {
		c.CORSOrigins = []string{"*"}
	}

	return nil
}

// Timeout returns the parsed timeout duration
func (c *Config) Timeout() time.Duration {
	return c.timeout
}

// DefaultConfig returns default API server configuration
func DefaultConfig() Config {
	return Config{
		BindAddress:      ":8080",
		GraphQLPath:      "/graphql",
		EnablePlayground: true,
		EnableCORS:       true,
		CORSOrigins:      []string{"*"},
		TimeoutStr:       "30s",
		MaxQueryDepth:    graph.DefaultMaxDepth,
	}
}
