package main

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strconv"
	"time"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	BindAddress      string
	GraphQLPath      string
	EnablePlayground bool
	EnableCORS       bool
	Timeout          string
	MaxQueryDepth    int
	SeedUsers        int
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration
	ShowVersion      bool
	ShowHelp         bool
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	flag.StringVar(&cfg.BindAddress, "bind",
		getEnv("MEMBERHUB_BIND", ":8080"),
		"HTTP bind address (env: MEMBERHUB_BIND)")

	flag.StringVar(&cfg.GraphQLPath, "graphql-path",
		getEnv("MEMBERHUB_GRAPHQL_PATH", "/graphql"),
		"GraphQL endpoint path (env: MEMBERHUB_GRAPHQL_PATH)")

	flag.BoolVar(&cfg.EnablePlayground, "playground",
		getEnvBool("MEMBERHUB_PLAYGROUND", true),
		"Serve the GraphQL playground at / (env: MEMBERHUB_PLAYGROUND)")

	flag.BoolVar(&cfg.EnableCORS, "cors",
		getEnvBool("MEMBERHUB_CORS", true),
		"Enable CORS headers (env: MEMBERHUB_CORS)")

	flag.StringVar(&cfg.Timeout, "timeout",
		getEnv("MEMBERHUB_TIMEOUT", "30s"),
		"HTTP read/write timeout (env: MEMBERHUB_TIMEOUT)")

	flag.IntVar(&cfg.MaxQueryDepth, "max-query-depth",
		getEnvInt("MEMBERHUB_MAX_QUERY_DEPTH", 6),
		"GraphQL query depth limit (env: MEMBERHUB_MAX_QUERY_DEPTH)")

	flag.IntVar(&cfg.SeedUsers, "seed-users",
		getEnvInt("MEMBERHUB_SEED_USERS", 0),
		"Seed the store with this many generated users, 0 to disable (env: MEMBERHUB_SEED_USERS)")

	flag.StringVar(&cfg.LogLevel, "log-level",
		getEnv("MEMBERHUB_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: MEMBERHUB_LOG_LEVEL)")

	flag.StringVar(&cfg.LogFormat, "log-format",
		getEnv("MEMBERHUB_LOG_FORMAT", "json"),
		"Log format: json, text (env: MEMBERHUB_LOG_FORMAT)")

	flag.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout",
		getEnvDuration("MEMBERHUB_SHUTDOWN_TIMEOUT", 30*time.Second),
		"Graceful shutdown timeout (env: MEMBERHUB_SHUTDOWN_TIMEOUT)")

	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	flag.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	flag.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")

	flag.Usage = printDetailedHelp

	flag.Parse()

	return cfg
}

func validateFlags(cfg *CLIConfig) error {
	if cfg.ShowVersion || cfg.ShowHelp {
		return nil
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	validFormats := []string{"json", "text"}
	if !slices.Contains(validFormats, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	if cfg.SeedUsers < 0 {
		return fmt.Errorf("seed-users must not be negative: %d", cfg.SeedUsers)
	}

	return nil
}

func printDetailedHelp() {
	_, _ = fmt.Fprintf(os.Stderr, `%s - REST and GraphQL API server

Usage: %s [options]

Options:
`, appName, os.Args[0])
	flag.PrintDefaults()
	_, _ = fmt.Fprintf(os.Stderr, `
Examples:
  # Run on a custom port with seeded data
  %s --bind=:9000 --seed-users=20

  # Run with debug logging
  %s --log-level=debug --log-format=text

  # Run with environment variables
  export MEMBERHUB_BIND=:9000
  export MEMBERHUB_SEED_USERS=20
  %s

Version: %s
Build: %s
`, os.Args[0], os.Args[0], os.Args[0], Version, BuildTime)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
