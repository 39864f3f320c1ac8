// Package main implements the entry point for the MemberHub API server: a
// REST and GraphQL service over users, posts, profiles and member types
// backed by an in-memory store.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/c360/memberhub/server"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "memberhub"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("Application failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	// A .env file is optional; env vars feed the flag defaults
	_ = godotenv.Load()

	cliCfg := parseFlags()
	if err := validateFlags(cliCfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil
	}

	if cliCfg.ShowHelp {
		printDetailedHelp()
		return nil
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	slog.Info("Starting MemberHub API server",
		"version", Version,
		"build_time", BuildTime,
		"bind", cliCfg.BindAddress)

	srv, err := server.NewServer(server.Config{
		BindAddress:      cliCfg.BindAddress,
		GraphQLPath:      cliCfg.GraphQLPath,
		EnablePlayground: cliCfg.EnablePlayground,
		EnableCORS:       cliCfg.EnableCORS,
		TimeoutStr:       cliCfg.Timeout,
		MaxQueryDepth:    cliCfg.MaxQueryDepth,
		SeedUsers:        cliCfg.SeedUsers,
		ShutdownTimeout:  cliCfg.ShutdownTimeout,
	}, logger)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Setup(ctx); err != nil {
		return fmt.Errorf("setup server: %w", err)
	}

	ready := make(chan struct{})
	go func() {
		<-ready
		logger.Info("server ready", "address", cliCfg.BindAddress)
	}()

	// Start blocks until a signal cancels the context, then shuts down
	// within the configured shutdown timeout
	if err := srv.Start(ctx, ready); err != nil {
		return fmt.Errorf("run server: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}
