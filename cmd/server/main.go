package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iudanet/chatsync/internal/server/handlers"
	"github.com/iudanet/chatsync/internal/server/hub"
	"github.com/iudanet/chatsync/internal/server/middleware"
	"github.com/iudanet/chatsync/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Parse flags
	showVersion := flag.Bool("version", false, "Show version information")
	addr := flag.String("addr", ":8080", "Listen address")
	dbPath := flag.String("db", "chatsync.db", "Path to SQLite database")
	rateLimit := flag.Int("rate-limit", 100, "Requests per minute per client IP")
	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(ctx, *dbPath)
	if err != nil {
		logger.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	wsHub := hub.New(logger)

	mux := http.NewServeMux()
	handlers.NewEntitiesHandler(logger, store, wsHub).Register(mux)
	mux.HandleFunc("GET /health", handlers.NewHealthHandler(logger, Version, store.DB()).Health)
	mux.Handle("GET /ws", wsHub)

	// logging идет последним в цепочке: websocket-апгрейд и health-пробы
	// не попадают в access-лог
	handler := middleware.RecoveryMiddleware(logger)(
		middleware.RateLimitMiddleware(*rateLimit, time.Minute, logger)(
			middleware.LoggingWithSkip(logger, []string{"/health", "/ws"})(mux)))

	server := &http.Server{
		Addr:         *addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("ChatSync server listening", "addr", *addr, "version", Version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("ChatSync server stopped")
}

func printVersion() {
	fmt.Printf("ChatSync Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
