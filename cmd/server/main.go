package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pep299/update-simplifier/internal/application"
	"github.com/pep299/update-simplifier/internal/config"
	"github.com/pep299/update-simplifier/internal/logging"
	"github.com/pep299/update-simplifier/internal/transport/server"
)

var version = "dev"

func main() {
	showHelp := flag.Bool("help", false, "Show help")
	showVersion := flag.Bool("version", false, "Show version")
	flag.Parse()

	if *showHelp {
		fmt.Println("update-simplifier server")
		fmt.Println("Serves POST /simplify-text and the /api/v1 routes.")
		fmt.Println("Configuration is read from the environment and an optional .env file.")
		flag.PrintDefaults()
		return
	}
	if *showVersion {
		fmt.Println(version)
		return
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logging.Setup(cfg)

	if cfg.APIKey() == "" {
		slog.Warn("no API key configured, model calls will fail", "provider", cfg.Provider)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := application.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to create application", "error", err)
		os.Exit(1)
	}
	app.Reporter.Start()

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:      server.NewRouter(app),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.LLMTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server
	go func() {
		slog.Info("starting server", "addr", httpServer.Addr, "provider", cfg.Provider, "model", cfg.Model())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	slog.Info("shutting down server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	if err := app.Close(shutdownCtx); err != nil {
		slog.Error("application close error", "error", err)
	}

	slog.Info("server stopped")
}
