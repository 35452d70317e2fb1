package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"github.com/pep299/update-simplifier/internal/application"
	"github.com/pep299/update-simplifier/internal/config"
	"github.com/pep299/update-simplifier/internal/logging"
	"github.com/pep299/update-simplifier/internal/transport/middleware"
	"github.com/pep299/update-simplifier/internal/transport/response"
)

// NewRouter builds the HTTP routes for app
func NewRouter(app *application.Application) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Logging, middleware.CORS)

	r.Handle("/simplify-text", app.SimplifyHandler).Methods(http.MethodPost, http.MethodOptions)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Handle("/health", app.HealthHandler).Methods(http.MethodGet)
	api.Handle("/config", app.ConfigHandler).Methods(http.MethodGet)
	api.Handle("/briefs", app.BriefHandler).Methods(http.MethodPost, http.MethodOptions)
	api.Handle("/complexity", app.ComplexityHandler).Methods(http.MethodPost, http.MethodOptions)

	r.NotFoundHandler = middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.WriteNotFound(w, "Not found")
	}))
	r.MethodNotAllowedHandler = middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.WriteMethodNotAllowed(w, "Method not allowed")
	}))

	return r
}

var (
	fnOnce    sync.Once
	fnHandler http.Handler
	fnErr     error
)

// newFunctionApp builds the application for one function instance.
// Usage reports are flushed on the instance's own schedule; counts from an
// instance that is scaled down between runs are lost.
func newFunctionApp(ctx context.Context) (*application.Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg)

	app, err := application.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.APIKey() == "" {
		slog.Warn("no API key configured, model calls will fail", "provider", cfg.Provider)
	}

	app.Reporter.Start()
	slog.Info("usage reporter started", "schedule", cfg.UsageReportSchedule, "next_run", app.Reporter.NextRun())
	return app, nil
}

// HandleRequest handles a single HTTP request (for Cloud Functions).
// The application is built on first use and reused by later invocations.
func HandleRequest(w http.ResponseWriter, r *http.Request) {
	fnOnce.Do(func() {
		app, err := newFunctionApp(context.Background())
		if err != nil {
			fnErr = err
			return
		}
		fnHandler = NewRouter(app)
	})

	if fnErr != nil {
		slog.Error("failed to create handler", "error", fnErr)
		response.WriteInternalError(w, "Internal server error")
		return
	}

	fnHandler.ServeHTTP(w, r)
}
