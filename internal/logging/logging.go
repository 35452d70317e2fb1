package logging

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"

	"github.com/pep299/update-simplifier/internal/config"
)

var handlerOptions = &slog.HandlerOptions{Level: slog.LevelInfo}

var useJSON bool

// Setup installs the process-wide slog handler.
func Setup(cfg *config.Config) {
	handlerOptions = &slog.HandlerOptions{Level: ParseLevel(cfg.LogLevel)}
	useJSON = cfg.IsProduction()
	slog.SetDefault(slog.New(newHandler(os.Stdout)))
}

// ForRequest returns a logger writing through the functions-framework
// execution log writer, so Cloud Functions logs keep their execution id.
func ForRequest(r *http.Request) *slog.Logger {
	return slog.New(newHandler(funcframework.LogWriter(r.Context())))
}

// ParseLevel maps LOG_LEVEL values to slog levels, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newHandler(w io.Writer) slog.Handler {
	if useJSON {
		return slog.NewJSONHandler(w, handlerOptions)
	}
	return slog.NewTextHandler(w, handlerOptions)
}
