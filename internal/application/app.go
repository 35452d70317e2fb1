package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pep299/update-simplifier/internal/config"
	"github.com/pep299/update-simplifier/internal/llm"
	"github.com/pep299/update-simplifier/internal/simplifier"
	"github.com/pep299/update-simplifier/internal/slackbot"
	"github.com/pep299/update-simplifier/internal/transport/handler"
	"github.com/pep299/update-simplifier/internal/usage"
)

// Application represents the application with all business logic components
type Application struct {
	Config   *config.Config
	Usage    *usage.Tracker
	Reporter *usage.Reporter

	SimplifyHandler   *handler.Simplify
	BriefHandler      *handler.Brief
	ComplexityHandler *handler.Complexity
	HealthHandler     *handler.Health
	ConfigHandler     *handler.Config

	closers []func() error
}

// New creates a new application instance with all dependencies.
// The model client is built once and shared by every request.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	generator, err := llm.New(llm.Config{
		Provider: cfg.Provider,
		APIKey:   cfg.APIKey(),
		BaseURL:  cfg.BaseURL(),
		Model:    cfg.Model(),
		Timeout:  cfg.LLMTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("creating model client: %w", err)
	}

	sinks := []usage.Sink{usage.LogSink{}}
	var closers []func() error
	if cfg.UsageReportBucket != "" {
		gcsSink, err := usage.NewGCSSink(ctx, cfg.UsageReportBucket)
		if err != nil {
			return nil, fmt.Errorf("creating usage sink: %w", err)
		}
		sinks = append(sinks, gcsSink)
		closers = append(closers, gcsSink.Close)
	}
	if cfg.SlackEnabled() {
		sinks = append(sinks, slackbot.NewClient(cfg.SlackBotToken, cfg.SlackChannel, ""))
	}

	return build(cfg, generator, sinks, closers)
}

// NewWithGenerator wires the application around an existing generator.
// Usage reports only go to the log.
func NewWithGenerator(cfg *config.Config, generator llm.Generator) (*Application, error) {
	return build(cfg, generator, []usage.Sink{usage.LogSink{}}, nil)
}

func build(cfg *config.Config, generator llm.Generator, sinks []usage.Sink, closers []func() error) (*Application, error) {
	tracker := usage.NewTracker()
	reporter, err := usage.NewReporter(tracker, cfg.UsageReportSchedule, sinks...)
	if err != nil {
		return nil, err
	}

	svc := simplifier.New(generator, tracker)

	return &Application{
		Config:            cfg,
		Usage:             tracker,
		Reporter:          reporter,
		SimplifyHandler:   handler.NewSimplify(svc, cfg.MaxBodyBytes),
		BriefHandler:      handler.NewBrief(svc, cfg.MaxBodyBytes),
		ComplexityHandler: handler.NewComplexity(cfg.MaxBodyBytes),
		HealthHandler:     handler.NewHealth(cfg.Provider, generator.Model()),
		ConfigHandler:     handler.NewConfig(cfg.Public()),
		closers:           closers,
	}, nil
}

// Close flushes pending usage and releases resources
func (a *Application) Close(ctx context.Context) error {
	var errs []error
	if err := a.Reporter.Stop(ctx); err != nil {
		errs = append(errs, fmt.Errorf("flushing usage: %w", err))
	}
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		slog.Error("closing application", "error", err)
		return err
	}
	return nil
}
