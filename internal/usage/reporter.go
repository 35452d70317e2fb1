package usage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Sink receives usage reports.
type Sink interface {
	Write(ctx context.Context, report Report) error
}

// LogSink writes reports to slog.
type LogSink struct{}

func (LogSink) Write(ctx context.Context, report Report) error {
	for _, op := range report.Operations {
		slog.InfoContext(ctx, "usage report",
			"model", report.Model,
			"since", report.Since.Format(time.RFC3339),
			"until", report.Until.Format(time.RFC3339),
			"operation", op.Operation,
			"calls", op.Calls,
			"failures", op.Failures,
			"prompt_tokens", op.PromptTokens,
			"completion_tokens", op.CompletionTokens)
	}
	return nil
}

// Reporter flushes the tracker into its sinks on a cron schedule.
type Reporter struct {
	tracker *Tracker
	sinks   []Sink
	cron    *cron.Cron
}

// NewReporter validates schedule and registers the flush job.
// Schedules use the standard 5-field cron syntax or descriptors such as @hourly.
func NewReporter(tracker *Tracker, schedule string, sinks ...Sink) (*Reporter, error) {
	r := &Reporter{
		tracker: tracker,
		sinks:   sinks,
		cron:    cron.New(),
	}

	if _, err := r.cron.AddFunc(schedule, func() {
		if err := r.Flush(context.Background()); err != nil {
			slog.Error("usage report failed", "error", err)
		}
	}); err != nil {
		return nil, fmt.Errorf("scheduling usage report %q: %w", schedule, err)
	}

	return r, nil
}

// Start runs the schedule in the background.
func (r *Reporter) Start() {
	r.cron.Start()
}

// NextRun returns when the next report is due, or the zero time before Start.
func (r *Reporter) NextRun() time.Time {
	entries := r.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// Stop stops the schedule, waits for a running flush, then flushes what is left.
func (r *Reporter) Stop(ctx context.Context) error {
	select {
	case <-r.cron.Stop().Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	return r.Flush(ctx)
}

// Flush sends the current period to every sink. Empty periods are skipped.
func (r *Reporter) Flush(ctx context.Context) error {
	report := r.tracker.Flush()
	if report.TotalCalls() == 0 {
		return nil
	}

	var errs []error
	for _, sink := range r.sinks {
		if err := sink.Write(ctx, report); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
