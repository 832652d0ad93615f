package runnotifier

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/dometto/rubycron/internal/observability/notify"
)

// SinkRegistration pairs a sink implementation with a human-readable name for logging.
type SinkRegistration struct {
	Name string
	Sink notify.Sink
}

// Options configures the run notifier service.
type Options struct {
	Logger *slog.Logger
	Sinks  []SinkRegistration
}

// Service fans a run summary out to every registered sink.
type Service struct {
	logger *slog.Logger
	sinks  []SinkRegistration
}

// NewService constructs a run notifier.
func NewService(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default().With("component", "run_notifier")
	}

	var sinks []SinkRegistration
	for _, entry := range opts.Sinks {
		if entry.Sink == nil {
			continue
		}
		name := entry.Name
		if name == "" {
			name = "sink"
		}
		sinks = append(sinks, SinkRegistration{
			Name: name,
			Sink: entry.Sink,
		})
	}

	return &Service{
		logger: logger,
		sinks:  sinks,
	}
}

// NotifyRun delivers summary to all sinks concurrently. Every sink is tried;
// failures are logged and the first one is returned.
func (s *Service) NotifyRun(ctx context.Context, summary notify.RunSummary) error {
	if len(s.sinks) == 0 {
		return nil
	}

	var g errgroup.Group
	for _, entry := range s.sinks {
		g.Go(func() error {
			err := entry.Sink.SendRunSummary(ctx, summary)
			if err != nil {
				s.logger.WarnContext(ctx, "run notification delivery error",
					"sink", entry.Name,
					"run_id", summary.RunID,
					"job", summary.JobName,
					"error", err,
				)
			}
			return err
		})
	}
	return g.Wait()
}

// Enabled reports whether the notifier has any active sinks.
func (s *Service) Enabled() bool {
	return s != nil && len(s.sinks) > 0
}
