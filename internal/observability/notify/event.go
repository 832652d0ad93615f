package notify

import (
	"context"
	"time"
)

// Severity constants recognised by downstream sinks.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// RunSummary captures the canonical data emitted alongside a run report.
type RunSummary struct {
	RunID      string
	JobName    string
	Author     string
	Status     string
	Subject    string
	Messages   int
	Warnings   int
	Errors     int
	FirstError string
	StartedAt  time.Time
	EndedAt    time.Time
	Metadata   map[string]string
}

// Failed reports whether the run produced errors or did not complete.
func (s RunSummary) Failed() bool {
	return s.Errors > 0 || (s.Status != "" && s.Status != "completed")
}

// Severity derives a severity from the diagnostic counts.
func (s RunSummary) Severity() string {
	switch {
	case s.Failed():
		return SeverityCritical
	case s.Warnings > 0:
		return SeverityWarning
	default:
		return SeverityInfo
	}
}

// Sink describes a destination capable of consuming run summaries.
type Sink interface {
	SendRunSummary(ctx context.Context, summary RunSummary) error
}

// SinkFunc adapts a function to the Sink interface (useful for tests).
type SinkFunc func(ctx context.Context, summary RunSummary) error

// SendRunSummary implements the Sink interface.
func (f SinkFunc) SendRunSummary(ctx context.Context, summary RunSummary) error {
	if f == nil {
		return nil
	}
	return f(ctx, summary)
}
