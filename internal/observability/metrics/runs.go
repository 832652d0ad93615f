package metrics

import (
	"time"

	"github.com/dometto/rubycron/internal/domain/model"
	obserrors "github.com/dometto/rubycron/internal/observability/errors"
	"github.com/dometto/rubycron/internal/observability/statsd"
)

// Metric names emitted for every run.
const (
	MetricRunCompleted   = "run.completed"
	MetricRunDiagnostics = "run.diagnostics"
	MetricRunDuration    = "run.duration"
)

// RunMetric captures the outcome of one run for metric emission.
type RunMetric struct {
	Job      string
	Status   model.RunStatus
	Counts   model.DiagnosticCounts
	Duration time.Duration
	Reported bool
	Err      error
}

// EmitRunOutcome emits standardised run metrics: one completion counter, a
// diagnostics counter per kind and the run duration.
func EmitRunOutcome(sink statsd.Sink, in RunMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"job":      in.Job,
		"status":   string(in.Status),
		"reported": boolTag(in.Reported),
	}
	if in.Err != nil && in.Status != model.RunStatusCompleted {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count(MetricRunCompleted, 1, tags)

	kinds := []struct {
		kind  model.DiagnosticKind
		count int
	}{
		{model.DiagnosticMessage, in.Counts.Messages},
		{model.DiagnosticWarning, in.Counts.Warnings},
		{model.DiagnosticError, in.Counts.Errors},
	}
	for _, k := range kinds {
		if k.count == 0 {
			continue
		}
		sink.Count(MetricRunDiagnostics, int64(k.count), map[string]string{
			"job":  in.Job,
			"kind": string(k.kind),
		})
	}

	if in.Duration > 0 {
		sink.Timing(MetricRunDuration, in.Duration, CloneTags(tags))
	}
}

func boolTag(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
