package notify

import (
	"context"
	"errors"
	"testing"
)

func TestRunSummarySeverity(t *testing.T) {
	tests := []struct {
		name    string
		summary RunSummary
		want    string
		failed  bool
	}{
		{name: "clean", summary: RunSummary{Status: "completed"}, want: SeverityInfo},
		{name: "warnings", summary: RunSummary{Status: "completed", Warnings: 1}, want: SeverityWarning},
		{name: "errors", summary: RunSummary{Status: "completed", Errors: 1}, want: SeverityCritical, failed: true},
		{name: "crashed", summary: RunSummary{Status: "crashed"}, want: SeverityCritical, failed: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.summary.Severity(); got != tt.want {
				t.Fatalf("Severity() = %q, want %q", got, tt.want)
			}
			if got := tt.summary.Failed(); got != tt.failed {
				t.Fatalf("Failed() = %v, want %v", got, tt.failed)
			}
		})
	}
}

func TestSinkFunc(t *testing.T) {
	var nilFunc SinkFunc
	if err := nilFunc.SendRunSummary(context.Background(), RunSummary{}); err != nil {
		t.Fatalf("nil SinkFunc should be a no-op, got %v", err)
	}

	want := errors.New("boom")
	fn := SinkFunc(func(context.Context, RunSummary) error { return want })
	if err := fn.SendRunSummary(context.Background(), RunSummary{}); !errors.Is(err, want) {
		t.Fatalf("expected wrapped function error, got %v", err)
	}
}
