package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dometto/rubycron/config"
	"github.com/dometto/rubycron/internal/domain/job"
	"github.com/dometto/rubycron/internal/domain/model"
	apperrors "github.com/dometto/rubycron/internal/errors"
	obserrors "github.com/dometto/rubycron/internal/observability/errors"
	"github.com/dometto/rubycron/internal/observability/metrics"
	"github.com/dometto/rubycron/internal/observability/statsd"
	"github.com/dometto/rubycron/internal/util"
)

// ErrAlreadyExecuted is returned by a second Execute on the same runner.
var ErrAlreadyExecuted = errors.New("job has already been executed")

// DebugBanner is printed before a run in debug mode.
const DebugBanner = "[INFO ] Running in debug mode. Will not send mail."

// Task is the unit of work wrapped by a run.
type Task func(ctx context.Context, d *job.Diagnostics) error

// reportSender is the subset of Reporter used by the runner.
type reportSender interface {
	Send(ctx context.Context, cfg config.JobConfig, data model.ReportData) error
	Notify(ctx context.Context, cfg config.JobConfig, data model.ReportData, reason error)
}

// RunnerEnv holds the injectable clock and identifiers.
type RunnerEnv struct {
	Now      func() time.Time
	NewRunID func() string
}

// RunnerOptions groups dependencies for Runner.
type RunnerOptions struct {
	Job      config.JobConfig // Required: validated configuration
	Reporter reportSender     // Required: report dispatch
	Output   io.Writer        // Optional: run trace destination, discarded when nil
	Metrics  statsd.Sink      // Optional: metrics sink (StatsD-compatible)
	Logger   *slog.Logger     // Optional: structured logger
	Env      RunnerEnv        // Optional: clock and run identifiers
}

// Runner executes one task under the job's exit-on and mail-on policies.
// It is single use.
type Runner struct {
	cfg      config.JobConfig
	reporter reportSender
	out      io.Writer
	metrics  statsd.Sink
	logger   *slog.Logger
	now      func() time.Time
	newRunID func() string

	executed atomic.Bool
}

// NewRunner constructs a Runner.
func NewRunner(opts RunnerOptions) *Runner {
	if opts.Reporter == nil {
		panic("Reporter is required")
	}
	out := opts.Output
	if out == nil {
		out = io.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default().With("component", "runner")
	}
	now := opts.Env.Now
	if now == nil {
		now = time.Now
	}
	newRunID := opts.Env.NewRunID
	if newRunID == nil {
		newRunID = uuid.NewString
	}
	return &Runner{
		cfg:      opts.Job,
		reporter: opts.Reporter,
		out:      out,
		metrics:  opts.Metrics,
		logger:   logger,
		now:      now,
		newRunID: newRunID,
	}
}

// Execute runs task and returns the outcome. A non-nil error means the run
// ended on a fatal path: a policy abort, a crash under an exit-on policy that
// covers errors, or a report that could not be delivered.
func (r *Runner) Execute(ctx context.Context, task Task) (model.RunOutcome, error) {
	if !r.executed.CompareAndSwap(false, true) {
		return model.RunOutcome{}, ErrAlreadyExecuted
	}
	if task == nil {
		return model.RunOutcome{}, apperrors.Internal("task is required")
	}

	cfg := r.cfg
	echo := cfg.Echo()

	if cfg.Debug {
		r.println(DebugBanner)
	}
	outcome := model.RunOutcome{RunID: r.newRunID(), StartedAt: r.now()}
	logger := r.logger.With("run_id", outcome.RunID, "job", cfg.Name)
	if echo {
		r.printf("\nStarting run of %s at %s.\n----\n", cfg.Name, util.FormatTimestamp(outcome.StartedAt))
	}

	var trace io.Writer
	if echo {
		trace = r.out
	}
	diag := job.NewDiagnostics(job.DiagnosticsOptions{ExitOn: cfg.ExitOn, Echo: trace, Now: r.now})

	taskErr := invoke(ctx, task, diag)
	status, fatal := r.settle(diag, taskErr)
	if status == model.RunStatusCrashed {
		logger.WarnContext(ctx, "task crashed", "error", taskErr, "error_class", obserrors.Classify(taskErr))
	}

	outcome.EndedAt = r.now()
	outcome.Counts = diag.Counts()
	outcome.Status = status

	if echo {
		r.printSummary(outcome)
	}

	if fatal == nil && job.ShouldReport(cfg.MailOn, outcome.Counts) {
		if err := r.reporter.Send(ctx, cfg, reportData(cfg, outcome, diag)); err != nil {
			fatal = err
		} else {
			outcome.ReportSent = true
		}
	}
	// Fatal runs mail nothing, but the notification sinks still hear about them.
	if fatal != nil && !cfg.Debug {
		r.reporter.Notify(ctx, cfg, reportData(cfg, outcome, diag), fatal)
	}

	metricErr := fatal
	if metricErr == nil {
		metricErr = taskErr
	}
	metrics.EmitRunOutcome(r.metrics, metrics.RunMetric{
		Job:      cfg.Name,
		Status:   status,
		Counts:   outcome.Counts,
		Duration: outcome.Duration(),
		Reported: outcome.ReportSent,
		Err:      metricErr,
	})

	logger.InfoContext(ctx, "run finished",
		"status", status,
		"messages", outcome.Counts.Messages,
		"warnings", outcome.Counts.Warnings,
		"errors", outcome.Counts.Errors,
		"report_sent", outcome.ReportSent,
		"duration", outcome.Duration(),
	)
	return outcome, fatal
}

// settle maps the task result onto a terminal status. A policy abort wins
// over anything the task returned afterwards.
func (r *Runner) settle(diag *job.Diagnostics, taskErr error) (model.RunStatus, error) {
	if abort := diag.Aborted(); abort != nil {
		return model.RunStatusAborted, abort
	}
	if taskErr == nil {
		return model.RunStatusCompleted, nil
	}
	if apperrors.IsPolicyAbort(taskErr) {
		return model.RunStatusAborted, taskErr
	}

	trace := crashTrace(taskErr)
	diag.RecordFailure(trace)
	if job.AbortsOn(r.cfg.ExitOn, model.DiagnosticError) {
		return model.RunStatusCrashed, apperrors.TaskCrash(taskErr, trace)
	}
	return model.RunStatusCrashed, nil
}

func (r *Runner) printSummary(o model.RunOutcome) {
	r.printf("Run ended at %s.\n----\n", util.FormatTimestamp(o.EndedAt))
	r.printf("Number of messages: %d\n", o.Counts.Messages)
	r.printf("Number of warnings: %d\n", o.Counts.Warnings)
	r.printf("Number of errors  : %d\n", o.Counts.Errors)
}

func (r *Runner) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

func (r *Runner) println(line string) {
	_, _ = fmt.Fprintln(r.out, line)
}

func reportData(cfg config.JobConfig, o model.RunOutcome, diag *job.Diagnostics) model.ReportData {
	return model.ReportData{
		RunID:     o.RunID,
		Name:      cfg.Name,
		Author:    cfg.Author,
		StartedAt: o.StartedAt,
		EndedAt:   o.EndedAt,
		Duration:  util.FormatRunDuration(o.Duration()),
		Status:    o.Status,
		Messages:  diag.ByKind(model.DiagnosticMessage),
		Warnings:  diag.ByKind(model.DiagnosticWarning),
		Errors:    diag.ByKind(model.DiagnosticError),
		Counts:    o.Counts,
	}
}

// panicError carries a recovered panic and the stack it was raised on.
type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

// Unwrap exposes a panicked error value to errors.Is and errors.As.
func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}

func invoke(ctx context.Context, task Task, diag *job.Diagnostics) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &panicError{value: v, stack: debug.Stack()}
		}
	}()
	return task(ctx, diag)
}

// crashTrace renders the failure message followed by a tab-indented trace:
// the goroutine stack for panics, otherwise the chain of wrapped causes.
func crashTrace(err error) string {
	var b strings.Builder
	b.WriteString(err.Error())

	var pe *panicError
	if errors.As(err, &pe) {
		for _, line := range strings.Split(strings.TrimSpace(string(pe.stack)), "\n") {
			b.WriteString("\n\t")
			b.WriteString(strings.TrimSpace(line))
		}
		return b.String()
	}

	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		fmt.Fprintf(&b, "\n\tcaused by %T: %v", cause, cause)
	}
	return b.String()
}
