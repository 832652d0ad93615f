package job

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dometto/rubycron/internal/domain/model"
	apperrors "github.com/dometto/rubycron/internal/errors"
)

// Abort messages carried by the policy-abort errors.
const (
	ExitOnWarningMessage = "Configured to exit on warning."
	ExitOnErrorMessage   = "Configured to exit on error."
)

// DiagnosticsOptions configures a Diagnostics collector.
type DiagnosticsOptions struct {
	ExitOn model.Policy
	// Echo receives a one-line trace per diagnostic; nil disables echoing.
	Echo io.Writer
	// Now defaults to time.Now.
	Now func() time.Time
}

// Diagnostics collects the messages, warnings and errors of one run.
//
// Warning and Error return a policy-abort error when the exit-on policy covers
// their severity. Tasks are expected to return that error to stop; once it has
// been raised further captures are ignored and return the same error.
type Diagnostics struct {
	exitOn model.Policy
	echo   io.Writer
	now    func() time.Time

	mu      sync.Mutex
	records []model.Diagnostic
	abort   *apperrors.AppError
}

// NewDiagnostics constructs an empty collector.
func NewDiagnostics(opts DiagnosticsOptions) *Diagnostics {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Diagnostics{
		exitOn: opts.ExitOn,
		echo:   opts.Echo,
		now:    now,
	}
}

// Message records an informational note. It never aborts.
func (d *Diagnostics) Message(text string) {
	d.capture(model.DiagnosticMessage, text)
}

// Info is an alias of Message.
func (d *Diagnostics) Info(text string) {
	d.Message(text)
}

// Messagef records a formatted informational note.
func (d *Diagnostics) Messagef(format string, args ...any) {
	d.Message(fmt.Sprintf(format, args...))
}

// Warning records a warning and returns a policy-abort error when the
// exit-on policy is warning or all.
func (d *Diagnostics) Warning(text string) error {
	return d.capture(model.DiagnosticWarning, text)
}

// Warningf records a formatted warning.
func (d *Diagnostics) Warningf(format string, args ...any) error {
	return d.Warning(fmt.Sprintf(format, args...))
}

// Error records an error and returns a policy-abort error when the exit-on
// policy is error or all.
func (d *Diagnostics) Error(text string) error {
	return d.capture(model.DiagnosticError, text)
}

// Errorf records a formatted error.
func (d *Diagnostics) Errorf(format string, args ...any) error {
	return d.Error(fmt.Sprintf(format, args...))
}

// RecordFailure appends an error diagnostic without consulting the exit-on
// policy. The runner uses it for failures that escaped the task.
func (d *Diagnostics) RecordFailure(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.appendLocked(model.DiagnosticError, text)
}

func (d *Diagnostics) capture(kind model.DiagnosticKind, text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.abort != nil {
		return d.abort
	}
	d.appendLocked(kind, text)

	if !AbortsOn(d.exitOn, kind) {
		return nil
	}
	msg := ExitOnErrorMessage
	if kind == model.DiagnosticWarning {
		msg = ExitOnWarningMessage
	}
	d.abort = apperrors.PolicyAbort(msg)
	return d.abort
}

func (d *Diagnostics) appendLocked(kind model.DiagnosticKind, text string) {
	d.records = append(d.records, model.Diagnostic{
		Kind:       kind,
		Text:       text,
		CapturedAt: d.now(),
	})
	if d.echo != nil {
		_, _ = fmt.Fprintf(d.echo, "%s %s\n", kind.Label(), text)
	}
}

// Aborted returns the policy-abort error raised during the run, if any.
func (d *Diagnostics) Aborted() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.abort == nil {
		return nil
	}
	return d.abort
}

// Records returns a copy of every diagnostic in capture order.
func (d *Diagnostics) Records() []model.Diagnostic {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]model.Diagnostic(nil), d.records...)
}

// ByKind returns the diagnostics of one kind in capture order.
func (d *Diagnostics) ByKind(kind model.DiagnosticKind) []model.Diagnostic {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []model.Diagnostic
	for _, rec := range d.records {
		if rec.Kind == kind {
			out = append(out, rec)
		}
	}
	return out
}

// Counts tallies the captured diagnostics.
func (d *Diagnostics) Counts() model.DiagnosticCounts {
	d.mu.Lock()
	defer d.mu.Unlock()
	var c model.DiagnosticCounts
	for _, rec := range d.records {
		switch rec.Kind {
		case model.DiagnosticMessage:
			c.Messages++
		case model.DiagnosticWarning:
			c.Warnings++
		case model.DiagnosticError:
			c.Errors++
		}
	}
	return c
}
