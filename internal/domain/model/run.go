package model

import "time"

// RunStatus is the terminal status of one execution.
type RunStatus string

const (
	// RunStatusCompleted indicates the task returned normally.
	RunStatusCompleted RunStatus = "completed"
	// RunStatusAborted indicates the exit-on policy stopped the task.
	RunStatusAborted RunStatus = "aborted-by-policy"
	// RunStatusCrashed indicates the task failed outside of the diagnostics API.
	RunStatusCrashed RunStatus = "crashed"
)

// Valid returns true if the RunStatus is valid.
func (s RunStatus) Valid() bool {
	return s == RunStatusCompleted || s == RunStatusAborted || s == RunStatusCrashed
}

// RunOutcome is produced once per execution.
type RunOutcome struct {
	RunID      string           `json:"run_id"`
	StartedAt  time.Time        `json:"started_at"`
	EndedAt    time.Time        `json:"ended_at"`
	Counts     DiagnosticCounts `json:"counts"`
	Status     RunStatus        `json:"status"`
	ReportSent bool             `json:"report_sent"`
}

// Duration returns the wall-clock time between start and end.
func (o RunOutcome) Duration() time.Duration {
	if o.StartedAt.IsZero() || o.EndedAt.Before(o.StartedAt) {
		return 0
	}
	return o.EndedAt.Sub(o.StartedAt)
}

// ReportData is the context handed to report templates.
type ReportData struct {
	RunID     string
	Name      string
	Author    string
	StartedAt time.Time
	EndedAt   time.Time
	Duration  string
	Status    RunStatus
	Messages  []Diagnostic
	Warnings  []Diagnostic
	Errors    []Diagnostic
	Counts    DiagnosticCounts
}

// Mail is a rendered report ready for a transport.
type Mail struct {
	From    string
	To      []string
	Subject string
	Body    string
}
