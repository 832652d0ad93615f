package model

import "time"

// DiagnosticKind is the severity of a captured observation.
type DiagnosticKind string

const (
	// DiagnosticMessage is an informational note.
	DiagnosticMessage DiagnosticKind = "message"
	// DiagnosticWarning is a warning.
	DiagnosticWarning DiagnosticKind = "warning"
	// DiagnosticError is an error, including crashes of the task itself.
	DiagnosticError DiagnosticKind = "error"
)

// Label returns the fixed-width prefix used for console and log echoes.
func (k DiagnosticKind) Label() string {
	switch k {
	case DiagnosticWarning:
		return "[WARN ]"
	case DiagnosticError:
		return "[ERROR]"
	default:
		return "[INFO ]"
	}
}

// Diagnostic is one observation captured during a run.
type Diagnostic struct {
	Kind       DiagnosticKind `json:"kind"`
	Text       string         `json:"text"`
	CapturedAt time.Time      `json:"captured_at"`
}

// DiagnosticCounts summarises a run's diagnostics by kind.
type DiagnosticCounts struct {
	Messages int `json:"messages"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

// Empty reports whether neither warnings nor errors were captured.
func (c DiagnosticCounts) Empty() bool {
	return c.Warnings == 0 && c.Errors == 0
}
