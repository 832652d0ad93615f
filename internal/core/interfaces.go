package core

import (
	"context"
	"io"

	"github.com/dometto/rubycron/config"
	"github.com/dometto/rubycron/internal/domain/model"
	"github.com/dometto/rubycron/internal/observability/notify"
)

// This file contains the collaborator interfaces (ports in hexagonal architecture)
// the job harness depends on. Services depend on these interfaces; adapters in
// internal/adapters provide the concrete implementations.

// SourceKind identifies where a configuration document comes from.
type SourceKind string

const (
	// SourceFile is a local YAML or dotenv file.
	SourceFile SourceKind = "file"
	// SourceURL is a remote YAML document.
	SourceURL SourceKind = "url"
)

// ReadRequest groups the parameters of ConfigReader.Read.
type ReadRequest struct {
	Kind    SourceKind
	Locator string
	// Select is an optional JMESPath expression applied to the document.
	Select string
}

// ConfigReader loads one configuration source into a partial JobConfig.
type ConfigReader interface {
	Read(ctx context.Context, req ReadRequest) (config.JobConfig, error)
}

// EnvReader returns the configuration layer held in the environment.
type EnvReader interface {
	ReadEnv(ctx context.Context) (config.JobConfig, error)
}

// TransportProber checks whether a mail relay accepts connections.
type TransportProber interface {
	Probe(ctx context.Context, address string, port int) bool
}

// OutputOpener acquires the scoped output sink for a log destination.
type OutputOpener interface {
	Open(path string) (io.WriteCloser, error)
}

// ReportRenderer renders a report body from a template reference.
type ReportRenderer interface {
	Render(ctx context.Context, templateRef string, data model.ReportData) (string, error)
}

// MailTransport delivers a rendered report. A nil settings value means the
// local relay.
type MailTransport interface {
	Send(ctx context.Context, mail model.Mail, settings *config.TransportSettings) error
}

// RunNotifier fans a run summary out to chat and paging sinks.
type RunNotifier interface {
	NotifyRun(ctx context.Context, summary notify.RunSummary) error
}
