package bootstrap

import (
	"context"
	"io/fs"
	"log/slog"

	"github.com/dometto/rubycron/config"
	"github.com/dometto/rubycron/internal/adapters/configsource"
	"github.com/dometto/rubycron/internal/adapters/output"
	smtpadapter "github.com/dometto/rubycron/internal/adapters/smtp"
	"github.com/dometto/rubycron/internal/adapters/templates"
	"github.com/dometto/rubycron/internal/core"
	"github.com/dometto/rubycron/internal/observability/notify/pagerduty"
	"github.com/dometto/rubycron/internal/observability/notify/slack"
	"github.com/dometto/rubycron/internal/observability/statsd"
	"github.com/dometto/rubycron/internal/service/runnotifier"
)

// AdapterContainer holds the concrete collaborators a job is built from.
type AdapterContainer struct {
	Reader    core.ConfigReader
	Env       core.EnvReader
	Prober    core.TransportProber
	Opener    core.OutputOpener
	Renderer  core.ReportRenderer
	Transport core.MailTransport
	// Notifier is nil when no notification sink is enabled.
	Notifier core.RunNotifier
	// Metrics is nil when metrics are disabled.
	Metrics *statsd.Client
}

// Close releases the metrics connection.
func (c AdapterContainer) Close() error {
	if c.Metrics == nil {
		return nil
	}
	return c.Metrics.Close()
}

// AdapterDeps groups dependencies for adapter initialization.
type AdapterDeps struct {
	Observability config.ObservabilityConfig
	// Env is the environment layer; the process environment is used when nil.
	Env core.EnvReader
	// Templates holds the builtin report templates.
	Templates fs.FS
	Logger    *slog.Logger
}

// NewAdapters wires the production adapters.
func NewAdapters(ctx context.Context, deps AdapterDeps) AdapterContainer {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	envReader := deps.Env
	if envReader == nil {
		envReader = configsource.EnvReader{}
	}

	return AdapterContainer{
		Reader:    configsource.New(configsource.Options{Logger: logger}),
		Env:       envReader,
		Prober:    smtpadapter.Prober{},
		Opener:    output.FileOpener{},
		Renderer:  templates.New(templates.Options{Builtin: deps.Templates, Logger: logger}),
		Transport: smtpadapter.NewTransport(smtpadapter.Options{Logger: logger}),
		Notifier:  buildNotifier(logger, deps.Observability.Notifications),
		Metrics:   buildMetrics(ctx, logger, deps.Observability.Metrics),
	}
}

func buildMetrics(ctx context.Context, logger *slog.Logger, cfg config.ObservabilityMetricsConfig) *statsd.Client {
	if !cfg.IsEnabled() {
		return nil
	}
	client, err := statsd.NewClient(ctx, statsd.ConfigFrom(cfg, logger))
	if err != nil {
		logger.Error("failed to initialise statsd client", "error", err)
		return nil
	}
	return client
}

// buildNotifier returns nil when no sink is enabled so callers can skip the
// fan-out entirely.
func buildNotifier(logger *slog.Logger, cfg config.ObservabilityNotificationsConfig) core.RunNotifier {
	var sinks []runnotifier.SinkRegistration

	if cfg.Slack.Enabled {
		client, err := slack.NewClient(slack.Config{
			WebhookURL: cfg.Slack.WebhookURL,
			Channel:    cfg.Slack.Channel,
			Username:   cfg.Slack.Username,
			Timeout:    cfg.Timeout,
			RetryLimit: cfg.RetryLimit,
		})
		if err != nil {
			logger.Error("failed to initialise slack notifier", "error", err)
		} else {
			sinks = append(sinks, runnotifier.SinkRegistration{Name: "slack", Sink: client})
		}
	}

	if cfg.PagerDuty.Enabled {
		client, err := pagerduty.NewClient(pagerduty.Config{
			RoutingKey: cfg.PagerDuty.RoutingKey,
			Source:     cfg.PagerDuty.Source,
			Component:  cfg.PagerDuty.Component,
			Timeout:    cfg.Timeout,
			RetryLimit: cfg.RetryLimit,
		})
		if err != nil {
			logger.Error("failed to initialise pagerduty notifier", "error", err)
		} else {
			sinks = append(sinks, runnotifier.SinkRegistration{Name: "pagerduty", Sink: client})
		}
	}

	if len(sinks) == 0 {
		return nil
	}
	return runnotifier.NewService(runnotifier.Options{Logger: logger, Sinks: sinks})
}
