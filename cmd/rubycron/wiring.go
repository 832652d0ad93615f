package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/dometto/rubycron"
	"github.com/dometto/rubycron/internal/bootstrap"
)

// jobOptions wires the production adapters from the environment. The
// returned closer releases the metrics connection.
func jobOptions(ctx context.Context, flags *jobFlags, stderr io.Writer) ([]rubycron.Option, io.Closer, error) {
	envReader, err := bootstrap.LoadEnvOverrides()
	if err != nil {
		return nil, nil, err
	}
	obs, err := bootstrap.LoadObservability()
	if err != nil {
		return nil, nil, err
	}
	logger := bootstrap.InitLogger(stderr, bootstrap.LogLevel(flags.debug, flags.verbose))

	adapters := bootstrap.NewAdapters(ctx, bootstrap.AdapterDeps{
		Observability: obs,
		Env:           envReader,
		Templates:     rubycron.TemplateFS,
		Logger:        logger,
	})

	opts := []rubycron.Option{
		rubycron.WithLogger(logger),
		rubycron.WithConfigReader(adapters.Reader),
		rubycron.WithEnvReader(adapters.Env),
		rubycron.WithProber(adapters.Prober),
		rubycron.WithOutputOpener(adapters.Opener),
		rubycron.WithRenderer(adapters.Renderer),
		rubycron.WithTransport(adapters.Transport),
	}
	if adapters.Notifier != nil {
		opts = append(opts, rubycron.WithNotifier(adapters.Notifier))
	}
	if adapters.Metrics != nil {
		opts = append(opts, rubycron.WithMetrics(adapters.Metrics))
	}
	logger.Debug("adapters wired",
		"metrics", adapters.Metrics != nil,
		"notifications", adapters.Notifier != nil,
		slog.Group("notify",
			"slack", obs.Notifications.Slack.Enabled,
			"pagerduty", obs.Notifications.PagerDuty.Enabled,
		),
	)
	return opts, adapters, nil
}
