// Package rubycron runs a unit of work as a cron job: it resolves the job's
// configuration, collects the messages, warnings and errors the work
// reports, stops early according to the exit-on policy and mails a summary
// according to the mail-on policy.
//
// A minimal job:
//
//	j, err := rubycron.New(ctx, config.JobConfig{
//		Name:   "nightly backup",
//		Author: "ops",
//		MailTo: config.AddressList{"ops@example.com"},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	j.Run(ctx, func(ctx context.Context, d *rubycron.Diagnostics) error {
//		d.Message("backup started")
//		return nil
//	})
package rubycron

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dometto/rubycron/config"
	"github.com/dometto/rubycron/internal/adapters/configsource"
	"github.com/dometto/rubycron/internal/adapters/output"
	smtpadapter "github.com/dometto/rubycron/internal/adapters/smtp"
	"github.com/dometto/rubycron/internal/adapters/templates"
	"github.com/dometto/rubycron/internal/core"
	"github.com/dometto/rubycron/internal/domain/job"
	"github.com/dometto/rubycron/internal/domain/model"
	"github.com/dometto/rubycron/internal/observability/statsd"
	"github.com/dometto/rubycron/internal/service"
)

// Diagnostics collects the messages, warnings and errors of one run.
type Diagnostics = job.Diagnostics

// Outcome summarises a finished run.
type Outcome = model.RunOutcome

// Terminator is the routine every fatal path of Run converges on.
type Terminator = service.Terminator

// Policy is the severity threshold of the exit-on and mail-on settings.
type Policy = model.Policy

// Policy values.
const (
	PolicyNone    = model.PolicyNone
	PolicyWarning = model.PolicyWarning
	PolicyError   = model.PolicyError
	PolicyAll     = model.PolicyAll
)

// RunStatus is the terminal status of a run.
type RunStatus = model.RunStatus

// RunStatus values.
const (
	RunStatusCompleted = model.RunStatusCompleted
	RunStatusAborted   = model.RunStatusAborted
	RunStatusCrashed   = model.RunStatusCrashed
)

// MetricsSink receives StatsD-style run metrics.
type MetricsSink = statsd.Sink

// Collaborator interfaces a Job is built from.
type (
	ConfigReader    = core.ConfigReader
	EnvReader       = core.EnvReader
	TransportProber = core.TransportProber
	OutputOpener    = core.OutputOpener
	ReportRenderer  = core.ReportRenderer
	MailTransport   = core.MailTransport
	RunNotifier     = core.RunNotifier
)

// Task is the body of a job. Diagnostics.Warning and Diagnostics.Error
// return a policy-abort error when the exit-on policy covers them; the task
// returns it to stop.
type Task = service.Task

// ErrAlreadyExecuted is returned by a second Execute on the same Job.
var ErrAlreadyExecuted = service.ErrAlreadyExecuted

// Option customises the collaborators of a Job.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	output     io.Writer
	reader     core.ConfigReader
	env        core.EnvReader
	prober     core.TransportProber
	opener     core.OutputOpener
	renderer   core.ReportRenderer
	transport  core.MailTransport
	notifier   core.RunNotifier
	metrics    statsd.Sink
	now        func() time.Time
	terminator *service.Terminator
}

// WithLogger sets the operational logger.
func WithLogger(l *slog.Logger) Option { return func(o *options) { o.logger = l } }

// WithOutput replaces stdout as the destination of the run trace when no
// log file is configured.
func WithOutput(w io.Writer) Option { return func(o *options) { o.output = w } }

// WithConfigReader replaces the file and URL configuration reader.
func WithConfigReader(r core.ConfigReader) Option { return func(o *options) { o.reader = r } }

// WithEnv replaces the process environment as the RUBYCRON_* layer. An
// empty map disables the layer.
func WithEnv(environ map[string]string) Option {
	return func(o *options) {
		if environ == nil {
			environ = map[string]string{}
		}
		o.env = configsource.EnvReader{Environ: environ}
	}
}

// WithEnvReader replaces the RUBYCRON_* layer reader.
func WithEnvReader(r core.EnvReader) Option { return func(o *options) { o.env = r } }

// WithProber replaces the local relay reachability check.
func WithProber(p core.TransportProber) Option { return func(o *options) { o.prober = p } }

// WithOutputOpener replaces the log file opener.
func WithOutputOpener(op core.OutputOpener) Option { return func(o *options) { o.opener = op } }

// WithRenderer replaces the report renderer.
func WithRenderer(r core.ReportRenderer) Option { return func(o *options) { o.renderer = r } }

// WithTransport replaces the SMTP mail transport.
func WithTransport(t core.MailTransport) Option { return func(o *options) { o.transport = t } }

// WithNotifier fans dispatched reports out to chat and paging sinks.
func WithNotifier(n core.RunNotifier) Option { return func(o *options) { o.notifier = n } }

// WithMetrics emits run metrics to a StatsD-compatible sink.
func WithMetrics(s MetricsSink) Option { return func(o *options) { o.metrics = s } }

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(o *options) { o.now = now } }

// NewTerminator returns the terminator Run uses by default: it prints the
// failure reason to stderr and exits with status 1.
func NewTerminator() *Terminator { return service.NewTerminator() }

// WithTerminator replaces the routine Run uses on fatal paths.
func WithTerminator(t *Terminator) Option { return func(o *options) { o.terminator = t } }

func (o *options) fill() {
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.output == nil {
		o.output = os.Stdout
	}
	if o.reader == nil {
		o.reader = configsource.New(configsource.Options{Logger: o.logger})
	}
	if o.env == nil {
		o.env = configsource.EnvReader{}
	}
	if o.prober == nil {
		o.prober = smtpadapter.Prober{}
	}
	if o.opener == nil {
		o.opener = output.FileOpener{}
	}
	if o.renderer == nil {
		o.renderer = templates.New(templates.Options{Builtin: TemplateFS, Logger: o.logger})
	}
	if o.transport == nil {
		o.transport = smtpadapter.NewTransport(smtpadapter.Options{Logger: o.logger})
	}
	if o.terminator == nil {
		o.terminator = service.NewTerminator()
	}
}

// Job is one configured, validated unit of work. A Job runs at most once.
type Job struct {
	cfg        config.JobConfig
	runner     *service.Runner
	sink       io.WriteCloser
	terminator *service.Terminator
}

// New resolves cfg against its file, URL and environment sources, applies
// defaults and runs the sanity check. Errors satisfy IsConfigLoad or
// IsValidation.
func New(ctx context.Context, cfg config.JobConfig, opts ...Option) (*Job, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	o.fill()
	return newJob(ctx, cfg, o)
}

func newJob(ctx context.Context, cfg config.JobConfig, o *options) (*Job, error) {
	resolver := service.NewConfigResolver(service.ConfigResolverOptions{
		Reader: o.reader,
		Env:    o.env,
		Logger: o.logger.With("component", "config_resolver"),
	})
	resolved, err := resolver.Resolve(ctx, cfg)
	if err != nil {
		return nil, err
	}

	validator := service.NewValidator(service.ValidatorOptions{
		Prober: o.prober,
		Opener: o.opener,
		Logger: o.logger.With("component", "validator"),
	})
	validated, err := validator.Validate(ctx, resolved)
	if err != nil {
		return nil, err
	}

	sink := validated.LogSink
	if sink == nil && validated.Config.Verbose {
		sink = output.NopCloser(o.output)
	}

	reporter := service.NewReporter(service.ReporterOptions{
		Renderer:  o.renderer,
		Transport: o.transport,
		Notifier:  o.notifier,
		Logger:    o.logger.With("component", "reporter"),
	})

	runnerOpts := service.RunnerOptions{
		Job:      validated.Config,
		Reporter: reporter,
		Metrics:  o.metrics,
		Logger:   o.logger.With("component", "runner"),
		Env:      service.RunnerEnv{Now: o.now},
	}
	if sink != nil {
		runnerOpts.Output = sink
	}

	return &Job{
		cfg:        validated.Config,
		runner:     service.NewRunner(runnerOpts),
		sink:       sink,
		terminator: o.terminator,
	}, nil
}

// Config returns a copy of the resolved configuration.
func (j *Job) Config() config.JobConfig {
	return j.cfg.Clone()
}

// Execute runs task once. A non-nil error means the run ended on a fatal
// path and the process should exit with status 1; it satisfies
// IsPolicyAbort, IsTaskCrash or IsReportDelivery.
func (j *Job) Execute(ctx context.Context, task Task) (Outcome, error) {
	return j.runner.Execute(ctx, task)
}

// Run executes task, releases the job's output and terminates the process
// when the run ended on a fatal path.
func (j *Job) Run(ctx context.Context, task Task) Outcome {
	outcome, err := j.Execute(ctx, task)
	closeErr := j.Close()
	if err != nil {
		j.terminator.Terminate(err)
		return outcome
	}
	if closeErr != nil {
		j.terminator.Terminate(closeErr)
	}
	return outcome
}

// Close releases the log file, if one was opened.
func (j *Job) Close() error {
	if j.sink == nil {
		return nil
	}
	sink := j.sink
	j.sink = nil
	return sink.Close()
}

// Run builds a job from cfg and runs task, terminating the process when the
// configuration cannot be resolved or validated or the run is fatal.
func Run(ctx context.Context, cfg config.JobConfig, task Task, opts ...Option) Outcome {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	o.fill()
	j, err := newJob(ctx, cfg, o)
	if err != nil {
		o.terminator.Terminate(err)
		return Outcome{}
	}
	return j.Run(ctx, task)
}
