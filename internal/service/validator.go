package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/dometto/rubycron/config"
	"github.com/dometto/rubycron/internal/core"
	apperrors "github.com/dometto/rubycron/internal/errors"
)

// Local relay probed when a job carries no transport settings.
const (
	DefaultSMTPAddress = "localhost"
	DefaultSMTPPort    = 25
)

// Validation failure messages.
const (
	msgNoName          = "This job has no name."
	msgNoAuthor        = "This job has no author."
	msgNoRecipient     = "No To: header was set."
	msgSMTPNotMapping  = "SMTP settings have to be passed in as a hash."
	msgSMTPNoAddress   = "SMTP settings should include at least an address (:address)."
	msgSMTPNoPort      = "SMTP settings should include at least a port number (:port)."
	msgNoLocalSMTP     = "Cannot connect to local smtp server."
	msgLogFileNoOpener = "A log file was configured but no output opener is available."
)

// ValidatorOptions groups dependencies for Validator.
type ValidatorOptions struct {
	Prober core.TransportProber // Required: local relay reachability check
	Opener core.OutputOpener    // Optional: required only when a log file is configured
	Logger *slog.Logger         // Optional: structured logger
}

// Validator performs the sanity check on a resolved configuration.
type Validator struct {
	prober core.TransportProber
	opener core.OutputOpener
	logger *slog.Logger
}

// ValidatedJob is a configuration that passed the sanity check, with the log
// sink acquired for the run. LogSink is nil when no log file is configured;
// the caller owns it and must close it once the run is over.
type ValidatedJob struct {
	Config  config.JobConfig
	LogSink io.WriteCloser
}

// NewValidator constructs a Validator.
func NewValidator(opts ValidatorOptions) *Validator {
	if opts.Prober == nil {
		panic("TransportProber is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default().With("component", "validator")
	}
	return &Validator{
		prober: opts.Prober,
		opener: opts.Opener,
		logger: logger,
	}
}

// Validate checks required fields and transport settings, applies defaults
// and opens the log sink. Every failure is a validation error.
func (v *Validator) Validate(ctx context.Context, cfg config.JobConfig) (ValidatedJob, error) {
	if err := v.checkRequired(cfg); err != nil {
		return ValidatedJob{}, err
	}
	if err := v.checkTransport(ctx, cfg.SMTP); err != nil {
		return ValidatedJob{}, err
	}

	cfg.ApplyDefaults()
	v.logger.DebugContext(ctx, "job validated",
		"name", cfg.Name,
		"mail_on", cfg.MailOn,
		"exit_on", cfg.ExitOn,
		"log_file", cfg.LogFile,
	)

	job := ValidatedJob{Config: cfg}
	if cfg.LogFile == "" {
		return job, nil
	}
	if v.opener == nil {
		return ValidatedJob{}, apperrors.ValidationField("logfile", msgLogFileNoOpener)
	}
	sink, err := v.opener.Open(cfg.LogFile)
	if err != nil {
		appErr := apperrors.Wrapf(err, apperrors.ErrCodeValidation, "could not open log file %q", cfg.LogFile)
		appErr.Field = "logfile"
		return ValidatedJob{}, appErr
	}
	job.LogSink = sink
	return job, nil
}

func (v *Validator) checkRequired(cfg config.JobConfig) error {
	switch {
	case cfg.Name == "":
		return apperrors.ValidationField("name", msgNoName)
	case cfg.Author == "":
		return apperrors.ValidationField("author", msgNoAuthor)
	case len(cfg.MailTo) == 0:
		return apperrors.ValidationField("mailto", msgNoRecipient)
	}
	return nil
}

func (v *Validator) checkTransport(ctx context.Context, smtp *config.TransportSettings) error {
	if smtp == nil {
		if !v.prober.Probe(ctx, DefaultSMTPAddress, DefaultSMTPPort) {
			return apperrors.ValidationField("smtpsettings", msgNoLocalSMTP)
		}
		return nil
	}
	switch {
	case !smtp.Structured():
		return apperrors.ValidationField("smtpsettings", msgSMTPNotMapping)
	case smtp.Address == "":
		return apperrors.ValidationField("smtpsettings.address", msgSMTPNoAddress)
	case smtp.Port == 0:
		return apperrors.ValidationField("smtpsettings.port", msgSMTPNoPort)
	}
	return nil
}
