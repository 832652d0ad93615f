package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dometto/rubycron/config"
	"github.com/dometto/rubycron/internal/core"
	"github.com/dometto/rubycron/internal/domain/model"
	apperrors "github.com/dometto/rubycron/internal/errors"
	"github.com/dometto/rubycron/internal/observability/notify"
)

// ReporterOptions groups dependencies for Reporter.
type ReporterOptions struct {
	Renderer  core.ReportRenderer // Required: report body renderer
	Transport core.MailTransport  // Required: mail delivery
	Notifier  core.RunNotifier    // Optional: chat and paging fan-out
	Logger    *slog.Logger        // Optional: structured logger
}

// Reporter renders a run report and mails it.
type Reporter struct {
	renderer  core.ReportRenderer
	transport core.MailTransport
	notifier  core.RunNotifier
	logger    *slog.Logger
}

// NewReporter constructs a Reporter.
func NewReporter(opts ReporterOptions) *Reporter {
	if opts.Renderer == nil {
		panic("ReportRenderer is required")
	}
	if opts.Transport == nil {
		panic("MailTransport is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default().With("component", "reporter")
	}
	return &Reporter{
		renderer:  opts.Renderer,
		transport: opts.Transport,
		notifier:  opts.Notifier,
		logger:    logger,
	}
}

// DefaultSubject is the subject used when the job does not configure one.
func DefaultSubject(name string, counts model.DiagnosticCounts) string {
	return fmt.Sprintf("Cron report for %s: %d warnings & %d errors", name, counts.Warnings, counts.Errors)
}

// Send renders the report for data and delivers it. Rendering and delivery
// failures are report-delivery errors. Notification sinks are tried after a
// successful delivery and never fail the call.
func (r *Reporter) Send(ctx context.Context, cfg config.JobConfig, data model.ReportData) error {
	body, err := r.renderer.Render(ctx, cfg.Template, data)
	if err != nil {
		return apperrors.ReportDelivery(err, "could not render the report")
	}

	subject := reportSubject(cfg, data)
	mail := model.Mail{
		From:    cfg.MailFrom,
		To:      append([]string(nil), cfg.MailTo...),
		Subject: subject,
		Body:    body,
	}
	if err := r.transport.Send(ctx, mail, cfg.SMTP); err != nil {
		return apperrors.ReportDelivery(err, "could not deliver the report")
	}
	r.logger.InfoContext(ctx, "report sent",
		"run_id", data.RunID,
		"to", cfg.MailTo.String(),
		"subject", subject,
	)

	r.notify(ctx, cfg, data, subject, nil)
	return nil
}

// Notify fans a run summary out to the notification sinks without mailing a
// report. It covers runs that ended on a fatal path before a report went out;
// reason is recorded in the summary metadata.
func (r *Reporter) Notify(ctx context.Context, cfg config.JobConfig, data model.ReportData, reason error) {
	r.notify(ctx, cfg, data, reportSubject(cfg, data), reason)
}

func reportSubject(cfg config.JobConfig, data model.ReportData) string {
	if cfg.MailSubject != "" {
		return cfg.MailSubject
	}
	return DefaultSubject(cfg.Name, data.Counts)
}

func (r *Reporter) notify(ctx context.Context, cfg config.JobConfig, data model.ReportData, subject string, reason error) {
	if r.notifier == nil {
		return
	}
	summary := notify.RunSummary{
		RunID:     data.RunID,
		JobName:   cfg.Name,
		Author:    cfg.Author,
		Status:    string(data.Status),
		Subject:   subject,
		Messages:  data.Counts.Messages,
		Warnings:  data.Counts.Warnings,
		Errors:    data.Counts.Errors,
		StartedAt: data.StartedAt,
		EndedAt:   data.EndedAt,
		Metadata:  summaryMetadata(cfg, data, reason),
	}
	if len(data.Errors) > 0 {
		summary.FirstError = firstLine(data.Errors[0].Text)
	}
	if err := r.notifier.NotifyRun(ctx, summary); err != nil {
		r.logger.WarnContext(ctx, "run notification failed", "run_id", data.RunID, "error", err)
	}
}

func summaryMetadata(cfg config.JobConfig, data model.ReportData, reason error) map[string]string {
	md := map[string]string{
		"mail_on": string(cfg.MailOn),
		"exit_on": string(cfg.ExitOn),
	}
	if len(cfg.MailTo) > 0 {
		md["mail_to"] = cfg.MailTo.String()
	}
	if data.Duration != "" {
		md["duration"] = data.Duration
	}
	if cfg.Template != "" {
		md["template"] = cfg.Template
	}
	if cfg.LogFile != "" {
		md["log_file"] = cfg.LogFile
	}
	if reason != nil {
		md["reason"] = firstLine(reason.Error())
	}
	return md
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
