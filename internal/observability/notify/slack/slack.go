package slack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dometto/rubycron/internal/observability/notify"
)

// Config captures the subset of Slack webhook behaviour we need.
type Config struct {
	WebhookURL string
	Channel    string
	Username   string
	Timeout    time.Duration
	RetryLimit int
	Client     *http.Client
}

// Client posts run summaries to a Slack incoming webhook.
type Client struct {
	webhookURL string
	channel    string
	username   string
	poster     notify.Poster
}

// NewClient builds a Slack webhook client. Callers should pass a validated config.
func NewClient(cfg Config) (*Client, error) {
	webhookURL := strings.TrimSpace(cfg.WebhookURL)
	if webhookURL == "" {
		return nil, errors.New("slack webhook url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		webhookURL: webhookURL,
		channel:    strings.TrimSpace(cfg.Channel),
		username:   fallbackString(strings.TrimSpace(cfg.Username), "rubycron"),
		poster: notify.Poster{
			Name:       "slack webhook",
			Client:     hc,
			RetryLimit: max(cfg.RetryLimit, 0),
		},
	}, nil
}

// SendRunSummary posts a formatted message to Slack.
func (c *Client) SendRunSummary(ctx context.Context, summary notify.RunSummary) error {
	body, err := json.Marshal(c.formatMessage(summary))
	if err != nil {
		return fmt.Errorf("encode slack payload: %w", err)
	}
	return c.poster.Post(ctx, c.webhookURL, body)
}

func (c *Client) formatMessage(summary notify.RunSummary) map[string]any {
	timestamp := summary.EndedAt
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	text := strings.Builder{}
	writeSlackHeader(&text, summary)
	appendSlackDetails(&text, summary)
	appendSlackMetadata(&text, summary.Metadata)
	writeSlackTimestamp(&text, timestamp)

	msg := map[string]any{
		"text":     text.String(),
		"username": c.username,
	}
	if c.channel != "" {
		msg["channel"] = c.channel
	}
	return msg
}

func fallbackString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func writeSlackHeader(text *strings.Builder, summary notify.RunSummary) {
	switch summary.Severity() {
	case notify.SeverityCritical:
		text.WriteString(":red_circle: ")
	case notify.SeverityWarning:
		text.WriteString(":warning: ")
	default:
		text.WriteString(":white_check_mark: ")
	}
	text.WriteString("*Cron report*")
	if summary.JobName != "" {
		text.WriteString(" `")
		text.WriteString(escapeSlackText(summary.JobName))
		text.WriteByte('`')
	}
	text.WriteByte('\n')
}

func appendSlackDetails(text *strings.Builder, summary notify.RunSummary) {
	fields := []struct {
		label string
		value string
	}{
		{"Status", summary.Status},
		{"Author", escapeSlackText(summary.Author)},
		{"Warnings", strconv.Itoa(summary.Warnings)},
		{"Errors", strconv.Itoa(summary.Errors)},
		{"First error", escapeSlackText(summary.FirstError)},
		{"Run", summary.RunID},
	}

	for _, field := range fields {
		appendSlackField(text, field.label, field.value)
	}
}

func escapeSlackText(value string) string {
	if value == "" {
		return ""
	}
	return strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	).Replace(value)
}

func appendSlackField(text *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	text.WriteString("• ")
	text.WriteString(label)
	text.WriteString(": ")
	text.WriteString(value)
	text.WriteByte('\n')
}

func appendSlackMetadata(text *strings.Builder, metadata map[string]string) {
	if len(metadata) == 0 {
		return
	}
	text.WriteString("• Metadata:\n")
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		text.WriteString("    • ")
		text.WriteString(k)
		text.WriteString(": ")
		text.WriteString(metadata[k])
		text.WriteByte('\n')
	}
}

func writeSlackTimestamp(text *strings.Builder, timestamp time.Time) {
	text.WriteString("• Finished: ")
	text.WriteString(timestamp.UTC().Format(time.RFC3339))
}
