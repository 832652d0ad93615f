package pagerduty

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dometto/rubycron/internal/observability/notify"
)

// APIEndpoint is the PagerDuty Events API v2 ingest URL.
const APIEndpoint = "https://events.pagerduty.com/v2/enqueue"

// Config captures runtime configuration for the PagerDuty sink.
type Config struct {
	RoutingKey string
	Source     string
	Component  string
	Timeout    time.Duration
	RetryLimit int
	Client     *http.Client
	// Endpoint overrides APIEndpoint.
	Endpoint string
}

// Client publishes events via PagerDuty's Events API v2. Only failed runs
// trigger an incident.
type Client struct {
	routingKey string
	source     string
	component  string
	endpoint   string
	poster     notify.Poster
}

// NewClient constructs a PagerDuty events client from config. Callers must provide a routing key.
func NewClient(cfg Config) (*Client, error) {
	key := strings.TrimSpace(cfg.RoutingKey)
	if key == "" {
		return nil, errors.New("pagerduty routing key is required")
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
		routingKey: key,
		source:     fallbackString(strings.TrimSpace(cfg.Source), "rubycron"),
		component:  fallbackString(strings.TrimSpace(cfg.Component), "rubycron"),
		endpoint:   fallbackString(strings.TrimSpace(cfg.Endpoint), APIEndpoint),
		poster: notify.Poster{
			Name:       "pagerduty api",
			Client:     hc,
			RetryLimit: max(cfg.RetryLimit, 0),
		},
	}, nil
}

// SendRunSummary submits a trigger event for failed runs and ignores the rest.
func (c *Client) SendRunSummary(ctx context.Context, summary notify.RunSummary) error {
	if !summary.Failed() {
		return nil
	}
	body, err := json.Marshal(c.buildEvent(summary))
	if err != nil {
		return fmt.Errorf("encode pagerduty payload: %w", err)
	}
	return c.poster.Post(ctx, c.endpoint, body)
}

func (c *Client) buildEvent(summary notify.RunSummary) map[string]any {
	occurredAt := summary.EndedAt.UTC()
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	custom := map[string]any{
		"run_id":      summary.RunID,
		"job":         summary.JobName,
		"author":      summary.Author,
		"status":      summary.Status,
		"warnings":    summary.Warnings,
		"errors":      summary.Errors,
		"first_error": summary.FirstError,
	}

	for k, v := range summary.Metadata {
		if _, exists := custom[k]; !exists {
			custom[k] = v
		}
	}

	return map[string]any{
		"routing_key":  c.routingKey,
		"event_action": "trigger",
		// One open incident per job; repeated failures fold into it.
		"dedup_key": "rubycron:" + fallbackString(summary.JobName, "unknown"),
		"payload": map[string]any{
			"summary": fmt.Sprintf(
				"Cron job %s failed: %d errors (%s)",
				fallbackString(summary.JobName, "unknown"),
				summary.Errors,
				fallbackString(summary.Status, "unknown"),
			),
			"severity":       summary.Severity(),
			"source":         c.source,
			"component":      c.component,
			"timestamp":      occurredAt.Format(time.RFC3339),
			"custom_details": custom,
		},
	}
}

func fallbackString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
