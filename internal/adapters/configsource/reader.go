// Package configsource loads job configuration from files, URLs and the
// environment.
package configsource

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dometto/rubycron/config"
	"github.com/dometto/rubycron/internal/core"
	apperrors "github.com/dometto/rubycron/internal/errors"
)

// MaxDocumentBytes bounds the size of a remote configuration document.
const MaxDocumentBytes = 1 << 20

const msgNotMapping = "Could not load the YAML configuration."

// Options configures a Reader.
type Options struct {
	Client  *http.Client
	Timeout time.Duration
	Logger  *slog.Logger
}

// Reader implements core.ConfigReader for YAML files, dotenv files and
// remote YAML documents.
type Reader struct {
	client *http.Client
	logger *slog.Logger
}

var _ core.ConfigReader = (*Reader)(nil)

// New constructs a Reader.
func New(opts Options) *Reader {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default().With("component", "config_source")
	}
	return &Reader{client: client, logger: logger}
}

// Read loads one source. Failures are config-load errors.
func (r *Reader) Read(ctx context.Context, req core.ReadRequest) (config.JobConfig, error) {
	r.logger.DebugContext(ctx, "loading configuration", "kind", req.Kind, "locator", req.Locator)

	switch req.Kind {
	case core.SourceFile:
		if isDotenv(req.Locator) {
			return readDotenv(req)
		}
		doc, err := os.ReadFile(req.Locator)
		if err != nil {
			return config.JobConfig{}, apperrors.Wrapf(err, apperrors.ErrCodeConfigLoad,
				"could not read configuration file %q", req.Locator)
		}
		return Decode(doc, req.Select)
	case core.SourceURL:
		doc, err := r.fetch(ctx, req.Locator)
		if err != nil {
			return config.JobConfig{}, apperrors.Wrapf(err, apperrors.ErrCodeConfigLoad,
				"could not fetch configuration from %q", req.Locator)
		}
		return Decode(doc, req.Select)
	default:
		return config.JobConfig{}, apperrors.ConfigLoadf("unknown configuration source %q", req.Kind)
	}
}

func (r *Reader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/yaml, text/yaml, text/plain, */*")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxDocumentBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) > MaxDocumentBytes {
		return nil, fmt.Errorf("document exceeds %d bytes", MaxDocumentBytes)
	}
	return body, nil
}

func isDotenv(path string) bool {
	base := path[strings.LastIndexAny(path, `/\`)+1:]
	return base == ".env" || strings.HasSuffix(base, ".env")
}

func readDotenv(req core.ReadRequest) (config.JobConfig, error) {
	if req.Select != "" {
		return config.JobConfig{}, apperrors.ConfigLoadf("configselect cannot be applied to dotenv file %q", req.Locator)
	}
	vars, err := godotenv.Read(req.Locator)
	if err != nil {
		return config.JobConfig{}, apperrors.Wrapf(err, apperrors.ErrCodeConfigLoad,
			"could not read configuration file %q", req.Locator)
	}
	cfg, err := config.ParseEnv(vars)
	if err != nil {
		return config.JobConfig{}, apperrors.Wrapf(err, apperrors.ErrCodeConfigLoad,
			"could not decode configuration file %q", req.Locator)
	}
	return cfg, nil
}

// Decode parses a YAML document into a JobConfig. Keys may be written with a
// leading colon (":name:"). When selectExpr is set, it is evaluated as a
// JMESPath expression and the result is decoded instead. The decoded value
// must be a mapping.
func Decode(doc []byte, selectExpr string) (config.JobConfig, error) {
	var raw any
	if err := yaml.Unmarshal(doc, &raw); err != nil {
		return config.JobConfig{}, apperrors.Wrap(err, apperrors.ErrCodeConfigLoad, msgNotMapping)
	}
	raw = normalizeKeys(raw)

	if strings.TrimSpace(selectExpr) != "" {
		selected, err := jmespath.Search(selectExpr, raw)
		if err != nil {
			return config.JobConfig{}, apperrors.Wrapf(err, apperrors.ErrCodeConfigLoad,
				"invalid configselect expression %q", selectExpr)
		}
		raw = selected
	}

	if _, ok := raw.(map[string]any); !ok {
		return config.JobConfig{}, apperrors.ConfigLoad(msgNotMapping)
	}

	normalized, err := yaml.Marshal(raw)
	if err != nil {
		return config.JobConfig{}, apperrors.Wrap(err, apperrors.ErrCodeConfigLoad, msgNotMapping)
	}
	var cfg config.JobConfig
	if err := yaml.Unmarshal(normalized, &cfg); err != nil {
		return config.JobConfig{}, apperrors.Wrap(err, apperrors.ErrCodeConfigLoad, msgNotMapping)
	}
	return cfg, nil
}

// normalizeKeys strips a leading colon from mapping keys at every level.
func normalizeKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[strings.TrimPrefix(k, ":")] = normalizeKeys(val)
		}
		return out
	case []any:
		for i := range t {
			t[i] = normalizeKeys(t[i])
		}
		return t
	default:
		return v
	}
}
