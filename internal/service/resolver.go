package service

import (
	"context"
	"log/slog"

	"github.com/dometto/rubycron/config"
	"github.com/dometto/rubycron/internal/core"
	apperrors "github.com/dometto/rubycron/internal/errors"
)

// ConfigResolverOptions groups dependencies for ConfigResolver.
type ConfigResolverOptions struct {
	Reader core.ConfigReader // Required: file and URL sources
	Env    core.EnvReader    // Optional: RUBYCRON_* environment layer
	Logger *slog.Logger      // Optional: structured logger
}

// ConfigResolver merges inline overrides with file, URL and environment
// sources. Later layers win: file < url < env < inline. Only non-empty
// values are applied.
type ConfigResolver struct {
	reader core.ConfigReader
	env    core.EnvReader
	logger *slog.Logger
}

// NewConfigResolver constructs a ConfigResolver.
func NewConfigResolver(opts ConfigResolverOptions) *ConfigResolver {
	if opts.Reader == nil {
		panic("ConfigReader is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default().With("component", "config_resolver")
	}
	return &ConfigResolver{
		reader: opts.Reader,
		env:    opts.Env,
		logger: logger,
	}
}

// Resolve produces the merged configuration. Source references (configfile,
// configurl, configselect) are taken from the inline overrides first, then
// the environment; configurl and configselect may also come from the file.
func (r *ConfigResolver) Resolve(ctx context.Context, inline config.JobConfig) (config.JobConfig, error) {
	var envLayer config.JobConfig
	if r.env != nil {
		var err error
		envLayer, err = r.env.ReadEnv(ctx)
		if err != nil {
			return config.JobConfig{}, apperrors.Wrap(err, apperrors.ErrCodeConfigLoad, "could not read environment configuration")
		}
	}
	overrides := envLayer.Merge(inline)

	var merged config.JobConfig
	if ref := overrides.ConfigFile; ref != "" {
		fileCfg, err := r.read(ctx, core.SourceFile, ref, overrides.ConfigSelect)
		if err != nil {
			return config.JobConfig{}, err
		}
		merged = merged.Merge(fileCfg)
	}

	urlRef := firstNonEmpty(overrides.ConfigURL, merged.ConfigURL)
	if urlRef != "" {
		selectExpr := firstNonEmpty(overrides.ConfigSelect, merged.ConfigSelect)
		urlCfg, err := r.read(ctx, core.SourceURL, urlRef, selectExpr)
		if err != nil {
			return config.JobConfig{}, err
		}
		merged = merged.Merge(urlCfg)
	}

	resolved := merged.Merge(envLayer).Merge(inline)
	r.logger.DebugContext(ctx, "configuration resolved",
		"name", resolved.Name,
		"config_file", resolved.ConfigFile,
		"config_url", resolved.ConfigURL,
	)
	return resolved, nil
}

func (r *ConfigResolver) read(ctx context.Context, kind core.SourceKind, locator, selectExpr string) (config.JobConfig, error) {
	cfg, err := r.reader.Read(ctx, core.ReadRequest{Kind: kind, Locator: locator, Select: selectExpr})
	if err != nil {
		if apperrors.IsConfigLoad(err) {
			return config.JobConfig{}, err
		}
		return config.JobConfig{}, apperrors.Wrapf(err, apperrors.ErrCodeConfigLoad,
			"could not load the %s configuration %q", kind, locator)
	}
	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
