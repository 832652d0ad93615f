package configsource

import (
	"context"

	"github.com/dometto/rubycron/config"
	"github.com/dometto/rubycron/internal/core"
	apperrors "github.com/dometto/rubycron/internal/errors"
)

// EnvReader implements core.EnvReader over RUBYCRON_* variables.
type EnvReader struct {
	// Environ replaces the process environment when non-nil.
	Environ map[string]string
}

var _ core.EnvReader = EnvReader{}

// ReadEnv decodes the environment layer.
func (e EnvReader) ReadEnv(context.Context) (config.JobConfig, error) {
	cfg, err := config.ParseEnv(e.Environ)
	if err != nil {
		return config.JobConfig{}, apperrors.Wrap(err, apperrors.ErrCodeConfigLoad, "could not decode RUBYCRON_* variables")
	}
	return cfg, nil
}
