package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/dometto/rubycron/config"
	"github.com/dometto/rubycron/internal/adapters/configsource"
)

// InitLogger initializes the structured logger. Operational logs share the
// run's output, so a text handler is used rather than JSON.
func InitLogger(w io.Writer, level slog.Level) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// LogLevel maps the job's output flags onto a log level.
func LogLevel(debug, verbose bool) slog.Level {
	switch {
	case debug:
		return slog.LevelDebug
	case verbose:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

// LoadDotEnv loads a .env file from the working directory if it exists.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return fmt.Errorf("load .env file: %w", err)
		}
	}
	return nil
}

// LoadEnvOverrides loads .env and returns the reader for the RUBYCRON_*
// configuration layer.
func LoadEnvOverrides() (configsource.EnvReader, error) {
	if err := LoadDotEnv(); err != nil {
		return configsource.EnvReader{}, err
	}
	return configsource.EnvReader{}, nil
}

// LoadObservability loads metrics and notification settings from the
// environment.
func LoadObservability() (config.ObservabilityConfig, error) {
	cfg, err := config.ParseObservabilityEnv(nil)
	if err != nil {
		return cfg, err
	}
	return cfg, nil
}
