package configsource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dometto/rubycron/config"
	"github.com/dometto/rubycron/internal/core"
	"github.com/dometto/rubycron/internal/domain/model"
	apperrors "github.com/dometto/rubycron/internal/errors"
)

const jobsDoc = `
defaults:
  mailfrom: cron@example.com
jobs:
  backup:
    name: backup
    author: ops
    mailto: [ops@example.com]
  cleanup:
    name: cleanup
    author: dev
    mailto: dev@example.com
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReader_YAMLFile(t *testing.T) {
	path := writeFile(t, "backup.yml", `
:name: backup
:author: ops
:mailto: ops@example.com
:mailon: :warning
:smtpsettings:
  :address: smtp.example.com
  :port: 587
  :authentication: login
`)

	cfg, err := New(Options{}).Read(context.Background(), core.ReadRequest{Kind: core.SourceFile, Locator: path})
	require.NoError(t, err)

	assert.Equal(t, "backup", cfg.Name)
	assert.Equal(t, config.AddressList{"ops@example.com"}, cfg.MailTo)
	assert.Equal(t, model.PolicyWarning, cfg.MailOn)
	require.NotNil(t, cfg.SMTP)
	assert.Equal(t, "smtp.example.com:587", cfg.SMTP.HostPort())
	assert.Equal(t, config.AuthLogin, cfg.SMTP.Authentication)
}

func TestReader_Select(t *testing.T) {
	path := writeFile(t, "jobs.yml", jobsDoc)

	cfg, err := New(Options{}).Read(context.Background(), core.ReadRequest{
		Kind:    core.SourceFile,
		Locator: path,
		Select:  "jobs.cleanup",
	})
	require.NoError(t, err)
	assert.Equal(t, "cleanup", cfg.Name)
	assert.Equal(t, config.AddressList{"dev@example.com"}, cfg.MailTo)

	_, err = New(Options{}).Read(context.Background(), core.ReadRequest{
		Kind:    core.SourceFile,
		Locator: path,
		Select:  "jobs.missing",
	})
	assert.True(t, apperrors.IsConfigLoad(err), "a selection that is not a mapping fails")

	_, err = New(Options{}).Read(context.Background(), core.ReadRequest{
		Kind:    core.SourceFile,
		Locator: path,
		Select:  "jobs.[",
	})
	assert.True(t, apperrors.IsConfigLoad(err))
}

func TestReader_NotAMapping(t *testing.T) {
	path := writeFile(t, "list.yml", "- name\n- author\n")

	_, err := New(Options{}).Read(context.Background(), core.ReadRequest{Kind: core.SourceFile, Locator: path})
	require.Error(t, err)
	assert.True(t, apperrors.IsConfigLoad(err))
	assert.EqualError(t, err, "Could not load the YAML configuration.")
}

func TestReader_MissingFile(t *testing.T) {
	_, err := New(Options{}).Read(context.Background(), core.ReadRequest{
		Kind:    core.SourceFile,
		Locator: filepath.Join(t.TempDir(), "absent.yml"),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsConfigLoad(err))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReader_Dotenv(t *testing.T) {
	path := writeFile(t, "backup.env", `
RUBYCRON_NAME=backup
RUBYCRON_AUTHOR="ops team"
RUBYCRON_MAILTO=a@example.com,b@example.com
RUBYCRON_SMTP_ADDRESS=relay
RUBYCRON_SMTP_PORT=25
`)

	cfg, err := New(Options{}).Read(context.Background(), core.ReadRequest{Kind: core.SourceFile, Locator: path})
	require.NoError(t, err)
	assert.Equal(t, "ops team", cfg.Author)
	assert.Equal(t, config.AddressList{"a@example.com", "b@example.com"}, cfg.MailTo)
	require.NotNil(t, cfg.SMTP)
	assert.Equal(t, 25, cfg.SMTP.Port)

	_, err = New(Options{}).Read(context.Background(), core.ReadRequest{Kind: core.SourceFile, Locator: path, Select: "x"})
	assert.True(t, apperrors.IsConfigLoad(err))
}

func TestReader_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/jobs.yml":
			w.Header().Set("Content-Type", "application/yaml")
			_, _ = w.Write([]byte(jobsDoc))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	reader := New(Options{Client: srv.Client()})
	cfg, err := reader.Read(context.Background(), core.ReadRequest{
		Kind:    core.SourceURL,
		Locator: srv.URL + "/jobs.yml",
		Select:  "merge(defaults, jobs.backup)",
	})
	require.NoError(t, err)
	assert.Equal(t, "backup", cfg.Name)
	assert.Equal(t, "cron@example.com", cfg.MailFrom)

	_, err = reader.Read(context.Background(), core.ReadRequest{Kind: core.SourceURL, Locator: srv.URL + "/missing.yml"})
	require.Error(t, err)
	assert.True(t, apperrors.IsConfigLoad(err))
	assert.Contains(t, err.Error(), "404")
}

func TestReader_UnknownKind(t *testing.T) {
	_, err := New(Options{}).Read(context.Background(), core.ReadRequest{Kind: "ftp", Locator: "x"})
	assert.True(t, apperrors.IsConfigLoad(err))
}

func TestEnvReader(t *testing.T) {
	cfg, err := EnvReader{Environ: map[string]string{
		"RUBYCRON_NAME":   "backup",
		"RUBYCRON_EXITON": "none",
	}}.ReadEnv(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "backup", cfg.Name)
	assert.Equal(t, model.PolicyNone, cfg.ExitOn)

	_, err = EnvReader{Environ: map[string]string{"RUBYCRON_SMTP_PORT": "twenty-five"}}.ReadEnv(context.Background())
	assert.True(t, apperrors.IsConfigLoad(err))
}

func TestIsDotenv(t *testing.T) {
	assert.True(t, isDotenv(".env"))
	assert.True(t, isDotenv("/etc/rubycron/backup.env"))
	assert.False(t, isDotenv("/etc/rubycron/backup.yml"))
	assert.False(t, isDotenv("/etc/env/job.yaml"))
}
