package templates

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dometto/rubycron/internal/domain/model"
)

func sampleData() model.ReportData {
	at := time.Date(2014, 3, 9, 4, 5, 6, 0, time.UTC)
	return model.ReportData{
		RunID:     "run-1",
		Name:      "backup",
		Author:    "ops",
		StartedAt: at,
		EndedAt:   at.Add(2 * time.Second),
		Duration:  "2s",
		Status:    model.RunStatusCrashed,
		Messages: []model.Diagnostic{
			{Kind: model.DiagnosticMessage, Text: "ok", CapturedAt: at},
			{Kind: model.DiagnosticMessage, Text: "ok", CapturedAt: at},
			{Kind: model.DiagnosticMessage, Text: "ok", CapturedAt: at},
		},
		Errors: []model.Diagnostic{
			{Kind: model.DiagnosticError, Text: "boom\n\tcaused by x", CapturedAt: at},
		},
		Counts: model.DiagnosticCounts{Messages: 3, Errors: 1},
	}
}

func TestRenderer_Builtin(t *testing.T) {
	r := New(Options{Builtin: os.DirFS(filepath.Join("..", "..", ".."))})

	out, err := r.Render(context.Background(), "builtin:report", sampleData())
	require.NoError(t, err)

	assert.Contains(t, out, "# Cron report for backup")
	assert.Contains(t, out, "| Author | ops |")
	assert.Contains(t, out, "| Started | 2014-03-09 04:05:06 +0000 |")
	assert.Contains(t, out, "## Messages (3)")
	assert.Equal(t, 3, strings.Count(out, "- 04:05:06 ok"))
	assert.Contains(t, out, "## Warnings (0)\n\nNo warnings.")
	assert.Contains(t, out, "  ```\n  boom\n  \tcaused by x\n  ```")
}

func TestRenderer_FileTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("{{ .Name }}: {{ .Counts.Warnings }}W/{{ .Counts.Errors }}E {{ upper .Author }}"), 0o600))

	out, err := New(Options{}).Render(context.Background(), path, sampleData())
	require.NoError(t, err)
	assert.Equal(t, "backup: 0W/1E OPS", out)
}

func TestRenderer_Errors(t *testing.T) {
	fsys := fstest.MapFS{
		"templates/broken.md.tmpl":  {Data: []byte("{{ .Name ")},
		"templates/missing.md.tmpl": {Data: []byte("{{ .Nope }}")},
	}
	r := New(Options{Builtin: fsys})
	ctx := context.Background()

	_, err := r.Render(ctx, "builtin:broken", sampleData())
	assert.ErrorContains(t, err, "parse template")

	_, err = r.Render(ctx, "builtin:missing", sampleData())
	assert.ErrorContains(t, err, "execute template")

	_, err = r.Render(ctx, "builtin:absent", sampleData())
	assert.ErrorContains(t, err, "builtin template \"absent\"")

	_, err = r.Render(ctx, filepath.Join(t.TempDir(), "nope.tmpl"), sampleData())
	assert.ErrorContains(t, err, "read template")

	_, err = New(Options{}).Render(ctx, "builtin:report", sampleData())
	assert.ErrorContains(t, err, "no builtin templates available")
}
