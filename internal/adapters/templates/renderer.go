// Package templates renders report bodies from text templates.
package templates

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/dometto/rubycron/internal/core"
	"github.com/dometto/rubycron/internal/domain/model"
	"github.com/dometto/rubycron/internal/util"
)

// BuiltinPrefix marks a template reference served from the embedded set.
const BuiltinPrefix = "builtin:"

// Options configures a Renderer.
type Options struct {
	// Builtin holds templates/<name>.md.tmpl for builtin references.
	Builtin fs.FS
	Logger  *slog.Logger
}

// Renderer implements core.ReportRenderer with text/template. Parsed
// templates are cached by reference.
type Renderer struct {
	builtin fs.FS
	logger  *slog.Logger

	mu    sync.Mutex
	cache map[string]*template.Template
}

var _ core.ReportRenderer = (*Renderer)(nil)

// New constructs a Renderer.
func New(opts Options) *Renderer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default().With("component", "report_renderer")
	}
	return &Renderer{
		builtin: opts.Builtin,
		logger:  logger,
		cache:   make(map[string]*template.Template),
	}
}

// Render executes the template named by ref against data.
func (r *Renderer) Render(ctx context.Context, ref string, data model.ReportData) (string, error) {
	tmpl, err := r.lookup(ref)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template %q: %w", ref, err)
	}
	r.logger.DebugContext(ctx, "report rendered", "template", ref, "bytes", buf.Len())
	return buf.String(), nil
}

func (r *Renderer) lookup(ref string) (*template.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tmpl, ok := r.cache[ref]; ok {
		return tmpl, nil
	}
	src, err := r.source(ref)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New(path.Base(ref)).
		Funcs(Funcs()).
		Option("missingkey=error").
		Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("parse template %q: %w", ref, err)
	}
	r.cache[ref] = tmpl
	return tmpl, nil
}

func (r *Renderer) source(ref string) ([]byte, error) {
	name, builtin := strings.CutPrefix(ref, BuiltinPrefix)
	if !builtin {
		b, err := os.ReadFile(ref)
		if err != nil {
			return nil, fmt.Errorf("read template: %w", err)
		}
		return b, nil
	}
	if r.builtin == nil {
		return nil, fmt.Errorf("builtin template %q: no builtin templates available", name)
	}
	b, err := fs.ReadFile(r.builtin, path.Join("templates", name+".md.tmpl"))
	if err != nil {
		return nil, fmt.Errorf("builtin template %q: %w", name, err)
	}
	return b, nil
}

// Funcs returns the helpers available to report templates.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"timestamp": util.FormatTimestamp,
		"clock": func(t time.Time) string {
			return t.Format("15:04:05")
		},
		"multiline": func(s string) bool {
			return strings.Contains(s, "\n")
		},
		"indent": func(n int, s string) string {
			pad := strings.Repeat(" ", n)
			return pad + strings.ReplaceAll(s, "\n", "\n"+pad)
		},
		"upper": strings.ToUpper,
	}
}
