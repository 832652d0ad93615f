package rubycron

import "embed"

// Embedded report templates. A template reference of the form
// "builtin:<name>" is served from this filesystem as templates/<name>.md.tmpl;
// any other reference is read from disk.
//
//go:embed templates/*.md.tmpl
var TemplateFS embed.FS
