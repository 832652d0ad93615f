// Package output provides the scoped sinks a run writes its trace to.
package output

import (
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/dometto/rubycron/internal/core"
)

// DefaultFileMode is used when a log file has to be created.
const DefaultFileMode fs.FileMode = 0o644

// FileOpener opens log files in append mode.
type FileOpener struct {
	Mode fs.FileMode
}

var _ core.OutputOpener = FileOpener{}

// Open appends to path, creating it when needed. Writes are unbuffered so
// the trace survives a crash of the process.
func (o FileOpener) Open(path string) (io.WriteCloser, error) {
	mode := o.Mode
	if mode == 0 {
		mode = DefaultFileMode
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, mode)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// NopCloser wraps w so closing it has no effect. Sinks that the process does
// not own, such as os.Stdout, go through it.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
