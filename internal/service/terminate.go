package service

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// TestModeEnv suppresses the termination reason line when set.
const TestModeEnv = "RUBYCRON_TEST_MODE"

// Terminator is the single routine every fatal path converges on.
type Terminator struct {
	Out   io.Writer
	Exit  func(code int)
	Quiet bool
}

// NewTerminator writes to stderr and exits the process.
func NewTerminator() *Terminator {
	return &Terminator{
		Out:   os.Stderr,
		Exit:  os.Exit,
		Quiet: os.Getenv(TestModeEnv) != "",
	}
}

// Terminate prints a one-line reason for err and exits with status 1.
func (t *Terminator) Terminate(err error) {
	if !t.Quiet && t.Out != nil {
		_, _ = fmt.Fprintf(t.Out, "## Cannot complete job. Reason: %s\n", Reason(err))
	}
	exit := t.Exit
	if exit == nil {
		exit = os.Exit
	}
	exit(1)
}

// Reason flattens err into a single line.
func Reason(err error) string {
	if err == nil {
		return "unknown failure"
	}
	return strings.Join(strings.Fields(err.Error()), " ")
}
