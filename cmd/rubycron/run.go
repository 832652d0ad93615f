package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dometto/rubycron"
	"github.com/dometto/rubycron/internal/domain/model"
)

func newRunCmd() *cobra.Command {
	flags := &jobFlags{}
	cmd := &cobra.Command{
		Use:   "run [flags] -- command [args...]",
		Short: "Run a command as a cron job",
		Long: `Run a command and report on it.

Each line the command writes to stdout or stderr becomes a diagnostic:
  [WARN ] ... or WARNING: ...   warning
  [ERROR] ... or ERROR: ...     error
  anything else                 message

A non-zero exit status is recorded as an error and handled like a crash.

Examples:
  rubycron run --name backup --author ops --mailto ops@example.com -- /usr/local/bin/backup.sh
  rubycron run --config /etc/rubycron/jobs.yml --config-select jobs.backup -- backup.sh --full`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.toConfig()
			if err != nil {
				return err
			}
			opts, closer, err := jobOptions(cmd.Context(), flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closer.Close()

			opts = append(opts, rubycron.WithOutput(cmd.OutOrStdout()))
			j, err := rubycron.New(cmd.Context(), cfg, opts...)
			if err != nil {
				return &jobFailure{err: err}
			}
			_, runErr := j.Execute(cmd.Context(), commandTask(args[0], args[1:]))
			closeErr := j.Close()
			if runErr == nil {
				runErr = closeErr
			}
			if runErr != nil {
				return &jobFailure{err: runErr}
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().SetInterspersed(false)
	return cmd
}

// jobFailure marks an error that ended a job on a fatal path. main hands it
// to the terminator instead of printing it as a usage error.
type jobFailure struct {
	err error
}

func (f *jobFailure) Error() string { return f.err.Error() }

func (f *jobFailure) Unwrap() error { return f.err }

// commandTask runs name with args and feeds its output lines into the run's
// diagnostics. The command is killed when a line triggers the exit-on policy.
func commandTask(name string, args []string) rubycron.Task {
	return func(ctx context.Context, d *rubycron.Diagnostics) error {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		cmd := exec.CommandContext(ctx, name, args...)
		stdout, err := cmd.StdoutPipe()
		if err != nil {
			return fmt.Errorf("attach stdout: %w", err)
		}
		stderr, err := cmd.StderrPipe()
		if err != nil {
			return fmt.Errorf("attach stderr: %w", err)
		}
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("start %s: %w", name, err)
		}

		var g errgroup.Group
		for _, r := range []io.Reader{stdout, stderr} {
			g.Go(func() error {
				if err := captureLines(r, d); err != nil {
					cancel()
					return err
				}
				return nil
			})
		}
		captureErr := g.Wait()
		waitErr := cmd.Wait()

		if captureErr != nil {
			return captureErr
		}
		if waitErr != nil {
			var exitErr *exec.ExitError
			if errors.As(waitErr, &exitErr) {
				return fmt.Errorf("%s exited with status %d: %w", name, exitErr.ExitCode(), waitErr)
			}
			return fmt.Errorf("wait for %s: %w", name, waitErr)
		}
		return nil
	}
}

// captureLines records each line of r. It stops at the first policy abort.
func captureLines(r io.Reader, d *rubycron.Diagnostics) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		kind, text := classifyLine(scanner.Text())
		if text == "" {
			continue
		}
		var err error
		switch kind {
		case model.DiagnosticWarning:
			err = d.Warning(text)
		case model.DiagnosticError:
			err = d.Error(text)
		default:
			d.Message(text)
		}
		if err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.ErrClosedPipe) {
		return fmt.Errorf("read command output: %w", err)
	}
	return nil
}

var linePrefixes = []struct {
	prefix string
	kind   model.DiagnosticKind
}{
	{"[WARN ]", model.DiagnosticWarning},
	{"WARNING:", model.DiagnosticWarning},
	{"[ERROR]", model.DiagnosticError},
	{"ERROR:", model.DiagnosticError},
	{"[INFO ]", model.DiagnosticMessage},
}

// classifyLine maps a line of command output onto a diagnostic kind and
// strips the recognised prefix.
func classifyLine(line string) (model.DiagnosticKind, string) {
	trimmed := strings.TrimSpace(line)
	for _, p := range linePrefixes {
		if rest, ok := strings.CutPrefix(trimmed, p.prefix); ok {
			return p.kind, strings.TrimSpace(rest)
		}
	}
	return model.DiagnosticMessage, trimmed
}
