// Command rubycron wraps an external command as a cron job: every line the
// command prints becomes a diagnostic, and a summary is mailed according to
// the job's mail-on policy.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dometto/rubycron"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		exitOnError(err, os.Stderr, os.Exit) //nolint:forbidigo // every failure exits with status 1
	}
}

// exitOnError reports err and exits with status 1. Fatal job runs end
// through the terminator and print the job's termination line.
func exitOnError(err error, stderr io.Writer, exit func(int)) {
	var failure *jobFailure
	if errors.As(err, &failure) {
		term := rubycron.NewTerminator()
		term.Out = stderr
		term.Exit = exit
		term.Terminate(failure.err)
		return
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	exit(1)
}
