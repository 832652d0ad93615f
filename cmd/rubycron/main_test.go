package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/dometto/rubycron/internal/errors"
	"github.com/dometto/rubycron/internal/service"
)

func TestExitOnError(t *testing.T) {
	t.Setenv(service.TestModeEnv, "")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "job failure ends through the terminator",
			err:  &jobFailure{err: apperrors.PolicyAbort("Configured to exit on error.")},
			want: "## Cannot complete job. Reason: Configured to exit on error.\n",
		},
		{
			name: "multi-line job failure is flattened",
			err:  &jobFailure{err: apperrors.TaskCrash(errors.New("disk full"), "disk full\n\tcaused by *fs.PathError: no space")},
			want: "## Cannot complete job. Reason: disk full caused by *fs.PathError: no space\n",
		},
		{
			name: "command error",
			err:  errors.New(`unknown flag: --bogus`),
			want: "Error: unknown flag: --bogus\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			code := -1
			exitOnError(tt.err, &out, func(c int) { code = c })

			assert.Equal(t, 1, code)
			assert.Equal(t, tt.want, out.String())
		})
	}
}
