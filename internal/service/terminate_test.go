package service

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/dometto/rubycron/internal/errors"
)

func TestTerminator_Terminate(t *testing.T) {
	var out bytes.Buffer
	var code int
	term := &Terminator{Out: &out, Exit: func(c int) { code = c }}

	term.Terminate(apperrors.ValidationField("name", "This job has no name."))

	assert.Equal(t, 1, code)
	assert.Equal(t, "## Cannot complete job. Reason: This job has no name.\n", out.String())
}

func TestTerminator_Quiet(t *testing.T) {
	var out bytes.Buffer
	var code int
	term := &Terminator{Out: &out, Exit: func(c int) { code = c }, Quiet: true}

	term.Terminate(errors.New("boom"))

	assert.Equal(t, 1, code)
	assert.Empty(t, out.String())
}

func TestNewTerminator_TestMode(t *testing.T) {
	t.Setenv(TestModeEnv, "1")
	assert.True(t, NewTerminator().Quiet)
}

func TestReason(t *testing.T) {
	assert.Equal(t, "first line second line", Reason(errors.New("first line\n\tsecond line")))
	assert.Equal(t, "unknown failure", Reason(nil))
}
