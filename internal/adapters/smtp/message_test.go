package smtp

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dometto/rubycron/internal/domain/model"
)

func TestCompose(t *testing.T) {
	now := time.Date(2026, 3, 14, 2, 30, 0, 0, time.UTC)
	raw, err := Compose(model.Mail{
		From:    "RubyCron <root@localhost>",
		To:      []string{"ops@example.com"},
		Subject: "[Cron report] backup: 1 error",
		Body:    "## Errors (1)\n\n- 02:30:00 disk full\n",
	}, now)
	require.NoError(t, err)

	mr, err := mail.CreateReader(bytes.NewReader(raw))
	require.NoError(t, err)

	subject, err := mr.Header.Subject()
	require.NoError(t, err)
	assert.Equal(t, "[Cron report] backup: 1 error", subject)

	date, err := mr.Header.Date()
	require.NoError(t, err)
	assert.True(t, date.Equal(now))

	to, err := mr.Header.AddressList("To")
	require.NoError(t, err)
	require.Len(t, to, 1)
	assert.Equal(t, "ops@example.com", to[0].Address)

	id, err := mr.Header.MessageID()
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	parts := map[string]string{}
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		h, ok := p.Header.(*mail.InlineHeader)
		require.True(t, ok)
		ct, _, err := h.ContentType()
		require.NoError(t, err)
		body, err := io.ReadAll(p.Body)
		require.NoError(t, err)
		parts[ct] = string(body)
	}

	assert.Contains(t, parts["text/plain"], "- 02:30:00 disk full")
	assert.Contains(t, parts["text/html"], "<h2>Errors (1)</h2>")
	assert.Contains(t, parts["text/html"], "<li>02:30:00 disk full</li>")
}

func TestCompose_EmptyBodyHasNoHTMLPart(t *testing.T) {
	raw, err := Compose(model.Mail{From: "root@localhost", To: []string{"ops@example.com"}, Subject: "s"}, time.Now())
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(raw), "text/html"))
}

func TestCompose_InvalidRecipient(t *testing.T) {
	_, err := Compose(model.Mail{From: "root@localhost", To: []string{"@@"}}, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse recipient")
}

func TestEnvelopeAddress(t *testing.T) {
	assert.Equal(t, "ops@example.com", envelopeAddress("Ops <ops@example.com>"))
	assert.Equal(t, "not-parsable", envelopeAddress("not-parsable"))
}
