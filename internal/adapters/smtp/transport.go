// Package smtp delivers reports over SMTP and probes the local relay.
package smtp

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"github.com/dometto/rubycron/config"
	"github.com/dometto/rubycron/internal/core"
	"github.com/dometto/rubycron/internal/domain/model"
)

// Local relay used when a job has no transport settings.
const (
	LocalAddress = "localhost"
	LocalPort    = 25
)

// Options configures a Transport.
type Options struct {
	Timeout time.Duration
	// TLSConfig is cloned for STARTTLS; ServerName is filled in per relay.
	TLSConfig *tls.Config
	Logger    *slog.Logger
}

// Transport implements core.MailTransport with net/smtp.
type Transport struct {
	timeout time.Duration
	tls     *tls.Config
	logger  *slog.Logger
	now     func() time.Time
}

var _ core.MailTransport = (*Transport)(nil)

// NewTransport constructs a Transport.
func NewTransport(opts Options) *Transport {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default().With("component", "smtp_transport")
	}
	return &Transport{
		timeout: timeout,
		tls:     opts.TLSConfig,
		logger:  logger,
		now:     time.Now,
	}
}

// Send delivers m through the relay in settings, or the local relay when
// settings is nil.
func (t *Transport) Send(ctx context.Context, m model.Mail, settings *config.TransportSettings) error {
	if settings == nil {
		settings = &config.TransportSettings{Address: LocalAddress, Port: LocalPort}
	}
	msg, err := Compose(m, t.now())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	addr := settings.HostPort()
	conn, err := (&net.Dialer{}).DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("smtp dial %s: %w", addr, err)
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, settings.Address)
	if err != nil {
		return fmt.Errorf("smtp greeting: %w", err)
	}
	defer c.Close()

	if err := t.session(c, settings, m, msg); err != nil {
		return err
	}
	t.logger.DebugContext(ctx, "mail delivered", "relay", addr, "recipients", len(m.To))
	return nil
}

func (t *Transport) session(c *smtp.Client, settings *config.TransportSettings, m model.Mail, msg []byte) error {
	if settings.Domain != "" {
		if err := c.Hello(settings.Domain); err != nil {
			return fmt.Errorf("smtp HELO: %w", err)
		}
	}
	if settings.EnableStartTLSAuto {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(t.tlsConfig(settings.Address)); err != nil {
				return fmt.Errorf("smtp STARTTLS: %w", err)
			}
		}
	}
	if settings.UserName != "" {
		auth, err := authFor(settings, settings.Address)
		if err != nil {
			return err
		}
		if err := c.Auth(auth); err != nil {
			return fmt.Errorf("smtp AUTH: %w", err)
		}
	}

	if err := c.Mail(envelopeAddress(m.From)); err != nil {
		return fmt.Errorf("smtp MAIL FROM: %w", err)
	}
	for _, rcpt := range m.To {
		if err := c.Rcpt(envelopeAddress(rcpt)); err != nil {
			return fmt.Errorf("smtp RCPT TO %s: %w", rcpt, err)
		}
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp end of data: %w", err)
	}
	if err := c.Quit(); err != nil {
		return fmt.Errorf("smtp QUIT: %w", err)
	}
	return nil
}

func (t *Transport) tlsConfig(host string) *tls.Config {
	var cfg *tls.Config
	if t.tls != nil {
		cfg = t.tls.Clone()
	} else {
		cfg = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	if cfg.ServerName == "" {
		cfg.ServerName = host
	}
	return cfg
}

// Prober implements core.TransportProber by completing an SMTP greeting and
// HELO against the relay.
type Prober struct {
	Timeout time.Duration
}

var _ core.TransportProber = Prober{}

// Probe reports whether address:port accepts an SMTP session.
func (p Prober) Probe(ctx context.Context, address string, port int) bool {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, err := (&net.Dialer{}).DialContext(ctx, "tcp", net.JoinHostPort(address, strconv.Itoa(port)))
	if err != nil {
		return false
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, address)
	if err != nil {
		return false
	}
	defer c.Close()
	if err := c.Hello("localhost"); err != nil {
		return false
	}
	return c.Quit() == nil
}
