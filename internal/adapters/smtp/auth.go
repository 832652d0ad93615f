package smtp

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/dometto/rubycron/config"
)

// authFor selects the SASL mechanism named in settings. An empty
// authentication defaults to PLAIN.
func authFor(settings *config.TransportSettings, host string) (smtp.Auth, error) {
	switch strings.ToLower(strings.TrimSpace(settings.Authentication)) {
	case "", config.AuthPlain:
		return smtp.PlainAuth("", settings.UserName, settings.Password, host), nil
	case config.AuthLogin:
		return &loginAuth{username: settings.UserName, password: settings.Password, host: host}, nil
	case config.AuthCRAMMD5:
		return smtp.CRAMMD5Auth(settings.UserName, settings.Password), nil
	default:
		return nil, fmt.Errorf("unsupported authentication %q", settings.Authentication)
	}
}

// loginAuth implements the LOGIN mechanism, which net/smtp does not ship.
type loginAuth struct {
	username string
	password string
	host     string
}

func (a *loginAuth) Start(server *smtp.ServerInfo) (string, []byte, error) {
	if !server.TLS && !isLocalhost(server.Name) {
		return "", nil, errors.New("unencrypted connection")
	}
	if server.Name != a.host {
		return "", nil, errors.New("wrong host name")
	}
	return "LOGIN", nil, nil
}

func (a *loginAuth) Next(fromServer []byte, more bool) ([]byte, error) {
	if !more {
		return nil, nil
	}
	switch strings.ToLower(strings.TrimSuffix(string(fromServer), ":")) {
	case "username":
		return []byte(a.username), nil
	case "password":
		return []byte(a.password), nil
	default:
		return nil, fmt.Errorf("unexpected LOGIN challenge %q", fromServer)
	}
}

func isLocalhost(name string) bool {
	return name == "localhost" || name == "127.0.0.1" || name == "::1"
}
