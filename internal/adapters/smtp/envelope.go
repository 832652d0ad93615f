package smtp

import "github.com/emersion/go-message/mail"

// envelopeAddress extracts the bare address used in MAIL FROM and RCPT TO.
func envelopeAddress(raw string) string {
	if addr, err := mail.ParseAddress(raw); err == nil {
		return addr.Address
	}
	return raw
}
