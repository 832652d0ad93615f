package model

import "strings"

// Policy is a severity threshold used by both the exit-on and mail-on settings.
//
//nolint:recvcheck // UnmarshalText needs pointer receiver, Valid needs value receiver
type Policy string

const (
	// PolicyNone never triggers.
	PolicyNone Policy = "none"
	// PolicyWarning triggers on warnings.
	PolicyWarning Policy = "warning"
	// PolicyError triggers on errors.
	PolicyError Policy = "error"
	// PolicyAll triggers on everything the policy is consulted for.
	PolicyAll Policy = "all"
)

// UnmarshalText implements encoding.TextUnmarshaler for env and YAML parsing.
// Unknown values are kept as-is so that defaults can replace them later;
// a leading colon is accepted for configs written with symbol syntax.
func (p *Policy) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	*p = Policy(strings.TrimPrefix(v, ":"))
	return nil
}

// Valid returns true if the Policy is one of the four known values.
func (p Policy) Valid() bool {
	return p == PolicyNone || p == PolicyWarning || p == PolicyError || p == PolicyAll
}

// OrDefault returns p when valid and PolicyAll otherwise.
func (p Policy) OrDefault() Policy {
	if p.Valid() {
		return p
	}
	return PolicyAll
}
