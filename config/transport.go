package config

import (
	"net"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AddressList holds one or more mail addresses. In YAML it may be written as
// a single (comma separated) string or as a sequence.
type AddressList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *AddressList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*l = normalizeAddresses(items)
		return nil
	}
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*l = normalizeAddresses(strings.Split(raw, ","))
	return nil
}

// String joins the addresses for use in a header.
func (l AddressList) String() string {
	return strings.Join(l, ", ")
}

func normalizeAddresses(items []string) AddressList {
	out := make(AddressList, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Authentication methods understood by the SMTP transport.
const (
	AuthPlain   = "plain"
	AuthLogin   = "login"
	AuthCRAMMD5 = "cram_md5"
)

// TransportSettings describes the SMTP relay used to deliver reports. When a
// job has no settings the local relay on localhost:25 is used.
type TransportSettings struct {
	Address            string `yaml:"address,omitempty"              env:"ADDRESS"`
	Port               int    `yaml:"port,omitempty"                 env:"PORT"`
	Domain             string `yaml:"domain,omitempty"               env:"DOMAIN"`
	UserName           string `yaml:"user_name,omitempty"            env:"USER_NAME"`
	Password           string `yaml:"password,omitempty"             env:"PASSWORD"`
	Authentication     string `yaml:"authentication,omitempty"       env:"AUTHENTICATION"`
	EnableStartTLSAuto bool   `yaml:"enable_starttls_auto,omitempty" env:"ENABLE_STARTTLS_AUTO"`

	// malformed is set when a source supplied something other than a mapping.
	malformed bool
}

type transportSettingsFields TransportSettings

// UnmarshalYAML implements yaml.Unmarshaler. A non-mapping value is recorded
// rather than rejected so the sanity check can report it.
func (t *TransportSettings) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		*t = TransportSettings{malformed: true}
		return nil
	}
	var fields transportSettingsFields
	if err := value.Decode(&fields); err != nil {
		return err
	}
	*t = TransportSettings(fields)
	return nil
}

// Structured reports whether the settings were supplied as a mapping.
func (t *TransportSettings) Structured() bool {
	return t != nil && !t.malformed
}

// IsZero reports whether no field has been set.
func (t *TransportSettings) IsZero() bool {
	return t == nil || *t == (TransportSettings{})
}

// HostPort returns the relay address in host:port form.
func (t *TransportSettings) HostPort() string {
	return net.JoinHostPort(t.Address, strconv.Itoa(t.Port))
}

// MalformedTransportSettings returns settings flagged as not being a mapping.
// Callers building configuration programmatically use it to mirror a source
// that supplied a scalar or sequence.
func MalformedTransportSettings() *TransportSettings {
	return &TransportSettings{malformed: true}
}
