package config

import (
	"github.com/dometto/rubycron/internal/domain/model"
)

const (
	// DefaultMailFrom is the sender used when none is configured.
	DefaultMailFrom = "root@localhost"
	// DefaultTemplate refers to the report template embedded in the binary.
	DefaultTemplate = "builtin:report"
	// EnvPrefix namespaces every environment variable read by the harness.
	EnvPrefix = "RUBYCRON_"
)

// JobConfig is the configuration of one job run.
//
// The same struct serves as inline overrides, as the decoded form of file and
// URL sources, and as the resolved result. Fields are read from YAML sources
// through the yaml tags and from the environment (or dotenv files) through the
// github.com/caarlos0/env tags, using the RUBYCRON_ prefix.
type JobConfig struct {
	Name        string             `yaml:"name,omitempty"         env:"NAME"`
	Author      string             `yaml:"author,omitempty"       env:"AUTHOR"`
	MailTo      AddressList        `yaml:"mailto,omitempty"       env:"MAILTO"       envSeparator:","`
	MailFrom    string             `yaml:"mailfrom,omitempty"     env:"MAILFROM"`
	MailSubject string             `yaml:"mailsubject,omitempty"  env:"MAILSUBJECT"`
	MailOn      model.Policy       `yaml:"mailon,omitempty"       env:"MAILON"`
	ExitOn      model.Policy       `yaml:"exiton,omitempty"       env:"EXITON"`
	Template    string             `yaml:"template,omitempty"     env:"TEMPLATE"`
	SMTP        *TransportSettings `yaml:"smtpsettings,omitempty"                                         envPrefix:"SMTP_"`
	Debug       bool               `yaml:"debug,omitempty"        env:"DEBUG"`
	Verbose     bool               `yaml:"verbose,omitempty"      env:"VERBOSE"`
	LogFile     string             `yaml:"logfile,omitempty"      env:"LOGFILE"`

	// ConfigFile names a YAML or dotenv file to load before applying overrides.
	ConfigFile string `yaml:"configfile,omitempty" env:"CONFIGFILE"`
	// ConfigURL names a remote YAML document loaded after ConfigFile.
	ConfigURL string `yaml:"configurl,omitempty" env:"CONFIGURL"`
	// ConfigSelect is a JMESPath expression picking the job's mapping out of a
	// larger file or URL document.
	ConfigSelect string `yaml:"configselect,omitempty" env:"CONFIGSELECT"`
}

// Merge returns a copy of c with every non-empty field of over applied on top.
// Empty values never blank out a field that is already set, so boolean flags
// can be switched on by any source but not switched off again.
func (c JobConfig) Merge(over JobConfig) JobConfig {
	out := c.Clone()
	mergeString(&out.Name, over.Name)
	mergeString(&out.Author, over.Author)
	if len(over.MailTo) > 0 {
		out.MailTo = append(AddressList(nil), over.MailTo...)
	}
	mergeString(&out.MailFrom, over.MailFrom)
	mergeString(&out.MailSubject, over.MailSubject)
	if over.MailOn != "" {
		out.MailOn = over.MailOn
	}
	if over.ExitOn != "" {
		out.ExitOn = over.ExitOn
	}
	mergeString(&out.Template, over.Template)
	if over.SMTP != nil {
		smtp := *over.SMTP
		out.SMTP = &smtp
	}
	out.Debug = out.Debug || over.Debug
	out.Verbose = out.Verbose || over.Verbose
	mergeString(&out.LogFile, over.LogFile)
	mergeString(&out.ConfigFile, over.ConfigFile)
	mergeString(&out.ConfigURL, over.ConfigURL)
	mergeString(&out.ConfigSelect, over.ConfigSelect)
	return out
}

// Clone returns a deep copy of c. The copy shares no recipients or transport
// settings with the receiver.
func (c JobConfig) Clone() JobConfig {
	if c.MailTo != nil {
		c.MailTo = append(AddressList{}, c.MailTo...)
	}
	if c.SMTP != nil {
		smtp := *c.SMTP
		c.SMTP = &smtp
	}
	return c
}

func mergeString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// ApplyDefaults fills unset fields and normalises both policies.
// Debug mode forces mail-on to none and turns verbose output on.
func (c *JobConfig) ApplyDefaults() {
	if c.MailFrom == "" {
		c.MailFrom = DefaultMailFrom
	}
	if c.Template == "" {
		c.Template = DefaultTemplate
	}
	c.MailOn = c.MailOn.OrDefault()
	c.ExitOn = c.ExitOn.OrDefault()

	if c.Debug {
		c.MailOn = model.PolicyNone
		c.Verbose = true
	}
}

// Echo reports whether run traces should be written to the output sink.
func (c *JobConfig) Echo() bool {
	return c.Verbose || c.LogFile != ""
}

// Redacted returns a copy safe for printing, with transport credentials masked.
func (c JobConfig) Redacted() JobConfig {
	c = c.Clone()
	if c.SMTP != nil && c.SMTP.Password != "" {
		c.SMTP.Password = "********"
	}
	return c
}
