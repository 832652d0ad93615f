package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dometto/rubycron/config"
	"github.com/dometto/rubycron/internal/domain/model"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rubycron",
		Short: "Run a command as a reported cron job",
		Long: `rubycron runs a command as a cron job. Lines the command prints are
collected as messages, warnings and errors; the exit-on policy decides when
the job stops early and the mail-on policy decides when a report is mailed.

Configuration is merged from a YAML or dotenv file, a remote YAML document,
RUBYCRON_* environment variables and command-line flags, in that order.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newCheckCmd())
	return root
}

// jobFlags holds the inline overrides shared by run and check.
type jobFlags struct {
	name         string
	author       string
	mailTo       []string
	mailFrom     string
	subject      string
	mailOn       string
	exitOn       string
	template     string
	configFile   string
	configURL    string
	configSelect string
	debug        bool
	verbose      bool
	logFile      string

	smtpAddress  string
	smtpPort     int
	smtpDomain   string
	smtpUser     string
	smtpPassword string
	smtpAuth     string
	smtpStartTLS bool
}

func (f *jobFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.name, "name", "", "job name")
	fs.StringVar(&f.author, "author", "", "job author")
	fs.StringSliceVar(&f.mailTo, "mailto", nil, "report recipients (repeatable or comma separated)")
	fs.StringVar(&f.mailFrom, "mailfrom", "", "report sender (default "+config.DefaultMailFrom+")")
	fs.StringVar(&f.subject, "subject", "", "report subject")
	fs.StringVar(&f.mailOn, "mail-on", "", "when to mail a report: none, warning, error or all (default all)")
	fs.StringVar(&f.exitOn, "exit-on", "", "when to stop the job: none, warning, error or all (default all)")
	fs.StringVar(&f.template, "template", "", "report template path (default "+config.DefaultTemplate+")")
	fs.StringVar(&f.configFile, "config", "", "YAML or .env configuration file")
	fs.StringVar(&f.configURL, "config-url", "", "URL of a YAML configuration document")
	fs.StringVar(&f.configSelect, "config-select", "", "JMESPath expression selecting the job within the configuration document")
	fs.BoolVar(&f.debug, "debug", false, "print the run trace and never send mail")
	fs.BoolVar(&f.verbose, "verbose", false, "print the run trace")
	fs.StringVar(&f.logFile, "logfile", "", "append the run trace to this file")

	fs.StringVar(&f.smtpAddress, "smtp-address", "", "SMTP relay host")
	fs.IntVar(&f.smtpPort, "smtp-port", 0, "SMTP relay port")
	fs.StringVar(&f.smtpDomain, "smtp-domain", "", "HELO domain")
	fs.StringVar(&f.smtpUser, "smtp-user", "", "SMTP user name")
	fs.StringVar(&f.smtpPassword, "smtp-password", "", "SMTP password")
	fs.StringVar(&f.smtpAuth, "smtp-auth", "", "SMTP authentication: plain, login or cram_md5")
	fs.BoolVar(&f.smtpStartTLS, "smtp-starttls", false, "upgrade the SMTP session with STARTTLS when offered")
}

// toConfig converts the flags into inline overrides.
func (f *jobFlags) toConfig() (config.JobConfig, error) {
	mailOn, err := parsePolicy("mail-on", f.mailOn)
	if err != nil {
		return config.JobConfig{}, err
	}
	exitOn, err := parsePolicy("exit-on", f.exitOn)
	if err != nil {
		return config.JobConfig{}, err
	}

	cfg := config.JobConfig{
		Name:         f.name,
		Author:       f.author,
		MailFrom:     f.mailFrom,
		MailSubject:  f.subject,
		MailOn:       mailOn,
		ExitOn:       exitOn,
		Template:     f.template,
		Debug:        f.debug,
		Verbose:      f.verbose,
		LogFile:      f.logFile,
		ConfigFile:   f.configFile,
		ConfigURL:    f.configURL,
		ConfigSelect: f.configSelect,
	}
	for _, addr := range f.mailTo {
		if addr = strings.TrimSpace(addr); addr != "" {
			cfg.MailTo = append(cfg.MailTo, addr)
		}
	}

	smtp := &config.TransportSettings{
		Address:            f.smtpAddress,
		Port:               f.smtpPort,
		Domain:             f.smtpDomain,
		UserName:           f.smtpUser,
		Password:           f.smtpPassword,
		Authentication:     f.smtpAuth,
		EnableStartTLSAuto: f.smtpStartTLS,
	}
	if !smtp.IsZero() {
		cfg.SMTP = smtp
	}
	return cfg, nil
}

func parsePolicy(flag, raw string) (model.Policy, error) {
	if raw == "" {
		return "", nil
	}
	var p model.Policy
	_ = p.UnmarshalText([]byte(raw))
	if !p.Valid() {
		return "", fmt.Errorf("invalid --%s %q: want none, warning, error or all", flag, raw)
	}
	return p, nil
}
