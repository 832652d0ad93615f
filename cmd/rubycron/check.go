package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dometto/rubycron"
)

func newCheckCmd() *cobra.Command {
	flags := &jobFlags{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Resolve and validate a job's configuration",
		Long: `Resolve the job's configuration from all sources, run the sanity check
and print the effective configuration as YAML. Passwords are masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.toConfig()
			if err != nil {
				return err
			}
			opts, closer, err := jobOptions(cmd.Context(), flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closer.Close()

			job, err := rubycron.New(cmd.Context(), cfg, opts...)
			if err != nil {
				return err
			}
			defer job.Close()

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(job.Config().Redacted()); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	flags.register(cmd)
	return cmd
}
