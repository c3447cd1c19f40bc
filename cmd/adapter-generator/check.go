package main

import (
	"github.com/spf13/cobra"

	"adapter-generator/internal/config"
)

func newCheckCmd(g *globals) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report every problem with a configuration without writing files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := newPrinter(cmd.OutOrStdout())

			p, err := loadProject(ctx, configPath, g.logger(cmd))
			if err != nil {
				out.failure(err)
				return errReported
			}

			plans, err := p.plan(ctx)
			if err != nil {
				out.failure(err)
				return errReported
			}

			out.diagnostics(warnings(plans))
			out.ok("%d adapter(s) can be generated", len(plans))

			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultFilename, "configuration file")

	return cmd
}
