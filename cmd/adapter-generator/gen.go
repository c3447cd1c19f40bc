package main

import (
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"

	"adapter-generator/internal/config"
	"adapter-generator/internal/gen"
)

// errReported marks failures already rendered to the user.
var errReported = errors.New("adapter generation failed")

func newGenCmd(g *globals) *cobra.Command {
	var (
		configPath string
		outputDir  string
		debugDir   string
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate the adapters listed in a configuration file",
		Long: `gen loads the configured packages, plans every request and writes the
generated files into the output directory. Nothing is written unless every
request can be generated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger := g.logger(cmd)
			out := newPrinter(cmd.OutOrStdout())

			p, err := loadProject(ctx, configPath, logger)
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

			files, err := p.generate(ctx, plans, debugDir)
			if err != nil {
				out.failure(err)
				return errReported
			}

			dir := p.outputDir()
			if outputDir != "" {
				dir = outputDir
			}
			if err := gen.WriteFiles(files, dir); err != nil {
				out.failure(err)
				return errReported
			}

			for _, f := range files {
				out.ok("wrote %s", filepath.Join(dir, f.Filename))
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultFilename, "configuration file")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "write into this directory instead of output.dir")
	cmd.Flags().StringVar(&debugDir, "debug-dir", "", "directory receiving sources that fail to format")

	return cmd
}
