package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"adapter-generator/internal/logging"
)

// globals are the persistent flags shared by every command.
type globals struct {
	verbose   bool
	logLevel  string
	logFormat string

	level slog.Level
}

func (g *globals) parse() error {
	if g.verbose {
		g.level = slog.LevelDebug
		return nil
	}

	level, err := logging.ParseLevel(g.logLevel)
	if err != nil {
		return err
	}

	g.level = level

	return nil
}

func (g *globals) logger(cmd *cobra.Command) *slog.Logger {
	return logging.New(logging.Options{
		Level:  g.level,
		Format: logging.Format(g.logFormat),
		Output: cmd.ErrOrStderr(),
	})
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:   "adapter-generator",
		Short: "Generate adapters that make types satisfy interfaces they do not implement",
		Long: `adapter-generator binds the members of a contract interface to the
members of a source type and emits an adapter type forwarding every call,
optionally through an interceptor.

Requests are read from an adapters.yaml file next to the packages they
refer to. Every problem found is reported before anything is written.`,
		Version: version(),
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return g.parse()
		},
		// Errors are rendered by the commands themselves.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{printf "adapter-generator version %s\n" .Version}}`)

	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable debug logging, including synthesized sources")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&g.logFormat, "log-format", string(logging.FormatText), "log format (text or json)")

	rootCmd.AddCommand(newGenCmd(g))
	rootCmd.AddCommand(newCheckCmd(g))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
