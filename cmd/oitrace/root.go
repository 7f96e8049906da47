package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootFlags struct {
	verbose bool
	logger  *zap.Logger
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "oitrace",
		Short: "Translate GenAI span attributes to OpenInference",
		Long: `oitrace rewrites OpenTelemetry GenAI semantic convention attributes into the
OpenInference vocabulary that Arize Phoenix expects.

Examples:
  # Show what Phoenix would receive for spans dumped by stdouttrace
  oitrace translate spans.json --pretty

  # Send a small agent trace to a local Phoenix
  oitrace demo --endpoint http://localhost:6006/v1/traces --project demo`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(flags.verbose)
			if err != nil {
				return err
			}
			flags.logger = logger
			zap.ReplaceGlobals(logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if flags.logger != nil {
				_ = flags.logger.Sync()
			}
		},
	}
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")
	cmd.AddCommand(newTranslateCommand(flags), newDemoCommand(flags))
	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
