package main

import (
	"log/slog"

	"github.com/phanxgames/touchtree/internal/config"
	"github.com/phanxgames/touchtree/internal/logging"
	"github.com/spf13/cobra"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: logging.NewNop()}
	var logLevel, logFormat string

	rootCmd := &cobra.Command{
		Use:           "touchtree",
		Short:         "Resolve pointer hit chains for node trees",
		Long:          `touchtree loads node trees from YAML and reports which nodes a pointer at a given point reaches, honoring each node's pointer-events mode.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if cmd.Flags().Changed("log-format") {
				cfg.LogFormat = logFormat
			}
			logger, err := logging.New(logging.Options{
				Level:  cfg.LogLevel,
				Format: cfg.LogFormat,
				Output: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")

	rootCmd.AddCommand(
		newProbeCmd(a),
		newScriptCmd(a),
		newViewCmd(a),
		newAssetCmd(a),
	)
	return rootCmd
}
