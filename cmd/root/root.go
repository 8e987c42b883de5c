// Package root contains the root command for the application
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"rsouza/manifest-match/internal/config"
	"rsouza/manifest-match/internal/logging"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "manifest-match",
		Short: "Check daily shipment manifests against the historical sender/address base.",
		Long: `manifest-match parses loosely tabular shipment manifest exports,
normalizes sender/address/postal-code records and flags the ones that
already exist in the historical base.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to manifest-match!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			var err error
			cfg, err = config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to initialize configuration: %v", err)
			}

			Log = config.ConfigureLoggingFromConfig(cfg)
			logging.SetDefaultLogger(logging.NewLogrusAdapterFromLogger(Log))
		},
	}
)

// Config returns the configuration loaded by the persistent pre-run hook.
func Config() *config.Config {
	return cfg
}

// Logger returns the shared logger wrapped in the logging interface.
func Logger() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}
