// Package serve contains the HTTP server command.
package serve

import (
	"github.com/spf13/cobra"

	"rsouza/manifest-match/cmd/root"
	"rsouza/manifest-match/internal/basestore"
	"rsouza/manifest-match/internal/manifest"
	"rsouza/manifest-match/internal/server"
)

// Cmd runs the upload/report HTTP server.
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the manifest upload and report HTTP server",
	Run:   serveFunc,
}

func serveFunc(cmd *cobra.Command, args []string) {
	cfg := root.Config()
	logger := root.Logger()

	rules, err := manifest.LoadRules(cfg.Data.ColumnRules)
	if err != nil {
		root.Log.Fatalf("Failed to load column rules: %v", err)
	}
	parser := manifest.NewParser(logger, rules)

	base := basestore.New(cfg.BaseSourcePath(), cfg.BaseSnapshotPath(), parser, logger)
	srv := server.New(cfg, base, parser, logger)

	if err := srv.Run(); err != nil {
		root.Log.Fatalf("Server stopped: %v", err)
	}
}
