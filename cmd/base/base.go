// Package base contains commands for inspecting and rebuilding the
// historical base.
package base

import (
	"github.com/spf13/cobra"

	"rsouza/manifest-match/cmd/root"
	"rsouza/manifest-match/internal/basestore"
	"rsouza/manifest-match/internal/manifest"
)

// Cmd groups base table maintenance commands.
var Cmd = &cobra.Command{
	Use:   "base",
	Short: "Inspect or rebuild the historical base table",
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Re-parse the raw base source and rewrite the snapshot",
	Run:   rebuildFunc,
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show where the base is loaded from and how many records it holds",
	Run:   infoFunc,
}

func init() {
	Cmd.AddCommand(rebuildCmd)
	Cmd.AddCommand(infoCmd)
}

func newRepository() *basestore.Repository {
	cfg := root.Config()
	logger := root.Logger()
	parser := manifest.NewParser(logger, nil)
	return basestore.New(cfg.BaseSourcePath(), cfg.BaseSnapshotPath(), parser, logger)
}

func rebuildFunc(cmd *cobra.Command, args []string) {
	repo := newRepository()
	table, err := repo.Rebuild()
	if err != nil {
		root.Log.Fatalf("Rebuild failed: %v", err)
	}
	root.Log.Infof("Base rebuilt: %d records", table.Len())
}

func infoFunc(cmd *cobra.Command, args []string) {
	repo := newRepository()
	table := repo.Load()
	root.Log.Infof("Base (%s): %d records", repo.Describe(), table.Len())
}
