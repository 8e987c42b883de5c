// Package match contains the one-shot CLI matching command.
package match

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"rsouza/manifest-match/cmd/root"
	"rsouza/manifest-match/internal/basestore"
	"rsouza/manifest-match/internal/manifest"
	"rsouza/manifest-match/internal/matcher"
)

var (
	inputFile  string
	outputFile string
)

// Cmd checks one daily manifest against the historical base without
// starting the server.
var Cmd = &cobra.Command{
	Use:   "match",
	Short: "Match a daily manifest file against the historical base",
	Run:   matchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Daily manifest file (required)")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Optional CSV file for the repeated records")
	if err := Cmd.MarkFlagRequired("input"); err != nil {
		panic(err)
	}
}

// matchRow is the CSV output shape for one repeated record.
type matchRow struct {
	Sender           string `csv:"Sender"`
	OriginAddress    string `csv:"OriginAddress"`
	OriginPostalCode string `csv:"OriginPostalCode"`
	Key              string `csv:"key"`
}

func matchFunc(cmd *cobra.Command, args []string) {
	cfg := root.Config()
	logger := root.Logger()

	rules, err := manifest.LoadRules(cfg.Data.ColumnRules)
	if err != nil {
		root.Log.Fatalf("Failed to load column rules: %v", err)
	}
	parser := manifest.NewParser(logger, rules)

	daily, err := parser.ParseFile(inputFile)
	if err != nil {
		root.Log.Fatalf("Failed to parse daily manifest: %v", err)
	}

	base := basestore.New(cfg.BaseSourcePath(), cfg.BaseSnapshotPath(), parser, logger)
	repeats := matcher.Match(base.Load(), daily)

	root.Log.Infof("Processed %d records, %d already exist in the historical base",
		daily.Len(), len(repeats))

	if outputFile == "" {
		return
	}
	if err := writeRepeats(repeats, outputFile); err != nil {
		root.Log.Fatalf("Failed to write output CSV: %v", err)
	}
	root.Log.Infof("Repeated records written to %s", outputFile)
}

func writeRepeats(repeats []manifest.Record, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}

	file, err := os.Create(path) // #nosec G304 -- CLI tool writes user-provided output paths
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			root.Log.Warnf("Failed to close output file: %v", err)
		}
	}()

	rows := make([]*matchRow, 0, len(repeats))
	for _, rec := range repeats {
		rows = append(rows, &matchRow{
			Sender:           rec.Sender,
			OriginAddress:    rec.OriginAddress,
			OriginPostalCode: rec.OriginPostalCode,
			Key:              rec.Key,
		})
	}

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("error writing CSV: %w", err)
	}
	return nil
}
