// Package basestore loads and caches the historical base table.
//
// The base is parsed once per process: from a structured CSV snapshot when a
// valid one exists, otherwise rebuilt from the raw source manifest and the
// snapshot rewritten. When neither input exists the base degrades to an
// empty table so uploads keep working and simply report zero repeats.
package basestore

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/gocarina/gocsv"

	"rsouza/manifest-match/internal/logging"
	"rsouza/manifest-match/internal/manifest"
)

// snapshotRow is the persisted shape of one base record: the canonical
// columns plus the derived key.
type snapshotRow struct {
	Sender             string `csv:"Sender"`
	OriginAddress      string `csv:"OriginAddress"`
	OriginPostalCode   string `csv:"OriginPostalCode"`
	DestinationAddress string `csv:"DestinationAddress"`
	Destinee           string `csv:"Destinee"`
	Key                string `csv:"key"`
}

// Repository owns the process-wide base table. First load is guarded so
// concurrent requests cannot trigger duplicate rebuilds or partial snapshot
// writes; after that the table is read-only.
type Repository struct {
	sourcePath   string
	snapshotPath string
	parser       *manifest.Parser
	logger       logging.Logger

	once  sync.Once
	table *manifest.Table
}

// New creates a Repository reading the raw base from sourcePath and caching
// the structured form at snapshotPath.
func New(sourcePath, snapshotPath string, parser *manifest.Parser, logger logging.Logger) *Repository {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if parser == nil {
		parser = manifest.NewParser(logger, nil)
	}
	return &Repository{
		sourcePath:   sourcePath,
		snapshotPath: snapshotPath,
		parser:       parser,
		logger:       logger,
	}
}

// Load returns the base table, building it on first call. It never fails:
// every missing or broken input degrades to the next strategy, ending at an
// empty table.
func (r *Repository) Load() *manifest.Table {
	r.once.Do(func() {
		r.table = r.build()
	})
	return r.table
}

// Rebuild bypasses the snapshot, re-parses the raw source and rewrites the
// snapshot. It returns the rebuilt table. Intended for the CLI; it must not
// race Load in a running server.
func (r *Repository) Rebuild() (*manifest.Table, error) {
	if _, err := os.Stat(r.sourcePath); err != nil {
		return nil, fmt.Errorf("base source file not available: %w", err)
	}
	table := r.rebuildFromSource()
	r.once.Do(func() {})
	r.table = table
	return table, nil
}

func (r *Repository) build() *manifest.Table {
	if table := r.loadSnapshot(); table != nil {
		r.logger.Info("Loaded base table from snapshot",
			logging.Field{Key: logging.FieldFile, Value: r.snapshotPath},
			logging.Field{Key: logging.FieldCount, Value: table.Len()})
		return table
	}

	if _, err := os.Stat(r.sourcePath); err != nil {
		r.logger.Warn("Base source file not found, starting with an empty base; all uploads will report zero repeats",
			logging.Field{Key: logging.FieldFile, Value: r.sourcePath})
		return emptyTable()
	}

	return r.rebuildFromSource()
}

// loadSnapshot returns nil when the snapshot is absent, unreadable or lacks
// the key column; the caller then falls back to the raw source.
func (r *Repository) loadSnapshot() *manifest.Table {
	file, err := os.Open(r.snapshotPath) // #nosec G304 -- path comes from operator config
	if err != nil {
		if !os.IsNotExist(err) {
			r.logger.WithError(err).Warn("Failed to open base snapshot")
		}
		return nil
	}
	defer func() {
		if err := file.Close(); err != nil {
			r.logger.WithError(err).Warn("Failed to close base snapshot")
		}
	}()

	header, err := csv.NewReader(file).Read()
	if err != nil {
		r.logger.WithError(err).Warn("Base snapshot unreadable, rebuilding from source")
		return nil
	}
	if !slices.Contains(header, manifest.ColKey) {
		r.logger.Warn("Base snapshot lacks the key column, rebuilding from source",
			logging.Field{Key: logging.FieldFile, Value: r.snapshotPath})
		return nil
	}

	if _, err := file.Seek(0, 0); err != nil {
		r.logger.WithError(err).Warn("Failed to rewind base snapshot")
		return nil
	}

	var rows []*snapshotRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		r.logger.WithError(err).Warn("Failed to parse base snapshot, rebuilding from source")
		return nil
	}

	table := emptyTable()
	for _, row := range rows {
		table.Records = append(table.Records, manifest.Record{
			Sender:             row.Sender,
			OriginAddress:      row.OriginAddress,
			OriginPostalCode:   row.OriginPostalCode,
			DestinationAddress: row.DestinationAddress,
			Destinee:           row.Destinee,
			Key:                row.Key,
		})
	}
	return table
}

func (r *Repository) rebuildFromSource() *manifest.Table {
	r.logger.Info("Rebuilding base table from raw source",
		logging.Field{Key: logging.FieldFile, Value: r.sourcePath})

	table, err := r.parser.ParseFile(r.sourcePath)
	if err != nil {
		r.logger.WithError(err).Warn("Failed to parse base source, starting with an empty base")
		return emptyTable()
	}

	// Persistence is best-effort: a failed snapshot write only costs a
	// re-parse on the next start.
	if err := r.writeSnapshot(table); err != nil {
		r.logger.WithError(err).Warn("Failed to persist base snapshot",
			logging.Field{Key: logging.FieldFile, Value: r.snapshotPath})
	} else {
		r.logger.Info("Base snapshot written",
			logging.Field{Key: logging.FieldFile, Value: r.snapshotPath},
			logging.Field{Key: logging.FieldCount, Value: table.Len()})
	}

	return table
}

func (r *Repository) writeSnapshot(table *manifest.Table) error {
	dir := filepath.Dir(r.snapshotPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("error creating snapshot directory: %w", err)
	}

	file, err := os.Create(r.snapshotPath) // #nosec G304 -- path comes from operator config
	if err != nil {
		return fmt.Errorf("error creating snapshot file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			r.logger.WithError(err).Warn("Failed to close snapshot file")
		}
	}()

	rows := make([]*snapshotRow, 0, table.Len())
	for _, rec := range table.Records {
		rows = append(rows, &snapshotRow{
			Sender:             rec.Sender,
			OriginAddress:      rec.OriginAddress,
			OriginPostalCode:   rec.OriginPostalCode,
			DestinationAddress: rec.DestinationAddress,
			Destinee:           rec.Destinee,
			Key:                rec.Key,
		})
	}

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("error writing snapshot CSV: %w", err)
	}
	return nil
}

// emptyTable returns a table carrying the guaranteed canonical columns plus
// the key column, with no records.
func emptyTable() *manifest.Table {
	return &manifest.Table{
		Columns: []string{
			manifest.ColSender,
			manifest.ColOriginAddress,
			manifest.ColOriginPostalCode,
			manifest.ColKey,
		},
	}
}

// Describe summarizes the repository inputs for operator-facing output.
func (r *Repository) Describe() string {
	return strings.Join([]string{
		"source=" + r.sourcePath,
		"snapshot=" + r.snapshotPath,
	}, " ")
}
