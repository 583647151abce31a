package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/contre95/presetcli/src/preset"
	_ "github.com/mattn/go-sqlite3"
)

// SqliteHistory is a SQLite implementation of preset.History.
type SqliteHistory struct {
	db *sql.DB
}

// NewSqliteHistory opens (or creates) the history database at path.
func NewSqliteHistory(path string) (*SqliteHistory, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SqliteHistory{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS imports (
			id TEXT PRIMARY KEY,
			provider TEXT NOT NULL,
			preset_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			author TEXT,
			synth TEXT NOT NULL,
			path TEXT NOT NULL,
			imported_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_imports_imported_at ON imports(imported_at);
	`)
	return err
}

// Record stores one import. The timestamp is kept as Unix nanoseconds so rows
// order by the instant, not by its text form.
func (d *SqliteHistory) Record(ctx context.Context, record preset.ImportRecord) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO imports (id, provider, preset_id, name, author, synth, path, imported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, record.ID, record.Provider.Name(), record.PresetID, record.Name, record.Author,
		record.Synth.String(), record.Path, record.ImportedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to record import: %w", err)
	}
	return nil
}

// List returns up to limit records, newest first. A limit <= 0 returns everything.
func (d *SqliteHistory) List(ctx context.Context, limit int) ([]preset.ImportRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, provider, preset_id, name, author, synth, path, imported_at
		FROM imports
		ORDER BY imported_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []preset.ImportRecord{}
	for rows.Next() {
		var record preset.ImportRecord
		var providerName, synthName string
		var importedAt int64
		var author sql.NullString
		if err := rows.Scan(&record.ID, &providerName, &record.PresetID, &record.Name, &author,
			&synthName, &record.Path, &importedAt); err != nil {
			return nil, err
		}
		record.Author = author.String

		if record.Provider, err = preset.ParseProvider(providerName); err != nil {
			slog.Warn("Skipping history row with unknown provider", "id", record.ID, "provider", providerName)
			continue
		}
		if record.Synth, err = preset.ParseSynth(synthName); err != nil {
			slog.Warn("Skipping history row with unknown synth", "id", record.ID, "synth", synthName)
			continue
		}
		record.ImportedAt = time.Unix(0, importedAt).UTC()
		records = append(records, record)
	}
	return records, rows.Err()
}

// Close closes the database connection.
func (d *SqliteHistory) Close() error {
	return d.db.Close()
}
