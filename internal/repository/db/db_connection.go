package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// InitDB opens/creates a SQLite DB file and ensures tables exist.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// SQLite serialises writers anyway
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const sqliteDriverName = "sqlite"

const schemaCleanerState = `
CREATE TABLE IF NOT EXISTS cleaner_state (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    is_on BOOLEAN NOT NULL,
    is_active BOOLEAN NOT NULL,
    cleaning_started_at TIMESTAMP,
    last_cleaned_at TIMESTAMP,
    updated_at TIMESTAMP NOT NULL
);
`

const schemaCleanerEvents = `
CREATE TABLE IF NOT EXISTS cleaner_events (
    id TEXT PRIMARY KEY,
    occurred_at TIMESTAMP NOT NULL,
    type TEXT NOT NULL,
    message TEXT NOT NULL,
    meta TEXT
);
CREATE INDEX IF NOT EXISTS idx_cleaner_events_occurred_at ON cleaner_events (occurred_at);
`

const schemaBatches = `
CREATE TABLE IF NOT EXISTS batches (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    name_fold TEXT NOT NULL DEFAULT '',
    batch_date TEXT NOT NULL,
    damage_count INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL
);
`

const schemaBatchImages = `
CREATE TABLE IF NOT EXISTS batch_images (
    id TEXT PRIMARY KEY,
    batch_id TEXT NOT NULL REFERENCES batches(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    url TEXT NOT NULL,
    damage_count INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_batch_images_batch ON batch_images (batch_id, position);
`

const schemaSchedule = `
CREATE TABLE IF NOT EXISTS schedule (
    position INTEGER PRIMARY KEY,
    day TEXT NOT NULL,
    time TEXT NOT NULL
);
`

const schemaUsers = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL
);
`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaCleanerState,
		schemaCleanerEvents,
		schemaBatches,
		schemaBatchImages,
		schemaSchedule,
		schemaUsers,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := ensureNameFold(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}

// ensureNameFold adds batches.name_fold to databases created before it existed
// and fills it for rows that still have it empty. SQLite's LOWER() only folds
// ASCII, so the folded name is computed in Go.
func ensureNameFold(tx *sql.Tx) error {
	var n int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM pragma_table_info('batches') WHERE name = 'name_fold'`).Scan(&n); err != nil {
		return fmt.Errorf("inspect batches columns: %w", err)
	}
	if n == 0 {
		if _, err := tx.Exec(`ALTER TABLE batches ADD COLUMN name_fold TEXT NOT NULL DEFAULT ''`); err != nil {
			return fmt.Errorf("add batches.name_fold: %w", err)
		}
	}

	rows, err := tx.Query(`SELECT id, name FROM batches WHERE name_fold = '' AND name <> ''`)
	if err != nil {
		return fmt.Errorf("select unfolded batches: %w", err)
	}
	folded := map[string]string{}
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			_ = rows.Close()
			return err
		}
		folded[id] = strings.ToLower(name)
	}
	if err := rows.Close(); err != nil {
		return err
	}

	for id, fold := range folded {
		if _, err := tx.Exec(`UPDATE batches SET name_fold = ? WHERE id = ?`, fold, id); err != nil {
			return fmt.Errorf("fill name_fold for batch %q: %w", id, err)
		}
	}
	return nil
}
