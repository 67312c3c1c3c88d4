package db

import (
	"database/sql"
	"fmt"
)

// All contains the ordered list of migrations to apply.
var All = []string{
	`CREATE TABLE documents (
		id          TEXT PRIMARY KEY,
		source      TEXT NOT NULL,
		version     TEXT NOT NULL DEFAULT '',
		date        TEXT NOT NULL DEFAULT '',
		time        TEXT NOT NULL DEFAULT '',
		origin      TEXT NOT NULL DEFAULT '',
		user_name   TEXT NOT NULL DEFAULT '',
		imported_at DATETIME NOT NULL DEFAULT (datetime('now'))
	)`,
	`CREATE TABLE xtables (
		id          INTEGER PRIMARY KEY,
		document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
		position    INTEGER NOT NULL,
		name        TEXT NOT NULL DEFAULT '',
		title       TEXT NOT NULL,
		data_rows   INTEGER NOT NULL,
		UNIQUE (document_id, position)
	)`,
	`CREATE TABLE labels (
		id       INTEGER PRIMARY KEY,
		table_id INTEGER NOT NULL REFERENCES xtables(id) ON DELETE CASCADE,
		axis     TEXT NOT NULL CHECK (axis IN ('r', 'c')),
		position INTEGER NOT NULL,
		label    TEXT NOT NULL,
		code     TEXT NOT NULL DEFAULT '',
		summary  INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE statistics (
		id       INTEGER PRIMARY KEY,
		table_id INTEGER NOT NULL REFERENCES xtables(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		type     TEXT NOT NULL
	)`,
	`CREATE TABLE controls (
		id          INTEGER PRIMARY KEY,
		document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
		table_id    INTEGER REFERENCES xtables(id) ON DELETE CASCADE,
		kind        TEXT NOT NULL,
		value       TEXT NOT NULL
	)`,
	`CREATE TABLE cells (
		statistic_id INTEGER NOT NULL REFERENCES statistics(id) ON DELETE CASCADE,
		row_index    INTEGER NOT NULL,
		column_index INTEGER NOT NULL,
		value        TEXT,
		PRIMARY KEY (statistic_id, row_index, column_index)
	)`,
}

// Migrate applies every migration in All that the database has not seen yet,
// each in its own transaction.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`)
	if err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM schema_version`).Scan(&count); err != nil {
		return fmt.Errorf("checking schema_version: %w", err)
	}
	if count == 0 {
		if _, err := db.Exec(`INSERT INTO schema_version (version) VALUES (0)`); err != nil {
			return fmt.Errorf("initializing schema version: %w", err)
		}
	}

	var current int
	if err := db.QueryRow(`SELECT version FROM schema_version`).Scan(&current); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for i := current; i < len(All); i++ {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration %d: %w", i+1, err)
		}

		if _, err := tx.Exec(All[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}

		if _, err := tx.Exec(`UPDATE schema_version SET version = ?`, i+1); err != nil {
			tx.Rollback()
			return fmt.Errorf("updating schema version to %d: %w", i+1, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", i+1, err)
		}
	}

	return nil
}
