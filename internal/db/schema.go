package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete schema of the rename journal.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. Tests use it
// via GetSchemaSQL() instead of hardcoding CREATE TABLE statements, so a
// repository referencing a missing column fails immediately.
//
// When adding columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- One row per apply, undo or redo
CREATE TABLE IF NOT EXISTS journal_batches (
	id TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	kind TEXT NOT NULL CHECK (kind IN ('apply', 'undo', 'redo')),
	directory TEXT NOT NULL,
	pattern TEXT,
	replacement TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_journal_batches_created ON journal_batches(created_at);
CREATE INDEX IF NOT EXISTS idx_journal_batches_session ON journal_batches(session_id);

-- One row per changed pair of a batch
CREATE TABLE IF NOT EXISTS journal_entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	batch_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	original TEXT NOT NULL,
	proposed TEXT NOT NULL,
	status TEXT NOT NULL CHECK (status IN ('renamed', 'skipped')),
	reason TEXT,
	FOREIGN KEY (batch_id) REFERENCES journal_batches(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_journal_entries_batch ON journal_entries(batch_id, seq);
`

// InitSchema creates the schema on a fresh database, or runs pending
// migrations on an existing one.
func InitSchema(db *sql.DB) error {
	var tableCount int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount > 0 {
		return RunMigrations(db)
	}

	// Fresh install - create modern schema directly and mark every
	// migration as applied.
	if _, err := db.Exec(SchemaSQL); err != nil {
		return err
	}
	if err := createVersionTable(db); err != nil {
		return err
	}
	for _, m := range migrations {
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}

func createVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	return nil
}
