package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_journal",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "index_journal_session",
		Up:      migrationV2,
	},
}

// RunMigrations executes all pending migrations, each in its own transaction.
func RunMigrations(db *sql.DB) error {
	if err := createVersionTable(db); err != nil {
		return err
	}

	var currentVersion int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// migrationV1 creates the batch and entry tables.
func migrationV1(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS journal_batches (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL CHECK (kind IN ('apply', 'undo', 'redo')),
			directory TEXT NOT NULL,
			pattern TEXT,
			replacement TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_journal_batches_created ON journal_batches(created_at);

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
	`)
	return err
}

// migrationV2 adds session tracking to batches.
func migrationV2(tx *sql.Tx) error {
	if _, err := tx.Exec(`ALTER TABLE journal_batches ADD COLUMN session_id TEXT NOT NULL DEFAULT ''`); err != nil {
		return err
	}
	_, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_journal_batches_session ON journal_batches(session_id)`)
	return err
}
