// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/example/renux/internal/ports/secondary"
)

// JournalRepository implements secondary.JournalRepository with SQLite.
type JournalRepository struct {
	db *sql.DB
}

// NewJournalRepository creates a new SQLite journal repository.
func NewJournalRepository(db *sql.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// RecordBatch persists a batch and its entries in one transaction.
func (r *JournalRepository) RecordBatch(ctx context.Context, batch *secondary.JournalBatchRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin journal transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO journal_batches (id, session_id, kind, directory, pattern, replacement) VALUES (?, ?, ?, ?, ?, ?)",
		batch.ID, batch.SessionID, batch.Kind, batch.Directory, nullString(batch.Pattern), nullString(batch.Replacement),
	)
	if err != nil {
		return fmt.Errorf("failed to create journal batch: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO journal_entries (batch_id, seq, original, proposed, status, reason) VALUES (?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("failed to prepare journal entry insert: %w", err)
	}
	defer stmt.Close()

	for i, entry := range batch.Entries {
		result, err := stmt.ExecContext(ctx, batch.ID, i, entry.Original, entry.Proposed, entry.Status, nullString(entry.Reason))
		if err != nil {
			return fmt.Errorf("failed to create journal entry %d: %w", i, err)
		}
		entry.ID, _ = result.LastInsertId()
		entry.BatchID = batch.ID
		entry.Seq = i
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit journal batch: %w", err)
	}

	return nil
}

// ListBatches retrieves batches matching the filters, newest first.
func (r *JournalRepository) ListBatches(ctx context.Context, filters secondary.JournalFilters) ([]*secondary.JournalBatchRecord, error) {
	query := "SELECT id, session_id, kind, directory, pattern, replacement, created_at FROM journal_batches"

	var (
		where []string
		args  []any
	)
	if filters.SessionID != "" {
		where = append(where, "session_id = ?")
		args = append(args, filters.SessionID)
	}
	if filters.Directory != "" {
		where = append(where, "directory = ?")
		args = append(args, filters.Directory)
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, rowid DESC"
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal batches: %w", err)
	}
	defer rows.Close()

	var batches []*secondary.JournalBatchRecord
	for rows.Next() {
		var (
			pattern     sql.NullString
			replacement sql.NullString
			createdAt   time.Time
		)

		record := &secondary.JournalBatchRecord{}
		err := rows.Scan(&record.ID, &record.SessionID, &record.Kind, &record.Directory, &pattern, &replacement, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal batch: %w", err)
		}

		record.Pattern = pattern.String
		record.Replacement = replacement.String
		record.CreatedAt = createdAt.Format(time.RFC3339)

		batches = append(batches, record)
	}

	return batches, rows.Err()
}

// ListEntries retrieves the entries of one batch in apply order.
func (r *JournalRepository) ListEntries(ctx context.Context, batchID string) ([]*secondary.JournalEntryRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, batch_id, seq, original, proposed, status, reason FROM journal_entries WHERE batch_id = ? ORDER BY seq ASC",
		batchID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []*secondary.JournalEntryRecord
	for rows.Next() {
		var reason sql.NullString

		record := &secondary.JournalEntryRecord{}
		err := rows.Scan(&record.ID, &record.BatchID, &record.Seq, &record.Original, &record.Proposed, &record.Status, &reason)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		record.Reason = reason.String

		entries = append(entries, record)
	}

	return entries, rows.Err()
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// Ensure JournalRepository implements the interface
var _ secondary.JournalRepository = (*JournalRepository)(nil)
