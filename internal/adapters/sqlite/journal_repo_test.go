package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/renux/internal/adapters/sqlite"
	"github.com/example/renux/internal/ports/secondary"
)

func newBatch(id, session, kind string, entries ...*secondary.JournalEntryRecord) *secondary.JournalBatchRecord {
	return &secondary.JournalBatchRecord{
		ID:          id,
		SessionID:   session,
		Kind:        kind,
		Directory:   "/tmp/photos",
		Pattern:     "IMG",
		Replacement: "photo",
		Entries:     entries,
	}
}

func TestJournalRepository_RecordAndListEntries(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewJournalRepository(db)
	ctx := context.Background()

	batch := newBatch("batch-1", "session-1", "apply",
		&secondary.JournalEntryRecord{Original: "IMG_1.jpg", Proposed: "photo_1.jpg", Status: "renamed"},
		&secondary.JournalEntryRecord{Original: "IMG_2.jpg", Proposed: "photo_2.jpg", Status: "skipped", Reason: "target exists"},
	)

	require.NoError(t, repo.RecordBatch(ctx, batch))
	assert.NotZero(t, batch.Entries[0].ID)
	assert.Equal(t, "batch-1", batch.Entries[1].BatchID)

	entries, err := repo.ListEntries(ctx, "batch-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, 0, entries[0].Seq)
	assert.Equal(t, "IMG_1.jpg", entries[0].Original)
	assert.Equal(t, "photo_1.jpg", entries[0].Proposed)
	assert.Equal(t, "renamed", entries[0].Status)
	assert.Empty(t, entries[0].Reason)

	assert.Equal(t, 1, entries[1].Seq)
	assert.Equal(t, "skipped", entries[1].Status)
	assert.Equal(t, "target exists", entries[1].Reason)
}

func TestJournalRepository_ListBatches(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewJournalRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.RecordBatch(ctx, newBatch("batch-1", "session-1", "apply")))
	require.NoError(t, repo.RecordBatch(ctx, newBatch("batch-2", "session-1", "undo")))
	require.NoError(t, repo.RecordBatch(ctx, newBatch("batch-3", "session-2", "apply")))

	t.Run("newest first", func(t *testing.T) {
		batches, err := repo.ListBatches(ctx, secondary.JournalFilters{})
		require.NoError(t, err)
		require.Len(t, batches, 3)
		assert.Equal(t, "batch-3", batches[0].ID)
		assert.Equal(t, "batch-1", batches[2].ID)
		assert.NotEmpty(t, batches[0].CreatedAt)
		assert.Equal(t, "IMG", batches[0].Pattern)
	})

	t.Run("limit", func(t *testing.T) {
		batches, err := repo.ListBatches(ctx, secondary.JournalFilters{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, batches, 2)
	})

	t.Run("by session", func(t *testing.T) {
		batches, err := repo.ListBatches(ctx, secondary.JournalFilters{SessionID: "session-1"})
		require.NoError(t, err)
		require.Len(t, batches, 2)
		assert.Equal(t, "undo", batches[0].Kind)
	})
}

func TestJournalRepository_NullableColumns(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewJournalRepository(db)
	ctx := context.Background()

	batch := newBatch("batch-undo", "session-1", "undo")
	batch.Pattern = ""
	batch.Replacement = ""
	require.NoError(t, repo.RecordBatch(ctx, batch))

	var patternIsNull bool
	err := db.QueryRow("SELECT pattern IS NULL FROM journal_batches WHERE id = ?", "batch-undo").Scan(&patternIsNull)
	require.NoError(t, err)
	assert.True(t, patternIsNull)

	batches, err := repo.ListBatches(ctx, secondary.JournalFilters{})
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Empty(t, batches[0].Pattern)
}

func TestJournalRepository_RejectsUnknownKind(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewJournalRepository(db)

	err := repo.RecordBatch(context.Background(), newBatch("batch-x", "session-1", "delete"))
	assert.Error(t, err)

	entries, err := repo.ListEntries(context.Background(), "batch-x")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestJournalRepository_RollsBackOnBadEntry(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewJournalRepository(db)
	ctx := context.Background()

	batch := newBatch("batch-bad", "session-1", "apply",
		&secondary.JournalEntryRecord{Original: "a", Proposed: "b", Status: "renamed"},
		&secondary.JournalEntryRecord{Original: "c", Proposed: "d", Status: "exploded"},
	)
	require.Error(t, repo.RecordBatch(ctx, batch))

	batches, err := repo.ListBatches(ctx, secondary.JournalFilters{})
	require.NoError(t, err)
	assert.Empty(t, batches)
}
