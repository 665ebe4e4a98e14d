package secondary

import "context"

// JournalRepository defines the secondary port for the rename audit journal.
type JournalRepository interface {
	// RecordBatch persists a batch and its entries in one transaction.
	RecordBatch(ctx context.Context, batch *JournalBatchRecord) error

	// ListBatches retrieves batches, newest first, without entries.
	ListBatches(ctx context.Context, filters JournalFilters) ([]*JournalBatchRecord, error)

	// ListEntries retrieves the entries of one batch in apply order.
	ListEntries(ctx context.Context, batchID string) ([]*JournalEntryRecord, error)
}

// JournalBatchRecord represents one applied batch as stored in persistence.
type JournalBatchRecord struct {
	ID          string
	SessionID   string
	Kind        string // apply, undo, redo
	Directory   string
	Pattern     string // Empty string means null (undo/redo)
	Replacement string // Empty string means null (undo/redo)
	CreatedAt   string
	Entries     []*JournalEntryRecord
}

// JournalEntryRecord represents one pair of a journaled batch.
type JournalEntryRecord struct {
	ID       int64
	BatchID  string
	Seq      int
	Original string
	Proposed string
	Status   string // renamed, skipped
	Reason   string // Empty string means null
}

// JournalFilters contains filter options for querying batches.
type JournalFilters struct {
	SessionID string
	Directory string
	Limit     int
}
