// Package primary defines the primary ports (driving side) of the application.
// CLI commands and the interactive shell call into these interfaces.
package primary

import "context"

// RenameService defines the primary port for batch rename operations.
type RenameService interface {
	// Preview computes the proposed names for every file in the directory.
	Preview(ctx context.Context, req RenameRequest) (*PreviewResponse, error)

	// Apply recomputes, validates and applies a rename batch.
	Apply(ctx context.Context, req RenameRequest) (*ApplyResponse, error)

	// Undo reverses the most recent apply or redo.
	Undo(ctx context.Context) (*ApplyResponse, error)

	// Redo re-applies the most recently undone batch.
	Redo(ctx context.Context) (*ApplyResponse, error)

	// ListFiles returns the regular files of a directory, sorted
	// case-insensitively.
	ListFiles(ctx context.Context, directory string) ([]string, error)

	// Keywords returns the placeholder syntax hints for auto-suggest.
	Keywords() []string

	// HistoryDepth returns the sizes of the undo and redo stacks.
	HistoryDepth() (undo, redo int)

	// Journal returns the most recent journaled batches, newest first.
	Journal(ctx context.Context, limit int) ([]*JournalBatch, error)
}

// RenameRequest contains the inputs of one batch.
type RenameRequest struct {
	Directory       string
	Pattern         string
	Replacement     string
	MaxReplacements int    // 0 = unlimited
	UseRegex        bool
	CaseSensitive   bool
	ApplyTo         string // name, ext, both
}

// RenamePair is one original -> proposed mapping at the port boundary.
type RenamePair struct {
	Original string
	Proposed string
}

// Changed reports whether the pair renames anything.
func (p RenamePair) Changed() bool {
	return p.Original != p.Proposed
}

// FileFailure is a file left out of a preview, with the reason.
type FileFailure struct {
	File string
	Err  error
}

// SkippedPair is a pair that could not be renamed while applying.
type SkippedPair struct {
	Pair RenamePair
	Err  error
}

// PreviewResponse contains the computed batch.
type PreviewResponse struct {
	Directory string
	Pairs     []RenamePair
	Failures  []FileFailure
	Changes   int
}

// ApplyResponse contains the outcome of an apply, undo or redo.
type ApplyResponse struct {
	Kind      string // apply, undo, redo
	Directory string
	Renamed   []RenamePair
	Skipped   []SkippedPair
	BatchID   string // journal batch ID, empty when journaling is off
}

// JournalBatch represents a journaled batch at the port boundary.
type JournalBatch struct {
	ID          string
	SessionID   string
	Kind        string
	Directory   string
	Pattern     string
	Replacement string
	CreatedAt   string
	Entries     []*JournalEntry
}

// JournalEntry represents one journaled pair.
type JournalEntry struct {
	Original string
	Proposed string
	Status   string // renamed, skipped
	Reason   string
}
