package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/example/renux/internal/core/rename"
)

// BatchApplier validates, plans and executes one batch.
type BatchApplier func(ctx context.Context, batch rename.Batch) (rename.ApplyReport, error)

// HistoryEntry is a batch that reverses one earlier apply, undo or redo.
type HistoryEntry struct {
	Batch rename.Batch
}

// HistoryManager keeps the undo and redo stacks of one session in memory.
// Not safe for concurrent use; the interactive shell serializes calls.
type HistoryManager struct {
	undo   []HistoryEntry
	redo   []HistoryEntry
	apply  BatchApplier
	logger *slog.Logger
}

// NewHistoryManager creates an empty HistoryManager applying entries through apply.
func NewHistoryManager(apply BatchApplier, logger *slog.Logger) *HistoryManager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &HistoryManager{apply: apply, logger: logger}
}

// Record pushes the inverse of the pairs actually renamed by report onto the
// undo stack. Nothing is pushed when nothing was renamed. The redo stack is
// left alone.
func (h *HistoryManager) Record(directory string, report rename.ApplyReport) {
	if len(report.Renamed) == 0 {
		return
	}
	h.undo = append(h.undo, HistoryEntry{Batch: rename.Inverse(directory, report.Renamed)})
}

// Undo pops the newest undo entry and applies it. On success the inverse of
// what it renamed goes onto the redo stack. A failed undo still consumes the
// entry.
func (h *HistoryManager) Undo(ctx context.Context) (*HistoryEntry, rename.ApplyReport, error) {
	return h.step(ctx, "undo", &h.undo, &h.redo)
}

// Redo pops the newest redo entry and applies it, pushing its inverse onto
// the undo stack. A failed redo still consumes the entry.
func (h *HistoryManager) Redo(ctx context.Context) (*HistoryEntry, rename.ApplyReport, error) {
	return h.step(ctx, "redo", &h.redo, &h.undo)
}

// Depth returns the sizes of the undo and redo stacks.
func (h *HistoryManager) Depth() (undo, redo int) {
	return len(h.undo), len(h.redo)
}

func (h *HistoryManager) step(ctx context.Context, op string, from, to *[]HistoryEntry) (*HistoryEntry, rename.ApplyReport, error) {
	guard := rename.CanUndo(rename.CanUndoContext{Op: op, Depth: len(*from)})
	if !guard.Allowed {
		return nil, rename.ApplyReport{}, guard.Error()
	}

	entry := (*from)[len(*from)-1]
	*from = (*from)[:len(*from)-1]

	report, err := h.apply(ctx, entry.Batch)
	if err != nil {
		h.logger.WarnContext(ctx, op+" failed, entry dropped",
			"directory", entry.Batch.Directory, "pairs", len(entry.Batch.Pairs), "error", err)
		return &entry, report, fmt.Errorf("%s failed: %w", op, err)
	}

	if len(report.Renamed) > 0 {
		*to = append(*to, HistoryEntry{Batch: rename.Inverse(entry.Batch.Directory, report.Renamed)})
	}

	h.logger.InfoContext(ctx, op,
		"directory", entry.Batch.Directory, "renamed", len(report.Renamed), "skipped", len(report.Skipped))
	return &entry, report, nil
}
