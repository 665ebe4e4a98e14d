package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/example/renux/internal/core/placeholder"
	"github.com/example/renux/internal/core/rename"
	"github.com/example/renux/internal/ctxutil"
	"github.com/example/renux/internal/ports/primary"
	"github.com/example/renux/internal/ports/secondary"
)

// ErrJournalDisabled is returned by Journal when no journal is configured.
var ErrJournalDisabled = errors.New("journal is disabled")

// RenameServiceImpl implements the RenameService interface.
type RenameServiceImpl struct {
	fs       secondary.FileSystem
	journal  secondary.JournalRepository // nil disables journaling
	executor EffectExecutor
	resolver *rename.Resolver
	history  *HistoryManager
	logger   *slog.Logger
}

// NewRenameService creates a new RenameService with injected dependencies.
// journal may be nil. A nil clock means time.Now.
func NewRenameService(
	fileSystem secondary.FileSystem,
	journal secondary.JournalRepository,
	executor EffectExecutor,
	logger *slog.Logger,
	clock func() time.Time,
) *RenameServiceImpl {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &RenameServiceImpl{
		fs:       fileSystem,
		journal:  journal,
		executor: executor,
		resolver: rename.NewResolver(fileTimes{fs: fileSystem}, clock),
		logger:   logger,
	}
	s.history = NewHistoryManager(s.applyBatch, logger)
	return s
}

// Preview computes the proposed names for every file in the directory.
func (s *RenameServiceImpl) Preview(ctx context.Context, req primary.RenameRequest) (*primary.PreviewResponse, error) {
	batch, err := s.compute(ctx, req)
	if err != nil {
		return nil, err
	}

	resp := &primary.PreviewResponse{
		Directory: batch.Directory,
		Pairs:     toPortPairs(batch.Pairs),
		Changes:   len(batch.Changes()),
	}
	for _, fe := range batch.Errors {
		resp.Failures = append(resp.Failures, primary.FileFailure{File: fe.File, Err: fe.Err})
	}
	return resp, nil
}

// Apply recomputes, validates and applies a rename batch, then records it
// in history and the journal.
func (s *RenameServiceImpl) Apply(ctx context.Context, req primary.RenameRequest) (*primary.ApplyResponse, error) {
	batch, err := s.compute(ctx, req)
	if err != nil {
		return nil, err
	}

	report, err := s.applyBatch(ctx, batch)
	if err != nil {
		return nil, err
	}

	s.history.Record(batch.Directory, report)
	batchID := s.writeJournal(ctx, "apply", batch.Directory, req.Pattern, req.Replacement, report)

	return toApplyResponse("apply", batch.Directory, batchID, report), nil
}

// Undo reverses the most recent apply or redo.
func (s *RenameServiceImpl) Undo(ctx context.Context) (*primary.ApplyResponse, error) {
	return s.historyStep(ctx, "undo", s.history.Undo)
}

// Redo re-applies the most recently undone batch.
func (s *RenameServiceImpl) Redo(ctx context.Context) (*primary.ApplyResponse, error) {
	return s.historyStep(ctx, "redo", s.history.Redo)
}

// ListFiles returns the regular files of a directory, sorted case-insensitively.
func (s *RenameServiceImpl) ListFiles(ctx context.Context, directory string) ([]string, error) {
	if err := s.checkDirectory(ctx, directory); err != nil {
		return nil, err
	}
	files, err := s.fs.ListFiles(ctx, directory)
	if err != nil {
		return nil, &rename.InvalidDirectoryError{Path: directory, Err: err}
	}
	return files, nil
}

// Keywords returns the placeholder syntax hints for auto-suggest.
func (s *RenameServiceImpl) Keywords() []string {
	return placeholder.Keywords()
}

// HistoryDepth returns the sizes of the undo and redo stacks.
func (s *RenameServiceImpl) HistoryDepth() (undo, redo int) {
	return s.history.Depth()
}

// Journal returns the most recent journaled batches with their entries.
func (s *RenameServiceImpl) Journal(ctx context.Context, limit int) ([]*primary.JournalBatch, error) {
	if s.journal == nil {
		return nil, ErrJournalDisabled
	}

	records, err := s.journal.ListBatches(ctx, secondary.JournalFilters{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to list journal: %w", err)
	}

	batches := make([]*primary.JournalBatch, 0, len(records))
	for _, r := range records {
		entries, err := s.journal.ListEntries(ctx, r.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list journal entries of %s: %w", r.ID, err)
		}
		batch := &primary.JournalBatch{
			ID:          r.ID,
			SessionID:   r.SessionID,
			Kind:        r.Kind,
			Directory:   r.Directory,
			Pattern:     r.Pattern,
			Replacement: r.Replacement,
			CreatedAt:   r.CreatedAt,
		}
		for _, e := range entries {
			batch.Entries = append(batch.Entries, &primary.JournalEntry{
				Original: e.Original,
				Proposed: e.Proposed,
				Status:   e.Status,
				Reason:   e.Reason,
			})
		}
		batches = append(batches, batch)
	}
	return batches, nil
}

// compute lists the directory and resolves the request over it.
func (s *RenameServiceImpl) compute(ctx context.Context, req primary.RenameRequest) (rename.Batch, error) {
	opts, err := toOptions(req)
	if err != nil {
		return rename.Batch{}, err
	}

	files, err := s.ListFiles(ctx, req.Directory)
	if err != nil {
		return rename.Batch{}, err
	}

	batch, err := s.resolver.ComputeRenames(ctx, files, req.Directory, req.Pattern, req.Replacement, opts)
	if err != nil {
		return rename.Batch{}, fmt.Errorf("failed to compute renames: %w", err)
	}

	for _, fe := range batch.Errors {
		s.logger.WarnContext(ctx, "file skipped", "directory", req.Directory, "file", fe.File, "error", fe.Err)
	}
	return batch, nil
}

// applyBatch is the apply engine: guards first, then plan, then execute.
// Validation failures perform zero mutations.
func (s *RenameServiceImpl) applyBatch(ctx context.Context, batch rename.Batch) (rename.ApplyReport, error) {
	guard := rename.CanApply(batch)
	if !guard.Allowed {
		return rename.ApplyReport{}, guard.Error()
	}

	plan := rename.GenerateApplyPlan(batch)
	report, err := s.executor.Execute(ctx, plan.Effects())
	if err != nil {
		return report, fmt.Errorf("failed to execute rename plan: %w", err)
	}
	return report, nil
}

func (s *RenameServiceImpl) historyStep(
	ctx context.Context,
	kind string,
	step func(context.Context) (*HistoryEntry, rename.ApplyReport, error),
) (*primary.ApplyResponse, error) {
	entry, report, err := step(ctx)
	if err != nil {
		return nil, err
	}

	batchID := s.writeJournal(ctx, kind, entry.Batch.Directory, "", "", report)
	return toApplyResponse(kind, entry.Batch.Directory, batchID, report), nil
}

func (s *RenameServiceImpl) checkDirectory(ctx context.Context, directory string) error {
	if directory == "" {
		return &rename.InvalidDirectoryError{Path: directory}
	}
	ok, err := s.fs.DirectoryExists(ctx, directory)
	if err != nil {
		return &rename.InvalidDirectoryError{Path: directory, Err: err}
	}
	if !ok {
		return &rename.InvalidDirectoryError{Path: directory}
	}
	return nil
}

// writeJournal records report as one journal batch. Failures are logged and
// never fail the rename.
func (s *RenameServiceImpl) writeJournal(ctx context.Context, kind, directory, pattern, replacement string, report rename.ApplyReport) string {
	if s.journal == nil {
		return ""
	}

	record := &secondary.JournalBatchRecord{
		ID:          uuid.NewString(),
		SessionID:   ctxutil.SessionFromContext(ctx),
		Kind:        kind,
		Directory:   directory,
		Pattern:     pattern,
		Replacement: replacement,
	}
	for _, p := range report.Renamed {
		record.Entries = append(record.Entries, &secondary.JournalEntryRecord{
			Original: p.Original,
			Proposed: p.Proposed,
			Status:   "renamed",
		})
	}
	for _, pe := range report.Skipped {
		record.Entries = append(record.Entries, &secondary.JournalEntryRecord{
			Original: pe.Pair.Original,
			Proposed: pe.Pair.Proposed,
			Status:   "skipped",
			Reason:   pe.Err.Error(),
		})
	}

	if err := s.journal.RecordBatch(ctx, record); err != nil {
		s.logger.WarnContext(ctx, "journal write failed", "kind", kind, "directory", directory, "error", err)
		return ""
	}
	return record.ID
}

func toOptions(req primary.RenameRequest) (rename.Options, error) {
	applyTo, err := rename.ParseApplyTo(req.ApplyTo)
	if err != nil {
		return rename.Options{}, err
	}
	if req.MaxReplacements < 0 {
		return rename.Options{}, fmt.Errorf("invalid count %d: must be 0 or more", req.MaxReplacements)
	}
	return rename.Options{
		MaxReplacements: req.MaxReplacements,
		UseRegex:        req.UseRegex,
		CaseSensitive:   req.CaseSensitive,
		ApplyTo:         applyTo,
	}, nil
}

func toPortPairs(pairs []rename.Pair) []primary.RenamePair {
	out := make([]primary.RenamePair, len(pairs))
	for i, p := range pairs {
		out[i] = primary.RenamePair{Original: p.Original, Proposed: p.Proposed}
	}
	return out
}

func toApplyResponse(kind, directory, batchID string, report rename.ApplyReport) *primary.ApplyResponse {
	resp := &primary.ApplyResponse{
		Kind:      kind,
		Directory: directory,
		Renamed:   toPortPairs(report.Renamed),
		BatchID:   batchID,
	}
	for _, pe := range report.Skipped {
		resp.Skipped = append(resp.Skipped, primary.SkippedPair{
			Pair: primary.RenamePair{Original: pe.Pair.Original, Proposed: pe.Pair.Proposed},
			Err:  pe.Err,
		})
	}
	return resp
}

// fileTimes adapts the filesystem port to the date evaluator.
type fileTimes struct {
	fs secondary.FileSystem
}

func (t fileTimes) FileTimes(directory, name string) (placeholder.FileTimes, error) {
	rec, err := t.fs.FileTimes(directory, name)
	if err != nil {
		return placeholder.FileTimes{}, err
	}
	return placeholder.FileTimes{Created: rec.Created, Modified: rec.Modified}, nil
}

// Ensure RenameServiceImpl implements the interface
var _ primary.RenameService = (*RenameServiceImpl)(nil)
