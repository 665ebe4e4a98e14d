// Package app contains the application layer - service implementations and effect execution.
package app

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/example/renux/internal/core/effects"
	"github.com/example/renux/internal/core/rename"
	"github.com/example/renux/internal/ports/secondary"
)

// EffectExecutor interprets and executes effects.
// This is the "Imperative Shell" - the only place I/O happens.
type EffectExecutor interface {
	// Execute runs every effect in order. Rename failures are collected in
	// the report, never returned; the error is reserved for effects the
	// executor does not understand.
	Execute(ctx context.Context, effs []effects.Effect) (rename.ApplyReport, error)
}

// DefaultEffectExecutor implements EffectExecutor with real I/O.
type DefaultEffectExecutor struct {
	fs     secondary.FileSystem
	logger *slog.Logger
}

// NewEffectExecutor creates a new DefaultEffectExecutor.
func NewEffectExecutor(fileSystem secondary.FileSystem, logger *slog.Logger) *DefaultEffectExecutor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &DefaultEffectExecutor{fs: fileSystem, logger: logger}
}

// execution is the state of one Execute call.
type execution struct {
	report rename.ApplyReport
	failed map[string]bool // originals whose pair was skipped
}

// Execute processes a slice of effects, executing each in sequence.
// Once started it runs to completion; cancellation is not checked mid-apply.
func (e *DefaultEffectExecutor) Execute(ctx context.Context, effs []effects.Effect) (rename.ApplyReport, error) {
	run := &execution{failed: make(map[string]bool)}
	err := e.execute(ctx, run, effs)
	return run.report, err
}

func (e *DefaultEffectExecutor) execute(ctx context.Context, run *execution, effs []effects.Effect) error {
	for _, eff := range effs {
		if err := e.executeOne(ctx, run, eff); err != nil {
			return fmt.Errorf("failed to execute %s effect: %w", eff.EffectType(), err)
		}
	}
	return nil
}

func (e *DefaultEffectExecutor) executeOne(ctx context.Context, run *execution, eff effects.Effect) error {
	switch typed := eff.(type) {
	case effects.RenameEffect:
		e.executeRename(ctx, run, typed)
		return nil
	case effects.CompositeEffect:
		return e.execute(ctx, run, typed.Effects)
	case effects.NoEffect:
		return nil
	case effects.LogEffect:
		e.executeLog(ctx, typed)
		return nil
	default:
		return fmt.Errorf("unknown effect type: %T", eff)
	}
}

func (e *DefaultEffectExecutor) executeRename(ctx context.Context, run *execution, eff effects.RenameEffect) {
	pair := rename.Pair{Original: eff.Original, Proposed: eff.Proposed}

	// The first hop of this pair already failed and was reported.
	if run.failed[eff.Original] {
		return
	}

	err := e.renameOne(eff)
	if err != nil {
		if eff.RestoreTo != "" {
			restore := eff
			restore.To = eff.RestoreTo
			if rerr := e.renameOne(restore); rerr != nil {
				e.logger.ErrorContext(ctx, "file left under temporary name",
					"directory", eff.Directory, "name", eff.From, "original", eff.RestoreTo, "error", rerr)
			}
		}

		skip := &rename.IOSkipError{From: eff.Original, To: eff.Proposed, Err: err}
		run.report.Skipped = append(run.report.Skipped, rename.PairError{Pair: pair, Err: skip})
		run.failed[eff.Original] = true
		e.logger.WarnContext(ctx, "rename skipped",
			"directory", eff.Directory, "from", eff.Original, "to", eff.Proposed, "error", err)
		return
	}

	if eff.Temporary {
		e.logger.DebugContext(ctx, "moved aside", "directory", eff.Directory, "from", eff.From, "to", eff.To)
		return
	}

	run.report.Renamed = append(run.report.Renamed, pair)
	e.logger.DebugContext(ctx, "renamed", "directory", eff.Directory, "from", eff.Original, "to", eff.Proposed)
}

// renameOne refuses to overwrite an existing target unless it is the source
// itself under another spelling (case-only rename on a case-insensitive
// filesystem).
func (e *DefaultEffectExecutor) renameOne(eff effects.RenameEffect) error {
	exists, err := e.fs.Exists(eff.Directory, eff.To)
	if err != nil {
		return err
	}
	if exists {
		same, err := e.fs.SameFile(eff.Directory, eff.From, eff.To)
		if err != nil {
			return err
		}
		if !same {
			return fmt.Errorf("%s: %w", eff.To, fs.ErrExist)
		}
	}
	return e.fs.Rename(eff.Directory, eff.From, eff.To)
}

func (e *DefaultEffectExecutor) executeLog(ctx context.Context, eff effects.LogEffect) {
	attrs := make([]any, 0, 2*len(eff.Fields))
	for k, v := range eff.Fields {
		attrs = append(attrs, k, v)
	}
	e.logger.Log(ctx, parseLevel(eff.Level), eff.Message, attrs...)
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
