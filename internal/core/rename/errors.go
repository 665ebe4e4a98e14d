package rename

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is checks across layers.
var (
	ErrNoChanges        = errors.New("no changes to apply")
	ErrDuplicateTarget  = errors.New("duplicate target name")
	ErrEmptyHistory     = errors.New("history is empty")
	ErrInvalidDirectory = errors.New("invalid directory")
)

// InvalidPatternError indicates a pattern that does not compile, or a
// replacement referencing a group the pattern does not define.
type InvalidPatternError struct {
	Pattern string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

// DateLookupError indicates a file whose timestamps could not be read.
type DateLookupError struct {
	File string
	Err  error
}

func (e *DateLookupError) Error() string {
	return fmt.Sprintf("cannot read timestamps of %s: %v", e.File, e.Err)
}

func (e *DateLookupError) Unwrap() error {
	return e.Err
}

// NoChangesError indicates a batch where every pair is a no-op.
type NoChangesError struct{}

func (e *NoChangesError) Error() string {
	return ErrNoChanges.Error()
}

func (e *NoChangesError) Is(target error) bool {
	return target == ErrNoChanges
}

// DuplicateTargetError indicates two or more files resolving to one name.
type DuplicateTargetError struct {
	Name      string
	Originals []string
}

func (e *DuplicateTargetError) Error() string {
	return fmt.Sprintf("duplicate target name %q from %s", e.Name, strings.Join(e.Originals, ", "))
}

func (e *DuplicateTargetError) Is(target error) bool {
	return target == ErrDuplicateTarget
}

// IOSkipError indicates one rename that failed while applying.
type IOSkipError struct {
	From string
	To   string
	Err  error
}

func (e *IOSkipError) Error() string {
	return fmt.Sprintf("skipped %s -> %s: %v", e.From, e.To, e.Err)
}

func (e *IOSkipError) Unwrap() error {
	return e.Err
}

// PartialApplyError summarizes an apply that skipped some pairs.
type PartialApplyError struct {
	Renamed int
	Skipped int
	First   error
}

func (e *PartialApplyError) Error() string {
	return fmt.Sprintf("renamed %d, skipped %d: %v", e.Renamed, e.Skipped, e.First)
}

func (e *PartialApplyError) Unwrap() error {
	return e.First
}

// EmptyHistoryError indicates an undo or redo with nothing to reverse.
type EmptyHistoryError struct {
	Op string // "undo" or "redo"
}

func (e *EmptyHistoryError) Error() string {
	return fmt.Sprintf("nothing to %s", e.Op)
}

func (e *EmptyHistoryError) Is(target error) bool {
	return target == ErrEmptyHistory
}

// InvalidDirectoryError indicates a path that is not a readable directory.
type InvalidDirectoryError struct {
	Path string
	Err  error
}

func (e *InvalidDirectoryError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid directory: %s", e.Path)
	}
	return fmt.Sprintf("invalid directory %s: %v", e.Path, e.Err)
}

func (e *InvalidDirectoryError) Unwrap() error {
	return e.Err
}

func (e *InvalidDirectoryError) Is(target error) bool {
	return target == ErrInvalidDirectory
}
