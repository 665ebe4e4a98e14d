package rename

import (
	"fmt"
	"sort"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
	Err     error
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	if r.Err != nil {
		return r.Err
	}
	return fmt.Errorf("%s", r.Reason)
}

// CanApply evaluates whether a batch may be applied.
// Rules:
// - At least one pair must change a name
// - Final names (changed and unchanged) must be unique
func CanApply(batch Batch) GuardResult {
	// Rule 1: something to do
	if len(batch.Changes()) == 0 {
		err := &NoChangesError{}
		return GuardResult{Allowed: false, Reason: err.Error(), Err: err}
	}

	// Rule 2: no two files end up with the same name
	if dup := findDuplicate(batch.Pairs); dup != nil {
		return GuardResult{Allowed: false, Reason: dup.Error(), Err: dup}
	}

	return GuardResult{Allowed: true}
}

// findDuplicate returns the first proposed name, in batch order, shared by
// two or more pairs.
func findDuplicate(pairs []Pair) *DuplicateTargetError {
	owners := make(map[string][]string, len(pairs))
	var order []string
	for _, p := range pairs {
		if _, seen := owners[p.Proposed]; !seen {
			order = append(order, p.Proposed)
		}
		owners[p.Proposed] = append(owners[p.Proposed], p.Original)
	}

	for _, name := range order {
		if originals := owners[name]; len(originals) > 1 {
			sorted := append([]string(nil), originals...)
			sort.Strings(sorted)
			return &DuplicateTargetError{Name: name, Originals: sorted}
		}
	}
	return nil
}

// CanUndoContext provides context for history guards.
type CanUndoContext struct {
	Op    string // "undo" or "redo"
	Depth int
}

// CanUndo evaluates whether an undo or redo has an entry to pop.
func CanUndo(ctx CanUndoContext) GuardResult {
	if ctx.Depth == 0 {
		err := &EmptyHistoryError{Op: ctx.Op}
		return GuardResult{Allowed: false, Reason: err.Error(), Err: err}
	}
	return GuardResult{Allowed: true}
}
