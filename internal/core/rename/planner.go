package rename

import (
	"fmt"

	"github.com/example/renux/internal/core/effects"
)

// TempSuffix marks the temporary names used to break rename cycles.
const TempSuffix = ".renux-tmp-"

// ApplyPlan represents the planned effects for applying a batch.
type ApplyPlan struct {
	Directory string
	LogOps    []effects.LogEffect
	RenameOps []effects.RenameEffect
}

// Effects returns all effects as a flat slice for execution.
func (p ApplyPlan) Effects() []effects.Effect {
	result := make([]effects.Effect, 0, len(p.LogOps)+len(p.RenameOps))
	for _, e := range p.LogOps {
		result = append(result, e)
	}
	for _, e := range p.RenameOps {
		result = append(result, e)
	}
	return result
}

// GenerateApplyPlan creates the rename plan for a batch that passed CanApply.
// This is a pure function.
//
// A pair whose target is another pair's original runs after that pair.
// Cycles (a.txt <-> b.txt) are broken by moving one file to a temporary
// name first; its final hop carries RestoreTo so a failure puts it back.
func GenerateApplyPlan(batch Batch) ApplyPlan {
	changes := batch.Changes()
	plan := ApplyPlan{Directory: batch.Directory}

	byOriginal := make(map[string]int, len(changes))
	taken := make(map[string]bool, 2*len(batch.Pairs))
	for i, p := range changes {
		byOriginal[p.Original] = i
	}
	for _, p := range batch.Pairs {
		taken[p.Original] = true
		taken[p.Proposed] = true
	}

	// blocker[i] is the pair currently holding the target of pair i.
	blocker := make([]int, len(changes))
	for i, p := range changes {
		blocker[i] = -1
		if j, ok := byOriginal[p.Proposed]; ok {
			blocker[i] = j
		}
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]int, len(changes))
	source := make([]string, len(changes))
	tempSeq := 0
	cycles := 0

	tempName := func(name string) string {
		for {
			candidate := fmt.Sprintf("%s%s%d", name, TempSuffix, tempSeq)
			tempSeq++
			if !taken[candidate] {
				taken[candidate] = true
				return candidate
			}
		}
	}

	var visit func(i int)
	visit = func(i int) {
		state[i] = visiting
		if j := blocker[i]; j >= 0 {
			switch state[j] {
			case unvisited:
				visit(j)
			case visiting:
				// j waits on i further up the stack: move j out of the way.
				tmp := tempName(changes[j].Original)
				plan.RenameOps = append(plan.RenameOps, effects.RenameEffect{
					Directory: batch.Directory,
					From:      changes[j].Original,
					To:        tmp,
					Original:  changes[j].Original,
					Proposed:  changes[j].Proposed,
					Temporary: true,
				})
				source[j] = tmp
				cycles++
			}
		}

		op := effects.RenameEffect{
			Directory: batch.Directory,
			From:      changes[i].Original,
			To:        changes[i].Proposed,
			Original:  changes[i].Original,
			Proposed:  changes[i].Proposed,
		}
		if source[i] != "" {
			op.From = source[i]
			op.RestoreTo = changes[i].Original
		}
		plan.RenameOps = append(plan.RenameOps, op)
		state[i] = done
	}

	for i := range changes {
		if state[i] == unvisited {
			visit(i)
		}
	}

	plan.LogOps = append(plan.LogOps, effects.LogEffect{
		Level:   "info",
		Message: "applying rename batch",
		Fields: map[string]any{
			"directory": batch.Directory,
			"changes":   len(changes),
			"cycles":    cycles,
		},
	})

	return plan
}
