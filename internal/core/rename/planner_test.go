package rename

import (
	"strings"
	"testing"

	"github.com/example/renux/internal/core/effects"
)

// simulate replays rename ops over an in-memory directory.
func simulate(t *testing.T, names []string, ops []effects.RenameEffect) map[string]string {
	t.Helper()
	dir := make(map[string]string, len(names))
	for _, n := range names {
		dir[n] = n // current name -> content (the original name)
	}
	for _, op := range ops {
		content, ok := dir[op.From]
		if !ok {
			t.Fatalf("rename %s -> %s: source missing", op.From, op.To)
		}
		if _, exists := dir[op.To]; exists {
			t.Fatalf("rename %s -> %s: target exists", op.From, op.To)
		}
		delete(dir, op.From)
		dir[op.To] = content
	}
	return dir
}

func TestGenerateApplyPlan_Simple(t *testing.T) {
	batch := Batch{
		Directory: "/tmp/photos",
		Pairs: []Pair{
			{Original: "a.txt", Proposed: "x.txt"},
			{Original: "b.txt", Proposed: "b.txt"},
			{Original: "c.txt", Proposed: "y.txt"},
		},
	}

	plan := GenerateApplyPlan(batch)

	if len(plan.RenameOps) != 2 {
		t.Fatalf("RenameOps count = %d, want 2", len(plan.RenameOps))
	}
	if plan.RenameOps[0].From != "a.txt" || plan.RenameOps[0].To != "x.txt" {
		t.Errorf("first op = %s -> %s, want a.txt -> x.txt", plan.RenameOps[0].From, plan.RenameOps[0].To)
	}
	if plan.RenameOps[1].Directory != "/tmp/photos" {
		t.Errorf("Directory = %q, want /tmp/photos", plan.RenameOps[1].Directory)
	}
	for _, op := range plan.RenameOps {
		if op.Temporary || op.RestoreTo != "" {
			t.Errorf("op %s -> %s should be a direct rename", op.From, op.To)
		}
	}

	// Effects: 1 log + 2 renames
	if len(plan.Effects()) != 3 {
		t.Errorf("Effects count = %d, want 3", len(plan.Effects()))
	}
	if plan.LogOps[0].Fields["cycles"] != 0 {
		t.Errorf("cycles = %v, want 0", plan.LogOps[0].Fields["cycles"])
	}
}

func TestGenerateApplyPlan_Chain(t *testing.T) {
	// 1 -> 2 -> 3: the pair targeting a taken name must wait.
	batch := Batch{Pairs: []Pair{
		{Original: "file1", Proposed: "file2"},
		{Original: "file2", Proposed: "file3"},
	}}

	plan := GenerateApplyPlan(batch)

	if len(plan.RenameOps) != 2 {
		t.Fatalf("RenameOps count = %d, want 2", len(plan.RenameOps))
	}
	if plan.RenameOps[0].From != "file2" {
		t.Errorf("first op from = %q, want file2", plan.RenameOps[0].From)
	}

	got := simulate(t, []string{"file1", "file2"}, plan.RenameOps)
	if got["file2"] != "file1" || got["file3"] != "file2" {
		t.Errorf("final state = %v", got)
	}
}

func TestGenerateApplyPlan_Swap(t *testing.T) {
	batch := Batch{Pairs: []Pair{
		{Original: "a.txt", Proposed: "b.txt"},
		{Original: "b.txt", Proposed: "a.txt"},
	}}

	plan := GenerateApplyPlan(batch)

	if len(plan.RenameOps) != 3 {
		t.Fatalf("RenameOps count = %d, want 3", len(plan.RenameOps))
	}

	first := plan.RenameOps[0]
	if !first.Temporary {
		t.Errorf("first op should be temporary")
	}
	if !strings.HasPrefix(first.To, "a.txt"+TempSuffix) {
		t.Errorf("temp name = %q, want prefix a.txt%s", first.To, TempSuffix)
	}

	last := plan.RenameOps[2]
	if last.From != first.To || last.To != "b.txt" {
		t.Errorf("last op = %s -> %s, want %s -> b.txt", last.From, last.To, first.To)
	}
	if last.RestoreTo != "a.txt" {
		t.Errorf("RestoreTo = %q, want a.txt", last.RestoreTo)
	}
	if last.Original != "a.txt" || last.Proposed != "b.txt" {
		t.Errorf("pair = %s -> %s, want a.txt -> b.txt", last.Original, last.Proposed)
	}

	got := simulate(t, []string{"a.txt", "b.txt"}, plan.RenameOps)
	if got["a.txt"] != "b.txt" || got["b.txt"] != "a.txt" || len(got) != 2 {
		t.Errorf("final state = %v", got)
	}
}

func TestGenerateApplyPlan_Rotation(t *testing.T) {
	batch := Batch{Pairs: []Pair{
		{Original: "1", Proposed: "2"},
		{Original: "2", Proposed: "3"},
		{Original: "3", Proposed: "1"},
		{Original: "4", Proposed: "5"},
	}}

	plan := GenerateApplyPlan(batch)

	if len(plan.RenameOps) != 5 {
		t.Fatalf("RenameOps count = %d, want 5", len(plan.RenameOps))
	}

	got := simulate(t, []string{"1", "2", "3", "4"}, plan.RenameOps)
	want := map[string]string{"2": "1", "3": "2", "1": "3", "5": "4"}
	for name, content := range want {
		if got[name] != content {
			t.Errorf("%s holds %q, want %q", name, got[name], content)
		}
	}
	if plan.LogOps[0].Fields["cycles"] != 1 {
		t.Errorf("cycles = %v, want 1", plan.LogOps[0].Fields["cycles"])
	}
}

func TestGenerateApplyPlan_TempNameAvoidsBatchNames(t *testing.T) {
	taken := "a" + TempSuffix + "0"
	batch := Batch{Pairs: []Pair{
		{Original: "a", Proposed: "b"},
		{Original: "b", Proposed: "a"},
		{Original: taken, Proposed: taken},
	}}

	plan := GenerateApplyPlan(batch)

	if plan.RenameOps[0].To == taken {
		t.Errorf("temp name %q collides with a batch name", taken)
	}
}
