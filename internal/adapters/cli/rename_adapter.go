package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/renux/internal/ports/primary"
)

var (
	changedColor   = color.New(color.FgGreen)
	unchangedColor = color.New(color.FgHiBlack)
	failedColor    = color.New(color.FgRed)
	headerColor    = color.New(color.Bold)
)

// RenameAdapter is a thin adapter that translates CLI operations to RenameService calls.
// It depends only on the RenameService interface, enabling easy testing with mocks.
type RenameAdapter struct {
	service primary.RenameService
	out     io.Writer
}

// NewRenameAdapter creates a new RenameAdapter with the given service.
func NewRenameAdapter(service primary.RenameService, out io.Writer) *RenameAdapter {
	return &RenameAdapter{
		service: service,
		out:     out,
	}
}

// Preview prints the proposed names of every file in the request's directory.
// Unchanged files are dimmed, files that failed to resolve are listed last.
func (a *RenameAdapter) Preview(ctx context.Context, req primary.RenameRequest) (*primary.PreviewResponse, error) {
	resp, err := a.service.Preview(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to preview renames: %w", err)
	}

	if len(resp.Pairs) == 0 && len(resp.Failures) == 0 {
		fmt.Fprintf(a.out, "No files in %s.\n", resp.Directory)
		return resp, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ORIGINAL\t\tPROPOSED")
	fmt.Fprintln(w, "--------\t\t--------")
	for _, p := range resp.Pairs {
		if p.Changed() {
			fmt.Fprintf(w, "%s\t→\t%s\n", p.Original, changedColor.Sprint(p.Proposed))
		} else {
			fmt.Fprintf(w, "%s\t\t%s\n", unchangedColor.Sprint(p.Original), unchangedColor.Sprint(p.Proposed))
		}
	}
	w.Flush()

	if len(resp.Failures) > 0 {
		fmt.Fprintln(a.out)
		for _, f := range resp.Failures {
			fmt.Fprintf(a.out, "%s %s: %v\n", failedColor.Sprint("✗"), f.File, f.Err)
		}
	}

	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "%d of %d files will be renamed\n", resp.Changes, len(resp.Pairs)+len(resp.Failures))
	return resp, nil
}

// Apply renames the files and prints a one-line summary plus each skipped pair.
func (a *RenameAdapter) Apply(ctx context.Context, req primary.RenameRequest) (*primary.ApplyResponse, error) {
	resp, err := a.service.Apply(ctx, req)
	if err != nil {
		return nil, err
	}
	a.PrintResult(resp)
	return resp, nil
}

// PrintResult prints the outcome of an apply, undo or redo.
func (a *RenameAdapter) PrintResult(resp *primary.ApplyResponse) {
	fmt.Fprintln(a.out, Summary(resp))
	for _, s := range resp.Skipped {
		fmt.Fprintf(a.out, "  %s %s → %s: %v\n", failedColor.Sprint("✗"), s.Pair.Original, s.Pair.Proposed, s.Err)
	}
}

// Summary renders the one-line outcome of an apply, undo or redo.
func Summary(resp *primary.ApplyResponse) string {
	verb := "Renamed"
	switch resp.Kind {
	case "undo":
		verb = "Undid"
	case "redo":
		verb = "Redid"
	}

	line := fmt.Sprintf("%s %s %d %s", changedColor.Sprint("✓"), verb, len(resp.Renamed), plural(len(resp.Renamed), "file", "files"))
	if n := len(resp.Skipped); n > 0 {
		line = fmt.Sprintf("%s, %s", line, failedColor.Sprintf("%d skipped", n))
	}
	return line
}

// Keywords prints the placeholder hints, one per line.
func (a *RenameAdapter) Keywords() []string {
	keywords := a.service.Keywords()
	for _, k := range keywords {
		fmt.Fprintln(a.out, k)
	}
	return keywords
}

// Log prints the most recent journaled batches with their entries.
func (a *RenameAdapter) Log(ctx context.Context, limit int) ([]*primary.JournalBatch, error) {
	batches, err := a.service.Journal(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}

	if len(batches) == 0 {
		fmt.Fprintln(a.out, "No renames journaled yet.")
		return batches, nil
	}

	for _, b := range batches {
		fmt.Fprintf(a.out, "%s  %s  %s  %s\n",
			headerColor.Sprint(b.CreatedAt),
			b.Kind,
			b.Directory,
			unchangedColor.Sprint(b.ID),
		)
		if b.Pattern != "" || b.Replacement != "" {
			fmt.Fprintf(a.out, "  %q → %q\n", b.Pattern, b.Replacement)
		}
		for _, e := range b.Entries {
			if e.Status == "skipped" {
				fmt.Fprintf(a.out, "  %s %s → %s: %s\n", failedColor.Sprint("✗"), e.Original, e.Proposed, e.Reason)
				continue
			}
			fmt.Fprintf(a.out, "  %s %s → %s\n", changedColor.Sprint("✓"), e.Original, e.Proposed)
		}
	}
	return batches, nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
