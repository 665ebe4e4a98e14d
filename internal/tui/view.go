package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/example/renux/internal/ports/primary"
)

var (
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	blurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorStyle  = focusedStyle
	noStyle      = lipgloss.NewStyle()

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	changedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	unchangedStyle = blurredStyle
	failedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	toggleOnStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	toggleOffStyle = blurredStyle

	statusStyles = map[statusKind]lipgloss.Style{
		statusInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		statusSuccess: changedStyle,
		statusError:   failedStyle,
	}

	previewBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
)

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("renux") + "  " + blurredStyle.Render(m.session.Directory) + "\n\n")

	for i := range m.inputs {
		b.WriteString(" " + m.inputs[i].View() + "\n")
	}
	b.WriteString("\n " + m.togglesView() + "\n")

	b.WriteString(previewBorder.Width(max(m.width-2, 20)).Render(m.viewport.View()) + "\n")

	b.WriteString(" " + m.statusView() + "\n")
	b.WriteString(" " + m.help.View(keys))

	return b.String()
}

func (m *Model) togglesView() string {
	undo, redo := m.service.HistoryDepth()
	changes := 0
	if m.preview != nil {
		changes = m.preview.Changes
	}

	parts := []string{
		toggle("regex", m.session.UseRegex),
		toggle("case", m.session.CaseSensitive),
		"apply to: " + focusedStyle.Render(m.session.ApplyTo.String()),
		blurredStyle.Render(fmt.Sprintf("%d/%d changes", changes, len(m.files))),
		blurredStyle.Render(fmt.Sprintf("undo %d · redo %d", undo, redo)),
	}
	return strings.Join(parts, "  ")
}

func (m *Model) statusView() string {
	if m.status == "" {
		return ""
	}
	return statusStyles[m.statusKind].Render(m.status)
}

func toggle(name string, on bool) string {
	if on {
		return toggleOnStyle.Render("[x] " + name)
	}
	return toggleOffStyle.Render("[ ] " + name)
}

// renderPreview lays out one line per file: changed names with an arrow,
// unchanged names dimmed, failures last.
func renderPreview(resp *primary.PreviewResponse, width int) string {
	if resp == nil {
		return ""
	}
	if len(resp.Pairs) == 0 && len(resp.Failures) == 0 {
		return unchangedStyle.Render("(no files)")
	}

	left := 0
	for _, p := range resp.Pairs {
		left = max(left, lipgloss.Width(p.Original))
	}
	colStyle := lipgloss.NewStyle().Width(left)

	lines := make([]string, 0, len(resp.Pairs)+len(resp.Failures))
	for _, p := range resp.Pairs {
		if p.Changed() {
			lines = append(lines, colStyle.Render(p.Original)+"  →  "+changedStyle.Render(p.Proposed))
			continue
		}
		lines = append(lines, unchangedStyle.Render(colStyle.Render(p.Original)))
	}
	for _, f := range resp.Failures {
		lines = append(lines, failedStyle.Render(fmt.Sprintf("✗ %s: %v", f.File, f.Err)))
	}

	out := strings.Join(lines, "\n")
	if width > 0 {
		out = lipgloss.NewStyle().MaxWidth(width).Render(out)
	}
	return out
}
