package tui

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/example/renux/internal/ports/primary"
)

// Run starts the interactive shell on the terminal and blocks until the user
// quits. A directory that cannot be watched only disables live refresh.
func Run(ctx context.Context, service primary.RenameService, session Session, logger *slog.Logger) error {
	m := New(ctx, service, session)

	watcher, err := newDirWatcher(session.Directory)
	if err != nil {
		logger.Warn("directory watch disabled", "directory", session.Directory, "error", err)
	} else {
		defer watcher.Close()
		m.watcher = watcher
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interactive shell failed: %w", err)
	}
	return nil
}
