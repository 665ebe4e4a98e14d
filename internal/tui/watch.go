package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// dirChangedMsg is sent by the directory watcher after debounce.
type dirChangedMsg struct{}

// watchErrMsg reports a watcher failure; the shell keeps running without
// live refresh.
type watchErrMsg struct {
	err error
}

const watchDebounce = 150 * time.Millisecond

// dirWatcher posts a dirChangedMsg when entries of one directory are created,
// removed or renamed. A burst of events (one apply renames many files) is
// coalesced into one message.
type dirWatcher struct {
	w        *fsnotify.Watcher
	debounce time.Duration
}

func newDirWatcher(dir string) (*dirWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}
	return &dirWatcher{w: w, debounce: watchDebounce}, nil
}

// wait returns a command blocking until the next relevant change. The shell
// re-issues it after every dirChangedMsg.
func (d *dirWatcher) wait() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-d.w.Events:
				if !ok {
					return nil
				}
				if !relevant(ev) {
					continue
				}
				if !d.drain() {
					return nil
				}
				return dirChangedMsg{}
			case err, ok := <-d.w.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err: err}
			}
		}
	}
}

// drain swallows events until the directory has been quiet for the debounce
// interval. It reports false when the watcher was closed.
func (d *dirWatcher) drain() bool {
	timer := time.NewTimer(d.debounce)
	defer timer.Stop()
	for {
		select {
		case _, ok := <-d.w.Events:
			if !ok {
				return false
			}
			timer.Reset(d.debounce)
		case <-timer.C:
			return true
		}
	}
}

func (d *dirWatcher) Close() error {
	return d.w.Close()
}

func relevant(ev fsnotify.Event) bool {
	return ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}
