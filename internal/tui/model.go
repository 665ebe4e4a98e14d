package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	cliadapter "github.com/example/renux/internal/adapters/cli"
	"github.com/example/renux/internal/core/rename"
	"github.com/example/renux/internal/ports/primary"
)

// Form fields in focus order.
const (
	fieldPattern = iota
	fieldReplacement
	fieldCount
	numFields
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusError
)

// Model is the bubbletea model of the interactive shell. All engine calls
// happen synchronously inside Update.
type Model struct {
	ctx     context.Context
	service primary.RenameService
	session Session

	inputs [numFields]textinput.Model
	focus  int

	files    []string
	preview  *primary.PreviewResponse
	viewport viewport.Model
	help     help.Model

	status     string
	statusKind statusKind

	watcher *dirWatcher
	width   int
	height  int
}

// New creates the shell model for session. The file list and preview are
// computed immediately.
func New(ctx context.Context, service primary.RenameService, session Session) *Model {
	m := &Model{
		ctx:      ctx,
		service:  service,
		session:  session,
		viewport: viewport.New(80, 10),
		help:     help.New(),
		width:    80,
		height:   24,
	}

	for i := range m.inputs {
		t := textinput.New()
		t.Cursor.Style = cursorStyle
		t.CharLimit = 256
		t.KeyMap.AcceptSuggestion = key.NewBinding(key.WithKeys("right"))

		switch i {
		case fieldPattern:
			t.Prompt = "Pattern:      "
			t.Placeholder = `e.g. (\d+)`
			t.SetValue(session.Pattern)
			t.ShowSuggestions = true
			t.Focus()
			t.PromptStyle = focusedStyle
			t.TextStyle = focusedStyle
		case fieldReplacement:
			t.Prompt = "Replacement:  "
			t.Placeholder = `e.g. {counter(1,1,3)} or {\1|upper}`
			t.SetValue(session.Replacement)
			t.ShowSuggestions = true
		case fieldCount:
			t.Prompt = "Count:        "
			t.Placeholder = "0 (all)"
			t.CharLimit = 6
			if session.Count > 0 {
				t.SetValue(strconv.Itoa(session.Count))
			}
		}
		m.inputs[i] = t
	}

	m.reloadFiles()
	m.refreshPreview()
	return m
}

// Session returns the current form state.
func (m *Model) Session() Session {
	return m.session
}

// Status returns the status line text.
func (m *Model) Status() string {
	return m.status
}

// Preview returns the last computed preview, nil when it failed.
func (m *Model) Preview() *primary.PreviewResponse {
	return m.preview
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.wait())
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resizeViewport()
		return m, nil

	case dirChangedMsg:
		m.reloadFiles()
		m.refreshPreview()
		if m.watcher == nil {
			return m, nil
		}
		return m, m.watcher.wait()

	case watchErrMsg:
		m.setStatus(statusError, fmt.Sprintf("live refresh stopped: %v", msg.err))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Next):
			return m, m.setFocus(m.focus + 1)

		case key.Matches(msg, keys.Prev):
			return m, m.setFocus(m.focus - 1)

		case key.Matches(msg, keys.ToggleRegex):
			m.session.UseRegex = !m.session.UseRegex
			m.setStatus(statusInfo, "regex "+onOff(m.session.UseRegex))
			m.refreshPreview()
			return m, nil

		case key.Matches(msg, keys.ToggleCase):
			m.session.CaseSensitive = !m.session.CaseSensitive
			m.setStatus(statusInfo, "case sensitive "+onOff(m.session.CaseSensitive))
			m.refreshPreview()
			return m, nil

		case key.Matches(msg, keys.CycleTarget):
			m.session.ApplyTo = m.session.ApplyTo.Next()
			m.setStatus(statusInfo, "apply to "+m.session.ApplyTo.String())
			m.refreshPreview()
			return m, nil

		case key.Matches(msg, keys.Apply):
			m.apply()
			return m, nil

		case key.Matches(msg, keys.Undo):
			m.historyStep(m.service.Undo)
			return m, nil

		case key.Matches(msg, keys.Redo):
			m.historyStep(m.service.Redo)
			return m, nil

		case key.Matches(msg, keys.Clear):
			m.clear()
			return m, nil

		case key.Matches(msg, keys.PageUp):
			m.viewport.ViewUp()
			return m, nil

		case key.Matches(msg, keys.PageDown):
			m.viewport.ViewDown()
			return m, nil
		}
	}

	// Handle character input and blinking
	cmd := m.updateInputs(msg)
	if m.syncSession() {
		m.refreshPreview()
	}
	return m, cmd
}

func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))

	// Only text inputs with Focus() set will respond, so it's safe to simply
	// update all of them here without any further logic.
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}

	return tea.Batch(cmds...)
}

func (m *Model) setFocus(i int) tea.Cmd {
	n := len(m.inputs)
	m.focus = ((i % n) + n) % n

	cmds := make([]tea.Cmd, n)
	for j := range m.inputs {
		if j == m.focus {
			cmds[j] = m.inputs[j].Focus()
			m.inputs[j].PromptStyle = focusedStyle
			m.inputs[j].TextStyle = focusedStyle
			continue
		}
		m.inputs[j].Blur()
		m.inputs[j].PromptStyle = noStyle
		m.inputs[j].TextStyle = noStyle
	}
	return tea.Batch(cmds...)
}

// syncSession copies the input values into the session and reports whether
// anything changed.
func (m *Model) syncSession() bool {
	pattern := m.inputs[fieldPattern].Value()
	replacement := m.inputs[fieldReplacement].Value()

	count := 0
	if raw := strings.TrimSpace(m.inputs[fieldCount].Value()); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			// keep the last valid count
			m.setStatus(statusError, fmt.Sprintf("count must be a number of 0 or more, got %q", raw))
			n = m.session.Count
		}
		count = n
	}

	changed := pattern != m.session.Pattern || replacement != m.session.Replacement || count != m.session.Count
	m.session.Pattern = pattern
	m.session.Replacement = replacement
	m.session.Count = count
	return changed
}

func (m *Model) reloadFiles() {
	files, err := m.service.ListFiles(m.ctx, m.session.Directory)
	if err != nil {
		m.setStatus(statusError, err.Error())
		return
	}
	m.files = files

	keywords := m.service.Keywords()
	replacementHints := make([]string, 0, len(files)+len(keywords))
	replacementHints = append(replacementHints, keywords...)
	replacementHints = append(replacementHints, files...)

	m.inputs[fieldPattern].SetSuggestions(files)
	m.inputs[fieldReplacement].SetSuggestions(replacementHints)
}

func (m *Model) refreshPreview() {
	resp, err := m.service.Preview(m.ctx, m.session.Request())
	if err != nil {
		m.preview = nil
		m.setStatus(statusError, err.Error())
		m.viewport.SetContent("")
		return
	}
	m.preview = resp
	m.viewport.SetContent(renderPreview(resp, m.viewport.Width))
}

func (m *Model) apply() {
	resp, err := m.service.Apply(m.ctx, m.session.Request())
	if err != nil {
		m.setStatus(statusError, describeError(err))
		return
	}
	m.setStatus(resultKind(resp), cliadapter.Summary(resp)+skippedDetail(resp))
	m.reloadFiles()
	m.refreshPreview()
}

func (m *Model) historyStep(step func(context.Context) (*primary.ApplyResponse, error)) {
	resp, err := step(m.ctx)
	if err != nil {
		m.setStatus(statusError, describeError(err))
		return
	}
	m.setStatus(resultKind(resp), cliadapter.Summary(resp)+skippedDetail(resp))
	m.reloadFiles()
	m.refreshPreview()
}

func (m *Model) clear() {
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.session.Clear()
	m.setStatus(statusInfo, "form cleared")
	m.refreshPreview()
}

func (m *Model) setStatus(kind statusKind, text string) {
	m.statusKind = kind
	m.status = text
}

func (m *Model) resizeViewport() {
	// header, three inputs, blank lines, status and help
	const chrome = 10
	h := m.height - chrome
	if h < 3 {
		h = 3
	}
	m.viewport.Width = m.width
	m.viewport.Height = h
	if m.preview != nil {
		m.viewport.SetContent(renderPreview(m.preview, m.width))
	}
}

func describeError(err error) string {
	if errors.Is(err, rename.ErrNoChanges) {
		return "nothing to rename"
	}
	return err.Error()
}

func resultKind(resp *primary.ApplyResponse) statusKind {
	if len(resp.Skipped) > 0 {
		return statusError
	}
	return statusSuccess
}

// skippedDetail names the first skipped pair; the log has the rest.
func skippedDetail(resp *primary.ApplyResponse) string {
	if len(resp.Skipped) == 0 {
		return ""
	}
	s := resp.Skipped[0]
	return fmt.Sprintf(" (%s: %v)", s.Pair.Original, s.Err)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
