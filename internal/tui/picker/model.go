// Package picker is the full-screen item chooser used in place of the
// numeric prompt when both ends of the session are terminals.
package picker

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/rssview/internal/tui/actions"
	"github.com/glabrego/rssview/internal/tui/platform"
	"github.com/glabrego/rssview/internal/tui/state"
	tuitheme "github.com/glabrego/rssview/internal/tui/theme"
	"github.com/glabrego/rssview/internal/tui/view"
)

// chromeLines is the title, help line, two spacers and the footer. A
// warning adds one more.
const chromeLines = 5

const statusTTL = 4 * time.Second

type Model struct {
	items    []view.Summary
	title    string
	theme    tuitheme.Theme
	keys     keyMap
	help     help.Model
	cursor   int
	width    int
	height   int
	status   string
	warning  string
	statusID int
	chosen   int
	picked   bool
	openFn   func(string) error
	copyFn   func(string) error
}

func NewModel(items []view.Summary, title string, th tuitheme.Theme) Model {
	return Model{
		items:  items,
		title:  title,
		theme:  th,
		keys:   defaultKeyMap(),
		help:   help.New(),
		chosen: -1,
		openFn: platform.OpenInBrowser,
		copyFn: platform.CopyToClipboard,
	}
}

// Selected returns the chosen 0-based index. ok is false when the user
// quit instead.
func (m Model) Selected() (int, bool) {
	return m.chosen, m.picked
}

func (m Model) Cursor() int {
	return m.cursor
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case actions.LinkActionMsg:
		m.warning = ""
		return m.setStatus(msg.Status)
	case actions.LinkActionErrorMsg:
		m.warning = msg.Err.Error()
		return m.setStatus("")
	case actions.ClearStatusMsg:
		if msg.ID == m.statusID {
			m.status = ""
			m.warning = ""
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	size := len(m.items)
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.picked = false
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.cursor = state.MoveCursor(m.cursor, -1, size)
	case key.Matches(msg, m.keys.Down):
		m.cursor = state.MoveCursor(m.cursor, 1, size)
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = state.ClampCursor(size-1, size)
	case key.Matches(msg, m.keys.PageUp):
		m.cursor = state.MoveCursor(m.cursor, -state.PageStep(m.height, m.chrome()), size)
	case key.Matches(msg, m.keys.PageDown):
		m.cursor = state.MoveCursor(m.cursor, state.PageStep(m.height, m.chrome()), size)
	case key.Matches(msg, m.keys.Select):
		if size == 0 {
			return m, nil
		}
		m.chosen = m.cursor
		m.picked = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Open):
		if size == 0 {
			return m, nil
		}
		return m, actions.OpenLinkCmd(m.items[m.cursor].Link, m.openFn, m.copyFn)
	case key.Matches(msg, m.keys.Copy):
		if size == 0 {
			return m, nil
		}
		return m, actions.CopyLinkCmd(m.items[m.cursor].Link, m.copyFn)
	}
	return m, nil
}

func (m Model) setStatus(status string) (tea.Model, tea.Cmd) {
	m.status = status
	m.statusID++
	return m, actions.ClearStatusCmd(m.statusID, statusTTL)
}

func (m Model) chrome() int {
	if m.warning != "" {
		return chromeLines + 1
	}
	return chromeLines
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(view.PickerTitle(m.title, m.theme))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString("No items.\n")
	} else {
		width := m.width
		if width <= 0 {
			width = 80
		}
		listHeight := state.ListHeight(m.height, m.chrome(), len(m.items))
		start, end := state.CenteredWindow(len(m.items), m.cursor, listHeight)
		for i := start; i < end; i++ {
			b.WriteString(view.RenderItemLine(view.ItemLineParams{
				Position: i + 1,
				Title:    m.items[i].Title,
				Date:     m.items[i].Date,
				Active:   i == m.cursor,
				Width:    width,
			}, m.theme))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	position := 0
	if len(m.items) > 0 {
		position = m.cursor + 1
	}
	b.WriteString(view.Footer(position, len(m.items), m.status, m.theme))
	if m.warning != "" {
		b.WriteString("\n")
		b.WriteString(view.WarningLine(m.warning, m.theme))
	}
	return b.String()
}
