package picker

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glabrego/rssview/internal/tui/actions"
	tuitheme "github.com/glabrego/rssview/internal/tui/theme"
	"github.com/glabrego/rssview/internal/tui/view"
)

func plainTheme() tuitheme.Theme {
	return tuitheme.New(tuitheme.RendererFor(&bytes.Buffer{}, true))
}

func sampleItems(n int) []view.Summary {
	items := make([]view.Summary, n)
	for i := range items {
		items[i] = view.Summary{
			Title: fmt.Sprintf("Item %d", i+1),
			Link:  fmt.Sprintf("https://example.com/%d", i+1),
			Date:  "Mon",
		}
	}
	return items
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModel_MovesAndClampsCursor(t *testing.T) {
	m := NewModel(sampleItems(3), "Feed", plainTheme())

	m, _ = update(t, m, runes("k"))
	assert.Equal(t, 0, m.Cursor())
	m, _ = update(t, m, runes("j"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, runes("j"))
	assert.Equal(t, 2, m.Cursor())
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, m.Cursor())
	m, _ = update(t, m, runes("G"))
	assert.Equal(t, 2, m.Cursor())
	m, _ = update(t, m, runes("g"))
	assert.Equal(t, 0, m.Cursor())
}

func TestModel_PageKeysUseScreenHeight(t *testing.T) {
	m := NewModel(sampleItems(40), "", plainTheme())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 15})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, 10, m.Cursor())
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, 39, m.Cursor())
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyPgUp})
	assert.Equal(t, 29, m.Cursor())
}

func TestModel_EnterSelectsAndQuits(t *testing.T) {
	m := NewModel(sampleItems(3), "Feed", plainTheme())
	m, _ = update(t, m, runes("j"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, isQuit(cmd))
	idx, ok := m.Selected()
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestModel_QuitKeysLeaveNothingSelected(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		m := NewModel(sampleItems(2), "", plainTheme())
		m, cmd := update(t, m, msg)
		assert.True(t, isQuit(cmd), msg.String())
		_, ok := m.Selected()
		assert.False(t, ok, msg.String())
	}
}

func TestModel_EnterOnEmptyListIsIgnored(t *testing.T) {
	m := NewModel(nil, "", plainTheme())
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	_, ok := m.Selected()
	assert.False(t, ok)
}

func TestModel_OpenPassesCurrentLink(t *testing.T) {
	var opened string
	m := NewModel(sampleItems(2), "", plainTheme())
	m.openFn = func(link string) error {
		opened = link
		return nil
	}
	m, _ = update(t, m, runes("j"))
	m, cmd := update(t, m, runes("o"))
	require.NotNil(t, cmd)

	msg := cmd()
	assert.Equal(t, "https://example.com/2", opened)
	assert.Equal(t, actions.LinkActionMsg{Status: "Opened link in browser", Opened: true}, msg)

	m, tick := update(t, m, msg)
	assert.NotNil(t, tick)
	assert.Contains(t, m.View(), "Opened link in browser")
}

func TestModel_CopyFailureShowsError(t *testing.T) {
	m := NewModel(sampleItems(1), "", plainTheme())
	m.openFn = func(string) error { return errors.New("no browser") }
	m.copyFn = func(string) error { return errors.New("no clipboard command available") }

	_, cmd := update(t, m, runes("y"))
	require.NotNil(t, cmd)
	msg := cmd()
	m, _ = update(t, m, msg)
	lines := strings.Split(m.View(), "\n")
	assert.Equal(t, "warning: could not copy link to clipboard", lines[len(lines)-1])
}

func TestModel_WarningClearsOnSuccessAndExpiry(t *testing.T) {
	m := NewModel(sampleItems(1), "", plainTheme())
	m, _ = update(t, m, actions.LinkActionErrorMsg{Err: errors.New("boom")})
	assert.Contains(t, m.View(), "warning: boom")

	m, _ = update(t, m, actions.LinkActionMsg{Status: "Link copied to clipboard"})
	assert.NotContains(t, m.View(), "warning")
	assert.Contains(t, m.View(), "Link copied to clipboard")

	m, _ = update(t, m, actions.LinkActionErrorMsg{Err: errors.New("again")})
	m, _ = update(t, m, actions.ClearStatusMsg{ID: 3})
	assert.NotContains(t, m.View(), "warning")
}

func TestModel_OpenRejectsInvalidLink(t *testing.T) {
	called := false
	items := []view.Summary{{Title: "No link"}}
	m := NewModel(items, "", plainTheme())
	m.openFn = func(string) error {
		called = true
		return nil
	}
	_, cmd := update(t, m, runes("o"))
	msg := cmd()
	assert.False(t, called)
	assert.IsType(t, actions.LinkActionErrorMsg{}, msg)
}

func TestModel_StaleClearStatusIsIgnored(t *testing.T) {
	m := NewModel(sampleItems(1), "", plainTheme())
	m, _ = update(t, m, actions.LinkActionMsg{Status: "first"})
	m, _ = update(t, m, actions.LinkActionMsg{Status: "second"})

	m, _ = update(t, m, actions.ClearStatusMsg{ID: 1})
	assert.Contains(t, m.View(), "second")
	m, _ = update(t, m, actions.ClearStatusMsg{ID: 2})
	assert.NotContains(t, m.View(), "second")
}

func TestModel_ViewShowsTitleItemsAndFooter(t *testing.T) {
	m := NewModel(sampleItems(3), "My Feed", plainTheme())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	m, _ = update(t, m, runes("j"))

	out := m.View()
	lines := strings.Split(out, "\n")
	assert.Equal(t, "My Feed", lines[0])
	assert.Contains(t, out, ">   2. Item 2")
	assert.Contains(t, out, "    1. Item 1")
	assert.Contains(t, out, "[Mon]")
	assert.Contains(t, out, "item 2/3")
}

func TestModel_ViewWindowsLongLists(t *testing.T) {
	m := NewModel(sampleItems(50), "", plainTheme())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 10})

	out := m.View()
	assert.Contains(t, out, "Feed items")
	assert.Contains(t, out, "Item 5")
	assert.NotContains(t, out, "Item 6 ")
	assert.NotContains(t, out, "Item 50")
}
