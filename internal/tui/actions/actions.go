// Package actions holds the picker's side-effecting commands and the
// messages they report back with.
package actions

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/rssview/internal/tui/platform"
)

type LinkActionMsg struct {
	Status string
	Opened bool
}

type LinkActionErrorMsg struct {
	Err error
}

type ClearStatusMsg struct {
	ID int
}

// OpenLinkCmd opens link in the browser, copying it to the clipboard when
// no browser can be started.
func OpenLinkCmd(link string, openFn, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		valid, err := platform.ValidateLink(link)
		if err != nil {
			return LinkActionErrorMsg{Err: err}
		}
		if openFn != nil {
			if err := openFn(valid); err == nil {
				return LinkActionMsg{Status: "Opened link in browser", Opened: true}
			}
		}
		if copyFn != nil {
			if err := copyFn(valid); err == nil {
				return LinkActionMsg{Status: "Could not open browser, link copied to clipboard"}
			}
		}
		return LinkActionErrorMsg{Err: fmt.Errorf("could not open link or copy to clipboard")}
	}
}

func CopyLinkCmd(link string, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		valid, err := platform.ValidateLink(link)
		if err != nil {
			return LinkActionErrorMsg{Err: err}
		}
		if copyFn != nil {
			if err := copyFn(valid); err == nil {
				return LinkActionMsg{Status: "Link copied to clipboard"}
			}
		}
		return LinkActionErrorMsg{Err: fmt.Errorf("could not copy link to clipboard")}
	}
}

func ClearStatusCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return ClearStatusMsg{ID: id}
	})
}
