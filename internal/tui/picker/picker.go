package picker

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/rssview/internal/fieldtree"
	"github.com/glabrego/rssview/internal/logging"
	tuitheme "github.com/glabrego/rssview/internal/tui/theme"
	"github.com/glabrego/rssview/internal/tui/view"
)

// Picker runs Model as a full-screen program on in and out.
type Picker struct {
	in    io.Reader
	out   io.Writer
	theme tuitheme.Theme
}

func New(in io.Reader, out io.Writer, th tuitheme.Theme) *Picker {
	return &Picker{in: in, out: out, theme: th}
}

func (p *Picker) Pick(items fieldtree.Sequence, title string) (int, bool, error) {
	log := logging.For("picker")
	m := NewModel(view.Summarize(items), title, p.theme)

	final, err := tea.NewProgram(m,
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
		tea.WithAltScreen(),
	).Run()
	if err != nil {
		return 0, false, fmt.Errorf("run item picker: %w", err)
	}
	done, ok := final.(Model)
	if !ok {
		return 0, false, fmt.Errorf("item picker returned %T", final)
	}
	idx, picked := done.Selected()
	log.Debug().Int("index", idx).Bool("picked", picked).Msg("picker closed")
	return idx, picked, nil
}
