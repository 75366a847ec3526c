package theme

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

type Theme struct {
	Title       lipgloss.Style
	Key         lipgloss.Style
	TableHeader lipgloss.Style
	Rule        lipgloss.Style
	Index       lipgloss.Style
	Prompt      lipgloss.Style
	Notice      lipgloss.Style
	StateWarn   lipgloss.Style
	ActiveLine  lipgloss.Style
	MetaLabel   lipgloss.Style
	MetaValue   lipgloss.Style
}

// New builds the theme on r, or on the process-wide renderer when r is nil.
func New(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	cpMauve := lipgloss.Color("#cba6f7")
	cpRed := lipgloss.Color("#f38ba8")
	cpPeach := lipgloss.Color("#fab387")
	cpYellow := lipgloss.Color("#f9e2af")
	cpGreen := lipgloss.Color("#a6e3a1")
	cpLavender := lipgloss.Color("#b4befe")
	cpText := lipgloss.Color("#cdd6f4")
	cpSubtext1 := lipgloss.Color("#bac2de")
	cpOverlay1 := lipgloss.Color("#7f849c")
	cpSurface0 := lipgloss.Color("#313244")
	cpSurface2 := lipgloss.Color("#585b70")

	return Theme{
		Title:       r.NewStyle().Bold(true).Foreground(cpMauve),
		Key:         r.NewStyle().Bold(true).TabWidth(lipgloss.NoTabConversion),
		TableHeader: r.NewStyle().Bold(true).Foreground(cpYellow),
		Rule:        r.NewStyle().Foreground(cpSurface2),
		Index:       r.NewStyle().Foreground(cpPeach),
		Prompt:      r.NewStyle().Foreground(cpLavender),
		Notice:      r.NewStyle().Foreground(cpGreen),
		StateWarn:   r.NewStyle().Foreground(cpRed),
		ActiveLine:  r.NewStyle().Background(cpSurface0).Foreground(cpText),
		MetaLabel:   r.NewStyle().Foreground(cpOverlay1),
		MetaValue:   r.NewStyle().Foreground(cpSubtext1).Italic(true),
	}
}

// Emphasize renders a label with visual prominence. The label text itself,
// tabs included, is never altered; on a plain renderer it comes back as is.
func (t Theme) Emphasize(label string) string {
	if label == "" {
		return label
	}
	return t.Key.Render(label)
}

func (t Theme) RenderActiveLine(active bool, line string) string {
	if !active {
		return line
	}
	return t.ActiveLine.Render(line)
}

// RendererFor binds a lipgloss renderer to w. Writers that are not
// terminals, and noColor, force the Ascii profile so no escape sequences
// reach the stream.
func RendererFor(w io.Writer, noColor bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if noColor || !IsTerminal(w) {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// IsTerminal reports whether v is a file descriptor attached to a terminal.
func IsTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
