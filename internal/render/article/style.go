package article

import "github.com/charmbracelet/lipgloss"

var (
	cpMauve    = lipgloss.Color("#cba6f7")
	cpPeach    = lipgloss.Color("#fab387")
	cpYellow   = lipgloss.Color("#f9e2af")
	cpBlue     = lipgloss.Color("#89b4fa")
	cpLavender = lipgloss.Color("#b4befe")
	cpSubtext0 = lipgloss.Color("#a6adc8")
	cpOverlay0 = lipgloss.Color("#6c7086")
	cpOverlay1 = lipgloss.Color("#7f849c")
	cpSurface2 = lipgloss.Color("#585b70")
)

// Styles are bound to one lipgloss renderer so a non-terminal writer gets
// plain text.
type Styles struct {
	Heading     lipgloss.Style
	Strong      lipgloss.Style
	Emphasis    lipgloss.Style
	LinkURL     lipgloss.Style
	QuoteBar    lipgloss.Style
	QuoteText   lipgloss.Style
	Caption     lipgloss.Style
	Code        lipgloss.Style
	Rule        lipgloss.Style
	TableBorder lipgloss.Style
	TableHeader lipgloss.Style
	MediaLabel  lipgloss.Style
}

func NewStyles(r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Styles{
		Heading:     r.NewStyle().Bold(true).Foreground(cpLavender),
		Strong:      r.NewStyle().Bold(true),
		Emphasis:    r.NewStyle().Italic(true),
		LinkURL:     r.NewStyle().Foreground(cpBlue).Faint(true),
		QuoteBar:    r.NewStyle().Foreground(cpOverlay1),
		QuoteText:   r.NewStyle().Italic(true).Foreground(cpSubtext0),
		Caption:     r.NewStyle().Italic(true).Foreground(cpOverlay0),
		Code:        r.NewStyle().Foreground(cpPeach),
		Rule:        r.NewStyle().Foreground(cpSurface2),
		TableBorder: r.NewStyle().Foreground(cpSurface2),
		TableHeader: r.NewStyle().Bold(true).Foreground(cpYellow),
		MediaLabel:  r.NewStyle().Foreground(cpMauve).Italic(true),
	}
}
