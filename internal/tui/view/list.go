package view

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	tuitheme "github.com/glabrego/rssview/internal/tui/theme"
)

var reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

type ItemLineParams struct {
	Position int
	Title    string
	Date     string
	Active   bool
	Width    int
}

// RenderItemLine renders one picker row: cursor marker, 1-based position,
// title and a right-aligned date label.
func RenderItemLine(p ItemLineParams, th tuitheme.Theme) string {
	cursorMarker := " "
	if p.Active {
		cursorMarker = ">"
	}
	prefix := cursorMarker + " " + th.Index.Render(padLeft(strconv.Itoa(p.Position), 3)) + ". "

	dateLabel := ""
	if d := singleLine(p.Date); d != "" {
		dateLabel = "[" + d + "]"
	}
	available := p.Width - visibleLen(prefix) - 1 - visibleLen(dateLabel)
	if available < 1 {
		available = 1
	}

	label := singleLine(p.Title)
	if label == "" {
		label = "(untitled)"
	}
	label = truncateRunes(label, available)
	gap := p.Width - visibleLen(prefix) - visibleLen(label) - visibleLen(dateLabel)
	if gap < 1 {
		gap = 1
	}
	line := prefix + label
	if dateLabel != "" {
		line += strings.Repeat(" ", gap) + th.MetaLabel.Render(dateLabel)
	}
	return th.RenderActiveLine(p.Active, line)
}

func truncateRunes(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return strings.Repeat(".", maxLen)
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

func padLeft(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}

func visibleLen(s string) int {
	return utf8.RuneCountInString(stripANSIText(s))
}

func stripANSIText(s string) string {
	return reANSICodes.ReplaceAllString(s, "")
}
