package view

import (
	"fmt"
	"strings"

	tuitheme "github.com/glabrego/rssview/internal/tui/theme"
)

func PickerTitle(feedTitle string, th tuitheme.Theme) string {
	feedTitle = singleLine(feedTitle)
	if feedTitle == "" {
		feedTitle = "Feed items"
	}
	return th.Title.Render(feedTitle)
}

func Footer(position, total int, status string, th tuitheme.Theme) string {
	parts := []string{
		th.MetaLabel.Render("item") + " " + th.MetaValue.Render(fmt.Sprintf("%d/%d", position, total)),
	}
	if status != "" {
		parts = append(parts, th.Notice.Render(status))
	}
	return strings.Join(parts, " • ")
}

func WarningLine(warning string, th tuitheme.Theme) string {
	if warning == "" {
		return ""
	}
	return th.StateWarn.Render("warning") + ": " + warning
}
