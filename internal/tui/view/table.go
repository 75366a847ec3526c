package view

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/glabrego/rssview/internal/fieldtree"
	tuitheme "github.com/glabrego/rssview/internal/tui/theme"
)

// ColumnSeparator joins table cells.
const ColumnSeparator = " | "

// Column is one summary column. Fields are tried in order; the first one
// present in the item supplies the cell. A column without fields shows the
// 1-based item index.
type Column struct {
	Header string
	Fields []string
}

var DefaultColumns = []Column{
	{Header: "idx"},
	{Header: "title", Fields: []string{"title"}},
	{Header: "url", Fields: []string{"link", "url", "guid", "id"}},
	{Header: "pubDate", Fields: []string{"pubDate", "published", "updated", "dc:date"}},
}

// Table is the summary of an item sequence. Cells hold decoded,
// single-line text; missing fields are empty strings.
type Table struct {
	Headers []string
	Rows    [][]string
	Widths  []int
}

func BuildTable(items fieldtree.Sequence, columns []Column) Table {
	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = c.Header
	}
	rows := make([][]string, 0, len(items.Items))
	for i, item := range items.Items {
		row := make([]string, len(columns))
		for j, c := range columns {
			if len(c.Fields) == 0 {
				row[j] = strconv.Itoa(i + 1)
				continue
			}
			row[j] = singleLine(fieldtree.Field(item, c.Fields...))
		}
		rows = append(rows, row)
	}
	return Table{Headers: headers, Rows: rows, Widths: ColumnWidths(headers, rows)}
}

// ColumnWidths returns, per column, the widest of the header and every
// cell, measured in terminal cells.
func ColumnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if w := runewidth.StringWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// TotalWidth is the width of a full row including separators.
func (t Table) TotalWidth() int {
	total := 0
	for _, w := range t.Widths {
		total += w
	}
	if n := len(t.Widths); n > 1 {
		total += (n - 1) * runewidth.StringWidth(ColumnSeparator)
	}
	return total
}

func (t Table) HeaderLine() string {
	return t.formatRow(t.Headers)
}

func (t Table) RuleLine() string {
	return strings.Repeat("-", t.TotalWidth())
}

func (t Table) RowLine(i int) string {
	if i < 0 || i >= len(t.Rows) {
		return ""
	}
	return t.formatRow(t.Rows[i])
}

// Lines returns the plain header, rule and rows.
func (t Table) Lines() []string {
	lines := make([]string, 0, len(t.Rows)+2)
	lines = append(lines, t.HeaderLine(), t.RuleLine())
	for i := range t.Rows {
		lines = append(lines, t.RowLine(i))
	}
	return lines
}

// Render is Lines with the header and rule styled by th.
func (t Table) Render(th tuitheme.Theme) string {
	var b strings.Builder
	for i, line := range t.Lines() {
		switch i {
		case 0:
			line = th.TableHeader.Render(line)
		case 1:
			line = th.Rule.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// formatRow pads each cell to its column width. The row ends at its last
// non-empty cell, so missing trailing fields leave no dangling separator.
func (t Table) formatRow(cells []string) string {
	last := min(len(cells), len(t.Widths)) - 1
	for last >= 0 && cells[last] == "" {
		last--
	}
	parts := make([]string, last+1)
	for i := range parts {
		parts[i] = runewidth.FillRight(cells[i], t.Widths[i])
	}
	return strings.TrimRight(strings.Join(parts, ColumnSeparator), " ")
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Summary is the picker's view of one item.
type Summary struct {
	Title string
	Link  string
	Date  string
}

func Summarize(items fieldtree.Sequence) []Summary {
	title, link, date := DefaultColumns[1].Fields, DefaultColumns[2].Fields, DefaultColumns[3].Fields
	out := make([]Summary, 0, len(items.Items))
	for _, item := range items.Items {
		out = append(out, Summary{
			Title: singleLine(fieldtree.Field(item, title...)),
			Link:  singleLine(fieldtree.Field(item, link...)),
			Date:  singleLine(fieldtree.Field(item, date...)),
		})
	}
	return out
}
