package article

import (
	"strings"

	nethtml "golang.org/x/net/html"
)

const cellSeparator = " | "

// table lays a table out as aligned columns under an optional header and
// rule. When the columns do not fit the wrap width each row becomes its own
// paragraph of "header: value" lines instead.
func (r htmlArticleRenderer) table(node *nethtml.Node) []string {
	header, rows := r.tableCells(node)
	widths := cellWidths(header, rows)
	if len(widths) == 0 {
		return nil
	}
	total := (len(widths) - 1) * len(cellSeparator)
	for _, w := range widths {
		total += w
	}
	if total > r.width {
		return r.stackedRows(header, rows)
	}

	out := make([]string, 0, len(rows)+2)
	if len(header) > 0 {
		out = append(out, r.styles.TableHeader.Render(alignCells(header, widths)))
		rule := make([]string, len(widths))
		for i, w := range widths {
			rule[i] = strings.Repeat("-", w)
		}
		out = append(out, r.styles.TableBorder.Render(strings.Join(rule, "-+-")))
	}
	for _, row := range rows {
		out = append(out, alignCells(row, widths))
	}
	return out
}

func (r htmlArticleRenderer) stackedRows(header []string, rows [][]string) []string {
	var out blockBuf
	for _, row := range rows {
		lines := make([]string, 0, len(row))
		for i, cell := range row {
			if cell == "" {
				continue
			}
			label := ""
			if i < len(header) && header[i] != "" {
				label = r.styles.TableHeader.Render(header[i]) + ": "
			}
			lines = append(lines, indentWrap(cell, r.width, label, "  ")...)
		}
		out.add(lines)
	}
	return out.lines
}

// tableCells collects cell text per row. The first row counts as the header
// when it sits in a thead or consists of th cells only. Nested tables are
// not descended into.
func (r htmlArticleRenderer) tableCells(table *nethtml.Node) (header []string, rows [][]string) {
	var walk func(node *nethtml.Node, inHead bool)
	walk = func(node *nethtml.Node, inHead bool) {
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			if child.Type != nethtml.ElementNode {
				continue
			}
			switch strings.ToLower(child.Data) {
			case "table":
				continue
			case "thead":
				walk(child, true)
			case "tr":
				row, allTH := r.rowCells(child)
				if len(row) == 0 {
					continue
				}
				if header == nil && len(rows) == 0 && (inHead || allTH) {
					header = row
					continue
				}
				rows = append(rows, row)
			default:
				walk(child, inHead)
			}
		}
	}
	walk(table, false)
	return header, rows
}

func (r htmlArticleRenderer) rowCells(tr *nethtml.Node) ([]string, bool) {
	cells := make([]string, 0, 4)
	allTH := true
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != nethtml.ElementNode {
			continue
		}
		tag := strings.ToLower(c.Data)
		if tag != "th" && tag != "td" {
			continue
		}
		allTH = allTH && tag == "th"
		cells = append(cells, strings.Join(strings.Fields(r.inlineText(c)), " "))
	}
	return cells, allTH
}

func cellWidths(header []string, rows [][]string) []int {
	var widths []int
	measure := func(row []string) {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], visibleLen(cell))
		}
	}
	measure(header)
	for _, row := range rows {
		measure(row)
	}
	return widths
}

func alignCells(cells []string, widths []int) string {
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 {
			b.WriteString(cellSeparator)
		}
		b.WriteString(cell)
		if pad := widths[i] - visibleLen(cell); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}
	return strings.TrimRight(b.String(), " ")
}
