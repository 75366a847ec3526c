package article

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	nethtml "golang.org/x/net/html"
)

type blockKind int

const (
	kindInline blockKind = iota
	kindSkip
	kindContainer
	kindHeading
	kindQuote
	kindList
	kindPre
	kindRule
	kindImage
	kindMedia
	kindTable
	kindCaption
)

// blockKinds lists the elements that start their own paragraph. Anything
// missing is laid out inline.
var blockKinds = map[string]blockKind{
	"script": kindSkip, "style": kindSkip, "noscript": kindSkip, "nav": kindSkip, "form": kindSkip,

	"p": kindContainer, "div": kindContainer, "section": kindContainer, "article": kindContainer,
	"main": kindContainer, "header": kindContainer, "footer": kindContainer, "aside": kindContainer,
	"figure": kindContainer, "details": kindContainer, "summary": kindContainer, "li": kindContainer,
	"dl": kindContainer, "dt": kindContainer, "dd": kindContainer,

	"h1": kindHeading, "h2": kindHeading, "h3": kindHeading, "h4": kindHeading, "h5": kindHeading, "h6": kindHeading,

	"blockquote": kindQuote,
	"ul":         kindList,
	"ol":         kindList,
	"pre":        kindPre,
	"hr":         kindRule,
	"img":        kindImage,
	"iframe":     kindMedia,
	"video":      kindMedia,
	"audio":      kindMedia,
	"table":      kindTable,
	"figcaption": kindCaption,
	"caption":    kindCaption,
}

func kindOf(node *nethtml.Node) blockKind {
	if node.Type != nethtml.ElementNode {
		return kindInline
	}
	return blockKinds[strings.ToLower(node.Data)]
}

// blockBuf collects paragraphs separated by exactly one blank line.
type blockBuf struct {
	lines []string
}

func (b *blockBuf) add(block []string) {
	block = trimBlankLines(block)
	if len(block) == 0 {
		return
	}
	if len(b.lines) > 0 {
		b.lines = append(b.lines, "")
	}
	b.lines = append(b.lines, block...)
}

// renderNodes lays out siblings. Runs of text and inline elements become one
// wrapped paragraph; each block element becomes its own.
func (r htmlArticleRenderer) renderNodes(nodes []*nethtml.Node, depth int) []string {
	var out blockBuf
	run := make([]string, 0, 4)
	flush := func() {
		if len(run) == 0 {
			return
		}
		out.add(wrapText(normalizeInlineText(strings.Join(run, " ")), r.width))
		run = run[:0]
	}
	for _, node := range nodes {
		switch node.Type {
		case nethtml.TextNode:
			run = append(run, node.Data)
		case nethtml.ElementNode:
			kind := kindOf(node)
			if kind == kindInline {
				run = append(run, r.renderInlineNode(node))
				continue
			}
			flush()
			out.add(r.renderBlock(node, kind, depth))
		}
	}
	flush()
	return out.lines
}

func (r htmlArticleRenderer) renderBlock(node *nethtml.Node, kind blockKind, depth int) []string {
	switch kind {
	case kindSkip:
		return nil
	case kindHeading:
		return r.heading(node)
	case kindQuote:
		return r.quote(node, depth)
	case kindList:
		return r.list(node, depth+1)
	case kindPre:
		return r.preformatted(node)
	case kindRule:
		return []string{r.styles.Rule.Render(strings.Repeat("-", min(r.width, 40)))}
	case kindImage:
		if r.opts.ImageMode == ImageModeNone {
			return nil
		}
		return r.mediaLabel("image", node)
	case kindMedia:
		return r.mediaLabel(strings.ToLower(node.Data), node)
	case kindTable:
		return r.table(node)
	case kindCaption:
		return styleLines(wrapText(r.inlineText(node), r.width), r.styles.Caption)
	default:
		if hasBlockChild(node) {
			return r.renderNodes(elementChildren(node), depth)
		}
		return wrapText(r.inlineText(node), r.width)
	}
}

// heading prefixes the text with one '#' per level, markdown style.
func (r htmlArticleRenderer) heading(node *nethtml.Node) []string {
	level := int(node.Data[1] - '0')
	prefix := strings.Repeat("#", level) + " "
	lines := indentWrap(r.inlineText(node), r.width, prefix, strings.Repeat(" ", len(prefix)))
	return styleLines(lines, r.styles.Heading)
}

func (r htmlArticleRenderer) quote(node *nethtml.Node, depth int) []string {
	inner := r.narrowed(2).renderNodes(elementChildren(node), depth)
	bar := r.styles.QuoteBar.Render("│")
	out := make([]string, 0, len(inner))
	for _, line := range inner {
		if strings.TrimSpace(line) == "" {
			out = append(out, bar)
			continue
		}
		out = append(out, bar+" "+r.styles.QuoteText.Render(line))
	}
	return out
}

// list renders ul and ol without blank lines between items. Nested lists
// indent two columns per level; ol honors its start attribute.
func (r htmlArticleRenderer) list(node *nethtml.Node, depth int) []string {
	ordered := strings.EqualFold(node.Data, "ol")
	next := 1
	if n, err := strconv.Atoi(nodeAttr(node, "start")); err == nil {
		next = n
	}
	indent := strings.Repeat("  ", depth-1)
	out := make([]string, 0, 8)
	for li := node.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != nethtml.ElementNode || !strings.EqualFold(li.Data, "li") {
			continue
		}
		marker := bullet(depth)
		if ordered {
			marker = strconv.Itoa(next) + ". "
			next++
		}
		out = append(out, r.listItem(li, depth, indent, marker)...)
	}
	return out
}

func (r htmlArticleRenderer) listItem(li *nethtml.Node, depth int, indent, marker string) []string {
	parts := make([]string, 0, 4)
	var nested [][]string
	for child := li.FirstChild; child != nil; child = child.NextSibling {
		if kindOf(child) == kindList {
			nested = append(nested, r.list(child, depth+1))
			continue
		}
		parts = append(parts, r.renderInlineNode(child))
	}
	lines := indentWrap(normalizeInlineText(strings.Join(parts, " ")), r.width, indent+marker, indent+strings.Repeat(" ", visibleLen(marker)))
	for _, n := range nested {
		lines = append(lines, n...)
	}
	return lines
}

func bullet(depth int) string {
	if depth%2 == 0 {
		return "◦ "
	}
	return "• "
}

func (r htmlArticleRenderer) preformatted(node *nethtml.Node) []string {
	text := strings.ReplaceAll(collectRawText(node), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\t", "    ")
	raw := strings.Split(strings.Trim(text, "\n"), "\n")
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimRight(line, " ")
		if line == "" {
			out = append(out, "")
			continue
		}
		out = append(out, "    "+r.styles.Code.Render(line))
	}
	return out
}

// mediaLabel stands in for embedded images, players and frames. The label
// carries the alt or title text, or the source URL when there is none.
func (r htmlArticleRenderer) mediaLabel(kind string, node *nethtml.Node) []string {
	text := normalizeInlineText(nodeAttr(node, "alt"))
	if text == "" {
		text = normalizeInlineText(nodeAttr(node, "title"))
	}
	if text == "" {
		text = mediaSource(node)
	}
	label := "[" + kind + "]"
	if text != "" {
		label = "[" + kind + ": " + text + "]"
	}
	return []string{r.styles.MediaLabel.Render(label)}
}

func mediaSource(node *nethtml.Node) string {
	if src := nodeAttr(node, "src"); src != "" {
		return src
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == nethtml.ElementNode && strings.EqualFold(child.Data, "source") {
			if src := nodeAttr(child, "src"); src != "" {
				return src
			}
		}
	}
	return ""
}

func (r htmlArticleRenderer) inlineText(node *nethtml.Node) string {
	return normalizeInlineText(r.renderInlineChildren(node))
}

func (r htmlArticleRenderer) narrowed(by int) htmlArticleRenderer {
	r.width = max(1, r.width-by)
	return r
}

// indentWrap wraps text so the first line starts with first and the others
// with rest. Both prefixes count against width.
func indentWrap(text string, width int, first, rest string) []string {
	if text == "" {
		return nil
	}
	avail := max(1, width-max(visibleLen(first), visibleLen(rest)))
	lines := wrapText(text, avail)
	for i := range lines {
		if i == 0 {
			lines[i] = first + lines[i]
			continue
		}
		lines[i] = rest + lines[i]
	}
	return lines
}

func styleLines(lines []string, style lipgloss.Style) []string {
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = style.Render(line)
		}
	}
	return lines
}

func hasBlockChild(node *nethtml.Node) bool {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if kindOf(child) != kindInline {
			return true
		}
	}
	return false
}
