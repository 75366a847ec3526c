package article

import (
	"strings"

	nethtml "golang.org/x/net/html"
)

func (r htmlArticleRenderer) renderInlineChildren(node *nethtml.Node) string {
	parts := make([]string, 0, 4)
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		parts = append(parts, r.renderInlineNode(child))
	}
	return strings.Join(parts, " ")
}

func (r htmlArticleRenderer) renderInlineNode(node *nethtml.Node) string {
	if node == nil {
		return ""
	}
	switch node.Type {
	case nethtml.TextNode:
		return node.Data
	case nethtml.ElementNode:
		tag := strings.ToLower(node.Data)
		switch tag {
		case "script", "style", "noscript", "img":
			return ""
		case "br":
			return "\n"
		case "b", "strong":
			return r.styleInline(node, r.styles.Strong.Render)
		case "i", "em", "cite", "dfn":
			return r.styleInline(node, r.styles.Emphasis.Render)
		case "a":
			text := normalizeInlineText(r.renderInlineChildren(node))
			href := strings.TrimSpace(nodeAttr(node, "href"))
			switch {
			case href == "":
				return text
			case text == "":
				return href
			case strings.EqualFold(text, href):
				return href
			default:
				return text + " (" + href + ")"
			}
		case "q":
			text := normalizeInlineText(r.renderInlineChildren(node))
			if text == "" {
				return ""
			}
			return `"` + text + `"`
		case "code", "kbd", "samp":
			text := normalizeInlineText(r.renderInlineChildren(node))
			if text == "" {
				return ""
			}
			return r.styles.Code.Render("`" + text + "`")
		default:
			return r.renderInlineChildren(node)
		}
	default:
		return ""
	}
}

// styleInline styles each word on its own so wrapping never has to cut
// through an escape sequence.
func (r htmlArticleRenderer) styleInline(node *nethtml.Node, render func(...string) string) string {
	text := stripANSI(normalizeInlineText(r.renderInlineChildren(node)))
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		words := strings.Fields(line)
		for j, w := range words {
			words[j] = render(w)
		}
		lines[i] = strings.Join(words, " ")
	}
	return strings.Join(lines, "\n")
}

// normalizeInlineText collapses whitespace. Entities were already decoded
// by the HTML parser and are not decoded a second time.
func normalizeInlineText(s string) string {
	parts := strings.Split(s, "\n")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.Join(strings.Fields(part), " ")
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	normalized := strings.Join(out, "\n")
	replacer := strings.NewReplacer(
		" .", ".",
		" ,", ",",
		" ;", ";",
		" :", ":",
		" !", "!",
		" ?", "?",
		" )", ")",
		"( ", "(",
	)
	return replacer.Replace(normalized)
}
