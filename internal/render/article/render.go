// Package article turns HTML fragments found in feed fields into wrapped,
// styled terminal lines.
package article

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	nethtml "golang.org/x/net/html"

	"github.com/glabrego/rssview/internal/logging"
)

var reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)
var reHTTPURL = regexp.MustCompile(`https?://[^\s)\]\x1b]+`)

var errNoBody = errors.New("fragment has no body")

type ImageMode int

const (
	ImageModeLabel ImageMode = iota
	ImageModeNone
)

type Options struct {
	StyleLinks          bool
	ApplyPostprocessing bool
	ImageMode           ImageMode
}

var DefaultOptions = Options{
	StyleLinks:          true,
	ApplyPostprocessing: true,
	ImageMode:           ImageModeLabel,
}

// DefaultWidth is used when a converter is built with a non-positive width.
const DefaultWidth = 80

func withDefaults(opts Options) Options {
	out := opts
	if out.ImageMode != ImageModeLabel && out.ImageMode != ImageModeNone {
		out.ImageMode = DefaultOptions.ImageMode
	}
	return out
}

// Converter renders markup fragments. The zero value is not usable; build
// one with NewConverter.
type Converter struct {
	width     int
	opts      Options
	styles    Styles
	sourceURL string
}

type htmlArticleRenderer struct {
	width  int
	opts   Options
	styles Styles
}

func NewConverter(r *lipgloss.Renderer, width int, opts Options) Converter {
	if width < 1 {
		width = DefaultWidth
	}
	return Converter{
		width:  width,
		opts:   withDefaults(opts),
		styles: NewStyles(r),
	}
}

// ForSource returns a copy whose reader post-processing follows the rules
// for the site serving sourceURL.
func (c Converter) ForSource(sourceURL string) Converter {
	c.sourceURL = strings.TrimSpace(sourceURL)
	return c
}

// ToDisplayText converts raw (already entity-decoded) markup into terminal
// text. Input without tags comes back unchanged, and any conversion
// failure yields raw verbatim.
func (c Converter) ToDisplayText(raw string) string {
	if !strings.Contains(raw, "<") {
		return raw
	}
	lines, err := c.Lines(raw)
	if err != nil {
		logger := logging.For("article")
		logger.Debug().Err(err).Int("bytes", len(raw)).Msg("markup conversion failed, printing raw text")
		return raw
	}
	return strings.Join(lines, "\n")
}

// Lines renders raw into wrapped lines.
func (c Converter) Lines(raw string) (lines []string, err error) {
	defer func() {
		if p := recover(); p != nil {
			lines = nil
			err = fmt.Errorf("render markup: %v", p)
		}
	}()
	return renderHTMLFragmentLines(raw, c.width, c.sourceURL, c.opts, c.styles)
}

func renderHTMLFragmentLines(raw string, width int, articleURL string, opts Options, styles Styles) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	doc, err := nethtml.Parse(strings.NewReader("<html><body>" + raw + "</body></html>"))
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}
	body := findBodyNode(doc)
	if body == nil {
		return nil, errNoBody
	}
	renderer := htmlArticleRenderer{width: max(1, width), opts: opts, styles: styles}
	lines := trimBlankLines(renderer.renderNodes(elementChildren(body), 0))
	if opts.ApplyPostprocessing {
		lines = applyReaderPostprocessing(lines, articleURL)
	}
	if opts.StyleLinks {
		lines = styleDetailLinks(lines, styles.LinkURL)
	}
	return lines, nil
}

func trimBlankLines(lines []string) []string {
	if len(lines) == 0 {
		return lines
	}
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines) - 1
	for end >= start && strings.TrimSpace(lines[end]) == "" {
		end--
	}
	if end < start {
		return nil
	}
	out := make([]string, 0, end-start+1)
	prevBlank := false
	for i := start; i <= end; i++ {
		blank := strings.TrimSpace(lines[i]) == ""
		if blank && prevBlank {
			continue
		}
		out = append(out, lines[i])
		prevBlank = blank
	}
	return out
}

func wrapText(text string, width int) []string {
	if width < 1 {
		return []string{text}
	}
	paragraphs := strings.Split(text, "\n")
	out := make([]string, 0, len(paragraphs))

	for _, p := range paragraphs {
		words := strings.Fields(p)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		for _, word := range words {
			// Styled words are never split so escape sequences stay intact.
			for !strings.Contains(word, "\x1b") && runewidth.StringWidth(word) > width {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				head := runewidth.Truncate(word, width, "")
				if head == "" {
					head = string([]rune(word)[:1])
				}
				out = append(out, head)
				word = word[len(head):]
			}
			if word == "" {
				continue
			}

			if line == "" {
				line = word
				continue
			}
			if visibleLen(line)+1+visibleLen(word) <= width {
				line += " " + word
				continue
			}
			out = append(out, line)
			line = word
		}
		if line != "" {
			out = append(out, line)
		}
	}

	return out
}

func visibleLen(s string) int {
	return runewidth.StringWidth(stripANSI(s))
}

func stripANSI(s string) string {
	return reANSICodes.ReplaceAllString(s, "")
}

func findBodyNode(node *nethtml.Node) *nethtml.Node {
	if node == nil {
		return nil
	}
	if node.Type == nethtml.ElementNode && strings.EqualFold(node.Data, "body") {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := findBodyNode(child); found != nil {
			return found
		}
	}
	return nil
}

func elementChildren(node *nethtml.Node) []*nethtml.Node {
	children := make([]*nethtml.Node, 0, 4)
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == nethtml.TextNode && strings.TrimSpace(child.Data) == "" {
			continue
		}
		children = append(children, child)
	}
	return children
}

func nodeAttr(node *nethtml.Node, name string) string {
	for _, attr := range node.Attr {
		if strings.EqualFold(attr.Key, name) {
			return strings.TrimSpace(attr.Val)
		}
	}
	return ""
}

func collectRawText(node *nethtml.Node) string {
	if node == nil {
		return ""
	}
	if node.Type == nethtml.TextNode {
		return node.Data
	}
	var b strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(collectRawText(child))
	}
	return b.String()
}
