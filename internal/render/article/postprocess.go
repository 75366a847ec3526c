package article

import (
	"net/url"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// siteRules trims boilerplate that known publishers embed in their feed
// content. Matching is done on lower-cased, marker-free paragraph text.
type siteRules struct {
	hosts        []string
	replaceAll   map[string]string
	skipContains []string
	skipEquals   []string
	endContains  []string
	endEquals    []string
}

var knownSites = []siteRules{
	{
		hosts:      []string{"wikipedia.org"},
		replaceAll: map[string]string{"[edit]": ""},
		endEquals:  []string{"references", "footnotes", "see also", "notes"},
	},
	{
		hosts:        []string{"nytimes.com"},
		skipContains: []string{"credit:", "this is a developing story. check back for updates."},
		skipEquals:   []string{"credit", "image"},
	},
	{
		hosts:        []string{"wired.com", "wired.co.uk"},
		skipContains: []string{"read more:", "do you use social media regularly? take our short survey."},
		endEquals:    []string{"more great wired stories"},
	},
	{
		hosts:        []string{"theguardian.com"},
		skipContains: []string{"photograph:"},
	},
	{
		hosts:        []string{"arstechnica.com"},
		skipContains: []string{"enlarge/", "this story originally appeared on"},
	},
	{
		hosts: []string{"axios.com"},
		skipContains: []string{
			"sign up for our daily briefing",
			"download for free.",
			"sign up for free.",
			"axios on your phone",
		},
	},
}

func rulesFor(articleURL string) (siteRules, bool) {
	host := strings.ToLower(strings.TrimSpace(articleURL))
	if parsed, err := url.Parse(articleURL); err == nil && parsed.Host != "" {
		host = strings.ToLower(parsed.Hostname())
	}
	if host == "" {
		return siteRules{}, false
	}
	for _, rules := range knownSites {
		for _, h := range rules.hosts {
			if strings.Contains(host, h) {
				return rules, true
			}
		}
	}
	return siteRules{}, false
}

func applyReaderPostprocessing(lines []string, articleURL string) []string {
	if len(lines) == 0 {
		return nil
	}
	rules, ok := rulesFor(articleURL)
	if !ok {
		return lines
	}
	for i := range lines {
		for old, repl := range rules.replaceAll {
			lines[i] = strings.ReplaceAll(lines[i], old, repl)
		}
	}
	kept := make([][]string, 0, 8)
	for _, paragraph := range paragraphsFromLines(lines) {
		plain := normalizeRuleText(strings.Join(paragraph, " "))
		if plain == "" {
			continue
		}
		if containsAny(plain, rules.endContains) || equalsAny(plain, rules.endEquals) {
			break
		}
		if containsAny(plain, rules.skipContains) || equalsAny(plain, rules.skipEquals) {
			continue
		}
		kept = append(kept, paragraph)
	}
	out := make([]string, 0, len(lines))
	for i, p := range kept {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, p...)
	}
	return trimBlankLines(out)
}

func paragraphsFromLines(lines []string) [][]string {
	paragraphs := make([][]string, 0, 8)
	current := make([]string, 0, 4)
	for _, line := range lines {
		if strings.TrimSpace(stripANSI(line)) == "" {
			if len(current) > 0 {
				paragraphs = append(paragraphs, current)
				current = make([]string, 0, 4)
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		paragraphs = append(paragraphs, current)
	}
	return paragraphs
}

// lineMarkers are the heading, quote and bullet prefixes the block layout
// puts in front of paragraph text.
const lineMarkers = " #│•◦-"

func normalizeRuleText(s string) string {
	s = strings.ToLower(normalizeInlineText(stripANSI(s)))
	s = strings.TrimLeft(s, lineMarkers)
	return strings.Join(strings.Fields(s), " ")
}

func containsAny(text string, needles []string) bool {
	for _, needle := range needles {
		if needle != "" && strings.Contains(text, needle) {
			return true
		}
	}
	return false
}

func equalsAny(text string, candidates []string) bool {
	for _, candidate := range candidates {
		if candidate != "" && text == candidate {
			return true
		}
	}
	return false
}

func styleDetailLinks(lines []string, style lipgloss.Style) []string {
	if len(lines) == 0 {
		return nil
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = reHTTPURL.ReplaceAllStringFunc(line, func(m string) string {
			return style.Render(m)
		})
	}
	return out
}
