// Package tree prints a fieldtree.Node as indented, key-labelled lines.
package tree

import (
	"fmt"
	"io"
	"strings"

	"github.com/glabrego/rssview/internal/fieldtree"
)

const indentUnit = "  "

// RootSequenceKey labels the items of a Sequence rendered without a parent key.
const RootSequenceKey = "item"

// Styler emphasizes labels. Implementations must return plain text when
// the output does not support styling.
type Styler interface {
	Emphasize(label string) string
}

// MarkupConverter turns decoded markup into display text, falling back to
// its input when conversion is not possible.
type MarkupConverter interface {
	ToDisplayText(raw string) string
}

type plainStyler struct{}

func (plainStyler) Emphasize(label string) string { return label }

type passthrough struct{}

func (passthrough) ToDisplayText(raw string) string { return raw }

type Renderer struct {
	out    io.Writer
	styler Styler
	markup MarkupConverter
}

// New returns a Renderer writing to out. A nil styler prints labels as-is
// and a nil markup converter prints markup verbatim.
func New(out io.Writer, styler Styler, markup MarkupConverter) *Renderer {
	if styler == nil {
		styler = plainStyler{}
	}
	if markup == nil {
		markup = passthrough{}
	}
	return &Renderer{out: out, styler: styler, markup: markup}
}

// WithMarkup returns a copy of r that converts markup with m.
func (r *Renderer) WithMarkup(m MarkupConverter) *Renderer {
	cp := *r
	if m != nil {
		cp.markup = m
	}
	return &cp
}

// LooksLikeMarkup is the markup heuristic: any '<' counts, so plain text
// with a stray angle bracket goes through the converter too.
func LooksLikeMarkup(decoded string) bool {
	return strings.Contains(decoded, "<")
}

// Render prints node at the given indent level.
func (r *Renderer) Render(node fieldtree.Node, level int) {
	switch n := node.(type) {
	case fieldtree.Mapping:
		r.renderMapping(n, level)
	case fieldtree.Sequence:
		r.renderSequence(RootSequenceKey, n, level)
	case fieldtree.Scalar:
		r.renderScalar(n, level)
	}
}

func (r *Renderer) renderMapping(m fieldtree.Mapping, level int) {
	for _, e := range m.Entries {
		key := fieldtree.NormalizeKey(e.Key)
		switch v := e.Value.(type) {
		case fieldtree.Mapping:
			r.line(level, r.styler.Emphasize(key)+":")
			r.renderMapping(v, level+1)
		case fieldtree.Sequence:
			r.renderSequence(key, v, level)
		case fieldtree.Scalar:
			r.renderField(key, v, level)
		default:
			r.line(level, r.styler.Emphasize(key)+":")
		}
	}
}

func (r *Renderer) renderSequence(key string, s fieldtree.Sequence, level int) {
	label := r.styler.Emphasize(key)
	if len(s.Items) == 0 {
		r.line(level, label+":")
		return
	}
	for i, item := range s.Items {
		r.line(level, fmt.Sprintf("%s %d:", label, i+1))
		if nested, ok := item.(fieldtree.Sequence); ok {
			r.renderSequence(key, nested, level+1)
			continue
		}
		r.Render(item, level+1)
	}
}

func (r *Renderer) renderField(key string, s fieldtree.Scalar, level int) {
	label := r.styler.Emphasize(key) + ":"
	text := s.Decoded()
	if LooksLikeMarkup(text) {
		r.line(level, label)
		r.block(level+1, r.markup.ToDisplayText(text))
		return
	}
	first, rest, multi := strings.Cut(text, "\n")
	if first == "" {
		r.line(level, label)
	} else {
		r.line(level, label+" "+first)
	}
	if multi {
		r.block(level+1, rest)
	}
}

func (r *Renderer) renderScalar(s fieldtree.Scalar, level int) {
	text := s.Decoded()
	if LooksLikeMarkup(text) {
		text = r.markup.ToDisplayText(text)
	}
	r.block(level, text)
}

func (r *Renderer) block(level int, text string) {
	for _, l := range strings.Split(text, "\n") {
		r.line(level, l)
	}
}

func (r *Renderer) line(level int, s string) {
	if strings.TrimSpace(s) == "" {
		fmt.Fprintln(r.out)
		return
	}
	fmt.Fprintln(r.out, strings.Repeat(indentUnit, level)+s)
}
