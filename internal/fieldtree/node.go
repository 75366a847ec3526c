// Package fieldtree holds the nested field model produced by the feed
// loaders and consumed read-only by the renderer and the item browser.
package fieldtree

import (
	"html"
	"regexp"
)

// ItemsKey is the document entry that holds the browsable item sequence.
const ItemsKey = "items"

// ValuesKey is the leaf name upstream parsers use for an element's text.
const ValuesKey = "values"

var reValuesMarker = regexp.MustCompile(`(?:: ?| )values$`)

// Node is exactly one of Scalar, Mapping or Sequence.
type Node interface {
	node()
}

// Scalar is a leaf value. Text is raw: it may still carry HTML entities.
type Scalar struct {
	Text string
}

// Entry is one key/value pair of a Mapping.
type Entry struct {
	Key   string
	Value Node
}

// Mapping is an ordered set of uniquely keyed entries. Entry order is display order.
type Mapping struct {
	Entries []Entry
}

// Sequence is an ordered list of nodes.
type Sequence struct {
	Items []Node
}

func (Scalar) node()   {}
func (Mapping) node()  {}
func (Sequence) node() {}

// Decoded returns the scalar text with HTML entities unescaped once.
func (s Scalar) Decoded() string {
	return Decode(s.Text)
}

// Get returns the value stored under key, comparing keys verbatim.
func (m Mapping) Get(key string) (Node, bool) {
	for _, e := range m.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Lookup returns the value whose normalized key equals name, so "title",
// "title values" and "title: values" all answer to "title".
func (m Mapping) Lookup(name string) (Node, bool) {
	if v, ok := m.Get(name); ok {
		return v, true
	}
	for _, e := range m.Entries {
		if NormalizeKey(e.Key) == name {
			return e.Value, true
		}
	}
	return nil, false
}

// Len reports the number of entries.
func (m Mapping) Len() int { return len(m.Entries) }

// Len reports the number of items.
func (s Sequence) Len() int { return len(s.Items) }

// Decode unescapes HTML entities. Applying it to text that holds no
// entities returns the text unchanged.
func Decode(raw string) string {
	return html.UnescapeString(raw)
}

// NormalizeKey strips a trailing ": values", ":values" or " values" marker.
// A key that is exactly "values" is left alone.
func NormalizeKey(key string) string {
	return reValuesMarker.ReplaceAllString(key, "")
}

// Items returns the document's item sequence. ok is false when the entry is
// missing or is not a Sequence.
func Items(doc Node) (Sequence, bool) {
	m, ok := doc.(Mapping)
	if !ok {
		return Sequence{}, false
	}
	v, ok := m.Lookup(ItemsKey)
	if !ok {
		return Sequence{}, false
	}
	seq, ok := v.(Sequence)
	return seq, ok
}

// Text flattens a summary field to display text. A Scalar yields its
// decoded text; a Mapping yields its "values" leaf, falling back to its
// first textual entry; a Sequence yields its first item. Missing fields
// yield "".
func Text(n Node) string {
	switch v := n.(type) {
	case Scalar:
		return v.Decoded()
	case Mapping:
		if inner, ok := v.Lookup(ValuesKey); ok {
			return Text(inner)
		}
		for _, e := range v.Entries {
			if t := Text(e.Value); t != "" {
				return t
			}
		}
		return ""
	case Sequence:
		for _, item := range v.Items {
			if t := Text(item); t != "" {
				return t
			}
		}
		return ""
	default:
		return ""
	}
}

// Field returns the summary text of the first of names present in item.
func Field(item Node, names ...string) string {
	m, ok := item.(Mapping)
	if !ok {
		return ""
	}
	for _, name := range names {
		if v, ok := m.Lookup(name); ok {
			if t := Text(v); t != "" {
				return t
			}
		}
	}
	return ""
}
