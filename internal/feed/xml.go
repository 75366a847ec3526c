package feed

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"

	"github.com/glabrego/rssview/internal/fieldtree"
)

var ErrNotAFeed = errors.New("not an RSS or Atom document")

// ParseXML reads an RSS 2.0, RSS 1.0 (RDF) or Atom document. Channel
// metadata becomes document entries in source order and the items, or
// Atom entries, are collected under fieldtree.ItemsKey.
//
// An element with only text becomes a Scalar. An element with attributes
// becomes a Mapping of the attributes plus a fieldtree.ValuesKey leaf for
// its text, or for its href when it has no text. Repeated sibling tags are
// grouped into a Sequence under the tag.
func ParseXML(r io.Reader) (fieldtree.Node, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	doc.ReadSettings.Permissive = true
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("parse feed xml: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("parse feed xml: %w: empty document", ErrNotAFeed)
	}

	var meta, items []*etree.Element
	switch root.FullTag() {
	case "rss":
		for _, channel := range root.SelectElements("channel") {
			m, i := splitItems(channel.ChildElements(), "item", fieldtree.ItemsKey)
			meta = append(meta, m...)
			items = append(items, i...)
		}
	case "rdf:RDF":
		for _, el := range root.ChildElements() {
			switch el.Tag {
			case "channel":
				m, _ := splitItems(el.ChildElements(), "", fieldtree.ItemsKey)
				meta = append(meta, m...)
			case "item":
				items = append(items, el)
			default:
				meta = append(meta, el)
			}
		}
	case "feed":
		meta, items = splitItems(root.ChildElements(), "entry", fieldtree.ItemsKey)
	default:
		return nil, fmt.Errorf("parse feed xml: %w: root element <%s>", ErrNotAFeed, root.FullTag())
	}

	out := elementsToMapping(meta)
	seq := fieldtree.Sequence{Items: make([]fieldtree.Node, 0, len(items))}
	for _, item := range items {
		seq.Items = append(seq.Items, elementNode(item))
	}
	out.Entries = append(out.Entries, fieldtree.Entry{Key: fieldtree.ItemsKey, Value: seq})
	return out, nil
}

// splitItems separates elements tagged itemTag from the rest and drops any
// tagged skipTag.
func splitItems(elems []*etree.Element, itemTag, skipTag string) (meta, items []*etree.Element) {
	for _, el := range elems {
		switch {
		case itemTag != "" && el.Tag == itemTag && el.Space == "":
			items = append(items, el)
		case el.FullTag() == skipTag:
		default:
			meta = append(meta, el)
		}
	}
	return meta, items
}

func elementsToMapping(elems []*etree.Element) fieldtree.Mapping {
	counts := make(map[string]int, len(elems))
	for _, el := range elems {
		counts[el.FullTag()]++
	}
	m := fieldtree.Mapping{Entries: make([]fieldtree.Entry, 0, len(counts))}
	position := make(map[string]int, len(counts))
	for _, el := range elems {
		key := el.FullTag()
		value := elementNode(el)
		if counts[key] == 1 {
			m.Entries = append(m.Entries, fieldtree.Entry{Key: key, Value: value})
			continue
		}
		if i, ok := position[key]; ok {
			seq := m.Entries[i].Value.(fieldtree.Sequence)
			seq.Items = append(seq.Items, value)
			m.Entries[i].Value = seq
			continue
		}
		position[key] = len(m.Entries)
		m.Entries = append(m.Entries, fieldtree.Entry{
			Key:   key,
			Value: fieldtree.Sequence{Items: []fieldtree.Node{value}},
		})
	}
	return m
}

func elementNode(el *etree.Element) fieldtree.Node {
	attrs := attributes(el)
	children := el.ChildElements()

	var text string
	if len(children) > 0 && isEmbeddedMarkup(el) {
		text = innerXML(children)
		children = nil
	} else {
		text = strings.TrimSpace(el.Text())
	}

	if len(attrs) == 0 && len(children) == 0 {
		return fieldtree.Scalar{Text: text}
	}

	var nested []fieldtree.Entry
	if len(children) > 0 {
		nested = elementsToMapping(children).Entries
	}
	if text == "" && len(children) == 0 {
		text = el.SelectAttrValue("href", "")
	}

	taken := make(map[string]bool, len(nested)+1)
	for _, e := range nested {
		taken[e.Key] = true
	}
	if text != "" {
		taken[fieldtree.ValuesKey] = true
	}
	m := fieldtree.Mapping{Entries: make([]fieldtree.Entry, 0, len(attrs)+len(nested)+1)}
	for _, a := range attrs {
		// An attribute sharing a name with a child element or the text
		// leaf is kept under an "@" prefix.
		for taken[a.Key] {
			a.Key = "@" + a.Key
		}
		taken[a.Key] = true
		m.Entries = append(m.Entries, a)
	}
	m.Entries = append(m.Entries, nested...)
	if text != "" {
		m.Entries = append(m.Entries, fieldtree.Entry{Key: fieldtree.ValuesKey, Value: fieldtree.Scalar{Text: text}})
	}
	return m
}

// attributes returns el's attributes without namespace declarations.
func attributes(el *etree.Element) []fieldtree.Entry {
	out := make([]fieldtree.Entry, 0, len(el.Attr))
	for _, a := range el.Attr {
		if a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns") {
			continue
		}
		out = append(out, fieldtree.Entry{Key: a.FullKey(), Value: fieldtree.Scalar{Text: a.Value}})
	}
	return out
}

// isEmbeddedMarkup reports Atom text constructs that carry XHTML children.
func isEmbeddedMarkup(el *etree.Element) bool {
	return el.SelectAttrValue("type", "") == "xhtml"
}

func innerXML(children []*etree.Element) string {
	doc := etree.NewDocument()
	for _, c := range children {
		doc.AddChild(c.Copy())
	}
	s, err := doc.WriteToString()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}
