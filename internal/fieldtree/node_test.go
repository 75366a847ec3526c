package fieldtree

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKey(t *testing.T) {
	cases := map[string]string{
		"title: values": "title",
		"title:values":  "title",
		"title values":  "title",
		"title":         "title",
		"values":        "values",
		"title Values":  "title Values",
		"values title":  "values title",
		"a: b: values":  "a: b",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeKey(in), "NormalizeKey(%q)", in)
	}
}

func TestDecode_AppliedOnce(t *testing.T) {
	assert.Equal(t, "Hello & <b>World</b>", Decode("Hello &amp; &lt;b&gt;World&lt;/b&gt;"))
	assert.Equal(t, "&lt;", Decode("&amp;lt;"))
	plain := "no entities here"
	assert.Equal(t, plain, Decode(Decode(plain)))
}

func TestMappingLookup_MatchesNormalizedKeys(t *testing.T) {
	m := Mapping{Entries: []Entry{
		{Key: "title: values", Value: Scalar{Text: "A"}},
		{Key: "link", Value: Scalar{Text: "http://x"}},
	}}

	v, ok := m.Lookup("title")
	require.True(t, ok)
	assert.Equal(t, Scalar{Text: "A"}, v)

	_, ok = m.Lookup("pubDate")
	assert.False(t, ok)
}

func TestItems(t *testing.T) {
	doc := Mapping{Entries: []Entry{
		{Key: "items", Value: Sequence{Items: []Node{Mapping{}}}},
	}}
	seq, ok := Items(doc)
	require.True(t, ok)
	assert.Equal(t, 1, seq.Len())

	_, ok = Items(Mapping{Entries: []Entry{{Key: "items", Value: Scalar{Text: "x"}}}})
	assert.False(t, ok)

	_, ok = Items(Mapping{})
	assert.False(t, ok)

	_, ok = Items(Scalar{Text: "items"})
	assert.False(t, ok)
}

func TestField_ToleratesUpstreamShapes(t *testing.T) {
	item := Mapping{Entries: []Entry{
		{Key: "title", Value: Mapping{Entries: []Entry{{Key: "values", Value: Scalar{Text: "Fish &amp; Chips"}}}}},
		{Key: "link", Value: Scalar{Text: "http://x"}},
		{Key: "category", Value: Sequence{Items: []Node{Scalar{Text: ""}, Scalar{Text: "news"}}}},
	}}

	assert.Equal(t, "Fish & Chips", Field(item, "title"))
	assert.Equal(t, "http://x", Field(item, "url", "link"))
	assert.Equal(t, "news", Field(item, "category"))
	assert.Equal(t, "", Field(item, "pubDate"))
	assert.Equal(t, "", Field(Scalar{Text: "x"}, "title"))
}

func TestLoad_JSONPreservesOrder(t *testing.T) {
	doc, err := Load(strings.NewReader(`{"zeta": "1", "alpha": {"b": 2, "a": [true, null]}, "items": []}`))
	require.NoError(t, err)

	m, ok := doc.(Mapping)
	require.True(t, ok)
	require.Len(t, m.Entries, 3)
	assert.Equal(t, "zeta", m.Entries[0].Key)
	assert.Equal(t, "alpha", m.Entries[1].Key)
	assert.Equal(t, "items", m.Entries[2].Key)

	alpha := m.Entries[1].Value.(Mapping)
	assert.Equal(t, "b", alpha.Entries[0].Key)
	assert.Equal(t, Scalar{Text: "2"}, alpha.Entries[0].Value)
	assert.Equal(t, Sequence{Items: []Node{Scalar{Text: "true"}, Scalar{}}}, alpha.Entries[1].Value)
}

func TestLoad_YAML(t *testing.T) {
	doc, err := Load(strings.NewReader("title: Feed\nitems:\n  - title: A\n    link: http://x\n"))
	require.NoError(t, err)

	seq, ok := Items(doc)
	require.True(t, ok)
	require.Equal(t, 1, seq.Len())
	assert.Equal(t, "http://x", Field(seq.Items[0], "link"))
}

func TestLoad_EmptyInput(t *testing.T) {
	doc, err := Load(strings.NewReader("  \n"))
	require.NoError(t, err)
	assert.Equal(t, Mapping{}, doc)
}

func TestLoad_DuplicateKeys(t *testing.T) {
	_, err := Load(strings.NewReader(`{"a": "1", "a": "2"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate mapping key")
}

func TestLoad_YAMLAliasesExpand(t *testing.T) {
	doc, err := Load(strings.NewReader("base: &b\n  title: Shared\nitems:\n  - *b\n  - *b\n"))
	require.NoError(t, err)

	seq, ok := Items(doc)
	require.True(t, ok)
	require.Equal(t, 2, seq.Len())
	assert.Equal(t, "Shared", Field(seq.Items[1], "title"))
}

func TestLoad_YAMLAliasExpansionIsBounded(t *testing.T) {
	var b strings.Builder
	b.WriteString("l0: &l0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i <= 8; i++ {
		ref := fmt.Sprintf("*l%d", i-1)
		fmt.Fprintf(&b, "l%d: &l%d [%s]\n", i, i, strings.TrimSuffix(strings.Repeat(ref+", ", 10), ", "))
	}

	_, err := Load(strings.NewReader(b.String()))
	require.ErrorIs(t, err, ErrUnsupportedNode)
	assert.Contains(t, err.Error(), "expands past")
}
