package fieldtree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnsupportedNode = errors.New("unsupported document node")
	ErrDuplicateKey    = errors.New("duplicate mapping key")
)

// Load reads a JSON or YAML document into a Node, keeping mapping order.
// An empty input yields an empty Mapping.
func Load(r io.Reader) (Node, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Mapping{}, nil
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		n, err := loadJSON(trimmed)
		if err == nil {
			return n, nil
		}
		// Flow-style YAML also opens with a bracket.
		if yn, yerr := loadYAML(trimmed); yerr == nil {
			return yn, nil
		}
		return nil, err
	}
	return loadYAML(trimmed)
}

func loadJSON(raw []byte) (Node, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	n, err := decodeJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("decode json document: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode json document: trailing data after top-level value")
	}
	return n, nil
}

func decodeJSONValue(dec *json.Decoder) (Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			var m Mapping
			seen := make(map[string]struct{})
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("%w: non-string key %v", ErrUnsupportedNode, kt)
				}
				if _, dup := seen[key]; dup {
					return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, key)
				}
				seen[key] = struct{}{}
				value, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				m.Entries = append(m.Entries, Entry{Key: key, Value: value})
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return m, nil
		case '[':
			var s Sequence
			for dec.More() {
				item, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				s.Items = append(s.Items, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return s, nil
		}
		return nil, fmt.Errorf("%w: unexpected delimiter %q", ErrUnsupportedNode, v)
	case string:
		return Scalar{Text: v}, nil
	case json.Number:
		return Scalar{Text: v.String()}, nil
	case bool:
		return Scalar{Text: strconv.FormatBool(v)}, nil
	case nil:
		return Scalar{}, nil
	default:
		return nil, fmt.Errorf("%w: token %T", ErrUnsupportedNode, tok)
	}
}

// maxYAMLNodes caps the tree built from one YAML document. Aliases expand in
// place, so nested anchors can describe exponentially many nodes.
const maxYAMLNodes = 1 << 20

func loadYAML(raw []byte) (Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml document: %w", err)
	}
	w := yamlWalker{budget: maxYAMLNodes}
	return w.node(&doc)
}

type yamlWalker struct {
	budget int
}

func (w *yamlWalker) node(n *yaml.Node) (Node, error) {
	w.budget--
	if w.budget < 0 {
		return nil, fmt.Errorf("%w: document expands past %d nodes", ErrUnsupportedNode, maxYAMLNodes)
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Mapping{}, nil
		}
		return w.node(n.Content[0])
	case yaml.MappingNode:
		m := Mapping{Entries: make([]Entry, 0, len(n.Content)/2)}
		seen := make(map[string]struct{}, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			if _, dup := seen[key]; dup {
				return nil, fmt.Errorf("%w: %q (line %d)", ErrDuplicateKey, key, n.Content[i].Line)
			}
			seen[key] = struct{}{}
			value, err := w.node(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Entries = append(m.Entries, Entry{Key: key, Value: value})
		}
		return m, nil
	case yaml.SequenceNode:
		s := Sequence{Items: make([]Node, 0, len(n.Content))}
		for _, c := range n.Content {
			item, err := w.node(c)
			if err != nil {
				return nil, err
			}
			s.Items = append(s.Items, item)
		}
		return s, nil
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return Scalar{}, nil
		}
		return Scalar{Text: n.Value}, nil
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, fmt.Errorf("%w: dangling alias at line %d", ErrUnsupportedNode, n.Line)
		}
		return w.node(n.Alias)
	default:
		return nil, fmt.Errorf("%w: yaml kind %d", ErrUnsupportedNode, n.Kind)
	}
}
