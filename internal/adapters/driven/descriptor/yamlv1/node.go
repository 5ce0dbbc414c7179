package yamlv1

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// nodeKind classifies a YAML node.
type nodeKind int

const (
	kindNull nodeKind = iota
	kindBoolean
	kindNumber
	kindString
	kindSequence
	kindMapping
)

func (k nodeKind) String() string {
	switch k {
	case kindBoolean:
		return "boolean"
	case kindNumber:
		return "number"
	case kindString:
		return "string"
	case kindSequence:
		return "sequence"
	case kindMapping:
		return "mapping"
	default:
		return "null"
	}
}

var errMultipleDocuments = errors.New("expected a single document in the stream")

// parseDocument parses data into its root node.
// An empty stream yields a nil root.
func parseDocument(data []byte) (*yaml.Node, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}

	var next yaml.Node
	if err := dec.Decode(&next); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, errMultipleDocuments
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, nil
		}
		root = root.Content[0]
	}

	if err := checkUniqueKeys(root); err != nil {
		return nil, err
	}
	return root, nil
}

// checkUniqueKeys rejects mappings that define the same scalar key twice.
// Alias targets are checked where they are defined.
func checkUniqueKeys(n *yaml.Node) error {
	if n == nil || n.Kind == yaml.AliasNode {
		return nil
	}
	if n.Kind == yaml.MappingNode {
		seen := make(map[string]bool, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind != yaml.ScalarNode {
				continue
			}
			id := key.ShortTag() + " " + key.Value
			if seen[id] {
				return fmt.Errorf("line %d: mapping key %q already defined", key.Line, key.Value)
			}
			seen[id] = true
		}
	}
	for _, child := range n.Content {
		if err := checkUniqueKeys(child); err != nil {
			return err
		}
	}
	return nil
}

// resolve follows aliases to the anchored node.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// classify returns the kind of n. A nil node is null.
func classify(n *yaml.Node) nodeKind {
	n = resolve(n)
	if n == nil {
		return kindNull
	}
	switch n.Kind {
	case yaml.MappingNode:
		return kindMapping
	case yaml.SequenceNode:
		return kindSequence
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return kindNull
		case "!!bool":
			return kindBoolean
		case "!!int", "!!float":
			return kindNumber
		default:
			// !!str, !!timestamp, !!binary and local tags are text.
			return kindString
		}
	default:
		return kindNull
	}
}

// display renders n for error messages.
func display(n *yaml.Node) string {
	n = resolve(n)
	if n != nil && n.Kind == yaml.ScalarNode {
		return n.Value
	}
	return "<" + classify(n).String() + ">"
}

// mappingEntry is one key/value pair of a mapping node.
type mappingEntry struct {
	key   string
	value *yaml.Node
}

// entries returns the key/value pairs of a mapping node in document order.
func entries(n *yaml.Node) []mappingEntry {
	n = resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	out := make([]mappingEntry, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		out = append(out, mappingEntry{key: display(n.Content[i]), value: n.Content[i+1]})
	}
	return out
}

// lookup returns the value for key in a mapping node.
func lookup(n *yaml.Node, key string) (*yaml.Node, bool) {
	for _, e := range entries(n) {
		if e.key == key {
			return e.value, true
		}
	}
	return nil, false
}

// valueOf converts n into plain Go values: map[string]any, []any, string,
// int, float64, bool, time.Time or nil. The decoder expands aliases and
// merge keys, and rejects recursive anchors and excessive aliasing.
func valueOf(n *yaml.Node) (any, error) {
	if n == nil {
		return nil, nil
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return normalize(v), nil
}

// normalize rewrites maps with non-string keys so every mapping is a
// map[string]any. Keys are rendered the way they appear in error messages.
func normalize(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, item := range v {
			v[k] = normalize(item)
		}
		return v
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, item := range v {
			m[keyString(k)] = normalize(item)
		}
		return m
	case []any:
		for i, item := range v {
			v[i] = normalize(item)
		}
		return v
	default:
		return v
	}
}

func keyString(k any) string {
	if k == nil {
		return "null"
	}
	return fmt.Sprint(k)
}
