package store

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

const yamlStrTag = "!!str"

// ParseYAML decodes a store from YAML text with the same structural rules as
// Parse. Scalars must resolve to strings, so numbers and booleans have to be
// quoted.
func ParseYAML(data []byte) (*Store, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, nonCompliant("%v", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, nonCompliant("empty document")
	}

	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, nonCompliant("top level must be a mapping")
	}

	s := New()
	for i := 0; i+1 < len(top.Content); i += 2 {
		name := top.Content[i].Value
		list := top.Content[i+1]
		if list.Kind != yaml.SequenceNode {
			return nil, nonCompliant("scope %q must be a sequence", name)
		}

		docs := make([]*Node, 0, len(list.Content))
		for j, item := range list.Content {
			if item.Kind != yaml.MappingNode {
				return nil, nonCompliant("document %d of scope %q must be a mapping", j+1, name)
			}
			doc, err := nodeFromYAML(item)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
		s.SetScope(name, docs)
	}
	return s, nil
}

func nodeFromYAML(m *yaml.Node) (*Node, error) {
	n := NewNode()
	for i := 0; i+1 < len(m.Content); i += 2 {
		key := m.Content[i]
		if key.Kind != yaml.ScalarNode {
			return nil, nonCompliant("object keys must be scalars")
		}

		val := m.Content[i+1]
		switch {
		case val.Kind == yaml.ScalarNode && val.Tag == yamlStrTag:
			n.Set(key.Value, Leaf(val.Value))
		case val.Kind == yaml.MappingNode:
			child, err := nodeFromYAML(val)
			if err != nil {
				return nil, err
			}
			n.Set(key.Value, Object(child))
		default:
			return nil, nonCompliant("key %q must hold a string or a mapping", key.Value)
		}
	}
	return n, nil
}

// MarshalYAML encodes s as YAML in store order.
func MarshalYAML(s *Store) ([]byte, error) {
	top := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range s.names {
		list := &yaml.Node{Kind: yaml.SequenceNode}
		for _, doc := range s.scopes[name] {
			list.Content = append(list.Content, nodeToYAML(doc))
		}
		top.Content = append(top.Content, strScalar(name), list)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(top); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func nodeToYAML(n *Node) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range n.keys {
		v := n.values[k]
		if v.IsLeaf() {
			m.Content = append(m.Content, strScalar(k), strScalar(v.leaf))
		} else {
			m.Content = append(m.Content, strScalar(k), nodeToYAML(v.node))
		}
	}
	return m
}

func strScalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: yamlStrTag, Value: s}
}
