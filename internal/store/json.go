package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	kerrors "github.com/pmanager/pm/internal/errors"
)

// Parse decodes a store from JSON text. The top level must be an object of
// scope names to arrays of objects, and every sentence value a string or an
// object. Anything else fails with ErrNonCompliantData.
func Parse(data []byte) (*Store, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	s, err := decodeStore(dec)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, nonCompliant("unexpected data after the top-level object")
	}

	return s, nil
}

func decodeStore(dec *json.Decoder) (*Store, error) {
	if err := expectDelim(dec, '{', "top level"); err != nil {
		return nil, err
	}

	s := New()
	for dec.More() {
		name, err := decodeKey(dec)
		if err != nil {
			return nil, err
		}

		if err := expectDelim(dec, '[', fmt.Sprintf("scope %q", name)); err != nil {
			return nil, err
		}
		docs := []*Node{}
		for dec.More() {
			if err := expectDelim(dec, '{', fmt.Sprintf("document %d of scope %q", len(docs)+1, name)); err != nil {
				return nil, err
			}
			doc, err := decodeNode(dec)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
		if _, err := dec.Token(); err != nil {
			return nil, nonCompliant("scope %q: %v", name, err)
		}

		s.SetScope(name, docs)
	}

	if _, err := dec.Token(); err != nil {
		return nil, nonCompliant("top level: %v", err)
	}
	return s, nil
}

// decodeNode reads the members of an object whose opening brace has already
// been consumed.
func decodeNode(dec *json.Decoder) (*Node, error) {
	n := NewNode()
	for dec.More() {
		key, err := decodeKey(dec)
		if err != nil {
			return nil, err
		}
		v, err := decodeValue(dec, key)
		if err != nil {
			return nil, err
		}
		n.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, nonCompliant("%v", err)
	}
	return n, nil
}

func decodeValue(dec *json.Decoder, key string) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, nonCompliant("key %q: %v", key, err)
	}

	switch t := tok.(type) {
	case string:
		return Leaf(t), nil
	case json.Delim:
		if t == '{' {
			n, err := decodeNode(dec)
			if err != nil {
				return Value{}, err
			}
			return Object(n), nil
		}
		return Value{}, nonCompliant("key %q holds an array", key)
	default:
		return Value{}, nonCompliant("key %q must hold a string or an object, got %v", key, t)
	}
}

func decodeKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", nonCompliant("%v", err)
	}
	key, ok := tok.(string)
	if !ok {
		return "", nonCompliant("object key expected, got %v", tok)
	}
	return key, nil
}

func expectDelim(dec *json.Decoder, want json.Delim, what string) error {
	tok, err := dec.Token()
	if err != nil {
		return nonCompliant("%s: %v", what, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		kind := "an object"
		if want == '[' {
			kind = "an array"
		}
		return nonCompliant("%s must be %s", what, kind)
	}
	return nil
}

func nonCompliant(format string, args ...any) error {
	return fmt.Errorf("%w: %s", kerrors.ErrNonCompliantData, fmt.Sprintf(format, args...))
}

// Marshal encodes s as compact JSON in store order. The output is canonical:
// equal stores always encode to equal bytes.
func Marshal(s *Store) []byte {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeString(&buf, name)
		buf.WriteString(":[")
		for j, doc := range s.scopes[name] {
			if j > 0 {
				buf.WriteByte(',')
			}
			writeNode(&buf, doc)
		}
		buf.WriteByte(']')
	}
	buf.WriteByte('}')
	return buf.Bytes()
}

// MarshalIndent encodes s as JSON indented with two spaces.
func MarshalIndent(s *Store) ([]byte, error) {
	return indent(Marshal(s))
}

// MarshalValue encodes v as compact JSON.
func MarshalValue(v Value) []byte {
	var buf bytes.Buffer
	writeValue(&buf, v)
	return buf.Bytes()
}

// MarshalValueIndent encodes v as JSON indented with two spaces.
func MarshalValueIndent(v Value) ([]byte, error) {
	return indent(MarshalValue(v))
}

// MarshalValuesIndent encodes vs as an indented JSON array.
func MarshalValuesIndent(vs []Value) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range vs {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeValue(&buf, v)
	}
	buf.WriteByte(']')
	return indent(buf.Bytes())
}

func indent(compact []byte) ([]byte, error) {
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func writeNode(buf *bytes.Buffer, n *Node) {
	buf.WriteByte('{')
	for i, k := range n.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeString(buf, k)
		buf.WriteByte(':')
		writeValue(buf, n.values[k])
	}
	buf.WriteByte('}')
}

func writeValue(buf *bytes.Buffer, v Value) {
	if v.IsLeaf() {
		writeString(buf, v.leaf)
		return
	}
	writeNode(buf, v.node)
}

func writeString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	// Drop the newline Encode appends.
	buf.Truncate(buf.Len() - 1)
}
