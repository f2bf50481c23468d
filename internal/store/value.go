package store

// Value is a sentence value: either a string leaf or a nested object.
// The zero Value is an empty leaf.
type Value struct {
	node *Node
	leaf string
}

// Leaf returns a string sentence value.
func Leaf(s string) Value {
	return Value{leaf: s}
}

// Object returns a sentence value wrapping n.
func Object(n *Node) Value {
	if n == nil {
		n = NewNode()
	}
	return Value{node: n}
}

// IsLeaf reports whether v holds a string.
func (v Value) IsLeaf() bool {
	return v.node == nil
}

// String returns the leaf text, or "" for objects.
func (v Value) String() string {
	return v.leaf
}

// Node returns the nested object, or nil for leaves.
func (v Value) Node() *Node {
	return v.node
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	if v.node == nil {
		return v
	}
	return Value{node: v.node.Clone()}
}

// Node is an ordered string-keyed object. Keys keep their first insertion
// position; overwriting a key does not move it.
type Node struct {
	keys   []string
	values map[string]Value
}

// NewNode returns an empty object.
func NewNode() *Node {
	return &Node{values: make(map[string]Value)}
}

// Len returns the number of sentences in n.
func (n *Node) Len() int {
	return len(n.keys)
}

// Keys returns the keys of n in order.
func (n *Node) Keys() []string {
	return append([]string(nil), n.keys...)
}

// Get returns the value under key.
func (n *Node) Get(key string) (Value, bool) {
	v, ok := n.values[key]
	return v, ok
}

// Has reports whether key is present.
func (n *Node) Has(key string) bool {
	_, ok := n.values[key]
	return ok
}

// Set stores v under key, appending the key when it is new.
func (n *Node) Set(key string, v Value) {
	if _, ok := n.values[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.values[key] = v
}

// Delete removes key and reports whether it was present.
func (n *Node) Delete(key string) bool {
	if _, ok := n.values[key]; !ok {
		return false
	}
	delete(n.values, key)
	for i, k := range n.keys {
		if k == key {
			n.keys = append(n.keys[:i], n.keys[i+1:]...)
			break
		}
	}
	return true
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	c := &Node{
		keys:   append([]string(nil), n.keys...),
		values: make(map[string]Value, len(n.values)),
	}
	for k, v := range n.values {
		c.values[k] = v.Clone()
	}
	return c
}

// Walk calls fn for every key and leaf text in n, depth first, until fn
// returns true. It reports whether fn stopped the walk.
func (n *Node) Walk(fn func(key string, v Value) bool) bool {
	for _, k := range n.keys {
		v := n.values[k]
		if fn(k, v) {
			return true
		}
		if !v.IsLeaf() && v.node.Walk(fn) {
			return true
		}
	}
	return false
}
