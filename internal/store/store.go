package store

// Wildcard is the scope token that stands for every scope in queries.
const Wildcard = "*"

// Store is the ordered mapping of scope names to document lists.
type Store struct {
	names  []string
	scopes map[string][]*Node
}

// New returns an empty store.
func New() *Store {
	return &Store{scopes: make(map[string][]*Node)}
}

// Seed returns the store written on first use.
func Seed() *Store {
	nested := NewNode()
	nested.Set("tmpKey", Leaf("fetch me by key chain `scopeDemo nestObj tmpKey`"))

	doc := NewNode()
	doc.Set("name", Leaf("document1"))
	doc.Set("description", Leaf("This is a sample document."))
	doc.Set("nestObj", Object(nested))

	s := New()
	s.SetScope("scopeDemo", []*Node{doc})
	return s
}

// Len returns the number of scopes.
func (s *Store) Len() int {
	return len(s.names)
}

// Names returns the scope names in order.
func (s *Store) Names() []string {
	return append([]string(nil), s.names...)
}

// Scope returns the documents of name.
func (s *Store) Scope(name string) ([]*Node, bool) {
	docs, ok := s.scopes[name]
	return docs, ok
}

// HasScope reports whether name exists.
func (s *Store) HasScope(name string) bool {
	_, ok := s.scopes[name]
	return ok
}

// SetScope replaces the documents of name, appending the name when it is new.
func (s *Store) SetScope(name string, docs []*Node) {
	if _, ok := s.scopes[name]; !ok {
		s.names = append(s.names, name)
	}
	if docs == nil {
		docs = []*Node{}
	}
	s.scopes[name] = docs
}

// DeleteScope removes name and reports whether it was present.
func (s *Store) DeleteScope(name string) bool {
	if _, ok := s.scopes[name]; !ok {
		return false
	}
	delete(s.scopes, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
	return true
}

// RenameScope moves the documents of from under to, keeping the position of
// from. It reports false when from is missing or to already exists.
func (s *Store) RenameScope(from, to string) bool {
	docs, ok := s.scopes[from]
	if !ok || s.HasScope(to) {
		return false
	}
	delete(s.scopes, from)
	s.scopes[to] = docs
	for i, n := range s.names {
		if n == from {
			s.names[i] = to
			break
		}
	}
	return true
}

// Clone returns a deep copy of s.
func (s *Store) Clone() *Store {
	c := New()
	for _, name := range s.names {
		docs := s.scopes[name]
		copied := make([]*Node, len(docs))
		for i, d := range docs {
			copied[i] = d.Clone()
		}
		c.SetScope(name, copied)
	}
	return c
}
