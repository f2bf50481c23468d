package store

import (
	"strings"
)

// Validate checks the invariants an imported store must satisfy beyond what
// Parse already enforces: scope names are neither empty nor the wildcard,
// every scope holds at least one document and no document is empty.
func Validate(s *Store) error {
	for _, name := range s.names {
		if strings.TrimSpace(name) == "" || name == Wildcard {
			return nonCompliant("scope name %q is not allowed", name)
		}

		docs := s.scopes[name]
		if len(docs) == 0 {
			return nonCompliant("scope %q has no documents", name)
		}
		for i, doc := range docs {
			if doc.Len() == 0 {
				return nonCompliant("document %d of scope %q is empty", i+1, name)
			}
		}
	}
	return nil
}

// ParseStrict parses data and validates the result for import.
func ParseStrict(data []byte) (*Store, error) {
	s, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if err := Validate(s); err != nil {
		return nil, err
	}
	return s, nil
}
