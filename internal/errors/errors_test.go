package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSpecificErrorsWrapTheirKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"ScopeNotFound", ErrScopeNotFound, ErrNotFound},
		{"IndexNotFound", ErrIndexNotFound, ErrNotFound},
		{"KeyNotFound", ErrKeyNotFound, ErrNotFound},
		{"KeyExists", ErrKeyExists, ErrConflict},
		{"ScopeExists", ErrScopeExists, ErrConflict},
		{"OverwriteObject", ErrOverwriteObject, ErrForbidden},
		{"DeleteObject", ErrDeleteObject, ErrForbidden},
		{"NonCompliantData", ErrNonCompliantData, ErrValidation},
		{"AuthenticationFailed", ErrAuthenticationFailed, ErrAuthentication},
		{"CorruptStore", ErrCorruptStore, ErrIO},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("context: %w", tc.err)
			if !errors.Is(wrapped, tc.kind) {
				t.Errorf("expected %v to wrap %v", tc.err, tc.kind)
			}
			if Kind(wrapped) != tc.kind {
				t.Errorf("Kind(%v) = %v, expected %v", tc.err, Kind(wrapped), tc.kind)
			}
		})
	}
}

func TestAmbiguousError(t *testing.T) {
	err := fmt.Errorf("resolving: %w", &AmbiguousError{Candidates: []string{"github", "gitlab"}})

	if !errors.Is(err, ErrAmbiguous) {
		t.Fatal("expected AmbiguousError to unwrap to ErrAmbiguous")
	}

	var ambiguous *AmbiguousError
	if !errors.As(err, &ambiguous) {
		t.Fatal("expected errors.As to find AmbiguousError")
	}
	if len(ambiguous.Candidates) != 2 {
		t.Errorf("expected 2 candidates, got %d", len(ambiguous.Candidates))
	}
	if got := ambiguous.Error(); got != "2 scopes found: github, gitlab" {
		t.Errorf("unexpected message %q", got)
	}

	invalid := &AmbiguousError{Candidates: []string{"a", "b"}, Selection: 3}
	if got := invalid.Error(); got != "2 scopes found, invalid candidate number 3" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestKindOfUnclassifiedError(t *testing.T) {
	if Kind(errors.New("plain")) != nil {
		t.Error("expected nil kind for a plain error")
	}
	if Kind(ErrCancelled) != nil {
		t.Error("expected nil kind for ErrCancelled")
	}
}
