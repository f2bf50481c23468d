package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every specific error below wraps exactly one of these so the
// CLI layer can classify a failure with errors.Is.
var (
	// ErrNotFound indicates a scope, document index or key chain prefix does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates the target already exists where creation was requested.
	ErrConflict = errors.New("conflict")

	// ErrForbidden indicates the operation would overwrite or delete an object without force.
	ErrForbidden = errors.New("not allowed")

	// ErrAmbiguous indicates fuzzy matching yielded several candidates.
	ErrAmbiguous = errors.New("ambiguous")

	// ErrValidation indicates malformed input data.
	ErrValidation = errors.New("invalid input")

	// ErrAuthentication indicates the active key could not authenticate the store.
	ErrAuthentication = errors.New("authentication failed")

	// ErrIO indicates a file, network or store parsing failure.
	ErrIO = errors.New("i/o failure")
)

// Addressing errors.
var (
	// ErrScopeNotFound indicates no scope matched the requested name.
	ErrScopeNotFound = withKind("no scope found", ErrNotFound)

	// ErrIndexNotFound indicates the scope has no document at the requested index.
	ErrIndexNotFound = withKind("document index does not exist", ErrNotFound)

	// ErrKeyNotFound indicates a key chain prefix does not resolve.
	ErrKeyNotFound = withKind("key does not exist", ErrNotFound)

	// ErrNoMatch indicates a query or search produced no values.
	ErrNoMatch = withKind("no matching entries", ErrNotFound)
)

// Mutation errors.
var (
	// ErrKeyExists indicates create mode hit an existing key.
	ErrKeyExists = withKind("key already exists", ErrConflict)

	// ErrScopeExists indicates a rename target scope already exists.
	ErrScopeExists = withKind("scope already exists", ErrConflict)

	// ErrNotAnObject indicates a key chain walks through a string sentence.
	ErrNotAnObject = withKind("key does not hold an object", ErrConflict)

	// ErrOverwriteObject indicates an object would be overwritten without force.
	ErrOverwriteObject = withKind("overwriting an object requires force", ErrForbidden)

	// ErrDeleteObject indicates a non-empty object would be deleted without force.
	ErrDeleteObject = withKind("deleting a non-empty object requires force", ErrForbidden)

	// ErrDeleteDocument indicates a whole document would be deleted without force.
	ErrDeleteDocument = withKind("deleting a whole document requires force", ErrForbidden)
)

// Input errors.
var (
	// ErrKeyChainRequired indicates an operation needs at least one key.
	ErrKeyChainRequired = withKind("key chain cannot be missing", ErrValidation)

	// ErrInvalidScopeName indicates an empty or wildcard scope name.
	ErrInvalidScopeName = withKind("invalid scope name", ErrValidation)

	// ErrNonCompliantData indicates a payload that breaks the store structure.
	ErrNonCompliantData = withKind("non-compliant data input", ErrValidation)

	// ErrInvalidConfig indicates an unknown configuration key or an unusable value.
	ErrInvalidConfig = withKind("invalid configuration", ErrValidation)

	// ErrUnsupportedFormat indicates an unknown import or export format.
	ErrUnsupportedFormat = withKind("unsupported data format", ErrValidation)
)

// Crypto and storage errors.
var (
	// ErrAuthenticationFailed indicates the AEAD tag did not verify under the active key.
	ErrAuthenticationFailed = withKind("wrong passphrase or tampered store", ErrAuthentication)

	// ErrTooManyAttempts indicates the passphrase retry limit was exceeded.
	ErrTooManyAttempts = withKind("maximum passphrase trial reached", ErrAuthentication)

	// ErrInvalidKeyLength indicates a key that is not 32 bytes.
	ErrInvalidKeyLength = withKind("invalid key length", ErrAuthentication)

	// ErrCorruptStore indicates the store file is too short to hold nonce and tag.
	ErrCorruptStore = withKind("store file is corrupted", ErrIO)

	// ErrCancelled indicates the user aborted a passphrase prompt.
	ErrCancelled = errors.New("cancelled by user")
)

// AmbiguousError reports the candidate scopes of a multi-match. Selection is
// the rejected 1-based candidate number, or 0 when none was supplied.
type AmbiguousError struct {
	Candidates []string
	Selection  int
}

func (e *AmbiguousError) Error() string {
	if e.Selection != 0 {
		return fmt.Sprintf("%d scopes found, invalid candidate number %d", len(e.Candidates), e.Selection)
	}
	return fmt.Sprintf("%d scopes found: %s", len(e.Candidates), strings.Join(e.Candidates, ", "))
}

func (e *AmbiguousError) Unwrap() error {
	return ErrAmbiguous
}

// Kind returns the error kind wrapped by err, or nil when err carries none.
func Kind(err error) error {
	for _, kind := range []error{ErrNotFound, ErrConflict, ErrForbidden, ErrAmbiguous, ErrValidation, ErrAuthentication, ErrIO} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// kindError is a specific error whose message stands alone but which still
// matches its kind under errors.Is.
type kindError struct {
	msg  string
	kind error
}

func withKind(msg string, kind error) error {
	return &kindError{msg: msg, kind: kind}
}

func (e *kindError) Error() string {
	return e.msg
}

func (e *kindError) Unwrap() error {
	return e.kind
}
