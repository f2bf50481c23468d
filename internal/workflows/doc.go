// Package workflows implements the operations of pm on the document store.
//
// An Engine reads the whole store through a Repository at the start of
// every call and, for mutations, writes it back once the change has fully
// succeeded in memory. A failed operation never persists anything.
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate Engine method
//   - Formats the Result for display
//
// # Operations
//
//   - Get: query a scope, a document and a key chain
//   - Set: edit, create or insert sentences
//   - Delete: remove sentences, objects or documents, cleaning up empty
//     documents and scopes
//   - Move, Rename: reorganise documents and scopes
//   - Search: find scopes by key or value text
//   - Import, Export: replace or dump the store as JSON or YAML
//   - Hashcode, ResetPassphrase, Lock, Verify, AuditLog
//
// # Scope Matching
//
// Queries match scopes fuzzily by default: a case-insensitive substring.
// Mutations always use the exact scope name. When several scopes match,
// the error is a *kerrors.AmbiguousError listing them, and the caller
// retries with a 1-based Candidate.
//
// # Error Handling
//
// Errors wrap the kinds in internal/errors so that callers classify them
// with errors.Is:
//
//	_, err := engine.Delete(ctx, opts)
//	if errors.Is(err, kerrors.ErrForbidden) {
//	    // suggest --force
//	}
package workflows
