// Package errors provides typed error values for pm.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Kinds
//
// Every specific error wraps one kind:
//
//   - ErrNotFound: scope, document index or key chain prefix is missing
//   - ErrConflict: creation hit something that already exists
//   - ErrForbidden: overwrite or delete of an object without force
//   - ErrAmbiguous: fuzzy matching produced several scopes (see AmbiguousError)
//   - ErrValidation: malformed import payload, config value or arguments
//   - ErrAuthentication: wrong passphrase, tampered store, retry limit
//   - ErrIO: file, network and store parsing failures
//
// Only ErrAuthenticationFailed is retried (by the secrets session, with a
// fresh passphrase prompt). Everything else surfaces to the caller at once.
//
// # Usage
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("scope %q: %w", name, errors.ErrScopeNotFound)
//
// Handle errors in the CLI layer:
//
//	if errors.Is(err, kerrors.ErrForbidden) {
//	    // suggest --force
//	}
package errors
