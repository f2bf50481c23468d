// Package utils provides shared helpers for pm.
//
// # Filesystem Utilities
//
//   - WriteFileAtomic: writes through a temp file and rename
//   - FileExists: checks for a regular file
//
// # Matching
//
//   - Match: exact or case-insensitive substring comparison used for
//     scope and key lookup
//
// # I/O Utilities
//
//   - ReadStdin: reads piped input for imports
//
// # Terminal Utilities
//
//   - TerminalPrompter: hidden passphrase prompt with a cancel token,
//     falling back to /dev/tty when stdin carries data
//
// # System Utilities
//
//   - GetUsername, GetHostname: identify the actor in audit entries
package utils
