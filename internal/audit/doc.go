// Package audit records the mutating operations performed on the store.
//
// Entries are appended as JSON Lines to audit.jsonl next to the store file.
// The file is private to the user (0600) and never holds secrets: an entry
// names the operation, the actor and the hashcode of the store after the
// change, not the scopes or keys that were touched.
//
// # Usage
//
//	entry := audit.NewEntry("set")
//	entry.Hashcode = digest
//	trail.Log(entry)
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails (permissions, disk full,
// etc.), the operation continues without error. A nil Trail logs nothing,
// which is how the auditLog setting disables it.
//
// # Reading Logs
//
// ReadEntries parses the log for `pm log`. Malformed entries are silently
// skipped to handle partial writes.
package audit
