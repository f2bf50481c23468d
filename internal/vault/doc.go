// Package vault reads and writes the encrypted store file.
//
// Every operation reads the store through (Load) and mutating operations
// write it back (Save) through a temporary file and rename, so a failed
// write never leaves a truncated store behind. The file is created with
// 0600 permissions inside a 0700 directory.
//
// When no store file exists, Load asks for a passphrase, twice, writes the
// seed store and continues with it.
package vault
