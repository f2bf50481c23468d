// Package secrets provides the cryptographic layer of pm.
//
// # Encryption
//
// The store is encrypted with AES-256-GCM. Every Seal draws a fresh 16-byte
// random nonce, and the payload written to disk is
//
//	nonce (16 bytes) || ciphertext || tag (16 bytes)
//
// Open parses that fixed layout and reports a tag mismatch as
// ErrAuthenticationFailed, distinct from I/O failures, so that callers can
// treat it as a wrong key.
//
// # Key Derivation
//
// Keys are derived with scrypt (N=16384, r=8, p=1) from the passphrase, with
// the SHA-256 digest of the passphrase as salt. The same passphrase always
// yields the same key, which keeps existing store files readable.
//
// # Key Cache
//
// The derived key is cached as 32 raw bytes in <tmp>/pmanager/KEYCACHE with
// 0600 permissions. The file's modification time is its freshness signal:
// once older than the configured expiry, the cache is replaced by the key of
// the empty passphrase. An expiry of zero never expires.
//
// # Sessions
//
// A Session holds the active key for one process and is passed explicitly
// to whoever encrypts or decrypts. Decrypt runs a bounded retry loop: the
// cached key first, then up to MaxAttempts passphrase prompts with a growing
// delay, and finally ErrTooManyAttempts.
package secrets
