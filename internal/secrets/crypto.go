package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	kerrors "github.com/pmanager/pm/internal/errors"
)

const (
	// KeySize is the length of a derived key (AES-256).
	KeySize = 32

	// NonceSize is the length of the random nonce prefixed to every payload.
	NonceSize = 16

	// TagSize is the length of the GCM authentication tag suffixed to every payload.
	TagSize = 16
)

// Seal encrypts plaintext with AES-256-GCM under key. The result is laid out
// as nonce || ciphertext || tag, with a fresh random nonce on every call.
func Seal(key, plaintext []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, NonceSize, NonceSize+len(plaintext)+TagSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts a payload produced by Seal. A tag mismatch returns
// ErrAuthenticationFailed, which callers treat as a wrong key.
func Open(key, payload []byte) ([]byte, error) {
	if len(payload) < NonceSize+TagSize {
		return nil, fmt.Errorf("%w: %d bytes", kerrors.ErrCorruptStore, len(payload))
	}

	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}

	nonce := payload[:NonceSize]
	plaintext, err := aead.Open(nil, nonce, payload[NonceSize:], nil)
	if err != nil {
		return nil, kerrors.ErrAuthenticationFailed
	}
	return plaintext, nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d bytes", kerrors.ErrInvalidKeyLength, KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create block cipher: %w", err)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, NonceSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aead, nil
}
