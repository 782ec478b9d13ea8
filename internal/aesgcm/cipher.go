// Package aesgcm is the default Cipher adapter: AES-256-GCM authenticated
// encryption with nonce-prepended output, and PBKDF2-HMAC-SHA256 key
// derivation, matching the layout of the original implementation this
// spec was distilled from (see DESIGN.md).
package aesgcm

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

// KeySize is the AES-256 key length in bytes.
const KeySize = 32

// NonceSize is the GCM standard nonce length in bytes.
const NonceSize = 12

// KDFIterations is the PBKDF2-HMAC-SHA256 iteration count pinned for
// on-disk compatibility (spec §6).
const KDFIterations = 600_000

// Cipher implements ports.Cipher using AES-256-GCM and PBKDF2-HMAC-SHA256.
type Cipher struct{}

// New returns a ready-to-use Cipher. It holds no state.
func New() Cipher { return Cipher{} }

// Encrypt returns nonce(12) || ciphertext || tag(16).
func (Cipher) Encrypt(key, plaintext []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("aesgcm: key must be %d bytes, got %d", KeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aesgcm: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("aesgcm: %w", err)
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("aesgcm: generating nonce: %w", err)
	}

	// Seal appends ciphertext+tag after the supplied dst, so passing nonce
	// as dst produces exactly nonce || ciphertext || tag.
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt splits nonce(12) || ciphertext || tag(16) and authenticates.
func (Cipher) Decrypt(key, blob []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("aesgcm: key must be %d bytes, got %d", KeySize, len(key))
	}
	if len(blob) < NonceSize {
		return nil, fmt.Errorf("aesgcm: ciphertext too short to contain nonce")
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aesgcm: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("aesgcm: %w", err)
	}

	nonce, ciphertext := blob[:NonceSize], blob[NonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("aesgcm: decryption failed (invalid key or corrupt data): %w", err)
	}
	return plaintext, nil
}

// DeriveKey derives a 32-byte key from passphrase and salt using
// PBKDF2-HMAC-SHA256 with 600,000 iterations.
func (Cipher) DeriveKey(passphrase string, salt []byte) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, KDFIterations, KeySize, sha256.New)
}
