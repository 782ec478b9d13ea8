// Package ports declares the abstract capability interfaces the checkpoint
// engine is written against: storage, hashing, text diffing, and
// authenticated encryption. Concrete adapters live in internal/localfs,
// internal/sha256hash, internal/textdiff, and internal/aesgcm.
package ports

import "context"

// Storage is a flat byte-addressed namespace: read/write/delete/exists/
// list/size of path -> bytes. Implementations auto-materialize parent
// directories on Write and treat Delete as idempotent.
type Storage interface {
	Read(ctx context.Context, path string) ([]byte, error)
	Write(ctx context.Context, path string, data []byte) error
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
	// List returns the direct child names of dir; it does not recurse.
	List(ctx context.Context, dir string) ([]string, error)
	Size(ctx context.Context, path string) (int64, error)
}

// Hasher computes a deterministic, second-preimage-resistant content
// digest as lowercase hex.
type Hasher interface {
	Hash(data []byte) string
}

// Differ computes and applies unified-style text patches. Diff(old, new)
// must satisfy Apply(old, Diff(old, new)) == new.
type Differ interface {
	Diff(old, new string) (string, error)
	Apply(text, patch string) (string, error)
}

// Cipher provides authenticated symmetric encryption with nonce-prepended
// output, plus PBKDF2-style key derivation.
type Cipher interface {
	Encrypt(key, plaintext []byte) ([]byte, error)
	Decrypt(key, blob []byte) ([]byte, error)
	DeriveKey(passphrase string, salt []byte) []byte
}
