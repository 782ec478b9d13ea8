package aesgcm

import "testing"

func TestCipher_RoundTrip(t *testing.T) {
	c := New()
	key := c.DeriveKey("correct horse battery staple", []byte("salt"))

	plaintext := []byte("Secret Message")
	ciphertext, err := c.Encrypt(key, plaintext)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if ciphertext == nil {
		t.Fatal("nil ciphertext")
	}
	if len(ciphertext) <= len(plaintext) {
		t.Fatalf("expected nonce+tag overhead, got len %d for plaintext len %d", len(ciphertext), len(plaintext))
	}

	got, err := c.Decrypt(key, ciphertext)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if string(got) != string(plaintext) {
		t.Fatalf("got %q, want %q", got, plaintext)
	}
}

func TestCipher_WrongKeyFails(t *testing.T) {
	c := New()
	key := c.DeriveKey("pw1", []byte("salt"))
	wrongKey := c.DeriveKey("pw2", []byte("salt"))

	ciphertext, err := c.Encrypt(key, []byte("data"))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	if _, err := c.Decrypt(wrongKey, ciphertext); err == nil {
		t.Fatal("expected decryption with wrong key to fail")
	}
}

func TestCipher_DifferentNoncesProduceDifferentCiphertexts(t *testing.T) {
	c := New()
	key := c.DeriveKey("pw", []byte("salt"))

	a, err := c.Encrypt(key, []byte("same content"))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	b, err := c.Encrypt(key, []byte("same content"))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if string(a) == string(b) {
		t.Fatal("expected different ciphertexts for different random nonces")
	}
}

func TestCipher_DeriveKeyDeterministic(t *testing.T) {
	c := New()
	a := c.DeriveKey("pw", []byte("salt"))
	b := c.DeriveKey("pw", []byte("salt"))
	if string(a) != string(b) {
		t.Fatal("expected deterministic key derivation for same inputs")
	}
	if len(a) != KeySize {
		t.Fatalf("expected %d-byte key, got %d", KeySize, len(a))
	}
}

func TestCipher_RejectsWrongKeyLength(t *testing.T) {
	c := New()
	if _, err := c.Encrypt([]byte("short"), []byte("data")); err == nil {
		t.Fatal("expected error for short key")
	}
}
