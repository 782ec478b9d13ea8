package sha256hash

import "testing"

func TestHash_Deterministic(t *testing.T) {
	h := New()
	a := h.Hash([]byte("hello"))
	b := h.Hash([]byte("hello"))
	if a != b {
		t.Fatalf("hash not deterministic: %q != %q", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
}

func TestHash_DifferentContentDifferentHash(t *testing.T) {
	h := New()
	if h.Hash([]byte("hello")) == h.Hash([]byte("world")) {
		t.Fatal("expected different hashes for different content")
	}
}

func TestHash_KnownVector(t *testing.T) {
	h := New()
	got := h.Hash([]byte(""))
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}
