package localfs

import (
	"context"
	"testing"

	"github.com/rybkr/checkpointstore/internal/domain"
)

func TestStore_WriteReadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := s.Write(ctx, "content/a.txt", []byte("hello")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := s.Read(ctx, "content/a.txt")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "hello" {
		t.Fatalf("got %q, want %q", got, "hello")
	}
}

func TestStore_ReadMissingIsNotFound(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = s.Read(context.Background(), "nope.txt")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if kind, ok := domain.KindOf(err); !ok || kind != domain.KindNotFound {
		t.Fatalf("got kind %v, want not-found", kind)
	}
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := s.Delete(ctx, "never-existed.txt"); err != nil {
		t.Fatalf("Delete on missing path should not error: %v", err)
	}

	if err := s.Write(ctx, "x.txt", []byte("x")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Delete(ctx, "x.txt"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "x.txt"); err != nil {
		t.Fatalf("second Delete should also succeed: %v", err)
	}

	exists, err := s.Exists(ctx, "x.txt")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if exists {
		t.Fatal("expected x.txt to no longer exist")
	}
}

func TestStore_ListDirectChildrenOnly(t *testing.T) {
	ctx := context.Background()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, p := range []string{"content/a.txt", "content/b.txt", "content/nested/c.txt"} {
		if err := s.Write(ctx, p, []byte("x")); err != nil {
			t.Fatalf("Write(%s): %v", p, err)
		}
	}

	names, err := s.List(ctx, "content")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := map[string]bool{"a.txt": true, "b.txt": true, "nested": true}
	if len(names) != len(want) {
		t.Fatalf("got %v, want keys of %v", names, want)
	}
	for _, n := range names {
		if !want[n] {
			t.Fatalf("unexpected entry %q", n)
		}
	}
}

func TestStore_SizeOfMissingIsNotFound(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = s.Size(context.Background(), "missing")
	if kind, ok := domain.KindOf(err); !ok || kind != domain.KindNotFound {
		t.Fatalf("got kind %v, want not-found", kind)
	}
}
