// Package teststore is an in-memory ports.Storage implementation for fast,
// filesystem-free unit tests of the engine packages, in the spirit of the
// original implementation's own in-memory storage test double.
package teststore

import (
	"context"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/rybkr/checkpointstore/internal/domain"
)

// Store is a map-backed ports.Storage. Safe for concurrent use by a single
// test, though the engine itself never calls it concurrently.
type Store struct {
	mu    sync.Mutex
	files map[string][]byte
}

// New returns an empty in-memory Store.
func New() *Store {
	return &Store{files: make(map[string][]byte)}
}

func clean(p string) string {
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}

func (s *Store) Read(_ context.Context, p string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[clean(p)]
	if !ok {
		return nil, domain.NewError(domain.KindNotFound, "teststore.Read", nil)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *Store) Write(_ context.Context, p string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.files[clean(p)] = cp
	return nil
}

func (s *Store) Delete(_ context.Context, p string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, clean(p))
	return nil
}

func (s *Store) Exists(_ context.Context, p string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[clean(p)]
	return ok, nil
}

func (s *Store) List(_ context.Context, dir string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix := clean(dir)
	if prefix != "" {
		prefix += "/"
	}

	seen := make(map[string]bool)
	var names []string
	for p := range s.files {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		rest := strings.TrimPrefix(p, prefix)
		if rest == "" {
			continue
		}
		child := strings.SplitN(rest, "/", 2)[0]
		if !seen[child] {
			seen[child] = true
			names = append(names, child)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) Size(_ context.Context, p string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[clean(p)]
	if !ok {
		return 0, domain.NewError(domain.KindNotFound, "teststore.Size", nil)
	}
	return int64(len(data)), nil
}
