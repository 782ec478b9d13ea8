// Package localfs is the default Storage adapter: a flat path namespace
// rooted at a directory on the OS filesystem.
package localfs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rybkr/checkpointstore/internal/domain"
)

// Store implements ports.Storage over a root directory. Every logical
// path is joined under root and cleaned; parent directories are created
// on demand.
type Store struct {
	root string

	// mkdirMu guards directory creation only — adapter-internal
	// bookkeeping, not an engine-level concurrency primitive. The engine
	// itself takes no locks (spec §5); a Store used concurrently from a
	// single process still needs this so two goroutines racing to create
	// the same parent directory don't both see ENOENT.
	mkdirMu sync.Mutex
}

// New returns a Store rooted at root. The directory is created if absent.
func New(root string) (*Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, domain.NewError(domain.KindIO, "localfs.New", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, domain.NewError(domain.KindIO, "localfs.New", err)
	}
	return &Store{root: abs}, nil
}

// Root returns the absolute root directory.
func (s *Store) Root() string { return s.root }

func (s *Store) resolve(path string) (string, error) {
	clean := filepath.Clean("/" + path)
	full := filepath.Join(s.root, clean)
	if !strings.HasPrefix(full, s.root+string(filepath.Separator)) && full != s.root {
		return "", domain.NewError(domain.KindIO, "localfs.resolve", fmt.Errorf("path escapes store root: %q", path))
	}
	return full, nil
}

// Read implements ports.Storage.
func (s *Store) Read(_ context.Context, path string) ([]byte, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full) //nolint:gosec // G304: path is resolved and confined to the store root above
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.NewError(domain.KindNotFound, "localfs.Read", err)
		}
		return nil, domain.NewError(domain.KindIO, "localfs.Read", err)
	}
	return data, nil
}

// Write implements ports.Storage, auto-materializing parent directories.
func (s *Store) Write(_ context.Context, path string, data []byte) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(full)
	s.mkdirMu.Lock()
	mkErr := os.MkdirAll(dir, 0o755)
	s.mkdirMu.Unlock()
	if mkErr != nil {
		return domain.NewError(domain.KindIO, "localfs.Write", mkErr)
	}

	if err := os.WriteFile(full, data, 0o644); err != nil { //nolint:gosec // G306: store blobs/manifest are not secrets by default
		return domain.NewError(domain.KindIO, "localfs.Write", err)
	}
	return nil
}

// Delete implements ports.Storage. Deleting an absent path is not an error.
func (s *Store) Delete(_ context.Context, path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return domain.NewError(domain.KindIO, "localfs.Delete", err)
	}
	return nil
}

// Exists implements ports.Storage.
func (s *Store) Exists(_ context.Context, path string) (bool, error) {
	full, err := s.resolve(path)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(full)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, domain.NewError(domain.KindIO, "localfs.Exists", err)
}

// List implements ports.Storage; it returns direct child names only.
func (s *Store) List(_ context.Context, dir string) ([]string, error) {
	full, err := s.resolve(dir)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, domain.NewError(domain.KindIO, "localfs.List", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Size implements ports.Storage.
func (s *Store) Size(_ context.Context, path string) (int64, error) {
	full, err := s.resolve(path)
	if err != nil {
		return 0, err
	}
	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, domain.NewError(domain.KindNotFound, "localfs.Size", err)
		}
		return 0, domain.NewError(domain.KindIO, "localfs.Size", err)
	}
	return info.Size(), nil
}
