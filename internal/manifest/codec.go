// Package manifest loads and saves the canonical .store/manifest.json
// document through the Storage port, in the camelCase wire format pinned
// by spec §6.
package manifest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rybkr/checkpointstore/internal/domain"
	"github.com/rybkr/checkpointstore/internal/ports"
)

// Path is the fixed storage location of the canonical manifest.
const Path = ".store/manifest.json"

// Load reads and parses the manifest at .store/manifest.json.
func Load(ctx context.Context, storage ports.Storage) (*domain.Manifest, error) {
	data, err := storage.Read(ctx, Path)
	if err != nil {
		if kind, ok := domain.KindOf(err); ok && kind == domain.KindNotFound {
			return nil, domain.NewError(domain.KindNotFound, "manifest.Load", fmt.Errorf("no manifest at %s", Path))
		}
		return nil, domain.NewError(domain.KindIO, "manifest.Load", err)
	}

	var m domain.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, domain.NewError(domain.KindParse, "manifest.Load", err)
	}
	return &m, nil
}

// Parse unmarshals a manifest document already read from storage, for
// callers (e.g. internal/archive) that obtain the bytes from somewhere
// other than the Storage port.
func Parse(data []byte) (*domain.Manifest, error) {
	var m domain.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, domain.NewError(domain.KindParse, "manifest.Parse", err)
	}
	return &m, nil
}

// Save serializes and writes the manifest to .store/manifest.json.
func Save(ctx context.Context, storage ports.Storage, m *domain.Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return domain.NewError(domain.KindParse, "manifest.Save", err)
	}
	if err := storage.Write(ctx, Path, data); err != nil {
		return domain.NewError(domain.KindIO, "manifest.Save", err)
	}
	return nil
}
