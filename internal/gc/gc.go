// Package gc implements the garbage collector use case (spec §4.5):
// a reachable-hash-set walk over every version's FileStates, followed by a
// sweep of .store/blobs/ that deletes anything not in that set.
package gc

import (
	"context"
	"log/slog"

	"github.com/rybkr/checkpointstore/internal/domain"
	"github.com/rybkr/checkpointstore/internal/ports"
	"github.com/rybkr/checkpointstore/internal/storepaths"
)

// Deps bundles the capability ports the collector is written against.
type Deps struct {
	Storage ports.Storage
	Logger  *slog.Logger
}

func (d Deps) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

// Output reports what a GC pass did.
type Output struct {
	BlobsChecked int
	BlobsDeleted int
	BytesFreed   int64
}

const op = "gc.Run"

// Run sweeps every blob in .store/blobs/ that is not reachable from
// manifest's version_history, per spec §4.5. version_history itself is the
// root set — orphan versions are treated as reachable because history
// truncation is out of scope.
func Run(ctx context.Context, deps Deps, m *domain.Manifest) (Output, error) {
	reachable := reachableHashes(m)

	names, err := deps.Storage.List(ctx, storepaths.BlobsPrefix)
	if err != nil {
		return Output{}, domain.NewError(domain.KindIO, op, err)
	}

	var out Output
	for _, hash := range names {
		out.BlobsChecked++
		if reachable[hash] {
			continue
		}

		blobPath := storepaths.Blob(hash)
		size, err := deps.Storage.Size(ctx, blobPath)
		if err != nil {
			// Deletion failures are non-fatal; a size lookup failure means
			// nothing to reclaim either, so move on to the next blob.
			continue
		}
		if err := deps.Storage.Delete(ctx, blobPath); err != nil {
			continue
		}
		out.BlobsDeleted++
		out.BytesFreed += size
	}

	deps.logger().Info("gc",
		"blobs_checked", out.BlobsChecked,
		"blobs_deleted", out.BlobsDeleted,
		"bytes_freed", out.BytesFreed,
	)
	return out, nil
}

// reachableHashes is the union, across every version, of each FileState's
// hash and any hash extracted from a content_ref of the form "blobs/<hash>".
func reachableHashes(m *domain.Manifest) map[string]bool {
	reachable := make(map[string]bool)
	for _, v := range m.VersionHistory {
		for _, fs := range v.FileStates {
			if fs.Hash != nil {
				reachable[*fs.Hash] = true
			}
			if fs.ContentRef != nil {
				if hash, ok := storepaths.HashFromContentRef(*fs.ContentRef); ok {
					reachable[hash] = true
				}
			}
		}
	}
	return reachable
}
