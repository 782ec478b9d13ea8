// Package restore implements the restore use case (spec §4.3): resolving
// the backward path from HEAD to a target version, replaying the target's
// file_states onto content/, and the legacy reverse-patch-chain
// reconstruction path (spec §4.4) for text files that never got a full
// blob.
package restore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rybkr/checkpointstore/internal/domain"
	"github.com/rybkr/checkpointstore/internal/ports"
	"github.com/rybkr/checkpointstore/internal/storepaths"
)

// Deps bundles the capability ports the restore engine is written against.
type Deps struct {
	Storage ports.Storage
	Differ  ports.Differ
	Cipher  ports.Cipher
	Logger  *slog.Logger
}

func (d Deps) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

// Input parameterizes a single restore.
type Input struct {
	TargetVersionID string
	Force           bool // accepted but has no effect: Run performs no dirty-check.
	EncryptionKey   []byte
}

// Output reports what a successful restore did.
type Output struct {
	RestoredVersionID string
	FilesRestored     int
	PatchesApplied    int
}

const op = "restore.Run"

// Run executes the restore algorithm against manifest in place.
func Run(ctx context.Context, deps Deps, m *domain.Manifest, in Input) (Output, error) {
	head := m.Head()
	if head == "" {
		return Output{}, domain.NewError(domain.KindValidation, op, fmt.Errorf("no-head"))
	}

	target, ok := m.FindVersion(in.TargetVersionID)
	if !ok {
		return Output{}, domain.NewError(domain.KindNotFound, op, fmt.Errorf("version %s not found", in.TargetVersionID))
	}

	// Step 3: dirty-check is a documented no-op in this implementation (see
	// DESIGN.md Open Question decisions) — force has no effect either way.
	_ = in.Force

	if _, err := findVersionPath(m, head, in.TargetVersionID); err != nil {
		return Output{}, err
	}

	headFileStates := map[string]domain.FileState{}
	if headVersion, ok := m.FindVersion(head); ok {
		headFileStates = headVersion.FileStates
	}

	out := Output{RestoredVersionID: in.TargetVersionID}

	for path, fs := range target.FileStates {
		switch {
		case fs.IsDeleted():
			exists, err := deps.Storage.Exists(ctx, storepaths.Content(path))
			if err != nil {
				return Output{}, domain.NewError(domain.KindIO, op, err)
			}
			if exists {
				if err := deps.Storage.Delete(ctx, storepaths.Content(path)); err != nil {
					return Output{}, domain.NewError(domain.KindIO, op, err)
				}
			}
			out.FilesRestored++

		case fs.Hash != nil:
			data, err := deps.Storage.Read(ctx, storepaths.Blob(*fs.Hash))
			if err != nil {
				return Output{}, domain.NewError(domain.KindIO, op, err)
			}
			if fs.IsEncrypted() {
				if len(in.EncryptionKey) == 0 {
					return Output{}, domain.NewError(domain.KindEncryption, op, fmt.Errorf("encryption key required for %s", path))
				}
				data, err = deps.Cipher.Decrypt(in.EncryptionKey, data)
				if err != nil {
					return Output{}, domain.NewError(domain.KindEncryption, op, err)
				}
			}
			if err := deps.Storage.Write(ctx, storepaths.Content(path), data); err != nil {
				return Output{}, domain.NewError(domain.KindIO, op, err)
			}
			out.FilesRestored++

		default:
			content, err := reconstructChain(ctx, deps, m, in.TargetVersionID, path, in.EncryptionKey)
			if err != nil {
				return Output{}, err
			}
			if err := deps.Storage.Write(ctx, storepaths.Content(path), []byte(content)); err != nil {
				return Output{}, domain.NewError(domain.KindIO, op, err)
			}
			out.PatchesApplied++
		}
	}

	// Step 6: paths present at HEAD but absent from the target are removed
	// from the working copy entirely.
	for path := range headFileStates {
		if _, ok := target.FileStates[path]; !ok {
			exists, err := deps.Storage.Exists(ctx, storepaths.Content(path))
			if err != nil {
				return Output{}, domain.NewError(domain.KindIO, op, err)
			}
			if exists {
				if err := deps.Storage.Delete(ctx, storepaths.Content(path)); err != nil {
					return Output{}, domain.NewError(domain.KindIO, op, err)
				}
			}
		}
	}

	// Step 7: rewrite HEAD and sync file_map's current_hash/encrypted for
	// every path the target touches. Timestamps are untouched (see
	// SPEC_FULL.md's supplemented-features note on original_source/).
	m.Refs["head"] = in.TargetVersionID
	for path, fs := range target.FileStates {
		entry, ok := m.FileMap[path]
		if !ok {
			continue
		}
		entry.CurrentHash = fs.Hash
		entry.Encrypted = fs.Encrypted
		m.FileMap[path] = entry
	}

	deps.logger().Info("restore",
		"version_id", out.RestoredVersionID,
		"files_restored", out.FilesRestored,
		"patches_applied", out.PatchesApplied,
	)
	return out, nil
}

// findVersionPath walks parent_id links backward from head until it reaches
// target, per spec §4.3 step 4. Forward traversal to descendants is out of
// scope (spec Open Question 1).
func findVersionPath(m *domain.Manifest, head, target string) ([]string, error) {
	path := []string{head}
	cur := head
	for cur != target {
		v, ok := m.FindVersion(cur)
		if !ok || v.ParentID == nil {
			return nil, domain.NewError(domain.KindValidation, op, fmt.Errorf("no-path: head %s cannot reach %s", head, target))
		}
		cur = *v.ParentID
		path = append(path, cur)
	}
	return path, nil
}

// reconstructChain rebuilds a text file's content at targetID by walking
// ancestors from target collecting each FileState's content_ref until a
// chain terminator (file absent or marked deleted), then applying those
// patches starting from an empty base, oldest first (spec §4.4).
func reconstructChain(ctx context.Context, deps Deps, m *domain.Manifest, targetID, path string, key []byte) (string, error) {
	type link struct {
		patchRef  string
		encrypted bool
	}
	var links []link

	cur := targetID
	for cur != "" {
		v, ok := m.FindVersion(cur)
		if !ok {
			break
		}
		fs, tracked := v.FileStates[path]
		if !tracked || fs.IsDeleted() {
			break
		}
		if fs.ContentRef != nil {
			links = append(links, link{patchRef: *fs.ContentRef, encrypted: fs.IsEncrypted()})
		}
		if v.ParentID == nil {
			break
		}
		cur = *v.ParentID
	}

	// links[0] is target's own content_ref, links[len-1] the oldest
	// ancestor's. Apply oldest first, walking the slice back-to-front,
	// starting from an empty base text.
	var text string
	for i := len(links) - 1; i >= 0; i-- {
		l := links[i]
		exists, err := deps.Storage.Exists(ctx, l.patchRef)
		if err != nil {
			return "", domain.NewError(domain.KindIO, op, err)
		}
		if !exists {
			continue
		}
		raw, err := deps.Storage.Read(ctx, l.patchRef)
		if err != nil {
			return "", domain.NewError(domain.KindIO, op, err)
		}
		if l.encrypted {
			if len(key) == 0 {
				return "", domain.NewError(domain.KindEncryption, op, fmt.Errorf("encryption key required for %s", path))
			}
			raw, err = deps.Cipher.Decrypt(key, raw)
			if err != nil {
				return "", domain.NewError(domain.KindEncryption, op, err)
			}
		}
		text, err = deps.Differ.Apply(text, string(raw))
		if err != nil {
			return "", domain.NewError(domain.KindPatchFailed, op, err)
		}
	}

	return text, nil
}
