// Package checkpoint implements the checkpoint use case (spec §4.2):
// change detection against the working copy, reverse-patch generation for
// modified text files, content-addressed blob writes, and construction of
// the new Version node.
package checkpoint

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/rybkr/checkpointstore/internal/domain"
	"github.com/rybkr/checkpointstore/internal/ports"
	"github.com/rybkr/checkpointstore/internal/storepaths"
)

// Deps bundles the capability ports the checkpoint engine is written
// against. Every use case receives its capabilities explicitly (spec §9
// "Global state: None").
type Deps struct {
	Storage ports.Storage
	Hasher  ports.Hasher
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

// Input parameterizes a single checkpoint.
type Input struct {
	Message       string
	Author        string
	EncryptionKey []byte // nil means unencrypted
}

// Output reports what a successful checkpoint did.
type Output struct {
	VersionID    string
	FilesAdded   int
	FilesChanged int
	FilesDeleted int
}

const op = "checkpoint.Run"

// Run executes the checkpoint algorithm against manifest in place.
func Run(ctx context.Context, deps Deps, m *domain.Manifest, in Input) (Output, error) {
	now := time.Now().UTC()
	versionID := uuid.NewString()

	var parentID *string
	if head := m.Head(); head != "" {
		h := head
		parentID = &h
	}

	changes, err := detectChanges(ctx, deps, m, now)
	if err != nil {
		return Output{}, err
	}
	if len(changes) == 0 {
		return Output{}, domain.NewError(domain.KindPatchFailed, op, fmt.Errorf("no changes to commit"))
	}

	// Step 3: reverse patches for modified text files.
	for _, ch := range changes {
		if ch.Kind != domain.ChangeModified {
			continue
		}
		entry := m.FileMap[ch.Path]
		if entry.Type != domain.FileTypeText {
			continue
		}
		if err := writeReversePatch(ctx, deps, versionID, ch, entry, in); err != nil {
			return Output{}, err
		}
	}

	// Step 4: full-content blobs for every added/modified path.
	for _, ch := range changes {
		if ch.Kind == domain.ChangeDeleted {
			continue
		}
		if err := writeBlobIfAbsent(ctx, deps, ch.NewHash, ch.Path, in); err != nil {
			return Output{}, err
		}
		entry := m.FileMap[ch.Path]
		entry.CurrentHash = strPtr(ch.NewHash)
		entry.Modified = now.Format(time.RFC3339)
		entry.Encrypted = boolPtr(in.EncryptionKey != nil)
		m.FileMap[ch.Path] = entry
	}

	// Step 5: build the new Version node from the parent's file_states.
	fileStates := cloneParentStates(m, parentID)
	for _, ch := range changes {
		switch ch.Kind {
		case domain.ChangeAdded:
			entry := m.FileMap[ch.Path]
			fileStates[ch.Path] = domain.FileState{
				InodeID:   entry.InodeID,
				Hash:      strPtr(ch.NewHash),
				Encrypted: boolPtr(in.EncryptionKey != nil),
			}
		case domain.ChangeModified:
			entry := m.FileMap[ch.Path]
			fs := domain.FileState{
				InodeID:   entry.InodeID,
				Hash:      strPtr(ch.NewHash),
				Encrypted: boolPtr(in.EncryptionKey != nil),
			}
			if entry.Type == domain.FileTypeText {
				ref := storepaths.Delta(versionID, ch.Path)
				fs.ContentRef = strPtr(ref)
			}
			fileStates[ch.Path] = fs
		case domain.ChangeDeleted:
			prior := fileStates[ch.Path]
			prior.Deleted = boolPtr(true)
			fileStates[ch.Path] = prior
		}
	}

	version := domain.Version{
		ID:         versionID,
		ParentID:   parentID,
		Timestamp:  now.Format(time.RFC3339),
		Message:    in.Message,
		Author:     in.Author,
		FileStates: fileStates,
	}

	// Step 6: commit.
	m.Refs["head"] = versionID
	m.Metadata.LastModified = now.Format(time.RFC3339)
	m.VersionHistory = append(m.VersionHistory, version)

	out := summarize(changes, versionID)
	deps.logger().Info("checkpoint",
		"version_id", out.VersionID,
		"files_added", out.FilesAdded,
		"files_changed", out.FilesChanged,
		"files_deleted", out.FilesDeleted,
	)
	return out, nil
}

func summarize(changes []domain.FileChange, versionID string) Output {
	out := Output{VersionID: versionID}
	for _, c := range changes {
		switch c.Kind {
		case domain.ChangeAdded:
			out.FilesAdded++
		case domain.ChangeModified:
			out.FilesChanged++
		case domain.ChangeDeleted:
			out.FilesDeleted++
		}
	}
	return out
}

// detectChanges lists content/ and compares it against m.FileMap, creating
// FileEntry records (with inode id + type heuristic) for newly-seen paths.
func detectChanges(ctx context.Context, deps Deps, m *domain.Manifest, now time.Time) ([]domain.FileChange, error) {
	paths, err := listContentRecursive(ctx, deps.Storage, storepaths.ContentPrefix)
	if err != nil {
		return nil, domain.NewError(domain.KindIO, op, err)
	}

	seen := make(map[string]bool, len(paths))
	var changes []domain.FileChange

	for _, p := range paths {
		seen[p] = true
		data, err := deps.Storage.Read(ctx, storepaths.Content(p))
		if err != nil {
			return nil, domain.NewError(domain.KindIO, op, err)
		}
		h := deps.Hasher.Hash(data)

		entry, tracked := m.FileMap[p]
		switch {
		case !tracked || entry.CurrentHash == nil:
			if !tracked {
				entry = domain.FileEntry{
					InodeID: uuid.NewString(),
					Type:    classify(p),
					Created: now.Format(time.RFC3339),
				}
				m.FileMap[p] = entry
			}
			changes = append(changes, domain.FileChange{Kind: domain.ChangeAdded, Path: p, NewHash: h})
		case *entry.CurrentHash != h:
			changes = append(changes, domain.FileChange{Kind: domain.ChangeModified, Path: p, OldHash: *entry.CurrentHash, NewHash: h})
		}
	}

	for p := range m.FileMap {
		if !seen[p] {
			changes = append(changes, domain.FileChange{Kind: domain.ChangeDeleted, Path: p})
		}
	}

	sort.Slice(changes, func(i, j int) bool { return changes[i].Path < changes[j].Path })
	return changes, nil
}

// listContentRecursive walks the storage's "content" prefix, returning
// logical paths relative to that prefix (slash-separated).
func listContentRecursive(ctx context.Context, storage ports.Storage, root string) ([]string, error) {
	var out []string
	var walk func(dir string) error
	walk = func(dir string) error {
		children, err := storage.List(ctx, dir)
		if err != nil {
			return err
		}
		for _, name := range children {
			full := dir + "/" + name
			grandchildren, listErr := storage.List(ctx, full)
			if listErr != nil || len(grandchildren) == 0 {
				if ok, existsErr := storage.Exists(ctx, full); existsErr == nil && ok {
					if isLikelyFile(ctx, storage, full) {
						out = append(out, trimPrefix(full, root))
						continue
					}
				}
				if listErr != nil {
					return listErr
				}
			}
			if err := walk(full); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root); err != nil {
		return nil, err
	}
	return out, nil
}

func isLikelyFile(ctx context.Context, storage ports.Storage, path string) bool {
	_, err := storage.Size(ctx, path)
	return err == nil
}

func trimPrefix(path, root string) string {
	trimmed := path[len(root):]
	for len(trimmed) > 0 && trimmed[0] == '/' {
		trimmed = trimmed[1:]
	}
	return trimmed
}

func classify(path string) domain.FileType {
	switch filepath.Ext(path) {
	case ".txt", ".md", ".go", ".js", ".ts", ".json", ".yaml", ".yml", ".toml",
		".html", ".css", ".csv", ".xml", ".py", ".rs", ".java", ".c", ".h",
		".cpp", ".sh", ".rb", ".ini", ".cfg", ".conf", ".log":
		return domain.FileTypeText
	default:
		return domain.FileTypeBinary
	}
}

func writeReversePatch(ctx context.Context, deps Deps, versionID string, ch domain.FileChange, entry domain.FileEntry, in Input) error {
	oldData, err := deps.Storage.Read(ctx, storepaths.Blob(ch.OldHash))
	if err != nil {
		return domain.NewError(domain.KindIO, op, err)
	}
	if entry.Encrypted != nil && *entry.Encrypted {
		if len(in.EncryptionKey) == 0 {
			return domain.NewError(domain.KindEncryption, op, fmt.Errorf("encryption key required to read encrypted blob %s", ch.OldHash))
		}
		oldData, err = deps.Cipher.Decrypt(in.EncryptionKey, oldData)
		if err != nil {
			return domain.NewError(domain.KindEncryption, op, err)
		}
	}

	newData, err := deps.Storage.Read(ctx, storepaths.Content(ch.Path))
	if err != nil {
		return domain.NewError(domain.KindIO, op, err)
	}

	// Reverse direction: new -> old, so applying the patch to the new
	// content reconstructs the old content.
	patch, err := deps.Differ.Diff(string(newData), string(oldData))
	if err != nil {
		return domain.NewError(domain.KindPatchFailed, op, err)
	}

	patchBytes := []byte(patch)
	if in.EncryptionKey != nil {
		patchBytes, err = deps.Cipher.Encrypt(in.EncryptionKey, patchBytes)
		if err != nil {
			return domain.NewError(domain.KindEncryption, op, err)
		}
	}

	if err := deps.Storage.Write(ctx, storepaths.Delta(versionID, ch.Path), patchBytes); err != nil {
		return domain.NewError(domain.KindIO, op, err)
	}
	return nil
}

func writeBlobIfAbsent(ctx context.Context, deps Deps, hash, path string, in Input) error {
	blobPath := storepaths.Blob(hash)
	exists, err := deps.Storage.Exists(ctx, blobPath)
	if err != nil {
		return domain.NewError(domain.KindIO, op, err)
	}
	if exists {
		return nil
	}

	data, err := deps.Storage.Read(ctx, storepaths.Content(path))
	if err != nil {
		return domain.NewError(domain.KindIO, op, err)
	}
	if in.EncryptionKey != nil {
		data, err = deps.Cipher.Encrypt(in.EncryptionKey, data)
		if err != nil {
			return domain.NewError(domain.KindEncryption, op, err)
		}
	}
	if err := deps.Storage.Write(ctx, blobPath, data); err != nil {
		return domain.NewError(domain.KindIO, op, err)
	}
	return nil
}

func cloneParentStates(m *domain.Manifest, parentID *string) map[string]domain.FileState {
	out := make(map[string]domain.FileState)
	if parentID == nil {
		return out
	}
	parent, ok := m.FindVersion(*parentID)
	if !ok {
		return out
	}
	for p, fs := range parent.FileStates {
		out[p] = fs
	}
	return out
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
