// Package domain holds the manifest + version-history data model: the
// single source of truth for a checkpointed project and the types that
// make up its version DAG.
package domain

import "time"

// FormatVersion is the semver string stamped into every manifest written
// by this engine.
const FormatVersion = "1.0.0"

// FileType chooses how a tracked path's history is stored: text files get
// reverse patches, binary files are blob-only.
type FileType string

const (
	FileTypeText   FileType = "text"
	FileTypeBinary FileType = "binary"
)

// Metadata describes the project a Manifest tracks.
type Metadata struct {
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	Author       *string `json:"author,omitempty"`
	Created      string  `json:"created"`
	LastModified string  `json:"lastModified"`
}

// FileEntry is the working-set record for a tracked path at HEAD.
type FileEntry struct {
	InodeID     string   `json:"inodeId"`
	Type        FileType `json:"type"`
	CurrentHash *string  `json:"currentHash,omitempty"`
	Encrypted   *bool    `json:"encrypted,omitempty"`
	Created     string   `json:"created"`
	Modified    string   `json:"modified"`
}

// FileState is a per-path snapshot recorded inside a single Version.
type FileState struct {
	InodeID    string  `json:"inodeId"`
	Hash       *string `json:"hash,omitempty"`
	ContentRef *string `json:"contentRef,omitempty"`
	Deleted    *bool   `json:"deleted,omitempty"`
	Encrypted  *bool   `json:"encrypted,omitempty"`
}

// IsDeleted reports whether this FileState marks the path absent.
func (fs FileState) IsDeleted() bool {
	return fs.Deleted != nil && *fs.Deleted
}

// IsEncrypted reports whether the artifact this FileState references is
// ciphertext.
func (fs FileState) IsEncrypted() bool {
	return fs.Encrypted != nil && *fs.Encrypted
}

// Version is a single immutable node in the checkpoint DAG.
type Version struct {
	ID         string               `json:"id"`
	ParentID   *string              `json:"parentId,omitempty"`
	Timestamp  string               `json:"timestamp"`
	Message    string               `json:"message"`
	Author     string               `json:"author"`
	FileStates map[string]FileState `json:"fileStates"`
}

// RenameEvent is a reserved data structure for a future rename use case.
// No engine operation reads or writes it today (spec Open Question 3).
type RenameEvent struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Timestamp string `json:"timestamp"`
	VersionID string `json:"versionId"`
}

// Manifest is the single JSON document describing a project: its tracked
// files, its version DAG, and its refs.
type Manifest struct {
	FormatVersion  string               `json:"formatVersion"`
	Metadata       Metadata             `json:"metadata"`
	FileMap        map[string]FileEntry `json:"fileMap"`
	VersionHistory []Version            `json:"versionHistory"`
	Refs           map[string]string    `json:"refs"`
	RenameLog      []RenameEvent        `json:"renameLog"`
}

// New returns an empty Manifest with one ref ("head" -> "") and no
// checkpoints yet, per the lifecycle described in spec §3.
func New(projectName string, now time.Time) *Manifest {
	ts := now.UTC().Format(time.RFC3339)
	return &Manifest{
		FormatVersion: FormatVersion,
		Metadata: Metadata{
			Name:         projectName,
			Created:      ts,
			LastModified: ts,
		},
		FileMap:        make(map[string]FileEntry),
		VersionHistory: make([]Version, 0),
		Refs:           map[string]string{"head": ""},
		RenameLog:      make([]RenameEvent, 0),
	}
}

// Head returns the id of the current HEAD version, or "" if no checkpoint
// has been made yet.
func (m *Manifest) Head() string {
	return m.Refs["head"]
}

// FindVersion looks up a Version by id in the history.
func (m *Manifest) FindVersion(id string) (Version, bool) {
	for _, v := range m.VersionHistory {
		if v.ID == id {
			return v, true
		}
	}
	return Version{}, false
}
