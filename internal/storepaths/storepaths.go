// Package storepaths centralizes the on-disk layout constants from spec
// §4.1 so every component addresses blobs, deltas, and content the same
// way.
package storepaths

import (
	"fmt"
	"strings"

	"github.com/rybkr/checkpointstore/internal/sha256hash"
)

const (
	ContentPrefix = "content"
	StorePrefix   = ".store"
	BlobsPrefix   = ".store/blobs"
	DeltasPrefix  = ".store/deltas"
)

var pathHasher = sha256hash.New()

// Content returns the storage path of a logical file's working-copy mirror.
func Content(logicalPath string) string {
	return ContentPrefix + "/" + logicalPath
}

// Blob returns the storage path of the full-content object for hash.
func Blob(hash string) string {
	return BlobsPrefix + "/" + hash
}

// BlobHashFromPath extracts the hex hash from a ".store/blobs/<hash>" path.
func BlobHashFromPath(path string) (string, bool) {
	rest, ok := strings.CutPrefix(path, BlobsPrefix+"/")
	return rest, ok
}

// HashFromContentRef extracts a blob hash from a content_ref of the form
// "blobs/<hash>", per spec §4.5's reachability rule.
func HashFromContentRef(ref string) (string, bool) {
	return strings.CutPrefix(ref, "blobs/")
}

// Delta returns the reverse-patch path for versionID/logicalPath, using the
// first 16 hex chars of the path's SHA-256 as specified in §4.1.
func Delta(versionID, logicalPath string) string {
	prefix := pathHasher.Hash([]byte(logicalPath))[:16]
	return fmt.Sprintf("%s/%s_%s.patch", DeltasPrefix, versionID, prefix)
}
