package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rybkr/checkpointstore/internal/domain"
	"github.com/rybkr/checkpointstore/internal/manifest"
	"github.com/rybkr/checkpointstore/internal/storepaths"
	"github.com/rybkr/checkpointstore/internal/teststore"
)

func manifestJSON(m *domain.Manifest) ([]byte, error) {
	return json.Marshal(m)
}

func mustWrite(t *testing.T, store *teststore.Store, path string, data []byte) {
	t.Helper()
	if err := store.Write(context.Background(), path, data); err != nil {
		t.Fatalf("Write(%s): %v", path, err)
	}
}

func seedStore(t *testing.T, store *teststore.Store) {
	t.Helper()
	ctx := context.Background()
	m := domain.New("exported-project", time.Now())
	if err := manifest.Save(ctx, store, m); err != nil {
		t.Fatalf("manifest.Save: %v", err)
	}
	mustWrite(t, store, storepaths.Content("readme.txt"), []byte("hello"))
	mustWrite(t, store, storepaths.Blob("deadbeef"), []byte("blobbytes"))
}

func TestExportImport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src := teststore.New()
	seedStore(t, src)

	data, exportOut, err := Export(ctx, src, nil)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if exportOut.FilesExported != 3 {
		t.Fatalf("expected 3 files exported, got %d", exportOut.FilesExported)
	}

	dst := teststore.New()
	importOut, err := Import(ctx, dst, data, nil)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if importOut.ProjectName != "exported-project" {
		t.Fatalf("project name = %q, want %q", importOut.ProjectName, "exported-project")
	}
	if importOut.FilesImported != 3 {
		t.Fatalf("expected 3 files imported, got %d", importOut.FilesImported)
	}

	got, err := dst.Read(ctx, storepaths.Content("readme.txt"))
	if err != nil {
		t.Fatalf("reading imported content: %v", err)
	}
	if string(got) != "hello" {
		t.Fatalf("imported content = %q, want %q", got, "hello")
	}

	gotBlob, err := dst.Read(ctx, storepaths.Blob("deadbeef"))
	if err != nil {
		t.Fatalf("reading imported blob: %v", err)
	}
	if string(gotBlob) != "blobbytes" {
		t.Fatalf("imported blob = %q, want %q", gotBlob, "blobbytes")
	}
}

func TestImport_RejectsArchiveWithoutManifest(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("content/a.txt")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := w.Write([]byte("no manifest here")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	dst := teststore.New()
	_, err = Import(ctx, dst, buf.Bytes(), nil)
	if err == nil {
		t.Fatal("expected error for archive missing manifest")
	}
	if kind, ok := domain.KindOf(err); !ok || kind != domain.KindParse {
		t.Fatalf("expected KindParse, got %v", err)
	}
}

func TestImport_RejectsZipSlip(t *testing.T) {
	ctx := context.Background()
	m := domain.New("demo", time.Now())
	manifestBytes, err := manifestJSON(m)
	if err != nil {
		t.Fatalf("marshal manifest: %v", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	mw, err := zw.Create(manifest.Path)
	if err != nil {
		t.Fatalf("Create manifest entry: %v", err)
	}
	if _, err := mw.Write(manifestBytes); err != nil {
		t.Fatalf("Write manifest entry: %v", err)
	}
	ew, err := zw.Create("content/../../../etc/passwd")
	if err != nil {
		t.Fatalf("Create traversal entry: %v", err)
	}
	if _, err := ew.Write([]byte("malicious")); err != nil {
		t.Fatalf("Write traversal entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	dst := teststore.New()
	_, err = Import(ctx, dst, buf.Bytes(), nil)
	if err == nil {
		t.Fatal("expected zip-slip rejection")
	}
	if kind, ok := domain.KindOf(err); !ok || kind != domain.KindZipSlip {
		t.Fatalf("expected KindZipSlip, got %v", err)
	}
}
