package domain

import (
	"testing"
	"time"
)

func TestNew_SeedsEmptyHeadAndMetadata(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m := New("demo", now)

	if m.Head() != "" {
		t.Errorf("Head() = %q, want empty", m.Head())
	}
	if m.Metadata.Name != "demo" {
		t.Errorf("Metadata.Name = %q, want %q", m.Metadata.Name, "demo")
	}
	if m.Metadata.Created != m.Metadata.LastModified {
		t.Errorf("Created %q != LastModified %q on a fresh manifest", m.Metadata.Created, m.Metadata.LastModified)
	}
	if len(m.VersionHistory) != 0 || len(m.FileMap) != 0 {
		t.Error("expected an empty history and file map")
	}
}

func TestFindVersion(t *testing.T) {
	m := New("demo", time.Now())
	m.VersionHistory = append(m.VersionHistory, Version{ID: "v1"}, Version{ID: "v2"})

	v, ok := m.FindVersion("v2")
	if !ok || v.ID != "v2" {
		t.Errorf("FindVersion(v2) = (%+v, %v)", v, ok)
	}
	if _, ok := m.FindVersion("missing"); ok {
		t.Error("expected FindVersion to report not-found for an unknown id")
	}
}

func TestFileState_IsDeletedAndIsEncrypted(t *testing.T) {
	trueVal := true
	falseVal := false

	plain := FileState{}
	if plain.IsDeleted() || plain.IsEncrypted() {
		t.Error("zero-value FileState should be neither deleted nor encrypted")
	}

	deleted := FileState{Deleted: &trueVal}
	if !deleted.IsDeleted() {
		t.Error("expected IsDeleted to report true")
	}

	notDeleted := FileState{Deleted: &falseVal}
	if notDeleted.IsDeleted() {
		t.Error("expected IsDeleted to report false for an explicit false pointer")
	}

	encrypted := FileState{Encrypted: &trueVal}
	if !encrypted.IsEncrypted() {
		t.Error("expected IsEncrypted to report true")
	}
}
