package config

import "testing"

func TestDefault_FallsBackWhenUnset(t *testing.T) {
	t.Setenv("CHECKPOINTSTORE_STORE", "")
	t.Setenv("CHECKPOINTSTORE_AUTHOR", "")
	t.Setenv("CHECKPOINTSTORE_LOG_LEVEL", "")
	t.Setenv("CHECKPOINTSTORE_LOG_FORMAT", "")
	t.Setenv("USER", "")

	c := Default()
	if c.StoreRoot != "." {
		t.Errorf("StoreRoot = %q, want %q", c.StoreRoot, ".")
	}
	if c.Author != "unknown" {
		t.Errorf("Author = %q, want %q", c.Author, "unknown")
	}
	if c.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", c.LogLevel, "info")
	}
	if c.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want %q", c.LogFormat, "text")
	}
	if c.KDFIterations != 600_000 {
		t.Errorf("KDFIterations = %d, want 600000", c.KDFIterations)
	}
}

func TestDefault_ReadsEnvOverrides(t *testing.T) {
	t.Setenv("CHECKPOINTSTORE_STORE", "/tmp/mystore")
	t.Setenv("CHECKPOINTSTORE_AUTHOR", "alice")
	t.Setenv("CHECKPOINTSTORE_LOG_LEVEL", "debug")

	c := Default()
	if c.StoreRoot != "/tmp/mystore" {
		t.Errorf("StoreRoot = %q, want %q", c.StoreRoot, "/tmp/mystore")
	}
	if c.Author != "alice" {
		t.Errorf("Author = %q, want %q", c.Author, "alice")
	}
	if c.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", c.LogLevel, "debug")
	}
}

func TestValidate_RejectsEmptyStoreRoot(t *testing.T) {
	c := Config{StoreRoot: "", KDFIterations: 1}
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for empty store root")
	}
}

func TestValidate_RejectsNonPositiveIterations(t *testing.T) {
	c := Config{StoreRoot: ".", KDFIterations: 0}
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for non-positive kdf iterations")
	}
}
