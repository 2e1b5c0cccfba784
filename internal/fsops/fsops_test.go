package fsops

import (
	"testing"

	"github.com/spf13/afero"
)

func TestEnsureDir(t *testing.T) {
	fs := afero.NewMemMapFs()

	path := "/data/pkgreq/nested"
	if err := EnsureDir(fs, path, 0755); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}

	if !IsDir(fs, path) {
		t.Error("expected directory to exist and be a directory")
	}

	// Existing directories are fine
	if err := EnsureDir(fs, path, 0755); err != nil {
		t.Fatalf("EnsureDir() second call error = %v", err)
	}
}

func TestCheckWritable(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := EnsureDir(fs, "/data", 0755); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}

	if err := CheckWritable(fs, "/data"); err != nil {
		t.Errorf("CheckWritable() error = %v", err)
	}
	if Exists(fs, "/data/.write_test") {
		t.Error("expected probe file to be removed")
	}

	ro := afero.NewReadOnlyFs(fs)
	if err := CheckWritable(ro, "/data"); err == nil {
		t.Error("expected error for read-only filesystem")
	}
}

func TestExists(t *testing.T) {
	fs := afero.NewMemMapFs()

	// Create a test file
	afero.WriteFile(fs, "/catalog.toml", []byte("[[repo]]"), 0644)

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"existing file", "/catalog.toml", true},
		{"non-existing file", "/nonexistent.toml", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Exists(fs, tt.path)
			if got != tt.want {
				t.Errorf("Exists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestIsDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, "/catalogs/oss.toml", []byte("[[repo]]"), 0644)

	if !IsDir(fs, "/catalogs") {
		t.Error("expected /catalogs to be a directory")
	}
	if IsDir(fs, "/catalogs/oss.toml") {
		t.Error("expected a file not to be a directory")
	}
	if IsDir(fs, "/missing") {
		t.Error("expected a missing path not to be a directory")
	}
}
