// Package testutil provides test helpers for template and generator tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// WriteFile creates a file with the given content under dir in fsys,
// creating parent directories as needed. It returns the file path.
func WriteFile(t *testing.T, fsys afero.Fs, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := afero.WriteFile(fsys, path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// WriteTree writes files, keyed by slash path relative to root, into fsys.
func WriteTree(t *testing.T, fsys afero.Fs, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		WriteFile(t, fsys, root, rel, content)
	}
}

// ReadFile returns the content of the slash-separated path p in fsys.
func ReadFile(t *testing.T, fsys afero.Fs, p string) string {
	t.Helper()
	data, err := afero.ReadFile(fsys, filepath.FromSlash(p))
	if err != nil {
		t.Fatalf("failed to read file %s: %v", p, err)
	}
	return string(data)
}

// AssertMissing fails the test if the slash-separated path p exists in fsys.
func AssertMissing(t *testing.T, fsys afero.Fs, p string) {
	t.Helper()
	exists, err := afero.Exists(fsys, filepath.FromSlash(p))
	if err != nil {
		t.Fatalf("failed to stat %s: %v", p, err)
	}
	if exists {
		t.Errorf("%s should not exist", p)
	}
}
