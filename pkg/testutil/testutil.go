// Package testutil provides filesystem helpers for tests. All helpers
// operate on real temporary directories so that rename, permission, and
// xattr behavior matches production.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/p8prep/pkg/prodosmeta"
)

// CreateFile creates a file with the given content in the specified directory.
// It fails the test if the file cannot be created.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)

	// Create parent directories if needed
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}

	return path
}

// CreateFileBytes creates a file with raw byte content and explicit permissions.
func CreateFileBytes(t *testing.T, dir, name string, content []byte, perm os.FileMode) string {
	t.Helper()

	path := filepath.Join(dir, name)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}

	if err := os.WriteFile(path, content, perm); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}

	return path
}

// CreateDir creates a directory in the specified parent directory.
// It fails the test if the directory cannot be created.
func CreateDir(t *testing.T, parent, name string) string {
	t.Helper()

	path := filepath.Join(parent, name)

	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", path, err)
	}

	return path
}

// FileExists reports whether a path exists.
func FileExists(t *testing.T, path string) bool {
	t.Helper()

	_, err := os.Stat(path)
	if err == nil {
		return true
	}
	if os.IsNotExist(err) {
		return false
	}
	t.Fatalf("Failed to stat %s: %v", path, err)
	return false
}

// ReadFile reads a file's content, failing the test on error.
func ReadFile(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return data
}

// AssertFileContent fails the test if the file content differs from expected.
func AssertFileContent(t *testing.T, path string, expected []byte) {
	t.Helper()

	got := ReadFile(t, path)
	if string(got) != string(expected) {
		t.Errorf("File %s content = %q, want %q", path, got, expected)
	}
}

// FileMode returns the permission bits of a path.
func FileMode(t *testing.T, path string) os.FileMode {
	t.Helper()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat %s: %v", path, err)
	}
	return info.Mode().Perm()
}

// RequireXattrs skips the test if the directory's filesystem does not
// support user extended attributes.
func RequireXattrs(t *testing.T, dir string) {
	t.Helper()

	if !prodosmeta.NewXattrTagger().Supported(dir) {
		t.Skip("xattrs not supported on this filesystem")
	}
}
