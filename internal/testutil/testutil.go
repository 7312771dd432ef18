// Package testutil provides helpers for building filesystem fixtures in
// tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// CreateTestFile creates a file under dir with the given content, creating
// any missing parent directories, and returns its path. The name may
// contain separators.
func CreateTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to create test file %s: %v", name, err)
	}

	return path
}

// CreateTestDir creates a directory under dir, parents included, and
// returns its path
func CreateTestDir(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("failed to create test dir %s: %v", name, err)
	}

	return path
}

// CreateTestTree creates files under dir from a relative-path-to-content
// map and returns dir
func CreateTestTree(t *testing.T, dir string, files map[string]string) string {
	t.Helper()

	for name, content := range files {
		CreateTestFile(t, dir, name, content)
	}

	return dir
}

// Symlink creates a symlink and skips the test where symlinks are not
// supported (Windows without privileges)
func Symlink(t *testing.T, target, link string) {
	t.Helper()

	if err := os.Symlink(target, link); err != nil {
		if runtime.GOOS == "windows" {
			t.Skipf("symlinks not supported: %v", err)
		}
		t.Fatalf("failed to create symlink %s -> %s: %v", link, target, err)
	}
}

// SkipIfRoot skips tests that rely on permission denials, which root
// bypasses
func SkipIfRoot(t *testing.T) {
	t.Helper()

	if os.Geteuid() == 0 {
		t.Skip("running as root; permission checks are bypassed")
	}
}
