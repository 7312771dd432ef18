package fsutil

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/php-toolkit/fsutil/internal/testutil"
)

// TestIsAbsPath tests absolute-path detection including forward-slash
// Windows drives
func TestIsAbsPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"", false},
		{"relative/path", false},
		{"./dot", false},
		{"c:/tmp", true},
		{"D:\\tmp", true},
	}

	for _, tt := range tests {
		if got := IsAbsPath(tt.path); got != tt.want {
			t.Errorf("IsAbsPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}

	if !IsAbsPath(t.TempDir()) {
		t.Error("a real temp dir path should be absolute")
	}
}

// TestToAbsPath tests resolution of relative paths
func TestToAbsPath(t *testing.T) {
	abs := ToAbsPath("some/rel/path")
	if !filepath.IsAbs(abs) && !IsAbsPath(abs) {
		t.Errorf("ToAbsPath should produce an absolute path, got %q", abs)
	}

	already := t.TempDir()
	if got := ToAbsPath(already); got != filepath.Clean(already) {
		t.Errorf("absolute input should only be cleaned: got %q", got)
	}
}

// TestUnixPath tests separator normalization
func TestUnixPath(t *testing.T) {
	if got := UnixPath("a/b/c"); got != "a/b/c" {
		t.Errorf("UnixPath(a/b/c) = %q", got)
	}
}

// TestTrailingSlash tests trailing slash normalization
func TestTrailingSlash(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/tmp", "/tmp/"},
		{"/tmp/", "/tmp/"},
		{"/tmp//", "/tmp/"},
	}

	for _, tt := range tests {
		if got := TrailingSlash(tt.in); got != tt.want {
			t.Errorf("TrailingSlash(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestRelativeTo tests relative path derivation
func TestRelativeTo(t *testing.T) {
	root := t.TempDir()
	inside := filepath.Join(root, "sub", "f.txt")

	if got := RelativeTo(root, inside); got != "sub/f.txt" {
		t.Errorf("RelativeTo = %q, want sub/f.txt", got)
	}

	outside := "/somewhere/else.txt"
	if got := RelativeTo(root, outside); !strings.Contains(got, "else.txt") {
		t.Errorf("path outside root should pass through, got %q", got)
	}
}

// TestStatPredicates tests PathExists, IsFile, IsDir and IsEmptyDir
func TestStatPredicates(t *testing.T) {
	dir := t.TempDir()
	file := testutil.CreateTestFile(t, dir, "f.txt", "x")
	empty := testutil.CreateTestDir(t, dir, "empty")

	if !PathExists(dir) || !PathExists(file) {
		t.Error("existing paths should be reported")
	}
	if PathExists(filepath.Join(dir, "nope")) {
		t.Error("missing path should not exist")
	}
	if PathExists("") {
		t.Error("empty path should not exist")
	}

	if !IsFile(file) || IsFile(dir) {
		t.Error("IsFile should hold for files only")
	}
	if !IsDir(dir) || IsDir(file) {
		t.Error("IsDir should hold for directories only")
	}

	if !IsEmptyDir(empty) {
		t.Error("fresh directory should be empty")
	}
	if IsEmptyDir(dir) {
		t.Error("populated directory should not be empty")
	}
}
