package fsutil

import (
	"os"
	"path/filepath"
	"strings"
)

// IsAbsPath reports whether path is absolute. Unlike filepath.IsAbs it also
// accepts forward-slash Windows paths like "c:/tmp".
func IsAbsPath(path string) bool {
	if path == "" {
		return false
	}
	if filepath.IsAbs(path) {
		return true
	}

	// Windows drive letter with forward slashes
	if len(path) >= 3 && path[1] == ':' && (path[2] == '/' || path[2] == '\\') {
		c := path[0]
		return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
	}

	return false
}

// ToAbsPath resolves path to an absolute path. Relative paths are resolved
// against the current working directory. A failure to determine the working
// directory returns the input unchanged; the subsequent Stat will surface
// the real problem with more context.
func ToAbsPath(path string) string {
	if IsAbsPath(path) {
		return filepath.Clean(path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// UnixPath normalizes path separators to forward slashes
func UnixPath(path string) string {
	return filepath.ToSlash(path)
}

// JoinPaths joins path segments and cleans the result
func JoinPaths(elem ...string) string {
	return filepath.Join(elem...)
}

// TrailingSlash ensures dir ends with exactly one forward slash
func TrailingSlash(dir string) string {
	if dir == "" {
		return dir
	}
	return strings.TrimRight(UnixPath(dir), "/") + "/"
}

// RelativeTo returns path relative to root, slash-normalized. If path is not
// under root the path is returned unchanged.
func RelativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return UnixPath(path)
	}
	return UnixPath(rel)
}

// PathExists checks if a path exists (file or directory)
func PathExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// IsFile reports whether path exists and is a regular file
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsDir reports whether path exists and is a directory
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsEmptyDir reports whether path is a directory with no entries
func IsEmptyDir(path string) bool {
	entries, err := os.ReadDir(path)
	return err == nil && len(entries) == 0
}
