package fsutil

import (
	"errors"
	"fmt"
	"os"
)

// Filesystem errors returned by the wrappers in this package and by the
// finder and watcher subpackages. Low-level OS errors are wrapped into one
// of these sentinels together with the offending path, so callers can use
// errors.Is without caring about platform error codes.
var (
	// ErrNotFound indicates the requested path does not exist
	ErrNotFound = errors.New("path not found")

	// ErrAlreadyExists indicates the path already exists
	ErrAlreadyExists = errors.New("path already exists")

	// ErrPermissionDenied indicates insufficient permissions
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotDirectory indicates expected a directory but got a file
	ErrNotDirectory = errors.New("not a directory")

	// ErrNotFile indicates expected a file but got a directory
	ErrNotFile = errors.New("not a file")
)

// WrapPathError converts an OS error into one of the sentinel errors above,
// keeping the offending path in the message. A nil error stays nil; errors
// with no sentinel mapping are wrapped verbatim.
func WrapPathError(op, path string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%w: %s %s", ErrNotFound, op, path)
	case os.IsPermission(err):
		return fmt.Errorf("%w: %s %s", ErrPermissionDenied, op, path)
	case os.IsExist(err):
		return fmt.Errorf("%w: %s %s", ErrAlreadyExists, op, path)
	}

	return fmt.Errorf("%s %s: %w", op, path, err)
}
