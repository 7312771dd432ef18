// Package fsutil provides filesystem utilities: path normalization helpers,
// file and directory read/write/copy wrappers, and the building blocks shared
// by the finder and watcher subpackages.
//
// All wrappers map OS-level errors into the package's sentinel errors
// (ErrNotFound, ErrPermissionDenied, ...) with the offending path attached,
// so callers can branch with errors.Is.
package fsutil
