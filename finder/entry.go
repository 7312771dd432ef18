package finder

import "time"

// Entry describes one filesystem node produced by a traversal. Entries are
// values; they carry no handle to the underlying file.
type Entry struct {
	// Path is the absolute path of the node
	Path string

	// Name is the base name
	Name string

	// RelPath is the path relative to the traversal root, slash-normalized
	RelPath string

	// IsDir indicates if this is a directory
	IsDir bool

	// Size in bytes (0 for directories)
	Size int64

	// ModTime is the last modification time
	ModTime time.Time
}

// FilterFunc is a caller-supplied predicate applied to every candidate
// entry. All registered filters must return true for the entry to be
// produced. Filters run in registration order.
type FilterFunc func(Entry) bool
