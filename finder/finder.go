// Package finder implements a lazy, filterable, recursive directory
// traversal engine with composable include/exclude predicates.
//
// A Finder is configured fluently and consumed through All, Each, Count or
// Entries. Each consuming call snapshots the configuration and starts a
// fresh traversal; results are never cached, so re-iteration costs the same
// as the first pass. A Finder is not safe for concurrent use.
//
//	n, err := finder.New("/tmp/proj").
//		Files().
//		Name("*.go").
//		NotPath("vendor").
//		Count()
package finder

import (
	"errors"
	"fmt"
	"os"

	"github.com/php-toolkit/fsutil"
)

// ErrNoRoots indicates the finder was consumed before any root directory
// or appended entries were configured
var ErrNoRoots = errors.New("finder: no root directories configured")

// Mode selects which node kinds a traversal produces
type Mode int

const (
	// ModeAll yields both files and directories
	ModeAll Mode = iota
	// ModeFiles yields regular files only
	ModeFiles
	// ModeDirs yields directories only
	ModeDirs
)

// VCSDirNames are the version-control directory names pruned when VCS
// ignoring is enabled (the default).
var VCSDirNames = []string{
	".svn", ".git", ".hg", ".bzr", "CVS", "_darcs", ".monotone", ".arch-params", "_svn",
}

// Finder builds and runs filtered directory traversals
type Finder struct {
	mode            Mode
	roots           []string
	includeNames    []string
	excludeNames    []string
	includePaths    []string
	excludePaths    []string
	excludeDirNames []string
	filters         []FilterFunc
	appended        []Entry

	ignoreVCS      bool
	ignoreDotFiles bool
	ignoreDotDirs  bool
	recursive      bool
	follow         bool
	skipUnreadable bool
}

// New creates a finder over the given root directories. VCS directories
// are ignored and recursion is enabled by default.
func New(roots ...string) *Finder {
	f := &Finder{
		ignoreVCS: true,
		recursive: true,
	}
	return f.In(roots...)
}

// In appends root directories to scan, in order
func (f *Finder) In(dirs ...string) *Finder {
	f.roots = append(f.roots, dirs...)
	return f
}

// Files restricts results to regular files
func (f *Finder) Files() *Finder {
	f.mode = ModeFiles
	return f
}

// Dirs restricts results to directories
func (f *Finder) Dirs() *Finder {
	f.mode = ModeDirs
	return f
}

// Name adds glob patterns the base name must match (any of them)
func (f *Finder) Name(patterns ...string) *Finder {
	f.includeNames = append(f.includeNames, patterns...)
	return f
}

// NotName adds glob patterns that reject an entry by base name
func (f *Finder) NotName(patterns ...string) *Finder {
	f.excludeNames = append(f.excludeNames, patterns...)
	return f
}

// Path adds patterns the relative path must match (glob, or substring for
// bare words — see pathmatch.MatchPath)
func (f *Finder) Path(patterns ...string) *Finder {
	f.includePaths = append(f.includePaths, patterns...)
	return f
}

// NotPath adds patterns that reject an entry by relative path
func (f *Finder) NotPath(patterns ...string) *Finder {
	f.excludePaths = append(f.excludePaths, patterns...)
	return f
}

// NotDirName adds directory-name patterns that prune whole subtrees:
// descendants of a matching directory are never produced. The directory
// node itself still passes through the normal filter chain.
func (f *Finder) NotDirName(patterns ...string) *Finder {
	f.excludeDirNames = append(f.excludeDirNames, patterns...)
	return f
}

// IgnoreVCS toggles pruning of version-control directories (on by default)
func (f *Finder) IgnoreVCS(ignore bool) *Finder {
	f.ignoreVCS = ignore
	return f
}

// IgnoreDotFiles excludes files whose name starts with a dot
func (f *Finder) IgnoreDotFiles(ignore bool) *Finder {
	f.ignoreDotFiles = ignore
	return f
}

// IgnoreDotDirs prunes directories whose name starts with a dot
func (f *Finder) IgnoreDotDirs(ignore bool) *Finder {
	f.ignoreDotDirs = ignore
	return f
}

// NoRecursive limits the traversal to the immediate children of each root
func (f *Finder) NoRecursive() *Finder {
	f.recursive = false
	return f
}

// FollowSymlinks descends into symlinked directories. Off by default: a
// symlink is produced as a single leaf entry. No cycle detection is
// performed when enabled.
func (f *Finder) FollowSymlinks() *Finder {
	f.follow = true
	return f
}

// SkipUnreadableDirs treats a directory that cannot be opened as having no
// children instead of failing the traversal
func (f *Finder) SkipUnreadableDirs() *Finder {
	f.skipUnreadable = true
	return f
}

// Filter registers a caller-supplied predicate; all registered predicates
// must pass for an entry to be produced
func (f *Finder) Filter(fn FilterFunc) *Finder {
	f.filters = append(f.filters, fn)
	return f
}

// Append adds pre-built entries that are produced after all root
// traversals, unfiltered. Useful for merging the results of another
// finder.
func (f *Finder) Append(entries ...Entry) *Finder {
	f.appended = append(f.appended, entries...)
	return f
}

// All starts a traversal and returns its iterator. Configuration problems
// (no roots, missing root directory) surface on the iterator's first Next.
func (f *Finder) All() *Iter {
	snap, err := f.prepare()
	if err != nil {
		return &Iter{err: err}
	}
	return newIter(snap)
}

// Count drains a full traversal and returns the number of entries produced
func (f *Finder) Count() (int, error) {
	n := 0
	err := f.Each(func(Entry) error {
		n++
		return nil
	})
	return n, err
}

// Each applies fn to every entry, halting on the first error from fn or
// from the traversal itself
func (f *Finder) Each(fn func(Entry) error) error {
	it := f.All()
	for it.Next() {
		if err := fn(it.Entry()); err != nil {
			return err
		}
	}
	return it.Err()
}

// Entries drains a full traversal into a slice
func (f *Finder) Entries() ([]Entry, error) {
	var entries []Entry
	err := f.Each(func(e Entry) error {
		entries = append(entries, e)
		return nil
	})
	return entries, err
}

// snapshot is the immutable per-traversal view of a Finder's
// configuration. Every consuming call builds its own, so mutating the
// Finder mid-iteration cannot corrupt a traversal already underway.
type snapshot struct {
	mode            Mode
	roots           []string
	includeNames    []string
	excludeNames    []string
	includePaths    []string
	excludePaths    []string
	excludeDirNames []string
	filters         []FilterFunc
	appended        []Entry
	recursive       bool
	follow          bool
	skipUnreadable  bool
}

// prepare validates the configuration, expands the ignore flags into
// concrete exclude patterns, and resolves roots to absolute paths
func (f *Finder) prepare() (*snapshot, error) {
	if len(f.roots) == 0 && len(f.appended) == 0 {
		return nil, ErrNoRoots
	}

	snap := &snapshot{
		mode:            f.mode,
		includeNames:    clone(f.includeNames),
		excludeNames:    clone(f.excludeNames),
		includePaths:    clone(f.includePaths),
		excludePaths:    clone(f.excludePaths),
		excludeDirNames: clone(f.excludeDirNames),
		filters:         append([]FilterFunc(nil), f.filters...),
		appended:        append([]Entry(nil), f.appended...),
		recursive:       f.recursive,
		follow:          f.follow,
		skipUnreadable:  f.skipUnreadable,
	}

	if f.ignoreVCS {
		snap.excludeDirNames = append(snap.excludeDirNames, VCSDirNames...)
	}
	if f.ignoreDotDirs {
		snap.excludeDirNames = append(snap.excludeDirNames, ".*")
	}
	if f.ignoreDotFiles {
		snap.excludeNames = append(snap.excludeNames, ".*")
	}

	for _, root := range f.roots {
		abs := fsutil.ToAbsPath(root)
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fsutil.WrapPathError("find in", root, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%w: find in %s", fsutil.ErrNotDirectory, root)
		}
		snap.roots = append(snap.roots, abs)
	}

	return snap, nil
}

func clone(patterns []string) []string {
	return append([]string(nil), patterns...)
}
