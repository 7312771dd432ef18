package finder

import (
	"github.com/kr/fs"

	"github.com/php-toolkit/fsutil"
	"github.com/php-toolkit/fsutil/pathmatch"
)

// Iter walks the configured roots lazily, one entry per Next call. The
// sequence is finite and forward-only; check Err after Next returns false
// to distinguish exhaustion from a traversal failure.
type Iter struct {
	snap     *snapshot
	rootIdx  int
	root     string
	walker   *fs.Walker
	appended int
	entry    Entry
	err      error
	done     bool
}

func newIter(snap *snapshot) *Iter {
	return &Iter{snap: snap}
}

// Next advances to the next matching entry. It returns false when the
// traversal is exhausted or has failed.
func (it *Iter) Next() bool {
	if it.err != nil || it.done {
		return false
	}

	for {
		if it.walker == nil {
			if it.rootIdx >= len(it.snap.roots) {
				return it.nextAppended()
			}
			it.root = it.snap.roots[it.rootIdx]
			it.walker = fs.WalkFS(it.root, walkFS{follow: it.snap.follow})
			it.rootIdx++
		}

		if !it.walker.Step() {
			it.walker = nil
			continue
		}

		if err := it.walker.Err(); err != nil {
			// The walker reports an unreadable directory as a second
			// visit of the same node with the error attached; the
			// directory has already been produced, only its children
			// are lost.
			if it.snap.skipUnreadable {
				continue
			}
			it.err = fsutil.WrapPathError("traverse", it.walker.Path(), err)
			return false
		}

		path := it.walker.Path()
		if path == it.root {
			continue
		}

		info := it.walker.Stat()
		entry := Entry{
			Path:    path,
			Name:    info.Name(),
			RelPath: fsutil.RelativeTo(it.root, path),
			IsDir:   info.IsDir(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		}

		if entry.IsDir {
			// Pruning happens before the filter chain and regardless of
			// its outcome; it only stops descent, never the node itself.
			if !it.snap.recursive ||
				pathmatch.ExcludedName(entry.Name, it.snap.excludeDirNames) {
				it.walker.SkipDir()
			}
		}

		if it.snap.accept(entry) {
			it.entry = entry
			return true
		}
	}
}

// nextAppended produces the externally appended entries once all root
// traversals are exhausted. Appended entries bypass the filter chain: they
// come pre-filtered from another finder.
func (it *Iter) nextAppended() bool {
	if it.appended >= len(it.snap.appended) {
		it.done = true
		return false
	}
	it.entry = it.snap.appended[it.appended]
	it.appended++
	return true
}

// Entry returns the entry produced by the last successful Next
func (it *Iter) Entry() Entry {
	return it.entry
}

// Err returns the traversal error that terminated the sequence, if any.
// Entries produced before the failure stand.
func (it *Iter) Err() error {
	return it.err
}

// accept runs the filter chain: mode, then name excludes/includes, then
// caller filters, then path excludes/includes. Short-circuits on the first
// failing stage.
func (s *snapshot) accept(e Entry) bool {
	if e.IsDir && s.mode == ModeFiles {
		return false
	}
	if !e.IsDir && s.mode == ModeDirs {
		return false
	}

	if pathmatch.ExcludedName(e.Name, s.excludeNames) {
		return false
	}
	if !pathmatch.AnyName(e.Name, s.includeNames) {
		return false
	}

	for _, filter := range s.filters {
		if !filter(e) {
			return false
		}
	}

	if pathmatch.ExcludedPath(e.RelPath, s.excludePaths) {
		return false
	}
	return pathmatch.AnyPath(e.RelPath, s.includePaths)
}
