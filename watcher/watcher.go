// Package watcher detects changes in directory trees between separate runs
// by fingerprinting their content.
//
// A Watcher recursively hashes every accepted file under its watch
// directories, concatenates the per-file digests, and digests that buffer
// into a single aggregate hash. The aggregate is compared against the value
// persisted in a small marker file by the previous run; the marker is then
// overwritten, so each check rebases the comparison. Only the last
// fingerprint is retained, never a manifest.
//
// The first check over a watch list with no marker establishes the baseline
// and always reports unchanged. A Watcher is synchronous and not safe for
// concurrent use.
package watcher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/php-toolkit/fsutil/checksum"
	"github.com/php-toolkit/fsutil/internal/logger"
	"github.com/php-toolkit/fsutil/pathmatch"
)

// ErrNoWatchDirs indicates a fingerprint was requested before any watch
// directory was configured
var ErrNoWatchDirs = errors.New("watcher: no watch directories configured")

// Watcher fingerprints directory trees for cross-run change detection
type Watcher struct {
	watchDirs       []string
	markerPath      string
	includeNames    []string
	excludeNames    []string
	excludeDirNames []string
	ignoreDotDirs   bool
	ignoreDotFiles  bool

	calc *checksum.Calculator

	// last computed fingerprint, transient per run
	lastHash  string
	fileCount int
}

// New creates a watcher over the given directories. Dot directories and
// dot files are ignored by default.
func New(dirs ...string) *Watcher {
	w := &Watcher{
		ignoreDotDirs:  true,
		ignoreDotFiles: true,
		calc:           checksum.NewDefaultCalculator(),
	}
	return w.Watch(dirs...)
}

// Watch appends directories to the watch list (additive)
func (w *Watcher) Watch(dirs ...string) *Watcher {
	for _, dir := range dirs {
		if dir != "" {
			w.watchDirs = append(w.watchDirs, dir)
		}
	}
	return w
}

// MarkerFile overrides the derived marker file location
func (w *Watcher) MarkerFile(path string) *Watcher {
	w.markerPath = path
	return w
}

// IncludeNames limits hashing to files matching at least one glob pattern
// (for example "*.go"). Empty means every non-excluded file is hashed.
func (w *Watcher) IncludeNames(patterns ...string) *Watcher {
	w.includeNames = append(w.includeNames, patterns...)
	return w
}

// ExcludeNames skips files whose base name matches any glob pattern
func (w *Watcher) ExcludeNames(patterns ...string) *Watcher {
	w.excludeNames = append(w.excludeNames, patterns...)
	return w
}

// ExcludeDirNames skips whole subtrees by directory name
func (w *Watcher) ExcludeDirNames(names ...string) *Watcher {
	w.excludeDirNames = append(w.excludeDirNames, names...)
	return w
}

// IgnoreDotDirs toggles skipping of dot directories (on by default)
func (w *Watcher) IgnoreDotDirs(ignore bool) *Watcher {
	w.ignoreDotDirs = ignore
	return w
}

// IgnoreDotFiles toggles skipping of dot files (on by default)
func (w *Watcher) IgnoreDotFiles(ignore bool) *Watcher {
	w.ignoreDotFiles = ignore
	return w
}

// WatchDirs returns the configured watch list
func (w *Watcher) WatchDirs() []string {
	return w.watchDirs
}

// LastHash returns the aggregate hash of the most recent computation
func (w *Watcher) LastHash() string {
	return w.lastHash
}

// FileCount returns the number of files hashed in the most recent
// computation
func (w *Watcher) FileCount() int {
	return w.fileCount
}

// MarkerPath returns the marker file location, deriving the default from
// the watch list when none was configured explicitly
func (w *Watcher) MarkerPath() (string, error) {
	if w.markerPath != "" {
		return w.markerPath, nil
	}
	return defaultMarkerPath(w.watchDirs)
}

// Changed recomputes the fingerprint and compares it against the persisted
// baseline. The new value is persisted regardless of the outcome, so two
// consecutive calls with no modification in between report a change at
// most once. A missing baseline establishes one and reports false.
func (w *Watcher) Changed() (bool, error) {
	markerPath, err := w.MarkerPath()
	if err != nil {
		return false, err
	}
	marker := newMarkerFile(markerPath)

	previous, hasBaseline := marker.Read()

	current, err := w.compute()
	if err != nil {
		return false, err
	}

	if err := marker.Write(current); err != nil {
		return false, err
	}

	if !hasBaseline {
		logger.Get().Debug("watcher baseline established",
			"marker", markerPath, "hash", current, "files", w.fileCount)
		return false, nil
	}

	return previous != current, nil
}

// Fingerprint recomputes the aggregate hash, persists it to the marker
// file, and returns it
func (w *Watcher) Fingerprint() (string, error) {
	aggregate, err := w.compute()
	if err != nil {
		return "", err
	}

	markerPath, err := w.MarkerPath()
	if err != nil {
		return "", err
	}
	if err := newMarkerFile(markerPath).Write(aggregate); err != nil {
		return "", err
	}

	return aggregate, nil
}

// compute builds the aggregate hash over all watch directories: every
// accepted file's content digest is appended to an accumulator, and the
// accumulator is digested into the final value. The per-directory listing
// is sorted, so the same tree always produces the same hash.
func (w *Watcher) compute() (string, error) {
	if len(w.watchDirs) == 0 {
		return "", ErrNoWatchDirs
	}

	var accumulator strings.Builder
	w.fileCount = 0

	for _, dir := range w.watchDirs {
		if err := w.collectDir(dir, &accumulator); err != nil {
			return "", err
		}
	}

	aggregate, err := checksum.SumString(accumulator.String(), checksum.MD5)
	if err != nil {
		return "", err
	}

	w.lastHash = aggregate
	return aggregate, nil
}

// ClearMarker removes the persisted baseline, so the next check starts
// fresh
func (w *Watcher) ClearMarker() error {
	markerPath, err := w.MarkerPath()
	if err != nil {
		return err
	}
	return newMarkerFile(markerPath).Remove()
}

// collectDir recursively hashes the accepted files under dir. Unreadable
// directories fail the whole computation: silently skipping one would
// produce a false "unchanged" answer, which defeats the watcher's purpose.
func (w *Watcher) collectDir(dir string, accumulator *strings.Builder) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)

		if entry.IsDir() {
			if w.ignoreDotDirs && strings.HasPrefix(name, ".") {
				continue
			}
			if pathmatch.ExcludedName(name, w.excludeDirNames) {
				continue
			}
			if err := w.collectDir(path, accumulator); err != nil {
				return err
			}
			continue
		}

		if w.ignoreDotFiles && strings.HasPrefix(name, ".") {
			continue
		}
		if pathmatch.ExcludedName(name, w.excludeNames) {
			continue
		}
		if !pathmatch.AnyName(name, w.includeNames) {
			continue
		}

		digest, err := w.calc.CalculateFile(path, checksum.MD5)
		if err != nil {
			return err
		}

		accumulator.WriteString(digest)
		w.fileCount++
	}

	return nil
}
