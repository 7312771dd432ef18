package finder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/php-toolkit/fsutil"
	"github.com/php-toolkit/fsutil/internal/testutil"
)

// buildTree creates the fixture used by most finder tests:
//
//	a.php
//	b.txt
//	.git/config
//	.hidden
//	sub/c.php
//	sub/deep/d.txt
func buildTree(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	testutil.CreateTestTree(t, dir, map[string]string{
		"a.php":          "<?php\n",
		"b.txt":          "text\n",
		".git/config":    "[core]\n",
		".hidden":        "secret\n",
		"sub/c.php":      "<?php\n",
		"sub/deep/d.txt": "deep\n",
	})
	return dir
}

// relPaths drains a finder and returns the sorted relative paths produced
func relPaths(t *testing.T, f *Finder) []string {
	t.Helper()

	entries, err := f.Entries()
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, e.RelPath)
	}
	sort.Strings(paths)
	return paths
}

func equalPaths(t *testing.T, got, want []string) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("path count mismatch: got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("path mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}

// TestFinderNoRootsError tests that consuming an unconfigured finder fails
func TestFinderNoRootsError(t *testing.T) {
	_, err := (&Finder{recursive: true}).Count()
	if !errors.Is(err, ErrNoRoots) {
		t.Errorf("expected ErrNoRoots, got %v", err)
	}
}

// TestFinderMissingRoot tests that a nonexistent root fails before
// traversal starts
func TestFinderMissingRoot(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope")).Count()
	if !errors.Is(err, fsutil.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// TestFinderFileRoot tests that a file as root is rejected
func TestFinderFileRoot(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateTestFile(t, dir, "f.txt", "x")

	_, err := New(path).Count()
	if !errors.Is(err, fsutil.ErrNotDirectory) {
		t.Errorf("expected ErrNotDirectory, got %v", err)
	}
}

// TestFinderModeFilter tests that files/dirs modes partition the output
func TestFinderModeFilter(t *testing.T) {
	dir := buildTree(t)

	files, err := New(dir).Files().Entries()
	if err != nil {
		t.Fatalf("files traversal failed: %v", err)
	}
	for _, e := range files {
		if e.IsDir {
			t.Errorf("files mode produced directory %s", e.RelPath)
		}
	}

	dirs, err := New(dir).Dirs().Entries()
	if err != nil {
		t.Fatalf("dirs traversal failed: %v", err)
	}
	for _, e := range dirs {
		if !e.IsDir {
			t.Errorf("dirs mode produced file %s", e.RelPath)
		}
	}

	all, err := New(dir).Entries()
	if err != nil {
		t.Fatalf("all traversal failed: %v", err)
	}
	if len(all) != len(files)+len(dirs) {
		t.Errorf("all mode should be the union: %d != %d + %d", len(all), len(files), len(dirs))
	}
}

// TestFinderPruning tests that an excluded directory name removes every
// descendant but not the directory node itself
func TestFinderPruning(t *testing.T) {
	dir := buildTree(t)

	paths := relPaths(t, New(dir).NotDirName("sub"))

	for _, p := range paths {
		if p == "sub/c.php" || p == "sub/deep" || p == "sub/deep/d.txt" {
			t.Errorf("descendant of pruned directory produced: %s", p)
		}
	}

	found := false
	for _, p := range paths {
		if p == "sub" {
			found = true
		}
	}
	if !found {
		t.Error("pruning should only stop descent, not suppress the directory node itself")
	}
}

// TestFinderOpenDefaults tests that with no include or exclude patterns
// every non-VCS entry is produced
func TestFinderOpenDefaults(t *testing.T) {
	dir := buildTree(t)

	// .git itself appears: VCS pruning stops descent, not the node
	paths := relPaths(t, New(dir))
	want := []string{".git", ".hidden", "a.php", "b.txt", "sub", "sub/c.php", "sub/deep", "sub/deep/d.txt"}
	equalPaths(t, paths, want)
}

// TestFinderVCSIgnoredByDefault tests default pruning of VCS directories
func TestFinderVCSIgnoredByDefault(t *testing.T) {
	dir := buildTree(t)

	for _, p := range relPaths(t, New(dir)) {
		if p == ".git/config" {
			t.Error(".git contents should be pruned by default")
		}
	}

	// With VCS ignoring off the contents come back
	found := false
	for _, p := range relPaths(t, New(dir).IgnoreVCS(false)) {
		if p == ".git/config" {
			found = true
		}
	}
	if !found {
		t.Error("IgnoreVCS(false) should descend into .git")
	}
}

// TestFinderDotFlags tests dot-file exclusion and dot-dir pruning
func TestFinderDotFlags(t *testing.T) {
	dir := buildTree(t)

	for _, p := range relPaths(t, New(dir).IgnoreDotFiles(true)) {
		if p == ".hidden" {
			t.Error("dot file should be excluded")
		}
	}

	paths := relPaths(t, New(dir).IgnoreVCS(false).IgnoreDotDirs(true).Files())
	for _, p := range paths {
		if p == ".git/config" {
			t.Error("dot dir contents should be pruned")
		}
	}
}

// TestFinderScenario tests the canonical composed-filters example:
// files().name('*.php').notPath('sub') yields exactly a.php
func TestFinderScenario(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateTestTree(t, dir, map[string]string{
		"a.php":       "<?php\n",
		"b.txt":       "text\n",
		".git/config": "[core]\n",
		"sub/c.php":   "<?php\n",
	})

	paths := relPaths(t, New(dir).Files().Name("*.php").NotPath("sub"))
	equalPaths(t, paths, []string{"a.php"})
}

// TestFinderNameFilters tests include and exclude name patterns together
func TestFinderNameFilters(t *testing.T) {
	dir := buildTree(t)

	paths := relPaths(t, New(dir).Files().Name("*.php", "*.txt").NotName("b.*"))
	equalPaths(t, paths, []string{"a.php", "sub/c.php", "sub/deep/d.txt"})
}

// TestFinderPathFilters tests include path patterns
func TestFinderPathFilters(t *testing.T) {
	dir := buildTree(t)

	paths := relPaths(t, New(dir).Files().Path("sub"))
	equalPaths(t, paths, []string{"sub/c.php", "sub/deep/d.txt"})
}

// TestFinderExtraFilters tests caller-supplied predicates
func TestFinderExtraFilters(t *testing.T) {
	dir := buildTree(t)

	paths := relPaths(t, New(dir).Files().Filter(func(e Entry) bool {
		return e.Size > 0 && e.Name != "b.txt"
	}))

	for _, p := range paths {
		if p == "b.txt" {
			t.Error("extra filter should have rejected b.txt")
		}
	}
}

// TestFinderNonRecursive tests that recursion off yields immediate
// children only
func TestFinderNonRecursive(t *testing.T) {
	dir := buildTree(t)

	paths := relPaths(t, New(dir).NoRecursive())
	want := []string{".git", ".hidden", "a.php", "b.txt", "sub"}
	equalPaths(t, paths, want)
}

// TestFinderMultipleRoots tests that roots are scanned in configured order
func TestFinderMultipleRoots(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	testutil.CreateTestFile(t, first, "one.txt", "1")
	testutil.CreateTestFile(t, second, "two.txt", "2")

	entries, err := New(first).In(second).Files().Entries()
	if err != nil {
		t.Fatalf("traversal failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "one.txt" || entries[1].Name != "two.txt" {
		t.Errorf("roots not scanned in order: %s, %s", entries[0].Name, entries[1].Name)
	}
}

// TestFinderAppend tests that external entries come after all traversals,
// unfiltered
func TestFinderAppend(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateTestFile(t, dir, "real.txt", "x")

	external := Entry{Path: "/virtual/x.bin", Name: "x.bin", RelPath: "x.bin"}

	entries, err := New(dir).Files().Name("*.txt").Append(external).Entries()
	if err != nil {
		t.Fatalf("traversal failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[len(entries)-1].Name != "x.bin" {
		t.Error("appended entry should come last and bypass filters")
	}
}

// TestFinderAppendOnly tests a finder with no roots but appended entries
func TestFinderAppendOnly(t *testing.T) {
	f := (&Finder{recursive: true}).Append(Entry{Name: "only"})

	n, err := f.Count()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 entry, got %d", n)
	}
}

// TestFinderSelfFirstOrder tests that a directory is produced before its
// children
func TestFinderSelfFirstOrder(t *testing.T) {
	dir := buildTree(t)

	var order []string
	err := New(dir).Each(func(e Entry) error {
		order = append(order, e.RelPath)
		return nil
	})
	if err != nil {
		t.Fatalf("traversal failed: %v", err)
	}

	pos := map[string]int{}
	for i, p := range order {
		pos[p] = i
	}

	if pos["sub"] > pos["sub/c.php"] {
		t.Error("directory should be produced before its children")
	}
	if pos["sub/deep"] > pos["sub/deep/d.txt"] {
		t.Error("directory should be produced before its children")
	}
}

// TestFinderCount tests that Count drains the full sequence
func TestFinderCount(t *testing.T) {
	dir := buildTree(t)

	n, err := New(dir).Files().Count()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 5 {
		t.Errorf("expected 5 files, got %d", n)
	}
}

// TestFinderEachStopsOnError tests error propagation from the callback
func TestFinderEachStopsOnError(t *testing.T) {
	dir := buildTree(t)
	boom := errors.New("boom")

	calls := 0
	err := New(dir).Each(func(e Entry) error {
		calls++
		return boom
	})

	if !errors.Is(err, boom) {
		t.Errorf("expected callback error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("callback should halt the traversal, got %d calls", calls)
	}
}

// TestFinderReiteration tests that each consuming call re-walks from
// scratch and observes filesystem changes
func TestFinderReiteration(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateTestFile(t, dir, "a.txt", "a")

	f := New(dir).Files()

	n, err := f.Count()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 file, got %d", n)
	}

	testutil.CreateTestFile(t, dir, "b.txt", "b")

	n, err = f.Count()
	if err != nil {
		t.Fatalf("second count failed: %v", err)
	}
	if n != 2 {
		t.Errorf("re-iteration should re-walk: expected 2 files, got %d", n)
	}
}

// TestFinderSnapshotIsolation tests that mutating the finder after an
// iteration started does not affect the in-flight traversal
func TestFinderSnapshotIsolation(t *testing.T) {
	dir := buildTree(t)

	f := New(dir).Files()
	it := f.All()

	// Mutate mid-iteration; the running iterator keeps its snapshot
	f.Name("*.never")

	n := 0
	for it.Next() {
		n++
	}
	if err := it.Err(); err != nil {
		t.Fatalf("traversal failed: %v", err)
	}
	if n != 5 {
		t.Errorf("in-flight iteration should ignore later mutation, got %d entries", n)
	}
}

// TestFinderSymlinkLeaf tests that a symlinked directory is a single leaf
// entry unless following is enabled
func TestFinderSymlinkLeaf(t *testing.T) {
	dir := t.TempDir()
	target := testutil.CreateTestDir(t, dir, "target")
	testutil.CreateTestFile(t, target, "inside.txt", "x")
	testutil.Symlink(t, target, filepath.Join(dir, "link"))

	paths := relPaths(t, New(dir))
	for _, p := range paths {
		if p == "link/inside.txt" {
			t.Error("symlinked directory must not be descended by default")
		}
	}

	found := false
	for _, p := range paths {
		if p == "link" {
			found = true
		}
	}
	if !found {
		t.Error("the symlink itself should be produced as a leaf")
	}

	// With following enabled the children appear
	followed := relPaths(t, New(dir).FollowSymlinks())
	found = false
	for _, p := range followed {
		if p == "link/inside.txt" {
			found = true
		}
	}
	if !found {
		t.Error("FollowSymlinks should descend into the target")
	}
}

// TestFinderUnreadableDir tests both unreadable-directory policies
func TestFinderUnreadableDir(t *testing.T) {
	testutil.SkipIfRoot(t)

	dir := t.TempDir()
	locked := testutil.CreateTestDir(t, dir, "locked")
	testutil.CreateTestFile(t, dir, "ok.txt", "x")
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatalf("chmod failed: %v", err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	// Default policy: the traversal fails
	_, err := New(dir).Entries()
	if err == nil {
		t.Error("unreadable directory should fail the traversal by default")
	}

	// Skip policy: the directory is treated as having no children
	entries, err := New(dir).SkipUnreadableDirs().Entries()
	if err != nil {
		t.Fatalf("skip policy should swallow the error, got %v", err)
	}

	names := map[string]bool{}
	for _, e := range entries {
		names[e.RelPath] = true
	}
	if !names["ok.txt"] || !names["locked"] {
		t.Errorf("expected both ok.txt and locked in output, got %v", names)
	}
}

// TestFinderEntryFields tests the fields of a produced entry
func TestFinderEntryFields(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateTestFile(t, dir, "sub/file.txt", "hello")

	entries, err := New(dir).Files().Entries()
	if err != nil {
		t.Fatalf("traversal failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	e := entries[0]
	if e.Name != "file.txt" {
		t.Errorf("Name = %q", e.Name)
	}
	if e.RelPath != "sub/file.txt" {
		t.Errorf("RelPath = %q", e.RelPath)
	}
	if !filepath.IsAbs(e.Path) {
		t.Errorf("Path should be absolute: %q", e.Path)
	}
	if e.Size != int64(len("hello")) {
		t.Errorf("Size = %d", e.Size)
	}
	if e.IsDir {
		t.Error("IsDir should be false for a file")
	}
}

// TestFinderLargeTreeLazy sanity-checks that iteration can stop early
// without draining everything
func TestFinderLargeTreeLazy(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 50; i++ {
		testutil.CreateTestFile(t, dir, fmt.Sprintf("f%02d.txt", i), "x")
	}

	it := New(dir).Files().All()
	for i := 0; i < 3; i++ {
		if !it.Next() {
			t.Fatalf("expected more entries, stopped at %d (err: %v)", i, it.Err())
		}
	}
	// Consumer simply stops pulling; nothing to assert beyond no panic
}
