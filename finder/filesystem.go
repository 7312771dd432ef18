package finder

import (
	"os"
	"path/filepath"
)

// walkFS adapts the local filesystem to the kr/fs walker interface. When
// follow is set, symlinked directory entries report the metadata of their
// target so the walker descends through them; broken links keep their
// lstat view and stay leaves.
type walkFS struct {
	follow bool
}

func (w walkFS) ReadDir(dirname string) ([]os.FileInfo, error) {
	entries, err := os.ReadDir(dirname)
	if err != nil {
		return nil, err
	}

	infos := make([]os.FileInfo, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			// Entry vanished between ReadDir and Lstat
			continue
		}

		if w.follow && info.Mode()&os.ModeSymlink != 0 {
			if target, err := os.Stat(filepath.Join(dirname, entry.Name())); err == nil {
				info = target
			}
		}

		infos = append(infos, info)
	}

	return infos, nil
}

// Lstat is only consulted for the walk root, which the finder has already
// validated as a directory, so symlinked roots are always followed.
func (w walkFS) Lstat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

func (w walkFS) Join(elem ...string) string {
	return filepath.Join(elem...)
}
