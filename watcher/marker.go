package watcher

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/php-toolkit/fsutil/checksum"
)

// markerFile manages the persisted fingerprint: a plain text file holding
// exactly the hex digest of the last computed aggregate hash, overwritten
// wholesale on each check.
type markerFile struct {
	path string
}

func newMarkerFile(path string) *markerFile {
	return &markerFile{path: path}
}

// defaultMarkerPath derives a deterministic marker location from the watch
// directory list: a digest of its JSON encoding, placed in the OS temp
// directory with an ".id" suffix. The same watch list always maps to the
// same marker file across process runs.
func defaultMarkerPath(watchDirs []string) (string, error) {
	encoded, err := json.Marshal(watchDirs)
	if err != nil {
		return "", fmt.Errorf("encode watch dirs: %w", err)
	}

	digest, err := checksum.SumString(string(encoded), checksum.MD5)
	if err != nil {
		return "", err
	}

	return filepath.Join(os.TempDir(), digest+".id"), nil
}

// Read returns the previously persisted hash. A missing or unreadable
// marker reports ok=false: no baseline, first-run semantics.
func (m *markerFile) Read() (hash string, ok bool) {
	content, err := os.ReadFile(m.path)
	if err != nil {
		return "", false
	}

	hash = strings.TrimSpace(string(content))
	return hash, hash != ""
}

// Write persists hash, replacing any previous value. Failure here is
// surfaced hard: without a durable marker the watcher cannot do its job.
func (m *markerFile) Write(hash string) error {
	if err := os.WriteFile(m.path, []byte(hash), 0o644); err != nil {
		return fmt.Errorf("write marker file %s: %w", m.path, err)
	}
	return nil
}

// Remove deletes the marker file. Missing files are not an error.
func (m *markerFile) Remove() error {
	if err := os.Remove(m.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove marker file %s: %w", m.path, err)
	}
	return nil
}
