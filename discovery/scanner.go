// Package discovery ships default, swappable collaborators for
// [kiln.Container.Discover]: a directory scanner, a koanf-backed config
// loader, a JSON-Schema validator, a caller-populated implementation
// registry, and an fsnotify-backed watcher that re-runs discovery on
// change.
package discovery

import (
	"context"
	"os"
	"path/filepath"
)

// manifestFileNames are the files DirScanner looks for inside a
// candidate entry directory to decide it holds a component.
var manifestFileNames = []string{"component.yaml", "component.yml"}

// DirScanner is the default ScanDirectory collaborator: it walks path one
// level deep and returns the entries that carry a component manifest
// file, mirroring the one-instance-per-directory convention of
// moolen/spectre's integrations layout.
type DirScanner struct{}

// NewDirScanner creates a DirScanner.
func NewDirScanner() *DirScanner { return &DirScanner{} }

func (s *DirScanner) ScanDirectory(ctx context.Context, path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	var found []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(path, entry.Name())
		if manifestPath(dir) != "" {
			found = append(found, dir)
		}
	}
	return found, nil
}

// manifestPath returns the path of whichever manifest file name exists
// under dir, or "" if neither does.
func manifestPath(dir string) string {
	for _, name := range manifestFileNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
