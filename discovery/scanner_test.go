package discovery

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("enabled: true\n"), 0o644))
}

func TestDirScanner_FindsManifestDirs(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, filepath.Join(root, "alpha"), "component.yaml")
	writeManifest(t, filepath.Join(root, "beta"), "component.yml")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))

	entries, err := NewDirScanner().ScanDirectory(context.Background(), root)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		filepath.Join(root, "alpha"),
		filepath.Join(root, "beta"),
	}, entries)
}

func TestDirScanner_IgnoresFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "stray.txt"), []byte("x"), 0o644))

	entries, err := NewDirScanner().ScanDirectory(context.Background(), root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDirScanner_MissingRootErrors(t *testing.T) {
	_, err := NewDirScanner().ScanDirectory(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
