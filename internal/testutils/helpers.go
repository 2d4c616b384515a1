package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteSeedFiles lays out seed documents in a fresh temp directory and
// returns its absolute path. Keys are file names relative to the directory;
// nested paths are created as needed. It fails the test immediately on error.
func WriteSeedFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	absPath, err := filepath.Abs(dir)
	require.NoError(t, err, "failed to resolve temp dir")

	for name, content := range files {
		path := filepath.Join(absPath, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "failed to create parent for %s", name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644), "failed to write %s", name)
	}
	return absPath
}
