package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupFixture creates a temporary directory holding files, keyed by slash
// separated paths relative to it. It returns the absolute path to the
// directory and fails the test immediately on error.
func SetupFixture(t *testing.T, files map[string]string) string {
	t.Helper()

	dir, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755), "Failed to create fixture dir")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Failed to write fixture %s", name)
	}
	return dir
}
