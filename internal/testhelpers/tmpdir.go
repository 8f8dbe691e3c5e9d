package testhelpers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TmpDir returns a temporary directory with symlinks resolved, so that it
// matches the working directory reported after changing into it
func TmpDir(tb testing.TB) string {
	tb.Helper()

	tmpDir, err := filepath.EvalSymlinks(tb.TempDir())
	require.NoError(tb, err)

	return tmpDir
}

// WriteFiles creates files under dir, keyed by their slash separated path
// relative to dir. Parent directories are created as needed.
func WriteFiles(tb testing.TB, dir string, files map[string]string) {
	tb.Helper()

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))

		require.NoError(tb, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(tb, os.WriteFile(path, []byte(content), 0644))
	}
}
