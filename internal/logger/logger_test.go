package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLogFilePathDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	oldWD, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = os.Chdir(oldWD)
	})
	require.NoError(t, os.Chdir(tmpDir))

	got, err := resolveLogFilePath(Options{})
	require.NoError(t, err)

	realTmpDir, err := filepath.EvalSymlinks(tmpDir)
	require.NoError(t, err)
	realGot, err := filepath.EvalSymlinks(filepath.Dir(got))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(realTmpDir, defaultLogDirName), realGot)
	assert.Equal(t, defaultLogFilename, filepath.Base(got))
}

func TestNewReleaseWritesJSONFile(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("release", Options{Dir: tmpDir, Filename: "release.log"})
	log.Info("preorder_submitted")
	_ = log.Sync()

	content, err := os.ReadFile(filepath.Join(tmpDir, "release.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), `"message":"preorder_submitted"`)
}

func TestNewDebugDoesNotWriteFile(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("debug", Options{Dir: tmpDir, Filename: "debug.log"})
	log.Info("debug-log-test")
	_ = log.Sync()

	_, err := os.Stat(filepath.Join(tmpDir, "debug.log"))
	assert.True(t, os.IsNotExist(err), "debug mode should not create log file")
}

func TestPositiveOr(t *testing.T) {
	assert.Equal(t, 5, positiveOr(5, 9))
	assert.Equal(t, 9, positiveOr(0, 9))
	assert.Equal(t, 9, positiveOr(-1, 9))
}
