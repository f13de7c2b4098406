package install

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstallInstallsAtomically(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.txt")

	err := Install(bytes.NewReader([]byte("hello world")), dst, Options{})
	require.NoError(t, err)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(got))
}

func TestInstallMakeParentsCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "nested", "deeper", "out.txt")

	err := Install(bytes.NewReader([]byte("x")), dst, Options{MakeParents: true})
	require.NoError(t, err)

	_, err = os.Stat(dst)
	require.NoError(t, err)
}

func TestInstallWithoutMakeParentsFailsOnMissingDir(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "nested", "out.txt")

	err := Install(bytes.NewReader([]byte("x")), dst, Options{})
	assert.Error(t, err)
}

func TestInstallPreservesExistingFilePermissions(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(dst, []byte("old"), 0600))

	err := Install(bytes.NewReader([]byte("new")), dst, Options{Permissions: 0644})
	require.NoError(t, err)

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestBeginCancelLeavesDestinationUntouched(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.txt")

	staged, err := Begin(dst, Options{})
	require.NoError(t, err)
	_, err = staged.Write([]byte("partial"))
	require.NoError(t, err)

	stagedPath := staged.Path()
	_, err = Stat(stagedPath)
	require.NoError(t, err, "staged file should exist before Cancel")

	require.NoError(t, staged.Cancel())

	_, err = os.Stat(dst)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(stagedPath)
	assert.True(t, os.IsNotExist(err), "Cancel should remove the staged temp file")
}

func TestBeginCommitInstallsStagedBytes(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.txt")

	staged, err := Begin(dst, Options{})
	require.NoError(t, err)
	_, err = staged.Write([]byte("committed"))
	require.NoError(t, err)
	require.NoError(t, staged.Commit())

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "committed", string(got))
}

func TestStatUnknownPathFails(t *testing.T) {
	_, err := Stat(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}
