package vcs

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSFileSystem_IsFile(t *testing.T) {
	dir := t.TempDir()
	file := createFile(t, dir, "a.py", "")
	fsys := FilesystemFileSystem()

	assert.True(t, fsys.IsFile(file))
	assert.False(t, fsys.IsFile(dir), "directories are not files")
	assert.False(t, fsys.IsFile(filepath.Join(dir, "missing.py")))
}

func TestOSFileSystem_IsFile_DanglingSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires elevated privileges on Windows")
	}

	dir := t.TempDir()
	link := filepath.Join(dir, "link.py")
	require.NoError(t, os.Symlink(filepath.Join(dir, "nowhere.py"), link))

	assert.False(t, FilesystemFileSystem().IsFile(link))
}

func TestOSFileSystem_ReadDirAndReadFile(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, "a.py", "import b\n")
	createFile(t, dir, filepath.Join("sub", "c.py"), "")
	fsys := FilesystemFileSystem()

	names, err := fsys.ReadDir(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.py", "sub"}, names)

	content, err := fsys.ReadFile(filepath.Join(dir, "a.py"))
	require.NoError(t, err)
	assert.Equal(t, "import b\n", string(content))

	_, err = fsys.ReadDir(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
