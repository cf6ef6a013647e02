package vcs

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitTreeFileSystem_ReflectsCommitSnapshot(t *testing.T) {
	dir := t.TempDir()
	setupGitRepo(t, dir)
	createFile(t, dir, "main.py", "import pkg.util\n")
	createFile(t, dir, filepath.Join("pkg", "__init__.py"), "")
	createFile(t, dir, filepath.Join("pkg", "util.py"), "VALUE = 1\n")
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "initial")

	// Working tree changes after the commit must not leak into the snapshot.
	createFile(t, dir, filepath.Join("pkg", "util.py"), "VALUE = 2\n")
	createFile(t, dir, "untracked.py", "")

	fsys, err := NewGitTreeFileSystem(dir, "HEAD")
	require.NoError(t, err)

	assert.True(t, fsys.IsFile(filepath.Join(dir, "main.py")))
	assert.True(t, fsys.IsFile(filepath.Join(dir, "pkg", "util.py")))
	assert.False(t, fsys.IsFile(filepath.Join(dir, "pkg")))
	assert.False(t, fsys.IsFile(filepath.Join(dir, "untracked.py")))

	content, err := fsys.ReadFile(filepath.Join(dir, "pkg", "util.py"))
	require.NoError(t, err)
	assert.Equal(t, "VALUE = 1\n", string(content))

	names, err := fsys.ReadDir(filepath.Join(dir, "pkg"))
	require.NoError(t, err)
	assert.Equal(t, []string{"__init__.py", "util.py"}, names)

	names, err = fsys.ReadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"main.py", "pkg"}, names)
}

func TestGitTreeFileSystem_SubdirectoryBase(t *testing.T) {
	dir := t.TempDir()
	setupGitRepo(t, dir)
	createFile(t, dir, filepath.Join("app", "main.py"), "")
	createFile(t, dir, "outside.py", "")
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "initial")

	base := filepath.Join(dir, "app")
	fsys, err := NewGitTreeFileSystem(base, "HEAD")
	require.NoError(t, err)

	assert.True(t, fsys.IsFile(filepath.Join(base, "main.py")))
	assert.False(t, fsys.IsFile(filepath.Join(dir, "outside.py")), "paths above the base are not addressable")

	_, err = fsys.ReadFile(filepath.Join(dir, "outside.py"))
	assert.Error(t, err)
}

func TestGitTreeFileSystem_MissingDirectory(t *testing.T) {
	dir := t.TempDir()
	setupGitRepo(t, dir)
	createFile(t, dir, "main.py", "")
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "initial")

	fsys, err := NewGitTreeFileSystem(dir, "HEAD")
	require.NoError(t, err)

	_, err = fsys.ReadDir(filepath.Join(dir, "api"))
	assert.Error(t, err)
}

func TestNewGitTreeFileSystem_InvalidCommit(t *testing.T) {
	dir := t.TempDir()
	setupGitRepo(t, dir)
	createFile(t, dir, "main.py", "")
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "initial")

	_, err := NewGitTreeFileSystem(dir, "not-a-commit")
	assert.Error(t, err)
}

func TestGitTreeFileSystem_WideDirectoryListsEachChildOnce(t *testing.T) {
	dir := t.TempDir()
	setupGitRepo(t, dir)

	var expected []string
	for i := 0; i < 50; i++ {
		name := fmt.Sprintf("mod_%02d.py", 49-i)
		createFile(t, dir, filepath.Join("pkg", "sub", name), "")
		createFile(t, dir, filepath.Join("pkg", name), "")
	}
	for i := 0; i < 50; i++ {
		expected = append(expected, fmt.Sprintf("mod_%02d.py", i))
	}
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "initial")

	fsys, err := NewGitTreeFileSystem(dir, "HEAD")
	require.NoError(t, err)

	names, err := fsys.ReadDir(filepath.Join(dir, "pkg"))
	require.NoError(t, err)
	assert.Equal(t, append(append([]string{}, expected...), "sub"), names)

	names, err = fsys.ReadDir(filepath.Join(dir, "pkg", "sub"))
	require.NoError(t, err)
	assert.Equal(t, expected, names)

	names, err = fsys.ReadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"pkg"}, names)
}
