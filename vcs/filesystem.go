package vcs

import (
	"os"
)

// FileSystem is the read-only view of a project tree the dependency analyzer works against.
// Implementations decide where content comes from (working tree, git commit, etc.)
type FileSystem interface {
	// IsFile reports whether path exists and is a regular file.
	IsFile(path string) bool
	// ReadDir returns the names of the entries in dir.
	ReadDir(dir string) ([]string, error)
	// ReadFile returns the content of the file at path.
	ReadFile(path string) ([]byte, error)
}

// OSFileSystem reads from the local filesystem.
type OSFileSystem struct{}

// FilesystemFileSystem returns a FileSystem backed by the working tree.
func FilesystemFileSystem() FileSystem {
	return OSFileSystem{}
}

// IsFile follows symbolic links, so a dangling link is not a file.
func (OSFileSystem) IsFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

func (OSFileSystem) ReadDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
