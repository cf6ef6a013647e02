package project

import (
	"fmt"
	"path/filepath"
	"strings"
)

// RawPath is a user-provided file path from CLI flags.
type RawPath string

// AbsolutePath is a normalized absolute filesystem path.
type AbsolutePath string

func (p AbsolutePath) String() string {
	return string(p)
}

// PathResolver resolves file arguments against the project root.
type PathResolver struct {
	baseDir      AbsolutePath
	allowOutside bool
}

// NewPathResolver returns a resolver rooted at baseDir, or the working directory when empty.
func NewPathResolver(baseDir string, allowOutside bool) (PathResolver, error) {
	if baseDir == "" {
		baseDir = "."
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return PathResolver{}, fmt.Errorf("failed to resolve base path: %w", err)
	}

	return PathResolver{
		baseDir:      AbsolutePath(filepath.Clean(absBaseDir)),
		allowOutside: allowOutside,
	}, nil
}

// BaseDir returns the absolute project root. Symlinks are left as given.
func (r PathResolver) BaseDir() AbsolutePath {
	return r.baseDir
}

// Resolve returns the absolute form of path. Relative paths are joined to the base directory.
func (r PathResolver) Resolve(path RawPath) (AbsolutePath, error) {
	pathStr := string(path)
	if pathStr == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	absPath := filepath.Clean(pathStr)
	if !filepath.IsAbs(absPath) {
		absPath = filepath.Clean(filepath.Join(r.baseDir.String(), pathStr))
	}

	if !r.allowOutside {
		within, err := isWithinBase(r.baseDir.String(), absPath)
		if err != nil {
			return "", err
		}
		if !within {
			return "", fmt.Errorf("path must be within project root: %q", pathStr)
		}
	}
	return AbsolutePath(absPath), nil
}

func isWithinBase(baseDir, targetPath string) (bool, error) {
	baseDir = filepath.Clean(baseDir)
	targetPath = filepath.Clean(targetPath)

	rel, err := filepath.Rel(baseDir, targetPath)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate path %q: %w", targetPath, err)
	}
	if rel == "." {
		return true, nil
	}
	if rel == ".." {
		return false, nil
	}
	if strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false, nil
	}
	return !filepath.IsAbs(rel), nil
}

// ResolveAll resolves every path, stopping at the first failure.
func (r PathResolver) ResolveAll(paths []string) ([]string, error) {
	resolved := make([]string, 0, len(paths))
	for _, p := range paths {
		absPath, err := r.Resolve(RawPath(p))
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, absPath.String())
	}
	return resolved, nil
}
