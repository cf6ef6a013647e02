package vcs

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/LegacyCodeHQ/depclosure/vcs/git"
)

// GitTreeFileSystem exposes the tree of a single commit as a FileSystem.
// Paths are addressed by their location under baseDir in the working tree,
// so the same analyzer root works for both the working tree and the snapshot.
type GitTreeFileSystem struct {
	repoPath string
	commitID string
	baseDir  string
	prefix   string
	files    map[string]bool
	dirs     map[string][]string
}

// NewGitTreeFileSystem lists the files of commitID and returns a FileSystem over them.
// baseDir may be the repository root or any directory inside it.
func NewGitTreeFileSystem(baseDir, commitID string) (*GitTreeFileSystem, error) {
	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", baseDir, err)
	}

	treeFiles, err := git.ListTreeFiles(absBaseDir, commitID)
	if err != nil {
		return nil, err
	}

	prefix, err := git.GetPathPrefix(absBaseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to locate %s in repository: %w", absBaseDir, err)
	}

	g := &GitTreeFileSystem{
		repoPath: absBaseDir,
		commitID: commitID,
		baseDir:  filepath.Clean(absBaseDir),
		prefix:   prefix,
		files:    make(map[string]bool, len(treeFiles)),
		dirs:     make(map[string][]string),
	}
	children := make(map[string]map[string]bool)
	for _, treeFile := range treeFiles {
		g.addFile(treeFile, children)
	}
	for dir, names := range children {
		entries := make([]string, 0, len(names))
		for name := range names {
			entries = append(entries, name)
		}
		sort.Strings(entries)
		g.dirs[dir] = entries
	}

	return g, nil
}

// addFile records treeFile and registers it and each of its ancestors as a
// child of the directory above, stopping at the first ancestor already known.
func (g *GitTreeFileSystem) addFile(treeFile string, children map[string]map[string]bool) {
	g.files[treeFile] = true

	child := treeFile
	for {
		parent := path.Dir(child)
		if parent == "." {
			parent = ""
		}
		name := path.Base(child)

		names, ok := children[parent]
		if !ok {
			names = make(map[string]bool)
			children[parent] = names
		}
		if names[name] {
			return
		}
		names[name] = true

		if parent == "" {
			return
		}
		child = parent
	}
}

// treePath maps an absolute working-tree path to its slash-separated path in the commit tree.
func (g *GitTreeFileSystem) treePath(p string) (string, bool) {
	rel, err := filepath.Rel(g.baseDir, filepath.Clean(p))
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	if rel == "." {
		return strings.TrimSuffix(g.prefix, "/"), true
	}
	return g.prefix + rel, true
}

func (g *GitTreeFileSystem) IsFile(p string) bool {
	treePath, ok := g.treePath(p)
	return ok && g.files[treePath]
}

func (g *GitTreeFileSystem) ReadDir(dir string) ([]string, error) {
	treePath, ok := g.treePath(dir)
	if !ok {
		return nil, &fs.PathError{Op: "readdir", Path: dir, Err: fs.ErrNotExist}
	}

	entries, ok := g.dirs[treePath]
	if !ok {
		return nil, &fs.PathError{Op: "readdir", Path: dir, Err: fs.ErrNotExist}
	}

	names := make([]string, len(entries))
	copy(names, entries)
	return names, nil
}

func (g *GitTreeFileSystem) ReadFile(p string) ([]byte, error) {
	treePath, ok := g.treePath(p)
	if !ok || !g.files[treePath] {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}

	// git show resolves "commit:path" from the repository root regardless of cwd.
	return git.GetFileContentFromCommit(g.repoPath, g.commitID, treePath)
}

// CommitID returns the commit this snapshot was taken from.
func (g *GitTreeFileSystem) CommitID() string {
	return g.commitID
}
