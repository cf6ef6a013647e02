package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// IsGitRepository checks if the given path is inside a git repository
func IsGitRepository(path string) bool {
	_, err := runGitCommand(path, "rev-parse", "--git-dir")
	return err == nil
}

// GetRepositoryRoot returns the absolute path to the repository root
func GetRepositoryRoot(repoPath string) (string, error) {
	stdout, err := runGitCommand(repoPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}

	return filepath.Clean(strings.TrimSpace(string(stdout))), nil
}

// ValidateCommit checks if the given commit reference exists in the repository
func ValidateCommit(repoPath, commitID string) error {
	if err := validateGitRef(commitID); err != nil {
		return err
	}

	if _, err := runGitCommand(repoPath, "rev-parse", "--verify", commitID+"^{commit}"); err != nil {
		return fmt.Errorf("invalid commit reference '%s': %w", commitID, err)
	}

	return nil
}

// GetShortCommitHash returns the abbreviated hash of commitID.
func GetShortCommitHash(repoPath, commitID string) (string, error) {
	if err := validateGitRef(commitID); err != nil {
		return "", err
	}

	stdout, err := runGitCommand(repoPath, "rev-parse", "--short", commitID)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(stdout)), nil
}

// ListTreeFiles returns the repository-relative paths of all files in a commit's tree.
func ListTreeFiles(repoPath, commitID string) ([]string, error) {
	if _, err := os.Stat(repoPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("repository path does not exist: %s", repoPath)
	}

	if !IsGitRepository(repoPath) {
		return nil, fmt.Errorf("%s is not a git repository (use 'git init' to initialize)", repoPath)
	}

	if err := ValidateCommit(repoPath, commitID); err != nil {
		return nil, err
	}

	stdout, err := runGitCommand(repoPath, "ls-tree", "-r", "--name-only", "--full-tree", commitID)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, line := range strings.Split(string(stdout), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			files = append(files, line)
		}
	}

	return files, nil
}

// GetFileContentFromCommit reads the content of a file at a specific commit
// using 'git show commit:path'. The filePath should be relative to the repository root.
func GetFileContentFromCommit(repoPath, commitID, filePath string) ([]byte, error) {
	if err := validateGitRef(commitID); err != nil {
		return nil, err
	}
	if err := validateGitRelPath(filePath); err != nil {
		return nil, err
	}

	// Format: commit:path
	ref := fmt.Sprintf("%s:%s", commitID, filepath.ToSlash(filePath))

	stdout, err := runGitCommand(repoPath, "show", ref)
	if err != nil {
		return nil, err
	}

	return stdout, nil
}

func validateGitRef(ref string) error {
	if ref == "" {
		return fmt.Errorf("git reference cannot be empty")
	}
	if strings.HasPrefix(ref, "-") {
		return fmt.Errorf("git reference cannot start with '-': %q", ref)
	}
	if strings.ContainsAny(ref, "\x00\n\r\t ") {
		return fmt.Errorf("git reference contains whitespace or NUL: %q", ref)
	}
	return nil
}

func validateGitRelPath(path string) error {
	if path == "" {
		return fmt.Errorf("git path cannot be empty")
	}
	if filepath.IsAbs(path) {
		return fmt.Errorf("git path must be relative: %q", path)
	}
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("git path contains NUL: %q", path)
	}
	cleaned := filepath.Clean(path)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("git path escapes repository: %q", path)
	}
	return nil
}

// GetPathPrefix returns the path of dir relative to the repository root,
// slash-separated with a trailing slash, or "" at the root itself.
func GetPathPrefix(dir string) (string, error) {
	stdout, err := runGitCommand(dir, "rev-parse", "--show-prefix")
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(stdout)), nil
}
