package python

import (
	"path/filepath"
	"strings"
)

// DefaultSourceExtension is the extension of Python source modules.
const DefaultSourceExtension = ".py"

// packageInitStem is the file name, without extension, that marks a directory as a package.
const packageInitStem = "__init__"

// ModuleResolver maps import references to files inside a project.
// IsProjectFile is the membership gate every candidate must pass.
type ModuleResolver struct {
	ProjectRoot   string
	Extension     string
	IsProjectFile func(path string) bool
}

// PackageInitName returns the package initializer file name for the resolver's extension.
func (r ModuleResolver) PackageInitName() string {
	return packageInitStem + r.extension()
}

func (r ModuleResolver) extension() string {
	if r.Extension == "" {
		return DefaultSourceExtension
	}
	return r.Extension
}

// ResolveModule resolves dotted name segments under baseDir, trying the
// file-module form before the package form.
func (r ModuleResolver) ResolveModule(segments []string, baseDir string) (string, bool) {
	if len(segments) == 0 || r.IsProjectFile == nil {
		return "", false
	}

	modulePath := filepath.Join(append([]string{baseDir}, segments...)...)

	fileCandidate := filepath.Clean(modulePath + r.extension())
	if r.IsProjectFile(fileCandidate) {
		return fileCandidate, true
	}

	packageCandidate := filepath.Join(modulePath, r.PackageInitName())
	if r.IsProjectFile(packageCandidate) {
		return packageCandidate, true
	}

	return "", false
}

// ResolveImport resolves a module reference at the given relativity level
// from importingFile. Level 0 resolves from the project root; level n walks
// up n-1 directories from the importing file's directory.
func (r ModuleResolver) ResolveImport(module string, level int, importingFile string) (string, bool) {
	if module == "" {
		return "", false
	}

	baseDir := r.ProjectRoot
	if level > 0 {
		baseDir = RelativeBaseDir(importingFile, level)
	}

	return r.ResolveModule(strings.Split(module, "."), baseDir)
}

// ResolveStatement returns every project file an import statement refers to.
// `from . import a, b` resolves each name as a sibling module; any other form
// resolves only its module part.
func (r ModuleResolver) ResolveStatement(stmt ImportStatement, importingFile string) []string {
	var resolved []string

	if stmt.IsFrom && stmt.Module == "" {
		if stmt.Level == 0 {
			return nil
		}
		baseDir := RelativeBaseDir(importingFile, stmt.Level)
		for _, name := range stmt.Names {
			if name == "" {
				continue
			}
			if path, ok := r.ResolveModule([]string{name}, baseDir); ok {
				resolved = append(resolved, path)
			}
		}
		return resolved
	}

	if path, ok := r.ResolveImport(stmt.Module, stmt.Level, importingFile); ok {
		resolved = append(resolved, path)
	}
	return resolved
}

// RelativeBaseDir returns the directory a relative import of the given level
// resolves against. Walking above the filesystem root stays at the root.
func RelativeBaseDir(importingFile string, level int) string {
	baseDir := filepath.Dir(importingFile)
	for i := 0; i < level-1; i++ {
		baseDir = filepath.Dir(baseDir)
	}
	return baseDir
}
