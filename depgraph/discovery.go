package depgraph

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/LegacyCodeHQ/depclosure/depgraph/languages/python"
	"github.com/LegacyCodeHQ/depclosure/vcs"
)

// DiscoveryRule adds dependencies that import scanning cannot see,
// such as modules a package loads by listing its own directory at runtime.
type DiscoveryRule interface {
	// Applies reports whether the rule fires for the file being processed.
	Applies(file string) bool
	// Discover returns candidate dependency paths. Candidates still have to
	// pass the project-file check before they are traversed.
	Discover(file string, fsys vcs.FileSystem) ([]string, error)
}

// SiblingDiscoveryRule fires on one package initializer and reports every
// sibling source file in its directory, minus the initializer and Exclude.
type SiblingDiscoveryRule struct {
	Trigger   string
	Extension string
	Exclude   []string
}

// NewSiblingDiscoveryRule builds a rule for the package initializer of dir,
// a directory relative to projectRoot.
func NewSiblingDiscoveryRule(projectRoot, dir, extension string, exclude ...string) SiblingDiscoveryRule {
	extension = extensionOrDefault(extension)
	resolver := python.ModuleResolver{Extension: extension}
	trigger := filepath.Join(normalizePath(projectRoot), filepath.FromSlash(dir), resolver.PackageInitName())

	return SiblingDiscoveryRule{
		Trigger:   filepath.Clean(trigger),
		Extension: extension,
		Exclude:   exclude,
	}
}

// DefaultDiscoveryRules returns the rule for the api package, whose
// initializer imports its sibling modules dynamically. api.py is the
// package's base module and is not a plugin.
func DefaultDiscoveryRules(projectRoot, extension string) []DiscoveryRule {
	return []DiscoveryRule{
		NewSiblingDiscoveryRule(projectRoot, "api", extension, "api"+extensionOrDefault(extension)),
	}
}

func (r SiblingDiscoveryRule) Applies(file string) bool {
	return file == r.Trigger
}

func (r SiblingDiscoveryRule) Discover(file string, fsys vcs.FileSystem) ([]string, error) {
	dir := filepath.Dir(file)
	names, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	initName := filepath.Base(r.Trigger)
	excluded := make(map[string]bool, len(r.Exclude))
	for _, name := range r.Exclude {
		excluded[name] = true
	}

	var discovered []string
	for _, name := range names {
		if !strings.HasSuffix(name, r.Extension) || name == initName || excluded[name] {
			continue
		}
		discovered = append(discovered, filepath.Join(dir, name))
	}

	sort.Strings(discovered)
	return discovered, nil
}

func extensionOrDefault(extension string) string {
	if extension == "" {
		return python.DefaultSourceExtension
	}
	return extension
}
