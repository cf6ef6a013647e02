package formatters

import (
	"path/filepath"

	"github.com/LegacyCodeHQ/depclosure/depgraph"
)

// RenderOptions contains optional parameters for formatting dependency closures.
type RenderOptions struct {
	// Label is an optional title or label for the graph
	Label string
}

// Formatter is the interface that all closure formatters must implement.
type Formatter interface {
	// Format converts a dependency closure to a formatted string representation.
	Format(c depgraph.Closure, opts RenderOptions) (string, error)
}

// RelativePath returns path relative to root with forward slashes,
// or path itself when it is not under root.
func RelativePath(root, path string) string {
	if root == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
