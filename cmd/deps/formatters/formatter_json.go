package formatters

import (
	"encoding/json"

	"github.com/LegacyCodeHQ/depclosure/depgraph"
)

// JSONFormatter formats dependency closures as JSON.
type JSONFormatter struct{}

type jsonClosure struct {
	Label        string              `json:"label,omitempty"`
	Root         string              `json:"root"`
	Starts       []string            `json:"starts"`
	Files        []string            `json:"files"`
	Dependencies map[string][]string `json:"dependencies"`
	Cycles       [][]string          `json:"cycles,omitempty"`
}

// Format converts the closure to JSON. Paths are relative to the project root.
func (f *JSONFormatter) Format(c depgraph.Closure, opts RenderOptions) (string, error) {
	cycles, err := depgraph.FindCycles(c.Graph)
	if err != nil {
		return "", err
	}

	out := jsonClosure{
		Label:        opts.Label,
		Root:         c.Root,
		Starts:       relativePaths(c.Root, c.Starts),
		Files:        relativePaths(c.Root, c.Order),
		Dependencies: make(map[string][]string, len(c.Graph)),
	}
	for source, deps := range c.Graph {
		out.Dependencies[RelativePath(c.Root, source)] = relativePaths(c.Root, deps)
	}
	for _, cycle := range cycles {
		out.Cycles = append(out.Cycles, relativePaths(c.Root, cycle.Files))
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func relativePaths(root string, paths []string) []string {
	rel := make([]string, len(paths))
	for i, p := range paths {
		rel[i] = RelativePath(root, p)
	}
	return rel
}
