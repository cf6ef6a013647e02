package depgraph

import (
	"errors"
	"sort"

	graphlib "github.com/dominikbraun/graph"
)

// DependencyGraph represents a mapping from file paths to their project dependencies
type DependencyGraph map[string][]string

// FileCycle is a set of files that import each other, directly or transitively.
type FileCycle struct {
	Files []string
}

// Nodes returns every file in the graph, including files only seen as dependencies, sorted.
func (g DependencyGraph) Nodes() []string {
	nodes := make(FileSet, len(g))
	for source, deps := range g {
		nodes.Add(source)
		for _, dep := range deps {
			nodes.Add(dep)
		}
	}
	return nodes.Sorted()
}

// EdgeCount returns the number of dependency edges.
func (g DependencyGraph) EdgeCount() int {
	count := 0
	for _, deps := range g {
		count += len(deps)
	}
	return count
}

// Merge adds the edges of other to g.
func (g DependencyGraph) Merge(other DependencyGraph) {
	for source, deps := range other {
		g[source] = deduplicatePaths(append(g[source], deps...))
	}
}

// ToGraphlib converts the adjacency map to a directed graph.
func (g DependencyGraph) ToGraphlib() (graphlib.Graph[string, string], error) {
	directed := graphlib.New(graphlib.StringHash, graphlib.Directed())

	for _, node := range g.Nodes() {
		if err := directed.AddVertex(node); err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
			return nil, err
		}
	}

	for _, source := range g.Nodes() {
		for _, dep := range g[source] {
			if err := directed.AddEdge(source, dep); err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
				return nil, err
			}
		}
	}

	return directed, nil
}

// FindCycles returns the import cycles in the graph, each as its sorted
// member files. A file that imports itself is a cycle of one.
func FindCycles(g DependencyGraph) ([]FileCycle, error) {
	directed, err := g.ToGraphlib()
	if err != nil {
		return nil, err
	}

	components, err := graphlib.StronglyConnectedComponents(directed)
	if err != nil {
		return nil, err
	}

	var cycles []FileCycle
	for _, component := range components {
		if len(component) == 1 && !hasSelfEdge(g, component[0]) {
			continue
		}
		files := make([]string, len(component))
		copy(files, component)
		sort.Strings(files)
		cycles = append(cycles, FileCycle{Files: files})
	}

	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i].Files[0] < cycles[j].Files[0]
	})

	return cycles, nil
}

// CycleMembers returns the set of files that belong to any cycle.
func CycleMembers(cycles []FileCycle) FileSet {
	members := make(FileSet)
	for _, cycle := range cycles {
		for _, file := range cycle.Files {
			members.Add(file)
		}
	}
	return members
}

func hasSelfEdge(g DependencyGraph, node string) bool {
	for _, dep := range g[node] {
		if dep == node {
			return true
		}
	}
	return false
}
