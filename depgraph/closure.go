package depgraph

import (
	"fmt"
	"runtime"
	"sync"

	graphlib "github.com/dominikbraun/graph"
	"golang.org/x/sync/errgroup"
)

// Closure is the result of one or more dependency queries.
type Closure struct {
	// Root is the normalized project root the query was scoped to.
	Root string
	// Starts are the start files that were valid project files.
	Starts []string
	// Order lists every visited file in breadth-first discovery order.
	Order []string
	// Graph maps each visited file to the project files it depends on.
	Graph DependencyGraph
}

// Files returns the visited files as a set.
func (c Closure) Files() FileSet {
	return NewFileSet(c.Order...)
}

// IsEmpty reports whether no file was visited.
func (c Closure) IsEmpty() bool {
	return len(c.Order) == 0
}

// AnalyzeAll runs an independent traversal per start file concurrently and
// merges the results. Order keeps the first discovery of each file, following
// the order of startFiles.
func (a *Analyzer) AnalyzeAll(startFiles ...string) Closure {
	results := make([]Closure, len(startFiles))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, startFile := range startFiles {
		g.Go(func() error {
			results[i] = a.Analyze(startFile)
			return nil
		})
	}
	_ = g.Wait()

	return MergeClosures(a.projectRoot, results...)
}

// FindAllDependenciesOf returns the union of the closures of startFiles.
func (a *Analyzer) FindAllDependenciesOf(startFiles ...string) FileSet {
	var mu sync.Mutex
	union := make(FileSet)

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, startFile := range startFiles {
		g.Go(func() error {
			files := a.FindAllDependencies(startFile)
			mu.Lock()
			union.Union(files)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return union
}

// MergeClosures combines closures computed against the same root.
func MergeClosures(root string, closures ...Closure) Closure {
	merged := Closure{
		Root:  root,
		Graph: make(DependencyGraph),
	}

	seen := make(FileSet)
	for _, c := range closures {
		merged.Starts = append(merged.Starts, c.Starts...)
		for _, file := range c.Order {
			if seen.Contains(file) {
				continue
			}
			seen.Add(file)
			merged.Order = append(merged.Order, file)
		}
		merged.Graph.Merge(c.Graph)
	}
	merged.Starts = deduplicatePaths(merged.Starts)

	return merged
}

// ImportChain returns the shortest chain of imports leading from one of the
// closure's start files to target, both ends included.
func (c Closure) ImportChain(target string) ([]string, error) {
	target = normalizePath(target)
	if !c.Files().Contains(target) {
		return nil, fmt.Errorf("%s is not part of the dependency closure", target)
	}

	g, err := c.Graph.ToGraphlib()
	if err != nil {
		return nil, err
	}

	var best []string
	for _, start := range c.Starts {
		path, err := graphlib.ShortestPath(g, start, target)
		if err != nil {
			continue
		}
		if best == nil || len(path) < len(best) {
			best = path
		}
	}
	if best == nil {
		return nil, fmt.Errorf("no import chain leads to %s", target)
	}

	return best, nil
}
