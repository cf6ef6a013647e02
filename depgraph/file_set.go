package depgraph

import "sort"

// FileSet is a set of absolute, normalized file paths.
type FileSet map[string]struct{}

// NewFileSet returns a set holding paths.
func NewFileSet(paths ...string) FileSet {
	s := make(FileSet, len(paths))
	for _, p := range paths {
		s.Add(p)
	}
	return s
}

func (s FileSet) Add(path string) {
	s[path] = struct{}{}
}

func (s FileSet) Contains(path string) bool {
	_, ok := s[path]
	return ok
}

// Union adds every member of other to s.
func (s FileSet) Union(other FileSet) {
	for p := range other {
		s.Add(p)
	}
}

// Sorted returns the members in lexical order.
func (s FileSet) Sorted() []string {
	paths := make([]string, 0, len(s))
	for p := range s {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
