package depgraph

import (
	"log/slog"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/LegacyCodeHQ/depclosure/depgraph/languages/python"
	"github.com/LegacyCodeHQ/depclosure/vcs"
	"github.com/gobwas/glob"
)

// Analyzer computes the project-local dependency closure of Python files.
// It holds no state between calls besides its configuration, so one Analyzer
// can serve concurrent queries.
type Analyzer struct {
	projectRoot string
	extension   string
	fsys        vcs.FileSystem
	rules       []DiscoveryRule
	rulesSet    bool
	excludes    []glob.Glob
	logger      *slog.Logger
	resolver    python.ModuleResolver
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithFileSystem sets the filesystem the analyzer reads from. Defaults to the working tree.
func WithFileSystem(fsys vcs.FileSystem) Option {
	return func(a *Analyzer) {
		a.fsys = fsys
	}
}

// WithExtension sets the recognized source file extension. Defaults to ".py".
func WithExtension(extension string) Option {
	return func(a *Analyzer) {
		a.extension = extension
	}
}

// WithDiscoveryRules replaces the default discovery rules. Passing no rules disables discovery.
func WithDiscoveryRules(rules ...DiscoveryRule) Option {
	return func(a *Analyzer) {
		a.rules = rules
		a.rulesSet = true
	}
}

// WithExcludes rejects project files whose root-relative slash path matches any pattern.
func WithExcludes(patterns ...glob.Glob) Option {
	return func(a *Analyzer) {
		a.excludes = append(a.excludes, patterns...)
	}
}

// WithLogger sets the logger used for swallowed failures.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// NewAnalyzer creates an analyzer scoped to projectRoot.
func NewAnalyzer(projectRoot string, opts ...Option) *Analyzer {
	a := &Analyzer{
		projectRoot: normalizePath(projectRoot),
		extension:   python.DefaultSourceExtension,
		fsys:        vcs.FilesystemFileSystem(),
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	if !a.rulesSet {
		a.rules = DefaultDiscoveryRules(a.projectRoot, a.extension)
	}

	a.resolver = python.ModuleResolver{
		ProjectRoot:   a.projectRoot,
		Extension:     a.extension,
		IsProjectFile: a.IsProjectFile,
	}

	return a
}

// ProjectRoot returns the normalized project root.
func (a *Analyzer) ProjectRoot() string {
	return a.projectRoot
}

// IsProjectFile reports whether path is an existing regular file under the project root.
func (a *Analyzer) IsProjectFile(path string) bool {
	if path == "" {
		return false
	}

	normalized := normalizePath(path)
	if !a.isWithinRoot(normalized) {
		return false
	}
	if a.isExcluded(normalized) {
		return false
	}
	return a.fsys.IsFile(normalized)
}

func (a *Analyzer) isWithinRoot(path string) bool {
	if path == a.projectRoot {
		return true
	}
	prefix := a.projectRoot
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(path, prefix)
}

func (a *Analyzer) isExcluded(path string) bool {
	if len(a.excludes) == 0 {
		return false
	}

	rel, err := filepath.Rel(a.projectRoot, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range a.excludes {
		if pattern.Match(rel) {
			return true
		}
	}
	return false
}

// ExtractImports returns the project files directly imported by file.
// Unreadable, undecodable or unparseable files have no imports.
func (a *Analyzer) ExtractImports(file string) FileSet {
	imports := make(FileSet)
	if !strings.HasSuffix(file, a.extension) {
		return imports
	}

	content, err := a.fsys.ReadFile(file)
	if err != nil {
		a.logger.Debug("skipping unreadable file", "path", file, "error", err)
		return imports
	}
	if !utf8.Valid(content) {
		a.logger.Debug("skipping file that is not valid UTF-8", "path", file)
		return imports
	}

	statements, err := python.ParseImports(content)
	if err != nil {
		a.logger.Debug("skipping unparseable file", "path", file, "error", err)
		return imports
	}

	for _, stmt := range statements {
		for _, resolved := range a.resolver.ResolveStatement(stmt, file) {
			imports.Add(resolved)
		}
	}

	return imports
}

// FindAllDependencies returns startFile and every project file reachable from
// it through imports. A start file outside the project yields an empty set.
func (a *Analyzer) FindAllDependencies(startFile string) FileSet {
	return a.Analyze(startFile).Files()
}

// Analyze runs one breadth-first traversal from startFile and records the
// discovery order and the edges followed.
func (a *Analyzer) Analyze(startFile string) Closure {
	closure := Closure{
		Root:  a.projectRoot,
		Graph: make(DependencyGraph),
	}

	start := normalizePath(startFile)
	if !a.IsProjectFile(start) {
		a.logger.Debug("start file is not a project file", "path", startFile, "root", a.projectRoot)
		return closure
	}
	closure.Starts = []string{start}

	queue := []string{start}
	queued := map[string]bool{start: true}
	visited := make(FileSet)

	enqueue := func(path string) {
		if queued[path] {
			return
		}
		queued[path] = true
		queue = append(queue, path)
	}

	for head := 0; head < len(queue); head++ {
		current := queue[head]
		if visited.Contains(current) {
			continue
		}
		visited.Add(current)
		closure.Order = append(closure.Order, current)

		var deps []string

		for _, rule := range a.rules {
			if !rule.Applies(current) {
				continue
			}
			discovered, err := rule.Discover(current, a.fsys)
			if err != nil {
				a.logger.Debug("discovery rule failed", "path", current, "error", err)
				continue
			}
			for _, candidate := range discovered {
				candidate = normalizePath(candidate)
				if !a.IsProjectFile(candidate) {
					continue
				}
				deps = append(deps, candidate)
				enqueue(candidate)
			}
		}

		for _, imported := range a.ExtractImports(current).Sorted() {
			if !a.IsProjectFile(imported) {
				continue
			}
			deps = append(deps, imported)
			enqueue(imported)
		}

		closure.Graph[current] = deduplicatePaths(deps)
	}

	return closure
}

func normalizePath(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// deduplicatePaths removes duplicate entries while preserving insertion order
func deduplicatePaths(paths []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(paths))
	for _, p := range paths {
		if !seen[p] {
			seen[p] = true
			result = append(result, p)
		}
	}
	return result
}
