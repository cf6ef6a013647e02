// Package project opens a project for the CLI commands: it locates the root,
// loads the config, picks the file system and builds the analyzer.
package project

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/LegacyCodeHQ/depclosure/depgraph"
	"github.com/LegacyCodeHQ/depclosure/internal/config"
	"github.com/LegacyCodeHQ/depclosure/vcs"
	"github.com/LegacyCodeHQ/depclosure/vcs/git"
)

// Options are the flags shared by commands that analyze a project.
type Options struct {
	RepoPath     string
	ConfigPath   string
	CommitID     string
	AllowOutside bool
}

// Project is an opened project ready for analysis.
type Project struct {
	Root       string
	Config     *config.Config
	FileSystem vcs.FileSystem
	Analyzer   *depgraph.Analyzer
	Label      string

	resolver PathResolver
}

// Open prepares the project described by opts.
func Open(opts Options, logger *slog.Logger) (*Project, error) {
	if logger == nil {
		logger = slog.Default()
	}

	resolver, err := NewPathResolver(opts.RepoPath, opts.AllowOutside)
	if err != nil {
		return nil, err
	}
	root := resolver.BaseDir().String()

	cfg, err := config.LoadForProject(root, opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	var fsys vcs.FileSystem = vcs.FilesystemFileSystem()
	label := filepath.Base(root)
	if opts.CommitID != "" {
		tree, err := vcs.NewGitTreeFileSystem(root, opts.CommitID)
		if err != nil {
			return nil, fmt.Errorf("failed to read commit %s: %w", opts.CommitID, err)
		}
		fsys = tree

		if shortHash, err := git.GetShortCommitHash(root, opts.CommitID); err == nil {
			label = fmt.Sprintf("%s • %s", label, shortHash)
		}
	}

	analyzer, err := cfg.NewAnalyzer(root, logger, depgraph.WithFileSystem(fsys))
	if err != nil {
		return nil, err
	}

	logger.Debug("opened project", "root", root, "extension", cfg.SourceExtension, "commit", opts.CommitID)

	return &Project{
		Root:       root,
		Config:     cfg,
		FileSystem: fsys,
		Analyzer:   analyzer,
		Label:      label,
		resolver:   resolver,
	}, nil
}

// ResolveStarts turns file arguments into absolute start files that exist in
// the project's file system.
func (p *Project) ResolveStarts(args []string) ([]string, error) {
	starts, err := p.resolver.ResolveAll(args)
	if err != nil {
		return nil, err
	}
	for i, start := range starts {
		if !p.FileSystem.IsFile(start) {
			return nil, fmt.Errorf("file not found: %s", args[i])
		}
	}
	return starts, nil
}

// Resolve turns a single file argument into an absolute path.
func (p *Project) Resolve(arg string) (string, error) {
	resolved, err := p.resolver.Resolve(RawPath(arg))
	if err != nil {
		return "", err
	}
	return resolved.String(), nil
}
