// Package config loads per-project analyzer settings from .depclosure.toml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/LegacyCodeHQ/depclosure/depgraph"
	"github.com/LegacyCodeHQ/depclosure/depgraph/languages/python"
	"github.com/gobwas/glob"
)

// FileName is the config file looked up in the project root.
const FileName = ".depclosure.toml"

// Config holds the analyzer settings of one project.
type Config struct {
	SourceExtension string      `toml:"source_extension"`
	Exclude         []string    `toml:"exclude"`
	Discovery       []Discovery `toml:"discovery"`
}

// Discovery configures a sibling discovery rule for the package in Dir.
type Discovery struct {
	Dir     string   `toml:"dir"`
	Exclude []string `toml:"exclude"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults(false)
	return cfg
}

// Load reads and decodes the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg.applyDefaults(md.IsDefined("discovery"))
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadForProject loads explicitPath when given, otherwise the project's
// config file if present, otherwise the defaults.
func LoadForProject(projectRoot, explicitPath string) (*Config, error) {
	if explicitPath != "" {
		return Load(explicitPath)
	}

	cfg, err := Load(filepath.Join(projectRoot, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func (c *Config) applyDefaults(discoveryDefined bool) {
	if c.SourceExtension == "" {
		c.SourceExtension = python.DefaultSourceExtension
	}

	if !discoveryDefined {
		c.Discovery = []Discovery{
			{Dir: "api", Exclude: []string{"api" + c.SourceExtension}},
		}
	}
}

func (c *Config) validate() error {
	if c.SourceExtension[0] != '.' {
		return fmt.Errorf("source_extension must start with '.': %q", c.SourceExtension)
	}
	for _, d := range c.Discovery {
		if d.Dir == "" {
			return fmt.Errorf("discovery entry is missing dir")
		}
		if filepath.IsAbs(d.Dir) {
			return fmt.Errorf("discovery dir must be relative to the project root: %q", d.Dir)
		}
	}
	return nil
}

// ExcludeGlobs compiles the exclude patterns, using '/' as the separator.
func (c *Config) ExcludeGlobs() ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(c.Exclude))
	for _, pattern := range c.Exclude {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// AnalyzerOptions converts the config into analyzer options for projectRoot.
func (c *Config) AnalyzerOptions(projectRoot string) ([]depgraph.Option, error) {
	excludes, err := c.ExcludeGlobs()
	if err != nil {
		return nil, err
	}

	rules := make([]depgraph.DiscoveryRule, 0, len(c.Discovery))
	for _, d := range c.Discovery {
		rules = append(rules, depgraph.NewSiblingDiscoveryRule(projectRoot, d.Dir, c.SourceExtension, d.Exclude...))
	}

	return []depgraph.Option{
		depgraph.WithExtension(c.SourceExtension),
		depgraph.WithExcludes(excludes...),
		depgraph.WithDiscoveryRules(rules...),
	}, nil
}

// NewAnalyzer builds an analyzer for projectRoot from the config.
func (c *Config) NewAnalyzer(projectRoot string, logger *slog.Logger, extra ...depgraph.Option) (*depgraph.Analyzer, error) {
	opts, err := c.AnalyzerOptions(projectRoot)
	if err != nil {
		return nil, err
	}
	if logger != nil {
		opts = append(opts, depgraph.WithLogger(logger))
	}
	opts = append(opts, extra...)

	return depgraph.NewAnalyzer(projectRoot, opts...), nil
}
