package mermaid_test

import (
	"testing"

	"github.com/LegacyCodeHQ/depclosure/cmd/deps/formatters"
	"github.com/LegacyCodeHQ/depclosure/cmd/deps/formatters/mermaid"
	"github.com/LegacyCodeHQ/depclosure/depgraph"
	"github.com/LegacyCodeHQ/depclosure/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

func fixtureClosure() depgraph.Closure {
	return depgraph.Closure{
		Root:   "/project",
		Starts: []string{"/project/main.py"},
		Order: []string{
			"/project/main.py",
			"/project/app/service.py",
			"/project/conftest.py",
			"/project/util.py",
			"/project/app/repo.py",
		},
		Graph: depgraph.DependencyGraph{
			"/project/main.py":        {"/project/app/service.py", "/project/conftest.py", "/project/util.py"},
			"/project/app/service.py": {"/project/app/repo.py"},
			"/project/conftest.py":    {},
			"/project/util.py":        {},
			"/project/app/repo.py":    {"/project/app/service.py"},
		},
	}
}

func TestMermaidFormatter_HighlightsStartCyclesAndTests(t *testing.T) {
	formatter := &mermaid.Formatter{}
	output, err := formatter.Format(fixtureClosure(), formatters.RenderOptions{})
	require.NoError(t, err)

	g := testhelpers.Goldie(t)
	g.Assert(t, t.Name(), []byte(output))
}

func TestMermaidFormatter_Label(t *testing.T) {
	closure := depgraph.Closure{
		Root:   "/project",
		Starts: []string{"/project/a.py"},
		Order:  []string{"/project/a.py", "/project/b.py"},
		Graph: depgraph.DependencyGraph{
			"/project/a.py": {"/project/b.py"},
			"/project/b.py": {},
		},
	}

	formatter := &mermaid.Formatter{}
	output, err := formatter.Format(closure, formatters.RenderOptions{Label: "8d4f78"})
	require.NoError(t, err)

	g := testhelpers.Goldie(t)
	g.Assert(t, t.Name(), []byte(output))
}
