package formatters_test

import "github.com/LegacyCodeHQ/depclosure/depgraph"

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
