package deps

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/LegacyCodeHQ/depclosure/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProject(t *testing.T) string {
	t.Helper()
	return testhelpers.WriteProject(t, map[string]string{
		"main.py":             "import os\nimport app.service\n",
		"app/__init__.py":     "",
		"app/service.py":      "from . import repo\nfrom ..util.helpers import slugify\n",
		"app/repo.py":         "import sqlalchemy\n",
		"util/helpers.py":     "",
		"unrelated.py":        "",
		"api/__init__.py":     "from .api import router\n",
		"api/api.py":          "",
		"api/users.py":        "",
		"api/orders.py":       "import util.helpers\n",
		"api/notes.txt":       "",
		"api/sub/__init__.py": "",
	})
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand()
	cmd.SetArgs(args)

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	return stdout.String(), err
}

func TestDeps_TextListsClosureInDiscoveryOrder(t *testing.T) {
	root := sampleProject(t)

	output, err := execute(t, "-r", root, "main.py")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(output), "\n")
	assert.Equal(t, []string{
		"# " + filepath.Base(root),
		"main.py",
		"app/service.py",
		"app/repo.py",
		"util/helpers.py",
	}, lines)
}

func TestDeps_DiscoversApiSiblings(t *testing.T) {
	root := sampleProject(t)

	output, err := execute(t, "-r", root, "-f", "json", "api/__init__.py")
	require.NoError(t, err)

	var decoded struct {
		Files []string `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &decoded))

	assert.ElementsMatch(t, []string{
		"api/__init__.py",
		"api/api.py",
		"api/users.py",
		"api/orders.py",
		"util/helpers.py",
	}, decoded.Files)
}

func TestDeps_MultipleStartFilesAreMerged(t *testing.T) {
	root := sampleProject(t)

	output, err := execute(t, "-r", root, "unrelated.py", "app/repo.py")
	require.NoError(t, err)

	assert.Contains(t, output, "unrelated.py\n")
	assert.Contains(t, output, "app/repo.py\n")
	assert.NotContains(t, output, "main.py")
}

func TestDeps_DotFormat(t *testing.T) {
	root := sampleProject(t)

	output, err := execute(t, "-r", root, "-f", "dot", "main.py")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(output, "digraph"), "got:\n%s", output)
	assert.Contains(t, output, `"main.py"`)
}

func TestDeps_Why(t *testing.T) {
	root := sampleProject(t)

	output, err := execute(t, "-r", root, "main.py", "--why", "util/helpers.py")
	require.NoError(t, err)

	assert.Equal(t, "main.py -> app/service.py -> util/helpers.py\n", output)
}

func TestDeps_WhyOutsideClosure(t *testing.T) {
	root := sampleProject(t)

	_, err := execute(t, "-r", root, "main.py", "--why", "unrelated.py")
	assert.ErrorContains(t, err, "not part of the dependency closure")
}

func TestDeps_UnknownFormat(t *testing.T) {
	root := sampleProject(t)

	_, err := execute(t, "-r", root, "-f", "svg", "main.py")
	assert.ErrorContains(t, err, "unknown format: svg")
}

func TestDeps_MissingStartFile(t *testing.T) {
	root := sampleProject(t)

	_, err := execute(t, "-r", root, "nope.py")
	assert.ErrorContains(t, err, "file not found")
}

func TestDeps_RequiresFileArgument(t *testing.T) {
	_, err := execute(t)
	assert.Error(t, err)
}

func TestDeps_Commit(t *testing.T) {
	root := t.TempDir()
	testhelpers.InitGitRepo(t, root)
	testhelpers.WriteFile(t, root, "main.py", "import old\n")
	testhelpers.WriteFile(t, root, "old.py", "")
	testhelpers.CommitAll(t, root, "initial")
	testhelpers.WriteFile(t, root, "main.py", "import new\n")
	testhelpers.WriteFile(t, root, "new.py", "")

	head, err := execute(t, "-r", root, "-c", "HEAD", "main.py")
	require.NoError(t, err)
	assert.Contains(t, head, "old.py")
	assert.NotContains(t, head, "new.py")

	working, err := execute(t, "-r", root, "main.py")
	require.NoError(t, err)
	assert.Contains(t, working, "new.py")
	assert.NotContains(t, working, "old.py")
}
