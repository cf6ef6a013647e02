package formatters

import (
	"github.com/LegacyCodeHQ/depclosure/depgraph"
	"github.com/LegacyCodeHQ/depclosure/depgraph/languages/python"
)

// NodeRole decides how a file is highlighted in graph output.
type NodeRole int

const (
	NodeRoleDefault NodeRole = iota
	NodeRoleTest
	NodeRoleCycle
	NodeRoleStart
)

// NodeRoles assigns a role to every node of the closure graph and returns
// the cycles found. A start file outranks cycle membership, which outranks tests.
func NodeRoles(c depgraph.Closure) (map[string]NodeRole, []depgraph.FileCycle, error) {
	cycles, err := depgraph.FindCycles(c.Graph)
	if err != nil {
		return nil, nil, err
	}
	inCycle := depgraph.CycleMembers(cycles)
	starts := depgraph.NewFileSet(c.Starts...)

	roles := make(map[string]NodeRole)
	for _, node := range c.Graph.Nodes() {
		switch {
		case starts.Contains(node):
			roles[node] = NodeRoleStart
		case inCycle.Contains(node):
			roles[node] = NodeRoleCycle
		case python.IsTestFile(node):
			roles[node] = NodeRoleTest
		default:
			roles[node] = NodeRoleDefault
		}
	}

	return roles, cycles, nil
}

// IsCycleEdge reports whether from -> to lies inside one cycle.
func IsCycleEdge(cycles []depgraph.FileCycle, from, to string) bool {
	for _, cycle := range cycles {
		members := depgraph.NewFileSet(cycle.Files...)
		if members.Contains(from) && members.Contains(to) {
			return true
		}
	}
	return false
}
