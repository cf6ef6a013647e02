package dot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/LegacyCodeHQ/depclosure/cmd/deps/formatters"
	"github.com/LegacyCodeHQ/depclosure/depgraph"
)

// Formatter formats dependency closures as Graphviz DOT.
type Formatter struct{}

var fillColors = map[formatters.NodeRole]string{
	formatters.NodeRoleDefault: "white",
	formatters.NodeRoleTest:    "lightgreen",
	formatters.NodeRoleCycle:   "lightcoral",
	formatters.NodeRoleStart:   "lightblue",
}

// Format converts the closure to Graphviz DOT format.
func (f *Formatter) Format(c depgraph.Closure, opts formatters.RenderOptions) (string, error) {
	roles, cycles, err := formatters.NodeRoles(c)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("digraph dependencies {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box];\n")

	// Add label if provided
	if opts.Label != "" {
		sb.WriteString(fmt.Sprintf("  label=%q;\n", opts.Label))
		sb.WriteString("  labelloc=t;\n")
		sb.WriteString("  labeljust=l;\n")
		sb.WriteString("  fontsize=10;\n")
		sb.WriteString("  fontname=Courier;\n")
	}
	sb.WriteString("\n")

	nodes := c.Graph.Nodes()
	relPaths := make([]string, len(nodes))
	for i, node := range nodes {
		relPaths[i] = formatters.RelativePath(c.Root, node)
	}
	relNames := formatters.BuildNodeNames(relPaths)
	names := make(map[string]string, len(nodes))
	for i, node := range nodes {
		names[node] = relNames[relPaths[i]]
	}

	for _, node := range nodes {
		sb.WriteString(fmt.Sprintf("  %q [style=filled, fillcolor=%s];\n", names[node], fillColors[roles[node]]))
	}
	if len(nodes) > 0 {
		sb.WriteString("\n")
	}

	for _, source := range nodes {
		deps := make([]string, len(c.Graph[source]))
		copy(deps, c.Graph[source])
		sort.Strings(deps)

		for _, dep := range deps {
			if formatters.IsCycleEdge(cycles, source, dep) {
				sb.WriteString(fmt.Sprintf("  %q -> %q [color=red];\n", names[source], names[dep]))
				continue
			}
			sb.WriteString(fmt.Sprintf("  %q -> %q;\n", names[source], names[dep]))
		}
	}

	sb.WriteString("}\n")
	return sb.String(), nil
}
