package mermaid

import (
	"fmt"
	"sort"
	"strings"

	"github.com/LegacyCodeHQ/depclosure/cmd/deps/formatters"
	"github.com/LegacyCodeHQ/depclosure/depgraph"
)

// Formatter formats dependency closures as Mermaid.js flowcharts.
type Formatter struct{}

// Format converts the closure to Mermaid.js flowchart format.
func (f *Formatter) Format(c depgraph.Closure, opts formatters.RenderOptions) (string, error) {
	roles, cycles, err := formatters.NodeRoles(c)
	if err != nil {
		return "", err
	}

	var sb strings.Builder

	// Add title if label provided
	if opts.Label != "" {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("title: %s\n", opts.Label))
		sb.WriteString("---\n")
	}

	sb.WriteString("flowchart LR\n")

	for i, cycle := range cycles {
		parts := make([]string, 0, len(cycle.Files)+1)
		for _, file := range cycle.Files {
			parts = append(parts, formatters.RelativePath(c.Root, file))
		}
		parts = append(parts, formatters.RelativePath(c.Root, cycle.Files[0]))
		sb.WriteString(fmt.Sprintf("%%%% C%d: %s\n", i+1, strings.Join(parts, " -> ")))
	}

	// Mermaid node IDs can't have dots or slashes, so nodes get positional IDs.
	nodes := c.Graph.Nodes()
	nodeIDs := make(map[string]string, len(nodes))
	for i, node := range nodes {
		nodeIDs[node] = fmt.Sprintf("n%d", i)
	}

	for _, node := range nodes {
		label := strings.ReplaceAll(formatters.RelativePath(c.Root, node), "\"", "#quot;")
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", nodeIDs[node], label))
	}

	var cycleEdgeIndices []string
	edgeIndex := 0
	for _, source := range nodes {
		deps := make([]string, len(c.Graph[source]))
		copy(deps, c.Graph[source])
		sort.Strings(deps)

		for _, dep := range deps {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", nodeIDs[source], nodeIDs[dep]))
			if formatters.IsCycleEdge(cycles, source, dep) {
				cycleEdgeIndices = append(cycleEdgeIndices, fmt.Sprintf("%d", edgeIndex))
			}
			edgeIndex++
		}
	}

	classes := []struct {
		role  formatters.NodeRole
		name  string
		style string
	}{
		{formatters.NodeRoleStart, "startFile", "fill:#ADD8E6,stroke:#4682B4,color:#000000"},
		{formatters.NodeRoleCycle, "cycleFile", "fill:#F08080,stroke:#B22222,color:#000000"},
		{formatters.NodeRoleTest, "testFile", "fill:#90EE90,stroke:#228B22,color:#000000"},
	}
	for _, class := range classes {
		var ids []string
		for _, node := range nodes {
			if roles[node] == class.role {
				ids = append(ids, nodeIDs[node])
			}
		}
		if len(ids) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("    classDef %s %s\n", class.name, class.style))
		sb.WriteString(fmt.Sprintf("    class %s %s\n", strings.Join(ids, ","), class.name))
	}

	if len(cycleEdgeIndices) > 0 {
		sb.WriteString(fmt.Sprintf("    linkStyle %s stroke:#d62728,stroke-width:2px\n", strings.Join(cycleEdgeIndices, ",")))
	}

	return sb.String(), nil
}
