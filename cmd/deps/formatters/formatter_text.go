package formatters

import (
	"strings"

	"github.com/LegacyCodeHQ/depclosure/depgraph"
)

// TextFormatter lists the closure's files, one root-relative path per line, in discovery order.
type TextFormatter struct{}

func (f *TextFormatter) Format(c depgraph.Closure, opts RenderOptions) (string, error) {
	var sb strings.Builder
	if opts.Label != "" {
		sb.WriteString("# ")
		sb.WriteString(opts.Label)
		sb.WriteString("\n")
	}
	for _, file := range c.Order {
		sb.WriteString(RelativePath(c.Root, file))
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
