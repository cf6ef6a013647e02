package deps

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/LegacyCodeHQ/depclosure/cmd/deps/formatters"
	"github.com/LegacyCodeHQ/depclosure/cmd/project"
	"github.com/LegacyCodeHQ/depclosure/depgraph"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

type depsOptions struct {
	project         project.Options
	outputFormat    string
	why             string
	copyToClipboard bool
}

// NewCommand returns a new deps command instance.
func NewCommand() *cobra.Command {
	opts := &depsOptions{
		outputFormat: formatters.OutputFormatText.String(),
	}

	cmd := &cobra.Command{
		Use:   "deps <file>...",
		Short: "List the project files a Python file depends on.",
		Long: `List every project file reachable from the given files through imports.

Imports that do not resolve to a file inside the project root are ignored.

Examples:
  depclosure deps app/main.py                 # text, in discovery order
  depclosure deps -r ./service main.py -f dot # Graphviz graph
  depclosure deps main.py -c HEAD~3           # closure as of a commit
  depclosure deps main.py --why util/db.py    # how main.py reaches util/db.py`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeps(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.project.RepoPath, "repo", "r", "", "Project root (default: current directory)")
	cmd.Flags().StringVarP(&opts.outputFormat, "format", "f", opts.outputFormat,
		fmt.Sprintf("Output format (%s)", formatters.SupportedFormats()))
	cmd.Flags().StringVarP(&opts.project.CommitID, "commit", "c", "", "Analyze the project as of a git commit")
	cmd.Flags().StringVar(&opts.project.ConfigPath, "config", "", "Config file (default: <root>/.depclosure.toml)")
	cmd.Flags().BoolVar(&opts.project.AllowOutside, "allow-outside-repo", false, "Allow start files outside the project root")
	cmd.Flags().StringVar(&opts.why, "why", "", "Print the import chain that pulls this file into the closure")
	cmd.Flags().BoolVarP(&opts.copyToClipboard, "clipboard", "b", false, "Automatically copy output to clipboard")

	return cmd
}

func runDeps(cmd *cobra.Command, opts *depsOptions, args []string) error {
	formatter, err := NewFormatter(opts.outputFormat)
	if err != nil {
		return err
	}

	p, err := project.Open(opts.project, slog.Default())
	if err != nil {
		return err
	}

	starts, err := p.ResolveStarts(args)
	if err != nil {
		return err
	}

	closure := p.Analyzer.AnalyzeAll(starts...)

	var output string
	if opts.why != "" {
		output, err = importChain(p, closure, opts.why)
	} else {
		output, err = formatter.Format(closure, formatters.RenderOptions{Label: p.Label})
	}
	if err != nil {
		return err
	}

	return writeOutput(cmd.OutOrStdout(), output, opts.copyToClipboard)
}

func importChain(p *project.Project, closure depgraph.Closure, target string) (string, error) {
	resolved, err := p.Resolve(target)
	if err != nil {
		return "", err
	}

	chain, err := closure.ImportChain(resolved)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i, file := range chain {
		if i > 0 {
			sb.WriteString(" -> ")
		}
		sb.WriteString(formatters.RelativePath(closure.Root, file))
	}
	return sb.String(), nil
}

func writeOutput(w io.Writer, output string, copyToClipboard bool) error {
	fmt.Fprint(w, output)
	if !strings.HasSuffix(output, "\n") {
		fmt.Fprintln(w)
	}

	if copyToClipboard {
		if err := clipboard.WriteAll(output); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Fprintln(w, "\n✅ Content copied to your clipboard.")
	}
	return nil
}
