package prompt

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/LegacyCodeHQ/depclosure/cmd/project"
	bundle "github.com/LegacyCodeHQ/depclosure/prompt"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

type promptOptions struct {
	project         project.Options
	outputType      string
	lineNumbers     bool
	copyToClipboard bool
}

// NewCommand returns a new prompt command instance.
func NewCommand() *cobra.Command {
	opts := &promptOptions{
		outputType: string(bundle.OutputTypeXML),
	}

	cmd := &cobra.Command{
		Use:   "prompt <file>...",
		Short: "Bundle a file and its project dependencies for an LLM prompt.",
		Long: `Print the given files and every project file they depend on, each wrapped
as a block, in discovery order.

Examples:
  depclosure prompt app/main.py               # XML blocks
  depclosure prompt app/main.py -t markdown -n
  depclosure prompt app/main.py -b            # copy to clipboard`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrompt(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.project.RepoPath, "repo", "r", "", "Project root (default: current directory)")
	cmd.Flags().StringVarP(&opts.outputType, "type", "t", opts.outputType, "Block type (xml, markdown, json)")
	cmd.Flags().BoolVarP(&opts.lineNumbers, "line-numbers", "n", false, "Prefix every line with its number")
	cmd.Flags().StringVarP(&opts.project.CommitID, "commit", "c", "", "Read files as of a git commit")
	cmd.Flags().StringVar(&opts.project.ConfigPath, "config", "", "Config file (default: <root>/.depclosure.toml)")
	cmd.Flags().BoolVar(&opts.project.AllowOutside, "allow-outside-repo", false, "Allow start files outside the project root")
	cmd.Flags().BoolVarP(&opts.copyToClipboard, "clipboard", "b", false, "Automatically copy output to clipboard")

	return cmd
}

func runPrompt(cmd *cobra.Command, opts *promptOptions, args []string) error {
	outputType, ok := bundle.ParseOutputType(opts.outputType)
	if !ok {
		return fmt.Errorf("unknown type: %s (valid options: xml, markdown, json)", opts.outputType)
	}

	logger := slog.Default()
	p, err := project.Open(opts.project, logger)
	if err != nil {
		return err
	}

	starts, err := p.ResolveStarts(args)
	if err != nil {
		return err
	}

	closure := p.Analyzer.AnalyzeAll(starts...)

	output, err := bundle.Bundle(closure.Order, p.FileSystem, bundle.Options{
		Type:        outputType,
		LineNumbers: opts.lineNumbers,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, output)
	if !strings.HasSuffix(output, "\n") {
		fmt.Fprintln(out)
	}

	if opts.copyToClipboard {
		if err := clipboard.WriteAll(output); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "✅ Content copied to your clipboard.")
	}

	return nil
}
