package watch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/LegacyCodeHQ/depclosure/cmd/deps"
	"github.com/LegacyCodeHQ/depclosure/cmd/deps/formatters"
	"github.com/LegacyCodeHQ/depclosure/cmd/project"
	"github.com/spf13/cobra"
)

type watchOptions struct {
	project      project.Options
	outputFormat string
}

// NewCommand returns a new watch command instance.
func NewCommand() *cobra.Command {
	opts := &watchOptions{
		outputFormat: formatters.OutputFormatText.String(),
	}

	cmd := &cobra.Command{
		Use:   "watch <file>...",
		Short: "Re-print the dependency closure whenever a source file changes.",
		Long: `Watch the project root for changes to source files and print the
dependency closure of the given files again after every change.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return runWatch(ctx, cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.project.RepoPath, "repo", "r", "", "Project root (default: current directory)")
	cmd.Flags().StringVarP(&opts.outputFormat, "format", "f", opts.outputFormat,
		fmt.Sprintf("Output format (%s)", formatters.SupportedFormats()))
	cmd.Flags().StringVar(&opts.project.ConfigPath, "config", "", "Config file (default: <root>/.depclosure.toml)")
	cmd.Flags().BoolVar(&opts.project.AllowOutside, "allow-outside-repo", false, "Allow start files outside the project root")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, opts *watchOptions, args []string) error {
	formatter, err := deps.NewFormatter(opts.outputFormat)
	if err != nil {
		return err
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

	r := &renderer{
		out:    cmd.OutOrStdout(),
		logger: logger,
		render: func() (string, error) {
			closure := p.Analyzer.AnalyzeAll(starts...)
			return formatter.Format(closure, formatters.RenderOptions{Label: p.Label})
		},
	}
	r.run()

	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (Ctrl+C to stop)\n", p.Root)

	return watchAndRebuild(ctx, p.Root, p.Config.SourceExtension, logger, r.run)
}

// renderer serializes re-renders triggered from timer goroutines.
type renderer struct {
	mu     sync.Mutex
	out    io.Writer
	render func() (string, error)
	logger *slog.Logger
}

func (r *renderer) run() {
	r.mu.Lock()
	defer r.mu.Unlock()

	output, err := r.render()
	if err != nil {
		r.logger.Error("dependency closure rebuild failed", "error", err)
		return
	}

	fmt.Fprint(r.out, output)
	if !strings.HasSuffix(output, "\n") {
		fmt.Fprintln(r.out)
	}
}
