package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/LegacyCodeHQ/depclosure/cmd/deps"
	"github.com/LegacyCodeHQ/depclosure/cmd/prompt"
	"github.com/LegacyCodeHQ/depclosure/cmd/watch"
	"github.com/spf13/cobra"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

// verbose enables debug logging of files and imports that were skipped
var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "depclosure",
		Short: "Find the project files a Python file depends on",
		Long: `Depclosure follows the imports of Python files and reports every file
inside the project root they transitively depend on. Standard library and
third-party imports are ignored.

Use 'depclosure --help' to see all available commands, or 'depclosure <command> --help'
for detailed information about a specific command.`,
		Version:      version,
		SilenceUsage: true,
	}

	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		slog.SetDefault(newLogger(cmd.ErrOrStderr(), verbose))
	}

	cmd.AddCommand(deps.NewCommand())
	cmd.AddCommand(prompt.NewCommand())
	cmd.AddCommand(watch.NewCommand())

	// Initialize annotations for version template
	cmd.Annotations = map[string]string{
		"buildDate": buildDate,
		"commit":    commit,
	}

	// Customize version template to show additional build info
	cmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log skipped files and unresolved imports to stderr")

	return cmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
