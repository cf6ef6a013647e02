package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

const gitCommandTimeout = 10 * time.Second

// CommandError describes a git invocation that exited unsuccessfully.
type CommandError struct {
	Dir    string
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	subcommand := "command"
	if len(e.Args) > 0 {
		subcommand = e.Args[0]
	}
	if e.Stderr != "" {
		return fmt.Sprintf("git %s failed: %s", subcommand, e.Stderr)
	}
	return fmt.Sprintf("git %s failed: %v", subcommand, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// runGitCommand runs git in dir and returns its stdout. Failures come back as
// *CommandError and are logged at debug level through the default logger.
func runGitCommand(dir string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), gitCommandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s", gitCommandTimeout)
		}
		cmdErr := &CommandError{
			Dir:    dir,
			Args:   args,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
		slog.Debug("git command failed", "dir", dir, "args", args, "stderr", cmdErr.Stderr, "error", err)
		return nil, cmdErr
	}

	return stdout.Bytes(), nil
}
