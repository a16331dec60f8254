package git

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	syncErrors "github.com/bashhack/syncshot/internal/errors"
)

// CommandExecutor defines an interface for executing commands
type CommandExecutor interface {
	// ExecuteWithContext runs a command to completion and reports only success or failure
	ExecuteWithContext(ctx context.Context, name string, args ...string) error

	// ExecuteWithContextAndOutput runs a command to completion and returns its stdout
	ExecuteWithContextAndOutput(ctx context.Context, name string, args ...string) (string, error)
}

// ExecExecutor is the default implementation of CommandExecutor
// that delegates to the os/exec package.
//
// Commands are not bound to the caller's cancellation: a shutdown request
// lets an in-flight command finish. Only Timeout, when positive, can stop one.
type ExecExecutor struct {
	Timeout time.Duration

	// Env is appended to the inherited environment of every command
	Env []string
}

// NewExecExecutor creates a new ExecExecutor without a command timeout
func NewExecExecutor() *ExecExecutor {
	return &ExecExecutor{}
}

// NewExecExecutorWithTimeout creates an ExecExecutor that kills any command
// running longer than timeout. A zero timeout disables the limit.
func NewExecExecutorWithTimeout(timeout time.Duration) *ExecExecutor {
	return &ExecExecutor{Timeout: timeout}
}

// ExecuteWithContext implements CommandExecutor.ExecuteWithContext
func (e *ExecExecutor) ExecuteWithContext(ctx context.Context, name string, args ...string) error {
	_, err := e.run(ctx, name, args)
	return err
}

// ExecuteWithContextAndOutput implements CommandExecutor.ExecuteWithContextAndOutput
func (e *ExecExecutor) ExecuteWithContextAndOutput(ctx context.Context, name string, args ...string) (string, error) {
	return e.run(ctx, name, args)
}

func (e *ExecExecutor) run(ctx context.Context, name string, args []string) (string, error) {
	ctx = context.WithoutCancel(ctx)
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if len(e.Env) > 0 {
		cmd.Env = append(os.Environ(), e.Env...)
	}

	if err := cmd.Run(); err != nil {
		return "", classify(ctx, name, args, err, stdout.String(), stderr.String())
	}

	return stdout.String(), nil
}

// classify turns a failed run into a GitError carrying the failure kind and
// the most useful captured output.
func classify(ctx context.Context, name string, args []string, runErr error, stdout, stderr string) error {
	gitErr := syncErrors.NewGitError(operationOf(name, args), args,
		syncErrors.Errorf("%w: %w", syncErrors.ErrGitOperationFailed, runErr), capturedOutput(stdout, stderr))

	var exitErr *exec.ExitError
	switch {
	case ctx.Err() == context.DeadlineExceeded:
		gitErr.Kind = syncErrors.KindTimeout
		gitErr.ExitCode = -1
	case syncErrors.As(runErr, &exitErr):
		gitErr.Kind = syncErrors.KindExitStatus
		gitErr.ExitCode = exitErr.ExitCode()
	case syncErrors.Is(runErr, exec.ErrNotFound) || isStartFailure(runErr):
		gitErr.Kind = syncErrors.KindCommandNotFound
		gitErr.ExitCode = -1
	default:
		gitErr.Kind = syncErrors.KindUnknown
		gitErr.ExitCode = -1
	}

	return gitErr
}

// isStartFailure reports whether the process never started, e.g. the
// executable path does not exist or is not executable.
func isStartFailure(err error) bool {
	var execErr *exec.Error
	return syncErrors.As(err, &execErr)
}

// operationOf names a command by its git subcommand, skipping "-C <path>"
// and other leading options.
func operationOf(name string, args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "-C" || arg == "-c" {
			i++
			continue
		}
		if strings.HasPrefix(arg, "-") {
			continue
		}
		return arg
	}
	return name
}

// capturedOutput prefers stderr and falls back to stdout, since git reports
// some failures (e.g. "nothing to commit") on stdout.
func capturedOutput(stdout, stderr string) string {
	if out := strings.TrimSpace(stderr); out != "" {
		return out
	}
	return strings.TrimSpace(stdout)
}
