package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	syncErrors "github.com/bashhack/syncshot/internal/errors"
	"github.com/bashhack/syncshot/internal/logger"
)

// Repository runs the git operations syncshot needs against one working copy.
// Every method blocks until its subprocess has exited.
type Repository struct {
	// path is the working copy every command is run in (via "git -C")
	path string

	// executor runs git and captures its output
	executor CommandExecutor

	// logger receives debug records of raw command output
	logger logger.Logger
}

// NewRepository creates a Repository for path using executor to run git.
func NewRepository(path string, executor CommandExecutor, log logger.Logger) *Repository {
	return &Repository{
		path:     path,
		executor: executor,
		logger:   log,
	}
}

// IsRepository checks if the given path is a git repository
// Returns true if it is a repository, false otherwise.
// If path is not a repository due to git exit code 128, returns (false, nil).
// For other errors (git not found, permission issues, etc), returns (false, err).
func IsRepository(path string) (bool, error) {
	executor := NewExecExecutor()
	err := executor.ExecuteWithContext(context.Background(), "git", "-C", path, "rev-parse", "--is-inside-work-tree")
	if err == nil {
		return true, nil
	}

	// Exit code 128 is git's generic fatal error code. For rev-parse it almost
	// always means the directory is not inside a work tree.
	var exitErr *exec.ExitError
	if syncErrors.As(err, &exitErr) && exitErr.ExitCode() == 128 {
		return false, nil
	}

	return false, err
}

// IsDirty reports whether the working tree has uncommitted changes,
// including untracked files.
func (r *Repository) IsDirty(ctx context.Context) (bool, error) {
	output, err := r.runGitCommandWithOutput(ctx, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return ParseDirty(output), nil
}

// Divergence refreshes the remote-tracking refs and returns the signed
// distance to the upstream branch as classified by ParseDivergence.
// The fetch is part of the measurement: a distance read from stale refs
// would miss upstream commits that landed since the last fetch.
func (r *Repository) Divergence(ctx context.Context) (int, error) {
	if err := r.Fetch(ctx); err != nil {
		return 0, err
	}

	output, err := r.runGitCommandWithOutput(ctx, "status", "--porcelain", "--branch")
	if err != nil {
		return 0, err
	}

	summary, _, _ := strings.Cut(output, "\n")
	r.logger.Debug("Branch summary: %q", summary)

	return ParseDivergence(output), nil
}

// integrationMarkers are the git-dir entries git leaves behind while a
// history-rewriting operation waits for the user.
var integrationMarkers = []struct {
	name  string
	entry string
}{
	{"rebase", "rebase-merge"},
	{"rebase", "rebase-apply"},
	{"merge", "MERGE_HEAD"},
	{"cherry-pick", "CHERRY_PICK_HEAD"},
	{"revert", "REVERT_HEAD"},
}

// IntegrationInProgress names the stopped operation (e.g. "rebase") that
// needs manual resolution, or returns "" when there is none. Unmerged paths
// without such an operation are reported as "unmerged paths".
func (r *Repository) IntegrationInProgress(ctx context.Context) (string, error) {
	output, err := r.runGitCommandWithOutput(ctx, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", err
	}
	gitDir := strings.TrimSpace(output)

	for _, marker := range integrationMarkers {
		_, err := os.Stat(filepath.Join(gitDir, marker.entry))
		if err == nil {
			return marker.name, nil
		}
		if !os.IsNotExist(err) {
			return "", syncErrors.Wrapf(err, "checking for %s", marker.entry)
		}
	}

	status, err := r.runGitCommandWithOutput(ctx, "status", "--porcelain")
	if err != nil {
		return "", err
	}
	if ParseUnmerged(status) {
		return "unmerged paths", nil
	}

	return "", nil
}

// Fetch updates the remote-tracking refs of the current branch's remote.
func (r *Repository) Fetch(ctx context.Context) error {
	return r.runGitCommand(ctx, "fetch")
}

// StageAll stages every modification, addition and removal in the working tree.
func (r *Repository) StageAll(ctx context.Context) error {
	return r.runGitCommand(ctx, "add", "--all")
}

// Commit records the staged changes with message.
func (r *Repository) Commit(ctx context.Context, message string) error {
	return r.runGitCommand(ctx, "commit", "-m", message)
}

// Push pushes the current branch to its configured upstream.
func (r *Repository) Push(ctx context.Context) error {
	return r.runGitCommand(ctx, "push")
}

// Pull fetches and integrates upstream history by rebasing local commits on
// top of it, keeping history linear.
func (r *Repository) Pull(ctx context.Context) error {
	return r.runGitCommand(ctx, "pull", "--rebase")
}

// CurrentBranch returns the name of the checked-out branch, or "" when HEAD
// is detached.
func (r *Repository) CurrentBranch(ctx context.Context) (string, error) {
	output, err := r.runGitCommandWithOutput(ctx, "branch", "--show-current")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

// Upstream returns the upstream of the current branch (e.g. "origin/main"),
// or an error when none is configured.
func (r *Repository) Upstream(ctx context.Context) (string, error) {
	output, err := r.runGitCommandWithOutput(ctx, "rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{upstream}")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

// runGitCommand executes a git command in the repository directory.
func (r *Repository) runGitCommand(ctx context.Context, args ...string) error {
	allArgs := append([]string{"-C", r.path}, args...)
	return r.executor.ExecuteWithContext(ctx, "git", allArgs...)
}

// runGitCommandWithOutput executes a git command and returns its output.
func (r *Repository) runGitCommandWithOutput(ctx context.Context, args ...string) (string, error) {
	allArgs := append([]string{"-C", r.path}, args...)
	return r.executor.ExecuteWithContextAndOutput(ctx, "git", allArgs...)
}
