// Package testutil builds throwaway git repositories for tests.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// RequireGit skips the test when no git executable is on PATH.
func RequireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

// Git runs git in dir and returns its trimmed stdout, failing the test on error.
func Git(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	out, err := cmd.Output()
	if err != nil {
		stderr := ""
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr = string(exitErr.Stderr)
		}
		t.Fatalf("git %s failed: %v\n%s", strings.Join(args, " "), err, stderr)
	}
	return strings.TrimSpace(string(out))
}

// WriteFile writes content to name inside dir, creating parent directories.
func WriteFile(t *testing.T, dir, name, content string) {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

// InitRepo creates a repository on branch main with one commit and no remote.
func InitRepo(t *testing.T) string {
	t.Helper()
	RequireGit(t)

	dir := t.TempDir()
	Git(t, dir, "init", "--initial-branch=main")
	configure(t, dir)

	WriteFile(t, dir, "initial.txt", "Initial content")
	Git(t, dir, "add", "initial.txt")
	Git(t, dir, "commit", "-m", "Initial commit")

	return dir
}

// RemotePair creates a bare remote and a working clone whose main branch
// tracks origin/main. The remote already holds the initial commit.
func RemotePair(t *testing.T) (remote, clone string) {
	t.Helper()
	RequireGit(t)

	remote = filepath.Join(t.TempDir(), "remote.git")
	Git(t, ".", "init", "--bare", "--initial-branch=main", remote)

	clone = InitRepo(t)
	Git(t, clone, "remote", "add", "origin", remote)
	Git(t, clone, "push", "--set-upstream", "origin", "main")

	return remote, clone
}

// Clone makes another working copy of remote with committer identity set.
func Clone(t *testing.T, remote string) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "clone")
	Git(t, ".", "clone", remote, dir)
	configure(t, dir)

	return dir
}

// CommitFile writes name and commits it in dir.
func CommitFile(t *testing.T, dir, name, content string) {
	t.Helper()

	WriteFile(t, dir, name, content)
	Git(t, dir, "add", name)
	Git(t, dir, "commit", "-m", "Add "+name)
}

// CommitCount returns the number of commits reachable from rev in dir.
func CommitCount(t *testing.T, dir, rev string) string {
	t.Helper()
	return Git(t, dir, "rev-list", "--count", rev)
}

func configure(t *testing.T, dir string) {
	t.Helper()

	Git(t, dir, "config", "user.email", "test@example.com")
	Git(t, dir, "config", "user.name", "Test User")
	Git(t, dir, "config", "commit.gpgsign", "false")
}
