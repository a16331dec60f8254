// Package git provides the Git operations syncshot runs against a working copy.
//
// Every operation shells out to the git executable through a CommandExecutor,
// so tests can substitute a recording mock and production code inherits the
// user's git configuration, credentials and hooks.
//
// # Core Components
//
// - Repository: runs status, fetch, add, commit, push and pull in one working copy
// - CommandExecutor: interface for executing commands and capturing their output
// - ExecExecutor: the os/exec implementation, with an optional per-command timeout
// - ParseDirty and ParseDivergence: pure classifiers for git status output
//
// # Divergence
//
// Divergence fetches and then reads the branch summary line of
// "git status --porcelain --branch". The trailing bracket annotation is
// classified into a signed distance:
//
//	[behind N]            -> +N
//	[ahead N]             -> -N
//	[ahead N, behind M]   -> +M
//	anything else         ->  0
//
// A positive distance means the remote has commits the local branch lacks, a
// negative one means local commits are waiting to be pushed.
//
// # Error Handling
//
// Failed commands are returned as *errors.GitError values carrying the git
// subcommand, the exit code, the captured output and a Kind that separates a
// missing executable from a non-zero exit or a timeout.
//
// # Cancellation
//
// ExecExecutor never kills a command because the caller's context was
// cancelled. Shutdown waits for the in-flight command to finish. Only a
// configured timeout interrupts one.
//
// # Dependencies
//
// This package requires:
//
// - A functional Git installation in the system PATH
// - A valid Git repository at the configured path, with an upstream configured
//   for the current branch when divergence is to be resolved
package git
