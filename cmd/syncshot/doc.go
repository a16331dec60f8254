// Package main implements syncshot, a daemon that keeps a git working copy
// synced with its remote.
//
// Every period syncshot commits whatever has changed locally, using the
// current UTC time as the commit message, fetches, and then resolves the
// divergence from the upstream branch: it pushes when the local branch is
// ahead and rebases onto upstream when it is behind. A branch that has
// diverged is rebased first and pushed on a later cycle.
//
// # Features
//
//   - Commits the entire working tree, untracked files included
//   - Keeps history linear by pulling with rebase
//   - Survives failing cycles: errors are logged and the next cycle runs as scheduled
//   - Stops on SIGINT, SIGTERM or SIGHUP without interrupting a running git command
//   - Handles concurrent executions safely with file locking
//   - Optional per-command timeout and a bound on commits per cycle
//
// # Basic Usage
//
//	syncshot                          # Sync the current directory every 10 seconds
//	syncshot --period 60              # Sync every minute
//	syncshot --repo ~/notes --debug   # Sync another repository with debug logging
//
// # Configuration Options
//
// Settings are read from, in increasing order of precedence, built-in
// defaults, $XDG_CONFIG_HOME/syncshot/config.yaml (or --config), SYNCSHOT_*
// environment variables and command-line flags:
//
//	--period             SYNCSHOT_PERIOD             Seconds between cycles (default 10)
//	--debug              SYNCSHOT_DEBUG              Enable debug logging
//	--repo               SYNCSHOT_REPO_PATH          Repository path (default: current directory)
//	--log-file           SYNCSHOT_LOG_FILE           Write log records to a file
//	--command-timeout    SYNCSHOT_COMMAND_TIMEOUT    Seconds before a git command is killed (0 = never)
//	--max-commit-rounds  SYNCSHOT_MAX_COMMIT_ROUNDS  Commits per cycle while the tree keeps changing (0 = no limit)
//	--config             SYNCSHOT_CONFIG             YAML config file
//
// # Exit Codes
//
// syncshot exits 0 after a graceful shutdown and 1 when it cannot start,
// for example because the period is not positive, git is missing, the path
// is not a repository or another instance already syncs it.
//
// # Requirements
//
// The current branch must track an upstream branch, and git must be able to
// push and fetch without prompting for credentials.
package main
