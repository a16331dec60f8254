// Package syncshot keeps a git working copy continuously synced with its remote.
//
// syncshot runs as a background daemon. Every period it commits any local
// changes with a UTC timestamp message, fetches, and resolves the divergence
// from the upstream branch by pushing when ahead or rebasing when behind.
// Failed cycles are logged and retried on the next period, and a shutdown
// signal lets the git command in progress finish before the daemon exits.
//
// # Quick Start
//
//	# Navigate to a repository whose branch tracks an upstream
//	cd /path/to/your/repo
//
//	# Sync every 10 seconds
//	syncshot
//
//	# Press Ctrl+C to stop
//
// # Project Structure
//
//   - cmd/syncshot: command-line entry point and application wiring
//   - internal/git: git subprocess execution and status parsing
//   - internal/engine: one sync cycle (commit drain, divergence, push or pull)
//   - internal/daemon: the periodic loop with graceful shutdown
//   - internal/config: defaults, config file, environment and flags
//   - internal/lock: one instance per repository
//   - internal/logger: operational records and user-facing messages
//   - internal/errors: sentinel and typed errors
//
// For command-line usage see the documentation of cmd/syncshot.
package syncshot
