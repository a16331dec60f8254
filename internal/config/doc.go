// Package config loads syncshot's settings.
//
// Values are layered, each layer overriding the previous one:
//
//  1. defaults from New
//  2. a YAML config file (--config, SYNCSHOT_CONFIG, or the first
//     syncshot/config.yaml found in the XDG config directories)
//  3. SYNCSHOT_* environment variables
//  4. command-line flags that were set explicitly
//
// Finalize validates the result. A non-positive period, or a negative
// command timeout or commit bound, is reported as a *errors.ConfigError
// wrapping errors.ErrInvalidConfiguration, and the process exits before the
// daemon starts.
//
// Example config file:
//
//	period: 30
//	debug: false
//	repo_path: /home/me/notes
//	log_file: /home/me/.local/state/syncshot.log
//	command_timeout: 120
//	max_commit_rounds: 50
package config
