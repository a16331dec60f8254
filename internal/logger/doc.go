// Package logger provides logging facilities for syncshot.
//
// Two kinds of output are kept apart:
//
//   - Operational records (Debug, Info, Warning, Error) are log/slog text
//     records. They go to the log file when one is configured and to stderr
//     otherwise. Debug records are dropped unless debug logging is enabled.
//   - User-facing lines (InfoToUser, WarningToUser, Success, StatusMessage)
//     go to stdout with a short marker, and are mirrored into the log file
//     (StatusMessage excepted) so a file-only reader sees the whole story.
//
// Errors are additionally echoed to stderr when records are routed to a
// file, so a failed cycle is never silent on the console.
//
// # Usage
//
//	log := logger.New(cfg.Debug, cfg.LogFile)
//	defer log.Close()
//
//	log.Debug("status: %q", line)
//	log.Error("cycle failed: %v", err)
//	log.Success("pushed to upstream")
//
// # Thread Safety
//
// DefaultLogger is safe for concurrent use; the signal watcher and the
// daemon loop log from different goroutines.
package logger
