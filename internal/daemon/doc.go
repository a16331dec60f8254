// Package daemon runs sync cycles on a fixed period until shutdown.
//
// A Daemon has two states. It starts in StateRunning and moves to
// StateShuttingDown exactly once, on the first call to RequestShutdown; later
// calls and repeated signals change nothing. The flag is an atomic.Bool
// owned by the Daemon, written by the signal watcher and polled by Run.
//
// Each iteration of Run:
//
//  1. stops if shutting down
//  2. runs one cycle, logging its failure instead of returning it
//  3. stops if shutting down
//  4. sleeps for the period in SleepIncrement steps, stopping between steps
//     once shutdown has been requested
//
// A cycle in progress is never interrupted. Shutdown latency is therefore
// one sleep increment plus whatever the current git command needs to finish.
//
// There is no backoff and no circuit breaker: a cycle that keeps failing is
// retried every period, and identical consecutive failures are counted in the
// log so an operator can tell a stuck condition from a flapping one.
package daemon
