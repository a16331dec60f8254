// Package errors provides error handling utilities for syncshot.
//
// It defines the sentinel errors the daemon branches on, the typed errors
// that carry context (GitError, LockError, ConfigError) and thin wrappers
// around the standard errors package so callers only import one package.
//
// # Subprocess failures
//
// Every failed git invocation surfaces as a *GitError. Its Kind field is a
// tagged outcome so callers can branch with a plain conditional:
//
//	switch errors.KindOf(err) {
//	case errors.KindCommandNotFound:
//	    // git is missing
//	case errors.KindTimeout:
//	    // command exceeded --command-timeout
//	case errors.KindExitStatus:
//	    // push rejected, rebase conflict, nothing to commit...
//	}
//
// Output holds the captured stderr (or stdout when stderr is empty) of the
// failing command so the daemon can log enough detail to diagnose it.
//
// # Compatibility
//
// All wrapped errors work with errors.Is and errors.As.
package errors
