// Package lock provides file-based locking for syncshot.
//
// Only one syncshot instance may sync a given repository at a time. A
// Locker takes an exclusive, non-blocking flock on a lock file named after a
// hash of the repository path, kept in $XDG_RUNTIME_DIR (or the system temp
// directory), and records its PID in the file.
//
// Because the kernel drops a flock when its owner exits, a lock file left
// behind by a crashed instance never blocks a new one: Acquire takes it over
// and reports the previous owner through StalePID. Release empties the file
// but leaves it in place, so every instance locks the same inode.
//
// # Usage
//
//	locker, err := lock.New("/path/to/repo")
//	if err != nil {
//	    // Handle error
//	}
//
//	if err := locker.Acquire(); err != nil {
//	    if errors.Is(err, syncErrors.ErrAlreadyRunning) {
//	        // Another instance owns this repository
//	    }
//	    // Handle error
//	}
//	defer locker.Release()
//
// # Platform Support
//
// Locking relies on flock(2) and is available on Unix-like systems only.
// New returns an error elsewhere.
package lock
