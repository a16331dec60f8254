//go:build unix

package lock

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

const supported = true

var errLocked = errors.New("lock held by another process")

// tryLock takes an exclusive flock without blocking
func tryLock(file *os.File) error {
	err := unix.Flock(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
	// Older systems report EWOULDBLOCK and EAGAIN as distinct codes
	if errors.Is(err, unix.EWOULDBLOCK) || errors.Is(err, unix.EAGAIN) {
		return errLocked
	}
	return err
}

// unlock releases the flock on the file
func unlock(file *os.File) error {
	return unix.Flock(int(file.Fd()), unix.LOCK_UN)
}

// processRunning checks if a process exists using signal 0
func processRunning(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := unix.Kill(pid, 0)
	return err == nil || errors.Is(err, unix.EPERM)
}
