package lock

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"

	syncErrors "github.com/bashhack/syncshot/internal/errors"
)

// Locker prevents two syncshot instances from syncing the same repository.
// The lock is an exclusive flock on a per-repository file holding the owner's PID.
type Locker struct {
	lockFile string
	lockFd   *os.File
	pid      int

	// stalePID is the PID found in a lock file nobody held, if any
	stalePID int
}

// Dir returns the directory lock files are kept in: $XDG_RUNTIME_DIR when
// available, the system temp directory otherwise.
func Dir() string {
	if xdg.RuntimeDir != "" {
		if info, err := os.Stat(xdg.RuntimeDir); err == nil && info.IsDir() {
			return xdg.RuntimeDir
		}
	}
	return os.TempDir()
}

// FileName returns the lock file name for repoPath.
func FileName(repoPath string) string {
	repoHash := fmt.Sprintf("%x", sha256.Sum256([]byte(repoPath)))[:16]
	return fmt.Sprintf("syncshot-%s.lock", repoHash)
}

// New creates a Locker for the specified repository path
func New(repoPath string) (*Locker, error) {
	if !supported {
		return nil, syncErrors.NewLockError("", 0,
			syncErrors.Wrap(syncErrors.ErrLockAcquisitionFailure,
				"syncshot currently only supports Unix-like operating systems"))
	}

	return NewAt(filepath.Join(Dir(), FileName(repoPath))), nil
}

// NewAt creates a Locker using lockFile directly.
func NewAt(lockFile string) *Locker {
	return &Locker{
		lockFile: lockFile,
		pid:      os.Getpid(),
	}
}

// StalePID returns the PID recorded by a previous owner whose lock was
// recovered on Acquire, or 0.
func (l *Locker) StalePID() int {
	return l.stalePID
}

// Acquire takes the lock without blocking. If another live process holds it,
// the error wraps ErrAlreadyRunning.
func (l *Locker) Acquire() error {
	if l.lockFd != nil {
		return nil
	}

	fd, err := os.OpenFile(l.lockFile, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return syncErrors.NewLockError(l.lockFile, 0,
			syncErrors.Wrap(syncErrors.ErrLockAcquisitionFailure, fmt.Sprintf("failed to open lock file: %v", err)))
	}

	if err := tryLock(fd); err != nil {
		_ = fd.Close()
		if err == errLocked {
			return l.blockedError()
		}
		return syncErrors.NewLockError(l.lockFile, 0,
			syncErrors.Wrap(syncErrors.ErrLockAcquisitionFailure, fmt.Sprintf("failed to acquire lock: %v", err)))
	}

	// The file may be left over from a process that died without releasing
	if previous, err := readPid(fd); err == nil && previous != l.pid && previous > 0 {
		l.stalePID = previous
	}

	if err := writePid(fd, l.pid); err != nil {
		_ = unlock(fd)
		_ = fd.Close()
		return syncErrors.NewLockError(l.lockFile, l.pid,
			syncErrors.Wrap(syncErrors.ErrLockAcquisitionFailure, fmt.Sprintf("failed to write PID to lock file: %v", err)))
	}

	l.lockFd = fd
	return nil
}

// blockedError describes a lock held by someone else.
func (l *Locker) blockedError() error {
	data, err := os.ReadFile(l.lockFile)
	if err != nil {
		return syncErrors.NewLockError(l.lockFile, 0, syncErrors.ErrAlreadyRunning)
	}

	otherPid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || !processRunning(otherPid) {
		otherPid = 0
	}
	return syncErrors.NewLockError(l.lockFile, otherPid, syncErrors.ErrAlreadyRunning)
}

// Release releases the lock if it was acquired. The lock file stays in place,
// emptied, so every instance always locks the same inode.
func (l *Locker) Release() error {
	if l.lockFd == nil {
		return nil
	}

	var errs []error

	// Clear the PID while still holding the lock so a clean exit never looks stale
	if err := l.lockFd.Truncate(0); err != nil {
		errs = append(errs, syncErrors.NewLockError(l.lockFile, l.pid,
			syncErrors.Wrap(err, "failed to clear lock file")))
	}

	if err := unlock(l.lockFd); err != nil {
		errs = append(errs, syncErrors.NewLockError(l.lockFile, l.pid,
			syncErrors.Wrap(err, "failed to release lock")))
	}

	if err := l.lockFd.Close(); err != nil {
		errs = append(errs, syncErrors.NewLockError(l.lockFile, l.pid,
			syncErrors.Wrap(err, "failed to close lock file")))
	}

	l.lockFd = nil
	return syncErrors.Join(errs...)
}

func readPid(fd *os.File) (int, error) {
	buf := make([]byte, 32)
	n, err := fd.ReadAt(buf, 0)
	if n == 0 {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(buf[:n])))
}

func writePid(fd *os.File, pid int) error {
	if err := fd.Truncate(0); err != nil {
		return err
	}
	_, err := fd.WriteAt([]byte(strconv.Itoa(pid)), 0)
	return err
}
