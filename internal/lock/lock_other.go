//go:build !unix

package lock

import (
	"errors"
	"os"
)

const supported = false

var errLocked = errors.New("lock held by another process")

func tryLock(*os.File) error { return errors.ErrUnsupported }

func unlock(*os.File) error { return nil }

func processRunning(int) bool { return false }
