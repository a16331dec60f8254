//go:build unix

package daemon

import (
	"os"

	"golang.org/x/sys/unix"
)

var shutdownSignals = []os.Signal{os.Interrupt, unix.SIGTERM, unix.SIGHUP}
