//go:build !unix

package daemon

import "os"

var shutdownSignals = []os.Signal{os.Interrupt}
