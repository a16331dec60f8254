package daemon

import (
	"context"
	"os"
	"os/signal"
)

// NotifyShutdownSignals relays the platform's termination-class signals to
// the returned channel. Call stop to restore default signal handling.
func NotifyShutdownSignals() (signals <-chan os.Signal, stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, shutdownSignals...)
	return ch, func() { signal.Stop(ch) }
}

// WatchSignals requests shutdown on the first signal received and absorbs
// any that follow. It returns when ctx is done.
func (d *Daemon) WatchSignals(ctx context.Context, signals <-chan os.Signal) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case sig := <-signals:
			if d.RequestShutdown("received " + sig.String()) {
				d.logger.InfoToUser("Received %v, stopping syncshot after the current step...", sig)
			} else {
				d.logger.Debug("Ignoring %v, already shutting down", sig)
			}
		}
	}
}
