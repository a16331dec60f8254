package daemon

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchSignals(t *testing.T) {
	d, _ := newTestDaemon(&scriptedCycler{}, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	signals := make(chan os.Signal, 3)
	done := make(chan error, 1)
	go func() { done <- d.WatchSignals(ctx, signals) }()

	signals <- syscall.SIGTERM
	signals <- os.Interrupt
	signals <- syscall.SIGTERM

	require.Eventually(t, d.ShuttingDown, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return len(signals) == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("WatchSignals did not return after cancellation")
	}

	assert.Equal(t, StateShuttingDown, d.State())
}

func TestNotifyShutdownSignals(t *testing.T) {
	signals, stop := NotifyShutdownSignals()
	defer stop()

	assert.NotNil(t, signals)
	assert.Contains(t, shutdownSignals, os.Interrupt)
}
