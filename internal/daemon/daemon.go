package daemon

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/bashhack/syncshot/internal/engine"
	syncErrors "github.com/bashhack/syncshot/internal/errors"
	"github.com/bashhack/syncshot/internal/logger"
)

// DefaultSleepIncrement is the granularity at which a sleeping daemon
// notices a shutdown request.
const DefaultSleepIncrement = time.Second

// State is the lifecycle state of a Daemon.
type State int

const (
	// StateRunning is the initial state: cycles keep being scheduled.
	StateRunning State = iota
	// StateShuttingDown is terminal: no new cycle or sleep starts.
	StateShuttingDown
)

func (s State) String() string {
	if s == StateShuttingDown {
		return "shutting down"
	}
	return "running"
}

// Cycler runs one sync cycle. *engine.Cycle satisfies it.
type Cycler interface {
	Run(ctx context.Context) (engine.Result, error)
}

// Options configures a Daemon.
type Options struct {
	// Period is the pause between the end of one cycle and the start of the next
	Period time.Duration

	// SleepIncrement is the step the pause is taken in (DefaultSleepIncrement if zero)
	SleepIncrement time.Duration
}

// Daemon runs a Cycler on a fixed period until asked to shut down.
// A failing cycle is logged and the daemon carries on with the next one.
type Daemon struct {
	cycle     Cycler
	logger    logger.Logger
	period    time.Duration
	increment time.Duration

	// shutdown is the only state shared with the signal watcher
	shutdown atomic.Bool

	// sleep blocks for one increment
	sleep func(time.Duration)

	stats   Stats
	streak  failureStreak
	started time.Time
}

// New creates a Daemon in StateRunning.
func New(cycle Cycler, log logger.Logger, opts Options) *Daemon {
	increment := opts.SleepIncrement
	if increment <= 0 {
		increment = DefaultSleepIncrement
	}

	return &Daemon{
		cycle:     cycle,
		logger:    log,
		period:    opts.Period,
		increment: increment,
		sleep:     time.Sleep,
	}
}

// RequestShutdown moves the daemon to StateShuttingDown. Only the first call
// has an effect; it reports whether this call was that one.
func (d *Daemon) RequestShutdown(reason string) bool {
	if !d.shutdown.CompareAndSwap(false, true) {
		return false
	}
	d.logger.Info("Shutdown requested (%s), finishing current step", reason)
	return true
}

// ShuttingDown reports whether a shutdown has been requested.
func (d *Daemon) ShuttingDown() bool {
	return d.shutdown.Load()
}

// State returns the current lifecycle state.
func (d *Daemon) State() State {
	if d.ShuttingDown() {
		return StateShuttingDown
	}
	return StateRunning
}

// Run schedules cycles until shutdown is requested or ctx is cancelled, and
// returns nil once it has stopped. The check happens before each cycle,
// after each cycle and between sleep increments. An in-flight cycle is
// always allowed to finish.
func (d *Daemon) Run(ctx context.Context) error {
	d.started = time.Now()
	d.logger.Info("Daemon started (period %s)", d.period)

	for {
		if d.stopping(ctx) {
			break
		}

		d.runCycle(ctx)

		if d.stopping(ctx) {
			break
		}

		d.pause(ctx)
	}

	d.logger.Info("Daemon stopped after %d cycles", d.stats.Cycles)
	return nil
}

// stopping folds context cancellation into the shutdown flag.
func (d *Daemon) stopping(ctx context.Context) bool {
	if ctx.Err() != nil {
		d.RequestShutdown("context cancelled")
	}
	return d.ShuttingDown()
}

// pause waits out the period one increment at a time.
func (d *Daemon) pause(ctx context.Context) {
	for remaining := d.period; remaining > 0; {
		if d.stopping(ctx) {
			return
		}

		step := min(d.increment, remaining)
		d.sleep(step)
		remaining -= step
	}
}

// runCycle runs one cycle and contains its failure.
func (d *Daemon) runCycle(ctx context.Context) {
	result, err := d.cycle.Run(ctx)
	d.stats.record(result, err)

	if err != nil {
		d.reportFailure(result, err)
		return
	}
	d.streak.reset()

	if result.Commits > 0 {
		d.logger.Success("Committed %d snapshot(s)", result.Commits)
	}
	switch result.Action {
	case engine.ActionPush:
		d.logger.Success("Pushed %d commit(s) upstream", -result.Distance)
	case engine.ActionPull:
		d.logger.Success("Rebased onto %d upstream commit(s)", result.Distance)
	}
}

func (d *Daemon) reportFailure(result engine.Result, err error) {
	count := d.streak.record(err)

	d.logger.Error("Cycle %s failed: %v", result.ID, err)
	if count > 1 {
		d.logger.WarningToUser("Sync failed (same error %d times in a row): %v", count, err)
	} else {
		d.logger.WarningToUser("Sync failed: %v", err)
	}

	switch {
	case syncErrors.KindOf(err) == syncErrors.KindCommandNotFound:
		d.logger.Warning("git could not be started, check that it is still installed and in PATH")
	case syncErrors.KindOf(err) == syncErrors.KindTimeout:
		d.logger.Warning("A git command timed out, the remote may be unreachable")
	case syncErrors.Is(err, syncErrors.ErrTreeNotQuiescent):
		d.logger.Warning("The working tree kept changing, divergence will be checked next cycle")
	case syncErrors.Is(err, syncErrors.ErrIntegrationInProgress):
		d.logger.Warning("Resolve the conflict and finish or abort it (e.g. git rebase --continue), syncing resumes on the next cycle")
	case result.Action == engine.ActionPull:
		d.logger.Warning("Pull failed, a rebase may need manual resolution before syncing can resume")
	}
}

// Stats returns the counters accumulated so far.
func (d *Daemon) Stats() Stats {
	return d.stats
}

// failureStreak counts consecutive identical failures.
type failureStreak struct {
	count   int
	lastMsg string
}

func (s *failureStreak) record(err error) int {
	msg := err.Error()
	if msg == s.lastMsg {
		s.count++
	} else {
		s.count = 1
		s.lastMsg = msg
	}
	return s.count
}

func (s *failureStreak) reset() {
	s.count = 0
	s.lastMsg = ""
}
