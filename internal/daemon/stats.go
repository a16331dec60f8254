package daemon

import (
	"time"

	"github.com/bashhack/syncshot/internal/engine"
)

// Stats counts what a Daemon has done since Run started.
type Stats struct {
	Cycles       int
	FailedCycles int
	Commits      int
	Pushes       int
	Pulls        int
}

func (s *Stats) record(result engine.Result, err error) {
	s.Cycles++
	s.Commits += result.Commits

	if err != nil {
		s.FailedCycles++
		return
	}

	switch result.Action {
	case engine.ActionPush:
		s.Pushes++
	case engine.ActionPull:
		s.Pulls++
	}
}

// PrintSummary prints a summary of the session
func (d *Daemon) PrintSummary() {
	duration := time.Duration(0)
	if !d.started.IsZero() {
		duration = time.Since(d.started)
	}
	hours := int(duration.Hours())
	minutes := int(duration.Minutes()) % 60
	seconds := int(duration.Seconds()) % 60

	d.logger.StatusMessage("")
	d.logger.StatusMessage("---------------------------------------------")
	d.logger.StatusMessage("📊 syncshot Session Summary")
	d.logger.StatusMessage("---------------------------------------------")
	d.logger.StatusMessage("🔁 Sync cycles run: %d (%d failed)", d.stats.Cycles, d.stats.FailedCycles)
	d.logger.StatusMessage("✅ Snapshots committed: %d", d.stats.Commits)
	d.logger.StatusMessage("⬆️  Pushes: %d", d.stats.Pushes)
	d.logger.StatusMessage("⬇️  Pulls: %d", d.stats.Pulls)
	d.logger.StatusMessage("⏱️  Session duration: %dh %dm %ds", hours, minutes, seconds)
	d.logger.StatusMessage("---------------------------------------------")
	d.logger.StatusMessage("🛑 syncshot terminated at %s", time.Now().Format("2006-01-02 15:04:05"))
}
