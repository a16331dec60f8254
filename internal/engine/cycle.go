package engine

import (
	"context"

	"github.com/google/uuid"

	syncErrors "github.com/bashhack/syncshot/internal/errors"
	"github.com/bashhack/syncshot/internal/logger"
)

// Cycle is one full sync pass: drain local changes, measure divergence,
// then push or pull.
type Cycle struct {
	repo      Repository
	committer *ChangeCommitter
	remote    *RemoteSync
	logger    logger.Logger

	// newID generates the correlation ID of each run
	newID func() string
}

// NewCycle wires a Cycle around repo. maxCommitRounds bounds the drain, zero
// leaves it unbounded.
func NewCycle(repo Repository, log logger.Logger, maxCommitRounds int) *Cycle {
	return &Cycle{
		repo:      repo,
		committer: NewChangeCommitter(repo, log, maxCommitRounds),
		remote:    NewRemoteSync(repo, log),
		logger:    log,
		newID:     uuid.NewString,
	}
}

// Run executes one cycle. The first failing step ends the cycle and its
// error is returned together with whatever the cycle had done so far.
// Divergence is only measured once the working tree is clean. A stopped
// rebase or merge fails every cycle until someone resolves it, so conflict
// markers are never committed.
func (c *Cycle) Run(ctx context.Context) (Result, error) {
	result := Result{ID: c.newID()}
	c.logger.Debug("Cycle %s started", result.ID)

	operation, err := c.repo.IntegrationInProgress(ctx)
	if err != nil {
		return result, err
	}
	if operation != "" {
		return result, syncErrors.Wrapf(syncErrors.ErrIntegrationInProgress, "%s in progress", operation)
	}

	commits, err := c.committer.Drain(ctx)
	result.Commits = commits
	if err != nil {
		return result, err
	}

	distance, err := c.repo.Divergence(ctx)
	if err != nil {
		return result, err
	}
	result.Distance = distance

	action, err := c.remote.Resolve(ctx, distance)
	result.Action = action
	if err != nil {
		return result, err
	}

	c.logger.Debug("Cycle %s finished: commits=%d distance=%d action=%s",
		result.ID, result.Commits, result.Distance, result.Action)

	return result, nil
}
