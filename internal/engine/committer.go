package engine

import (
	"context"
	"time"

	syncErrors "github.com/bashhack/syncshot/internal/errors"
	"github.com/bashhack/syncshot/internal/logger"
)

// ChangeCommitter stages and commits every pending change in the working tree.
type ChangeCommitter struct {
	repo   Repository
	logger logger.Logger

	// MaxRounds caps the commits made by one Drain. Zero means no cap.
	MaxRounds int

	// now is the clock commit messages are derived from
	now func() time.Time
}

// NewChangeCommitter creates a ChangeCommitter with the system clock.
func NewChangeCommitter(repo Repository, log logger.Logger, maxRounds int) *ChangeCommitter {
	return &ChangeCommitter{
		repo:      repo,
		logger:    log,
		MaxRounds: maxRounds,
		now:       time.Now,
	}
}

// CommitMessage returns the current UTC time in RFC 3339 form, e.g.
// "2024-05-01T12:00:00Z".
func (c *ChangeCommitter) CommitMessage() string {
	return c.now().UTC().Format(time.RFC3339)
}

// Commit stages everything and commits it. It returns the message used.
func (c *ChangeCommitter) Commit(ctx context.Context) (string, error) {
	if err := c.repo.StageAll(ctx); err != nil {
		return "", err
	}

	message := c.CommitMessage()
	if err := c.repo.Commit(ctx, message); err != nil {
		return "", err
	}

	return message, nil
}

// Drain commits until the working tree reports clean and returns the number
// of commits made. Edits landing while a commit is in progress are picked up
// by the next round. When MaxRounds is positive and the tree is still dirty
// after that many commits, Drain fails with ErrTreeNotQuiescent.
func (c *ChangeCommitter) Drain(ctx context.Context) (int, error) {
	commits := 0

	for {
		dirty, err := c.repo.IsDirty(ctx)
		if err != nil {
			return commits, err
		}
		if !dirty {
			return commits, nil
		}

		if c.MaxRounds > 0 && commits >= c.MaxRounds {
			return commits, syncErrors.Wrapf(syncErrors.ErrTreeNotQuiescent,
				"still dirty after %d commits", commits)
		}

		message, err := c.Commit(ctx)
		if err != nil {
			return commits, err
		}
		commits++

		c.logger.Info("Committed local changes as %q", message)
	}
}
