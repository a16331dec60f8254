package engine

import (
	"context"

	"github.com/bashhack/syncshot/internal/logger"
)

// RemoteSync pushes or pulls according to a divergence distance.
type RemoteSync struct {
	repo   Repository
	logger logger.Logger
}

// NewRemoteSync creates a RemoteSync for repo.
func NewRemoteSync(repo Repository, log logger.Logger) *RemoteSync {
	return &RemoteSync{repo: repo, logger: log}
}

// Resolve pushes when distance is negative, rebases onto upstream when it is
// positive and does nothing at zero. Failures are returned as-is and never
// retried here.
func (s *RemoteSync) Resolve(ctx context.Context, distance int) (Action, error) {
	action := ActionFor(distance)

	switch action {
	case ActionPush:
		s.logger.Info("Local branch is ahead by %d, pushing", -distance)
		if err := s.repo.Push(ctx); err != nil {
			return action, err
		}
	case ActionPull:
		s.logger.Info("Local branch is behind by %d, pulling with rebase", distance)
		if err := s.repo.Pull(ctx); err != nil {
			return action, err
		}
	default:
		s.logger.Debug("Local branch is in sync with upstream")
	}

	return action, nil
}
