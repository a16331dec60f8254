package engine

import "context"

// Repository is the set of git operations a sync cycle drives.
// *git.Repository satisfies it.
type Repository interface {
	IntegrationInProgress(ctx context.Context) (string, error)
	IsDirty(ctx context.Context) (bool, error)
	StageAll(ctx context.Context) error
	Commit(ctx context.Context, message string) error
	Divergence(ctx context.Context) (int, error)
	Push(ctx context.Context) error
	Pull(ctx context.Context) error
}
