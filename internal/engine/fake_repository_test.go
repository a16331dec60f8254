package engine

import (
	"context"
	"io"

	"github.com/bashhack/syncshot/internal/logger"
)

// fakeRepository is a scripted Repository that records the operations run.
type fakeRepository struct {
	// dirty is consumed one value per IsDirty call; once exhausted the tree is clean
	dirty []bool

	// alwaysDirty makes every IsDirty call report changes
	alwaysDirty bool

	distance int

	// integration is the stopped operation IntegrationInProgress reports
	integration string

	// errs fails the named operation ("integration", "status", "add", "commit", "divergence", "push", "pull")
	errs map[string]error

	calls    []string
	messages []string

	// lastDirty is the most recent IsDirty answer
	lastDirty bool

	// remoteWhileDirty counts push or pull calls made after a dirty answer
	remoteWhileDirty int
}

func (f *fakeRepository) IntegrationInProgress(_ context.Context) (string, error) {
	f.calls = append(f.calls, "integration")
	if err := f.errs["integration"]; err != nil {
		return "", err
	}
	return f.integration, nil
}

func (f *fakeRepository) IsDirty(_ context.Context) (bool, error) {
	f.calls = append(f.calls, "status")
	if err := f.errs["status"]; err != nil {
		return false, err
	}

	dirty := f.alwaysDirty
	if !dirty && len(f.dirty) > 0 {
		dirty = f.dirty[0]
		f.dirty = f.dirty[1:]
	}
	f.lastDirty = dirty
	return dirty, nil
}

func (f *fakeRepository) StageAll(_ context.Context) error {
	f.calls = append(f.calls, "add")
	return f.errs["add"]
}

func (f *fakeRepository) Commit(_ context.Context, message string) error {
	f.calls = append(f.calls, "commit")
	if err := f.errs["commit"]; err != nil {
		return err
	}
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeRepository) Divergence(_ context.Context) (int, error) {
	f.calls = append(f.calls, "divergence")
	if err := f.errs["divergence"]; err != nil {
		return 0, err
	}
	return f.distance, nil
}

func (f *fakeRepository) Push(_ context.Context) error {
	f.calls = append(f.calls, "push")
	if f.lastDirty {
		f.remoteWhileDirty++
	}
	return f.errs["push"]
}

func (f *fakeRepository) Pull(_ context.Context) error {
	f.calls = append(f.calls, "pull")
	if f.lastDirty {
		f.remoteWhileDirty++
	}
	return f.errs["pull"]
}

func quietLogger() logger.Logger {
	return logger.NewWithOutput(true, "", io.Discard, io.Discard)
}
