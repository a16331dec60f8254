package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	syncErrors "github.com/bashhack/syncshot/internal/errors"
)

func TestCommitMessageIsUTCRFC3339(t *testing.T) {
	zone := time.FixedZone("UTC+5", 5*60*60)
	committer := NewChangeCommitter(&fakeRepository{}, quietLogger(), 0)
	committer.now = func() time.Time {
		return time.Date(2024, time.May, 1, 17, 30, 15, 999, zone)
	}

	assert.Equal(t, "2024-05-01T12:30:15Z", committer.CommitMessage())
}

func TestDrain(t *testing.T) {
	boom := errors.New("boom")

	tests := map[string]struct {
		repo            *fakeRepository
		maxRounds       int
		expectedCommits int
		expectedCalls   []string
		expectedErr     error
	}{
		"clean tree commits nothing": {
			repo:            &fakeRepository{},
			expectedCommits: 0,
			expectedCalls:   []string{"status"},
		},
		"single dirty check": {
			repo:            &fakeRepository{dirty: []bool{true}},
			expectedCommits: 1,
			expectedCalls:   []string{"status", "add", "commit", "status"},
		},
		"edits during commit are drained": {
			repo:            &fakeRepository{dirty: []bool{true, true, true}},
			expectedCommits: 3,
			expectedCalls: []string{
				"status", "add", "commit",
				"status", "add", "commit",
				"status", "add", "commit",
				"status",
			},
		},
		"status failure": {
			repo:            &fakeRepository{errs: map[string]error{"status": boom}},
			expectedCommits: 0,
			expectedCalls:   []string{"status"},
			expectedErr:     boom,
		},
		"staging failure skips commit": {
			repo:            &fakeRepository{dirty: []bool{true}, errs: map[string]error{"add": boom}},
			expectedCommits: 0,
			expectedCalls:   []string{"status", "add"},
			expectedErr:     boom,
		},
		"commit failure": {
			repo:            &fakeRepository{dirty: []bool{true}, errs: map[string]error{"commit": boom}},
			expectedCommits: 0,
			expectedCalls:   []string{"status", "add", "commit"},
			expectedErr:     boom,
		},
		"bounded drain gives up": {
			repo:            &fakeRepository{alwaysDirty: true},
			maxRounds:       2,
			expectedCommits: 2,
			expectedCalls:   []string{"status", "add", "commit", "status", "add", "commit", "status"},
			expectedErr:     syncErrors.ErrTreeNotQuiescent,
		},
		"bound not reached": {
			repo:            &fakeRepository{dirty: []bool{true, true}},
			maxRounds:       2,
			expectedCommits: 2,
			expectedCalls:   []string{"status", "add", "commit", "status", "add", "commit", "status"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			committer := NewChangeCommitter(test.repo, quietLogger(), test.maxRounds)

			commits, err := committer.Drain(context.Background())

			if test.expectedErr != nil {
				require.ErrorIs(t, err, test.expectedErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, test.expectedCommits, commits)
			assert.Equal(t, test.expectedCalls, test.repo.calls)
			assert.Len(t, test.repo.messages, test.expectedCommits)
		})
	}
}

func TestDrainUnboundedKeepsGoing(t *testing.T) {
	dirty := make([]bool, 200)
	for i := range dirty {
		dirty[i] = true
	}
	repo := &fakeRepository{dirty: dirty}

	commits, err := NewChangeCommitter(repo, quietLogger(), 0).Drain(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 200, commits)
	assert.False(t, repo.lastDirty)
}
